package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	CustomerName     string
	Status           string
	AgentRequested   bool
	EscalationReason string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	EndedAt          *time.Time
}
