package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Sender        string
	Text          string
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}
