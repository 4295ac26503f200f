package entity

import (
	"time"

	"github.com/google/uuid"
)

type TrackingHistory struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	TrackingId string
	Intent     string
	CreatedAt  time.Time
}
