package model

import (
	"time"

	"github.com/google/uuid"
)

type TrackingHistory struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	TrackingId string    `gorm:"type:text;not null;index"`
	Intent     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (TrackingHistory) TableName() string {
	return "tracking_histories"
}
