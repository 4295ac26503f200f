package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	CustomerName     string    `gorm:"type:text"`
	Status           string    `gorm:"type:text;not null;default:'ACTIVE'"`
	AgentRequested   bool      `gorm:"not null;default:false"`
	EscalationReason string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
	EndedAt          *time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
