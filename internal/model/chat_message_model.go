package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender        string    `gorm:"type:text;not null"` // "user" | "bot"
	Text          string    `gorm:"type:text;not null"`
	// Free-form turn annotations: intent, confidence, sentiment, tracking ids.
	Metadata  datatypes.JSON
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
