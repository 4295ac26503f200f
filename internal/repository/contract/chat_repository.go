package contract

import (
	"context"

	"swift-assist-be/internal/entity"

	"github.com/google/uuid"
)

type ChatRepository interface {
	CreateSession(ctx context.Context, session *entity.ChatSession) error
	FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
	EndSession(ctx context.Context, id uuid.UUID) error
	MarkEscalated(ctx context.Context, id uuid.UUID, reason string) error

	SaveMessage(ctx context.Context, message *entity.ChatMessage) error
	GetChatHistory(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)

	SaveTrackingHistory(ctx context.Context, record *entity.TrackingHistory) error
	GetTrackingSuggestions(ctx context.Context, userId uuid.UUID, limit int) ([]string, error)
}
