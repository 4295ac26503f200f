package implementation

import (
	"context"
	"errors"
	"time"

	"swift-assist-be/internal/entity"
	"swift-assist-be/internal/mapper"
	"swift-assist-be/internal/model"
	"swift-assist-be/internal/repository/contract"
	"swift-assist-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	return &ChatRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRepositoryImpl) CreateSession(ctx context.Context, session *entity.ChatSession) error {
	m := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(m)
	return nil
}

func (r *ChatRepositoryImpl) FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	var m model.ChatSession
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionToEntity(&m), nil
}

func (r *ChatRepositoryImpl) EndSession(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   "ENDED",
			"ended_at": &now,
		}).Error
}

func (r *ChatRepositoryImpl) MarkEscalated(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            "ESCALATED",
			"agent_requested":   true,
			"escalation_reason": reason,
		}).Error
}

func (r *ChatRepositoryImpl) SaveMessage(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *ChatRepositoryImpl) GetChatHistory(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := r.db.WithContext(ctx).
		Where("chat_session_id = ?", sessionId).
		Scopes(scope.OrderByCreatedDesc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	// Newest-first from the DB, oldest-first for the caller.
	entities := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		entities[len(models)-1-i] = r.mapper.MessageToEntity(m)
	}
	return entities, nil
}

func (r *ChatRepositoryImpl) SaveTrackingHistory(ctx context.Context, record *entity.TrackingHistory) error {
	m := r.mapper.TrackingToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.TrackingToEntity(m)
	return nil
}

func (r *ChatRepositoryImpl) GetTrackingSuggestions(ctx context.Context, userId uuid.UUID, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.TrackingHistory{}).
		Where("user_id = ?", userId).
		Group("tracking_id").
		Order("MAX(created_at) DESC").
		Limit(limit).
		Pluck("tracking_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
