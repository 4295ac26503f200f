package mapper

import (
	"encoding/json"

	"swift-assist-be/internal/entity"
	"swift-assist-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:               s.Id,
		UserId:           s.UserId,
		CustomerName:     s.CustomerName,
		Status:           s.Status,
		AgentRequested:   s.AgentRequested,
		EscalationReason: s.EscalationReason,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		EndedAt:          s.EndedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:               s.Id,
		UserId:           s.UserId,
		CustomerName:     s.CustomerName,
		Status:           s.Status,
		AgentRequested:   s.AgentRequested,
		EscalationReason: s.EscalationReason,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		EndedAt:          s.EndedAt,
	}
}

// Message Mappers

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(msg.Metadata) > 0 {
		// Best effort: a corrupt metadata blob should not hide the message.
		_ = json.Unmarshal(msg.Metadata, &metadata)
	}
	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Sender:        msg.Sender,
		Text:          msg.Text,
		Metadata:      metadata,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	out := &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Sender:        msg.Sender,
		Text:          msg.Text,
		CreatedAt:     msg.CreatedAt,
	}
	if msg.Metadata != nil {
		if data, err := json.Marshal(msg.Metadata); err == nil {
			out.Metadata = data
		}
	}
	return out
}

// Tracking History Mappers

func (m *ChatMapper) TrackingToEntity(t *model.TrackingHistory) *entity.TrackingHistory {
	if t == nil {
		return nil
	}
	return &entity.TrackingHistory{
		Id:         t.Id,
		UserId:     t.UserId,
		TrackingId: t.TrackingId,
		Intent:     t.Intent,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *ChatMapper) TrackingToModel(t *entity.TrackingHistory) *model.TrackingHistory {
	if t == nil {
		return nil
	}
	return &model.TrackingHistory{
		Id:         t.Id,
		UserId:     t.UserId,
		TrackingId: t.TrackingId,
		Intent:     t.Intent,
		CreatedAt:  t.CreatedAt,
	}
}
