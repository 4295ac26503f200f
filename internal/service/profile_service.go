package service

import (
	"context"
	"fmt"
	"time"

	"swift-assist-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IProfileService interface {
	RegisterName(userID uuid.UUID, name string)
	GetCustomerName(ctx context.Context, userID uuid.UUID) string
	GetTrackingSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]string, error)
}

type profileService struct {
	chatRepository contract.ChatRepository
	cache          *cache.Cache
}

func NewProfileService(chatRepository contract.ChatRepository) IProfileService {
	return &profileService{
		chatRepository: chatRepository,
		cache:          cache.New(30*time.Minute, 10*time.Minute),
	}
}

func nameKey(userID uuid.UUID) string {
	return "name:" + userID.String()
}

func suggestionsKey(userID uuid.UUID) string {
	return "suggestions:" + userID.String()
}

// RegisterName remembers what the customer wants to be called. Names arrive
// at session creation; there is no user table to read them from.
func (s *profileService) RegisterName(userID uuid.UUID, name string) {
	if name == "" {
		return
	}
	s.cache.Set(nameKey(userID), name, cache.DefaultExpiration)
}

func (s *profileService) GetCustomerName(ctx context.Context, userID uuid.UUID) string {
	if x, found := s.cache.Get(nameKey(userID)); found {
		return x.(string)
	}
	return ""
}

// GetTrackingSuggestions is a read-through cache over the tracking history
// table; suggestions change rarely within a conversation.
func (s *profileService) GetTrackingSuggestions(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	key := fmt.Sprintf("%s:%d", suggestionsKey(userID), limit)
	if x, found := s.cache.Get(key); found {
		return x.([]string), nil
	}

	ids, err := s.chatRepository.GetTrackingSuggestions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, ids, 2*time.Minute)
	return ids, nil
}
