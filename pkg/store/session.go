package store

import (
	"sync"
	"time"

	"swift-assist-be/pkg/nlu/processor"
)

// Session represents the active chat session state in memory.
// The embedded processor owns the session's conversation context, so a
// session never shares NLU state with another one.
type Session struct {
	ID           string `json:"id"` // ChatSessionID
	UserID       string `json:"user_id"`
	CustomerName string `json:"customer_name"`
	State        string `json:"state"` // "ACTIVE" | "ESCALATED" | "ENDED"

	StartedAt    time.Time `json:"started_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	MessageCount int       `json:"message_count"`

	// Last tracking id the customer asked about, for quick follow-ups.
	LastTrackingID string `json:"last_tracking_id"`

	Processor *processor.Processor `json:"-"`

	mu sync.Mutex
}

// Lock serializes turns on this session. The processor must never see two
// utterances of the same session concurrently.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the turn lock.
func (s *Session) Unlock() { s.mu.Unlock() }

const (
	StateActive    = "ACTIVE"
	StateEscalated = "ESCALATED"
	StateEnded     = "ENDED"
)
