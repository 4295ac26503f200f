package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ESCALATION").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewEscalationEvent is raised when a conversation is handed to a human agent.
func NewEscalationEvent(userID, sessionID, reason, excerpt string) Event {
	return BaseEvent{
		Type: "escalation",
		Data: map[string]interface{}{
			"user_id":    userID,
			"session_id": sessionID,
			"reason":     reason,
			"excerpt":    excerpt,
		},
		OccurredAt: time.Now(),
	}
}

// NewTurnProcessedEvent is raised after every completed chat turn.
func NewTurnProcessedEvent(userID, sessionID, intent string, confidence float64) Event {
	return BaseEvent{
		Type: "turn_processed",
		Data: map[string]interface{}{
			"user_id":    userID,
			"session_id": sessionID,
			"intent":     intent,
			"confidence": confidence,
		},
		OccurredAt: time.Now(),
	}
}
