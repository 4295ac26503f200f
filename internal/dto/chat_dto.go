package dto

import "time"

type CreateSessionRequest struct {
	CustomerName string `json:"customer_name" validate:"max=100"`
}

type SessionResponse struct {
	Id           string     `json:"id"`
	Status       string     `json:"status"`
	CustomerName string     `json:"customer_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

// ActionCommandResponse is the wire form of a UI action the hosting client
// should execute (navigate, fill the tracking form, open courier tracking).
type ActionCommandResponse struct {
	Type             string   `json:"type"`
	TrackingIds      []string `json:"tracking_ids,omitempty"`
	Route            string   `json:"route,omitempty"`
	OpenNewTab       bool     `json:"open_new_tab,omitempty"`
	HighlightSection bool     `json:"highlight_section,omitempty"`
	AutoFocus        bool     `json:"auto_focus,omitempty"`
	TriggerSearch    bool     `json:"trigger_search,omitempty"`
	Message          string   `json:"message,omitempty"`
}

type ChatTurnResponse struct {
	Reply          string                  `json:"reply"`
	Intent         string                  `json:"intent"`
	Confidence     float64                 `json:"confidence"`
	ShouldNavigate bool                    `json:"should_navigate"`
	Sentiment      string                  `json:"sentiment"`
	Escalated      bool                    `json:"escalated"`
	TrackingIds    []string                `json:"tracking_ids,omitempty"`
	Actions        []ActionCommandResponse `json:"actions,omitempty"`
	FollowUps      []string                `json:"follow_ups,omitempty"`
	Timestamp      time.Time               `json:"timestamp"`
}

type ChatMessageResponse struct {
	Id        string                 `json:"id"`
	Sender    string                 `json:"sender"`
	Text      string                 `json:"text"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type TrackingSuggestionsResponse struct {
	TrackingIds []string `json:"tracking_ids"`
}

// ChatTurnEvent is the in-process bus payload bridged to the WebSocket hub.
type ChatTurnEvent struct {
	UserId    string           `json:"user_id"`
	SessionId string           `json:"session_id"`
	EventType string           `json:"event_type"` // "bot_reply" | "escalation"
	Turn      ChatTurnResponse `json:"turn"`
}
