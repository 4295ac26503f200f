package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"swift-assist-be/internal/dto"
	"swift-assist-be/internal/entity"
	"swift-assist-be/internal/pkg/logger"
	"swift-assist-be/internal/pkg/mailer"
	"swift-assist-be/internal/repository/contract"
	"swift-assist-be/internal/repository/memory"
	"swift-assist-be/pkg/events"
	"swift-assist-be/pkg/llm"
	"swift-assist-be/pkg/nlu/action"
	"swift-assist-be/pkg/nlu/processor"
	"swift-assist-be/pkg/nlu/sentiment"
	"swift-assist-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrSessionEnded    = errors.New("chat session has ended")
	ErrForbidden       = errors.New("session belongs to another user")
)

// EventPublisher publishes escalation events to the external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatService interface {
	CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	HandleMessage(ctx context.Context, userID uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatTurnResponse, error)
	GetHistory(ctx context.Context, userID, sessionID uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error)
	GetSuggestions(ctx context.Context, userID uuid.UUID, limit int) (*dto.TrackingSuggestionsResponse, error)
	EndSession(ctx context.Context, userID, sessionID uuid.UUID) error
}

type chatService struct {
	chatRepository contract.ChatRepository
	sessions       *memory.SessionRepository
	profile        IProfileService
	analyzer       *sentiment.Analyzer
	llmProvider    llm.LLMProvider
	turnPublisher  message.Publisher
	turnTopic      string
	eventBus       EventPublisher
	emailService   mailer.IEmailService
	supportEmail   string
	log            logger.ILogger
}

func NewChatService(
	chatRepository contract.ChatRepository,
	sessions *memory.SessionRepository,
	profile IProfileService,
	analyzer *sentiment.Analyzer,
	llmProvider llm.LLMProvider,
	turnPublisher message.Publisher,
	turnTopic string,
	eventBus EventPublisher,
	emailService mailer.IEmailService,
	supportEmail string,
	log logger.ILogger,
) IChatService {
	return &chatService{
		chatRepository: chatRepository,
		sessions:       sessions,
		profile:        profile,
		analyzer:       analyzer,
		llmProvider:    llmProvider,
		turnPublisher:  turnPublisher,
		turnTopic:      turnTopic,
		eventBus:       eventBus,
		emailService:   emailService,
		supportEmail:   supportEmail,
		log:            log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userID uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	session := &entity.ChatSession{
		Id:           uuid.New(),
		UserId:       userID,
		CustomerName: req.CustomerName,
		Status:       store.StateActive,
	}
	if err := s.chatRepository.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.profile.RegisterName(userID, req.CustomerName)
	s.sessions.Save(s.newRuntimeSession(session))

	return &dto.SessionResponse{
		Id:           session.Id.String(),
		Status:       session.Status,
		CustomerName: session.CustomerName,
		CreatedAt:    session.CreatedAt,
	}, nil
}

// newRuntimeSession builds the in-memory state for a session, including its
// own NLU processor so conversation context never leaks across sessions.
func (s *chatService) newRuntimeSession(session *entity.ChatSession) *store.Session {
	now := time.Now()
	return &store.Session{
		ID:           session.Id.String(),
		UserID:       session.UserId.String(),
		CustomerName: session.CustomerName,
		State:        session.Status,
		StartedAt:    session.CreatedAt,
		LastActiveAt: now,
		Processor:    processor.New(s.analyzer, nil, nil),
	}
}

// resumeSession fetches the runtime session, rebuilding it from the database
// when the in-memory entry expired.
func (s *chatService) resumeSession(ctx context.Context, userID, sessionID uuid.UUID) (*store.Session, error) {
	if sess, found := s.sessions.Get(sessionID.String()); found {
		if sess.UserID != userID.String() {
			return nil, ErrForbidden
		}
		if sess.State == store.StateEnded {
			return nil, ErrSessionEnded
		}
		return sess, nil
	}

	persisted, err := s.chatRepository.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return nil, ErrSessionNotFound
	}
	if persisted.UserId != userID {
		return nil, ErrForbidden
	}
	if persisted.Status == store.StateEnded {
		return nil, ErrSessionEnded
	}

	sess := s.newRuntimeSession(persisted)
	s.sessions.Save(sess)
	return sess, nil
}

func (s *chatService) HandleMessage(ctx context.Context, userID uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatTurnResponse, error) {
	sessionID, err := uuid.Parse(req.SessionId)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	sess, err := s.resumeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	// One turn at a time per session: concurrent requests on the same
	// session queue up here instead of interleaving inside the processor.
	sess.Lock()
	defer sess.Unlock()

	// 1. Persist the inbound message. Store failures degrade to in-memory
	// continuity: the turn still gets answered.
	s.saveMessage(ctx, sessionID, "user", req.Message, nil)

	lower := strings.ToLower(req.Message)
	mood := s.analyzer.Analyze(req.Message)

	// 2. Escalation wins over everything else.
	if wantsHumanAgent(lower) || s.analyzer.ShouldEscalate(mood) {
		return s.escalate(ctx, userID, sess, sessionID, req.Message, mood)
	}

	// 3. Greeting short-circuit with the customer's name when we know it.
	if isGreeting(lower) {
		return s.greet(ctx, userID, sess, sessionID, mood)
	}

	// 4. Full NLU turn.
	result := sess.Processor.ProcessMessage(ctx, req.Message, userID.String())

	// 5. Reply rules, then the LLM fallback.
	reply, matched := s.replyFor(ctx, userID, &result)
	if !matched {
		reply = s.llmReply(ctx, sess, req.Message)
	}
	if s.analyzer.ShouldShowProactive(mood) {
		if proactive := s.analyzer.ProactiveMessage(mood); proactive != "" {
			reply = reply + "\n\n" + proactive
		}
	}

	// 6. Persist the outcome.
	metadata := map[string]interface{}{
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
		"sentiment":  string(mood.Primary),
	}
	if len(result.Entities.TrackingIDs) > 0 {
		metadata["tracking_ids"] = result.Entities.TrackingIDs
	}
	s.saveMessage(ctx, sessionID, "bot", reply, metadata)

	for _, trackingID := range result.Entities.TrackingIDs {
		record := &entity.TrackingHistory{
			Id:         uuid.New(),
			UserId:     userID,
			TrackingId: trackingID,
			Intent:     string(result.Intent),
		}
		if err := s.chatRepository.SaveTrackingHistory(ctx, record); err != nil {
			s.log.Warn("ChatService", "Failed to save tracking history", map[string]interface{}{
				"tracking_id": trackingID, "error": err.Error(),
			})
		}
		sess.LastTrackingID = trackingID
	}

	sess.MessageCount += 2
	sess.LastActiveAt = time.Now()
	s.sessions.Save(sess)

	turn := &dto.ChatTurnResponse{
		Reply:          reply,
		Intent:         string(result.Intent),
		Confidence:     result.Confidence,
		ShouldNavigate: result.ShouldNavigate,
		Sentiment:      string(mood.Primary),
		TrackingIds:    result.Entities.TrackingIDs,
		Actions:        toActionResponses(result.Actions),
		FollowUps:      result.FollowUps,
		Timestamp:      time.Now(),
	}

	s.publishTurn(userID, sessionID, "bot_reply", turn)

	if s.eventBus != nil {
		event := events.NewTurnProcessedEvent(userID.String(), sessionID.String(), string(result.Intent), result.Confidence)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.log.Warn("ChatService", "Failed to publish turn analytics event", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
		}
	}

	return turn, nil
}

func (s *chatService) escalate(ctx context.Context, userID uuid.UUID, sess *store.Session, sessionID uuid.UUID, text string, mood sentiment.Result) (*dto.ChatTurnResponse, error) {
	reason := mood.Reason
	if wantsHumanAgent(strings.ToLower(text)) {
		reason = "Customer asked for a human agent"
	}

	if err := s.chatRepository.MarkEscalated(ctx, sessionID, reason); err != nil {
		s.log.Error("ChatService", "Failed to mark session escalated", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
	sess.State = store.StateEscalated
	s.sessions.Save(sess)

	if s.eventBus != nil {
		event := events.NewEscalationEvent(userID.String(), sessionID.String(), reason, text)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.log.Error("ChatService", "Failed to publish escalation event", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
		}
	}

	if s.emailService != nil && s.supportEmail != "" {
		if err := s.emailService.SendEscalationAlert(s.supportEmail, userID.String(), sessionID.String(), reason, text); err != nil {
			s.log.Error("ChatService", "Failed to send escalation email", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
		}
	}

	s.saveMessage(ctx, sessionID, "bot", escalationReply, map[string]interface{}{
		"escalated": true,
		"reason":    reason,
	})

	turn := &dto.ChatTurnResponse{
		Reply:     escalationReply,
		Intent:    "escalation",
		Sentiment: string(mood.Primary),
		Escalated: true,
		Timestamp: time.Now(),
	}
	s.publishTurn(userID, sessionID, "escalation", turn)
	return turn, nil
}

func (s *chatService) greet(ctx context.Context, userID uuid.UUID, sess *store.Session, sessionID uuid.UUID, mood sentiment.Result) (*dto.ChatTurnResponse, error) {
	name := sess.CustomerName
	if name == "" {
		name = s.profile.GetCustomerName(ctx, userID)
	}
	if name == "" {
		name = "there"
	}

	reply := fmt.Sprintf("Hi %s! I'm SwiftBot. I can track packages, open live courier maps, "+
		"and answer questions about your deliveries. How can I help?", name)

	s.saveMessage(ctx, sessionID, "bot", reply, nil)
	sess.MessageCount += 2
	sess.LastActiveAt = time.Now()
	s.sessions.Save(sess)

	turn := &dto.ChatTurnResponse{
		Reply:     reply,
		Intent:    "greeting",
		Sentiment: string(mood.Primary),
		FollowUps: []string{"Track a package", "Check delivery status", "Contact support"},
		Timestamp: time.Now(),
	}
	s.publishTurn(userID, sessionID, "bot_reply", turn)
	return turn, nil
}

// llmReply delegates to the configured provider with a delivery-assistant
// persona and the recent turns as context.
func (s *chatService) llmReply(ctx context.Context, sess *store.Session, text string) string {
	if s.llmProvider == nil {
		return defaultHelperReply
	}

	messages := []llm.Message{{
		Role: "system",
		Content: "You are SwiftBot, the virtual assistant of the SwiftDelivery courier service. " +
			"Answer briefly and helpfully about deliveries, tracking, and shipping services. " +
			"If you cannot help, suggest talking to a human agent.",
	}}
	for _, turn := range sess.Processor.Conversation().Snapshot().LastMessages {
		messages = append(messages, llm.Message{Role: "user", Content: turn.Message})
	}
	messages = append(messages, llm.Message{Role: "user", Content: text})

	reply, err := s.llmProvider.Chat(ctx, messages)
	if err != nil {
		s.log.Warn("ChatService", "LLM fallback failed", map[string]interface{}{"error": err.Error()})
		return llmUnavailableReply
	}
	if strings.TrimSpace(reply) == "" {
		return defaultHelperReply
	}
	return reply
}

func (s *chatService) saveMessage(ctx context.Context, sessionID uuid.UUID, sender, text string, metadata map[string]interface{}) {
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionID,
		Sender:        sender,
		Text:          text,
		Metadata:      metadata,
	}
	if err := s.chatRepository.SaveMessage(ctx, msg); err != nil {
		s.log.Error("ChatService", "Failed to save chat message", map[string]interface{}{
			"session_id": sessionID, "sender": sender, "error": err.Error(),
		})
	}
}

func (s *chatService) publishTurn(userID, sessionID uuid.UUID, eventType string, turn *dto.ChatTurnResponse) {
	if s.turnPublisher == nil {
		return
	}
	payload, err := json.Marshal(dto.ChatTurnEvent{
		UserId:    userID.String(),
		SessionId: sessionID.String(),
		EventType: eventType,
		Turn:      *turn,
	})
	if err != nil {
		return
	}
	if err := s.turnPublisher.Publish(s.turnTopic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.log.Warn("ChatService", "Failed to publish turn event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *chatService) GetHistory(ctx context.Context, userID, sessionID uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error) {
	session, err := s.chatRepository.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.UserId != userID {
		return nil, ErrForbidden
	}

	messages, err := s.chatRepository.GetChatHistory(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = &dto.ChatMessageResponse{
			Id:        msg.Id.String(),
			Sender:    msg.Sender,
			Text:      msg.Text,
			Metadata:  msg.Metadata,
			CreatedAt: msg.CreatedAt,
		}
	}
	return out, nil
}

func (s *chatService) GetSuggestions(ctx context.Context, userID uuid.UUID, limit int) (*dto.TrackingSuggestionsResponse, error) {
	ids, err := s.profile.GetTrackingSuggestions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return &dto.TrackingSuggestionsResponse{TrackingIds: ids}, nil
}

func (s *chatService) EndSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.chatRepository.FindSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.UserId != userID {
		return ErrForbidden
	}

	if err := s.chatRepository.EndSession(ctx, sessionID); err != nil {
		return err
	}
	s.sessions.Delete(sessionID.String())
	return nil
}

func toActionResponses(plan action.Plan) []dto.ActionCommandResponse {
	out := make([]dto.ActionCommandResponse, 0, len(plan))
	for _, cmd := range plan {
		switch c := cmd.(type) {
		case action.TrackCourierAutonomous:
			out = append(out, dto.ActionCommandResponse{
				Type:        string(c.CommandType()),
				TrackingIds: c.TrackingIDs,
				OpenNewTab:  c.OpenNewTab,
				Message:     c.Message,
			})
		case action.NavigateToCourierTracking:
			out = append(out, dto.ActionCommandResponse{
				Type:       string(c.CommandType()),
				Route:      c.Route,
				OpenNewTab: c.OpenNewTab,
				Message:    c.Message,
			})
		case action.AutonomousTracking:
			out = append(out, dto.ActionCommandResponse{
				Type:        string(c.CommandType()),
				TrackingIds: c.TrackingIDs,
				Message:     c.Message,
			})
		case action.NavigateToTracking:
			out = append(out, dto.ActionCommandResponse{
				Type:             string(c.CommandType()),
				Route:            c.Route,
				HighlightSection: c.HighlightSection,
				AutoFocus:        c.AutoFocus,
			})
		case action.ContextualTrackingRefresh:
			out = append(out, dto.ActionCommandResponse{
				Type:        string(c.CommandType()),
				TrackingIds: []string{c.TrackingID},
				Message:     c.ShowMessage,
			})
		case action.AutoFillTrackingForm:
			out = append(out, dto.ActionCommandResponse{
				Type:          string(c.CommandType()),
				TrackingIds:   []string{c.TrackingID},
				TriggerSearch: c.TriggerSearch,
			})
		}
	}
	return out
}
