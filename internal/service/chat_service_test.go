package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"swift-assist-be/internal/dto"
	"swift-assist-be/internal/entity"
	"swift-assist-be/internal/repository/memory"
	"swift-assist-be/pkg/events"
	"swift-assist-be/pkg/llm"
	"swift-assist-be/pkg/nlu/sentiment"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- Fakes ---

type fakeChatRepository struct {
	sessions      map[uuid.UUID]*entity.ChatSession
	messages      []*entity.ChatMessage
	tracking      []*entity.TrackingHistory
	escalated     map[uuid.UUID]string
	failSaves     bool
	suggestionIds []string
}

func newFakeChatRepository() *fakeChatRepository {
	return &fakeChatRepository{
		sessions:  make(map[uuid.UUID]*entity.ChatSession),
		escalated: make(map[uuid.UUID]string),
	}
}

func (f *fakeChatRepository) CreateSession(ctx context.Context, session *entity.ChatSession) error {
	f.sessions[session.Id] = session
	return nil
}

func (f *fakeChatRepository) FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	return f.sessions[id], nil
}

func (f *fakeChatRepository) EndSession(ctx context.Context, id uuid.UUID) error {
	if s, ok := f.sessions[id]; ok {
		s.Status = "ENDED"
	}
	return nil
}

func (f *fakeChatRepository) MarkEscalated(ctx context.Context, id uuid.UUID, reason string) error {
	f.escalated[id] = reason
	if s, ok := f.sessions[id]; ok {
		s.Status = "ESCALATED"
	}
	return nil
}

func (f *fakeChatRepository) SaveMessage(ctx context.Context, msg *entity.ChatMessage) error {
	if f.failSaves {
		return errors.New("database down")
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChatRepository) GetChatHistory(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, msg := range f.messages {
		if msg.ChatSessionId == sessionId {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeChatRepository) SaveTrackingHistory(ctx context.Context, record *entity.TrackingHistory) error {
	f.tracking = append(f.tracking, record)
	return nil
}

func (f *fakeChatRepository) GetTrackingSuggestions(ctx context.Context, userId uuid.UUID, limit int) ([]string, error) {
	return f.suggestionIds, nil
}

type fakeEventBus struct {
	published []events.Event
}

func (f *fakeEventBus) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

type fakeMailer struct {
	alerts int
	lastTo string
}

func (f *fakeMailer) SendEscalationAlert(toEmail, userID, sessionID, reason, excerpt string) error {
	f.alerts++
	f.lastTo = toEmail
	return nil
}

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type fakeTurnPublisher struct {
	topics   []string
	payloads []*message.Message
}

func (f *fakeTurnPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		f.topics = append(f.topics, topic)
		f.payloads = append(f.payloads, msg)
	}
	return nil
}

func (f *fakeTurnPublisher) Close() error { return nil }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// --- Harness ---

type harness struct {
	repo     *fakeChatRepository
	bus      *fakeEventBus
	mail     *fakeMailer
	llm      *fakeLLM
	turns    *fakeTurnPublisher
	sessions *memory.SessionRepository
	service  IChatService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repo := newFakeChatRepository()
	bus := &fakeEventBus{}
	mail := &fakeMailer{}
	llmStub := &fakeLLM{reply: "Here to help with anything delivery related."}
	turns := &fakeTurnPublisher{}
	sessions := memory.NewSessionRepository()

	svc := NewChatService(
		repo,
		sessions,
		NewProfileService(repo),
		sentiment.New(sentiment.DefaultConfig()),
		llmStub,
		turns,
		"CHAT_TURN_EVENTS",
		bus,
		mail,
		"support@swiftdelivery.example",
		noopLogger{},
	)

	return &harness{
		repo:     repo,
		bus:      bus,
		mail:     mail,
		llm:      llmStub,
		turns:    turns,
		sessions: sessions,
		service:  svc,
	}
}

func (h *harness) startSession(t *testing.T, userID uuid.UUID, name string) string {
	t.Helper()
	res, err := h.service.CreateSession(context.Background(), userID, &dto.CreateSessionRequest{CustomerName: name})
	assert.NoError(t, err)
	return res.Id
}

// --- Tests ---

func TestCreateSessionBuildsRuntimeState(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()

	sessionID := h.startSession(t, userID, "Alice")

	assert.Len(t, h.repo.sessions, 1)
	runtime, found := h.sessions.Get(sessionID)
	assert.True(t, found, "runtime session should be cached")
	assert.Equal(t, "Alice", runtime.CustomerName)
	assert.NotNil(t, runtime.Processor)
}

func TestHandleMessageTrackingFlow(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "track SWIFT-1111111111-AAAAA",
	})

	assert.NoError(t, err)
	assert.Equal(t, "track_by_id", turn.Intent)
	assert.Contains(t, turn.Reply, "SWIFT-1111111111-AAAAA")
	assert.NotEmpty(t, turn.Actions)
	assert.False(t, turn.Escalated)

	// Inbound + reply persisted.
	assert.Len(t, h.repo.messages, 2)
	assert.Equal(t, "user", h.repo.messages[0].Sender)
	assert.Equal(t, "bot", h.repo.messages[1].Sender)

	// Every extracted id lands in tracking history.
	assert.Len(t, h.repo.tracking, 1)
	assert.Equal(t, "SWIFT-1111111111-AAAAA", h.repo.tracking[0].TrackingId)

	// The turn went out on the bus for the websocket bridge, and the
	// analytics event on the external bus.
	assert.Len(t, h.turns.payloads, 1)
	assert.Equal(t, "CHAT_TURN_EVENTS", h.turns.topics[0])
	assert.Len(t, h.bus.published, 1)
	assert.Equal(t, "turn_processed", h.bus.published[0].EventType())
}

func TestHandleMessageEscalatesOnExplicitRequest(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "I want to talk to agent right now",
	})

	assert.NoError(t, err)
	assert.True(t, turn.Escalated)
	assert.Equal(t, escalationReply, turn.Reply)

	sid := uuid.MustParse(sessionID)
	assert.Contains(t, h.repo.escalated, sid)
	assert.Equal(t, 1, h.mail.alerts)
	assert.Equal(t, "support@swiftdelivery.example", h.mail.lastTo)

	assert.Len(t, h.bus.published, 1)
	assert.Equal(t, "escalation", h.bus.published[0].EventType())
}

func TestHandleMessageEscalatesOnAngrySentiment(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "I am furious and livid, this is absolutely unacceptable",
	})

	assert.NoError(t, err)
	assert.True(t, turn.Escalated)
	assert.Equal(t, 1, h.mail.alerts)
}

func TestGreetingUsesCustomerName(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "Alice")

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "hello",
	})

	assert.NoError(t, err)
	assert.Equal(t, "greeting", turn.Intent)
	assert.Contains(t, turn.Reply, "Hi Alice!")
}

func TestGreetingDefaultsWithoutName(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "hey!",
	})

	assert.NoError(t, err)
	assert.Contains(t, turn.Reply, "Hi there!")
}

func TestLLMFallbackForUnmatchedIntent(t *testing.T) {
	h := newHarness(t)
	h.llm.reply = "We are open every day of the week."
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "tell me a fun fact",
	})

	assert.NoError(t, err)
	assert.Equal(t, "We are open every day of the week.", turn.Reply)
	assert.Equal(t, 1, h.llm.calls)
}

func TestLLMFailureFallsBackToFixedReply(t *testing.T) {
	h := newHarness(t)
	h.llm.err = errors.New("connection refused")
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "tell me a fun fact",
	})

	assert.NoError(t, err)
	assert.Equal(t, llmUnavailableReply, turn.Reply)
}

func TestStoreFailureStillAnswersTheTurn(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")
	h.repo.failSaves = true

	turn, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "track SWIFT-1111111111-AAAAA",
	})

	assert.NoError(t, err, "store failures must not break the conversation")
	assert.Equal(t, "track_by_id", turn.Intent)
	assert.NotEmpty(t, turn.Reply)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	h := newHarness(t)
	owner := uuid.New()
	sessionID := h.startSession(t, owner, "")

	_, err := h.service.HandleMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "hello",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestEndedSessionRejectsMessages(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	assert.NoError(t, h.service.EndSession(context.Background(), userID, uuid.MustParse(sessionID)))

	_, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "hello",
	})
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestUnknownSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.service.HandleMessage(context.Background(), uuid.New(), &dto.SendMessageRequest{
		SessionId: uuid.New().String(),
		Message:   "hello",
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcurrentTurnsOnOneSessionAreSerialized(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	const turns = 8
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
				SessionId: sessionID,
				Message:   fmt.Sprintf("track SWIFT-111111111%d-AAAAA", n),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Both sides of every turn persisted; no interleaving inside a turn.
	assert.Len(t, h.repo.messages, 2*turns)
	runtime, found := h.sessions.Get(sessionID)
	assert.True(t, found)
	assert.Equal(t, 2*turns, runtime.MessageCount)
}

func TestGetHistoryMapsMessages(t *testing.T) {
	h := newHarness(t)
	userID := uuid.New()
	sessionID := h.startSession(t, userID, "")

	_, err := h.service.HandleMessage(context.Background(), userID, &dto.SendMessageRequest{
		SessionId: sessionID,
		Message:   "track SWIFT-1111111111-AAAAA",
	})
	assert.NoError(t, err)

	history, err := h.service.GetHistory(context.Background(), userID, uuid.MustParse(sessionID), 50)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Sender)
	assert.Equal(t, "track SWIFT-1111111111-AAAAA", history[0].Text)
	assert.Equal(t, "bot", history[1].Sender)
	assert.Equal(t, "track_by_id", history[1].Metadata["intent"])
}
