package processor

import (
	"context"
	"log"
	"strings"
	"time"

	"swift-assist-be/pkg/nlu/action"
	"swift-assist-be/pkg/nlu/conversation"
	"swift-assist-be/pkg/nlu/extractor"
	"swift-assist-be/pkg/nlu/intent"
	"swift-assist-be/pkg/nlu/sentiment"
)

// ContextSaver persists customer utterances outside the session. Save
// failures are logged and swallowed; durable context is best-effort and never
// blocks the turn.
type ContextSaver interface {
	SaveUtterance(ctx context.Context, userID, text string) error
}

// RecentTracking points at the tracking ID a recent turn referenced.
type RecentTracking struct {
	TrackingID string
	Timestamp  time.Time
}

// Result is the enriched outcome of one processed utterance.
type Result struct {
	Intent             intent.Tag
	Confidence         float64
	ShouldNavigate     bool
	OriginalIntent     intent.Tag
	Entities           extractor.Bag
	Sentiment          sentiment.Result
	ContextualTracking bool
	RecentTracking     *RecentTracking
	Actions            action.Plan
	FollowUps          []string
	Timestamp          time.Time
	UserID             string
}

// Processor orchestrates one session's dialogue understanding: extraction,
// base classification, priority-ordered reconciliation, context enrichment,
// and action-plan generation. Reconciliation is synchronous and pure; the
// only I/O is the best-effort ContextSaver call at the edge.
//
// A Processor belongs to one session and must not process two utterances of
// that session concurrently.
type Processor struct {
	extractor  *extractor.Extractor
	classifier *intent.Classifier
	analyzer   *sentiment.Analyzer
	convo      *conversation.Context
	saver      ContextSaver
	log        *log.Logger
	clock      func() time.Time
}

// New creates a Processor with a fresh conversation context. saver may be nil.
func New(analyzer *sentiment.Analyzer, saver ContextSaver, logger *log.Logger) *Processor {
	return &Processor{
		extractor:  extractor.New(),
		classifier: intent.NewClassifier(),
		analyzer:   analyzer,
		convo:      conversation.New(),
		saver:      saver,
		log:        logger,
		clock:      time.Now,
	}
}

// Conversation exposes the session's conversation context.
func (p *Processor) Conversation() *conversation.Context {
	return p.convo
}

// SetClock replaces the timestamp source. Test hook.
func (p *Processor) SetClock(clock func() time.Time) {
	p.clock = clock
	p.convo.SetClock(clock)
}

// ProcessMessage runs the full pipeline for one utterance and records the
// turn in the conversation context.
func (p *Processor) ProcessMessage(ctx context.Context, text, userID string) Result {
	lower := strings.ToLower(strings.TrimSpace(text))

	bag := p.extractor.ExtractAll(text)
	base := p.classifier.Detect(text)

	res := p.reconcile(lower, base, bag)
	res.Entities = bag
	res.Sentiment = p.analyzer.Analyze(text)
	res.UserID = userID
	res.Timestamp = p.clock()

	p.applyFollowUpOverride(lower, &res)
	p.applyConversationContext(bag, &res)

	res.Actions = p.buildPlan(text, res, bag)
	res.FollowUps = followUpsFor(res.Intent)

	p.recordTurn(text, res, bag)

	if p.saver != nil {
		if err := p.saver.SaveUtterance(ctx, userID, text); err != nil && p.log != nil {
			p.log.Printf("[PROCESSOR] context save failed for user %s: %v", userID, err)
		}
	}

	return res
}

// applyFollowUpOverride forces follow_up_tracking when a tracking turn is in
// recent history and the customer says "again"/"also"/"another". It runs
// after reconciliation and overrides every rule.
func (p *Processor) applyFollowUpOverride(lower string, res *Result) {
	if !strings.Contains(lower, "again") &&
		!strings.Contains(lower, "also") &&
		!strings.Contains(lower, "another") {
		return
	}

	turns := p.convo.History()
	start := len(turns) - 3
	if start < 0 {
		start = 0
	}
	for _, turn := range turns[start:] {
		if turn.Intent.IsTracking() {
			res.Intent = intent.FollowUpTracking
			res.Confidence = 0.9
			return
		}
	}
}

// applyConversationContext marks the turn as a contextual reference to the
// previously discussed package when no new ID or name entity arrived, and
// surfaces the most recent tracking ID from the last turns.
func (p *Processor) applyConversationContext(bag extractor.Bag, res *Result) {
	snap := p.convo.Snapshot()

	if snap.CurrentIntent.IsTracking() && len(bag.TrackingIDs) == 0 && len(bag.Names) == 0 {
		res.ContextualTracking = true
		if res.Confidence < 0.7 {
			res.Confidence = 0.7
		}
	}

	for _, turn := range snap.LastMessages {
		id, ok := turn.Metadata["trackingId"].(string)
		if !ok || id == "" {
			continue
		}
		res.RecentTracking = &RecentTracking{TrackingID: id, Timestamp: turn.Timestamp}
		break
	}
}

// recordTurn appends the utterance to the session history and remembers the
// last tracking ID for contextual follow-ups.
func (p *Processor) recordTurn(text string, res Result, bag extractor.Bag) {
	metadata := map[string]any{
		"confidence": res.Confidence,
	}
	if len(bag.TrackingIDs) > 0 {
		metadata["trackingId"] = bag.TrackingIDs[0]
	}

	p.convo.AddMessage(text, res.Intent, metadata)

	if len(bag.TrackingIDs) > 0 {
		p.convo.SetData("lastTrackingId", bag.TrackingIDs[0])
		p.convo.SetData("lastTrackingRequest", p.clock())
	}
}

var followUpTable = map[intent.Tag][]string{
	intent.TrackByID:          {"Show me delivery details", "When will it arrive?", "Track another package"},
	intent.NavigateToTracking: {"Enter tracking ID", "Track by name", "Help with tracking"},
	intent.StatusInquiry:      {"Show location on map", "Contact support", "Track another package"},
	intent.FollowUpTracking:   {"Check another package", "Set delivery alerts", "Contact courier"},
}

func followUpsFor(tag intent.Tag) []string {
	if followUps, ok := followUpTable[tag]; ok {
		return followUps
	}
	return []string{"Track a package", "Check delivery status", "Contact support"}
}
