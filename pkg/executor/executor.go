package executor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"swift-assist-be/pkg/nlu/action"
)

// State is the per-action lifecycle position.
type State int

const (
	StateIdle State = iota
	StateNavigating
	StateWaitingForTarget
	StateFilling
	StateSubmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNavigating:
		return "navigating"
	case StateWaitingForTarget:
		return "waiting_for_target"
	case StateFilling:
		return "filling"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result reports the outcome of one action. Err is set instead of returned:
// one failing action never aborts its batch.
type Result struct {
	Action     action.Type
	Success    bool
	Err        string
	TrackingID string
	Message    string
	State      State
}

// BatchResult is the outcome of one ExecuteActions call. Queued means the
// executor was busy and the batch will run after the active one drains.
type BatchResult struct {
	Queued   bool
	Executed bool
	Results  []Result
}

type batch struct {
	plan   action.Plan
	userID string
}

// Executor drives autonomous UI actions against a Surface. It processes at
// most one batch at a time; batches arriving while busy are queued FIFO and
// drained after the active batch completes. A started batch always runs to
// completion.
type Executor struct {
	cfg      Config
	surface  Surface
	nav      Navigator
	observer Observer
	log      *log.Logger

	mu    sync.Mutex
	busy  bool
	queue []batch
}

// New creates an Executor. nav and observer may be nil.
func New(cfg Config, surface Surface, nav Navigator, observer Observer, logger *log.Logger) *Executor {
	return &Executor{
		cfg:      cfg,
		surface:  surface,
		nav:      nav,
		observer: observer,
		log:      logger,
	}
}

// Selector strategies, most specific first. The first selector that resolves
// wins.
var (
	fillInputSelectors = []string{
		`input[placeholder*="tracking"]`,
		`input[placeholder*="Tracking"]`,
		`input[id*="tracking"]`,
		`input[name*="tracking"]`,
		`input[id="trackingIdInput"]`,
		`input[name="trackingId"]`,
		`#tracking-input`,
		`#trackingIdInput`,
		`input[type="text"]:not([readonly])`,
		`input:not([type="hidden"]):not([readonly])`,
	}

	mountWaitSelectors = []string{
		`input[placeholder*="tracking"]`,
		`#tracking-input`,
		`input[name="trackingId"]`,
	}

	submitButtonSelectors = []string{
		`button[type="submit"]`,
		`.track-btn`,
		`#trackButton`,
		`button[data-action="track"]`,
	}

	formSelectors = []string{
		`form[id="trackingForm"]`,
		`form[action*="track"]`,
		`form`,
	}

	submitInputSelectors = []string{
		`input[placeholder*="tracking"]`,
		`input[id="trackingIdInput"]`,
		`input[name="trackingId"]`,
		`#tracking-input`,
		`input[type="text"]`,
	}
)

// ExecuteActions runs a plan. When a batch is already running the plan is
// queued and BatchResult.Queued is returned immediately.
func (e *Executor) ExecuteActions(ctx context.Context, plan action.Plan, userID string) BatchResult {
	e.mu.Lock()
	if e.busy {
		e.queue = append(e.queue, batch{plan: plan, userID: userID})
		e.mu.Unlock()
		return BatchResult{Queued: true}
	}
	e.busy = true
	e.mu.Unlock()

	results := e.runBatch(ctx, plan)

	// Drain queued batches before releasing the busy flag so an arrival
	// during the drain still queues instead of interleaving.
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.busy = false
			e.mu.Unlock()
			break
		}
		next := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		e.runBatch(ctx, next.plan)
	}

	return BatchResult{Executed: true, Results: results}
}

func (e *Executor) runBatch(ctx context.Context, plan action.Plan) []Result {
	results := make([]Result, 0, len(plan))
	for _, cmd := range plan {
		res := e.runAction(ctx, cmd)
		if !res.Success {
			e.emit(Event{Type: EventActionFailed, TrackingID: res.TrackingID, Message: res.Err})
		}
		results = append(results, res)
		sleepCtx(ctx, e.cfg.ActionDelay)
	}
	return results
}

func (e *Executor) runAction(ctx context.Context, cmd action.Command) Result {
	switch c := cmd.(type) {
	case action.AutonomousTracking:
		return e.runAutonomousTracking(ctx, c)
	case action.NavigateToTracking:
		return e.runNavigateToTracking(ctx, c)
	case action.AutoFillTrackingForm:
		return e.runAutoFill(ctx, c)
	case action.ContextualTrackingRefresh:
		return e.runContextualRefresh(ctx, c)
	case action.TrackCourierAutonomous:
		return e.runTrackCourier(c)
	case action.NavigateToCourierTracking:
		return e.runNavigateCourier(c)
	}
	return Result{
		Action: cmd.CommandType(),
		Err:    fmt.Sprintf("unknown action type: %s", cmd.CommandType()),
		State:  StateFailed,
	}
}

func (e *Executor) runAutonomousTracking(ctx context.Context, cmd action.AutonomousTracking) Result {
	if len(cmd.TrackingIDs) == 0 {
		return Result{Action: cmd.CommandType(), Err: "no tracking id", State: StateFailed}
	}
	trackingID := cmd.TrackingIDs[0]
	res := Result{Action: cmd.CommandType(), TrackingID: trackingID}

	if cmd.NavigateToTracking {
		res.State = StateNavigating
		if err := e.navigateToTrackingPage(ctx); err != nil {
			res.Err = err.Error()
			res.State = StateFailed
			return res
		}
	}
	if cmd.AutoFillForm {
		res.State = StateFilling
		if _, err := e.fillTrackingInput(ctx, trackingID); err != nil {
			res.Err = err.Error()
			res.State = StateFailed
			return res
		}
	}
	if cmd.ExecuteTracking {
		res.State = StateSubmitting
		if err := e.triggerSearch(ctx, trackingID); err != nil {
			res.Err = err.Error()
			res.State = StateFailed
			return res
		}
	}

	e.emit(Event{Type: EventAutonomousTrackingStarted, TrackingID: trackingID})
	res.Success = true
	res.State = StateDone
	res.Message = fmt.Sprintf("Tracking package %s automatically...", trackingID)
	return res
}

func (e *Executor) runNavigateToTracking(ctx context.Context, cmd action.NavigateToTracking) Result {
	res := Result{Action: cmd.CommandType(), State: StateNavigating}

	if err := e.navigate(ctx, cmd.Route); err != nil {
		res.Err = err.Error()
		res.State = StateFailed
		return res
	}

	if cmd.HighlightSection || cmd.AutoFocus {
		res.State = StateWaitingForTarget
		if input, ok := e.waitForControl(ctx, mountWaitSelectors); ok {
			if cmd.HighlightSection {
				input.Highlight(e.cfg.HighlightDuration)
			}
			if cmd.AutoFocus {
				input.Focus()
				input.SelectAll()
			}
		}
	}

	res.Success = true
	res.State = StateDone
	res.Message = "Navigated to tracking page"
	return res
}

func (e *Executor) runAutoFill(ctx context.Context, cmd action.AutoFillTrackingForm) Result {
	res := Result{Action: cmd.CommandType(), TrackingID: cmd.TrackingID}

	if _, err := e.fillTrackingInput(ctx, cmd.TrackingID); err != nil {
		res.Err = err.Error()
		res.State = StateFailed
		return res
	}

	if cmd.TriggerSearch {
		sleepCtx(ctx, e.cfg.PreSubmitDelay)
		if err := e.triggerSearch(ctx, cmd.TrackingID); err != nil {
			res.Err = err.Error()
			res.State = StateFailed
			return res
		}
	}

	res.Success = true
	res.State = StateDone
	res.Message = fmt.Sprintf("Tracking ID %s filled automatically", cmd.TrackingID)
	return res
}

func (e *Executor) runContextualRefresh(ctx context.Context, cmd action.ContextualTrackingRefresh) Result {
	res := Result{Action: cmd.CommandType(), TrackingID: cmd.TrackingID}

	if cmd.ShowMessage != "" {
		e.emit(Event{Type: EventContextualMessage, TrackingID: cmd.TrackingID, Message: cmd.ShowMessage})
	}

	if err := e.navigateToTrackingPage(ctx); err != nil {
		res.Err = err.Error()
		res.State = StateFailed
		return res
	}
	if _, err := e.fillTrackingInput(ctx, cmd.TrackingID); err != nil {
		res.Err = err.Error()
		res.State = StateFailed
		return res
	}
	if err := e.triggerSearch(ctx, cmd.TrackingID); err != nil {
		res.Err = err.Error()
		res.State = StateFailed
		return res
	}

	res.Success = true
	res.State = StateDone
	res.Message = fmt.Sprintf("Refreshed tracking information for %s", cmd.TrackingID)
	return res
}

func (e *Executor) runTrackCourier(cmd action.TrackCourierAutonomous) Result {
	trackingID := ""
	if len(cmd.TrackingIDs) > 0 {
		trackingID = cmd.TrackingIDs[0]
	}
	res := Result{Action: cmd.CommandType(), TrackingID: trackingID, State: StateNavigating}

	if cmd.Message != "" {
		e.emit(Event{Type: EventCourierMessage, TrackingID: trackingID, Message: cmd.Message})
	}

	if err := e.surface.Open(e.courierTrackingURL(trackingID), cmd.OpenNewTab); err != nil {
		res.Err = err.Error()
		res.State = StateFailed
		return res
	}

	e.emit(Event{Type: EventCourierTrackingStarted, TrackingID: trackingID, NewTab: cmd.OpenNewTab})
	res.Success = true
	res.State = StateDone
	res.Message = "Opening courier tracking in new tab..."
	return res
}

func (e *Executor) runNavigateCourier(cmd action.NavigateToCourierTracking) Result {
	res := Result{Action: cmd.CommandType(), State: StateNavigating}

	if err := e.surface.Open(e.courierTrackingURL(""), cmd.OpenNewTab); err != nil {
		res.Err = err.Error()
		res.State = StateFailed
		return res
	}

	res.Success = true
	res.State = StateDone
	res.Message = "Navigated to courier tracking page"
	return res
}

func (e *Executor) courierTrackingURL(trackingID string) string {
	base := e.surface.Origin() + "/courier-tracking.html"
	if trackingID == "" {
		return base
	}
	return base + "?trackingId=" + url.QueryEscape(trackingID)
}

func (e *Executor) navigate(ctx context.Context, route string) error {
	if e.nav != nil {
		return e.nav.Navigate(ctx, route)
	}
	e.surface.SetHash(route)
	return nil
}

// navigateToTrackingPage routes to the tracking page unless already there,
// then waits for the tracking input to mount. "Not yet mounted" is a wait
// state, not a failure, until the retries run out.
func (e *Executor) navigateToTrackingPage(ctx context.Context) error {
	if strings.Contains(e.surface.Route(), "tracking") {
		sleepCtx(ctx, e.cfg.ActionDelay)
		return nil
	}

	if err := e.navigate(ctx, "/tracking"); err != nil {
		return err
	}

	if _, ok := e.waitForControl(ctx, mountWaitSelectors); !ok {
		return errors.New("tracking input not found after navigation")
	}
	return nil
}

func (e *Executor) waitForControl(ctx context.Context, selectors []string) (Control, bool) {
	for attempt := 0; attempt < e.cfg.MountPollAttempts; attempt++ {
		for _, sel := range selectors {
			if c, ok := e.surface.Find(sel); ok {
				return c, true
			}
		}
		if !sleepCtx(ctx, e.cfg.MountPollInterval) {
			break
		}
	}
	return nil, false
}

// fillTrackingInput locates the input via the ordered strategy, clears it,
// and types the ID one character at a time so reactive listeners track every
// keystroke.
func (e *Executor) fillTrackingInput(ctx context.Context, trackingID string) (Control, error) {
	var input Control
	for _, sel := range fillInputSelectors {
		if c, ok := e.surface.Find(sel); ok {
			input = c
			break
		}
	}
	if input == nil {
		return nil, errors.New("tracking input field not found")
	}

	input.Focus()
	input.SelectAll()
	input.Clear()

	for _, r := range trackingID {
		input.AppendText(string(r))
		sleepCtx(ctx, e.cfg.TypeDelay)
	}
	input.Commit()
	input.Highlight(e.cfg.HighlightDuration)

	return input, nil
}

// triggerSearch tries the submit strategies in order: an enabled
// submit-labeled button, a form submit dispatch, then a synthetic Enter on
// the filled input. The first strategy that applies stops the chain.
func (e *Executor) triggerSearch(ctx context.Context, trackingID string) error {
	for _, sel := range submitButtonSelectors {
		btn, ok := e.surface.Find(sel)
		if !ok || !btn.Enabled() {
			continue
		}
		if err := btn.Click(); err != nil {
			return err
		}
		sleepCtx(ctx, e.cfg.PostSubmitDelay)
		return nil
	}

	for _, sel := range formSelectors {
		if e.surface.SubmitForm(sel) {
			sleepCtx(ctx, e.cfg.PostSubmitDelay)
			return nil
		}
	}

	for _, sel := range submitInputSelectors {
		input, ok := e.surface.Find(sel)
		if !ok || !strings.Contains(input.Value(), trackingID) {
			continue
		}
		if err := input.PressEnter(); err != nil {
			return err
		}
		sleepCtx(ctx, e.cfg.PostSubmitDelay)
		return nil
	}

	if e.log != nil {
		e.log.Printf("[EXECUTOR] no submit strategy applied for %s", trackingID)
	}
	return errors.New("could not find tracking button or form")
}

// sleepCtx sleeps for d or until the context is done; false on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
