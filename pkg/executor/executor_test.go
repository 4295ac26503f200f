package executor

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"swift-assist-be/pkg/nlu/action"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ActionDelay = 0
	cfg.TypeDelay = 0
	cfg.MountPollInterval = time.Millisecond
	cfg.PreSubmitDelay = 0
	cfg.PostSubmitDelay = 0
	return cfg
}

type fakeControl struct {
	mu          sync.Mutex
	value       string
	appends     int
	commits     int
	focused     bool
	highlighted bool
	enabled     bool
	clicks      int
	enters      int
	blockFill   chan struct{}
}

func (f *fakeControl) Focus()     { f.mu.Lock(); f.focused = true; f.mu.Unlock() }
func (f *fakeControl) SelectAll() {}
func (f *fakeControl) Clear()     { f.mu.Lock(); f.value = ""; f.mu.Unlock() }
func (f *fakeControl) AppendText(s string) {
	if f.blockFill != nil {
		<-f.blockFill
		f.blockFill = nil
	}
	f.mu.Lock()
	f.value += s
	f.appends++
	f.mu.Unlock()
}
func (f *fakeControl) Commit() { f.mu.Lock(); f.commits++; f.mu.Unlock() }
func (f *fakeControl) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}
func (f *fakeControl) Enabled() bool { return f.enabled }
func (f *fakeControl) Click() error {
	f.mu.Lock()
	f.clicks++
	f.mu.Unlock()
	return nil
}
func (f *fakeControl) PressEnter() error {
	f.mu.Lock()
	f.enters++
	f.mu.Unlock()
	return nil
}
func (f *fakeControl) Highlight(time.Duration) { f.mu.Lock(); f.highlighted = true; f.mu.Unlock() }

type fakeSurface struct {
	mu       sync.Mutex
	controls map[string]*fakeControl
	forms    map[string]int
	route    string
	hash     string
	opened   []string
	newTabs  []bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		controls: make(map[string]*fakeControl),
		forms:    make(map[string]int),
	}
}

func (s *fakeSurface) Find(selector string) (Control, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.controls[selector]
	if !ok {
		return nil, false
	}
	return c, true
}

func (s *fakeSurface) SubmitForm(selector string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[selector]; !ok {
		return false
	}
	s.forms[selector]++
	return true
}

func (s *fakeSurface) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hash != "" {
		return s.hash
	}
	return s.route
}

func (s *fakeSurface) SetHash(route string) {
	s.mu.Lock()
	s.hash = route
	s.mu.Unlock()
}

func (s *fakeSurface) Origin() string { return "https://swiftdelivery.example" }

func (s *fakeSurface) Open(url string, newTab bool) error {
	s.mu.Lock()
	s.opened = append(s.opened, url)
	s.newTabs = append(s.newTabs, newTab)
	s.mu.Unlock()
	return nil
}

func TestAutonomousTrackingFullSequence(t *testing.T) {
	surface := newFakeSurface()
	input := &fakeControl{}
	surface.controls[`input[placeholder*="tracking"]`] = input
	btn := &fakeControl{enabled: true}
	surface.controls[`button[type="submit"]`] = btn

	e := New(testConfig(), surface, nil, nil, nil)
	res := e.ExecuteActions(context.Background(), action.Plan{
		action.AutonomousTracking{
			TrackingIDs:        []string{"SWIFT-1111111111-AAAAA"},
			NavigateToTracking: true,
			AutoFillForm:       true,
			ExecuteTracking:    true,
		},
	}, "user-1")

	if res.Queued || !res.Executed {
		t.Fatalf("batch result = %+v", res)
	}
	if len(res.Results) != 1 || !res.Results[0].Success {
		t.Fatalf("results = %+v", res.Results)
	}
	if input.Value() != "SWIFT-1111111111-AAAAA" {
		t.Errorf("input value = %q", input.Value())
	}
	if input.appends != len("SWIFT-1111111111-AAAAA") {
		t.Errorf("appends = %d, want one per character", input.appends)
	}
	if input.commits != 1 || !input.highlighted {
		t.Errorf("commits = %d highlighted = %v", input.commits, input.highlighted)
	}
	if btn.clicks != 1 {
		t.Errorf("button clicks = %d, want 1", btn.clicks)
	}
	if !strings.Contains(surface.hash, "/tracking") {
		t.Errorf("hash = %q, want /tracking navigation fallback", surface.hash)
	}
}

func TestSubmitStrategyOrder(t *testing.T) {
	t.Run("form submit when no button", func(t *testing.T) {
		surface := newFakeSurface()
		surface.route = "/tracking"
		surface.controls[`#tracking-input`] = &fakeControl{}
		surface.forms[`form`] = 0

		e := New(testConfig(), surface, nil, nil, nil)
		res := e.ExecuteActions(context.Background(), action.Plan{
			action.AutoFillTrackingForm{TrackingID: "1234567890", TriggerSearch: true},
		}, "user-1")

		if !res.Results[0].Success {
			t.Fatalf("result = %+v", res.Results[0])
		}
		if surface.forms[`form`] != 1 {
			t.Errorf("form submits = %d, want 1", surface.forms[`form`])
		}
	})

	t.Run("enter fallback when no button or form", func(t *testing.T) {
		surface := newFakeSurface()
		input := &fakeControl{}
		surface.controls[`#tracking-input`] = input
		surface.controls[`input[type="text"]`] = input

		e := New(testConfig(), surface, nil, nil, nil)
		res := e.ExecuteActions(context.Background(), action.Plan{
			action.AutoFillTrackingForm{TrackingID: "1234567890", TriggerSearch: true},
		}, "user-1")

		if !res.Results[0].Success {
			t.Fatalf("result = %+v", res.Results[0])
		}
		if input.enters != 1 {
			t.Errorf("enter presses = %d, want 1", input.enters)
		}
	})

	t.Run("disabled button skipped", func(t *testing.T) {
		surface := newFakeSurface()
		input := &fakeControl{}
		surface.controls[`#tracking-input`] = input
		surface.controls[`input[type="text"]`] = input
		surface.controls[`button[type="submit"]`] = &fakeControl{enabled: false}

		e := New(testConfig(), surface, nil, nil, nil)
		e.ExecuteActions(context.Background(), action.Plan{
			action.AutoFillTrackingForm{TrackingID: "1234567890", TriggerSearch: true},
		}, "user-1")

		if input.enters != 1 {
			t.Errorf("enter presses = %d, want fallback past the disabled button", input.enters)
		}
	})
}

func TestFailedActionDoesNotAbortBatch(t *testing.T) {
	surface := newFakeSurface() // no controls at all
	cfg := testConfig()
	cfg.MountPollAttempts = 1

	e := New(cfg, surface, nil, nil, nil)
	res := e.ExecuteActions(context.Background(), action.Plan{
		action.AutoFillTrackingForm{TrackingID: "1234567890"},
		action.NavigateToCourierTracking{Route: "/courier-tracking", OpenNewTab: true},
	}, "user-1")

	if len(res.Results) != 2 {
		t.Fatalf("results = %+v, want both actions reported", res.Results)
	}
	if res.Results[0].Success {
		t.Error("fill with no input should fail")
	}
	if res.Results[0].State != StateFailed {
		t.Errorf("failed action state = %s", res.Results[0].State)
	}
	if !res.Results[1].Success {
		t.Errorf("second action should still run: %+v", res.Results[1])
	}
}

func TestCourierTrackingOpensNewTabWithID(t *testing.T) {
	surface := newFakeSurface()
	var events []Event
	e := New(testConfig(), surface, nil, func(ev Event) { events = append(events, ev) }, nil)

	res := e.ExecuteActions(context.Background(), action.Plan{
		action.TrackCourierAutonomous{
			TrackingIDs: []string{"SWIFT-1111111111-AAAAA"},
			OpenNewTab:  true,
			Message:     "Opening courier tracking...",
		},
	}, "user-1")

	if !res.Results[0].Success {
		t.Fatalf("result = %+v", res.Results[0])
	}
	wantURL := "https://swiftdelivery.example/courier-tracking.html?trackingId=SWIFT-1111111111-AAAAA"
	if len(surface.opened) != 1 || surface.opened[0] != wantURL {
		t.Errorf("opened = %v, want %q", surface.opened, wantURL)
	}
	if !surface.newTabs[0] {
		t.Error("courier page should open in a new tab")
	}

	var started bool
	for _, ev := range events {
		if ev.Type == EventCourierTrackingStarted && ev.NewTab {
			started = true
		}
	}
	if !started {
		t.Errorf("events = %v, want courier_tracking_started with newTab", events)
	}
}

func TestBusyExecutorQueuesSecondBatch(t *testing.T) {
	surface := newFakeSurface()
	surface.route = "/tracking"
	release := make(chan struct{})
	input := &fakeControl{blockFill: release}
	surface.controls[`#tracking-input`] = input
	surface.controls[`input[type="text"]`] = input

	e := New(testConfig(), surface, nil, nil, nil)

	done := make(chan BatchResult, 1)
	go func() {
		done <- e.ExecuteActions(context.Background(), action.Plan{
			action.AutoFillTrackingForm{TrackingID: "1234567890", TriggerSearch: true},
		}, "user-1")
	}()

	// Wait until the first batch is inside the fill step.
	deadline := time.After(2 * time.Second)
	for {
		e.mu.Lock()
		busy := e.busy
		e.mu.Unlock()
		if busy {
			break
		}
		select {
		case <-deadline:
			t.Fatal("executor never became busy")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	second := e.ExecuteActions(context.Background(), action.Plan{
		action.AutoFillTrackingForm{TrackingID: "9999999999", TriggerSearch: false},
	}, "user-1")
	if !second.Queued {
		t.Fatalf("second batch = %+v, want queued", second)
	}

	close(release)
	first := <-done
	if !first.Executed {
		t.Fatalf("first batch = %+v", first)
	}

	// The queued batch drained inside the first call; its fill ran last.
	if got := input.Value(); got != "9999999999" {
		t.Errorf("final input value = %q, want the queued batch's id", got)
	}
}

func TestStateString(t *testing.T) {
	states := map[State]string{
		StateIdle:             "idle",
		StateNavigating:       "navigating",
		StateWaitingForTarget: "waiting_for_target",
		StateFilling:          "filling",
		StateSubmitting:       "submitting",
		StateDone:             "done",
		StateFailed:           "failed",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
