package conversation

import (
	"fmt"
	"testing"
	"time"

	"swift-assist-be/pkg/nlu/intent"
)

func TestHistoryBound(t *testing.T) {
	c := New()

	for i := 0; i < 11; i++ {
		c.AddMessage(fmt.Sprintf("message %d", i), intent.GeneralChat, nil)
	}

	history := c.History()
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	if history[0].Message != "message 1" {
		t.Errorf("oldest retained = %q, want message 1 (message 0 evicted)", history[0].Message)
	}
	if history[9].Message != "message 10" {
		t.Errorf("newest = %q, want message 10", history[9].Message)
	}
}

func TestCurrentFollowsLastTurn(t *testing.T) {
	c := New()
	c.AddMessage("track my package", intent.NavigateTrack, nil)
	c.AddMessage("thanks", intent.GeneralChat, nil)

	if c.Current() != intent.GeneralChat {
		t.Errorf("Current() = %s, want general_chat", c.Current())
	}
}

func TestSnapshotReturnsLastThree(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.AddMessage(fmt.Sprintf("m%d", i), intent.GeneralChat, nil)
	}

	snap := c.Snapshot()
	if len(snap.LastMessages) != 3 {
		t.Fatalf("LastMessages length = %d, want 3", len(snap.LastMessages))
	}
	if snap.LastMessages[0].Message != "m2" {
		t.Errorf("LastMessages[0] = %q, want m2", snap.LastMessages[0].Message)
	}
}

func TestScratchpad(t *testing.T) {
	c := New()
	c.SetData("lastTrackingId", "SWIFT-1234567890-ABC")

	v, ok := c.Data("lastTrackingId")
	if !ok || v != "SWIFT-1234567890-ABC" {
		t.Errorf("Data = %v, %v", v, ok)
	}
	if _, ok := c.Data("missing"); ok {
		t.Error("unset key should report absent")
	}
}

func TestHasRecentIntent(t *testing.T) {
	c := New()
	now := time.Now()
	c.SetClock(func() time.Time { return now })

	c.AddMessage("track it", intent.NavigateTrack, nil)

	if !c.HasRecentIntent(intent.NavigateTrack, 0) {
		t.Error("intent added just now should be recent within default window")
	}

	c.SetClock(func() time.Time { return now.Add(6 * time.Second) })
	if c.HasRecentIntent(intent.NavigateTrack, 0) {
		t.Error("intent older than the default 5s window should not be recent")
	}
	if !c.HasRecentIntent(intent.NavigateTrack, time.Minute) {
		t.Error("wider window should still include the turn")
	}
}

func TestFollowUpSuggestions(t *testing.T) {
	c := New()
	c.AddMessage("track my package", intent.NavigateTrack, nil)

	got := c.FollowUpSuggestions()
	if len(got) != 2 || got[0] != "Track another package" {
		t.Errorf("FollowUpSuggestions = %v", got)
	}

	c.Clear()
	if got := c.FollowUpSuggestions(); got != nil {
		t.Errorf("after Clear, suggestions = %v, want none", got)
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.AddMessage("hello", intent.GeneralChat, nil)
	c.SetData("k", "v")

	c.Clear()

	if len(c.History()) != 0 || c.Current() != "" {
		t.Error("Clear should drop history and current intent")
	}
	if _, ok := c.Data("k"); ok {
		t.Error("Clear should drop scratchpad data")
	}
}
