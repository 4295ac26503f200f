package executor

import "time"

// Config holds every timing knob the executor applies. The defaults match
// the UI settling delays the hosting app was tuned for.
type Config struct {
	// ActionDelay separates consecutive actions in a batch.
	ActionDelay time.Duration
	// TypeDelay separates the per-character keystrokes of a fill.
	TypeDelay time.Duration
	// MountPollInterval and MountPollAttempts bound the wait for the target
	// control to appear after navigation.
	MountPollInterval time.Duration
	MountPollAttempts int
	// HighlightDuration is how long the transient fill marker stays on.
	HighlightDuration time.Duration
	// PreSubmitDelay runs between fill completion and search trigger.
	PreSubmitDelay time.Duration
	// PostSubmitDelay lets the UI settle after a submit strategy fires.
	PostSubmitDelay time.Duration
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		ActionDelay:       300 * time.Millisecond,
		TypeDelay:         50 * time.Millisecond,
		MountPollInterval: 200 * time.Millisecond,
		MountPollAttempts: 10,
		HighlightDuration: 3 * time.Second,
		PreSubmitDelay:    500 * time.Millisecond,
		PostSubmitDelay:   800 * time.Millisecond,
	}
}
