package executor

import (
	"context"
	"time"
)

// Control is one interactive element on the hosting UI. The host adapter is
// responsible for firing whatever reactive listeners its framework needs when
// AppendText or Commit is called.
type Control interface {
	Focus()
	SelectAll()
	Clear()
	// AppendText appends text to the control's value and fires the host's
	// input listeners. The executor calls it one character at a time.
	AppendText(s string)
	// Commit fires the host's change listeners.
	Commit()
	Value() string
	Enabled() bool
	Click() error
	// PressEnter delivers a full synthetic Enter key sequence to the control.
	PressEnter() error
	// Highlight applies a transient visual marker that the host removes
	// after the given duration.
	Highlight(d time.Duration)
}

// Surface is the executor's view of the hosting UI. Find resolves one
// selector string at a time; the ordered fallback strategy lives in the
// executor, not the host.
type Surface interface {
	Find(selector string) (Control, bool)
	// SubmitForm dispatches a submit event to the first form matching the
	// selector; false when no such form exists.
	SubmitForm(selector string) bool
	// Route is the current path or hash route.
	Route() string
	SetHash(route string)
	Origin() string
	// Open loads a URL, in a new tab when newTab is set.
	Open(url string, newTab bool) error
}

// Navigator is an injected app router. When present it is preferred over the
// Surface hash fallback.
type Navigator interface {
	Navigate(ctx context.Context, route string) error
}
