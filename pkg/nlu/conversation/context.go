package conversation

import (
	"sync"
	"time"

	"swift-assist-be/pkg/nlu/intent"
)

const maxHistoryLength = 10

// Turn is one recorded conversation turn.
type Turn struct {
	Message   string
	Intent    intent.Tag
	Timestamp time.Time
	Metadata  map[string]any
}

// Snapshot is a read-only view of the conversation state: the running intent,
// the last three turns, and a copy of the scratchpad.
type Snapshot struct {
	CurrentIntent intent.Tag
	LastMessages  []Turn
	Data          map[string]any
}

// Context tracks short-term conversation memory for one session: a bounded
// turn history (oldest evicted first), the running intent, and a scratchpad
// for contextual values such as the last tracking ID.
//
// Safe for concurrent use, though a session's turns are expected to arrive
// one at a time.
type Context struct {
	mu      sync.Mutex
	history []Turn
	current intent.Tag
	data    map[string]any
	clock   func() time.Time
}

// New creates an empty conversation context.
func New() *Context {
	return &Context{
		data:  make(map[string]any),
		clock: time.Now,
	}
}

// SetClock replaces the timestamp source. Test hook.
func (c *Context) SetClock(clock func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = clock
}

// AddMessage appends a turn, evicting the oldest one past capacity, and makes
// its intent the current intent.
func (c *Context) AddMessage(message string, tag intent.Tag, metadata map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, Turn{
		Message:   message,
		Intent:    tag,
		Timestamp: c.clock(),
		Metadata:  metadata,
	})
	if len(c.history) > maxHistoryLength {
		c.history = c.history[1:]
	}
	c.current = tag
}

// Current returns the intent of the most recent turn.
func (c *Context) Current() intent.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// History returns a copy of all retained turns, oldest first.
func (c *Context) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.history))
	copy(out, c.history)
	return out
}

// Snapshot returns the current intent, the last three turns, and the
// scratchpad contents.
func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := len(c.history) - 3
	if start < 0 {
		start = 0
	}
	last := make([]Turn, len(c.history)-start)
	copy(last, c.history[start:])

	data := make(map[string]any, len(c.data))
	for k, v := range c.data {
		data[k] = v
	}

	return Snapshot{CurrentIntent: c.current, LastMessages: last, Data: data}
}

// SetData stores a scratchpad value.
func (c *Context) SetData(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

// Data returns a scratchpad value; the second return is false when unset.
func (c *Context) Data(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

// HasRecentIntent reports whether any retained turn carries the tag within the
// window. Zero window means the 5s default.
func (c *Context) HasRecentIntent(tag intent.Tag, window time.Duration) bool {
	if window == 0 {
		window = 5 * time.Second
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	for _, turn := range c.history {
		if turn.Intent == tag && now.Sub(turn.Timestamp) < window {
			return true
		}
	}
	return false
}

var followUpSuggestions = map[intent.Tag][]string{
	intent.NavigateHome:     {"Check our gallery", "Learn about services"},
	intent.NavigateServices: {"View pricing", "Book a shipment"},
	intent.NavigateTrack:    {"Track another package", "Contact support"},
	intent.NavigateContact:  {"View gallery", "Check FAQ"},
}

// FollowUpSuggestions returns quick-reply suggestions for the current intent.
func (c *Context) FollowUpSuggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return followUpSuggestions[c.current]
}

// Clear discards history, current intent, and scratchpad.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
	c.current = ""
	c.data = make(map[string]any)
}
