package executor

// EventType names one executor lifecycle notification.
type EventType string

const (
	EventAutonomousTrackingStarted EventType = "autonomous_tracking_started"
	EventCourierTrackingStarted    EventType = "courier_tracking_started"
	EventCourierMessage            EventType = "courier_message"
	EventContextualMessage         EventType = "contextual_message"
	EventActionFailed              EventType = "action_failed"
)

// Event is one lifecycle notification pushed to the observer.
type Event struct {
	Type       EventType
	TrackingID string
	Message    string
	NewTab     bool
}

// Observer receives executor lifecycle events. Called synchronously from the
// batch goroutine; implementations must not block.
type Observer func(Event)

func (e *Executor) emit(ev Event) {
	if e.observer != nil {
		e.observer(ev)
	}
}
