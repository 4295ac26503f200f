package action

// Type identifies one kind of autonomous UI action.
type Type string

const (
	TypeTrackCourierAutonomous    Type = "TRACK_COURIER_AUTONOMOUS"
	TypeNavigateToCourierTracking Type = "NAVIGATE_TO_COURIER_TRACKING"
	TypeAutonomousTracking        Type = "AUTONOMOUS_TRACKING"
	TypeNavigateToTracking        Type = "NAVIGATE_TO_TRACKING"
	TypeContextualTrackingRefresh Type = "CONTEXTUAL_TRACKING_REFRESH"
	TypeAutoFillTrackingForm      Type = "AUTO_FILL_TRACKING_FORM"
)

// Command is one autonomous action for the executor. Implementations are the
// closed set of structs in this package; consumers switch on the concrete
// type, not on Type().
type Command interface {
	CommandType() Type
}

// Plan is an ordered action batch for one conversation turn. Plans may carry
// overlapping commands targeting the same control; the executor tolerates the
// redundancy.
type Plan []Command

// TrackCourierAutonomous opens the courier tracking page, in a new tab, with
// the tracking ID in the query string when known.
type TrackCourierAutonomous struct {
	TrackingIDs []string
	OpenNewTab  bool
	Message     string
}

func (TrackCourierAutonomous) CommandType() Type { return TypeTrackCourierAutonomous }

// NavigateToCourierTracking routes to the courier tracking page without a
// tracking ID payload.
type NavigateToCourierTracking struct {
	Route      string
	OpenNewTab bool
	Message    string
}

func (NavigateToCourierTracking) CommandType() Type { return TypeNavigateToCourierTracking }

// AutonomousTracking performs the full navigate + fill + submit sequence for
// a package tracking ID.
type AutonomousTracking struct {
	TrackingIDs        []string
	NavigateToTracking bool
	AutoFillForm       bool
	ExecuteTracking    bool
	Message            string
}

func (AutonomousTracking) CommandType() Type { return TypeAutonomousTracking }

// NavigateToTracking routes to the package tracking section and focuses it.
type NavigateToTracking struct {
	Route            string
	HighlightSection bool
	AutoFocus        bool
}

func (NavigateToTracking) CommandType() Type { return TypeNavigateToTracking }

// ContextualTrackingRefresh re-checks a package the customer referenced in a
// recent turn without naming it again.
type ContextualTrackingRefresh struct {
	TrackingID  string
	ShowMessage string
}

func (ContextualTrackingRefresh) CommandType() Type { return TypeContextualTrackingRefresh }

// AutoFillTrackingForm fills the tracking input and optionally triggers the
// search.
type AutoFillTrackingForm struct {
	TrackingID    string
	TriggerSearch bool
}

func (AutoFillTrackingForm) CommandType() Type { return TypeAutoFillTrackingForm }
