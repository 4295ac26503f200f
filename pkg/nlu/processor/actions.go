package processor

import (
	"fmt"

	"swift-assist-be/pkg/nlu/action"
	"swift-assist-be/pkg/nlu/extractor"
	"swift-assist-be/pkg/nlu/intent"
)

// buildPlan maps the reconciled intent to its action batch. The mapping is
// 1:1 per intent plus two unconditional add-ons (contextual refresh, generic
// auto-fill); a plan may therefore carry overlapping fill commands for the
// same control, which the executor tolerates.
func (p *Processor) buildPlan(text string, res Result, bag extractor.Bag) action.Plan {
	var plan action.Plan

	switch {
	case res.Intent == intent.TrackCourierAutonomous:
		cmd := action.TrackCourierAutonomous{
			TrackingIDs: bag.TrackingIDs,
			OpenNewTab:  true,
			Message:     "Opening courier tracking page...",
		}
		if len(bag.TrackingIDs) > 0 {
			cmd.Message = fmt.Sprintf("Opening courier tracking for %s in new tab...", bag.TrackingIDs[0])
		}
		plan = append(plan, cmd)

	case res.Intent == intent.TrackCourier:
		plan = append(plan, action.NavigateToCourierTracking{
			Route:      "/courier-tracking",
			OpenNewTab: true,
			Message:    "Opening courier tracking page in new tab...",
		})

	case res.Intent == intent.TrackByID && len(bag.TrackingIDs) > 0:
		trackingID := bag.TrackingIDs[0]
		// The phrase-anchored capture is the most specific ID source when the
		// customer spelled out "track this item swift X".
		if m := trackItemSwiftRe.FindStringSubmatch(text); m != nil {
			trackingID = m[1]
		}
		plan = append(plan, action.AutonomousTracking{
			TrackingIDs:        []string{trackingID},
			NavigateToTracking: true,
			AutoFillForm:       true,
			ExecuteTracking:    true,
			Message:            fmt.Sprintf("Tracking package %s automatically...", trackingID),
		})
	}

	if res.ShouldNavigate && res.Intent.IsTracking() && !res.Intent.IsCourier() {
		plan = append(plan, action.NavigateToTracking{
			Route:            "/tracking",
			HighlightSection: true,
			AutoFocus:        true,
		})
	}

	if res.ContextualTracking && res.RecentTracking != nil {
		plan = append(plan, action.ContextualTrackingRefresh{
			TrackingID:  res.RecentTracking.TrackingID,
			ShowMessage: "Checking for updates on your recent package...",
		})
	}

	if len(bag.TrackingIDs) > 0 && !res.Intent.IsCourier() {
		plan = append(plan, action.AutoFillTrackingForm{
			TrackingID:    bag.TrackingIDs[0],
			TriggerSearch: true,
		})
	}

	return plan
}
