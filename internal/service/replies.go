package service

import (
	"context"
	"fmt"
	"strings"

	"swift-assist-be/pkg/nlu/intent"
	"swift-assist-be/pkg/nlu/processor"

	"github.com/google/uuid"
)

// Phrases that always hand the conversation to a human, regardless of
// sentiment scores.
var escalationPhrases = []string{
	"human agent",
	"real person",
	"talk to agent",
	"talk to a human",
	"speak to human",
	"speak to a person",
	"customer service representative",
	"live agent",
}

func wantsHumanAgent(lower string) bool {
	for _, phrase := range escalationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

var greetingWords = map[string]bool{
	"hello":     true,
	"hi":        true,
	"hey":       true,
	"heya":      true,
	"howdy":     true,
	"greetings": true,
}

func isGreeting(lower string) bool {
	fields := strings.Fields(lower)
	if len(fields) == 0 {
		return false
	}
	first := strings.Trim(fields[0], "!,.?")
	return greetingWords[first]
}

const (
	escalationReply = "I understand. Let me connect you with a human agent. " +
		"Our support desk has been notified and someone will join this chat shortly."

	llmUnavailableReply = "I'm temporarily unavailable. Would you like to connect with a human agent?"

	defaultHelperReply = "I can help you track packages, check delivery status, and answer " +
		"questions about our services. What would you like to do?"
)

// replyFor produces the canned reply for a reconciled intent. The second
// return value reports whether a rule matched; when it is false the caller
// falls through to the LLM.
func (s *chatService) replyFor(ctx context.Context, userID uuid.UUID, res *processor.Result) (string, bool) {
	switch res.Intent {
	case intent.TrackByID, intent.AutonomousTracking, intent.TrackPackageSpecific:
		if len(res.Entities.TrackingIDs) > 0 {
			return fmt.Sprintf("Tracking %s for you now. I'm opening the tracking section and filling in the number.",
				res.Entities.TrackingIDs[0]), true
		}
		return "Taking you to the tracking section. Enter your tracking number there and I'll look it up.", true

	case intent.MultiplePackageTracking:
		return fmt.Sprintf("I can check all %d shipments. Let's start with %s.",
			len(res.Entities.TrackingIDs), res.Entities.TrackingIDs[0]), true

	case intent.TrackCourier, intent.TrackCourierAutonomous:
		return "Opening live courier tracking in a new tab so you can watch the driver in real time.", true

	case intent.FollowUpTracking:
		return "Checking that shipment again for you...", true

	case intent.TrackByName:
		if len(res.Entities.Names) > 0 {
			return fmt.Sprintf("Looking up shipments addressed to %s. One moment.", res.Entities.Names[0].Value), true
		}
		return "I can search shipments by recipient name. Whose package are you looking for?", true

	case intent.NavigateToTracking:
		if res.ContextualTracking && res.RecentTracking != nil {
			return fmt.Sprintf("Still watching %s — refreshing the latest status for you.",
				res.RecentTracking.TrackingID), true
		}
		if suggestions, err := s.profile.GetTrackingSuggestions(ctx, userID, 3); err == nil && len(suggestions) > 0 {
			return fmt.Sprintf("Taking you to the tracking section. You recently asked about %s — want me to check it again?",
				suggestions[0]), true
		}
		return "Taking you to the tracking section. Enter your tracking number there.", true

	case intent.StatusInquiry:
		return "Here's what the statuses mean: \"processing\" — we've received the order, " +
			"\"picked up\" — the courier has your package, \"in transit\" — it's moving through our network, " +
			"\"out for delivery\" — it arrives today, and \"delivered\" — it's at the destination.", true

	case intent.LocationInquiry:
		return "We deliver across the whole metro area and nationwide through partner couriers. " +
			"Tell me the destination city and I'll confirm coverage and transit time.", true

	case intent.DeliveryTimeInquiry:
		return "Standard delivery takes 2-3 business days, express is next-day, and same-day is " +
			"available within the city before 2 PM. Share your tracking number for an exact estimate.", true

	case intent.AboutServices, intent.NavigateServices:
		return "SwiftDelivery offers same-day, express, and standard shipping, plus live courier " +
			"tracking for every package. Want details on any of these?", true

	case intent.PricingInfo:
		return "Pricing depends on size, weight, and speed. Standard starts at $8.99, express at " +
			"$14.99, and same-day at $24.99. I can put together a quote if you tell me more.", true

	case intent.AboutTracking:
		return "Every package gets a tracking number like SWIFT-1234567890-ABCDE. Paste it here or " +
			"in the tracking section and I'll show you where your shipment is.", true

	case intent.AboutCompany:
		return "SwiftDelivery is a courier service built around real-time visibility: live driver " +
			"maps, instant status updates, and a chat assistant that does the clicking for you.", true
	}

	// Plain navigation intents resolve through the section map.
	if section, ok := intent.SectionFor(res.Intent); ok {
		return fmt.Sprintf("Taking you to the %s section.", section.Label), true
	}

	return "", false
}
