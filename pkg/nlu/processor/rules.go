package processor

import (
	"regexp"
	"strings"

	"swift-assist-be/pkg/nlu/extractor"
	"swift-assist-be/pkg/nlu/intent"
)

// ruleInput is everything a reconciliation rule may inspect.
type ruleInput struct {
	lower string
	base  intent.Result
	bag   extractor.Bag
}

// rule is one priority-ordered reconciliation step. match decides whether the
// rule fires; apply rewrites the result. First match wins.
type rule struct {
	name  string
	match func(in ruleInput) bool
	apply func(in ruleInput, res *Result)
}

var (
	trackItemSwiftRe    = regexp.MustCompile(`(?i)\btrack\s+(?:this\s+)?(?:item|package|shipment|cargo|parcel)\s+(?:swift\s+)?([A-Z0-9-]+)\b`)
	trackPackageSwiftRe = regexp.MustCompile(`(?i)\btrack\s+(?:this\s+)?(?:package|shipment|cargo|parcel)\s+swift\s+([A-Z0-9-]+)\b`)
	trackCourierOnlyRe  = regexp.MustCompile(`(?i)\btrack\s+(?:this\s+)?courier\b`)
)

// reconciliationRules is the full priority order. The sequence is a behavioral
// contract: rule 3 is shadowed by rule 1 (any courier keyword already fires
// rule 1) and is kept anyway so removing rule 1 cannot silently change what
// courier+phrase messages resolve to.
var reconciliationRules = []rule{
	{
		name: "courier keyword or explicit track-courier phrase",
		match: func(in ruleInput) bool {
			return in.bag.HasCourierKeyword || trackCourierOnlyRe.MatchString(in.lower)
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.TrackCourierAutonomous
			res.Confidence = 0.99
			res.ShouldNavigate = false
		},
	},
	{
		name: "track this item/package swift pattern",
		match: func(in ruleInput) bool {
			return trackItemSwiftRe.MatchString(in.lower) || trackPackageSwiftRe.MatchString(in.lower)
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.TrackByID
			res.Confidence = 0.99
			res.ShouldNavigate = true
		},
	},
	{
		name: "courier keyword with tracking phrase",
		match: func(in ruleInput) bool {
			return in.bag.HasCourierKeyword && in.bag.HasTrackingPhrase
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.TrackCourierAutonomous
			res.Confidence = 0.98
			res.ShouldNavigate = false
		},
	},
	{
		name: "courier keyword with bare track",
		match: func(in ruleInput) bool {
			return in.bag.HasCourierKeyword && strings.Contains(in.lower, "track")
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.TrackCourier
			res.Confidence = 0.95
			res.ShouldNavigate = false
		},
	},
	{
		name: "tracking id with tracking phrase",
		match: func(in ruleInput) bool {
			return len(in.bag.TrackingIDs) > 0 && in.bag.HasTrackingPhrase && !in.bag.HasCourierKeyword
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.TrackByID
			res.Confidence = 0.99
			res.ShouldNavigate = true
		},
	},
	{
		name: "tracking id alone",
		match: func(in ruleInput) bool {
			return len(in.bag.TrackingIDs) > 0 && !in.bag.HasCourierKeyword
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.TrackByID
			res.Confidence = 0.98
			res.ShouldNavigate = true
		},
	},
	{
		name: "base navigate_track with tracking phrase",
		match: func(in ruleInput) bool {
			return in.base.Intent == intent.NavigateTrack && in.bag.HasTrackingPhrase
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.NavigateToTracking
			res.Confidence = in.base.Confidence
			if res.Confidence < 0.9 {
				res.Confidence = 0.9
			}
			res.ShouldNavigate = true
		},
	},
	{
		name: "tracking phrase the base classifier missed",
		match: func(in ruleInput) bool {
			return in.bag.HasTrackingPhrase && !in.base.ShouldNavigate
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.NavigateToTracking
			res.Confidence = 0.88
			res.ShouldNavigate = true
		},
	},
	{
		name: "customer name with tracking keyword",
		match: func(in ruleInput) bool {
			return len(in.bag.Names) > 0 &&
				(strings.Contains(in.lower, "track") ||
					strings.Contains(in.lower, "where") ||
					strings.Contains(in.lower, "status"))
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.TrackByName
			res.Confidence = 0.85
			res.ShouldNavigate = true
		},
	},
	{
		name: "status keyword with what/current",
		match: func(in ruleInput) bool {
			return len(in.bag.StatusKeywords) > 0 &&
				(strings.Contains(in.lower, "what") || strings.Contains(in.lower, "current"))
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.StatusInquiry
			res.Confidence = 0.8
		},
	},
	{
		name: "where without tracking id",
		match: func(in ruleInput) bool {
			return strings.Contains(in.lower, "where") && len(in.bag.TrackingIDs) == 0
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.LocationInquiry
			res.Confidence = 0.75
		},
	},
	{
		name: "when with deliver/arrive",
		match: func(in ruleInput) bool {
			return strings.Contains(in.lower, "when") &&
				(strings.Contains(in.lower, "deliver") || strings.Contains(in.lower, "arrive"))
		},
		apply: func(in ruleInput, res *Result) {
			res.Intent = intent.DeliveryTimeInquiry
			res.Confidence = 0.8
		},
	},
}

// reconcile applies the priority-ordered rule chain on top of the base
// classification. With no matching rule, the base result stands.
func (p *Processor) reconcile(lower string, base intent.Result, bag extractor.Bag) Result {
	res := Result{
		Intent:         base.Intent,
		Confidence:     base.Confidence,
		ShouldNavigate: base.ShouldNavigate,
		OriginalIntent: base.Intent,
	}

	in := ruleInput{lower: lower, base: base, bag: bag}
	for _, r := range reconciliationRules {
		if r.match(in) {
			r.apply(in, &res)
			break
		}
	}
	return res
}
