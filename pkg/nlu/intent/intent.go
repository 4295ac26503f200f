package intent

import "strings"

// Tag is a stable, closed classification of what the customer wants.
type Tag string

// Base navigation and information intents.
const (
	NavigateHome         Tag = "navigate_home"
	NavigateGallery      Tag = "navigate_gallery"
	NavigateServices     Tag = "navigate_services"
	NavigateTrack        Tag = "navigate_track"
	NavigateContact      Tag = "navigate_contact"
	NavigateFAQ          Tag = "navigate_faq"
	NavigateBooking      Tag = "navigate_booking"
	NavigateTestimonials Tag = "navigate_testimonials"
	AboutServices        Tag = "about_services"
	AboutTracking        Tag = "about_tracking"
	AboutCompany         Tag = "about_company"
	PricingInfo          Tag = "pricing_info"
	GeneralChat          Tag = "general_chat"
)

// Enhanced intents produced by the reconciliation layer on top of the base
// classifier.
const (
	TrackPackageSpecific    Tag = "track_package_specific"
	TrackByID               Tag = "track_by_id"
	TrackByName             Tag = "track_by_name"
	NavigateToTracking      Tag = "navigate_to_tracking"
	AutonomousTracking      Tag = "autonomous_tracking"
	FollowUpTracking        Tag = "follow_up_tracking"
	StatusInquiry           Tag = "status_inquiry"
	LocationInquiry         Tag = "location_inquiry"
	DeliveryTimeInquiry     Tag = "delivery_time_inquiry"
	MultiplePackageTracking Tag = "multiple_package_tracking"
	TrackCourier            Tag = "track_courier"
	TrackCourierAutonomous  Tag = "track_courier_autonomous"
)

// IsTracking reports whether the tag belongs to the tracking family.
func (t Tag) IsTracking() bool {
	return strings.Contains(string(t), "track")
}

// IsCourier reports whether the tag targets courier (not package) tracking.
func (t Tag) IsCourier() bool {
	return strings.Contains(string(t), "courier")
}

// Section is the website section a navigation intent resolves to.
type Section struct {
	ID    string
	Label string
}

var sectionMap = map[Tag]Section{
	NavigateHome:         {ID: "home", Label: "Home"},
	NavigateGallery:      {ID: "gallery", Label: "Gallery"},
	NavigateServices:     {ID: "services", Label: "Services"},
	NavigateTrack:        {ID: "track", Label: "Tracking"},
	NavigateContact:      {ID: "contact", Label: "Contact"},
	NavigateFAQ:          {ID: "faq", Label: "FAQ"},
	NavigateBooking:      {ID: "booking", Label: "Booking"},
	NavigateTestimonials: {ID: "testimonials", Label: "Testimonials"},
	AboutServices:        {ID: "services", Label: "Services Info"},
	AboutTracking:        {ID: "track", Label: "Tracking Info"},
	AboutCompany:         {ID: "home", Label: "Company Info"},
	PricingInfo:          {ID: "services", Label: "Pricing"},
}

// SectionFor returns the website section mapped to a tag, if any.
func SectionFor(t Tag) (Section, bool) {
	s, ok := sectionMap[t]
	return s, ok
}
