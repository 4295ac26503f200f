package intent

// defaultBank is the full keyword/phrase vocabulary, one entry per intent.
// Order matters: it is the tie-break for equal scores.
var defaultBank = []patternSet{
	{
		tag:      NavigateHome,
		keywords: []string{"home", "main page", "homepage", "start", "beginning", "main", "welcome"},
		phrases:  []string{"take me home", "go home", "show me home", "go to home page"},
	},
	{
		tag:      NavigateGallery,
		keywords: []string{"gallery", "photos", "images", "pictures", "portfolio", "showcase", "facilities", "fleet", "equipment"},
		phrases:  []string{"show me gallery", "show photos", "view gallery", "see our facilities", "show equipment"},
	},
	{
		tag:      NavigateServices,
		keywords: []string{"services", "offerings", "what do you offer", "capabilities", "features", "packages", "airfreight", "warehouse", "customs"},
		phrases:  []string{"show services", "what services", "tell me about services", "service options", "your offerings"},
	},
	{
		tag: NavigateTrack,
		keywords: []string{
			"track", "tracking", "where is my", "status", "shipment", "package", "delivery",
			"cargo", "courier", "find", "locate", "trace", "monitor", "follow", "check",
			"swift", "has it arrived", "when will it arrive", "where is it", "locate my", "carrying",
		},
		phrases: []string{
			"track my package",
			"check tracking",
			"where is my shipment",
			"track shipment",
			"delivery status",
			"please track",
			"help me track",
			"i want to track",
			"can you track",
			"track this package",
			"track this shipment",
			"find my package",
			"find my shipment",
			"locate my package",
			"locate my shipment",
			"where is my package",
			"where is my cargo",
			"where is my parcel",
			"when will my package",
			"when will my shipment",
			"when will my delivery",
			"has my package arrived",
			"has my shipment arrived",
			"current status of",
			"package status",
			"shipment status",
			"cargo status",
			"delivery update",
			"tracking update",
			"check status",
			"trace package",
			"trace shipment",
			"trace cargo",
			"monitor package",
			"monitor shipment",
			"follow package",
			"follow shipment",
			"help track",
			"track for me",
			"please help me track",
			"can you help track",
			"i need to track",
			"need help tracking",
			"package tracking",
			"shipment tracking",
			"cargo tracking",
			"live tracking",
			"real-time tracking",
			"trace my",
			"find status of",
			"check status of",
			"what is the status",
			"what is the location",
			"show me tracking",
			"show tracking info",
			"show delivery status",
			"help with tracking",
			"tracking help",
			"track this",
			"track id",
			"tracking number",
			"reference number",
			"shipment number",
			"cargo number",
			"parcel tracking",
			"parcel status",
			"package location",
			"shipment location",
			"delivery location",
			"current location of",
			"last update on",
			"track and trace",
			"trace and track",
			"package trace",
			"shipment trace",
			"track the courier carrying",
			"track courier carrying",
			"track package carrying",
			"track the package",
		},
	},
	{
		tag:      NavigateContact,
		keywords: []string{"contact", "email", "phone", "address", "reach us", "call", "message", "contact us", "get in touch"},
		phrases:  []string{"contact us", "how to contact", "get in touch", "contact information", "reach out"},
	},
	{
		tag:      NavigateFAQ,
		keywords: []string{"faq", "frequently asked", "questions", "help", "common issues", "troubleshoot", "problem", "issue"},
		phrases:  []string{"show faq", "frequently asked questions", "common questions", "help me", "how do i"},
	},
	{
		tag:      NavigateBooking,
		keywords: []string{"booking", "book", "reserve", "schedule", "send package", "shipment", "order", "booking dashboard"},
		phrases:  []string{"make booking", "book shipment", "schedule delivery", "send package", "new shipment"},
	},
	{
		tag:      NavigateTestimonials,
		keywords: []string{"testimonial", "reviews", "feedback", "customers", "what people say", "customer feedback", "success stories"},
		phrases:  []string{"show testimonials", "customer reviews", "what customers say", "success stories"},
	},
	{
		tag:      AboutServices,
		keywords: []string{"airfreight", "warehouse", "customs", "temperature", "dangerous goods", "cargo", "transport", "logistics"},
		phrases:  []string{"tell me about services", "explain services", "service details", "what can you do"},
	},
	{
		tag:      AboutTracking,
		keywords: []string{"tracking system", "real-time", "location", "map", "gps", "live tracking", "monitoring"},
		phrases:  []string{"how does tracking work", "real-time tracking", "live updates", "location tracking"},
	},
	{
		tag:      AboutCompany,
		keywords: []string{"company", "about", "swiftdelivery", "who are you", "mission", "vision", "commitment"},
		phrases:  []string{"tell me about swiftdelivery", "about your company", "who are you", "company background"},
	},
	{
		tag:      PricingInfo,
		keywords: []string{"pricing", "cost", "price", "rate", "fees", "how much", "expense", "charge"},
		phrases:  []string{"what are your prices", "pricing", "cost of service", "how much does it cost"},
	},
}
