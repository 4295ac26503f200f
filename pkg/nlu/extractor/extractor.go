package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Entity is one structured value pulled out of free text.
type Entity struct {
	Value      string
	Type       string
	Position   int
	Confidence float64
}

// DateEntity carries the raw match plus the parsed calendar value when the
// text was parseable. Parsed is nil for unparseable dates; that is noise to
// be ignored downstream, not an error.
type DateEntity struct {
	Entity
	Parsed *time.Time
}

// CountEntity is a package-count match ("3 packages", "three boxes").
type CountEntity struct {
	Count      int
	Unit       string
	Original   string
	Confidence float64
}

// Bag is the full extraction result for one utterance.
type Bag struct {
	TrackingIDs    []string
	StatusKeywords []string
	Emails         []Entity
	PhoneNumbers   []Entity
	Dates          []DateEntity
	Names          []Entity
	Destinations   []Entity
	PackageCounts  []CountEntity

	HasTrackingPhrase bool
	HasCourierKeyword bool
	HasPackageKeyword bool
}

// HasTrackingID reports whether at least one tracking-ID-shaped token was found.
func (b Bag) HasTrackingID() bool { return len(b.TrackingIDs) > 0 }

// trackingPattern is one recognized tracking-ID shape. Patterns with a capture
// group are phrase-anchored ("track this item swift X"); the others match the
// token directly. Precedence is the slice order; each shape exists on its own
// and they are deliberately not merged into one expression.
type trackingPattern struct {
	re      *regexp.Regexp
	capture bool
}

var trackingPatterns = []trackingPattern{
	{re: regexp.MustCompile(`(?i)\b[A-Z]{2,}-\d{10,}-[A-Z]{3,}\b`)},
	{re: regexp.MustCompile(`(?i)\b[A-Z]{2,}-\d{8,}-[A-Z]{3,}\b`)},
	{re: regexp.MustCompile(`(?i)\b[A-Z]{3,}\d{6,}[A-Z]{2,}\b`)},
	{re: regexp.MustCompile(`\b\d{10,}\b`)},
	{re: regexp.MustCompile(`(?i)\b[A-Z0-9]{8,}-\d{4,}\b`)},
	{re: regexp.MustCompile(`(?i)\bSWIFT-[\w-]+\b`)},
	{re: regexp.MustCompile(`(?i)\btrack\s+(?:this\s+)?(?:item|package|shipment|cargo|parcel)\s+(?:swift\s+)?([A-Z0-9-]+)\b`), capture: true},
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+\d{1,3}[-.\s]?)?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	dateRe  = regexp.MustCompile(`(?i)(\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}[-/]\d{1,2}[-/]\d{1,2}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}[,\s]+\d{4})`)
	nameRe  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)?\b`)

	statusWordRe   = regexp.MustCompile(`(?i)\b(delivered|out for delivery|in transit|pending|pickup|failed|returned)\b`)
	statusPhraseRe = regexp.MustCompile(`(?i)\b(package|shipment|delivery|cargo|parcel)\s+(status|location|where|when)\b`)

	countRe = regexp.MustCompile(`(?i)(\d+)\s*(package|packages|item|items|box|boxes|parcel|parcels)`)
	wordRe  = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten)\s+(package|packages|item|items|box|boxes|parcel|parcels)\b`)

	courierPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(courier|delivery agent|rider|driver|logistics partner)\b`),
		regexp.MustCompile(`(?i)\btrack\s+(?:this\s+)?courier\b`),
		regexp.MustCompile(`(?i)\bcourier\s+tracking\b`),
		regexp.MustCompile(`(?i)\btrack\s+(?:this\s+)?(?:delivery\s+)?(?:agent|rider|driver)\b`),
	}

	packagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(my package|track shipment|track cargo)\b`),
		regexp.MustCompile(`(?i)\b(parcel|shipment|cargo|goods|items?)\b`),
	}
)

var trackingPhrases = []string{
	"track", "tracking", "where is", "locate", "find", "trace", "monitor", "follow",
	"status", "shipment", "package", "cargo", "delivery", "check", "have you",
	"can you", "help me", "please", "need to", "want to", "arrive", "arrived",
}

var nameStoplist = toSet([]string{
	"Swift", "Delivery", "Package", "Tracking", "Order", "Status", "Please",
	"Thank", "Hi", "Hello", "SMS", "Mr", "Mrs", "Ms", "Dr", "Prof",
})

var commonWords = toSet([]string{
	"the", "a", "and", "or", "but", "is", "are", "be", "been",
	"that", "this", "from", "to", "of", "in", "for", "with",
	"please", "thank", "hello", "hi", "yes", "no", "ok", "okay",
	"package", "tracking", "order", "delivery", "swift",
})

var destinationKeywords = []string{
	"to ", "in ", "delivering to ", "going to ", "heading to ",
	"destination ", "address ", "location ",
}

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Extractor performs regex and heuristic entity extraction. It is pure and
// deterministic: the same text always yields the same Bag, and absence of a
// match is an empty slice, never an error.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractAll runs every extraction pass over the raw (case-preserved) text.
func (e *Extractor) ExtractAll(text string) Bag {
	lower := strings.ToLower(text)

	bag := Bag{
		TrackingIDs:    e.extractTrackingIDs(text),
		StatusKeywords: e.extractStatusKeywords(text),
		Emails:         e.extractEmails(text),
		PhoneNumbers:   e.extractPhoneNumbers(text),
		Dates:          e.extractDates(text),
		Names:          e.extractNames(text),
		Destinations:   e.extractDestinations(text),
		PackageCounts:  e.extractPackageCounts(text),
	}

	for _, phrase := range trackingPhrases {
		if strings.Contains(lower, phrase) {
			bag.HasTrackingPhrase = true
			break
		}
	}
	for _, re := range courierPatterns {
		if re.MatchString(text) {
			bag.HasCourierKeyword = true
			break
		}
	}
	for _, re := range packagePatterns {
		if re.MatchString(text) {
			bag.HasPackageKeyword = true
			break
		}
	}

	return bag
}

// extractTrackingIDs unions the matches of every shape pattern in precedence
// order, then drops values that are substrings of a longer match so the digit
// run inside "SWIFT-1700000000000-AB12C" is not reported twice.
func (e *Extractor) extractTrackingIDs(text string) []string {
	var collected []string
	seen := map[string]struct{}{}

	add := func(value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		key := strings.ToLower(value)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		collected = append(collected, value)
	}

	for _, p := range trackingPatterns {
		if p.capture {
			for _, m := range p.re.FindAllStringSubmatch(text, -1) {
				add(m[1])
			}
			continue
		}
		for _, m := range p.re.FindAllString(text, -1) {
			add(m)
		}
	}

	ids := collected[:0]
	for i, v := range collected {
		sub := false
		for j, other := range collected {
			if i == j {
				continue
			}
			if len(other) > len(v) && strings.Contains(strings.ToLower(other), strings.ToLower(v)) {
				sub = true
				break
			}
		}
		if !sub {
			ids = append(ids, v)
		}
	}
	return ids
}

func (e *Extractor) extractStatusKeywords(text string) []string {
	var keywords []string
	for _, m := range statusWordRe.FindAllString(text, -1) {
		keywords = append(keywords, strings.ToLower(m))
	}
	for _, m := range statusPhraseRe.FindAllString(text, -1) {
		keywords = append(keywords, strings.ToLower(m))
	}
	return keywords
}

func (e *Extractor) extractEmails(text string) []Entity {
	var emails []Entity
	for _, loc := range emailRe.FindAllStringIndex(text, -1) {
		emails = append(emails, Entity{
			Value:      text[loc[0]:loc[1]],
			Type:       "email",
			Position:   loc[0],
			Confidence: 0.95,
		})
	}
	return emails
}

func (e *Extractor) extractPhoneNumbers(text string) []Entity {
	var phones []Entity
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' || r == '+' {
				return r
			}
			return -1
		}, raw)
		// Anything shorter is a bare number, not a phone.
		if len(strings.TrimPrefix(digits, "+")) < 7 {
			continue
		}
		phones = append(phones, Entity{
			Value:      digits,
			Type:       "phone",
			Position:   loc[0],
			Confidence: 0.85,
		})
	}
	return phones
}

var dateLayouts = []string{
	"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
	"1/2/06", "1-2-06",
	"2006-1-2", "2006/1/2",
	"Jan 2, 2006", "January 2, 2006", "Jan 2 2006", "January 2 2006",
	"Jan. 2, 2006",
}

func parseDate(value string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func (e *Extractor) extractDates(text string) []DateEntity {
	var dates []DateEntity
	for _, loc := range dateRe.FindAllStringIndex(text, -1) {
		value := text[loc[0]:loc[1]]
		dates = append(dates, DateEntity{
			Entity: Entity{
				Value:      value,
				Type:       "date",
				Position:   loc[0],
				Confidence: 0.88,
			},
			Parsed: parseDate(value),
		})
	}
	return dates
}

func (e *Extractor) extractNames(text string) []Entity {
	var names []Entity
	for _, loc := range nameRe.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		stoplisted := false
		for _, part := range strings.Fields(word) {
			if _, stop := nameStoplist[part]; stop {
				stoplisted = true
				break
			}
		}
		if stoplisted || len(word) <= 2 {
			continue
		}
		names = append(names, Entity{
			Value:      word,
			Type:       "name",
			Position:   loc[0],
			Confidence: 0.72,
		})
	}
	return names
}

func (e *Extractor) extractDestinations(text string) []Entity {
	var destinations []Entity
	lower := strings.ToLower(text)

	for _, keyword := range destinationKeywords {
		index := strings.Index(lower, keyword)
		if index == -1 {
			continue
		}
		after := text[index+len(keyword):]
		if cut := strings.IndexAny(after, ",.\n"); cut >= 0 {
			after = after[:cut]
		}
		destination := strings.TrimSpace(after)
		if len(destination) <= 2 {
			continue
		}
		if _, common := commonWords[strings.ToLower(destination)]; common {
			continue
		}
		destinations = append(destinations, Entity{
			Value:      destination,
			Type:       "destination",
			Position:   index,
			Confidence: 0.80,
		})
	}
	return destinations
}

func (e *Extractor) extractPackageCounts(text string) []CountEntity {
	var counts []CountEntity
	for _, m := range countRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		counts = append(counts, CountEntity{
			Count:      n,
			Unit:       strings.ToLower(m[2]),
			Original:   m[0],
			Confidence: 0.92,
		})
	}
	for _, m := range wordRe.FindAllStringSubmatch(text, -1) {
		counts = append(counts, CountEntity{
			Count:      wordNumbers[strings.ToLower(m[1])],
			Unit:       strings.ToLower(m[2]),
			Original:   m[0],
			Confidence: 0.85,
		})
	}
	return counts
}
