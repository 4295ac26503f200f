package intent

import "strings"

// Scoring weights. A full phrase hit outweighs ten bare keyword hits so that
// "track my package" never loses to an intent that merely shares a keyword.
const (
	phraseWeight  = 10
	keywordWeight = 1
)

// patternSet binds one intent to its keyword and phrase vocabulary.
type patternSet struct {
	tag      Tag
	keywords []string
	phrases  []string
}

// Result is the outcome of base classification for one message.
type Result struct {
	Intent         Tag
	Confidence     float64
	Section        string
	Label          string
	ShouldNavigate bool
}

// Classifier scores a message against a fixed pattern bank.
//
// Ties are broken by declaration order in the bank: the first declared intent
// keeps a tied score. This is an explicit decision, not an accident of map
// iteration.
type Classifier struct {
	bank []patternSet
}

// NewClassifier creates a classifier with the default pattern bank.
func NewClassifier() *Classifier {
	return &Classifier{bank: defaultBank}
}

// Detect scores every intent in the bank against the lowercased message and
// returns the strictly highest scorer. A zero total resolves to GeneralChat.
func (c *Classifier) Detect(message string) Result {
	normalized := strings.ToLower(strings.TrimSpace(message))

	highest := 0
	detected := GeneralChat

	for _, set := range c.bank {
		score := 0
		for _, phrase := range set.phrases {
			if strings.Contains(normalized, phrase) {
				score += phraseWeight
			}
		}
		for _, keyword := range set.keywords {
			if strings.Contains(normalized, keyword) {
				score += keywordWeight
			}
		}
		if score > highest {
			highest = score
			detected = set.tag
		}
	}

	confidence := float64(highest) / float64(phraseWeight)
	if confidence > 1 {
		confidence = 1
	}

	res := Result{
		Intent:         detected,
		Confidence:     confidence,
		ShouldNavigate: highest > 0 && detected != GeneralChat,
	}
	if s, ok := sectionMap[detected]; ok {
		res.Section = s.ID
		res.Label = s.Label
	}
	return res
}
