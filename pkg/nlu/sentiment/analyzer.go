package sentiment

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Primary is the coarse sentiment bucket for one message.
type Primary string

const (
	VeryNegative Primary = "very_negative"
	Negative     Primary = "negative"
	Neutral      Primary = "neutral"
	Positive     Primary = "positive"
	VeryPositive Primary = "very_positive"
)

// Emotion names used as EmotionScores keys.
const (
	EmotionAnger       = "anger"
	EmotionFrustration = "frustration"
	EmotionHappiness   = "happiness"
	EmotionConfusion   = "confusion"
)

// Config holds the decision thresholds. Every cut-off the analyzer applies is
// here so deployments can tune escalation sensitivity without a code change.
type Config struct {
	AngerVeryNegative     float64
	FrustrationNegative   float64
	ConfusionNeutral      float64
	HappinessVeryPositive float64
	EscalateAnger         float64
	EscalateFrustration   float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		AngerVeryNegative:     0.6,
		FrustrationNegative:   0.6,
		ConfusionNeutral:      0.5,
		HappinessVeryPositive: 0.6,
		EscalateAnger:         0.7,
		EscalateFrustration:   0.8,
	}
}

// DominantEmotion is one of the top emotions with its score as a percentage.
type DominantEmotion struct {
	Emotion string
	Score   int
}

// Result is the full sentiment read for one message.
type Result struct {
	Primary            Primary
	Confidence         float64
	Score              float64
	EmotionScores      map[string]float64
	PositiveScore      float64
	NegativeScore      float64
	Emotions           []DominantEmotion
	KeyPhrases         []string
	PositiveIndicators []string
	NegativeIndicators []string
	Reason             string
}

var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "awesome",
	"perfect", "love", "happy", "pleased", "satisfied", "thanks", "thank", "appreciate",
	"grateful", "brilliant", "cool", "nice", "glad", "joy", "comfortable", "helped",
	"working", "resolved", "fixed", "solved", "quick", "fast", "efficient", "smooth",
	"easy", "simple", "best", "better", "improving", "improved",
)

var negativeWords = wordSet(
	"bad", "terrible", "awful", "horrible", "useless", "hate", "angry", "frustrated",
	"annoyed", "upset", "disappointed", "confused", "lost", "broken", "failed", "error",
	"problem", "issue", "complaint", "complain", "worst", "waste", "rubbish", "garbage",
	"unacceptable", "ridiculous", "pathetic", "scam", "fraud",
	"furious", "disgusted", "sick", "tired",
)

var angryWords = wordSet(
	"angry", "furious", "rage", "outrage", "infuriated", "livid", "enraged",
	"mad", "irate", "hostile", "aggressive", "demanding", "urgent", "immediately",
	"now", "asap", "ridiculous", "unacceptable", "unbelievable",
)

var frustratedWords = wordSet(
	"frustrated", "frustration", "annoyed", "irritated", "bothered", "upset",
	"exasperated", "tired", "enough", "again",
	"still", "repeatedly", "keep", "keeps", "always", "never", "impossible",
)

var happyWords = wordSet(
	"happy", "joy", "joyful", "excited", "thrilled", "delighted",
	"pleased", "satisfied", "content", "cheerful", "upbeat", "positive",
	"wonderful", "fantastic", "great", "amazing", "love",
	"excellent", "brilliant",
)

var confusedWords = wordSet(
	"confused", "confusion", "unclear", "unsure",
	"lost", "uncertain", "bewildered", "puzzled", "question", "what", "why",
	"how", "explain", "clarify", "understand", "help", "complicated",
)

var intensifiers = wordSet(
	"very", "extremely", "absolutely", "definitely", "certainly", "really",
	"quite", "so", "too", "much", "deeply", "highly", "incredibly", "terribly",
	"awfully", "strongly", "particularly", "especially",
)

// Negations are matched against cleaned tokens, so the contracted forms are
// stored without apostrophes ("don't" arrives as "dont").
var negations = wordSet(
	"not", "no", "never", "neither", "nobody", "nothing", "nowhere", "dont",
	"doesnt", "didnt", "wont", "wouldnt", "cant", "couldnt", "shouldnt",
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var nonLetterRe = regexp.MustCompile(`[^a-zA-Z]`)
var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Analyzer scores message sentiment against fixed lexicons. It is pure and
// never errors; blank input yields a neutral Result.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer with the given thresholds.
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze scores the message. Words are lowercased and stripped of non-letter
// characters before lookup; an intensifier directly before a hit scales it
// 1.5x and a negation directly before flips it to -0.5x.
func (a *Analyzer) Analyze(text string) Result {
	if strings.TrimSpace(text) == "" {
		return neutralResult()
	}

	words := strings.Fields(strings.ToLower(text))
	cleaned := make([]string, len(words))
	for i, w := range words {
		cleaned[i] = nonLetterRe.ReplaceAllString(w, "")
	}

	emotionScores := map[string]float64{
		EmotionAnger:       emotionScore(cleaned, angryWords),
		EmotionFrustration: emotionScore(cleaned, frustratedWords),
		EmotionHappiness:   emotionScore(cleaned, happyWords),
		EmotionConfusion:   emotionScore(cleaned, confusedWords),
	}

	positiveScore := lexiconScore(cleaned, positiveWords)
	negativeScore := lexiconScore(cleaned, negativeWords)

	score := positiveScore - negativeScore
	totalIntensity := positiveScore + negativeScore

	return Result{
		Primary:            a.primary(score, emotionScores),
		Confidence:         math.Min(totalIntensity*0.3+0.5, 0.99),
		Score:              score,
		EmotionScores:      emotionScores,
		PositiveScore:      positiveScore,
		NegativeScore:      negativeScore,
		Emotions:           dominantEmotions(emotionScores),
		KeyPhrases:         keyPhrases(text),
		PositiveIndicators: indicators(cleaned, positiveWords),
		NegativeIndicators: indicators(cleaned, negativeWords),
		Reason:             reason(score, emotionScores),
	}
}

func lexiconScore(cleaned []string, set map[string]struct{}) float64 {
	score := 0.0
	for i, w := range cleaned {
		if _, hit := set[w]; !hit {
			continue
		}
		intensity := 1.0
		if i > 0 {
			if _, ok := intensifiers[cleaned[i-1]]; ok {
				intensity = 1.5
			}
			if _, ok := negations[cleaned[i-1]]; ok {
				intensity = -0.5
			}
		}
		score += intensity
	}
	return score
}

func emotionScore(cleaned []string, set map[string]struct{}) float64 {
	score := 0.0
	for i, w := range cleaned {
		if _, hit := set[w]; !hit {
			continue
		}
		intensity := 1.0
		if i > 0 {
			if _, ok := intensifiers[cleaned[i-1]]; ok {
				intensity = 1.5
			}
		}
		score += intensity
	}
	return math.Min(score/2, 1)
}

// primary prefers a strong dominant emotion over the raw signed score.
func (a *Analyzer) primary(score float64, emotions map[string]float64) Primary {
	switch {
	case emotions[EmotionAnger] > a.cfg.AngerVeryNegative:
		return VeryNegative
	case emotions[EmotionFrustration] > a.cfg.FrustrationNegative:
		return Negative
	case emotions[EmotionConfusion] > a.cfg.ConfusionNeutral:
		return Neutral
	case emotions[EmotionHappiness] > a.cfg.HappinessVeryPositive:
		return VeryPositive
	case score > 2:
		return VeryPositive
	case score > 0.5:
		return Positive
	case score < -2:
		return VeryNegative
	case score < -0.5:
		return Negative
	}
	return Neutral
}

func dominantEmotions(scores map[string]float64) []DominantEmotion {
	type pair struct {
		name  string
		score float64
	}
	order := []string{EmotionAnger, EmotionFrustration, EmotionHappiness, EmotionConfusion}
	pairs := make([]pair, 0, len(order))
	for _, name := range order {
		pairs = append(pairs, pair{name, scores[name]})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })

	var emotions []DominantEmotion
	for _, p := range pairs[:2] {
		if p.score > 0.3 {
			emotions = append(emotions, DominantEmotion{
				Emotion: p.name,
				Score:   int(math.Round(p.score * 100)),
			})
		}
	}
	if len(emotions) == 0 {
		emotions = []DominantEmotion{{Emotion: "neutral", Score: 50}}
	}
	return emotions
}

func keyPhrases(text string) []string {
	var phrases []string
	for _, sentence := range sentenceRe.FindAllString(text, -1) {
		if len(phrases) == 3 {
			break
		}
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) > 5 {
			phrases = append(phrases, trimmed)
		}
	}
	return phrases
}

func indicators(cleaned []string, set map[string]struct{}) []string {
	var found []string
	seen := map[string]struct{}{}
	for _, w := range cleaned {
		if _, hit := set[w]; !hit {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		found = append(found, w)
	}
	return found
}

func reason(score float64, emotions map[string]float64) string {
	switch {
	case emotions[EmotionAnger] > 0.6:
		return "Customer shows signs of anger - immediate attention recommended"
	case emotions[EmotionFrustration] > 0.5:
		return "Customer appears frustrated - consider escalation or immediate resolution"
	case emotions[EmotionConfusion] > 0.5:
		return "Customer seems confused - clarification or detailed explanation needed"
	case emotions[EmotionHappiness] > 0.6:
		return "Customer is satisfied and happy"
	case score > 1:
		return "Overall positive sentiment detected"
	case score < -1:
		return "Overall negative sentiment detected"
	}
	return "Neutral sentiment - standard customer interaction"
}

func neutralResult() Result {
	return Result{
		Primary:    Neutral,
		Confidence: 0.5,
		EmotionScores: map[string]float64{
			EmotionAnger:       0,
			EmotionFrustration: 0,
			EmotionHappiness:   0,
			EmotionConfusion:   0,
		},
		Emotions: []DominantEmotion{{Emotion: "neutral", Score: 50}},
		Reason:   "Insufficient data for sentiment analysis",
	}
}

// ShouldEscalate reports whether the message warrants a human agent.
func (a *Analyzer) ShouldEscalate(r Result) bool {
	return r.Primary == VeryNegative ||
		r.EmotionScores[EmotionAnger] > a.cfg.EscalateAnger ||
		r.EmotionScores[EmotionFrustration] > a.cfg.EscalateFrustration
}

// ShouldShowProactive reports whether a proactive support nudge is warranted.
func (a *Analyzer) ShouldShowProactive(r Result) bool {
	return r.Primary == Negative || r.EmotionScores[EmotionConfusion] > a.cfg.ConfusionNeutral
}

// ProactiveMessage picks the support nudge for the detected mood. The empty
// string means no nudge applies.
func (a *Analyzer) ProactiveMessage(r Result) string {
	switch {
	case r.EmotionScores[EmotionAnger] > 0.6:
		return "I sense you're frustrated. I'm here to help resolve this immediately. What can I do for you?"
	case r.EmotionScores[EmotionConfusion] > 0.5:
		return "Let me clarify that for you. What specifically would you like help with?"
	case r.Primary == Negative:
		return "I'm sorry to hear you're having issues. Let me help you get this resolved."
	case r.EmotionScores[EmotionHappiness] > 0.5:
		return "Glad I could help! Is there anything else I can assist with?"
	}
	return ""
}
