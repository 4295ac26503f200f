package sentiment

import "testing"

func TestAnalyzePrimary(t *testing.T) {
	a := New(DefaultConfig())

	tests := []struct {
		name        string
		text        string
		wantPrimary Primary
	}{
		{name: "empty text is neutral", text: "", wantPrimary: Neutral},
		{name: "plain statement is neutral", text: "my package number is below", wantPrimary: Neutral},
		{name: "single positive word", text: "great service", wantPrimary: Positive},
		{name: "stacked positives go very positive", text: "great amazing excellent service", wantPrimary: VeryPositive},
		{name: "single negative word", text: "this is terrible", wantPrimary: Negative},
		{name: "stacked negatives go very negative", text: "terrible awful horrible service", wantPrimary: VeryNegative},
		{name: "anger dominates score", text: "I am furious and livid right now", wantPrimary: VeryNegative},
		{name: "confusion resolves neutral", text: "I am confused and puzzled, please explain", wantPrimary: Neutral},
		{name: "negated positive", text: "not good at all", wantPrimary: Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			if got.Primary != tt.wantPrimary {
				t.Errorf("Analyze(%q).Primary = %s, want %s (score=%v emotions=%v)",
					tt.text, got.Primary, tt.wantPrimary, got.Score, got.EmotionScores)
			}
		})
	}
}

func TestIntensifierScalesScore(t *testing.T) {
	a := New(DefaultConfig())

	plain := a.Analyze("good")
	boosted := a.Analyze("very good")

	if plain.Score != 1 {
		t.Errorf("plain score = %v, want 1", plain.Score)
	}
	if boosted.Score != 1.5 {
		t.Errorf("intensified score = %v, want 1.5", boosted.Score)
	}
}

func TestNegationFlipsScore(t *testing.T) {
	a := New(DefaultConfig())
	got := a.Analyze("not happy")
	if got.Score != -0.5 {
		t.Errorf("negated score = %v, want -0.5", got.Score)
	}
}

func TestShouldEscalate(t *testing.T) {
	a := New(DefaultConfig())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "raw anger escalates",
			text: "I am absolutely furious, this is ridiculous and unacceptable",
			want: true,
		},
		{
			name: "anger escalates despite positive words elsewhere",
			text: "your app is nice but I am furious livid enraged about my delivery",
			want: true,
		},
		{name: "calm inquiry does not", text: "checking on my delivery", want: false},
		{name: "mild positive does not", text: "thanks, that helped", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			if a.ShouldEscalate(got) != tt.want {
				t.Errorf("ShouldEscalate(%q) = %v, want %v (emotions=%v primary=%s)",
					tt.text, !tt.want, tt.want, got.EmotionScores, got.Primary)
			}
		})
	}
}

func TestShouldShowProactive(t *testing.T) {
	a := New(DefaultConfig())

	confused := a.Analyze("I am so confused, what is happening, please explain how this works")
	if !a.ShouldShowProactive(confused) {
		t.Errorf("confused message should trigger proactive help (emotions=%v)", confused.EmotionScores)
	}
	if msg := a.ProactiveMessage(confused); msg == "" {
		t.Error("expected a proactive message for a confused customer")
	}

	calm := a.Analyze("checking in")
	if a.ShouldShowProactive(calm) {
		t.Error("calm message should not trigger proactive help")
	}
}

func TestEmotionScoreIsCapped(t *testing.T) {
	a := New(DefaultConfig())
	got := a.Analyze("furious livid enraged irate mad hostile")
	if got.EmotionScores[EmotionAnger] != 1 {
		t.Errorf("anger = %v, want capped at 1", got.EmotionScores[EmotionAnger])
	}
}

func TestConfidenceCap(t *testing.T) {
	a := New(DefaultConfig())
	got := a.Analyze("great amazing excellent wonderful fantastic awesome perfect love happy pleased")
	if got.Confidence != 0.99 {
		t.Errorf("Confidence = %v, want capped at 0.99", got.Confidence)
	}
}

func TestIndicatorsAndReason(t *testing.T) {
	a := New(DefaultConfig())
	got := a.Analyze("terrible terrible problem. It is broken!")

	if len(got.NegativeIndicators) != 3 {
		t.Errorf("NegativeIndicators = %v, want [terrible problem broken]", got.NegativeIndicators)
	}
	if got.Reason != "Overall negative sentiment detected" {
		t.Errorf("Reason = %q", got.Reason)
	}
	if len(got.KeyPhrases) != 2 {
		t.Errorf("KeyPhrases = %v, want two sentences", got.KeyPhrases)
	}
}
