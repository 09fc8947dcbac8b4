package stress

import "testing"

func TestDetectLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"no keywords", "today was a pretty normal day at work", 0},
		{"one high", "I feel so hopeless lately", 3},
		{"high plus medium", "I feel hopeless and tired", 4},
		{"one medium", "just tired today", 1},
		{"uppercase still matches", "I AM SO ANXIOUS", 3},
		{"hindi high term", "मुझे घबराहट हो रही है", 3},
		{"hindi medium term", "बहुत चिंता है", 1},
		// Substring containment is intentional: "die" inside "diet" counts.
		{"embedded term counts", "starting a new diet tomorrow", 3},
		{"clamped at ten", "anxious panic hopeless worthless suicide", 10},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectLevel(tc.text); got != tc.want {
				t.Fatalf("DetectLevel(%q)=%d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestDetectLevelBounds(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"fine",
		"anxious",
		"anxious panic hopeless worthless suicide die can't cope overwhelmed depressed stressed tired sad",
	}
	for _, text := range texts {
		got := DetectLevel(text)
		if got < 0 || got > MaxLevel {
			t.Fatalf("DetectLevel(%q)=%d out of [0,%d]", text, got, MaxLevel)
		}
	}
}
