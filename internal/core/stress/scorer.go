// Package stress holds the rule-based scoring that sits between raw user
// input and the hosted AI: a lexical stress scorer over fixed keyword tables
// and a mood classifier over daily score averages. Everything here is a pure
// function of its arguments.
package stress

import "strings"

// MaxLevel is the ceiling of the per-message stress indicator.
const MaxLevel = 10

// Keyword tables are matched by raw substring containment on the lowercased
// input. That is deliberately permissive: a term embedded inside a longer
// word still counts, and overlapping terms each count on their own. Known
// false-positive source, kept for score compatibility.
var highStressTerms = []string{
	"anxious", "panic", "hopeless", "worthless", "suicide", "die",
	"can't cope", "overwhelmed", "depressed",
	"घबराहट", "निराश", "काहीच नको",
}

var medStressTerms = []string{
	"stressed", "tired", "sad", "lonely", "frustrated", "worried",
	"थका", "दुखी", "चिंता",
}

// DetectLevel scans text for stress keywords and returns an indicator in
// [0, MaxLevel]. High-severity terms add 3 each, medium-severity terms add 1.
func DetectLevel(text string) int {
	score := 0
	lower := strings.ToLower(text)
	for _, w := range highStressTerms {
		if strings.Contains(lower, w) {
			score += 3
		}
	}
	for _, w := range medStressTerms {
		if strings.Contains(lower, w) {
			score += 1
		}
	}
	if score > MaxLevel {
		return MaxLevel
	}
	return score
}
