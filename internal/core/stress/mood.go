package stress

// Mood labels in descending well-being order.
const (
	MoodGreat    = "great"
	MoodGood     = "good"
	MoodOkay     = "okay"
	MoodLow      = "low"
	MoodTerrible = "terrible"
)

// ValidMood reports whether m is one of the five mood labels.
func ValidMood(m string) bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodLow, MoodTerrible:
		return true
	}
	return false
}

// Average returns the arithmetic mean of the given scores. The divisor is
// floored at 1, so a day with no scored messages averages to 0 instead of
// dividing by zero. Deciding whether the day had any messages at all is the
// caller's job, not this function's.
func Average(scores []int) float64 {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	n := len(scores)
	if n < 1 {
		n = 1
	}
	return float64(sum) / float64(n)
}

// MoodFor maps an averaged stress score to a mood label. Thresholds compare
// the unrounded average; boundary values resolve to the better label.
func MoodFor(avg float64) string {
	switch {
	case avg <= 1:
		return MoodGreat
	case avg <= 3:
		return MoodGood
	case avg <= 5:
		return MoodOkay
	case avg <= 7:
		return MoodLow
	default:
		return MoodTerrible
	}
}
