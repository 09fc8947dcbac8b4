package stress

import "testing"

func TestAverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"empty floors divisor", nil, 0},
		{"single", []int{4}, 4},
		{"mixed", []int{2, 3, 7}, 4},
		{"all zero", []int{0, 0}, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Average(tc.scores); got != tc.want {
				t.Fatalf("Average(%v)=%v, want %v", tc.scores, got, tc.want)
			}
		})
	}
}

func TestMoodFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		avg  float64
		want string
	}{
		{0, MoodGreat},
		{2, MoodGood},
		{4, MoodOkay},
		{6, MoodLow},
		{9, MoodTerrible},
		// Boundary values resolve to the better label.
		{1, MoodGreat},
		{3, MoodGood},
		{5, MoodOkay},
		{7, MoodLow},
		{7.1, MoodTerrible},
	}

	for _, tc := range tests {
		if got := MoodFor(tc.avg); got != tc.want {
			t.Fatalf("MoodFor(%v)=%q, want %q", tc.avg, got, tc.want)
		}
	}
}

func TestMoodForZeroScoredDay(t *testing.T) {
	t.Parallel()

	// A non-empty day where no message carried a score averages to 0.
	if got := MoodFor(Average(nil)); got != MoodGreat {
		t.Fatalf("mood for unscored day = %q, want %q", got, MoodGreat)
	}
}
