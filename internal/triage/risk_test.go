package triage

import (
	"testing"

	"go-shelter-triage-board/internal/schema"
)

func TestDefaultThresholds(t *testing.T) {
	score := DefaultThresholds(schema.ScaleScore)
	if score.HighBelow != 25 || score.MediumBelow != 50 {
		t.Fatalf("unexpected score-scale defaults: %+v", score)
	}

	prob := DefaultThresholds(schema.ScaleProbability)
	if prob.HighBelow != 0.25 || prob.MediumBelow != 0.50 {
		t.Fatalf("unexpected probability-scale defaults: %+v", prob)
	}
}

func TestThresholdsCategory(t *testing.T) {
	th := DefaultThresholds(schema.ScaleScore)

	cases := []struct {
		score float64
		want  Category
	}{
		{0, CategoryHigh},
		{24.99, CategoryHigh},
		{25, CategoryMedium},
		{49.99, CategoryMedium},
		{50, CategoryLow},
		{100, CategoryLow},
	}
	for _, c := range cases {
		if got := th.Category(c.score); got != c.want {
			t.Fatalf("Category(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestCategoryColor(t *testing.T) {
	if CategoryHigh.Color() != ColorHigh {
		t.Fatalf("high color mismatch: %s", CategoryHigh.Color())
	}
	if CategoryMedium.Color() != ColorMedium {
		t.Fatalf("medium color mismatch: %s", CategoryMedium.Color())
	}
	if CategoryLow.Color() != ColorLow {
		t.Fatalf("low color mismatch: %s", CategoryLow.Color())
	}
}
