package triage

import (
	"testing"

	"go-shelter-triage-board/internal/predictions"
	"go-shelter-triage-board/internal/schema"
)

func TestStayBucket(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"15", StayShort},
		{"30", StayShort},
		{"45", StayMedium},
		{"90", StayMedium},
		{"120", StayLong},
		{"90.5", StayLong},
		{"", StayUnknown},
		{"n/a", StayUnknown},
		{"N/A", StayUnknown},
		{"nan", StayUnknown},
		{"soon", StayUnknown},
	}
	for _, c := range cases {
		if got := StayBucket(c.raw); got != c.want {
			t.Fatalf("StayBucket(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestBuildSummaryCounts(t *testing.T) {
	rows := []predictions.PredictionRow{
		{ID: "A1", Score: 10, Stay: "15"},
		{ID: "A2", Score: 30, Stay: "45"},
		{ID: "A3", Score: 70, Stay: "120"},
		{ID: "A4", Score: 90, Stay: "n/a"},
		{ID: "A5", Score: 95, Stay: ""},
	}

	s := BuildSummary(rows, scoreThresholds(), schema.ScaleScore, true)

	if len(s.Categories) != 3 {
		t.Fatalf("expected 3 category bars, got %d", len(s.Categories))
	}
	if s.Categories[0].Category != CategoryHigh || s.Categories[0].Count != 1 {
		t.Fatalf("unexpected high bar: %+v", s.Categories[0])
	}
	if s.Categories[1].Category != CategoryMedium || s.Categories[1].Count != 1 {
		t.Fatalf("unexpected medium bar: %+v", s.Categories[1])
	}
	if s.Categories[2].Category != CategoryLow || s.Categories[2].Count != 3 {
		t.Fatalf("unexpected low bar: %+v", s.Categories[2])
	}

	if len(s.Stay) != 4 {
		t.Fatalf("expected 4 stay buckets, got %d", len(s.Stay))
	}
	wantStay := map[string]int{StayShort: 1, StayMedium: 1, StayLong: 1, StayUnknown: 2}
	for _, b := range s.Stay {
		if b.Count != wantStay[b.Bucket] {
			t.Fatalf("stay bucket %q: got %d, want %d", b.Bucket, b.Count, wantStay[b.Bucket])
		}
	}
}

func TestBuildSummaryEmptyViewIsAllZero(t *testing.T) {
	s := BuildSummary(nil, scoreThresholds(), schema.ScaleScore, false)

	for _, c := range s.Categories {
		if c.Count != 0 {
			t.Fatalf("expected zero count for %q, got %d", c.Category, c.Count)
		}
	}
	if len(s.Histogram) != HistogramBins {
		t.Fatalf("expected %d bins, got %d", HistogramBins, len(s.Histogram))
	}
	for _, b := range s.Histogram {
		if b.Count != 0 {
			t.Fatalf("expected empty bin %q, got %d", b.Label, b.Count)
		}
	}
	if s.Stay != nil {
		t.Fatalf("stay chart should be omitted when no stay column is mapped")
	}
}

func TestBuildHistogramBinning(t *testing.T) {
	rows := []predictions.PredictionRow{
		{ID: "A1", Score: 0},
		{ID: "A2", Score: 4.9},
		{ID: "A3", Score: 55},
		{ID: "A4", Score: 100},
	}

	bins := buildHistogram(rows, schema.ScaleScore)
	if len(bins) != HistogramBins {
		t.Fatalf("expected %d bins, got %d", HistogramBins, len(bins))
	}

	if bins[0].Count != 2 {
		t.Fatalf("first bin should hold the two low scores, got %d", bins[0].Count)
	}
	if bins[11].Count != 1 {
		t.Fatalf("bin for 55 should hold one row, got %d", bins[11].Count)
	}
	// The domain maximum clamps into the last bin.
	if bins[HistogramBins-1].Count != 1 {
		t.Fatalf("last bin should hold the score at the domain edge, got %d", bins[HistogramBins-1].Count)
	}

	if bins[0].Label != "0-5" {
		t.Fatalf("unexpected score bin label: %q", bins[0].Label)
	}

	probBins := buildHistogram(nil, schema.ScaleProbability)
	if probBins[0].Label != "0.00-0.05" {
		t.Fatalf("unexpected probability bin label: %q", probBins[0].Label)
	}
}
