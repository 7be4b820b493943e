package triage

import (
	"fmt"
	"strconv"
	"strings"

	"go-shelter-triage-board/internal/predictions"
	"go-shelter-triage-board/internal/schema"
)

// HistogramBins is the fixed bin count for the raw-signal distribution chart.
const HistogramBins = 20

// Stay buckets for the predicted-duration-of-stay chart.
const (
	StayShort   = "0-30 Days"
	StayMedium  = "31-90 Days"
	StayLong    = "90+ Days"
	StayUnknown = "N/A"
)

// CategoryCount is one bar of the adoptability chart, in fixed display order.
type CategoryCount struct {
	Category Category `json:"category"`
	Color    string   `json:"color"`
	Count    int      `json:"count"`
}

// HistogramBin is one bar of the signal-distribution chart.
type HistogramBin struct {
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// StayCount is one bar of the predicted-stay chart.
type StayCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// Summary holds the three aggregate chart descriptors the rendering layer
// turns into charts. Stay is nil when the table version maps no stay column.
type Summary struct {
	Categories []CategoryCount `json:"categories"`
	Histogram  []HistogramBin  `json:"histogram"`
	Stay       []StayCount     `json:"stay,omitempty"`
}

// BuildSummary aggregates the filtered view. An empty view produces all-zero
// counts, never an error.
func BuildSummary(rows []predictions.PredictionRow, t Thresholds, scale schema.Scale, hasStay bool) Summary {
	counts := map[Category]int{}
	for _, row := range rows {
		counts[t.Category(row.Score)]++
	}

	out := Summary{
		Categories: []CategoryCount{
			{Category: CategoryHigh, Color: ColorHigh, Count: counts[CategoryHigh]},
			{Category: CategoryMedium, Color: ColorMedium, Count: counts[CategoryMedium]},
			{Category: CategoryLow, Color: ColorLow, Count: counts[CategoryLow]},
		},
		Histogram: buildHistogram(rows, scale),
	}

	if hasStay {
		stay := map[string]int{}
		for _, row := range rows {
			stay[StayBucket(row.Stay)]++
		}
		out.Stay = []StayCount{
			{Bucket: StayShort, Count: stay[StayShort]},
			{Bucket: StayMedium, Count: stay[StayMedium]},
			{Bucket: StayLong, Count: stay[StayLong]},
			{Bucket: StayUnknown, Count: stay[StayUnknown]},
		}
	}
	return out
}

func buildHistogram(rows []predictions.PredictionRow, scale schema.Scale) []HistogramBin {
	domain := scale.Domain()
	width := domain / HistogramBins

	bins := make([]HistogramBin, HistogramBins)
	for i := range bins {
		from := float64(i) * width
		to := from + width
		bins[i] = HistogramBin{Label: binLabel(from, to, scale), From: from, To: to}
	}

	for _, row := range rows {
		i := int(row.Score / width)
		if i < 0 {
			i = 0
		}
		if i >= HistogramBins {
			i = HistogramBins - 1
		}
		bins[i].Count++
	}
	return bins
}

func binLabel(from, to float64, scale schema.Scale) string {
	if scale == schema.ScaleProbability {
		return fmt.Sprintf("%.2f-%.2f", from, to)
	}
	return fmt.Sprintf("%.0f-%.0f", from, to)
}

// StayBucket assigns a raw predicted-stay cell to its display bucket.
// Missing, non-numeric and literal "n/a" values bucket to N/A; this never
// fails.
func StayBucket(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "n/a") || isNaNCell(raw) {
		return StayUnknown
	}
	days, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return StayUnknown
	}
	switch {
	case days <= 30:
		return StayShort
	case days <= 90:
		return StayMedium
	default:
		return StayLong
	}
}

func isNaNCell(v string) bool {
	return strings.EqualFold(v, "nan")
}
