package triage

import "go-shelter-triage-board/internal/schema"

// Category is the risk-of-non-adoption bucket derived from the raw signal.
// High means the animal is at high risk of NOT being adopted.
type Category string

const (
	CategoryHigh   Category = "High Risk"
	CategoryMedium Category = "Medium Risk"
	CategoryLow    Category = "Low Risk"
)

// Fixed three-color encoding shared by charts, list rows and the detail panel.
const (
	ColorHigh   = "#FF6B6B"
	ColorMedium = "#FFD166"
	ColorLow    = "#06D6A0"
)

// Color returns the display color for the category.
func (c Category) Color() string {
	switch c {
	case CategoryHigh:
		return ColorHigh
	case CategoryMedium:
		return ColorMedium
	default:
		return ColorLow
	}
}

// Thresholds holds the category cutoffs for the deployed table version:
// High below HighBelow, Medium below MediumBelow, Low otherwise. The
// deployment convention is 25/50 on the 0-100 score scale and 0.25/0.50 on
// probabilities; overrides come from config for tables published with the
// older 33/66 cutoffs.
type Thresholds struct {
	HighBelow   float64 `json:"high_below"`
	MediumBelow float64 `json:"medium_below"`
}

// DefaultThresholds returns the documented cutoffs for a scale.
func DefaultThresholds(scale schema.Scale) Thresholds {
	if scale == schema.ScaleProbability {
		return Thresholds{HighBelow: 0.25, MediumBelow: 0.50}
	}
	return Thresholds{HighBelow: 25, MediumBelow: 50}
}

// Category maps a raw signal to exactly one category; risk is monotonic
// non-increasing as the signal grows.
func (t Thresholds) Category(score float64) Category {
	switch {
	case score < t.HighBelow:
		return CategoryHigh
	case score < t.MediumBelow:
		return CategoryMedium
	default:
		return CategoryLow
	}
}
