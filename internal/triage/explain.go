package triage

import (
	"fmt"
	"math"
	"strings"

	"go-shelter-triage-board/internal/predictions"
)

// SelectMode controls which attribution group the explanation panel shows.
// "label" follows the predicted outcome class; "threshold" uses the
// medium-risk cutoff. The deployment picks one and sticks to it.
type SelectMode string

const (
	SelectByLabel     SelectMode = "label"
	SelectByThreshold SelectMode = "threshold"
)

// ParseSelectMode normalizes a configured mode, defaulting to label-based.
func ParseSelectMode(raw string) SelectMode {
	if strings.EqualFold(strings.TrimSpace(raw), string(SelectByThreshold)) {
		return SelectByThreshold
	}
	return SelectByLabel
}

// Factor is one formatted explanation line, ready for rendering.
type Factor struct {
	Glyph    string `json:"glyph"`
	Feature  string `json:"feature"`
	Sentence string `json:"sentence"`
}

// glyphs maps cleaned feature names to their display glyph.
var glyphs = map[string]string{
	"Breed":            "🐕",
	"Age":              "🎂",
	"Intake Type":      "🏷️",
	"Sex":              "🚻",
	"Has Name":         "📛",
	"Color":            "🎨",
	"Num Returned":     "↩️",
	"Intake Condition": "🩺",
	"Stay Length Days": "🗓️",
}

const fallbackGlyph = "❓"

// CleanFeature strips the scoring pipeline's attribution prefix from a raw
// feature name.
func CleanFeature(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "SHAP-", ""))
}

// Favorable reports whether the row's predicted outcome is favorable under
// the configured selection mode. Unfavorable rows explain with the negative
// group and get a recommended team.
func Favorable(row predictions.PredictionRow, mode SelectMode, t Thresholds) bool {
	if mode == SelectByLabel && row.HasLabel {
		return row.Label == 1
	}
	return row.Score >= t.MediumBelow
}

// SelectGroup picks the attribution group the panel should display.
func SelectGroup(row predictions.PredictionRow, mode SelectMode, t Thresholds) []predictions.AttributionEntry {
	if Favorable(row, mode, t) {
		return row.Positive
	}
	return row.Negative
}

// Explain converts the row's top-ranked attribution entries into display
// factors, in original rank order. Blank entries were already dropped at
// decode time; zero remaining entries yields an empty list, not an error.
func Explain(row predictions.PredictionRow, mode SelectMode, t Thresholds) []Factor {
	group := SelectGroup(row, mode, t)
	out := make([]Factor, 0, len(group))
	for _, entry := range group {
		name := CleanFeature(entry.Feature)
		if name == "" {
			continue
		}

		direction := "more"
		if entry.RelativeEffect < 0 {
			direction = "less"
		}
		pct := int(math.Round(math.Abs(entry.RelativeEffect) * 100))

		unit := ""
		if name == "Age" {
			unit = " years"
		}

		glyph, ok := glyphs[name]
		if !ok {
			glyph = fallbackGlyph
		}

		out = append(out, Factor{
			Glyph:    glyph,
			Feature:  name,
			Sentence: fmt.Sprintf("%s%s are %d%% %s likely to be adopted.", entry.Value, unit, pct, direction),
		})
	}
	return out
}

// PrimaryConcern returns the cleaned top-ranked feature of the selected
// group, shown in list views. Empty when the row carries no valid entries.
func PrimaryConcern(row predictions.PredictionRow, mode SelectMode, t Thresholds) string {
	group := SelectGroup(row, mode, t)
	if len(group) == 0 {
		return ""
	}
	return CleanFeature(group[0].Feature)
}
