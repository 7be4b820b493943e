package predictions

import (
	"strconv"
	"strings"

	"go-shelter-triage-board/internal/schema"
)

// Record exposes one raw table row by physical column name. ok is false when
// the loaded table does not carry the column at all.
type Record func(column string) (value string, ok bool)

// RowFromRecord builds a PredictionRow from one raw record using the column
// mapping. It returns ok=false for rows that cannot be displayed at all
// (missing id or unparsable score); blank or NaN attribution entries are
// dropped silently, never treated as an error.
func RowFromRecord(rec Record, m schema.Mapping) (PredictionRow, bool) {
	id, _ := rec(m.IDColumn)
	id = strings.TrimSpace(id)
	if id == "" || isNaN(id) {
		return PredictionRow{}, false
	}

	rawScore, _ := rec(m.ScoreColumn)
	score, err := strconv.ParseFloat(strings.TrimSpace(rawScore), 64)
	if err != nil {
		return PredictionRow{}, false
	}

	row := PredictionRow{ID: id, Score: score}

	if v, ok := rec(m.AnimalTypeColumn); ok {
		row.AnimalType = strings.TrimSpace(v)
	}
	if m.LabelColumn != "" {
		if v, ok := rec(m.LabelColumn); ok {
			// Labels sometimes arrive float-formatted ("1.0").
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				row.HasLabel = true
				row.Label = int(f)
			}
		}
	}
	if m.TeamColumn != "" {
		if v, ok := rec(m.TeamColumn); ok {
			v = strings.TrimSpace(v)
			if !isNaN(v) {
				row.TeamRaw = v
			}
		}
	}
	if m.StayColumn != "" {
		if v, ok := rec(m.StayColumn); ok {
			row.Stay = strings.TrimSpace(v)
		}
	}
	if m.IntakeDateColumn != "" {
		if v, ok := rec(m.IntakeDateColumn); ok {
			row.IntakeDate = strings.TrimSpace(v)
		}
	}

	row.Positive = attributionGroup(rec, m, true)
	row.Negative = attributionGroup(rec, m, false)
	return row, true
}

func attributionGroup(rec Record, m schema.Mapping, positive bool) []AttributionEntry {
	var out []AttributionEntry
	for rank := 1; rank <= schema.MaxAttributionRank; rank++ {
		feature, ok := rec(m.FeatureColumn(positive, rank))
		if !ok {
			continue
		}
		feature = strings.TrimSpace(feature)
		if feature == "" || isNaN(feature) {
			continue
		}

		rawEffect, _ := rec(m.EffectColumn(positive, rank))
		effect, err := strconv.ParseFloat(strings.TrimSpace(rawEffect), 64)
		if err != nil {
			continue
		}

		value, _ := rec(m.ValueColumn(positive, rank))
		out = append(out, AttributionEntry{
			Rank:           rank,
			Feature:        feature,
			Value:          strings.TrimSpace(value),
			RelativeEffect: effect,
		})
	}
	return out
}

// isNaN matches the literal NaN cells pandas writes for blank entries.
func isNaN(v string) bool {
	return strings.EqualFold(v, "nan")
}
