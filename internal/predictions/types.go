package predictions

import (
	"errors"
	"sort"
	"time"
)

// ErrUnavailable marks any snapshot load failure (network, auth, malformed
// file). Handlers surface it as a visible non-fatal condition; the board
// renders empty rather than crashing.
var ErrUnavailable = errors.New("prediction data unavailable")

// AttributionEntry is one ranked feature attribution produced by the offline
// scoring pipeline. A positive RelativeEffect pushes toward adoption.
type AttributionEntry struct {
	Rank           int     `json:"rank"`
	Feature        string  `json:"feature"`
	Value          string  `json:"value"`
	RelativeEffect float64 `json:"relative_effect"`
}

// PredictionRow is one animal's latest prediction record. Rows are produced
// entirely upstream and immutable for the lifetime of a snapshot.
type PredictionRow struct {
	ID         string             `json:"id"`
	AnimalType string             `json:"animal_type"`
	Score      float64            `json:"score"`
	HasLabel   bool               `json:"has_label"`
	Label      int                `json:"label"`
	TeamRaw    string             `json:"team_raw,omitempty"`
	Stay       string             `json:"stay,omitempty"`
	IntakeDate string             `json:"intake_date,omitempty"`
	Positive   []AttributionEntry `json:"positive,omitempty"`
	Negative   []AttributionEntry `json:"negative,omitempty"`
}

// Snapshot is the read-only prediction table held for a session. One load
// attempt per refresh; no background revalidation.
type Snapshot struct {
	Rows        []PredictionRow `json:"rows"`
	Source      string          `json:"source"`
	LoadedAt    time.Time       `json:"loaded_at"`
	RowsSkipped int             `json:"rows_skipped"`
}

// AnimalTypes returns the distinct animal types present, sorted, for the
// filter control's default "all" selection.
func (s *Snapshot) AnimalTypes() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, 8)
	out := make([]string, 0, 8)
	for _, row := range s.Rows {
		if row.AnimalType == "" {
			continue
		}
		if _, ok := seen[row.AnimalType]; ok {
			continue
		}
		seen[row.AnimalType] = struct{}{}
		out = append(out, row.AnimalType)
	}
	sort.Strings(out)
	return out
}
