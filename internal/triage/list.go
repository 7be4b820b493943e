package triage

import (
	"sort"

	"go-shelter-triage-board/internal/predictions"
)

// FilterState is the session-scoped view state. A nil AnimalTypes slice means
// the default selection (every type present in the snapshot); an explicitly
// empty slice selects nothing and yields an empty board.
type FilterState struct {
	AnimalTypes []string `json:"animal_types"`
	SelectedID  string   `json:"selected_id"`
}

// Resolve expands the default selection against the types available in the
// current snapshot.
func (f FilterState) Resolve(available []string) []string {
	if f.AnimalTypes == nil {
		return available
	}
	return f.AnimalTypes
}

// Item is one triage list row, worst-first.
type Item struct {
	ID             string   `json:"id"`
	Score          float64  `json:"score"`
	Category       Category `json:"category"`
	Color          string   `json:"color"`
	PrimaryConcern string   `json:"primary_concern"`
}

// Filter keeps the rows whose animal type is selected. An empty selection
// yields an empty result, not "show all".
func Filter(rows []predictions.PredictionRow, selected []string) []predictions.PredictionRow {
	set := make(map[string]struct{}, len(selected))
	for _, t := range selected {
		set[t] = struct{}{}
	}
	out := make([]predictions.PredictionRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := set[row.AnimalType]; ok {
			out = append(out, row)
		}
	}
	return out
}

// BuildList filters, sorts ascending by signal (worst first, ties stable by
// id) and projects the rows for the selectable list widget.
func BuildList(rows []predictions.PredictionRow, selected []string, mode SelectMode, t Thresholds) []Item {
	filtered := Filter(rows, selected)
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Score != filtered[j].Score {
			return filtered[i].Score < filtered[j].Score
		}
		return filtered[i].ID < filtered[j].ID
	})

	items := make([]Item, 0, len(filtered))
	for _, row := range filtered {
		cat := t.Category(row.Score)
		items = append(items, Item{
			ID:             row.ID,
			Score:          row.Score,
			Category:       cat,
			Color:          cat.Color(),
			PrimaryConcern: PrimaryConcern(row, mode, t),
		})
	}
	return items
}

// ResolveSelection returns the selected row when it survives the current
// filter. A selection that fell out of the filtered view (say, after a filter
// change) resolves to "no selection" rather than an error; callers should
// persist the cleared state.
func ResolveSelection(filtered []predictions.PredictionRow, selectedID string) (predictions.PredictionRow, bool) {
	if selectedID == "" {
		return predictions.PredictionRow{}, false
	}
	for _, row := range filtered {
		if row.ID == selectedID {
			return row, true
		}
	}
	return predictions.PredictionRow{}, false
}
