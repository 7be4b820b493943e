package http

import (
	"encoding/json"
	nethttp "net/http"
	"strings"
	"time"

	"go-shelter-triage-board/internal/schema"
	"go-shelter-triage-board/internal/triage"
)

type replaceFiltersRequest struct {
	// nil resets to the default selection (all types present); an empty
	// array selects nothing.
	AnimalTypes *[]string `json:"animal_types"`
}

type setSelectionRequest struct {
	ID string `json:"id"`
}

// viewConfig bundles the per-deployment display conventions every view
// handler needs.
type viewConfig struct {
	mapping    schema.Mapping
	thresholds triage.Thresholds
	mode       triage.SelectMode
}

func (vc viewConfig) hasStay() bool {
	return vc.mapping.StayColumn != ""
}

func writeSnapshotUnavailable(w nethttp.ResponseWriter, err error) {
	msg := "prediction data unavailable"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, nethttp.StatusServiceUnavailable, map[string]any{
		"error": msg,
	})
}

func animalTypesHandler(holder *snapshotHolder) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		snap, err := holder.Current(r.Context())
		if err != nil {
			writeSnapshotUnavailable(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"data": snap.AnimalTypes(),
		})
	}
}

func triageListHandler(holder *snapshotHolder, sessions *sessionStore, vc viewConfig) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		snap, err := holder.Current(r.Context())
		if err != nil {
			writeSnapshotUnavailable(w, err)
			return
		}

		sid := sessions.ensure(w, r)
		state := sessions.state(sid)
		selected := state.Resolve(snap.AnimalTypes())

		items := triage.BuildList(snap.Rows, selected, vc.mode, vc.thresholds)

		// A selection that no longer survives the filter is cleared, not
		// reported as an error.
		selectedID := state.SelectedID
		if selectedID != "" {
			if _, ok := triage.ResolveSelection(triage.Filter(snap.Rows, selected), selectedID); !ok {
				sessions.clearSelection(sid)
				selectedID = ""
			}
		}

		writeJSON(w, nethttp.StatusOK, map[string]any{
			"meta": map[string]any{
				"count":        len(items),
				"animal_types": selected,
				"selected_id":  selectedID,
			},
			"data": items,
		})
	}
}

func summaryHandler(holder *snapshotHolder, sessions *sessionStore, vc viewConfig) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		snap, err := holder.Current(r.Context())
		if err != nil {
			writeSnapshotUnavailable(w, err)
			return
		}

		sid := sessions.ensure(w, r)
		state := sessions.state(sid)
		selected := state.Resolve(snap.AnimalTypes())
		filtered := triage.Filter(snap.Rows, selected)

		summary := triage.BuildSummary(filtered, vc.thresholds, vc.mapping.Scale, vc.hasStay())
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"meta": map[string]any{
				"row_count":    len(filtered),
				"animal_types": selected,
				"scale":        vc.mapping.Scale,
			},
			"data": summary,
		})
	}
}

// animalDetailRouter serves /api/v1/animals/{id}/detail.
func animalDetailRouter(holder *snapshotHolder, sessions *sessionStore, vc viewConfig) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		trimmed := strings.TrimPrefix(r.URL.Path, "/api/v1/animals/")
		parts := strings.Split(strings.Trim(trimmed, "/"), "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] != "detail" {
			writeJSON(w, nethttp.StatusNotFound, map[string]any{"error": "not found"})
			return
		}
		animalID := parts[0]

		snap, err := holder.Current(r.Context())
		if err != nil {
			writeSnapshotUnavailable(w, err)
			return
		}

		sid := sessions.ensure(w, r)
		state := sessions.state(sid)
		selected := state.Resolve(snap.AnimalTypes())
		filtered := triage.Filter(snap.Rows, selected)

		row, ok := triage.ResolveSelection(filtered, animalID)
		if !ok {
			// Stale id after a filter change: clear the selection and tell
			// the panel to prompt for a new one.
			if state.SelectedID == animalID {
				sessions.clearSelection(sid)
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"data": map[string]any{
					"found":   false,
					"message": "Selected animal not found in filtered data.",
				},
			})
			return
		}

		cat := vc.thresholds.Category(row.Score)
		detail := map[string]any{
			"found":       true,
			"id":          row.ID,
			"animal_type": row.AnimalType,
			"score":       row.Score,
			"category":    cat,
			"color":       cat.Color(),
			"factors":     triage.Explain(row, vc.mode, vc.thresholds),
		}
		if row.IntakeDate != "" {
			detail["intake_date"] = row.IntakeDate
		}
		if team, show := triage.RecommendedTeam(row, vc.mode, vc.thresholds); show {
			detail["recommended_team"] = team
		}

		writeJSON(w, nethttp.StatusOK, map[string]any{"data": detail})
	}
}

func sessionFiltersHandler(holder *snapshotHolder, sessions *sessionStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		sid := sessions.ensure(w, r)

		switch r.Method {
		case nethttp.MethodGet:
			state := sessions.state(sid)
			available := []string{}
			if snap, err := holder.Current(r.Context()); err == nil {
				available = snap.AnimalTypes()
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"data": map[string]any{
					"animal_types":    state.Resolve(available),
					"default_all":     state.AnimalTypes == nil,
					"available_types": available,
					"selected_id":     state.SelectedID,
				},
			})
		case nethttp.MethodPut:
			var req replaceFiltersRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, nethttp.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
				return
			}
			if req.AnimalTypes == nil {
				sessions.setFilters(sid, nil)
			} else {
				types := make([]string, 0, len(*req.AnimalTypes))
				for _, t := range *req.AnimalTypes {
					t = strings.TrimSpace(t)
					if t != "" {
						types = append(types, t)
					}
				}
				sessions.setFilters(sid, types)
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{"data": sessions.state(sid)})
		default:
			writeJSON(w, nethttp.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		}
	}
}

func sessionSelectionHandler(holder *snapshotHolder, sessions *sessionStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		sid := sessions.ensure(w, r)

		switch r.Method {
		case nethttp.MethodPut:
			var req setSelectionRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, nethttp.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
				return
			}
			id := strings.TrimSpace(req.ID)

			// Selecting an id outside the current filtered view resolves to
			// "no selection" rather than an error.
			cleared := false
			if id != "" {
				if snap, err := holder.Current(r.Context()); err == nil {
					state := sessions.state(sid)
					filtered := triage.Filter(snap.Rows, state.Resolve(snap.AnimalTypes()))
					if _, ok := triage.ResolveSelection(filtered, id); !ok {
						id = ""
						cleared = true
					}
				}
			}
			sessions.setSelection(sid, id)
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"data": map[string]any{
					"selected_id": id,
					"cleared":     cleared,
				},
			})
		case nethttp.MethodDelete:
			sessions.clearSelection(sid)
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"data": map[string]any{"selected_id": ""},
			})
		default:
			writeJSON(w, nethttp.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		}
	}
}

func snapshotStatusHandler(holder *snapshotHolder) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		writeJSON(w, nethttp.StatusOK, map[string]any{"data": holder.Status()})
	}
}

func snapshotRefreshHandler(holder *snapshotHolder) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeJSON(w, nethttp.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}

		snap, err := holder.Refresh(r.Context())
		if err != nil {
			writeSnapshotUnavailable(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"data": map[string]any{
				"source":       snap.Source,
				"loaded_at":    snap.LoadedAt.Format(time.RFC3339),
				"row_count":    len(snap.Rows),
				"rows_skipped": snap.RowsSkipped,
			},
		})
	}
}
