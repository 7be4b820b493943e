package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	viewsstore "go-shelter-triage-board/internal/connectors/views"
)

type saveViewRequest struct {
	Name        string   `json:"name"`
	AnimalTypes []string `json:"animal_types"`
	Note        string   `json:"note"`
}

const savedViewsListLimit = 200

// writeSavedViewError keeps driver internals out of client responses.
func writeSavedViewError(w nethttp.ResponseWriter, err error) {
	switch {
	case errors.Is(err, viewsstore.ErrNameTaken):
		writeJSON(w, nethttp.StatusConflict, map[string]any{"error": "view name already in use"})
	case errors.Is(err, viewsstore.ErrNameRequired):
		writeJSON(w, nethttp.StatusBadRequest, map[string]any{"error": "view name is required"})
	default:
		writeJSON(w, nethttp.StatusInternalServerError, map[string]any{"error": "failed to save view"})
	}
}

func savedViewsHandler(store *viewsstore.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if store == nil {
			writeJSON(w, nethttp.StatusServiceUnavailable, map[string]any{
				"error": "saved views disabled (set APP_VIEWS_SQLITE_PATH)",
			})
			return
		}

		switch r.Method {
		case nethttp.MethodGet:
			start := time.Now()
			items, err := store.List(r.Context(), savedViewsListLimit)
			recordStoreQuery("views", "List", time.Since(start).Seconds(), err)
			if err != nil {
				writeJSON(w, nethttp.StatusInternalServerError, map[string]any{"error": "failed to list saved views"})
				return
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"meta": map[string]any{"count": len(items)},
				"data": items,
			})
		case nethttp.MethodPost:
			var req saveViewRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, nethttp.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
				return
			}
			start := time.Now()
			id, err := store.Upsert(r.Context(), req.Name, req.AnimalTypes, req.Note)
			recordStoreQuery("views", "Upsert", time.Since(start).Seconds(), err)
			if err != nil {
				writeSavedViewError(w, err)
				return
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"data": map[string]any{"id": id},
			})
		default:
			writeJSON(w, nethttp.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		}
	}
}

// savedViewDetailRouter serves /api/v1/views/{id}.
func savedViewDetailRouter(store *viewsstore.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if store == nil {
			writeJSON(w, nethttp.StatusServiceUnavailable, map[string]any{
				"error": "saved views disabled (set APP_VIEWS_SQLITE_PATH)",
			})
			return
		}

		raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/views/"), "/")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeJSON(w, nethttp.StatusNotFound, map[string]any{"error": "not found"})
			return
		}

		switch r.Method {
		case nethttp.MethodGet:
			start := time.Now()
			item, err := store.Get(r.Context(), id)
			recordStoreQuery("views", "Get", time.Since(start).Seconds(), err)
			if err != nil {
				writeJSON(w, nethttp.StatusNotFound, map[string]any{"error": "saved view not found"})
				return
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{"data": item})
		case nethttp.MethodPut:
			var req saveViewRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, nethttp.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
				return
			}
			start := time.Now()
			n, err := store.Update(r.Context(), id, req.Name, req.AnimalTypes, req.Note)
			recordStoreQuery("views", "Update", time.Since(start).Seconds(), err)
			if err != nil {
				writeSavedViewError(w, err)
				return
			}
			if n == 0 {
				writeJSON(w, nethttp.StatusNotFound, map[string]any{"error": "saved view not found"})
				return
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"data": map[string]any{"id": id},
			})
		case nethttp.MethodDelete:
			start := time.Now()
			n, err := store.Delete(r.Context(), id)
			recordStoreQuery("views", "Delete", time.Since(start).Seconds(), err)
			if err != nil {
				writeJSON(w, nethttp.StatusInternalServerError, map[string]any{"error": "failed to delete saved view"})
				return
			}
			writeJSON(w, nethttp.StatusOK, map[string]any{
				"data": map[string]any{"deleted": n},
			})
		default:
			writeJSON(w, nethttp.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		}
	}
}
