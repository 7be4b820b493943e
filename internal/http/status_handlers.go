package http

import (
	"context"
	nethttp "net/http"
	"time"

	mysqlstore "go-shelter-triage-board/internal/connectors/mysql"
	s3store "go-shelter-triage-board/internal/connectors/s3"
	viewsstore "go-shelter-triage-board/internal/connectors/views"
)

func servicesStatusHandler(loader *s3store.Loader, store *mysqlstore.Store, views *viewsstore.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
		defer cancel()

		payload := map[string]any{
			"generated_at": time.Now().UTC(),
			"services":     map[string]any{},
		}
		services := payload["services"].(map[string]any)

		services["s3"] = s3Status(ctx, loader)
		services["mysql"] = mysqlStatus(ctx, store)
		services["saved_views"] = viewsStatus(views)

		writeJSON(w, nethttp.StatusOK, payload)
	}
}

func s3Status(ctx context.Context, loader *s3store.Loader) map[string]any {
	if loader == nil || !loader.Enabled() {
		return map[string]any{"enabled": false, "ok": false, "error": "s3 integration disabled"}
	}

	start := time.Now()
	stats, err := loader.ServiceStats(ctx)
	recordExternalProbe("s3", "ServiceStats", time.Since(start).Seconds(), err)
	if err != nil {
		return map[string]any{"enabled": true, "ok": false, "error": err.Error()}
	}
	return map[string]any{"enabled": true, "ok": true, "stats": stats}
}

func mysqlStatus(ctx context.Context, store *mysqlstore.Store) map[string]any {
	if store == nil {
		return map[string]any{"enabled": false, "ok": false, "error": "database integration disabled"}
	}

	start := time.Now()
	stats, err := store.ServiceStats(ctx)
	recordStoreQuery("mysql", "ServiceStats", time.Since(start).Seconds(), err)
	if err != nil {
		return map[string]any{"enabled": true, "ok": false, "error": err.Error()}
	}
	return map[string]any{"enabled": true, "ok": true, "stats": stats}
}

func viewsStatus(store *viewsstore.Store) map[string]any {
	if store == nil {
		return map[string]any{"enabled": false, "ok": false, "error": "saved views disabled"}
	}
	return map[string]any{"enabled": true, "ok": true}
}
