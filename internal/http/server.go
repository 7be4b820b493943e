package http

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"strconv"
	"time"

	"go-shelter-triage-board/internal/config"
	mysqlstore "go-shelter-triage-board/internal/connectors/mysql"
	s3store "go-shelter-triage-board/internal/connectors/s3"
	viewsstore "go-shelter-triage-board/internal/connectors/views"
	"go-shelter-triage-board/internal/schema"
	"go-shelter-triage-board/internal/triage"
)

// Server wraps an HTTP server and route handlers.
type Server struct {
	httpServer *nethttp.Server
	holder     *snapshotHolder
	sessions   *sessionStore
	s3Loader   *s3store.Loader
	mysqlStore *mysqlstore.Store
	viewsStore *viewsstore.Store
}

// NewServer creates a configured HTTP server with v1 endpoints.
func NewServer(cfg config.Config) (*Server, error) {
	mapping, err := schema.Load(cfg.SchemaMapPath)
	if err != nil {
		return nil, err
	}

	thresholds := triage.DefaultThresholds(mapping.Scale)
	if cfg.RiskHighBelow >= 0 {
		thresholds.HighBelow = cfg.RiskHighBelow
	}
	if cfg.RiskMediumBelow >= 0 {
		thresholds.MediumBelow = cfg.RiskMediumBelow
	}
	if thresholds.HighBelow > thresholds.MediumBelow {
		return nil, fmt.Errorf("risk thresholds misordered: high_below=%v > medium_below=%v", thresholds.HighBelow, thresholds.MediumBelow)
	}

	vc := viewConfig{
		mapping:    mapping,
		thresholds: thresholds,
		mode:       triage.ParseSelectMode(cfg.AttributionSelect),
	}

	// The warehouse source wins when enabled; the blob store is the default
	// deployment shape.
	var (
		source     snapshotSource
		s3Loader   *s3store.Loader
		mysqlStore *mysqlstore.Store
	)
	if cfg.DBEnabled {
		createdStore, err := mysqlstore.NewStore(cfg, mapping)
		if err != nil {
			return nil, err
		}
		mysqlStore = createdStore
		source = createdStore
	} else if cfg.S3Enabled {
		s3Loader = s3store.NewLoader(cfg, mapping)
		source = s3Loader
	}

	var savedViews *viewsstore.Store
	if cfg.ViewsSQLitePath != "" {
		createdStore, err := viewsstore.NewSQLiteStore(cfg.ViewsSQLitePath)
		if err != nil {
			return nil, err
		}
		savedViews = createdStore
	}

	holder := newSnapshotHolder(source)
	sessions := newSessionStore()

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/", dashboardHandler)
	mux.HandleFunc("/favicon.ico", faviconHandler)
	mux.Handle("/metrics", metricsHandler())
	mux.HandleFunc("/api/v1/metrics/app", appMetricsSummaryHandler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", readyHandler)
	mux.HandleFunc("/api/v1/animal-types", animalTypesHandler(holder))
	mux.HandleFunc("/api/v1/triage", triageListHandler(holder, sessions, vc))
	mux.HandleFunc("/api/v1/animals/", animalDetailRouter(holder, sessions, vc))
	mux.HandleFunc("/api/v1/summary", summaryHandler(holder, sessions, vc))
	mux.HandleFunc("/api/v1/session/filters", sessionFiltersHandler(holder, sessions))
	mux.HandleFunc("/api/v1/session/selection", sessionSelectionHandler(holder, sessions))
	mux.HandleFunc("/api/v1/snapshot", snapshotStatusHandler(holder))
	mux.HandleFunc("/api/v1/snapshot/refresh", snapshotRefreshHandler(holder))
	mux.HandleFunc("/api/v1/views", savedViewsHandler(savedViews))
	mux.HandleFunc("/api/v1/views/", savedViewDetailRouter(savedViews))
	mux.HandleFunc("/api/v1/status/services", servicesStatusHandler(s3Loader, mysqlStore, savedViews))
	mux.HandleFunc("/api/v1/settings/risk-thresholds", riskThresholdsHandler(vc))

	httpServer := &nethttp.Server{
		Addr:         cfg.ListenAddr,
		Handler:      loggingMiddleware(observabilityMiddleware(mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		holder:     holder,
		sessions:   sessions,
		s3Loader:   s3Loader,
		mysqlStore: mysqlStore,
		viewsStore: savedViews,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.mysqlStore != nil {
		_ = s.mysqlStore.Close()
	}
	if s.viewsStore != nil {
		_ = s.viewsStore.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

func readyHandler(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status": "ready",
	})
}

func loggingMiddleware(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: nethttp.StatusOK}
		next.ServeHTTP(rec, r)
		fmt.Printf("%s %s %s %s\n", r.Method, r.URL.Path, strconv.Itoa(rec.status), time.Since(start))
	})
}

func writeJSON(w nethttp.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
