package http

import (
	"context"
	"sync"
	"time"

	"go-shelter-triage-board/internal/predictions"
)

// snapshotSource is any connector that can produce the full current
// prediction table in one attempt.
type snapshotSource interface {
	Name() string
	Fetch(ctx context.Context) (rows []predictions.PredictionRow, skipped int, err error)
}

// snapshotHolder owns the immutable in-memory snapshot. The first view to
// need data triggers a load; a failed load is retried on the next view
// (one attempt per view, no backoff), matching the board's rerun semantics.
type snapshotHolder struct {
	source snapshotSource

	mu          sync.Mutex
	snap        *predictions.Snapshot
	lastErr     error
	lastAttempt time.Time
}

func newSnapshotHolder(source snapshotSource) *snapshotHolder {
	return &snapshotHolder{source: source}
}

// Current returns the held snapshot, loading it if no load has succeeded yet.
func (h *snapshotHolder) Current(ctx context.Context) (*predictions.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snap != nil {
		return h.snap, nil
	}
	return h.loadLocked(ctx)
}

// Refresh discards the held snapshot and loads a fresh one.
func (h *snapshotHolder) Refresh(ctx context.Context) (*predictions.Snapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap = nil
	return h.loadLocked(ctx)
}

func (h *snapshotHolder) loadLocked(ctx context.Context) (*predictions.Snapshot, error) {
	h.lastAttempt = time.Now().UTC()
	if h.source == nil {
		h.lastErr = predictions.ErrUnavailable
		recordSnapshotLoad("disabled", 0)
		return nil, h.lastErr
	}

	start := time.Now()
	rows, skipped, err := h.source.Fetch(ctx)
	if err != nil {
		h.lastErr = err
		recordSnapshotLoad("error", time.Since(start).Seconds())
		return nil, err
	}

	h.snap = &predictions.Snapshot{
		Rows:        rows,
		Source:      h.source.Name(),
		LoadedAt:    h.lastAttempt,
		RowsSkipped: skipped,
	}
	h.lastErr = nil
	recordSnapshotLoad("ok", time.Since(start).Seconds())
	return h.snap, nil
}

// Status describes the holder for the snapshot status endpoint.
func (h *snapshotHolder) Status() map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := map[string]any{
		"loaded": h.snap != nil,
	}
	if h.source != nil {
		out["source"] = h.source.Name()
	}
	if !h.lastAttempt.IsZero() {
		out["last_attempt"] = h.lastAttempt
	}
	if h.snap != nil {
		out["loaded_at"] = h.snap.LoadedAt
		out["row_count"] = len(h.snap.Rows)
		out["rows_skipped"] = h.snap.RowsSkipped
	}
	if h.lastErr != nil {
		out["error"] = h.lastErr.Error()
	}
	return out
}
