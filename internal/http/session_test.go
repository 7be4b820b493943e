package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	viewsstore "go-shelter-triage-board/internal/connectors/views"
)

func TestSessionStoreReusesCookieSession(t *testing.T) {
	sessions := newSessionStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	first := sessions.ensure(rr, req)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	second := sessions.ensure(httptest.NewRecorder(), req)

	if first != second {
		t.Fatalf("cookie should map to the same session: %s vs %s", first, second)
	}
	if len(sessions.states) != 1 {
		t.Fatalf("expected 1 session entry, got %d", len(sessions.states))
	}
}

func TestSessionStoreStaysBounded(t *testing.T) {
	sessions := newSessionStore()

	for i := 0; i < maxSessions+50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		sessions.ensure(httptest.NewRecorder(), req)
	}

	if len(sessions.states) != maxSessions {
		t.Fatalf("cookie-less traffic should not grow the map past %d, got %d", maxSessions, len(sessions.states))
	}
}

func TestSavedViewDetailRouter_RenameCollision(t *testing.T) {
	store, err := viewsstore.NewSQLiteStore(filepath.Join(t.TempDir(), "views.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if _, err := store.Upsert(ctx, "dogs", []string{"Dog"}, ""); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	id, err := store.Upsert(ctx, "cats", []string{"Cat"}, "")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	h := savedViewDetailRouter(store)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/views/"+strconv.FormatInt(id, 10), strings.NewReader(`{"name":"dogs"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["error"] != "view name already in use" {
		t.Fatalf("expected curated message, got %v", payload["error"])
	}
}
