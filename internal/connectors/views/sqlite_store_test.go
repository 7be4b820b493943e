package views

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "views.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Upsert(ctx, "cats only", []string{"Cat", "Cat", " "}, "weekly review")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	view, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Name != "cats only" || view.Note != "weekly review" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.AnimalTypes) != 1 || view.AnimalTypes[0] != "Cat" {
		t.Fatalf("types should be deduped and trimmed: %v", view.AnimalTypes)
	}
}

func TestUpsertSameNameReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Upsert(ctx, "board", []string{"Dog"}, "")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// A different view inserted in between advances last_insert_rowid; the
	// re-upsert below must still resolve to the original id.
	otherID, err := store.Upsert(ctx, "other", []string{"Cat"}, "")
	if err != nil {
		t.Fatalf("other upsert failed: %v", err)
	}
	if otherID == first {
		t.Fatalf("distinct views should get distinct ids")
	}

	second, err := store.Upsert(ctx, "board", []string{"Dog", "Cat"}, "updated")
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if first != second {
		t.Fatalf("upsert by name should keep the id: %d vs %d", first, second)
	}

	view, err := store.Get(ctx, first)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(view.AnimalTypes) != 2 || view.Note != "updated" {
		t.Fatalf("upsert should replace fields: %+v", view)
	}

	views, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
}

func TestUpsertRequiresName(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Upsert(context.Background(), "  ", nil, ""); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired for blank name, got %v", err)
	}
}

func TestUpdateRenameCollision(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Upsert(ctx, "dogs", []string{"Dog"}, ""); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	id, err := store.Upsert(ctx, "cats", []string{"Cat"}, "")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if _, err := store.Update(ctx, id, "dogs", []string{"Cat"}, ""); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken for rename collision, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Upsert(ctx, "dogs", []string{"Dog"}, "")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	n, err := store.Update(ctx, id, "dogs and cats", []string{"Dog", "Cat"}, "expanded")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row updated, got %d", n)
	}

	view, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Name != "dogs and cats" || len(view.AnimalTypes) != 2 {
		t.Fatalf("update not applied: %+v", view)
	}

	n, err = store.Update(ctx, id+100, "missing", nil, "")
	if err != nil {
		t.Fatalf("update of missing id failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows updated for missing id, got %d", n)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Upsert(ctx, "temp", []string{"Bird"}, "")
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	n, err := store.Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row deleted, got %d", n)
	}

	n, err = store.Delete(ctx, id)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows deleted, got %d", n)
	}
}
