package triage

import (
	"testing"

	"go-shelter-triage-board/internal/predictions"
)

func sampleRows() []predictions.PredictionRow {
	return []predictions.PredictionRow{
		{ID: "A1", AnimalType: "Dog", Score: 80},
		{ID: "A2", AnimalType: "Dog", Score: 10},
		{ID: "C1", AnimalType: "Cat", Score: 40},
		{ID: "C2", AnimalType: "Cat", Score: 40},
	}
}

func TestFilterStateResolve(t *testing.T) {
	available := []string{"Cat", "Dog"}

	def := FilterState{}
	if got := def.Resolve(available); len(got) != 2 {
		t.Fatalf("default selection should include all types, got %v", got)
	}

	none := FilterState{AnimalTypes: []string{}}
	if got := none.Resolve(available); len(got) != 0 {
		t.Fatalf("explicit empty selection should stay empty, got %v", got)
	}

	some := FilterState{AnimalTypes: []string{"Cat"}}
	if got := some.Resolve(available); len(got) != 1 || got[0] != "Cat" {
		t.Fatalf("unexpected resolved selection: %v", got)
	}
}

func TestFilterEmptySelectionYieldsEmptyResult(t *testing.T) {
	if got := Filter(sampleRows(), nil); len(got) != 0 {
		t.Fatalf("empty selection should filter everything out, got %d rows", len(got))
	}
}

func TestBuildListSortsWorstFirst(t *testing.T) {
	items := BuildList(sampleRows(), []string{"Dog", "Cat"}, SelectByLabel, scoreThresholds())
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}

	wantOrder := []string{"A2", "C1", "C2", "A1"}
	for i, want := range wantOrder {
		if items[i].ID != want {
			t.Fatalf("position %d: got %s, want %s (full order %+v)", i, items[i].ID, want, items)
		}
	}

	if items[0].Category != CategoryHigh || items[0].Color != ColorHigh {
		t.Fatalf("worst item should be high risk: %+v", items[0])
	}
	if items[3].Category != CategoryLow {
		t.Fatalf("best item should be low risk: %+v", items[3])
	}
}

func TestBuildListRespectsFilter(t *testing.T) {
	items := BuildList(sampleRows(), []string{"Cat"}, SelectByLabel, scoreThresholds())
	if len(items) != 2 {
		t.Fatalf("expected 2 cat items, got %d", len(items))
	}
	for _, it := range items {
		if it.ID != "C1" && it.ID != "C2" {
			t.Fatalf("non-cat item leaked through: %+v", it)
		}
	}
}

func TestResolveSelection(t *testing.T) {
	rows := sampleRows()

	row, ok := ResolveSelection(rows, "C1")
	if !ok || row.ID != "C1" {
		t.Fatalf("expected to resolve C1, got %+v ok=%v", row, ok)
	}

	if _, ok := ResolveSelection(rows, "missing"); ok {
		t.Fatalf("unknown id should not resolve")
	}
	if _, ok := ResolveSelection(rows, ""); ok {
		t.Fatalf("empty id should not resolve")
	}

	catsOnly := Filter(rows, []string{"Cat"})
	if _, ok := ResolveSelection(catsOnly, "A1"); ok {
		t.Fatalf("id outside the filtered view should not resolve")
	}
}
