package triage

import (
	"testing"

	"go-shelter-triage-board/internal/predictions"
	"go-shelter-triage-board/internal/schema"
)

func scoreThresholds() Thresholds {
	return DefaultThresholds(schema.ScaleScore)
}

func TestExplainSentenceFormatting(t *testing.T) {
	row := predictions.PredictionRow{
		ID:       "A1",
		Score:    12,
		HasLabel: true,
		Label:    0,
		Negative: []predictions.AttributionEntry{
			{Rank: 1, Feature: "SHAP-Age", Value: "2", RelativeEffect: -0.42},
			{Rank: 2, Feature: "Breed", Value: "Labrador Retriever", RelativeEffect: 0.7},
		},
	}

	factors := Explain(row, SelectByLabel, scoreThresholds())
	if len(factors) != 2 {
		t.Fatalf("expected 2 factors, got %d", len(factors))
	}

	if factors[0].Feature != "Age" {
		t.Fatalf("prefix not stripped: %q", factors[0].Feature)
	}
	if factors[0].Glyph != "🎂" {
		t.Fatalf("unexpected glyph for Age: %q", factors[0].Glyph)
	}
	if factors[0].Sentence != "2 years are 42% less likely to be adopted." {
		t.Fatalf("unexpected sentence: %q", factors[0].Sentence)
	}

	if factors[1].Sentence != "Labrador Retriever are 70% more likely to be adopted." {
		t.Fatalf("unexpected sentence: %q", factors[1].Sentence)
	}
}

func TestExplainUnknownFeatureGetsFallbackGlyph(t *testing.T) {
	row := predictions.PredictionRow{
		ID:       "A1",
		Score:    12,
		HasLabel: true,
		Label:    0,
		Negative: []predictions.AttributionEntry{
			{Rank: 1, Feature: "Microchip", Value: "No", RelativeEffect: -0.1},
		},
	}

	factors := Explain(row, SelectByLabel, scoreThresholds())
	if len(factors) != 1 {
		t.Fatalf("expected 1 factor, got %d", len(factors))
	}
	if factors[0].Glyph != fallbackGlyph {
		t.Fatalf("expected fallback glyph, got %q", factors[0].Glyph)
	}
}

func TestExplainEmptyGroupYieldsEmptyList(t *testing.T) {
	row := predictions.PredictionRow{ID: "A1", Score: 12, HasLabel: true, Label: 0}

	factors := Explain(row, SelectByLabel, scoreThresholds())
	if len(factors) != 0 {
		t.Fatalf("expected no factors, got %d", len(factors))
	}
}

func TestSelectGroupByLabel(t *testing.T) {
	pos := []predictions.AttributionEntry{{Rank: 1, Feature: "Breed", RelativeEffect: 0.5}}
	neg := []predictions.AttributionEntry{{Rank: 1, Feature: "Age", RelativeEffect: -0.5}}

	favorable := predictions.PredictionRow{Score: 10, HasLabel: true, Label: 1, Positive: pos, Negative: neg}
	group := SelectGroup(favorable, SelectByLabel, scoreThresholds())
	if len(group) != 1 || group[0].Feature != "Breed" {
		t.Fatalf("favorable row should use positive group, got %+v", group)
	}

	atRisk := predictions.PredictionRow{Score: 90, HasLabel: true, Label: 0, Positive: pos, Negative: neg}
	group = SelectGroup(atRisk, SelectByLabel, scoreThresholds())
	if len(group) != 1 || group[0].Feature != "Age" {
		t.Fatalf("unfavorable row should use negative group, got %+v", group)
	}
}

func TestSelectGroupFallsBackToThresholdWithoutLabel(t *testing.T) {
	pos := []predictions.AttributionEntry{{Rank: 1, Feature: "Breed", RelativeEffect: 0.5}}
	neg := []predictions.AttributionEntry{{Rank: 1, Feature: "Age", RelativeEffect: -0.5}}

	row := predictions.PredictionRow{Score: 75, Positive: pos, Negative: neg}
	group := SelectGroup(row, SelectByLabel, scoreThresholds())
	if len(group) != 1 || group[0].Feature != "Breed" {
		t.Fatalf("unlabeled row above cutoff should use positive group, got %+v", group)
	}

	row.Score = 20
	group = SelectGroup(row, SelectByLabel, scoreThresholds())
	if len(group) != 1 || group[0].Feature != "Age" {
		t.Fatalf("unlabeled row below cutoff should use negative group, got %+v", group)
	}
}

func TestParseSelectMode(t *testing.T) {
	if ParseSelectMode("threshold") != SelectByThreshold {
		t.Fatalf("threshold mode not recognized")
	}
	if ParseSelectMode("") != SelectByLabel {
		t.Fatalf("empty mode should default to label")
	}
	if ParseSelectMode("bogus") != SelectByLabel {
		t.Fatalf("unknown mode should default to label")
	}
}

func TestPrimaryConcern(t *testing.T) {
	row := predictions.PredictionRow{
		Score:    10,
		HasLabel: true,
		Label:    0,
		Negative: []predictions.AttributionEntry{
			{Rank: 1, Feature: "SHAP-Intake Condition", RelativeEffect: -0.3},
			{Rank: 2, Feature: "Age", RelativeEffect: -0.1},
		},
	}
	if got := PrimaryConcern(row, SelectByLabel, scoreThresholds()); got != "Intake Condition" {
		t.Fatalf("unexpected primary concern: %q", got)
	}

	empty := predictions.PredictionRow{Score: 10, HasLabel: true, Label: 0}
	if got := PrimaryConcern(empty, SelectByLabel, scoreThresholds()); got != "" {
		t.Fatalf("expected empty concern, got %q", got)
	}
}
