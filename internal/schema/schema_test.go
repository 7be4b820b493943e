package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultWhenPathEmpty(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IDColumn != "AnimalID" || m.ScoreColumn != "predicted_score" {
		t.Fatalf("unexpected default mapping: %+v", m)
	}
	if m.Scale != ScaleScore {
		t.Fatalf("default scale should be score, got %q", m.Scale)
	}
}

func TestLoadOverridesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yml")
	blob := []byte("score_column: adoption_probability\nscale: probability\nstay_column: predicted_stay\n")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("write mapping file: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ScoreColumn != "adoption_probability" || m.Scale != ScaleProbability {
		t.Fatalf("overrides not applied: %+v", m)
	}
	if m.StayColumn != "predicted_stay" {
		t.Fatalf("stay column not applied: %+v", m)
	}
	if m.IDColumn != "AnimalID" || m.PositivePrefix != "Positive_Feature_" {
		t.Fatalf("defaults lost on override: %+v", m)
	}
}

func TestLoadRejectsUnknownScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yml")
	if err := os.WriteFile(path, []byte("scale: percentage\n"), 0o644); err != nil {
		t.Fatalf("write mapping file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown scale")
	}
}

func TestValidateNamesMissingColumn(t *testing.T) {
	m := Default()
	err := m.Validate(func(col string) bool {
		return col != "predicted_score"
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %T", err)
	}
	if missing.Column != "predicted_score" {
		t.Fatalf("error should name the missing column, got %q", missing.Column)
	}
}

func TestValidateRank1AttributionRequired(t *testing.T) {
	m := Default()
	err := m.Validate(func(col string) bool {
		return col != "Negative_Feature_1"
	})
	var missing *MissingColumnError
	if !errors.As(err, &missing) || missing.Column != "Negative_Feature_1" {
		t.Fatalf("expected missing Negative_Feature_1, got %v", err)
	}
}

func TestAttributionColumnNames(t *testing.T) {
	m := Default()
	if got := m.FeatureColumn(true, 2); got != "Positive_Feature_2" {
		t.Fatalf("unexpected feature column: %q", got)
	}
	if got := m.ValueColumn(false, 1); got != "Negative_Feature_1_Value" {
		t.Fatalf("unexpected value column: %q", got)
	}
	if got := m.EffectColumn(true, 3); got != "Positive_Feature_3_Relative_Diff" {
		t.Fatalf("unexpected effect column: %q", got)
	}
}

func TestScaleDomain(t *testing.T) {
	if ScaleScore.Domain() != 100 {
		t.Fatalf("score domain should be 100")
	}
	if ScaleProbability.Domain() != 1 {
		t.Fatalf("probability domain should be 1")
	}
}
