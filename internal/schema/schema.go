package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scale declares which numeric convention the prediction table uses for the
// adoptability signal. A deployed table version uses exactly one of them.
type Scale string

const (
	ScaleScore       Scale = "score"       // 0-100
	ScaleProbability Scale = "probability" // 0.0-1.0
)

// Domain returns the inclusive upper bound of the scale.
func (s Scale) Domain() float64 {
	if s == ScaleProbability {
		return 1.0
	}
	return 100.0
}

// MaxAttributionRank is how many ranked attribution entries each group of a
// prediction row may carry.
const MaxAttributionRank = 3

// Mapping declares which physical columns of the prediction table back each
// logical field. Deployed table versions rename columns freely, so nothing
// here is hardcoded in the decoders.
type Mapping struct {
	IDColumn         string `yaml:"id_column"`
	AnimalTypeColumn string `yaml:"animal_type_column"`
	ScoreColumn      string `yaml:"score_column"`
	Scale            Scale  `yaml:"scale"`

	// Optional columns; empty means the deployed table does not carry them.
	LabelColumn      string `yaml:"label_column"`
	TeamColumn       string `yaml:"team_column"`
	StayColumn       string `yaml:"stay_column"`
	IntakeDateColumn string `yaml:"intake_date_column"`

	PositivePrefix string `yaml:"positive_prefix"`
	NegativePrefix string `yaml:"negative_prefix"`
	ValueSuffix    string `yaml:"value_suffix"`
	EffectSuffix   string `yaml:"effect_suffix"`
}

// Default matches the column layout the offline scoring pipeline currently
// publishes.
func Default() Mapping {
	return Mapping{
		IDColumn:         "AnimalID",
		AnimalTypeColumn: "Animal_Type",
		ScoreColumn:      "predicted_score",
		Scale:            ScaleScore,
		LabelColumn:      "predicted_label",
		TeamColumn:       "predicted_label_name",
		StayColumn:       "",
		IntakeDateColumn: "Intake_Date",
		PositivePrefix:   "Positive_Feature_",
		NegativePrefix:   "Negative_Feature_",
		ValueSuffix:      "_Value",
		EffectSuffix:     "_Relative_Diff",
	}
}

// Load reads a mapping file, falling back to Default when path is empty.
// Omitted attribution prefixes/suffixes keep their defaults so a mapping file
// only needs to name what actually differs.
func Load(path string) (Mapping, error) {
	m := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return m, nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read schema mapping %s: %w", path, err)
	}
	if err := yaml.Unmarshal(blob, &m); err != nil {
		return Mapping{}, fmt.Errorf("parse schema mapping %s: %w", path, err)
	}

	if m.Scale == "" {
		m.Scale = ScaleScore
	}
	if m.Scale != ScaleScore && m.Scale != ScaleProbability {
		return Mapping{}, fmt.Errorf("schema mapping %s: unknown scale %q", path, m.Scale)
	}
	if m.IDColumn == "" || m.AnimalTypeColumn == "" || m.ScoreColumn == "" {
		return Mapping{}, fmt.Errorf("schema mapping %s: id_column, animal_type_column and score_column are required", path)
	}
	if m.PositivePrefix == "" || m.NegativePrefix == "" {
		return Mapping{}, fmt.Errorf("schema mapping %s: attribution prefixes are required", path)
	}
	return m, nil
}

// MissingColumnError reports a configured column absent from the loaded table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("prediction table is missing mapped column %q", e.Column)
}

// FeatureColumn returns the physical name column for one attribution rank.
func (m Mapping) FeatureColumn(positive bool, rank int) string {
	return m.prefix(positive) + fmt.Sprintf("%d", rank)
}

// ValueColumn returns the physical feature-value column for one rank.
func (m Mapping) ValueColumn(positive bool, rank int) string {
	return m.FeatureColumn(positive, rank) + m.ValueSuffix
}

// EffectColumn returns the physical relative-effect column for one rank.
func (m Mapping) EffectColumn(positive bool, rank int) string {
	return m.FeatureColumn(positive, rank) + m.EffectSuffix
}

func (m Mapping) prefix(positive bool) string {
	if positive {
		return m.PositivePrefix
	}
	return m.NegativePrefix
}

// Validate fails fast when a required mapped column is absent. has reports
// whether the loaded table carries the named physical column. Rank-1
// attribution columns are required for both groups; ranks 2 and 3 may be
// absent in narrow table versions.
func (m Mapping) Validate(has func(column string) bool) error {
	required := []string{m.IDColumn, m.AnimalTypeColumn, m.ScoreColumn}
	if m.LabelColumn != "" {
		required = append(required, m.LabelColumn)
	}
	if m.TeamColumn != "" {
		required = append(required, m.TeamColumn)
	}
	if m.StayColumn != "" {
		required = append(required, m.StayColumn)
	}
	if m.IntakeDateColumn != "" {
		required = append(required, m.IntakeDateColumn)
	}
	for _, positive := range []bool{true, false} {
		required = append(required,
			m.FeatureColumn(positive, 1),
			m.ValueColumn(positive, 1),
			m.EffectColumn(positive, 1),
		)
	}

	for _, col := range required {
		if !has(col) {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// Columns lists every physical column the mapping can reference, used by
// sources that must build explicit projections. present filters columns the
// caller knows to exist; pass nil to list all of them.
func (m Mapping) Columns(present func(column string) bool) []string {
	out := make([]string, 0, 8+6*MaxAttributionRank)
	push := func(col string) {
		if col == "" {
			return
		}
		if present != nil && !present(col) {
			return
		}
		out = append(out, col)
	}

	push(m.IDColumn)
	push(m.AnimalTypeColumn)
	push(m.ScoreColumn)
	push(m.LabelColumn)
	push(m.TeamColumn)
	push(m.StayColumn)
	push(m.IntakeDateColumn)
	for rank := 1; rank <= MaxAttributionRank; rank++ {
		for _, positive := range []bool{true, false} {
			push(m.FeatureColumn(positive, rank))
			push(m.ValueColumn(positive, rank))
			push(m.EffectColumn(positive, rank))
		}
	}
	return out
}
