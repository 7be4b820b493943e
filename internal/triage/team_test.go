package triage

import (
	"testing"

	"go-shelter-triage-board/internal/predictions"
)

func TestResolveTeam(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"0", "Foster Coordinator"},
		{"1", "Community Outreach"},
		{"2", "Rescue Coordinator"},
		{"7", UnknownTeam},
		{"", UnknownTeam},
		{"  ", UnknownTeam},
		{"Foster Coordinator", "Foster Coordinator"},
		{"Behavior Team", "Behavior Team"},
	}
	for _, c := range cases {
		if got := ResolveTeam(c.raw); got != c.want {
			t.Fatalf("ResolveTeam(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestRecommendedTeamHiddenForFavorableRows(t *testing.T) {
	row := predictions.PredictionRow{Score: 80, HasLabel: true, Label: 1, TeamRaw: "0"}
	if _, show := RecommendedTeam(row, SelectByLabel, scoreThresholds()); show {
		t.Fatalf("favorable row should not carry a recommended team")
	}
}

func TestRecommendedTeamForAtRiskRow(t *testing.T) {
	row := predictions.PredictionRow{Score: 10, HasLabel: true, Label: 0, TeamRaw: "2"}
	team, show := RecommendedTeam(row, SelectByLabel, scoreThresholds())
	if !show {
		t.Fatalf("at-risk row should carry a recommended team")
	}
	if team != "Rescue Coordinator" {
		t.Fatalf("unexpected team: %q", team)
	}
}
