package triage

import (
	"strconv"
	"strings"

	"go-shelter-triage-board/internal/predictions"
)

// UnknownTeam is the sentinel for outcome codes with no mapping.
const UnknownTeam = "Unassigned Team"

// teamNames maps the pipeline's coded outcome classes to handling teams.
var teamNames = map[int]string{
	0: "Foster Coordinator",
	1: "Community Outreach",
	2: "Rescue Coordinator",
}

// ResolveTeam turns a raw recommended-team cell into a display name. Table
// versions carry either an integer outcome code or a preresolved name; names
// pass through untouched, unmapped codes and blanks become the sentinel.
func ResolveTeam(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return UnknownTeam
	}
	if code, err := strconv.Atoi(raw); err == nil {
		if name, ok := teamNames[code]; ok {
			return name
		}
		return UnknownTeam
	}
	return raw
}

// RecommendedTeam returns the team that should handle an at-risk row, and
// whether a team panel should be shown at all. Favorable rows carry no team.
func RecommendedTeam(row predictions.PredictionRow, mode SelectMode, t Thresholds) (string, bool) {
	if Favorable(row, mode, t) {
		return "", false
	}
	return ResolveTeam(row.TeamRaw), true
}
