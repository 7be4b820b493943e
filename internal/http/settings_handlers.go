package http

import (
	nethttp "net/http"

	"go-shelter-triage-board/internal/triage"
)

// riskThresholdsHandler exposes the deployment's display conventions so the
// UI legend and external consumers never hardcode them.
func riskThresholdsHandler(vc viewConfig) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"data": map[string]any{
				"scale":              vc.mapping.Scale,
				"high_below":         vc.thresholds.HighBelow,
				"medium_below":       vc.thresholds.MediumBelow,
				"attribution_select": string(vc.mode),
				"colors": map[string]any{
					"high":   triage.ColorHigh,
					"medium": triage.ColorMedium,
					"low":    triage.ColorLow,
				},
			},
		})
	}
}
