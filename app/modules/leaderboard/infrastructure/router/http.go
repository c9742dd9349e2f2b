package leaderboardrouter

import (
	leaderboardhandlers "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/mask-tipper/pkg/httpapi"
	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes adds the scoreboard API to r. Scoreboards are public; recording a
// snapshot and inspecting the job queue require an editor token.
func RegisterRoutes(r chi.Router, h leaderboardhandlers.Handlers, tokens jwt.Service) {
	editor := r.With(httpapi.RequireEditor(tokens))

	r.Get("/api/seasons/{seasonID}/scoreboard", h.GetScoreboard)
	r.Get("/api/seasons/{seasonID}/scoreboard.png", h.GetScoreboardChart)
	r.Get("/api/seasons/{seasonID}/scoreboard.xlsx", h.GetScoreboardWorkbook)

	r.Get("/api/seasons/{seasonID}/snapshots", h.ListSnapshots)
	editor.Post("/api/seasons/{seasonID}/snapshots", h.RecordSnapshot)
	editor.Get("/api/seasons/{seasonID}/snapshots/jobs", h.ListPendingJobs)
}
