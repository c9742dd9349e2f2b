package seasonrouter

import (
	seasonhandlers "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/handlers"
	"github.com/Black-And-White-Club/mask-tipper/pkg/httpapi"
	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes adds the season API to r. Reads are public; every mutation
// requires a token whose role may edit.
func RegisterRoutes(r chi.Router, h seasonhandlers.Handlers, tokens jwt.Service) {
	editor := r.With(httpapi.RequireEditor(tokens))

	r.Get("/api/seasons", h.ListSeasons)
	r.Get("/api/seasons/{seasonID}", h.GetSeason)
	editor.Post("/api/seasons", h.CreateSeason)
	editor.Put("/api/seasons/{seasonID}", h.UpdateSeason)
	editor.Delete("/api/seasons/{seasonID}", h.DeleteSeason)

	editor.Post("/api/seasons/{seasonID}/participants", h.AddParticipant)
	editor.Delete("/api/seasons/{seasonID}/participants/{playerID}", h.RemoveParticipant)

	editor.Post("/api/seasons/{seasonID}/shows", h.AddShow)
	editor.Delete("/api/seasons/{seasonID}/shows/{showID}", h.DeleteShow)
	editor.Put("/api/seasons/{seasonID}/active-show", h.SetActiveShow)

	editor.Post("/api/seasons/{seasonID}/masks", h.AddMask)
	editor.Put("/api/seasons/{seasonID}/masks/{maskID}", h.UpdateMask)
	editor.Delete("/api/seasons/{seasonID}/masks/{maskID}", h.DeleteMask)
	editor.Post("/api/seasons/{seasonID}/masks/{maskID}/reveal", h.RevealMask)

	editor.Post("/api/seasons/{seasonID}/masks/{maskID}/tips", h.AddTip)
	editor.Delete("/api/seasons/{seasonID}/masks/{maskID}/tips/{playerID}/last", h.DeleteLastTip)

	editor.Post("/api/seasons/{seasonID}/counter-bets", h.PlaceCounterBet)
	editor.Delete("/api/seasons/{seasonID}/counter-bets/{betID}", h.DeleteCounterBet)

	r.Get("/api/players", h.ListPlayers)
	editor.Post("/api/players", h.CreatePlayer)
	editor.Put("/api/players/{playerID}", h.UpdatePlayer)
	editor.Delete("/api/players/{playerID}", h.DeletePlayer)

	editor.Get("/api/state", h.ExportState)
	editor.Post("/api/state", h.ImportState)
}
