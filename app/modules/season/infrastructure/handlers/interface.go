package seasonhandlers

import "net/http"

// Handlers defines the HTTP surface of the season module.
type Handlers interface {
	ListSeasons(w http.ResponseWriter, r *http.Request)
	GetSeason(w http.ResponseWriter, r *http.Request)
	CreateSeason(w http.ResponseWriter, r *http.Request)
	UpdateSeason(w http.ResponseWriter, r *http.Request)
	DeleteSeason(w http.ResponseWriter, r *http.Request)

	AddParticipant(w http.ResponseWriter, r *http.Request)
	RemoveParticipant(w http.ResponseWriter, r *http.Request)

	AddShow(w http.ResponseWriter, r *http.Request)
	DeleteShow(w http.ResponseWriter, r *http.Request)
	SetActiveShow(w http.ResponseWriter, r *http.Request)

	AddMask(w http.ResponseWriter, r *http.Request)
	UpdateMask(w http.ResponseWriter, r *http.Request)
	DeleteMask(w http.ResponseWriter, r *http.Request)
	RevealMask(w http.ResponseWriter, r *http.Request)

	AddTip(w http.ResponseWriter, r *http.Request)
	DeleteLastTip(w http.ResponseWriter, r *http.Request)

	PlaceCounterBet(w http.ResponseWriter, r *http.Request)
	DeleteCounterBet(w http.ResponseWriter, r *http.Request)

	ListPlayers(w http.ResponseWriter, r *http.Request)
	CreatePlayer(w http.ResponseWriter, r *http.Request)
	UpdatePlayer(w http.ResponseWriter, r *http.Request)
	DeletePlayer(w http.ResponseWriter, r *http.Request)

	ExportState(w http.ResponseWriter, r *http.Request)
	ImportState(w http.ResponseWriter, r *http.Request)
}
