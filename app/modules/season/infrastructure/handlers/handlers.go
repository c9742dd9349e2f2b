package seasonhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	seasonservice "github.com/Black-And-White-Club/mask-tipper/app/modules/season/application"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/Black-And-White-Club/mask-tipper/pkg/httpapi"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
)

// SeasonHandlers implements the Handlers interface.
type SeasonHandlers struct {
	service seasonservice.Service
	logger  *slog.Logger
}

// NewSeasonHandlers creates a new SeasonHandlers instance.
func NewSeasonHandlers(service seasonservice.Service, logger *slog.Logger) Handlers {
	return &SeasonHandlers{service: service, logger: logger}
}

type seasonRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type participantRequest struct {
	PlayerID seasondomain.PlayerID `json:"playerId"`
}

type activeShowRequest struct {
	ShowID seasondomain.ShowID `json:"showId"`
}

type maskRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type revealRequest struct {
	Celebrity string `json:"celebrity"`
}

type tipRequest struct {
	PlayerID      seasondomain.PlayerID `json:"playerId"`
	CelebrityName string                `json:"celebrityName"`
	IsFinal       bool                  `json:"isFinal"`
}

type counterBetRequest struct {
	MaskID   seasondomain.MaskID   `json:"maskId"`
	BettorID seasondomain.PlayerID `json:"bettorPlayerId"`
	TargetID seasondomain.PlayerID `json:"targetPlayerId"`
}

type playerRequest struct {
	Name     string  `json:"name"`
	Color    string  `json:"color,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

func seasonID(r *http.Request) seasondomain.SeasonID {
	return seasondomain.SeasonID(chi.URLParam(r, "seasonID"))
}

func (h *SeasonHandlers) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.service.ListSeasons(r.Context())
	h.respond(w, r, http.StatusOK, seasons, err)
}

func (h *SeasonHandlers) GetSeason(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.GetSeason(r.Context(), seasonID(r))
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	imageURL := ""
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	season, err := h.service.CreateSeason(r.Context(), req.Name, imageURL)
	h.respond(w, r, http.StatusCreated, season, err)
}

func (h *SeasonHandlers) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	var req seasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.service.UpdateSeason(r.Context(), seasonID(r), req.Name, req.ImageURL)
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteSeason(r.Context(), seasonID(r))
	h.respond(w, r, http.StatusNoContent, nil, err)
}

func (h *SeasonHandlers) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req participantRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.service.AddParticipant(r.Context(), seasonID(r), req.PlayerID)
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.RemoveParticipant(r.Context(), seasonID(r), seasondomain.PlayerID(chi.URLParam(r, "playerID")))
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) AddShow(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.AddShow(r.Context(), seasonID(r))
	h.respond(w, r, http.StatusCreated, season, err)
}

func (h *SeasonHandlers) DeleteShow(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.DeleteShow(r.Context(), seasonID(r), seasondomain.ShowID(chi.URLParam(r, "showID")))
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) SetActiveShow(w http.ResponseWriter, r *http.Request) {
	var req activeShowRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.service.SetActiveShow(r.Context(), seasonID(r), req.ShowID)
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) AddMask(w http.ResponseWriter, r *http.Request) {
	var req maskRequest
	if !h.decode(w, r, &req) {
		return
	}
	imageURL := ""
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	season, err := h.service.AddMask(r.Context(), seasonID(r), req.Name, imageURL)
	h.respond(w, r, http.StatusCreated, season, err)
}

func (h *SeasonHandlers) UpdateMask(w http.ResponseWriter, r *http.Request) {
	var req maskRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.service.UpdateMask(r.Context(), seasonID(r), seasondomain.MaskID(chi.URLParam(r, "maskID")), req.Name, req.ImageURL)
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) DeleteMask(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.DeleteMask(r.Context(), seasonID(r), seasondomain.MaskID(chi.URLParam(r, "maskID")))
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) RevealMask(w http.ResponseWriter, r *http.Request) {
	var req revealRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.service.RevealMask(r.Context(), seasonID(r), seasondomain.MaskID(chi.URLParam(r, "maskID")), req.Celebrity)
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) AddTip(w http.ResponseWriter, r *http.Request) {
	var req tipRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.service.AddTip(r.Context(), seasonID(r), seasondomain.MaskID(chi.URLParam(r, "maskID")), req.PlayerID, req.CelebrityName, req.IsFinal)
	h.respond(w, r, http.StatusCreated, season, err)
}

func (h *SeasonHandlers) DeleteLastTip(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.DeleteLastTip(r.Context(), seasonID(r),
		seasondomain.MaskID(chi.URLParam(r, "maskID")),
		seasondomain.PlayerID(chi.URLParam(r, "playerID")),
	)
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) PlaceCounterBet(w http.ResponseWriter, r *http.Request) {
	var req counterBetRequest
	if !h.decode(w, r, &req) {
		return
	}
	season, err := h.service.PlaceCounterBet(r.Context(), seasonID(r), req.MaskID, req.BettorID, req.TargetID)
	h.respond(w, r, http.StatusCreated, season, err)
}

func (h *SeasonHandlers) DeleteCounterBet(w http.ResponseWriter, r *http.Request) {
	season, err := h.service.DeleteCounterBet(r.Context(), seasonID(r), seasondomain.CounterBetID(chi.URLParam(r, "betID")))
	h.respond(w, r, http.StatusOK, season, err)
}

func (h *SeasonHandlers) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.ListPlayers(r.Context())
	h.respond(w, r, http.StatusOK, players, err)
}

func (h *SeasonHandlers) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !h.decode(w, r, &req) {
		return
	}
	player, err := h.service.CreatePlayer(r.Context(), req.Name)
	h.respond(w, r, http.StatusCreated, player, err)
}

func (h *SeasonHandlers) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !h.decode(w, r, &req) {
		return
	}
	player, err := h.service.UpdatePlayer(r.Context(), seasondomain.PlayerID(chi.URLParam(r, "playerID")), req.Name, req.Color, req.ImageURL)
	h.respond(w, r, http.StatusOK, player, err)
}

func (h *SeasonHandlers) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeletePlayer(r.Context(), seasondomain.PlayerID(chi.URLParam(r, "playerID")))
	h.respond(w, r, http.StatusNoContent, nil, err)
}

func (h *SeasonHandlers) ExportState(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportState(r.Context())
	if err != nil {
		h.respond(w, r, 0, nil, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="mask-tipper-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *SeasonHandlers) ImportState(w http.ResponseWriter, r *http.Request) {
	data, err := httpapi.ReadBody(r)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := h.service.ImportState(r.Context(), data)
	h.respond(w, r, http.StatusOK, state, err)
}

func (h *SeasonHandlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpapi.DecodeJSON(r, v); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// respond writes body with status on success and maps err to a status otherwise.
func (h *SeasonHandlers) respond(w http.ResponseWriter, r *http.Request, status int, body any, err error) {
	if err != nil {
		code := StatusFor(err)
		if code == http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "Request failed",
				attr.ExtractCorrelationID(r.Context()),
				attr.String("path", r.URL.Path),
				attr.Error(err),
			)
			httpapi.WriteError(w, code, http.StatusText(code))
			return
		}
		httpapi.WriteError(w, code, err.Error())
		return
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	httpapi.WriteJSON(w, status, body)
}

// StatusFor maps season errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case seasondomain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, seasondomain.ErrEmptyName),
		errors.Is(err, seasondomain.ErrInvalidSeason),
		errors.Is(err, seasondomain.ErrInvalidAppState):
		return http.StatusBadRequest
	case seasondomain.IsRuleViolation(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
