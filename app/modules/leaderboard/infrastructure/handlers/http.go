package leaderboardhandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	leaderboardservice "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/domain"
	leaderboardqueue "github.com/Black-And-White-Club/mask-tipper/app/modules/leaderboard/infrastructure/queue"
	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	"github.com/Black-And-White-Club/mask-tipper/pkg/httpapi"
	"github.com/Black-And-White-Club/mask-tipper/pkg/observability/attr"
	"github.com/go-chi/chi/v5"
)

const (
	pngContentType  = "image/png"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type snapshotRequest struct {
	Reason string `json:"reason,omitempty"`
}

func seasonID(r *http.Request) seasondomain.SeasonID {
	return seasondomain.SeasonID(chi.URLParam(r, "seasonID"))
}

func (h *LeaderboardHandlers) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.GetScoreboard(r.Context(), seasonID(r))
	h.respond(w, r, http.StatusOK, board, err)
}

func (h *LeaderboardHandlers) GetScoreboardChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.RenderChart(r.Context(), seasonID(r))
	if err != nil {
		h.respond(w, r, 0, nil, err)
		return
	}
	writeFile(w, pngContentType, "", png)
}

func (h *LeaderboardHandlers) GetScoreboardWorkbook(w http.ResponseWriter, r *http.Request) {
	id := seasonID(r)
	data, err := h.service.ExportWorkbook(r.Context(), id)
	if err != nil {
		h.respond(w, r, 0, nil, err)
		return
	}
	writeFile(w, xlsxContentType, fmt.Sprintf("scoreboard-%s.xlsx", id), data)
}

// ListSnapshots accepts an optional ?limit=N.
func (h *LeaderboardHandlers) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpapi.WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	snapshots, err := h.service.ListSnapshots(r.Context(), seasonID(r), limit)
	h.respond(w, r, http.StatusOK, snapshots, err)
}

// RecordSnapshot stores the current standings immediately. 201 means a new snapshot was
// written, 200 that the standings were unchanged.
func (h *LeaderboardHandlers) RecordSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if r.ContentLength > 0 {
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	res, err := h.service.RecordSnapshot(r.Context(), leaderboardservice.SnapshotRequest{
		SeasonID: seasonID(r),
		Reason:   req.Reason,
	})
	status := http.StatusOK
	if res.Stored {
		status = http.StatusCreated
	}
	h.respond(w, r, status, res, err)
}

func (h *LeaderboardHandlers) ListPendingJobs(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		h.respond(w, r, http.StatusOK, []leaderboardqueue.JobInfo{}, nil)
		return
	}
	jobs, err := h.queue.PendingJobs(r.Context(), string(seasonID(r)))
	h.respond(w, r, http.StatusOK, jobs, err)
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *LeaderboardHandlers) respond(w http.ResponseWriter, r *http.Request, status int, body any, err error) {
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
	httpapi.WriteJSON(w, status, body)
}

// StatusFor maps leaderboard errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case seasondomain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, leaderboarddomain.ErrUnknownPlayer):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
