package seasonhandlers_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	seasonhandlers "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/handlers"
	seasonrouter "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/router"
	"github.com/Black-And-White-Club/mask-tipper/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{seasondomain.ErrSeasonNotFound, http.StatusNotFound},
		{seasondomain.ErrMaskNotFound, http.StatusNotFound},
		{seasondomain.ErrEmptyName, http.StatusBadRequest},
		{seasondomain.ErrInvalidAppState, http.StatusBadRequest},
		{seasondomain.ErrFinalTipLocked, http.StatusConflict},
		{seasondomain.ErrNoActiveShow, http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, seasonhandlers.StatusFor(tt.err))
		})
	}
}

func newServer(t *testing.T, svc *FakeSeasonService) (*httptest.Server, string) {
	t.Helper()
	tokens := jwt.NewService("secret", time.Hour)
	token, err := tokens.GenerateToken("host", jwt.RoleHost, 0)
	require.NoError(t, err)

	r := chi.NewRouter()
	seasonrouter.RegisterRoutes(r, seasonhandlers.NewSeasonHandlers(svc, slog.Default()), tokens)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, token
}

func do(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSeasonRoutes(t *testing.T) {
	season := seasondomain.NewSeason("s1", "Season 1", "")
	svc := &FakeSeasonService{}
	svc.GetSeasonFunc = func(_ context.Context, id seasondomain.SeasonID) (seasondomain.Season, error) {
		if id != "s1" {
			return seasondomain.Season{}, seasondomain.ErrSeasonNotFound
		}
		return season, nil
	}
	svc.CreateSeasonFunc = func(_ context.Context, name, imageURL string) (seasondomain.Season, error) {
		return seasondomain.NewSeason("new", name, imageURL), nil
	}
	svc.AddTipFunc = func(_ context.Context, seasonID seasondomain.SeasonID, maskID seasondomain.MaskID, playerID seasondomain.PlayerID, celebrity string, isFinal bool) (seasondomain.Season, error) {
		if isFinal {
			return seasondomain.Season{}, seasondomain.ErrFinalTipLocked
		}
		return season, nil
	}
	svc.DeletePlayerFunc = func(context.Context, seasondomain.PlayerID) error { return nil }
	svc.ImportStateFunc = func(_ context.Context, data []byte) (seasondomain.AppState, error) {
		return seasondomain.AppState{}, seasondomain.ErrInvalidAppState
	}

	srv, token := newServer(t, svc)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{name: "public read", method: http.MethodGet, path: "/api/seasons/s1", want: http.StatusOK},
		{name: "missing season", method: http.MethodGet, path: "/api/seasons/nope", want: http.StatusNotFound},
		{name: "create needs token", method: http.MethodPost, path: "/api/seasons", body: `{"name":"S2"}`, want: http.StatusUnauthorized},
		{name: "create", method: http.MethodPost, path: "/api/seasons", token: token, body: `{"name":"S2"}`, want: http.StatusCreated},
		{name: "unknown field rejected", method: http.MethodPost, path: "/api/seasons", token: token, body: `{"title":"S2"}`, want: http.StatusBadRequest},
		{name: "tip", method: http.MethodPost, path: "/api/seasons/s1/masks/m1/tips", token: token, body: `{"playerId":"alice","celebrityName":"Heino"}`, want: http.StatusCreated},
		{name: "locked tip", method: http.MethodPost, path: "/api/seasons/s1/masks/m1/tips", token: token, body: `{"playerId":"alice","celebrityName":"Heino","isFinal":true}`, want: http.StatusConflict},
		{name: "delete player", method: http.MethodDelete, path: "/api/players/alice", token: token, want: http.StatusNoContent},
		{name: "bad import", method: http.MethodPost, path: "/api/state", token: token, body: `{}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
