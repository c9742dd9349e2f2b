package app

import (
	"net/http"

	"github.com/Black-And-White-Club/mask-tipper/pkg/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Handler builds the HTTP API. Client addresses come from proxy headers, and CORS
// preflights are answered before the per-client rate limit applies.
func (a *App) Handler() http.Handler {
	httpCfg := a.Config.HTTP
	limiter := httpapi.NewLimiter(rate.Limit(httpCfg.RateLimit), httpCfg.RateBurst, httpCfg.RateIdle)

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		httpapi.CorrelationMiddleware,
		httpapi.CORS(httpapi.CORSOptions{Origins: httpCfg.AllowedOrigins, MaxAge: httpCfg.CORSMaxAge}),
		httpapi.RateLimit(limiter, httpapi.ClientIP),
	)

	r.Get("/healthz", a.healthz)

	a.SeasonModule.RegisterRoutes(r, a.Tokens)
	a.LeaderboardModule.RegisterRoutes(r, a.Tokens)
	return r
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"database": "ok", "queue": "disabled"}
	code := http.StatusOK

	if err := a.DB.PingContext(r.Context()); err != nil {
		status["database"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if q := a.LeaderboardModule.QueueService; q != nil {
		status["queue"] = "ok"
		if err := q.HealthCheck(r.Context()); err != nil {
			status["queue"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	httpapi.WriteJSON(w, code, status)
}
