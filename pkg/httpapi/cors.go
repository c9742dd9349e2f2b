package httpapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CORSOptions configures cross-origin access. An origin of "*" allows any origin,
// in which case credentials are not advertised.
type CORSOptions struct {
	Origins []string
	Methods []string
	Headers []string
	MaxAge  time.Duration
}

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	defaultCORSHeaders = []string{"Authorization", "Content-Type", correlationHeader}
)

// CORS answers preflight requests from allowed origins and decorates their other
// responses. Requests from other origins pass through untouched, so the browser
// blocks them. With no origins configured the middleware does nothing.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	if len(opts.Origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if len(opts.Methods) == 0 {
		opts.Methods = defaultCORSMethods
	}
	if len(opts.Headers) == 0 {
		opts.Headers = defaultCORSHeaders
	}
	wildcard := slices.Contains(opts.Origins, "*")
	methods := strings.Join(opts.Methods, ", ")
	headers := strings.Join(opts.Headers, ", ")

	allowed := func(origin string) bool {
		return wildcard || slices.Contains(opts.Origins, origin)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			w.Header().Add("Vary", "Origin")
			if origin == "" || !allowed(origin) {
				next.ServeHTTP(w, r)
				return
			}

			if wildcard {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Expose-Headers", correlationHeader)

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			if opts.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(opts.MaxAge.Seconds())))
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
