package http

import (
	"net/http"
	"slices"
	"strings"
)

const (
	corsAllowMethods = "GET, HEAD, PUT, PATCH, POST, DELETE"
	corsAnyOrigin    = "*"
)

// withCORS answers credentialed cross-origin requests from the configured
// origins. Disallowed origins get no CORS headers and the browser blocks the
// response. The wildcard origin is reflected since browsers refuse "*"
// together with credentials.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	origins := make([]string, 0, len(h.cfg.Server.CORSOrigins))
	for _, origin := range h.cfg.Server.CORSOrigins {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			origins = append(origins, strings.ToLower(origin))
		}
	}
	anyOrigin := slices.Contains(origins, corsAnyOrigin)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		header := w.Header()
		header.Add("Vary", "Origin")
		if !anyOrigin && !slices.Contains(origins, strings.ToLower(origin)) {
			next.ServeHTTP(w, r)
			return
		}

		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Expose-Headers", strings.Join([]string{
			requestIDHeader, correlationIDHeader,
			headerRateLimitLimit, headerRateLimitRemaining, headerRateLimitReset, headerRetryAfter,
		}, ", "))

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			header.Set("Access-Control-Allow-Methods", corsAllowMethods)
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				header.Set("Access-Control-Allow-Headers", requested)
				header.Add("Vary", "Access-Control-Request-Headers")
			}
			header.Set("Content-Length", "0")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
