package http

import "net/http"

// securityHeaders are set on every response before the handler runs.
var securityHeaders = map[string]string{
	"Content-Security-Policy": "default-src 'self'; " +
		"base-uri 'self'; " +
		"font-src 'self' https: data:; " +
		"form-action 'self'; " +
		"frame-ancestors 'self'; " +
		"img-src 'self' data:; " +
		"object-src 'none'; " +
		"script-src 'self'; " +
		"script-src-attr 'none'; " +
		"style-src 'self' https: 'unsafe-inline'; " +
		"upgrade-insecure-requests",
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
	"Referrer-Policy":                   "no-referrer",
	"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
	"X-Content-Type-Options":            "nosniff",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Frame-Options":                   "SAMEORIGIN",
	"X-Permitted-Cross-Domain-Policies": "none",
	"X-XSS-Protection":                  "0",
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		for name, value := range securityHeaders {
			header.Set(name, value)
		}
		header.Del("X-Powered-By")

		next.ServeHTTP(w, r)
	})
}
