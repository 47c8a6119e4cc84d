// Package middleware provides the HTTP middleware wrapped around the mock
// server: CORS preflight handling and request logging.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins a cross-domain request can come from.
	// "*" allows all. Default: ["*"]
	AllowOrigins []string

	// Default: ["GET", "POST", "OPTIONS"]
	AllowMethods []string

	// Default: ["Content-Type"]
	AllowHeaders []string

	// MaxAge is how long (in seconds) a preflight result may be cached.
	// Zero leaves the header unset.
	MaxAge int
}

// DefaultCORSConfig returns the permissive configuration used by the mock
// server: any origin, GET/POST/OPTIONS and a Content-Type header.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}
}

// CORS returns a middleware that sets CORS headers and answers every
// OPTIONS request with 204 and no body, whatever the path. A nil cfg uses
// DefaultCORSConfig.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	def := DefaultCORSConfig()
	if cfg == nil {
		cfg = def
	}
	origins := orDefault(cfg.AllowOrigins, def.AllowOrigins)
	methods := strings.Join(orDefault(cfg.AllowMethods, def.AllowMethods), ", ")
	headers := strings.Join(orDefault(cfg.AllowHeaders, def.AllowHeaders), ", ")
	wildcard := slices.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
