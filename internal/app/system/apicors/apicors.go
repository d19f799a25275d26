// Package apicors provides the CORS policy for the JSON API.
//
// Admin clients send the bearer token in the Authorization header and the
// site frontends may run on another origin, so credentials are allowed and
// the configured origins are echoed back. A "*" entry allows any origin;
// it is answered with the caller's origin rather than a literal "*",
// which browsers reject alongside credentials.
package apicors

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// Allowed methods and headers for API requests.
var (
	Methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	Headers = []string{"Content-Type", "Authorization"}
)

// maxAge is how long browsers may cache a preflight, in seconds.
const maxAge = 86400

// ParseOrigins splits a comma-separated origin list, dropping blanks.
// An empty list means any origin.
func ParseOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimRight(o, "/"))
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Middleware returns CORS middleware allowing the given origins.
func Middleware(origins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   Methods,
		AllowedHeaders:   Headers,
		AllowCredentials: true,
		MaxAge:           maxAge,
	}

	anyOrigin := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			anyOrigin = true
		}
	}
	if anyOrigin {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}

	return cors.Handler(opts)
}
