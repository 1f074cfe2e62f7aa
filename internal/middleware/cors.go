// Package middleware provides reusable HTTP middleware for the ELD Trips API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSOptions selects which browser origins may call the API.
type CORSOptions struct {
	// Origins are full origins (scheme + host, no trailing slash).
	Origins []string
	// AllowAll admits any origin and overrides Origins. Meant for local
	// development against a frontend on an arbitrary port.
	AllowAll bool
}

// NewCORSHandler returns a middleware that applies CORS headers per opts.
// Allowed methods cover the trips API: reads, create and partial update.
func NewCORSHandler(opts CORSOptions) func(http.Handler) http.Handler {
	origins := opts.Origins
	if opts.AllowAll {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         600,
	})
	return c.Handler
}
