package middleware

import (
	"net/http"
)

const tooLargeBody = `{"error":{"code":"request_too_large","message":"Request body too large."}}` + "\n"

// NewMaxBodySizeHandler returns a middleware that caps request bodies at
// limit bytes.
//
// A request whose Content-Length already exceeds the limit is answered with
// 413 before the next handler runs. Otherwise the body is wrapped in
// http.MaxBytesReader, so a streamed body fails with *http.MaxBytesError once
// the limit is crossed and the reading handler decides the response.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Connection", "close")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(tooLargeBody))
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
