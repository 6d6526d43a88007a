package middleware

import "net/http"

// MaxBody returns middleware that caps the request body at limit bytes.
// Reads past the limit fail inside the handler, which surfaces as a decode
// error rather than unbounded memory growth on oversized documents.
func MaxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
