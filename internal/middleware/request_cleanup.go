package middleware

import (
	"io"
	"net/http"
)

// DrainAndCloseRequest drains whatever the handler did not read from the request body and closes it,
// so the connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, 1<<20))
				_ = r.Body.Close()
			}
		})
	}
}
