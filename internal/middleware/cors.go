package middleware

import (
	"net/http"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// DefaultAllowedOrigins are the local dev servers of the web client.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:5175",
	"http://localhost:5176",
	"http://localhost:5177",
	"http://localhost:5178",
	"http://localhost:5179",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
	"http://127.0.0.1:5175",
	"http://127.0.0.1:5176",
	"http://127.0.0.1:5177",
	"http://127.0.0.1:5178",
	"http://127.0.0.1:5179",
}

func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	return func(next http.Handler) http.Handler {
		corsHandler := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && !c.OriginAllowed(r) {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
			}
			corsHandler.ServeHTTP(w, r)
		})
	}
}
