package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/telemetry/metrics"
)

// PanicRecovery turns a handler panic into a 500, counts it and reports it to sentry
// (a no-op when sentry is not initialized).
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				route := routeName(r)
				log.WithFields(log.Fields{
					"route":  route,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Errorf("panic in handler: %v\n%s", recovered, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}

				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetTag("route", route)
				hub.Scope().SetRequest(r)
				hub.RecoverWithContext(r.Context(), recovered)
				hub.Flush(time.Second)

				http.Error(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
