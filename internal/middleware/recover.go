package middleware

import (
	"log/slog"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
)

// Recover turns a panicking handler into a 500. When Sentry is configured the
// panic is reported before it is recovered.
func Recover(sentryEnabled bool) func(http.Handler) http.Handler {
	var reporter *sentryhttp.Handler
	if sentryEnabled {
		reporter = sentryhttp.New(sentryhttp.Options{
			Repanic:         true,
			WaitForDelivery: false,
			Timeout:         2 * time.Second,
		})
	}

	return func(next http.Handler) http.Handler {
		inner := next
		if reporter != nil {
			inner = reporter.Handle(next)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic serving request", "panic", rec, "method", r.Method, "path", r.URL.Path)
					writeJSONError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			inner.ServeHTTP(w, r)
		})
	}
}
