package middleware

import (
	"net/http"
	"time"
)

// Logger is the logging surface of the access log
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AccessLog writes one line per request with its id, status and duration
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			rid := GetRequestID(r.Context())
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s -> %d in %s request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, rid)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s -> %d in %s request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, rid)
			default:
				logger.Info("%s %s -> %d in %s request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, rid)
			}
		})
	}
}
