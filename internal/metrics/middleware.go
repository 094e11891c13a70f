package metrics

import (
	"net/http"
	"time"
)

// statusWriter captures the status code written by the wrapped handler.
// Handlers that never call WriteHeader implicitly write 200.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware records request count, duration, and in-flight gauge
// for every request passing through it.
func HTTPMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(sw, r)

			reg.RecordRequest(r.Method, r.URL.Path, sw.status, time.Since(start).Seconds())
		})
	}
}
