// internal/middleware/requestlog.go
//
// Access log.  One INFO line per request through the global zap logger,
// with status, size, duration, client id and address, and parsed
// User-Agent fields.
// /healthz and /metrics are logged at DEBUG so scrapers do not drown the
// file.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/session"
	"github.com/yanizio/aocjsui/internal/ua"
)

// quietPaths are logged at DEBUG.
var quietPaths = map[string]bool{"/healthz": true, "/metrics": true}

// RequestLog writes one line per request.  It must run inside
// session.Middleware to pick up the client id.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("dur", time.Since(start)),
			zap.String("req_id", chimw.GetReqID(r.Context())),
			zap.String("ip", clientIP(r)),
		}
		if id, ok := session.ClientID(r.Context()); ok {
			fields = append(fields, zap.String("client", id))
		}
		fields = append(fields, ua.Parse(r.UserAgent()).Fields()...)

		log := zap.L()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http request", fields...)
		case quietPaths[r.URL.Path]:
			log.Debug("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	})
}
