package server

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader carries the request id back to the client.
const requestIDHeader = "X-Request-ID"

// requestID assigns a UUID to every request unless the client already
// sent one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request with method, path, status, and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"id", w.Header().Get(requestIDHeader),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// defaultCacheDir places the file cache under the OS temp dir so a bare
// server start works without configuration.
func defaultCacheDir() string {
	return filepath.Join(os.TempDir(), "anchorsmith-cache")
}
