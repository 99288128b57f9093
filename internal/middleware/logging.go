package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(resp, r)
			log.WithFields(log.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   resp.statusCode,
				"duration": time.Since(start).String(),
				"ua":       r.Header.Get("User-Agent"),
			}).Debug("request served")
		})
	}
}
