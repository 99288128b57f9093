package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

var defaultAllowedOrigins = []string{
	"http://localhost:8080",
	"http://localhost:8501",
}

// Cors lets requests without an Origin header through untouched. Cross-origin
// requests are answered only for the allowed origins, or the defaults when none are given.
func Cors(origins ...string) func(next http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}
	allowedOrigins := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowedOrigins[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowedOrigins[origin] {
				log.Warnf("CORS: origin not allowed for path [%s] and origin [%s]", r.URL.Path, origin)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Degraded-Athletes")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
