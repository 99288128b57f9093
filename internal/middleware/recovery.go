package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/hrvreport/internal/telemetry/metrics"
	"github.com/2beens/hrvreport/pkg"

	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

// PanicRecovery turns a handler panic into a logged 500 answer. When the
// handler already started its response, for example half way through
// streaming a PDF, the response is left as is.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			resp := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				log.WithFields(log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
					"route":  routeName(req),
				}).Errorf("panic while serving request: %v\n%s", r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				if !resp.wroteHeader {
					pkg.WriteJSON(resp, errorResponse{Error: "internal error"}, http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(resp, req)
		})
	}
}
