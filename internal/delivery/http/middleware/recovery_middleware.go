package middleware

import (
	"net/http"
	"runtime/debug"

	"hospital-scheduling/pkg/response"

	"github.com/sirupsen/logrus"
)

// Recovery turns a panic in a handler into a 500 response.
func Recovery(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID, _ := GetRequestIDFromContext(r.Context())
					log.WithFields(logrus.Fields{
						"request_id": requestID,
						"panic":      rec,
						"stack":      string(debug.Stack()),
					}).Error("panic recovered")
					response.InternalServerError(w, "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
