package middleware

import (
	"net/http"

	"github.com/Dias221467/Social_Network_API/pkg/apierror"
	"github.com/Dias221467/Social_Network_API/pkg/logger"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware turns a handler panic into a 500 JSON response.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.WithFields(logrus.Fields{
					"request_id": RequestIDFromContext(r.Context()),
					"path":       r.URL.Path,
					"panic":      rec,
				}).Error("Panic recovered")
				apierror.Write(w, apierror.ErrInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
