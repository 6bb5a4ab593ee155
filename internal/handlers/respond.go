package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Dias221467/Social_Network_API/internal/repository"
	"github.com/Dias221467/Social_Network_API/pkg/apierror"
	"github.com/Dias221467/Social_Network_API/pkg/logger"
	"github.com/Dias221467/Social_Network_API/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const (
	userNotFound    = "User not found"
	thoughtNotFound = "Thought not found"
)

var errInvalidPayload = apierror.NewAPIError("INVALID_PAYLOAD", "Invalid request payload", http.StatusInternalServerError)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Error("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]string{"message": message})
}

// writeError maps not-found errors to 404 with notFoundMessage and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	fields := logrus.Fields{
		"request_id": middleware.RequestIDFromContext(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
		"error":      err,
	}

	if errors.Is(err, repository.ErrNotFound) {
		logger.Log.WithFields(fields).Warn(notFoundMessage)
		apierror.Write(w, apierror.NotFound(notFoundMessage))
		return
	}

	logger.Log.WithFields(fields).Error("Request failed")
	apierror.Write(w, err)
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		logger.Log.WithError(err).WithField("path", r.URL.Path).Warn("Invalid request payload")
		return errInvalidPayload
	}
	return nil
}
