package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the JSON body returned for every failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrNotFound = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

// NotFound returns a 404 error carrying a resource specific message.
func NotFound(message string) *APIError {
	return NewAPIError(ErrNotFound.Code, message, http.StatusNotFound)
}

// Write renders err as a JSON response. Details of non-API errors never reach the client.
func Write(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = ErrInternal
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
