package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/logger"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Data     any    `json:"data"`
	Metadata any    `json:"metadata,omitempty"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Details    any    `json:"details,omitempty"`
}

const statusSuccess = "success"
const statusError = "error"

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// Success sends a 200 OK response with the standard success format.
func Success(w http.ResponseWriter, message string, data any, metadata any) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	writeJSON(w, http.StatusOK, SuccessBody{Status: statusSuccess, Message: message, Data: data, Metadata: metadata})
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, SuccessBody{Status: statusSuccess, Message: message, Data: data, Metadata: map[string]any{}})
}

// Error sends a response with the standard error format.
func Error(w http.ResponseWriter, message string, statusCode int, details any) {
	if details == nil {
		details = map[string]any{}
	}
	writeJSON(w, statusCode, ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// writeError maps a service error onto a status code. Storage details are
// logged, not returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var nf *domain.NotFoundError
	var se *domain.StorageError

	switch {
	case errors.As(err, &verr):
		Error(w, verr.Message, http.StatusUnprocessableEntity, map[string]any{"code": verr.Code, "field": verr.Field})
	case errors.As(err, &nf):
		Error(w, nf.Error(), http.StatusNotFound, map[string]any{"entity": nf.Entity, "id": nf.ID})
	case errors.Is(err, domain.ErrConflict):
		Error(w, "The database changed while saving, please retry", http.StatusConflict, nil)
	case errors.As(err, &se):
		logger.Error("Storage failure", "request_id", requestID(r), "op", se.Op, "attempts", len(se.Attempts), "error", se.Err)
		Error(w, "Could not access the database file", http.StatusInternalServerError, map[string]any{"op": se.Op})
	default:
		logger.Error("Request failed", "request_id", requestID(r), "path", r.URL.Path, "error", err)
		Error(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}

func badRequest(w http.ResponseWriter, message string) {
	Error(w, message, http.StatusBadRequest, nil)
}
