package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minhnion/WellHomeKitchen-BE/internal/model"
	"github.com/minhnion/WellHomeKitchen-BE/internal/service"

	"github.com/rs/zerolog"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       interface{}         `json:"data,omitempty"`
	Count      *int                `json:"count,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
	ErrorCode  string              `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeSuccess writes a success envelope with optional data.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// writeList writes a success envelope for a paginated collection.
func writeList(w http.ResponseWriter, message string, data interface{}, count int, p *service.Pagination) {
	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Count:      &count,
		Pagination: p,
	})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation, model.KindState:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	case model.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps an error to the error envelope. Domain errors carry their
// own message and code; anything else is a 500 with a generic message so
// internals stay in the logs.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusFor(domainErr.Kind)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Msg("handler error")
		} else {
			logger.Debug().Err(err).Str("code", domainErr.Code).Msg("request rejected")
		}
		writeJSON(w, status, Response{
			Success:   false,
			Message:   domainErr.Message,
			ErrorCode: domainErr.Code,
		})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, Response{
		Success:   false,
		Message:   "Internal server error",
		ErrorCode: model.ErrCodeInternalError,
	})
}

// writeValidationError writes a 400 with an explicit code and message.
func writeValidationError(w http.ResponseWriter, code, message string, logger zerolog.Logger) {
	writeError(w, model.Validationf(code, "%s", message), logger)
}

// decodeJSON decodes a request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.Validationf(model.ErrCodeInvalidJSON, "Invalid request body")
	}
	return nil
}
