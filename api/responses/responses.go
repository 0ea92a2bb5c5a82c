package responses

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"exptracker/service"
)

// Error codes returned in the error envelope
const (
	CodeValidation      = "validation_error"
	CodeInvalidAmount   = "invalid_amount"
	CodeInvalidName     = "invalid_name"
	CodeInsufficient    = "insufficient_pool"
	CodeNegativeBalance = "negative_character_balance"
	CodeNotFound        = "not_found"
	CodeUnauthorized    = "unauthorized"
	CodeInternal        = "internal_error"
)

// Error is an error that already knows its HTTP status and public code
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a public API error
func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation wraps err as a 400 validation error
func Validation(err error, message string, details any) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Details: details, Err: err}
}

// Unauthorized creates a 401 error
func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, CodeUnauthorized, message)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// WriteSuccess writes data as a 200 JSON response
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

// WriteSuccessStatus writes data as a JSON response with the given status
func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteNoContent writes an empty 204 response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps err to its status and writes the error envelope.
// Unexpected errors are logged and reported without their message.
func WriteError(logger *log.Entry, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	apiErr := classify(err)

	if apiErr.Status >= http.StatusInternalServerError {
		logger.WithError(err).Error("Request failed")
	} else {
		logger.WithFields(log.Fields{
			"status": apiErr.Status,
			"code":   apiErr.Code,
			"error":  err.Error(),
		}).Debug("Request rejected")
	}

	writeJSON(w, apiErr.Status, errorEnvelope{Error: errorBody{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}})
}

func classify(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return NewError(http.StatusBadRequest, CodeInvalidAmount, err.Error())
	case errors.Is(err, service.ErrInvalidName):
		return NewError(http.StatusBadRequest, CodeInvalidName, err.Error())
	case errors.Is(err, service.ErrInsufficientPool):
		return NewError(http.StatusConflict, CodeInsufficient, err.Error())
	case errors.Is(err, service.ErrNegativeCharacterBalance):
		return NewError(http.StatusConflict, CodeNegativeBalance, err.Error())
	case errors.Is(err, service.ErrCharacterNotFound), errors.Is(err, service.ErrUserNotFound):
		return NewError(http.StatusNotFound, CodeNotFound, err.Error())
	}

	return NewError(http.StatusInternalServerError, CodeInternal, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}
