package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/courtside/internal/middleware"
	"github.com/mcoot/courtside/internal/model"
	"github.com/mcoot/courtside/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError. RequestID matches the X-Request-ID header.
type ErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeInvalidPlayerReference = "INVALID_PLAYER_REFERENCE"
	CodeUnknownAction          = "UNKNOWN_ACTION"
	CodeInvalidSlot            = "INVALID_SLOT"
	CodeSlotOccupied           = "SLOT_OCCUPIED"
	CodeNotOnCourt             = "NOT_ON_COURT"
	CodeAlreadyOnCourt         = "ALREADY_ON_COURT"
	CodeInvalidRoster          = "INVALID_ROSTER"
	CodeInvalidPolicy          = "INVALID_POLICY"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeNotOwner               = "NOT_OWNER"
	CodePlayerNotFound         = "PLAYER_NOT_FOUND"
	CodeLineupNotFound         = "LINEUP_NOT_FOUND"
	CodeSnapshotNotFound       = "SNAPSHOT_NOT_FOUND"
	CodeInvalidSnapshot        = "INVALID_SNAPSHOT"
	CodeCoachNotFound          = "COACH_NOT_FOUND"
	CodeUsernameExists         = "USERNAME_EXISTS"
	CodeAlreadyRegistered      = "ALREADY_REGISTERED"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:     he.apiError,
		RequestID: w.Header().Get(middleware.RequestIDHeader),
	})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// Message returns the user-facing message an error maps to
func Message(err error) string {
	return toHTTPError(err).apiError.Message
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidPlayerReference):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidPlayerReference, "Invalid player number!"}}
	case errors.Is(err, model.ErrUnknownAction):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownAction, `Unknown action. Type "sub" or "name".`}}
	case errors.Is(err, model.ErrEmptyInput):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Input is empty"}}
	case errors.Is(err, model.ErrInvalidSlot):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSlot, "Rotation slot must be 0-5"}}
	case errors.Is(err, model.ErrSlotOccupied):
		return &httpError{http.StatusConflict, APIError{CodeSlotOccupied, "Rotation slot is already occupied"}}
	case errors.Is(err, model.ErrNotOnCourt):
		return &httpError{http.StatusConflict, APIError{CodeNotOnCourt, "Player is not on court"}}
	case errors.Is(err, model.ErrAlreadyOnCourt):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyOnCourt, "Player is already on court"}}
	case errors.Is(err, model.ErrEmptyRoster),
		errors.Is(err, model.ErrDuplicatePlayerNumber),
		errors.Is(err, model.ErrInvalidPlayerNumber):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoster, err.Error()}}
	case errors.Is(err, model.ErrInvalidPolicy):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPolicy, `Substitution slot must be "preserve" or "random"`}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrLineupNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeLineupNotFound, "Lineup not found"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "Only the lineup's coach can do this"}}
	case errors.Is(err, model.ErrSnapshotNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSnapshotNotFound, "No saved setup"}}
	case errors.Is(err, model.ErrInvalidSnapshot):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidSnapshot, "Saved setup does not match the roster"}}
	case errors.Is(err, model.ErrCoachNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCoachNotFound, "Coach not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrAlreadyRegistered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRegistered, "This coach already has an account"}}
	case errors.Is(err, auth.ErrInvalidUsername), errors.Is(err, auth.ErrPasswordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
