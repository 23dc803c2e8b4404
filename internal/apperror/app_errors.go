package apperror

import (
	"errors"
	"net/http"
)

// Precondition violations. They are always detected before any mutation is persisted.
var (
	ErrInvalidMove    = errors.New("invalid move index")
	ErrNotAPlayer     = errors.New("not a player")
	ErrGameNotActive  = errors.New("game is not currently active")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCellOccupied   = errors.New("cell already taken")
	ErrMissingContext = errors.New("required context is missing")
	ErrUnauthorized   = errors.New("invalid identity token")
	ErrBadRequest     = errors.New("bad request")
)

// HTTPStatus - maps an error to the status code reported to the caller.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotAPlayer):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidMove),
		errors.Is(err, ErrGameNotActive),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrCellOccupied),
		errors.Is(err, ErrMissingContext),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsPrecondition - reports whether err is a caller-side violation rather than a downstream failure.
func IsPrecondition(err error) bool {
	status := HTTPStatus(err)
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}
