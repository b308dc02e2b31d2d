// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/inkwell/pkg/httpx"
	worldbuilding "github.com/ghuser/inkwell/services/worldbuilding/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, worldbuilding.ErrUniverseNotFound),
		errors.Is(err, worldbuilding.ErrStoryNotFound),
		errors.Is(err, worldbuilding.ErrChapterNotFound),
		errors.Is(err, worldbuilding.ErrCharacterNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, worldbuilding.ErrDuplicateName):
		return http.StatusConflict // 409
	case errors.Is(err, worldbuilding.ErrDeleteBlocked):
		return http.StatusConflict // 409
	case errors.Is(err, worldbuilding.ErrInvalidInput),
		errors.Is(err, worldbuilding.ErrAggregateDeleted):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
