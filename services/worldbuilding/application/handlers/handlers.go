// Package handlers contains the HTTP handlers for the worldbuilding API.
// Request bodies are validated structurally with go-playground tags before
// they reach the application services; business rule failures come back as
// 422 responses carrying the broken rules.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/inkwell/pkg/httpx"
	"github.com/ghuser/inkwell/services/worldbuilding/domain"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RulesFailedResponse is returned when an operation breaks business rules.
type RulesFailedResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// pathID parses a positive integer route parameter. A malformed value writes
// a 400 and reports false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// writeRulesFailed renders a non-valid ValidationResult as a 422 response.
func writeRulesFailed(w http.ResponseWriter, result domain.ValidationResult) {
	httpx.JSON(w, http.StatusUnprocessableEntity, RulesFailedResponse{
		Error:   "business rules failed",
		Details: result.Errors,
	})
}
