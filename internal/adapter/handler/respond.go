package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dangtrinh58/goshop/internal/adapter/token"
	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/core/service"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeValidationError(w http.ResponseWriter, fields ...string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  "validation failed",
		Fields: fields,
	})
}

// writeError classifies a failure into an HTTP status. Anything unexpected is
// logged and reported as a plain 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOrderFinalized),
		errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, token.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidLine),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrBadTransition),
		errors.Is(err, service.ErrNegativePrice):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrProductNotFound) ||
		errors.Is(err, domain.ErrCategoryNotFound) ||
		errors.Is(err, domain.ErrCartNotFound) ||
		errors.Is(err, domain.ErrCartItemNotFound) ||
		errors.Is(err, domain.ErrOrderNotFound)
}
