package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Takudzwa22/shopease/internal/payment"
	"github.com/Takudzwa22/shopease/internal/repository"
	"github.com/Takudzwa22/shopease/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps the error taxonomy to HTTP statuses. Validation
// and identifier errors map to 400, missing records to 404, payment
// refusals to 402; anything else is a store failure, logged and surfaced
// as a generic 500.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, repository.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "invalid_id", err.Error())
	case errors.Is(err, service.IllegalTransitionError):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, payment.ErrDeclined),
		errors.Is(err, payment.ErrCancelled):
		respondError(w, http.StatusPaymentRequired, "payment_failed", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
