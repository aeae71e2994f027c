package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rooherbals/backend/internal/auth"
	"github.com/rooherbals/backend/internal/service"
	"github.com/rooherbals/backend/internal/storage"
)

// errorBody is the error envelope on every non-2xx response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// RemainingBalance accompanies overpayment_warning so the client can
	// show the confirm dialog with the recomputed balance.
	RemainingBalance *float64 `json:"remaining_balance,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps domain errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	var overpay *service.OverpaymentError
	switch {
	case errors.As(err, &overpay):
		remaining := overpay.Remaining
		writeJSON(w, http.StatusConflict, errorBody{Error: errorDetail{
			Code:             "overpayment_warning",
			Message:          overpay.Error(),
			RemainingBalance: &remaining,
		}})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, auth.ErrEmailExists):
		writeError(w, http.StatusConflict, "email_exists", err.Error())
	default:
		slog.Error("Internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
