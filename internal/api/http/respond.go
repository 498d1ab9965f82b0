package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/security"
	"dealerdesk-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps service errors onto the HTTP taxonomy: missing
// rows are 404, authorization failures 403, validation failures 400,
// everything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var validation *service.ValidationError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrUnauthorized):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, security.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &validation),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrCodeTaken),
		errors.Is(err, service.ErrDealershipNotActive),
		errors.Is(err, service.ErrVehicleNotInStock),
		errors.Is(err, service.ErrVehicleSold),
		errors.Is(err, service.ErrNoProfitRule),
		errors.Is(err, service.ErrReplyToReply),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrBonusAlreadyAwarded):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
