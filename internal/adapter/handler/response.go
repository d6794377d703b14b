package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/core/domain"
)

type errorResponse struct {
	Error    string             `json:"error"`
	Section  domain.Section     `json:"section,omitempty"`
	Fields   map[string]string  `json:"fields,omitempty"`
	Conflict *domain.BookingRef `json:"conflict,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		verr    *domain.ValidationError
		overlap *domain.OverlapError
		netErr  *domain.NetworkError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Error(), Section: verr.Section, Fields: verr.Fields})
	case errors.As(err, &overlap):
		writeJSON(w, http.StatusConflict, errorResponse{Error: overlap.Error(), Conflict: overlap.Conflict})
	case errors.Is(err, domain.ErrSubmitInProgress):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrWizardNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrDiscountNotFound),
		errors.Is(err, domain.ErrHallNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &netErr):
		logger.Warn("collaborator failure", zap.String("op", netErr.Op), zap.Error(netErr.Err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: netErr.Error()})
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotReady),
		errors.Is(err, domain.ErrUnknownSection),
		errors.Is(err, domain.ErrIncompleteQuery):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
