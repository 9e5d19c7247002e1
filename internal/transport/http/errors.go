package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeValidationFailed   = "validation_failed"
	codeInvalidPromoCode   = "invalid_promo_code"
	codePromoNotFound      = "promo_not_found"
	codeSlotUnavailable    = "slot_unavailable"
	codeExperienceNotFound = "experience_not_found"
	codeBookingFailed      = "booking_failed"
	codeInvalidID          = "invalid_id"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorBody(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorBody(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(body)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError translates a service error into one response per error
// kind. Unrecognised errors are logged and never echoed to the caller.
func writeServiceError(w http.ResponseWriter, logger *log.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeErrorBody(w, http.StatusBadRequest, errorResponse{
			Error:  domain.ErrValidationFailed.Error(),
			Code:   codeValidationFailed,
			Fields: verr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidPromoCode):
		writeError(w, http.StatusBadRequest, codeInvalidPromoCode, "Invalid promo code")
	case errors.Is(err, domain.ErrSlotUnavailable):
		writeError(w, http.StatusBadRequest, codeSlotUnavailable, "Slot is sold out or not found.")
	case errors.Is(err, domain.ErrExperienceNotFound):
		writeError(w, http.StatusNotFound, codeExperienceNotFound, "Experience not found")
	case errors.Is(err, domain.ErrPromoNotFound):
		writeError(w, http.StatusNotFound, codePromoNotFound, "Promo code not found")
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid id")
	case errors.Is(err, domain.ErrBookingFailed):
		logger.Printf("ERROR: %v", err)
		writeError(w, http.StatusInternalServerError, codeBookingFailed, "Booking failed")
	default:
		logger.Printf("ERROR: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
