package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

// PromoValidator is the minimal interface needed to check a promo code.
type PromoValidator interface {
	Validate(code string) (domain.PromoDescriptor, error)
}

const maxPromoBody = 1 << 12

// HandleValidatePromo returns an HTTP handler for POST /api/promo/validate.
func HandleValidatePromo(svc PromoValidator, logger *log.Logger) http.HandlerFunc {
	logger = orDefault(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req validatePromoRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPromoBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		d, err := svc.Validate(req.Code)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, validatePromoResponse{
			Message:      "Promo code applied successfully",
			PromoDetails: toPromoDetails(&d),
		})
	}
}

type validatePromoRequest struct {
	Code string `json:"code"`
}

type validatePromoResponse struct {
	Message      string        `json:"message"`
	PromoDetails *promoDetails `json:"promoDetails,omitempty"`
}

type promoDetails struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

func toPromoDetails(d *domain.PromoDescriptor) *promoDetails {
	if d == nil {
		return nil
	}
	return &promoDetails{Type: string(d.Type), Value: d.Value}
}
