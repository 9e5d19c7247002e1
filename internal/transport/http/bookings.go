package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/app"
)

// BookingCreator is the minimal interface needed to create a booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (app.BookingResult, error)
}

const maxBookingBody = 1 << 16

// HandleCreateBooking returns an HTTP handler for POST /api/bookings.
func HandleCreateBooking(svc BookingCreator, logger *log.Logger) http.HandlerFunc {
	logger = orDefault(logger)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createBookingRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBookingBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
			ExperienceID: req.ExperienceID,
			SlotID:       req.SlotID,
			UserName:     req.UserName,
			UserEmail:    req.UserEmail,
			FinalPrice:   req.FinalPrice,
			PromoCode:    req.PromoCode,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		b := res.Booking
		writeJSON(w, http.StatusCreated, createBookingResponse{
			ID:              b.ID,
			ExperienceID:    b.ExperienceID,
			SlotID:          b.SlotID,
			UserName:        b.UserName,
			UserEmail:       b.UserEmail,
			PromoCode:       b.PromoCode,
			FinalPrice:      b.FinalPrice,
			CreatedAt:       b.CreatedAt,
			PromoDetails:    toPromoDetails(res.Promo),
			OriginalPrice:   res.OriginalPrice,
			DiscountApplied: res.DiscountAmount,
		})
	}
}

type createBookingRequest struct {
	ExperienceID string `json:"experienceId"`
	SlotID       string `json:"slotId"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	FinalPrice   int64  `json:"finalPrice"`
	PromoCode    string `json:"promoCode,omitempty"`
}

type createBookingResponse struct {
	ID              string        `json:"id"`
	ExperienceID    string        `json:"experienceId"`
	SlotID          string        `json:"slotId"`
	UserName        string        `json:"userName"`
	UserEmail       string        `json:"userEmail"`
	PromoCode       string        `json:"promoCode,omitempty"`
	FinalPrice      int64         `json:"finalPrice"`
	CreatedAt       time.Time     `json:"createdAt"`
	PromoDetails    *promoDetails `json:"promoDetails"`
	OriginalPrice   int64         `json:"originalPrice"`
	DiscountApplied int64         `json:"discountApplied"`
}
