package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/ShauryaRahlon/Travel-Delite/internal/promo"
	"github.com/go-playground/validator/v10"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetExperiencePrice(ctx context.Context, experienceID string) (int64, error)
	// ReserveSlot increments booked tickets by one only while capacity remains.
	// It returns domain.ErrSlotUnavailable when no row was updated.
	ReserveSlot(ctx context.Context, experienceID, slotID string) error
	CreateBooking(ctx context.Context, booking domain.Booking) error
}

// CatalogInvalidator drops cached catalog reads for an experience.
type CatalogInvalidator interface {
	InvalidateExperience(id string)
}

type BookingService struct {
	repo     BookingRepository
	promos   *promo.Engine
	catalog  CatalogInvalidator
	clock    clock.Clock
	validate *validator.Validate
	logger   *log.Logger
}

func NewBookingService(repo BookingRepository, promos *promo.Engine, catalog CatalogInvalidator, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:     repo,
		promos:   promos,
		catalog:  catalog,
		clock:    clk,
		validate: newValidator(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithBookingLogger sets the logger used for price mismatches and cache invalidation.
func WithBookingLogger(logger *log.Logger) BookingServiceOption {
	return func(s *BookingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type CreateBookingInput struct {
	ExperienceID string `json:"experienceId" validate:"required,uuid"`
	SlotID       string `json:"slotId" validate:"required,uuid"`
	UserName     string `json:"userName" validate:"required"`
	UserEmail    string `json:"userEmail" validate:"required,email"`
	// FinalPrice is the price the client displayed. It is advisory only.
	FinalPrice int64  `json:"finalPrice" validate:"gte=0"`
	PromoCode  string `json:"promoCode"`
}

type BookingResult struct {
	Booking        domain.Booking
	OriginalPrice  int64
	DiscountAmount int64
	Promo          *domain.PromoDescriptor
}

// CreateBooking reserves one ticket on the slot and records the booking in a
// single transaction. The charge is derived from the stored experience price.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (BookingResult, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.UserEmail = strings.TrimSpace(in.UserEmail)
	in.PromoCode = strings.TrimSpace(in.PromoCode)

	if err := s.validateInput(in); err != nil {
		return BookingResult{}, err
	}
	if in.PromoCode != "" {
		if _, ok := s.promos.Resolve(in.PromoCode); !ok {
			return BookingResult{}, domain.ErrInvalidPromoCode
		}
	}

	now := s.clock.Now()
	var result BookingResult
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		price, err := s.repo.GetExperiencePrice(txCtx, in.ExperienceID)
		if err != nil {
			return err
		}
		quote := s.promos.Price(price, in.PromoCode)

		if err := s.repo.ReserveSlot(txCtx, in.ExperienceID, in.SlotID); err != nil {
			return err
		}

		booking := domain.Booking{
			ID:           newUUID(),
			ExperienceID: in.ExperienceID,
			SlotID:       in.SlotID,
			UserName:     in.UserName,
			UserEmail:    in.UserEmail,
			FinalPrice:   quote.FinalPrice,
			CreatedAt:    now,
		}
		if quote.Descriptor != nil {
			booking.PromoCode = strings.ToUpper(in.PromoCode)
		}
		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}

		result = BookingResult{
			Booking:        booking,
			OriginalPrice:  price,
			DiscountAmount: quote.DiscountAmount,
			Promo:          quote.Descriptor,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, domain.ErrExperienceNotFound) {
			return BookingResult{}, err
		}
		return BookingResult{}, fmt.Errorf("%w: %v", domain.ErrBookingFailed, err)
	}

	s.catalog.InvalidateExperience(in.ExperienceID)
	s.logger.Printf("booking created id=%s experience=%s slot=%s cache=invalidated", result.Booking.ID, in.ExperienceID, in.SlotID)
	if in.FinalPrice != result.Booking.FinalPrice {
		s.logger.Printf("WARN: client price mismatch booking=%s client=%d charged=%d", result.Booking.ID, in.FinalPrice, result.Booking.FinalPrice)
	}
	return result, nil
}

func (s *BookingService) validateInput(in CreateBookingInput) error {
	return toValidationError(s.validate.Struct(in))
}
