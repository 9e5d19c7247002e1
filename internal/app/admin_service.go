package app

import (
	"context"
	"strings"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	slotDateLayout = "2006-01-02"
	// slotTimeLayout is the display form stored in slots.slot_time.
	slotTimeLayout = "03:04 PM"
)

type AdminRepository interface {
	CreateExperience(ctx context.Context, exp domain.Experience) error
	// CreateSlot returns domain.ErrExperienceNotFound when the parent is missing.
	CreateSlot(ctx context.Context, slot domain.Slot) error
}

// AdminService maintains the catalog. Every write drops the cached reads it
// makes stale.
type AdminService struct {
	repo     AdminRepository
	catalog  CatalogInvalidator
	clock    clock.Clock
	validate *validator.Validate
}

func NewAdminService(repo AdminRepository, catalog CatalogInvalidator, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:     repo,
		catalog:  catalog,
		clock:    clk,
		validate: newValidator(),
	}
}

type CreateExperienceInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

func (s *AdminService) CreateExperience(ctx context.Context, in CreateExperienceInput) (domain.Experience, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := toValidationError(s.validate.Struct(in)); err != nil {
		return domain.Experience{}, err
	}

	exp := domain.Experience{
		ID:          newUUID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		CreatedAt:   s.clock.Now(),
		Slots:       []domain.Slot{},
	}
	if err := s.repo.CreateExperience(ctx, exp); err != nil {
		return domain.Experience{}, err
	}
	s.catalog.InvalidateExperience(exp.ID)
	return exp, nil
}

type CreateSlotInput struct {
	ExperienceID string `json:"experienceId" validate:"required,uuid"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required"`
	TotalTickets int    `json:"totalTickets" validate:"gt=0"`
}

func (s *AdminService) CreateSlot(ctx context.Context, in CreateSlotInput) (domain.Slot, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if err := toValidationError(s.validate.Struct(in)); err != nil {
		return domain.Slot{}, err
	}
	date, err := time.Parse(slotDateLayout, in.Date)
	if err != nil {
		return domain.Slot{}, &domain.ValidationError{Fields: []domain.FieldError{{Field: "date", Message: "must be a date like 2006-01-02"}}}
	}
	if _, err := time.Parse(slotTimeLayout, in.Time); err != nil {
		return domain.Slot{}, &domain.ValidationError{Fields: []domain.FieldError{{Field: "time", Message: "must be a time like 09:00 AM"}}}
	}

	slot := domain.Slot{
		ID:           newUUID(),
		ExperienceID: in.ExperienceID,
		Date:         date,
		Time:         in.Time,
		TotalTickets: in.TotalTickets,
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return domain.Slot{}, err
	}
	s.catalog.InvalidateExperience(slot.ExperienceID)
	return slot, nil
}
