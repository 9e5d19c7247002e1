package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidPromoCode   = errors.New("invalid promo code")
	ErrPromoNotFound      = errors.New("promo code not found")
	ErrSlotUnavailable    = errors.New("slot is sold out or not found")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrBookingFailed      = errors.New("booking failed")
	ErrInvalidID          = errors.New("invalid id")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed input. It matches ErrValidationFailed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
