package domain

import "time"

// Booking is one reserved ticket. It never changes once created.
type Booking struct {
	ID           string
	ExperienceID string
	SlotID       string
	UserName     string
	UserEmail    string
	PromoCode    string
	FinalPrice   int64
	CreatedAt    time.Time
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// PromoDescriptor describes the discount a promo code grants.
type PromoDescriptor struct {
	Type  DiscountType
	Value int64
}
