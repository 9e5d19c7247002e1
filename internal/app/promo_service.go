package app

import (
	"strings"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/ShauryaRahlon/Travel-Delite/internal/promo"
)

type PromoService struct {
	engine *promo.Engine
}

func NewPromoService(engine *promo.Engine) *PromoService {
	return &PromoService{engine: engine}
}

// Validate resolves code for the checkout preview.
func (s *PromoService) Validate(code string) (domain.PromoDescriptor, error) {
	if strings.TrimSpace(code) == "" {
		return domain.PromoDescriptor{}, &domain.ValidationError{
			Fields: []domain.FieldError{{Field: "code", Message: "promo code is required"}},
		}
	}
	d, ok := s.engine.Resolve(code)
	if !ok {
		return domain.PromoDescriptor{}, domain.ErrPromoNotFound
	}
	return d, nil
}
