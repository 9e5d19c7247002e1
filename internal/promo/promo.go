// Package promo resolves promo codes and computes discounted prices.
//
// The same Engine is used for the client-side preview and the authoritative
// server-side charge, so both round identically.
package promo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DefaultCodes is the built-in promo table.
var DefaultCodes = map[string]domain.PromoDescriptor{
	"SAVE10":    {Type: domain.DiscountPercentage, Value: 10},
	"FLAT100":   {Type: domain.DiscountFlat, Value: 100},
	"WELCOME20": {Type: domain.DiscountPercentage, Value: 20},
	"FLAT50":    {Type: domain.DiscountFlat, Value: 50},
}

// Engine is a read-only promo table. It is safe for concurrent use.
type Engine struct {
	codes map[string]domain.PromoDescriptor
}

// New builds an Engine from codes. Keys are matched case-insensitively.
func New(codes map[string]domain.PromoDescriptor) *Engine {
	normalized := make(map[string]domain.PromoDescriptor, len(codes))
	for code, d := range codes {
		normalized[normalize(code)] = d
	}
	return &Engine{codes: normalized}
}

// Default returns an Engine over DefaultCodes.
func Default() *Engine {
	return New(DefaultCodes)
}

// Resolve looks up code, ignoring case and surrounding whitespace.
func (e *Engine) Resolve(code string) (domain.PromoDescriptor, bool) {
	d, ok := e.codes[normalize(code)]
	return d, ok
}

// Codes returns the configured codes in sorted order.
func (e *Engine) Codes() []string {
	out := make([]string, 0, len(e.codes))
	for code := range e.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Quote is the result of pricing an amount against a code.
type Quote struct {
	FinalPrice     int64
	DiscountAmount int64
	// Descriptor is nil when the code is unknown or empty.
	Descriptor *domain.PromoDescriptor
}

// Price applies code to original. An unknown code leaves the price unchanged;
// callers decide whether that is an error.
func (e *Engine) Price(original int64, code string) Quote {
	d, ok := e.Resolve(code)
	if !ok {
		return Quote{FinalPrice: original}
	}
	discount := Discount(original, d)
	return Quote{
		FinalPrice:     original - discount,
		DiscountAmount: discount,
		Descriptor:     &d,
	}
}

// Discount computes the amount d takes off original. Percentages round half
// up to whole units; flat discounts never exceed original.
func Discount(original int64, d domain.PromoDescriptor) int64 {
	if original <= 0 {
		return 0
	}
	switch d.Type {
	case domain.DiscountPercentage:
		amount := decimal.NewFromInt(original).
			Mul(decimal.NewFromInt(d.Value)).
			Div(hundred).
			Round(0).
			IntPart()
		return min(max(amount, 0), original)
	case domain.DiscountFlat:
		return min(max(d.Value, 0), original)
	default:
		return 0
	}
}

// ParseCodes parses a table of the form "SAVE10:percentage:10,FLAT50:flat:50".
func ParseCodes(table string) (map[string]domain.PromoDescriptor, error) {
	codes := make(map[string]domain.PromoDescriptor)
	for _, entry := range strings.Split(table, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("promo entry %q: want CODE:type:value", entry)
		}
		code := normalize(parts[0])
		if code == "" {
			return nil, fmt.Errorf("promo entry %q: empty code", entry)
		}
		kind := domain.DiscountType(strings.ToLower(strings.TrimSpace(parts[1])))
		if kind != domain.DiscountPercentage && kind != domain.DiscountFlat {
			return nil, fmt.Errorf("promo entry %q: unknown type %q", entry, kind)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("promo entry %q: %w", entry, err)
		}
		if value < 0 || (kind == domain.DiscountPercentage && value > 100) {
			return nil, fmt.Errorf("promo entry %q: value out of range", entry)
		}
		codes[code] = domain.PromoDescriptor{Type: kind, Value: value}
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("no promo codes in %q", table)
	}
	return codes, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
