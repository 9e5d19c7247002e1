// Package client is a typed HTTP client for the booking API with a
// short-lived local cache of catalog reads.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/cache"
	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
	"github.com/ShauryaRahlon/Travel-Delite/internal/promo"
)

const (
	defaultTimeout = 10 * time.Second
	defaultTTL     = 5 * time.Minute

	experiencesKey = "experiences"
)

func experienceKey(id string) string {
	return "experience_" + id
}

type Experience struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Slots       []Slot `json:"slots,omitempty"`
}

type Slot struct {
	ID               string    `json:"id"`
	ExperienceID     string    `json:"experienceId"`
	Date             time.Time `json:"date"`
	Time             string    `json:"time"`
	TotalTickets     int       `json:"totalTickets"`
	BookedTickets    int       `json:"bookedTickets"`
	AvailableTickets int       `json:"availableTickets"`
}

type PromoDetails struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

type PromoResult struct {
	Message      string       `json:"message"`
	PromoDetails PromoDetails `json:"promoDetails"`
}

type BookingRequest struct {
	ExperienceID string `json:"experienceId"`
	SlotID       string `json:"slotId"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	FinalPrice   int64  `json:"finalPrice"`
	PromoCode    string `json:"promoCode,omitempty"`
}

type Booking struct {
	ID              string        `json:"id"`
	ExperienceID    string        `json:"experienceId"`
	SlotID          string        `json:"slotId"`
	UserName        string        `json:"userName"`
	UserEmail       string        `json:"userEmail"`
	PromoCode       string        `json:"promoCode,omitempty"`
	FinalPrice      int64         `json:"finalPrice"`
	CreatedAt       time.Time     `json:"createdAt"`
	PromoDetails    *PromoDetails `json:"promoDetails"`
	OriginalPrice   int64         `json:"originalPrice"`
	DiscountApplied int64         `json:"discountApplied"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d %s: %s", e.Status, e.Code, e.Message)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

type Client struct {
	baseURL string
	http    *http.Client
	promos  *promo.Engine
	ttl     time.Duration
	lists   *cache.Cache[[]Experience]
	items   *cache.Cache[Experience]
}

type Option func(*Client)

// WithHTTPClient replaces the default client with its 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClock sets the clock used for cache expiry.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) {
		c.lists = cache.New[[]Experience](clk)
		c.items = cache.New[Experience](clk)
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPromoEngine sets the engine used by PreviewPrice.
func WithPromoEngine(engine *promo.Engine) Option {
	return func(c *Client) {
		if engine != nil {
			c.promos = engine
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		promos:  promo.Default(),
		ttl:     defaultTTL,
		lists:   cache.New[[]Experience](nil),
		items:   cache.New[Experience](nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListExperiences(ctx context.Context) ([]Experience, error) {
	if list, ok := c.lists.Get(experiencesKey); ok {
		return list, nil
	}
	var list []Experience
	if err := c.do(ctx, http.MethodGet, "/api/experiences", nil, &list); err != nil {
		return nil, err
	}
	c.lists.Set(experiencesKey, list, c.ttl)
	return list, nil
}

func (c *Client) GetExperience(ctx context.Context, id string) (Experience, error) {
	key := experienceKey(id)
	if exp, ok := c.items.Get(key); ok {
		return exp, nil
	}
	var exp Experience
	if err := c.do(ctx, http.MethodGet, "/api/experiences/"+url.PathEscape(id), nil, &exp); err != nil {
		return Experience{}, err
	}
	c.items.Set(key, exp, c.ttl)
	return exp, nil
}

func (c *Client) ValidatePromo(ctx context.Context, code string) (PromoResult, error) {
	var res PromoResult
	err := c.do(ctx, http.MethodPost, "/api/promo/validate", map[string]string{"code": code}, &res)
	return res, err
}

// CreateBooking submits a booking. The cached listing and the cached
// experience are dropped once the server accepts it.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	var b Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", req, &b); err != nil {
		return Booking{}, err
	}
	c.InvalidateExperience(req.ExperienceID)
	return b, nil
}

// PreviewPrice computes the locally displayed price. The server recomputes
// the charge from its own price on booking.
func (c *Client) PreviewPrice(base int64, code string) promo.Quote {
	return c.promos.Price(base, code)
}

func (c *Client) InvalidateExperience(id string) {
	c.lists.Delete(experiencesKey)
	c.items.Delete(experienceKey(id))
}

func (c *Client) ClearCache() {
	c.lists.Clear()
	c.items.Clear()
}

func (c *Client) CacheStats() []cache.EntryStats {
	return append(c.lists.Stats(), c.items.Stats()...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body struct {
		Error  string       `json:"error"`
		Code   string       `json:"code"`
		Fields []FieldError `json:"fields"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
