package http

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/app"
	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/ShauryaRahlon/Travel-Delite/internal/promo"
	"github.com/ShauryaRahlon/Travel-Delite/internal/storage/postgres"
	"github.com/ShauryaRahlon/Travel-Delite/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

type integrationEnv struct {
	pool    *pgxpool.Pool
	server  *httptest.Server
	catalog *countingCatalogRepo
}

func newIntegrationEnv(t *testing.T) integrationEnv {
	t.Helper()
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	logger := log.New(io.Discard, "", 0)
	clk := clock.NewSystem()
	catalogRepo := &countingCatalogRepo{CatalogRepository: postgres.NewCatalogRepository(pool)}
	catalogCache := app.NewCatalogCache(clk)
	catalog := app.NewCatalogService(catalogRepo, catalogCache)
	engine := promo.Default()
	bookings := app.NewBookingService(postgres.NewBookingRepository(pool), engine, catalogCache, clk, app.WithBookingLogger(logger))

	router := NewRouter(Services{
		Catalog:  catalog,
		Promo:    app.NewPromoService(engine),
		Bookings: bookings,
		DB:       pool,
	}, RouterOptions{Logger: logger, Debug: true})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return integrationEnv{pool: pool, server: server, catalog: catalogRepo}
}

func (e integrationEnv) postBooking(t *testing.T, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(e.server.URL+"/api/bookings", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post booking: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func bookingBody(experienceID, slotID, email, promoCode string, finalPrice int64) string {
	payload := map[string]any{
		"experienceId": experienceID,
		"slotId":       slotID,
		"userName":     "Ada Lovelace",
		"userEmail":    email,
		"finalPrice":   finalPrice,
	}
	if promoCode != "" {
		payload["promoCode"] = promoCode
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestBookingIntegration_AppliesPromoFromStoredPrice(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	expID := testutil.InsertExperience(t, ctx, env.pool, "Sunset Cruise", 1000)
	slotID := testutil.InsertSlot(t, ctx, env.pool, expID, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), "06:00 PM", 10, 0)

	// Client figure is ignored for the charge.
	resp, raw := env.postBooking(t, bookingBody(expID, slotID, "ada@example.com", "save10", 1))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", resp.StatusCode, raw)
	}

	var got createBookingResponse
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.FinalPrice != 900 || got.OriginalPrice != 1000 || got.DiscountApplied != 100 {
		t.Fatalf("unexpected pricing %+v", got)
	}
	if got.PromoDetails == nil || got.PromoDetails.Type != string(domain.DiscountPercentage) || got.PromoDetails.Value != 10 {
		t.Fatalf("unexpected promo details %+v", got.PromoDetails)
	}
	if got.PromoCode != "SAVE10" {
		t.Fatalf("expected normalized promo code, got %q", got.PromoCode)
	}

	if booked := testutil.BookedTickets(t, ctx, env.pool, slotID); booked != 1 {
		t.Fatalf("expected 1 booked ticket, got %d", booked)
	}
	if count := testutil.CountBookings(t, ctx, env.pool, slotID); count != 1 {
		t.Fatalf("expected 1 booking row, got %d", count)
	}
}

func TestBookingIntegration_SoldOutSlot(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	expID := testutil.InsertExperience(t, ctx, env.pool, "Kayaking", 999)
	slotID := testutil.InsertSlot(t, ctx, env.pool, expID, time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC), "06:00 AM", 12, 12)

	resp, raw := env.postBooking(t, bookingBody(expID, slotID, "ada@example.com", "", 999))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d (%s)", resp.StatusCode, raw)
	}
	if !strings.Contains(string(raw), codeSlotUnavailable) {
		t.Fatalf("expected %s, got %s", codeSlotUnavailable, raw)
	}
	if booked := testutil.BookedTickets(t, ctx, env.pool, slotID); booked != 12 {
		t.Fatalf("expected booked tickets unchanged, got %d", booked)
	}
	if count := testutil.CountBookings(t, ctx, env.pool, slotID); count != 0 {
		t.Fatalf("expected no booking rows, got %d", count)
	}
}

func TestBookingIntegration_CachedReadsAndInvalidation(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	expID := testutil.InsertExperience(t, ctx, env.pool, "Hiking", 75)
	slotID := testutil.InsertSlot(t, ctx, env.pool, expID, time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC), "08:00 AM", 3, 0)

	fetch := func() experienceDetailResponse {
		t.Helper()
		resp, err := http.Get(env.server.URL + "/api/experiences/" + expID)
		if err != nil {
			t.Fatalf("get experience: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		var detail experienceDetailResponse
		if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
			t.Fatalf("decode detail: %v", err)
		}
		return detail
	}

	first := fetch()
	second := fetch()
	if calls := env.catalog.getCalls.Load(); calls != 1 {
		t.Fatalf("expected 1 datastore read within ttl, got %d", calls)
	}
	if first.Slots[0].AvailableTickets != 3 || second.Slots[0].AvailableTickets != 3 {
		t.Fatalf("unexpected availability %+v / %+v", first.Slots, second.Slots)
	}

	resp, raw := env.postBooking(t, bookingBody(expID, slotID, "ada@example.com", "FLAT50", 25))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", resp.StatusCode, raw)
	}

	third := fetch()
	if calls := env.catalog.getCalls.Load(); calls != 2 {
		t.Fatalf("expected re-read after booking, got %d reads", calls)
	}
	if third.Slots[0].BookedTickets != 1 || third.Slots[0].AvailableTickets != 2 {
		t.Fatalf("expected fresh availability, got %+v", third.Slots[0])
	}
}

func TestBookingIntegration_LastSeatUnderContention(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	expID := testutil.InsertExperience(t, ctx, env.pool, "Hot Air Balloon", 500)
	slotID := testutil.InsertSlot(t, ctx, env.pool, expID, time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC), "05:30 AM", 1, 0)

	var (
		wg       sync.WaitGroup
		created  atomic.Int32
		soldOut  atomic.Int32
		start    = make(chan struct{})
		attempts = 2
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			resp, err := http.Post(env.server.URL+"/api/bookings", "application/json",
				strings.NewReader(bookingBody(expID, slotID, "racer@example.com", "", 500)))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusBadRequest:
				soldOut.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if created.Load() != 1 || soldOut.Load() != 1 {
		t.Fatalf("expected one success and one sold out, got %d/%d", created.Load(), soldOut.Load())
	}
	if booked := testutil.BookedTickets(t, ctx, env.pool, slotID); booked != 1 {
		t.Fatalf("expected 1 booked ticket, got %d", booked)
	}
}

type countingCatalogRepo struct {
	*postgres.CatalogRepository
	getCalls atomic.Int32
}

func (r *countingCatalogRepo) GetExperienceWithSlots(ctx context.Context, id string) (domain.Experience, error) {
	r.getCalls.Add(1)
	return r.CatalogRepository.GetExperienceWithSlots(ctx, id)
}
