package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/app"
	"github.com/ShauryaRahlon/Travel-Delite/internal/cache"
	"github.com/ShauryaRahlon/Travel-Delite/internal/promo"
)

func newTestRouter(debug bool, logger *log.Logger) http.Handler {
	catalog := &stubCatalog{stats: []cache.EntryStats{
		{Key: "all_experiences", TTL: 10 * time.Minute, Age: 90 * time.Second},
	}}
	svc := Services{
		Catalog:  catalog,
		Promo:    app.NewPromoService(promo.Default()),
		Bookings: &stubBookingService{},
	}
	if debug {
		svc.Admin = &stubAdminService{}
	}
	return NewRouter(svc, RouterOptions{
		CORSOrigins: []string{"http://localhost:5173"},
		Debug:       debug,
		Logger:      logger,
	})
}

func TestNewRouter_Routes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(false, log.New(io.Discard, "", 0))

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/experiences", http.StatusOK},
		{http.MethodGet, "/api/experiences/exp-1", http.StatusOK},
		{http.MethodGet, "/api/debug/cache", http.StatusNotFound},
		{http.MethodPost, "/api/admin/experiences", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodDelete, "/api/bookings", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Fatalf("%s %s: expected status %d, got %d", tt.method, tt.path, tt.status, rec.Code)
		}
	}
}

func TestNewRouter_DebugCache(t *testing.T) {
	t.Parallel()

	router := newTestRouter(true, log.New(io.Discard, "", 0))
	req := httptest.NewRequest(http.MethodGet, "/api/debug/cache", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp cacheStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Size != 1 || resp.Keys[0] != "all_experiences" {
		t.Fatalf("unexpected stats %+v", resp)
	}
	if resp.Entries[0].AgeMS != 90000 || resp.Entries[0].TTLMS != 600000 || resp.Entries[0].Expired {
		t.Fatalf("unexpected entry %+v", resp.Entries[0])
	}
}

func TestNewRouter_AdminRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(true, log.New(io.Discard, "", 0))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/experiences/exp-1/slots",
		strings.NewReader(`{"date":"2025-12-01","time":"09:00 AM","totalTickets":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_LogsAndAllowsCORS(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	router := newTestRouter(false, log.New(buf, "", 0))

	req := httptest.NewRequest(http.MethodGet, "/api/experiences", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allow origin header, got %q", got)
	}
	if !strings.Contains(buf.String(), "path=/api/experiences") {
		t.Fatalf("expected request log, got %q", buf.String())
	}
}
