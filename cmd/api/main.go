package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/app"
	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
	"github.com/ShauryaRahlon/Travel-Delite/internal/config"
	"github.com/ShauryaRahlon/Travel-Delite/internal/storage/postgres"
	transporthttp "github.com/ShauryaRahlon/Travel-Delite/internal/transport/http"
	"github.com/ShauryaRahlon/Travel-Delite/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	startupTimeout    = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	if cfg.SeedData {
		seeded, err := migrations.Seed(startupCtx, pool)
		if err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
		if seeded {
			logger.Printf("seeded demo catalog")
		}
	}

	clk := clock.NewSystem()
	engine := cfg.PromoEngine()
	catalogCache := app.NewCatalogCache(clk)

	catalogSvc := app.NewCatalogService(postgres.NewCatalogRepository(pool), catalogCache)
	promoSvc := app.NewPromoService(engine)
	bookingSvc := app.NewBookingService(
		postgres.NewBookingRepository(pool),
		engine,
		catalogCache,
		clk,
		app.WithBookingLogger(logger),
	)

	services := transporthttp.Services{
		Catalog:  catalogSvc,
		Promo:    promoSvc,
		Bookings: bookingSvc,
		DB:       pool,
	}
	if !cfg.IsProduction() {
		services.Admin = app.NewAdminService(postgres.NewAdminRepository(pool), catalogCache, clk)
	}

	handler := transporthttp.NewRouter(services, transporthttp.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		Debug:       !cfg.IsProduction(),
		Logger:      logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Printf("api listening on :%s env=%s", cfg.Port, cfg.Env)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
