package http

import (
	"log"
	"net/http"
)

// Services groups what the API routes depend on.
type Services struct {
	Catalog interface {
		ExperienceLister
		ExperienceGetter
		CacheInspector
	}
	Promo    PromoValidator
	Bookings BookingCreator
	// Admin mounts /api/admin/... when set.
	Admin AdminCatalogService
	DB    Pinger
}

type RouterOptions struct {
	CORSOrigins []string
	// Debug mounts /api/debug/cache.
	Debug  bool
	Logger *log.Logger
}

// NewRouter wires the API routes and wraps them in CORS, panic recovery and
// request logging.
func NewRouter(svc Services, opts RouterOptions) http.Handler {
	logger := orDefault(opts.Logger)

	mux := http.NewServeMux()
	mux.Handle("/health", HealthHandler(svc.DB))
	mux.Handle("/api/experiences", HandleListExperiences(svc.Catalog, logger))
	mux.Handle("/api/experiences/", HandleGetExperience(svc.Catalog, logger))
	mux.Handle("/api/promo/validate", HandleValidatePromo(svc.Promo, logger))
	mux.Handle("/api/bookings", HandleCreateBooking(svc.Bookings, logger))
	if svc.Admin != nil {
		mux.Handle("/api/admin/experiences", HandleAdminExperiences(svc.Admin, logger))
		mux.Handle("/api/admin/experiences/", HandleAdminSlots(svc.Admin, logger))
	}
	if opts.Debug {
		mux.Handle("/api/debug/cache", HandleCacheStats(svc.Catalog))
	}
	mux.Handle("/", NotFoundHandler())

	return RequestLogger(Recoverer(CORS(opts.CORSOrigins, mux), logger), logger)
}
