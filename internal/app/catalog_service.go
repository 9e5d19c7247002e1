package app

import (
	"context"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/cache"
	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
)

type CatalogRepository interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	GetExperienceWithSlots(ctx context.Context, id string) (domain.Experience, error)
}

type CatalogService struct {
	repo    CatalogRepository
	cache   *CatalogCache
	listTTL time.Duration
	itemTTL time.Duration
}

func NewCatalogService(repo CatalogRepository, c *CatalogCache, opts ...CatalogServiceOption) *CatalogService {
	svc := &CatalogService{
		repo:    repo,
		cache:   c,
		listTTL: listTTL,
		itemTTL: itemTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CatalogServiceOption func(*CatalogService)

// WithCatalogTTLs overrides the listing and per-experience cache TTLs.
func WithCatalogTTLs(list, item time.Duration) CatalogServiceOption {
	return func(s *CatalogService) {
		if list > 0 {
			s.listTTL = list
		}
		if item > 0 {
			s.itemTTL = item
		}
	}
}

// ListExperiences returns the catalog without slots.
func (s *CatalogService) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	if list, ok := s.cache.lists.Get(allExperiencesKey); ok {
		return list, nil
	}
	version := s.cache.lists.Version(allExperiencesKey)
	list, err := s.repo.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Experience{}
	}
	// An invalidation during the read means list may predate a booking.
	s.cache.lists.SetIfUnchanged(allExperiencesKey, list, s.listTTL, version)
	return list, nil
}

// GetExperience returns one experience with its slots.
func (s *CatalogService) GetExperience(ctx context.Context, id string) (domain.Experience, error) {
	if id == "" {
		return domain.Experience{}, domain.ErrExperienceNotFound
	}
	key := experienceKey(id)
	if exp, ok := s.cache.items.Get(key); ok {
		return exp, nil
	}
	version := s.cache.items.Version(key)
	exp, err := s.repo.GetExperienceWithSlots(ctx, id)
	if err != nil {
		return domain.Experience{}, err
	}
	s.cache.items.SetIfUnchanged(key, exp, s.itemTTL, version)
	return exp, nil
}

// CacheStats reports the server cache contents.
func (s *CatalogService) CacheStats() []cache.EntryStats {
	return s.cache.Stats()
}
