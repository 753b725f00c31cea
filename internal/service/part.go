package service

import (
	"context"
	"errors"

	"github.com/partsdesk/partsdesk/internal/cache"
	"github.com/partsdesk/partsdesk/internal/metrics"
	"github.com/partsdesk/partsdesk/internal/model"
	"github.com/partsdesk/partsdesk/internal/repository"
)

// PartService handles parts catalog reads with a read-through cache on
// the hot paths. Cache failures degrade to the database (fail open).
type PartService struct {
	repo          *repository.Repository
	cache         *cache.Cache
	metrics       metrics.Recorder
	featuredLimit int
}

// NewPartService creates a PartService. Pass nil cache to disable caching.
func NewPartService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder, featuredLimit int) *PartService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if featuredLimit <= 0 {
		featuredLimit = 8
	}
	return &PartService{repo: repo, cache: c, metrics: recorder, featuredLimit: featuredLimit}
}

// List retrieves a page of catalog parts matching the filter plus the
// total count. Search listings are not cached; the filter space is
// too wide for useful hit rates.
func (s *PartService) List(ctx context.Context, f repository.PartFilter, page repository.Page) ([]*model.Part, int64, error) {
	return s.repo.ListParts(ctx, f, page)
}

// Get retrieves one part by identifier, read-through cached.
func (s *PartService) Get(ctx context.Context, identifier string) (*model.Part, error) {
	if s.cache != nil {
		if p, err := s.cache.GetPart(ctx, identifier); err == nil {
			s.metrics.IncCatalogCacheHit()
			return p, nil
		} else if errors.Is(err, cache.ErrCacheMiss) {
			s.metrics.IncCatalogCacheMiss()
		}
	}

	p, err := s.repo.GetPartByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrPartNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetPart(ctx, identifier, p)
	}

	return p, nil
}

// Featured retrieves the featured parts list, read-through cached.
func (s *PartService) Featured(ctx context.Context) ([]*model.Part, error) {
	if s.cache != nil {
		if parts, err := s.cache.GetFeaturedParts(ctx); err == nil {
			s.metrics.IncCatalogCacheHit()
			return parts, nil
		} else if errors.Is(err, cache.ErrCacheMiss) {
			s.metrics.IncCatalogCacheMiss()
		}
	}

	parts, err := s.repo.FeaturedParts(ctx, s.featuredLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetFeaturedParts(ctx, parts)
	}

	return parts, nil
}

// Categories retrieves the distinct category list, read-through cached.
func (s *PartService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if values, err := s.cache.GetCategories(ctx); err == nil {
			s.metrics.IncCatalogCacheHit()
			return values, nil
		} else if errors.Is(err, cache.ErrCacheMiss) {
			s.metrics.IncCatalogCacheMiss()
		}
	}

	values, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetCategories(ctx, values)
	}

	return values, nil
}

// Manufacturers retrieves the distinct manufacturer list, read-through cached.
func (s *PartService) Manufacturers(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if values, err := s.cache.GetManufacturers(ctx); err == nil {
			s.metrics.IncCatalogCacheHit()
			return values, nil
		} else if errors.Is(err, cache.ErrCacheMiss) {
			s.metrics.IncCatalogCacheMiss()
		}
	}

	values, err := s.repo.Manufacturers(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetManufacturers(ctx, values)
	}

	return values, nil
}
