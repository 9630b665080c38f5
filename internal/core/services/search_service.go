package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/ledger"
	"github.com/srgjo27/shutterbook/internal/core/ports"
	"github.com/srgjo27/shutterbook/internal/core/search"
)

type ProfileView struct {
	Photographer  domain.Photographer `json:"photographer"`
	Reviews       []domain.Review     `json:"reviews"`
	AverageRating float64             `json:"average_rating"`
}

// SearchService serves the photographer catalog. The cache is optional.
type SearchService struct {
	photographerRepo ports.PhotographerRepository
	reviewRepo       ports.ReviewRepository
	cache            ports.CatalogCache
}

func NewSearchService(photographerRepo ports.PhotographerRepository, reviewRepo ports.ReviewRepository, cache ports.CatalogCache) *SearchService {
	return &SearchService{
		photographerRepo: photographerRepo,
		reviewRepo:       reviewRepo,
		cache:            cache,
	}
}

// Catalog returns every photographer, from cache when possible.
func (s *SearchService) Catalog(ctx context.Context) ([]domain.Photographer, error) {
	if s.cache != nil {
		catalog, ok, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("catalog cache read failed, falling back to database")
		} else if ok {
			return catalog, nil
		}
	}

	catalog, err := s.photographerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalog); err != nil {
			log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}

	return catalog, nil
}

func (s *SearchService) Search(ctx context.Context, criteria search.Criteria) ([]domain.Photographer, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	return search.Search(catalog, criteria)
}

// Profile returns one photographer with the reviews they received.
func (s *SearchService) Profile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	photographer, err := s.photographerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByPhotographer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return &ProfileView{
		Photographer:  *photographer,
		Reviews:       reviews,
		AverageRating: ledger.AverageRating(reviews),
	}, nil
}

// InvalidateCatalog drops the cached catalog after a write.
func (s *SearchService) InvalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
