package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/ports/mocks"
	"github.com/srgjo27/shutterbook/internal/core/search"
	"github.com/srgjo27/shutterbook/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogOf(rates ...domain.Money) []domain.Photographer {
	out := make([]domain.Photographer, len(rates))
	for i, r := range rates {
		out[i] = *availablePhotographer(uuid.New(), r)
	}
	return out
}

func TestSearch_UsesCachedCatalog(t *testing.T) {
	mockPhotographerRepo := mocks.NewPhotographerRepository(t)
	mockCache := mocks.NewCatalogCache(t)
	service := services.NewSearchService(mockPhotographerRepo, mocks.NewReviewRepository(t), mockCache)

	ctx := context.Background()
	mockCache.On("Get", ctx).Return(catalogOf(10000, 20000), true, nil)

	c := search.DefaultCriteria()
	c.MinPrice = 15000
	result, err := service.Search(ctx, c)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, domain.Money(20000), result[0].HourlyRate)
}

func TestSearch_CacheMissLoadsAndStores(t *testing.T) {
	mockPhotographerRepo := mocks.NewPhotographerRepository(t)
	mockCache := mocks.NewCatalogCache(t)
	service := services.NewSearchService(mockPhotographerRepo, mocks.NewReviewRepository(t), mockCache)

	ctx := context.Background()
	catalog := catalogOf(10000)
	mockCache.On("Get", ctx).Return(nil, false, nil)
	mockPhotographerRepo.On("ListAll", ctx).Return(catalog, nil)
	mockCache.On("Set", ctx, catalog).Return(nil)

	result, err := service.Search(ctx, search.DefaultCriteria())

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestSearch_CacheErrorFallsBackToDatabase(t *testing.T) {
	mockPhotographerRepo := mocks.NewPhotographerRepository(t)
	mockCache := mocks.NewCatalogCache(t)
	service := services.NewSearchService(mockPhotographerRepo, mocks.NewReviewRepository(t), mockCache)

	ctx := context.Background()
	mockCache.On("Get", ctx).Return(nil, false, errors.New("redis down"))
	mockPhotographerRepo.On("ListAll", ctx).Return(catalogOf(10000, 12000), nil)
	mockCache.On("Set", ctx, mock.Anything).Return(errors.New("redis down"))

	result, err := service.Search(ctx, search.DefaultCriteria())

	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestSearch_InvalidCriteriaSkipsStore(t *testing.T) {
	service := services.NewSearchService(mocks.NewPhotographerRepository(t), mocks.NewReviewRepository(t), nil)

	c := search.DefaultCriteria()
	c.MaxPrice = -5
	_, err := service.Search(context.Background(), c)

	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestProfile(t *testing.T) {
	mockPhotographerRepo := mocks.NewPhotographerRepository(t)
	mockReviewRepo := mocks.NewReviewRepository(t)
	service := services.NewSearchService(mockPhotographerRepo, mockReviewRepo, nil)

	ctx := context.Background()
	id := uuid.New()
	mockPhotographerRepo.On("GetByUserID", ctx, id).Return(availablePhotographer(id, 15000), nil)
	mockReviewRepo.On("ListByPhotographer", ctx, id).Return([]domain.Review{{Rating: 5}, {Rating: 4}}, nil)

	view, err := service.Profile(ctx, id)

	require.NoError(t, err)
	assert.InDelta(t, 4.5, view.AverageRating, 1e-9)
	assert.Len(t, view.Reviews, 2)
}

func TestProfile_NotFound(t *testing.T) {
	mockPhotographerRepo := mocks.NewPhotographerRepository(t)
	service := services.NewSearchService(mockPhotographerRepo, mocks.NewReviewRepository(t), nil)

	ctx := context.Background()
	id := uuid.New()
	mockPhotographerRepo.On("GetByUserID", ctx, id).Return(nil, apperrors.NewNotFoundError("photographer not found"))

	_, err := service.Profile(ctx, id)

	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}
