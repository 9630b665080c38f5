package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/ledger"
	"github.com/srgjo27/shutterbook/internal/core/ports"
)

type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewService struct {
	reviewRepo       ports.ReviewRepository
	bookingRepo      ports.BookingRepository
	photographerRepo ports.PhotographerRepository
	catalog          *SearchService
	now              func() time.Time
}

func NewReviewService(reviewRepo ports.ReviewRepository, bookingRepo ports.BookingRepository, photographerRepo ports.PhotographerRepository, catalog *SearchService) *ReviewService {
	return &ReviewService{
		reviewRepo:       reviewRepo,
		bookingRepo:      bookingRepo,
		photographerRepo: photographerRepo,
		catalog:          catalog,
		now:              time.Now,
	}
}

// SubmitReview stores the client's review of a completed booking and
// refreshes the photographer's rating from all of their reviews.
func (s *ReviewService) SubmitReview(ctx context.Context, client domain.Identity, bookingID uuid.UUID, req SubmitReviewRequest) (*domain.Review, error) {
	if req.Rating < domain.MinReviewRating || req.Rating > domain.MaxReviewRating {
		return nil, apperrors.NewValidationError(fmt.Sprintf("rating must be between %d and %d", domain.MinReviewRating, domain.MaxReviewRating))
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, apperrors.NewValidationError("comment is required")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.ClientID != client.UserID {
		return nil, apperrors.NewForbiddenError("only the client of a booking can review it")
	}
	if booking.Status != domain.BookingCompleted {
		return nil, apperrors.NewConflictError("only completed bookings can be reviewed")
	}

	exists, err := s.reviewRepo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("booking has already been reviewed")
	}

	review := &domain.Review{
		ID:             uuid.New(),
		BookingID:      booking.ID,
		ClientID:       client.UserID,
		PhotographerID: booking.PhotographerID,
		Rating:         req.Rating,
		Comment:        comment,
		CreatedAt:      s.now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshRating(ctx, booking.PhotographerID); err != nil {
		// The review is stored; the aggregate catches up on the next review.
		log.Warn().Err(err).Str("photographer_id", booking.PhotographerID.String()).Msg("failed to refresh photographer rating")
	}

	return review, nil
}

func (s *ReviewService) refreshRating(ctx context.Context, photographerID uuid.UUID) error {
	reviews, err := s.reviewRepo.ListByPhotographer(ctx, photographerID)
	if err != nil {
		return err
	}

	if err := s.photographerRepo.UpdateRating(ctx, photographerID, ledger.AverageRating(reviews), len(reviews)); err != nil {
		return err
	}

	s.catalog.InvalidateCatalog(ctx)
	return nil
}
