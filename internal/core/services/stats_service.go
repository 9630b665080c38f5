package services

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/ledger"
	"github.com/srgjo27/shutterbook/internal/core/ports"
	"github.com/srgjo27/shutterbook/internal/core/search"
)

const (
	topRatedLimit       = 5
	recentBookingsLimit = 5
)

type BookingSummary struct {
	ID               uuid.UUID            `json:"id"`
	ClientName       string               `json:"client_name"`
	PhotographerName string               `json:"photographer_name"`
	Date             time.Time            `json:"date"`
	Status           domain.BookingStatus `json:"status"`
	TotalPrice       domain.Money         `json:"total_price_cents"`
}

type PlatformStats struct {
	TotalPhotographers int                          `json:"total_photographers"`
	TotalBookings      int                          `json:"total_bookings"`
	CompletedBookings  int                          `json:"completed_bookings"`
	BookingsThisMonth  int                          `json:"bookings_this_month"`
	TotalRevenue       domain.Money                 `json:"total_revenue_cents"`
	PlatformFee        domain.Money                 `json:"platform_fee_cents"`
	AverageRating      float64                      `json:"average_rating"`
	StatusCounts       map[domain.BookingStatus]int `json:"status_counts"`
	TopRated           []domain.Photographer        `json:"top_rated"`
	RecentBookings     []BookingSummary             `json:"recent_bookings"`
}

// StatsService builds the admin overview of the whole marketplace.
type StatsService struct {
	catalog     *SearchService
	bookingRepo ports.BookingRepository
	reviewRepo  ports.ReviewRepository
	userRepo    ports.UserRepository
	now         func() time.Time
}

func NewStatsService(catalog *SearchService, bookingRepo ports.BookingRepository, reviewRepo ports.ReviewRepository, userRepo ports.UserRepository) *StatsService {
	return &StatsService{
		catalog:     catalog,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *StatsService) PlatformStats(ctx context.Context, user domain.Identity) (*PlatformStats, error) {
	if user.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbiddenError("admin only")
	}

	photographers, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	topRated, err := search.Search(photographers, search.DefaultCriteria())
	if err != nil {
		return nil, err
	}
	if len(topRated) > topRatedLimit {
		topRated = topRated[:topRatedLimit]
	}

	recent, err := s.recentBookings(ctx, bookings)
	if err != nil {
		return nil, err
	}

	now := s.now()
	counts := ledger.StatusCounts(bookings)
	revenue := ledger.TotalRevenue(bookings)

	return &PlatformStats{
		TotalPhotographers: len(photographers),
		TotalBookings:      len(bookings),
		CompletedBookings:  counts[domain.BookingCompleted],
		BookingsThisMonth:  ledger.MonthlyBookingCount(bookings, now),
		TotalRevenue:       revenue,
		PlatformFee:        ledger.PlatformFee(revenue),
		AverageRating:      ledger.AverageRating(reviews),
		StatusCounts:       counts,
		TopRated:           topRated,
		RecentBookings:     recent,
	}, nil
}

// recentBookings joins the latest bookings with user names. Bookings that
// point at users missing from the store are skipped.
func (s *StatsService) recentBookings(ctx context.Context, bookings []domain.Booking) ([]BookingSummary, error) {
	latest := slices.Clone(bookings)
	slices.SortStableFunc(latest, func(a, b domain.Booking) int {
		return b.Date.Compare(a.Date)
	})
	if len(latest) > recentBookingsLimit {
		latest = latest[:recentBookingsLimit]
	}

	summaries := make([]BookingSummary, 0, len(latest))
	if len(latest) == 0 {
		return summaries, nil
	}

	ids := make([]uuid.UUID, 0, 2*len(latest))
	for _, b := range latest {
		ids = append(ids, b.ClientID, b.PhotographerID)
	}

	users, err := s.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	for _, b := range latest {
		client, okClient := names[b.ClientID]
		photographer, okPhotographer := names[b.PhotographerID]
		if !okClient || !okPhotographer {
			log.Warn().Str("booking_id", b.ID.String()).Msg("skipping booking with unknown participant")
			continue
		}
		summaries = append(summaries, BookingSummary{
			ID:               b.ID,
			ClientName:       client,
			PhotographerName: photographer,
			Date:             b.Date,
			Status:           b.Status,
			TotalPrice:       b.TotalPrice,
		})
	}

	return summaries, nil
}
