package services

import (
	"context"
	"errors"
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

type CreateBookingRequest struct {
	PhotographerID string `json:"photographer_id"`
	Date           string `json:"date"`
	DurationHours  int    `json:"duration_hours"`
	Location       string `json:"location"`
	Type           string `json:"type"`
	Notes          string `json:"notes"`
}

type CreateBookingResponse struct {
	BookingID  string `json:"booking_id"`
	TotalPrice int64  `json:"total_price_cents"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

type BookingOverview struct {
	ledger.Buckets
	History []domain.Booking `json:"history"`
}

type DashboardStats struct {
	Upcoming        []domain.Booking `json:"upcoming"`
	Pending         []domain.Booking `json:"pending"`
	Completed       []domain.Booking `json:"completed"`
	TotalEarnings   domain.Money     `json:"total_earnings_cents"`
	MonthlyEarnings domain.Money     `json:"monthly_earnings_cents"`
	Rating          float64          `json:"rating"`
	ReviewCount     int              `json:"review_count"`
}

type BookingService struct {
	bookingRepo      ports.BookingRepository
	photographerRepo ports.PhotographerRepository
	now              func() time.Time
}

func NewBookingService(bookingRepo ports.BookingRepository, photographerRepo ports.PhotographerRepository) *BookingService {
	return &BookingService{
		bookingRepo:      bookingRepo,
		photographerRepo: photographerRepo,
		now:              time.Now,
	}
}

// WithClock replaces the time source used for "now".
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

func (s *BookingService) RequestBooking(ctx context.Context, client domain.Identity, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if client.Role != domain.RoleClient {
		return nil, apperrors.NewForbiddenError("only clients can request bookings")
	}

	photographerID, err := uuid.Parse(req.PhotographerID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid photographer id")
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date, expected RFC3339")
	}

	now := s.now()
	if !date.After(now) {
		return nil, apperrors.NewValidationError("booking date must be in the future")
	}

	if strings.TrimSpace(req.Location) == "" || strings.TrimSpace(req.Type) == "" {
		return nil, apperrors.NewValidationError("location and session type are required")
	}

	photographer, err := s.photographerRepo.GetByUserID(ctx, photographerID)
	if err != nil {
		return nil, err
	}

	if !photographer.Availability {
		return nil, apperrors.NewConflictError("photographer is not accepting bookings")
	}

	totalPrice, err := domain.ComputePrice(photographer.HourlyRate, req.DurationHours)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	booking := &domain.Booking{
		ID:             uuid.New(),
		ClientID:       client.UserID,
		PhotographerID: photographerID,
		Date:           date,
		DurationHours:  req.DurationHours,
		Location:       strings.TrimSpace(req.Location),
		Type:           strings.TrimSpace(req.Type),
		Status:         domain.BookingPending,
		TotalPrice:     totalPrice,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Str("client_id", client.UserID.String()).
		Str("photographer_id", photographerID.String()).
		Int64("total_price_cents", int64(totalPrice)).
		Msg("booking requested")

	return &CreateBookingResponse{
		BookingID:  booking.ID.String(),
		TotalPrice: int64(totalPrice),
		Status:     string(domain.BookingPending),
		Date:       date.Format(time.RFC3339),
	}, nil
}

func (s *BookingService) Confirm(ctx context.Context, actor domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, actor, bookingID, domain.BookingConfirmed)
}

func (s *BookingService) Cancel(ctx context.Context, actor domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, actor, bookingID, domain.BookingCancelled)
}

func (s *BookingService) Complete(ctx context.Context, actor domain.Identity, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, actor, bookingID, domain.BookingCompleted)
}

func (s *BookingService) transition(ctx context.Context, actor domain.Identity, bookingID uuid.UUID, to domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !mayTransition(actor, booking, to) {
		return nil, apperrors.NewForbiddenError(fmt.Sprintf("not allowed to mark this booking %s", to))
	}

	if !booking.Status.CanTransition(to) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("booking is %s and cannot become %s", booking.Status, to))
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, booking.Status, to); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Str("from", string(booking.Status)).
		Str("to", string(to)).
		Str("actor_id", actor.UserID.String()).
		Msg("booking status changed")

	booking.Status = to
	return booking, nil
}

// mayTransition: the photographer drives confirm/complete, either party may
// cancel, and admins may do anything.
func mayTransition(actor domain.Identity, b *domain.Booking, to domain.BookingStatus) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if to == domain.BookingCancelled {
		return b.Involves(actor.UserID)
	}
	return actor.UserID == b.PhotographerID
}

// ListForUser loads the bookings visible to the caller and partitions them
// as of now.
func (s *BookingService) ListForUser(ctx context.Context, user domain.Identity) (*BookingOverview, error) {
	bookings, err := s.bookingsFor(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &BookingOverview{
		Buckets: ledger.Partition(bookings, now),
		History: ledger.History(bookings, now),
	}, nil
}

func (s *BookingService) bookingsFor(ctx context.Context, user domain.Identity) ([]domain.Booking, error) {
	switch user.Role {
	case domain.RoleClient:
		return s.bookingRepo.ListByClient(ctx, user.UserID)
	case domain.RolePhotographer:
		return s.bookingRepo.ListByPhotographer(ctx, user.UserID)
	case domain.RoleAdmin:
		return s.bookingRepo.ListAll(ctx)
	}
	return nil, apperrors.NewForbiddenError("unknown role")
}

// Dashboard summarises a photographer's bookings and earnings.
func (s *BookingService) Dashboard(ctx context.Context, user domain.Identity) (*DashboardStats, error) {
	if user.Role != domain.RolePhotographer {
		return nil, apperrors.NewForbiddenError("dashboard is only available to photographers")
	}

	photographer, err := s.photographerRepo.GetByUserID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByPhotographer(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	buckets := ledger.Partition(bookings, now)

	return &DashboardStats{
		Upcoming:        buckets.Upcoming,
		Pending:         buckets.Pending,
		Completed:       buckets.Completed,
		TotalEarnings:   ledger.TotalRevenue(bookings),
		MonthlyEarnings: ledger.MonthlyRevenue(bookings, now),
		Rating:          photographer.Rating,
		ReviewCount:     photographer.ReviewCount,
	}, nil
}

func (s *BookingService) RunCompletionSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("completion sweep started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("completion sweep stopped")
			return
		case <-ticker.C:
			s.ProcessFinishedSessions(ctx)
		}
	}
}

// ProcessFinishedSessions marks confirmed bookings whose session is over as
// completed and returns how many were moved.
func (s *BookingService) ProcessFinishedSessions(ctx context.Context) int {
	ids, err := s.bookingRepo.GetFinishedSessions(ctx, s.now())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch finished sessions")
		return 0
	}

	if len(ids) == 0 {
		return 0
	}

	log.Info().Int("count", len(ids)).Msg("completing finished sessions")

	done := 0
	for _, id := range ids {
		err := s.bookingRepo.UpdateStatus(ctx, id, domain.BookingConfirmed, domain.BookingCompleted)
		if errors.Is(err, context.Canceled) {
			return done
		}
		if err != nil {
			log.Warn().Err(err).Str("booking_id", id.String()).Msg("failed to complete booking")
			continue
		}
		done++
	}

	return done
}
