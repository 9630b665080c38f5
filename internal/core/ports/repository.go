package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListByIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.User, error)
}

type PhotographerRepository interface {
	ListAll(ctx context.Context) ([]domain.Photographer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Photographer, error)
	Upsert(ctx context.Context, profile *domain.PhotographerProfile) error
	UpdatePortfolio(ctx context.Context, userID uuid.UUID, images []string) error
	UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, reviewCount int) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	// UpdateStatus moves a booking from one status to the next and fails with
	// a conflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Booking, error)
	ListByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	// GetFinishedSessions returns confirmed bookings whose session ended
	// at or before asOf.
	GetFinishedSessions(ctx context.Context, asOf time.Time) ([]uuid.UUID, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	ListByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]domain.Review, error)
	ListAll(ctx context.Context) ([]domain.Review, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Message, error)
	// MarkRead flags every unread message from senderID to receiverID as read
	// and returns how many were changed.
	MarkRead(ctx context.Context, receiverID, senderID uuid.UUID) (int64, error)
}

// CatalogCache holds the joined photographer catalog between writes.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Photographer, bool, error)
	Set(ctx context.Context, catalog []domain.Photographer) error
	Invalidate(ctx context.Context) error
}
