package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

const bookingsTable = "bookings"

// finishedSessionsBatch caps how many bookings one sweep pass picks up.
const finishedSessionsBatch = 100

var bookingColumns = []interface{}{
	"id", "client_id", "photographer_id", "date", "duration_hours",
	"location", "type", "status", "total_price_cents", "notes", "created_at",
}

type BookingRepository struct {
	db *sql.DB
	qb *goqu.Database
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db, qb: goqu.New("postgres", db)}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query, args, err := r.qb.Insert(bookingsTable).Rows(goqu.Record{
		"id":                booking.ID,
		"client_id":         booking.ClientID,
		"photographer_id":   booking.PhotographerID,
		"date":              booking.Date,
		"duration_hours":    booking.DurationHours,
		"location":          booking.Location,
		"type":              booking.Type,
		"status":            booking.Status,
		"total_price_cents": int64(booking.TotalPrice),
		"notes":             booking.Notes,
		"created_at":        booking.CreatedAt,
		"updated_at":        booking.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("booking already exists")
		}
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query, args, err := r.qb.Select(bookingColumns...).
		From(bookingsTable).
		Where(goqu.Ex{"id": bookingID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

// UpdateStatus only touches the row while it still carries status from, so
// two racing transitions cannot both win.
func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, from, to domain.BookingStatus) error {
	query, args, err := r.qb.Update(bookingsTable).
		Set(goqu.Record{"status": to, "updated_at": time.Now().UTC()}).
		Where(goqu.Ex{"id": bookingID, "status": from}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read affected rows", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewConflictError(fmt.Sprintf("booking %s is no longer %s", bookingID, from))
	}

	return nil
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx, goqu.Ex{"client_id": clientID})
}

func (r *BookingRepository) ListByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]domain.Booking, error) {
	return r.list(ctx, goqu.Ex{"photographer_id": photographerID})
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return r.list(ctx)
}

func (r *BookingRepository) GetFinishedSessions(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	endsAt := goqu.L("? + make_interval(hours => ?)", goqu.C("date"), goqu.C("duration_hours"))

	query, args, err := r.qb.Select("id").
		From(bookingsTable).
		Where(
			goqu.C("status").Eq(domain.BookingConfirmed),
			endsAt.Lte(asOf.UTC()),
		).
		Order(goqu.C("date").Asc()).
		Limit(finishedSessionsBatch).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query finished sessions", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking id", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate finished sessions", err)
	}

	return ids, nil
}

func (r *BookingRepository) list(ctx context.Context, where ...exp.Expression) ([]domain.Booking, error) {
	query, args, err := r.qb.Select(bookingColumns...).
		From(bookingsTable).
		Where(where...).
		Order(goqu.C("date").Asc(), goqu.C("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b      domain.Booking
		status string
		price  int64
		notes  sql.NullString
	)

	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.PhotographerID,
		&b.Date,
		&b.DurationHours,
		&b.Location,
		&b.Type,
		&status,
		&price,
		&notes,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, ok := domain.ParseBookingStatus(status)
	if !ok {
		return nil, fmt.Errorf("booking %s has unknown status %q", b.ID, status)
	}

	b.Status = parsed
	b.TotalPrice = domain.Money(price)
	b.Notes = notes.String

	return &b, nil
}
