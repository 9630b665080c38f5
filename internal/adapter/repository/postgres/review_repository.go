package postgres

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

const reviewsTable = "reviews"

var reviewColumns = []interface{}{
	"id", "booking_id", "client_id", "photographer_id", "rating", "comment", "created_at",
}

type ReviewRepository struct {
	db *sql.DB
	qb *goqu.Database
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db, qb: goqu.New("postgres", db)}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query, args, err := r.qb.Insert(reviewsTable).Rows(goqu.Record{
		"id":              review.ID,
		"booking_id":      review.BookingID,
		"client_id":       review.ClientID,
		"photographer_id": review.PhotographerID,
		"rating":          review.Rating,
		"comment":         review.Comment,
		"created_at":      review.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		// reviews.booking_id is unique
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("booking has already been reviewed")
		}
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query, args, err := r.qb.Select(goqu.COUNT("*")).
		From(reviewsTable).
		Where(goqu.Ex{"booking_id": bookingID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check review", err)
	}

	return count > 0, nil
}

func (r *ReviewRepository) ListByPhotographer(ctx context.Context, photographerID uuid.UUID) ([]domain.Review, error) {
	return r.list(ctx, goqu.Ex{"photographer_id": photographerID})
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	return r.list(ctx)
}

func (r *ReviewRepository) list(ctx context.Context, where ...exp.Expression) ([]domain.Review, error) {
	query, args, err := r.qb.Select(reviewColumns...).
		From(reviewsTable).
		Where(where...).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.BookingID,
			&rv.ClientID,
			&rv.PhotographerID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}
