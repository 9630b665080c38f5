package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

const profilesTable = "photographer_profiles"

type PhotographerRepository struct {
	db *sql.DB
	qb *goqu.Database
}

func NewPhotographerRepository(db *sql.DB) *PhotographerRepository {
	return &PhotographerRepository{db: db, qb: goqu.New("postgres", db)}
}

// catalogQuery joins every profile with the public fields of its user.
func (r *PhotographerRepository) catalogQuery(where ...exp.Expression) *goqu.SelectDataset {
	return r.qb.Select(
		"p.id", "p.user_id", "p.bio", "p.location", "p.hourly_rate_cents",
		"p.rating", "p.review_count", "p.specialties", "p.availability",
		"p.portfolio_images", "p.updated_at", "u.name", "u.avatar",
	).
		From(goqu.T(profilesTable).As("p")).
		Join(goqu.T(usersTable).As("u"), goqu.On(goqu.I("p.user_id").Eq(goqu.I("u.id")))).
		Where(where...)
}

func (r *PhotographerRepository) ListAll(ctx context.Context) ([]domain.Photographer, error) {
	query, args, err := r.catalogQuery().Order(goqu.I("u.created_at").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list photographers", err)
	}
	defer rows.Close()

	photographers := []domain.Photographer{}
	for rows.Next() {
		p, err := scanPhotographer(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan photographer", err)
		}
		photographers = append(photographers, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate photographers", err)
	}

	return photographers, nil
}

func (r *PhotographerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Photographer, error) {
	query, args, err := r.catalogQuery(goqu.I("p.user_id").Eq(userID)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	p, err := scanPhotographer(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("photographer %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get photographer", err)
	}

	return p, nil
}

// Upsert keeps one profile per user; rating and review count are owned by
// UpdateRating and are never overwritten here.
func (r *PhotographerRepository) Upsert(ctx context.Context, profile *domain.PhotographerProfile) error {
	query, args, err := r.qb.Insert(profilesTable).
		Rows(goqu.Record{
			"id":                profile.ID,
			"user_id":           profile.UserID,
			"bio":               profile.Bio,
			"location":          profile.Location,
			"hourly_rate_cents": int64(profile.HourlyRate),
			"rating":            profile.Rating,
			"review_count":      profile.ReviewCount,
			"specialties":       textArray(profile.Specialties),
			"availability":      profile.Availability,
			"portfolio_images":  textArray(profile.PortfolioImages),
			"updated_at":        profile.UpdatedAt,
		}).
		OnConflict(goqu.DoUpdate("user_id", goqu.Record{
			"bio":               goqu.I("excluded.bio"),
			"location":          goqu.I("excluded.location"),
			"hourly_rate_cents": goqu.I("excluded.hourly_rate_cents"),
			"specialties":       goqu.I("excluded.specialties"),
			"availability":      goqu.I("excluded.availability"),
			"updated_at":        goqu.I("excluded.updated_at"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to save photographer profile", err)
	}

	return nil
}

func (r *PhotographerRepository) UpdatePortfolio(ctx context.Context, userID uuid.UUID, images []string) error {
	return r.update(ctx, userID, goqu.Record{
		"portfolio_images": textArray(images),
		"updated_at":       time.Now().UTC(),
	})
}

func (r *PhotographerRepository) UpdateRating(ctx context.Context, userID uuid.UUID, rating float64, reviewCount int) error {
	return r.update(ctx, userID, goqu.Record{
		"rating":       rating,
		"review_count": reviewCount,
		"updated_at":   time.Now().UTC(),
	})
}

func (r *PhotographerRepository) update(ctx context.Context, userID uuid.UUID, set goqu.Record) error {
	query, args, err := r.qb.Update(profilesTable).
		Set(set).
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update photographer profile", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read affected rows", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("photographer %s not found", userID))
	}

	return nil
}

func scanPhotographer(row rowScanner) (*domain.Photographer, error) {
	var (
		p      domain.Photographer
		rate   int64
		avatar sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Bio,
		&p.Location,
		&rate,
		&p.Rating,
		&p.ReviewCount,
		pq.Array(&p.Specialties),
		&p.Availability,
		pq.Array(&p.PortfolioImages),
		&p.UpdatedAt,
		&p.Name,
		&avatar,
	)
	if err != nil {
		return nil, err
	}

	p.HourlyRate = domain.Money(rate)
	p.Avatar = avatar.String
	if p.Specialties == nil {
		p.Specialties = []string{}
	}
	if p.PortfolioImages == nil {
		p.PortfolioImages = []string{}
	}

	return &p, nil
}

// textArray maps nil onto an empty array so NOT NULL columns accept it.
func textArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
