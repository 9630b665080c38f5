package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

const usersTable = "users"

var userColumns = []interface{}{"id", "email", "name", "role", "avatar", "created_at"}

// UserRepository reads the accounts owned by the identity provider.
type UserRepository struct {
	db *sql.DB
	qb *goqu.Database
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, qb: goqu.New("postgres", db)}
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query, args, err := r.qb.Select(userColumns...).
		From(usersTable).
		Where(goqu.Ex{"id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return u, nil
}

// ListByIDs returns the users that exist among userIDs; unknown ids are
// silently absent from the result.
func (r *UserRepository) ListByIDs(ctx context.Context, userIDs []uuid.UUID) ([]domain.User, error) {
	users := []domain.User{}
	if len(userIDs) == 0 {
		return users, nil
	}

	query, args, err := r.qb.Select(userColumns...).
		From(usersTable).
		Where(goqu.C("id").In(userIDs)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}

	return users, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u      domain.User
		role   string
		avatar sql.NullString
	)

	if err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &avatar, &u.CreatedAt); err != nil {
		return nil, err
	}

	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("user %s has unknown role %q", u.ID, role)
	}

	u.Role = parsed
	u.Avatar = avatar.String

	return &u, nil
}
