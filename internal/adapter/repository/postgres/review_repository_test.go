package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.Create(context.Background(), &domain.Review{ID: uuid.New(), BookingID: uuid.New(), Rating: 5})

	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConflict))
}

func TestReviewRepository_ExistsForBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	bookingID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "reviews" WHERE ("booking_id" = '` + bookingID.String() + `')`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsForBooking(context.Background(), bookingID)

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReviewRepository_ListByPhotographer(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	photographerID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("photographer_id" = '` + photographerID.String() + `') ORDER BY "created_at" DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "client_id", "photographer_id", "rating", "comment", "created_at"}).
			AddRow(uuid.NewString(), uuid.NewString(), uuid.NewString(), photographerID.String(), 4, "Lovely", time.Now()).
			AddRow(uuid.NewString(), uuid.NewString(), uuid.NewString(), photographerID.String(), 5, "Great", time.Now()))

	reviews, err := repo.ListByPhotographer(context.Background(), photographerID)

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "Great", reviews[1].Comment)
}
