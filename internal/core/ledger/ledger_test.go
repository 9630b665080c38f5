package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/ledger"
	"github.com/stretchr/testify/assert"
)

var asOf = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func booking(status domain.BookingStatus, date time.Time, price domain.Money) domain.Booking {
	return domain.Booking{
		ID:            uuid.New(),
		Status:        status,
		Date:          date,
		DurationHours: 2,
		TotalPrice:    price,
	}
}

func ids(bs []domain.Booking) []uuid.UUID {
	out := make([]uuid.UUID, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestPartition(t *testing.T) {
	pendingPast := booking(domain.BookingPending, asOf.AddDate(0, 0, -3), 100)
	pendingFuture := booking(domain.BookingPending, asOf.AddDate(0, 0, 3), 100)
	upcoming := booking(domain.BookingConfirmed, asOf.Add(time.Hour), 100)
	lapsed := booking(domain.BookingConfirmed, asOf, 100)
	completedFuture := booking(domain.BookingCompleted, asOf.AddDate(0, 1, 0), 100)
	cancelled := booking(domain.BookingCancelled, asOf.AddDate(0, 0, 1), 100)

	b := ledger.Partition([]domain.Booking{pendingPast, pendingFuture, upcoming, lapsed, completedFuture, cancelled}, asOf)

	assert.Equal(t, []uuid.UUID{pendingPast.ID, pendingFuture.ID}, ids(b.Pending))
	assert.Equal(t, []uuid.UUID{upcoming.ID}, ids(b.Upcoming))
	assert.Equal(t, []uuid.UUID{completedFuture.ID}, ids(b.Completed))
	assert.Equal(t, []uuid.UUID{cancelled.ID}, ids(b.Cancelled))
	assert.Equal(t, []uuid.UUID{lapsed.ID}, ids(b.AwaitingCompletion))
}

func TestPartition_BucketsAreDisjoint(t *testing.T) {
	var all []domain.Booking
	for i := -5; i <= 5; i++ {
		date := asOf.AddDate(0, 0, i)
		for _, s := range []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled} {
			all = append(all, booking(s, date, 100))
		}
	}

	b := ledger.Partition(all, asOf)

	seen := map[uuid.UUID]int{}
	for _, bucket := range [][]domain.Booking{b.Upcoming, b.Pending, b.Completed, b.Cancelled, b.AwaitingCompletion} {
		for _, bk := range bucket {
			seen[bk.ID]++
		}
	}
	assert.Len(t, seen, len(all))
	for id, n := range seen {
		assert.Equal(t, 1, n, id.String())
	}
}

func TestPartition_Empty(t *testing.T) {
	b := ledger.Partition(nil, asOf)
	assert.Empty(t, b.Pending)
	assert.NotNil(t, b.Upcoming)
}

func TestHistory(t *testing.T) {
	completed := booking(domain.BookingCompleted, asOf.AddDate(0, 0, 2), 100)
	pastCancelled := booking(domain.BookingCancelled, asOf.AddDate(0, 0, -2), 100)
	future := booking(domain.BookingConfirmed, asOf.AddDate(0, 0, 2), 100)

	past := ledger.History([]domain.Booking{completed, pastCancelled, future}, asOf)

	assert.Equal(t, []uuid.UUID{completed.ID, pastCancelled.ID}, ids(past))
}

func TestTotalRevenue(t *testing.T) {
	bookings := []domain.Booking{
		booking(domain.BookingCompleted, asOf, 30000),
		booking(domain.BookingCompleted, asOf, 20000),
		booking(domain.BookingPending, asOf, 10000),
	}

	assert.Equal(t, domain.Money(50000), ledger.TotalRevenue(bookings))
	assert.Equal(t, domain.Money(0), ledger.TotalRevenue(nil))
	assert.Equal(t, domain.Money(0), ledger.TotalRevenue(bookings[2:]))
}

func TestMonthlyRevenue(t *testing.T) {
	bookings := []domain.Booking{
		booking(domain.BookingCompleted, asOf.AddDate(0, 0, -10), 30000),
		booking(domain.BookingCompleted, asOf.AddDate(0, -1, 0), 20000),
		booking(domain.BookingConfirmed, asOf.AddDate(0, 0, 5), 10000),
		// Same month number a year earlier still counts.
		booking(domain.BookingCompleted, asOf.AddDate(-1, 0, 0), 5000),
	}

	assert.Equal(t, domain.Money(35000), ledger.MonthlyRevenue(bookings, asOf))
	assert.Equal(t, 3, ledger.MonthlyBookingCount(bookings, asOf))
}

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, domain.Money(7500), ledger.PlatformFee(50000))
	assert.Equal(t, domain.Money(14), ledger.PlatformFee(99))
	assert.Equal(t, domain.Money(0), ledger.PlatformFee(0))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, ledger.AverageRating(nil))

	reviews := []domain.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}, {Rating: 3}}
	assert.InDelta(t, 4.0, ledger.AverageRating(reviews), 1e-9)
}

func TestStatusCounts(t *testing.T) {
	counts := ledger.StatusCounts([]domain.Booking{
		booking(domain.BookingPending, asOf, 1),
		booking(domain.BookingPending, asOf, 1),
		booking(domain.BookingCompleted, asOf, 1),
	})

	assert.Equal(t, 2, counts[domain.BookingPending])
	assert.Equal(t, 1, counts[domain.BookingCompleted])
	assert.Equal(t, 0, counts[domain.BookingCancelled])
}
