// Package ledger derives dashboard views and money totals from bookings
// and reviews that have already been loaded.
package ledger

import (
	"time"

	"github.com/srgjo27/shutterbook/internal/core/domain"
)

// PlatformFeePercent is the marketplace commission on completed bookings.
const PlatformFeePercent = 15

// Buckets is the status view of a set of bookings at one instant.
//
// Confirmed bookings whose date is not after asOf belong to none of the four
// named buckets; they are listed in AwaitingCompletion until their status is
// moved on.
type Buckets struct {
	Upcoming           []domain.Booking `json:"upcoming"`
	Pending            []domain.Booking `json:"pending"`
	Completed          []domain.Booking `json:"completed"`
	Cancelled          []domain.Booking `json:"cancelled"`
	AwaitingCompletion []domain.Booking `json:"awaiting_completion"`
}

func Partition(bookings []domain.Booking, asOf time.Time) Buckets {
	b := Buckets{
		Upcoming:           []domain.Booking{},
		Pending:            []domain.Booking{},
		Completed:          []domain.Booking{},
		Cancelled:          []domain.Booking{},
		AwaitingCompletion: []domain.Booking{},
	}

	for _, bk := range bookings {
		switch bk.Status {
		case domain.BookingPending:
			b.Pending = append(b.Pending, bk)
		case domain.BookingConfirmed:
			if bk.Date.After(asOf) {
				b.Upcoming = append(b.Upcoming, bk)
			} else {
				b.AwaitingCompletion = append(b.AwaitingCompletion, bk)
			}
		case domain.BookingCompleted:
			b.Completed = append(b.Completed, bk)
		case domain.BookingCancelled:
			b.Cancelled = append(b.Cancelled, bk)
		}
	}

	return b
}

// History is the client's "past sessions" list: completed bookings plus
// anything dated before asOf.
func History(bookings []domain.Booking, asOf time.Time) []domain.Booking {
	past := []domain.Booking{}
	for _, bk := range bookings {
		if bk.Status == domain.BookingCompleted || bk.Date.Before(asOf) {
			past = append(past, bk)
		}
	}
	return past
}

// TotalRevenue sums the frozen price of completed bookings.
func TotalRevenue(bookings []domain.Booking) domain.Money {
	var total domain.Money
	for _, bk := range bookings {
		if bk.Status == domain.BookingCompleted {
			total += bk.TotalPrice
		}
	}
	return total
}

// MonthlyRevenue sums completed bookings dated in the calendar month of
// asOf. Only the month number is compared, so a completed booking from the
// same month of an earlier year is counted too.
func MonthlyRevenue(bookings []domain.Booking, asOf time.Time) domain.Money {
	var total domain.Money
	for _, bk := range bookings {
		if bk.Status == domain.BookingCompleted && sameMonthNumber(bk.Date, asOf) {
			total += bk.TotalPrice
		}
	}
	return total
}

// MonthlyBookingCount counts bookings of any status dated in the month of
// asOf, with the same month-number rule as MonthlyRevenue.
func MonthlyBookingCount(bookings []domain.Booking, asOf time.Time) int {
	n := 0
	for _, bk := range bookings {
		if sameMonthNumber(bk.Date, asOf) {
			n++
		}
	}
	return n
}

// PlatformFee is the commission owed on revenue, rounded down to the minor
// unit.
func PlatformFee(revenue domain.Money) domain.Money {
	return revenue/100*PlatformFeePercent + revenue%100*PlatformFeePercent/100
}

// AverageRating is the mean review rating, or 0 without reviews.
func AverageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func StatusCounts(bookings []domain.Booking) map[domain.BookingStatus]int {
	counts := map[domain.BookingStatus]int{
		domain.BookingPending:   0,
		domain.BookingConfirmed: 0,
		domain.BookingCompleted: 0,
		domain.BookingCancelled: 0,
	}
	for _, bk := range bookings {
		counts[bk.Status]++
	}
	return counts
}

func sameMonthNumber(t, asOf time.Time) bool {
	return t.In(asOf.Location()).Month() == asOf.Month()
}
