package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus maps a stored or wire value onto the closed status set.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// CanTransition reports whether a booking in status s may move to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	case BookingCompleted, BookingCancelled:
		return false
	}
	return false
}

type Booking struct {
	ID             uuid.UUID     `json:"id"`
	ClientID       uuid.UUID     `json:"client_id"`
	PhotographerID uuid.UUID     `json:"photographer_id"`
	Date           time.Time     `json:"date"`
	DurationHours  int           `json:"duration_hours"`
	Location       string        `json:"location"`
	Type           string        `json:"type"`
	Status         BookingStatus `json:"status"`
	TotalPrice     Money         `json:"total_price_cents"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// EndsAt is the moment the booked session is over.
func (b *Booking) EndsAt() time.Time {
	return b.Date.Add(time.Duration(b.DurationHours) * time.Hour)
}

// Involves reports whether userID is the client or the photographer of b.
func (b *Booking) Involves(userID uuid.UUID) bool {
	return b.ClientID == userID || b.PhotographerID == userID
}
