package domain

import (
	"time"

	"github.com/google/uuid"
)

type PhotographerProfile struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	HourlyRate      Money     `json:"hourly_rate_cents"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	Specialties     []string  `json:"specialties"`
	Availability    bool      `json:"availability"`
	PortfolioImages []string  `json:"portfolio_images"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Photographer is a profile joined with its owning user's public fields.
type Photographer struct {
	PhotographerProfile
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// HasAnySpecialty reports whether p offers at least one of wanted.
func (p *PhotographerProfile) HasAnySpecialty(wanted []string) bool {
	for _, s := range p.Specialties {
		for _, w := range wanted {
			if s == w {
				return true
			}
		}
	}
	return false
}
