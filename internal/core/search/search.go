// Package search filters and orders the photographer catalog for the
// marketplace search page.
package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

type SortKey string

const (
	SortByRating    SortKey = "rating"
	SortByPriceAsc  SortKey = "price-low"
	SortByPriceDesc SortKey = "price-high"
	SortByReviews   SortKey = "reviews"
)

const MaxRating = 5.0

// ParseSortKey maps a wire value onto a SortKey. The empty string selects
// SortByRating.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByRating, nil
	case SortByRating, SortByPriceAsc, SortByPriceDesc, SortByReviews:
		return SortKey(s), nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown sort key %q", s))
}

// Criteria is the set of constraints of one search. Empty strings, an empty
// specialty list, MinPrice 0, MaxPrice NoPriceCap and MinRating 0 impose no
// constraint; start from DefaultCriteria.
type Criteria struct {
	NameQuery     string
	LocationQuery string
	Specialties   []string
	MinPrice      domain.Money
	MaxPrice      domain.Money
	MinRating     float64
	SortKey       SortKey
}

func DefaultCriteria() Criteria {
	return Criteria{
		MaxPrice: domain.NoPriceCap,
		SortKey:  SortByRating,
	}
}

// Validate rejects malformed criteria. An inverted price range is not
// malformed; it simply matches nobody.
func (c Criteria) Validate() error {
	if c.MinPrice < 0 || c.MaxPrice < 0 {
		return apperrors.NewValidationError("price bounds must not be negative")
	}
	if c.MinRating < 0 || c.MinRating > MaxRating {
		return apperrors.NewValidationError("minimum rating must be between 0 and 5")
	}
	if _, err := ParseSortKey(string(c.SortKey)); err != nil {
		return err
	}
	return nil
}

// Matches reports whether p satisfies every constraint of c.
func Matches(p *domain.Photographer, c Criteria) bool {
	if c.NameQuery != "" && !containsFold(p.Name, c.NameQuery) {
		return false
	}
	if c.LocationQuery != "" && !containsFold(p.Location, c.LocationQuery) {
		return false
	}
	if len(c.Specialties) > 0 && !p.HasAnySpecialty(c.Specialties) {
		return false
	}
	if p.HourlyRate < c.MinPrice || p.HourlyRate > c.MaxPrice {
		return false
	}
	return p.Rating >= c.MinRating
}

// Compare returns the ordering function for key, suitable for
// slices.SortStableFunc.
func Compare(key SortKey) func(a, b domain.Photographer) int {
	switch key {
	case SortByPriceAsc:
		return func(a, b domain.Photographer) int { return cmp.Compare(a.HourlyRate, b.HourlyRate) }
	case SortByPriceDesc:
		return func(a, b domain.Photographer) int { return cmp.Compare(b.HourlyRate, a.HourlyRate) }
	case SortByReviews:
		return func(a, b domain.Photographer) int { return cmp.Compare(b.ReviewCount, a.ReviewCount) }
	default:
		return func(a, b domain.Photographer) int { return cmp.Compare(b.Rating, a.Rating) }
	}
}

// Search returns the photographers of all matching c, stably ordered by
// c.SortKey. The input slice is left untouched.
func Search(all []domain.Photographer, c Criteria) ([]domain.Photographer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := make([]domain.Photographer, 0, len(all))
	if c.MaxPrice < c.MinPrice {
		return result, nil
	}

	for i := range all {
		if Matches(&all[i], c) {
			result = append(result, all[i])
		}
	}

	slices.SortStableFunc(result, Compare(c.SortKey))
	return result, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

