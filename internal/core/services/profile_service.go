package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/ports"
)

const maxPortfolioImages = 50

type UpdateProfileRequest struct {
	Bio             string   `json:"bio"`
	Location        string   `json:"location"`
	HourlyRateCents int64    `json:"hourly_rate_cents"`
	Specialties     []string `json:"specialties"`
	Availability    bool     `json:"availability"`
}

type AddPortfolioImageRequest struct {
	ImageRef string `json:"image_ref"`
}

// ProfileService covers photographer setup, settings and portfolio edits.
type ProfileService struct {
	photographerRepo ports.PhotographerRepository
	catalog          *SearchService
	now              func() time.Time
}

func NewProfileService(photographerRepo ports.PhotographerRepository, catalog *SearchService) *ProfileService {
	return &ProfileService{
		photographerRepo: photographerRepo,
		catalog:          catalog,
		now:              time.Now,
	}
}

func (s *ProfileService) SaveProfile(ctx context.Context, user domain.Identity, req UpdateProfileRequest) (*domain.PhotographerProfile, error) {
	if user.Role != domain.RolePhotographer {
		return nil, apperrors.NewForbiddenError("only photographers have a profile")
	}

	if req.HourlyRateCents <= 0 {
		return nil, apperrors.NewValidationError("hourly rate must be positive")
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, apperrors.NewValidationError("location is required")
	}

	specialties := normalizeSpecialties(req.Specialties)
	if len(specialties) == 0 {
		return nil, apperrors.NewValidationError("at least one specialty is required")
	}

	profile := domain.PhotographerProfile{
		ID:              uuid.New(),
		UserID:          user.UserID,
		PortfolioImages: []string{},
	}

	existing, err := s.photographerRepo.GetByUserID(ctx, user.UserID)
	switch {
	case err == nil:
		profile = existing.PhotographerProfile
	case !apperrors.Is(err, apperrors.ErrorTypeNotFound):
		return nil, err
	}

	profile.Bio = strings.TrimSpace(req.Bio)
	profile.Location = strings.TrimSpace(req.Location)
	profile.HourlyRate = domain.Money(req.HourlyRateCents)
	profile.Specialties = specialties
	profile.Availability = req.Availability
	profile.UpdatedAt = s.now()

	if err := s.photographerRepo.Upsert(ctx, &profile); err != nil {
		return nil, err
	}
	s.catalog.InvalidateCatalog(ctx)

	log.Info().Str("user_id", user.UserID.String()).Msg("photographer profile saved")
	return &profile, nil
}

func (s *ProfileService) AddPortfolioImage(ctx context.Context, user domain.Identity, ref string) ([]string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperrors.NewValidationError("image reference is required")
	}

	profile, err := s.ownProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	if len(profile.PortfolioImages) >= maxPortfolioImages {
		return nil, apperrors.NewValidationError(fmt.Sprintf("portfolio is limited to %d images", maxPortfolioImages))
	}

	images := append(append([]string{}, profile.PortfolioImages...), ref)
	if err := s.photographerRepo.UpdatePortfolio(ctx, user.UserID, images); err != nil {
		return nil, err
	}
	s.catalog.InvalidateCatalog(ctx)

	return images, nil
}

func (s *ProfileService) RemovePortfolioImage(ctx context.Context, user domain.Identity, index int) ([]string, error) {
	profile, err := s.ownProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(profile.PortfolioImages) {
		return nil, apperrors.NewValidationError("no portfolio image at that position")
	}

	images := make([]string, 0, len(profile.PortfolioImages)-1)
	images = append(images, profile.PortfolioImages[:index]...)
	images = append(images, profile.PortfolioImages[index+1:]...)

	if err := s.photographerRepo.UpdatePortfolio(ctx, user.UserID, images); err != nil {
		return nil, err
	}
	s.catalog.InvalidateCatalog(ctx)

	return images, nil
}

func (s *ProfileService) ownProfile(ctx context.Context, user domain.Identity) (*domain.Photographer, error) {
	if user.Role != domain.RolePhotographer {
		return nil, apperrors.NewForbiddenError("only photographers have a portfolio")
	}
	return s.photographerRepo.GetByUserID(ctx, user.UserID)
}

// normalizeSpecialties trims tags and drops blanks and duplicates, keeping
// first-seen order.
func normalizeSpecialties(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
