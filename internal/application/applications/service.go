package applications

import (
	"context"
	"errors"
	"strings"
	"sync"

	"petsitter-backend/internal/domain"
	"petsitter-backend/internal/pkg/apperrors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Apply creates a pending application from sitterID on listingID. A sitter may
// hold at most one application per listing, whatever its current status.
func (s *Service) Apply(ctx context.Context, sitterID string, listingID uint) (*domain.Application, error) {
	sitterID = strings.TrimSpace(sitterID)
	if sitterID == "" {
		return nil, apperrors.Validationf("sitterId cannot be empty")
	}

	var listing domain.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("Listing with ID %d not found", listingID)
		}
		log.Error().Err(err).Uint("listing_id", listingID).Msg("Unexpected error loading listing")
		return nil, apperrors.Internalf("Failed to create application. Please try again.")
	}

	var existing []domain.Application
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Find(&existing).Error; err != nil {
		log.Error().Err(err).Uint("listing_id", listingID).Msg("Unexpected error loading applications")
		return nil, apperrors.Internalf("Failed to create application. Please try again.")
	}
	for i := range existing {
		if existing[i].SitterID == sitterID {
			return nil, apperrors.Conflictf("Sitter %s has already applied to listing %d", sitterID, listingID)
		}
	}

	app := &domain.Application{
		ListingID: listingID,
		SitterID:  sitterID,
		Status:    domain.StatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		log.Error().Err(err).Uint("listing_id", listingID).Msg("Unexpected error creating application")
		return nil, apperrors.Internalf("Failed to create application. Please try again.")
	}
	return app, nil
}

// UpdateStatus writes the new status on the application. Accepting additionally
// enforces the start-date guard (revert to pending when the listing already
// started) and cascades a rejection over every pending sibling so that at most
// one application per listing is accepted.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status domain.ApplicationStatus) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, apperrors.Validationf("status must be one of: pending, accepted, rejected")
	}

	var app domain.Application
	if err := s.DB.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("Application with ID %d not found", id)
		}
		log.Error().Err(err).Uint("application_id", id).Msg("Unexpected error loading application")
		return nil, apperrors.Internalf("Failed to update application status. Please try again.")
	}

	if err := s.writeStatus(ctx, id, status); err != nil {
		log.Error().Err(err).Uint("application_id", id).Msg("Unexpected error updating application status")
		return nil, apperrors.Internalf("Failed to update application status. Please try again.")
	}
	app.Status = status

	if status == domain.StatusAccepted {
		if err := s.guardListingNotStarted(ctx, &app); err != nil {
			return nil, err
		}
		if err := s.rejectSiblings(ctx, &app); err != nil {
			return nil, err
		}
	}
	return &app, nil
}

// BySitter returns all applications by sitterID enriched with their parent
// listing, most recent first.
func (s *Service) BySitter(ctx context.Context, sitterID string) ([]domain.Application, error) {
	var apps []domain.Application
	if err := s.DB.WithContext(ctx).Preload("Listing").Where("sitter_id = ?", sitterID).Order("id DESC").Find(&apps).Error; err != nil {
		return nil, apperrors.Internalf("Failed to retrieve applications. Please try again.")
	}
	return apps, nil
}

// ByListing returns all applications on listingID in insertion order.
func (s *Service) ByListing(ctx context.Context, listingID uint) ([]domain.Application, error) {
	var apps []domain.Application
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("id ASC").Find(&apps).Error; err != nil {
		return nil, apperrors.Internalf("Failed to retrieve applications. Please try again.")
	}
	return apps, nil
}

func (s *Service) writeStatus(ctx context.Context, id uint, status domain.ApplicationStatus) error {
	return s.DB.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).Update("status", status).Error
}

// guardListingNotStarted refuses an acceptance once the listing's start date
// is in the past. The already-written accepted status is reverted to pending
// before the error returns.
func (s *Service) guardListingNotStarted(ctx context.Context, app *domain.Application) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).First(&listing, app.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned application; nothing to guard against.
			return nil
		}
		log.Error().Err(err).Uint("listing_id", app.ListingID).Msg("Unexpected error loading listing for date guard")
		return apperrors.Internalf("Failed to update application status. Please try again.")
	}
	start, ok := domain.ParseISODate(listing.StartDate)
	if !ok || !start.Before(domain.Today()) {
		return nil
	}
	if err := s.writeStatus(ctx, app.ID, domain.StatusPending); err != nil {
		log.Error().Err(err).Uint("application_id", app.ID).Msg("Failed to revert application status")
		return apperrors.Internalf("Failed to update application status. Please try again.")
	}
	app.Status = domain.StatusPending
	return apperrors.Validationf("Cannot accept applications for listings that have already started")
}

// rejectSiblings auto-rejects every pending application on the same listing.
// The writes target disjoint rows and run concurrently. On a partial failure
// the acceptance stands and an internal error reports the inconsistent state.
func (s *Service) rejectSiblings(ctx context.Context, accepted *domain.Application) error {
	var siblings []domain.Application
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", accepted.ListingID).Find(&siblings).Error; err != nil {
		log.Error().Err(err).Uint("listing_id", accepted.ListingID).Msg("Failed to load applications for auto-rejection")
		return apperrors.Internalf("Application accepted but failed to reject other applications. Please verify listing status.")
	}

	var toReject []uint
	for i := range siblings {
		if siblings[i].ID != accepted.ID && siblings[i].Status == domain.StatusPending {
			toReject = append(toReject, siblings[i].ID)
		}
	}
	if len(toReject) == 0 {
		return nil
	}

	log.Info().
		Int("count", len(toReject)).
		Uint("listing_id", accepted.ListingID).
		Msg("Auto-rejecting other applications")

	var wg sync.WaitGroup
	errs := make([]error, len(toReject))
	for i, rejectID := range toReject {
		wg.Add(1)
		go func(i int, rejectID uint) {
			defer wg.Done()
			errs[i] = s.writeStatus(ctx, rejectID, domain.StatusRejected)
		}(i, rejectID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Error().Err(err).
				Uint("listing_id", accepted.ListingID).
				Msg("Failed to auto-reject other applications")
			return apperrors.Internalf("Application accepted but failed to reject other applications. Please verify listing status.")
		}
	}

	log.Info().
		Int("count", len(toReject)).
		Uint("listing_id", accepted.ListingID).
		Msg("Successfully auto-rejected applications")
	return nil
}
