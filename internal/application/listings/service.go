package listings

import (
	"context"
	"errors"
	"strings"

	"petsitter-backend/internal/domain"
	"petsitter-backend/internal/pkg/apperrors"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxResults caps unbounded listing queries (most recent first).
const maxResults = 100

type Service struct {
	DB *gorm.DB
}

type CreateListingInput struct {
	OwnerID        string
	Title          string
	Description    string
	Species        domain.Species
	ListingTypes   []domain.ListingType
	StartDate      string
	EndDate        string
	SitterVerified bool
	Price          float64
	Breed          string
	Age            int
	Size           string
	Feeding        string
	Medication     string
}

func validateCreate(in CreateListingInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Validationf("title should not be empty")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperrors.Validationf("description should not be empty")
	}
	if strings.TrimSpace(in.OwnerID) == "" {
		return apperrors.Validationf("ownerId should not be empty")
	}
	if in.Price < 0 {
		return apperrors.Validationf("price must not be less than 0")
	}
	if in.Age < 0 {
		return apperrors.Validationf("age must not be less than 0")
	}
	if !domain.ValidSpecies(in.Species) {
		return apperrors.Validationf("species must be one of: dog, cat, bird, exotic, other")
	}
	if len(in.ListingTypes) == 0 {
		return apperrors.Validationf("listingType must not be empty")
	}
	seen := make(map[domain.ListingType]bool, len(in.ListingTypes))
	for _, t := range in.ListingTypes {
		if !domain.ValidListingType(t) {
			return apperrors.Validationf("each listingType must be one of: house-sitting, drop-in-visit, day-care, walks, feeding, overnight")
		}
		if seen[t] {
			return apperrors.Validationf("listingType values must be unique")
		}
		seen[t] = true
	}

	start, ok := domain.ParseISODate(in.StartDate)
	if !ok {
		return apperrors.Validationf("startDate must be a valid ISO 8601 date string")
	}
	end, ok := domain.ParseISODate(in.EndDate)
	if !ok {
		return apperrors.Validationf("endDate must be a valid ISO 8601 date string")
	}
	if start.Before(domain.Today()) {
		return apperrors.Validationf("Start date cannot be in the past")
	}
	if !end.After(start) {
		return apperrors.Validationf("End date must be after start date")
	}
	return nil
}

// Create validates and persists a new listing.
func (s *Service) Create(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	listing := &domain.Listing{
		OwnerID:        in.OwnerID,
		Title:          in.Title,
		Description:    in.Description,
		Species:        in.Species,
		ListingTypes:   datatypes.NewJSONSlice(in.ListingTypes),
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		SitterVerified: in.SitterVerified,
		Price:          in.Price,
		Breed:          in.Breed,
		Age:            in.Age,
		Size:           in.Size,
		Feeding:        in.Feeding,
		Medication:     in.Medication,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		log.Error().Err(err).Msg("Unexpected error creating listing")
		return nil, apperrors.Internalf("Failed to create listing. Please try again.")
	}
	return listing, nil
}

// Filter holds the optional FindAll criteria. Nil fields are not applied;
// unparsable values never reach here — the HTTP layer drops them during coercion.
type Filter struct {
	ID             *uint
	OwnerID        *string
	Title          *string
	Description    *string
	Species        *domain.Species
	ListingType    *domain.ListingType
	StartDate      *string
	EndDate        *string
	SitterVerified *bool
	Price          *float64
	Age            *int
	Breed          *string
	Size           *string
	Feeding        *string
	Medication     *string
}

func (f Filter) validate() error {
	if f.Species != nil && !domain.ValidSpecies(*f.Species) {
		return apperrors.Validationf("species must be one of: dog, cat, bird, exotic, other")
	}
	if f.ListingType != nil && !domain.ValidListingType(*f.ListingType) {
		return apperrors.Validationf("each listingType must be one of: house-sitting, drop-in-visit, day-care, walks, feeding, overnight")
	}
	return nil
}

// FindAll returns listings matching the filter, newest first, capped at 100.
// Equality filters run in SQL; listing-type set membership is evaluated
// in-process since json array containment is not portable across sqlite
// and Postgres.
func (s *Service) FindAll(ctx context.Context, f Filter) ([]domain.Listing, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).Model(&domain.Listing{}).Order("id DESC")
	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.Title != nil {
		q = q.Where("title = ?", *f.Title)
	}
	if f.Description != nil {
		q = q.Where("description = ?", *f.Description)
	}
	if f.Species != nil {
		q = q.Where("species = ?", *f.Species)
	}
	if f.StartDate != nil {
		q = q.Where("start_date = ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("end_date = ?", *f.EndDate)
	}
	if f.SitterVerified != nil {
		q = q.Where("sitter_verified = ?", *f.SitterVerified)
	}
	if f.Price != nil {
		q = q.Where("price = ?", *f.Price)
	}
	if f.Age != nil {
		q = q.Where("age = ?", *f.Age)
	}
	if f.Breed != nil {
		q = q.Where("breed = ?", *f.Breed)
	}
	if f.Size != nil {
		q = q.Where("size = ?", *f.Size)
	}
	if f.Feeding != nil {
		q = q.Where("feeding = ?", *f.Feeding)
	}
	if f.Medication != nil {
		q = q.Where("medication = ?", *f.Medication)
	}
	if f.ListingType == nil {
		q = q.Limit(maxResults)
	}

	var listings []domain.Listing
	if err := q.Find(&listings).Error; err != nil {
		log.Error().Err(err).Msg("Unexpected error retrieving listings")
		return nil, apperrors.Internalf("Failed to retrieve listings. Please try again.")
	}

	if f.ListingType != nil {
		matched := listings[:0]
		for i := range listings {
			if listings[i].HasListingType(*f.ListingType) {
				matched = append(matched, listings[i])
				if len(matched) == maxResults {
					break
				}
			}
		}
		listings = matched
	}
	return listings, nil
}

// FindByOwner returns all listings posted by ownerID, newest first.
func (s *Service) FindByOwner(ctx context.Context, ownerID string) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id DESC").Find(&listings).Error; err != nil {
		return nil, apperrors.Internalf("Failed to retrieve listings. Please try again.")
	}
	return listings, nil
}

// FindOne returns the listing or a not-found error.
func (s *Service) FindOne(ctx context.Context, id uint) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("Listing with ID %d not found", id)
		}
		return nil, apperrors.Internalf("Failed to retrieve listings. Please try again.")
	}
	return &listing, nil
}

// FindOneWithApplications returns the listing with its applications eagerly loaded.
func (s *Service) FindOneWithApplications(ctx context.Context, id uint) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Preload("Applications").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("Listing with ID %d not found", id)
		}
		return nil, apperrors.Internalf("Failed to retrieve listings. Please try again.")
	}
	return &listing, nil
}
