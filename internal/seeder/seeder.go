package seeder

import (
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"petsitter-backend/internal/domain"
)

// Run seeds demo listings and applications on startup. Each step is skipped
// when rows already exist; failures are logged and never abort startup.
func Run(db *gorm.DB) {
	if err := seedListings(db); err != nil {
		log.Error().Err(err).Msg("Error seeding listings")
	}
	if err := seedApplications(db); err != nil {
		log.Error().Err(err).Msg("Error seeding applications")
	}
}

func seedListings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Listing{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("Listings already exist, skipping seeding")
		return nil
	}

	listings := []domain.Listing{
		{
			OwnerID:        "owner1",
			Title:          "Liebevolle Betreuung für Golden Retriever",
			Description:    "Suche einen erfahrenen Hundesitter für meinen 3-jährigen Golden Retriever Max während meines Urlaubs. Er ist sehr freundlich und gut erzogen.",
			Species:        domain.SpeciesDog,
			ListingTypes:   datatypes.NewJSONSlice([]domain.ListingType{domain.ListingTypeHouseSitting, domain.ListingTypeWalks}),
			StartDate:      "2025-07-15",
			EndDate:        "2025-07-25",
			SitterVerified: true,
			Price:          35.0,
			Breed:          "Golden Retriever",
			Age:            3,
			Size:           "Groß",
			Feeding:        "2x täglich, Trockenfutter",
			Medication:     "Keine",
		},
		{
			OwnerID:        "owner2",
			Title:          "Katzensitting für verschmuste Maine Coon",
			Description:    "Meine Maine Coon Katze Luna braucht liebevolle Betreuung. Sie ist sehr anhänglich und braucht viel Aufmerksamkeit.",
			Species:        domain.SpeciesCat,
			ListingTypes:   datatypes.NewJSONSlice([]domain.ListingType{domain.ListingTypeDropInVisit, domain.ListingTypeFeeding}),
			StartDate:      "2025-07-20",
			EndDate:        "2025-07-30",
			SitterVerified: false,
			Price:          25.0,
			Breed:          "Maine Coon",
			Age:            5,
			Size:           "Groß",
			Feeding:        "3x täglich, Nassfutter",
			Medication:     "Keine",
		},
		{
			OwnerID:        "owner3",
			Title:          "Betreuung für Wellensittich-Paar",
			Description:    "Suche jemanden, der sich um meine beiden Wellensittiche Pippo und Pippi kümmert. Sie sind sehr gesellig und brauchen tägliche Aufmerksamkeit.",
			Species:        domain.SpeciesBird,
			ListingTypes:   datatypes.NewJSONSlice([]domain.ListingType{domain.ListingTypeDropInVisit, domain.ListingTypeFeeding}),
			StartDate:      "2025-08-01",
			EndDate:        "2025-08-10",
			SitterVerified: true,
			Price:          15.0,
			Breed:          "Wellensittich",
			Age:            2,
			Size:           "Klein",
			Feeding:        "1x täglich, Körnermischung",
			Medication:     "Keine",
		},
	}
	if err := db.Create(&listings).Error; err != nil {
		return err
	}
	log.Info().Int("count", len(listings)).Msg("Successfully seeded listings")
	return nil
}

func seedApplications(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Application{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("Applications already exist, skipping seeding")
		return nil
	}

	var listings []domain.Listing
	if err := db.Order("id ASC").Find(&listings).Error; err != nil {
		return err
	}
	if len(listings) < 3 {
		log.Info().Msg("No listings found, skipping application seeding")
		return nil
	}

	// sitter2 was accepted on the first listing, so sitter1's bid is rejected.
	apps := []domain.Application{
		{ListingID: listings[0].ID, SitterID: "sitter1", Status: domain.StatusRejected},
		{ListingID: listings[0].ID, SitterID: "sitter2", Status: domain.StatusAccepted},
		{ListingID: listings[1].ID, SitterID: "sitter3", Status: domain.StatusPending},
		{ListingID: listings[2].ID, SitterID: "sitter1", Status: domain.StatusRejected},
	}
	if err := db.Create(&apps).Error; err != nil {
		return err
	}
	log.Info().Int("count", len(apps)).Msg("Successfully seeded applications")
	return nil
}
