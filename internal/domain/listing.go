package domain

import (
	"gorm.io/datatypes"
)

// Species of the pet a listing is about.
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesExotic Species = "exotic"
	SpeciesOther  Species = "other"
)

// SpeciesValues lists every valid species, in validation-message order.
var SpeciesValues = []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesExotic, SpeciesOther}

// ListingType is one kind of care a listing asks for. A listing carries a set of them.
type ListingType string

const (
	ListingTypeHouseSitting ListingType = "house-sitting"
	ListingTypeDropInVisit  ListingType = "drop-in-visit"
	ListingTypeDayCare      ListingType = "day-care"
	ListingTypeWalks        ListingType = "walks"
	ListingTypeFeeding      ListingType = "feeding"
	ListingTypeOvernight    ListingType = "overnight"
)

// ListingTypeValues lists every valid listing type, in validation-message order.
var ListingTypeValues = []ListingType{
	ListingTypeHouseSitting,
	ListingTypeDropInVisit,
	ListingTypeDayCare,
	ListingTypeWalks,
	ListingTypeFeeding,
	ListingTypeOvernight,
}

// ValidSpecies reports whether s is a known species.
func ValidSpecies(s Species) bool {
	for _, v := range SpeciesValues {
		if s == v {
			return true
		}
	}
	return false
}

// ValidListingType reports whether t is a known listing type.
func ValidListingType(t ListingType) bool {
	for _, v := range ListingTypeValues {
		if t == v {
			return true
		}
	}
	return false
}

// Listing is an owner's posted pet-care request. Dates are ISO YYYY-MM-DD strings;
// the listing-type set is stored as a json array column so the API sends it as an array.
type Listing struct {
	ID             uint                             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OwnerID        string                           `gorm:"column:owner_id;not null;index" json:"ownerId"`
	Title          string                           `gorm:"column:title;not null" json:"title"`
	Description    string                           `gorm:"column:description;not null" json:"description"`
	Species        Species                          `gorm:"column:species;type:varchar(20);not null" json:"species"`
	ListingTypes   datatypes.JSONSlice[ListingType] `gorm:"column:listing_type;type:json" json:"listingType"`
	StartDate      string                           `gorm:"column:start_date;type:varchar(10);not null" json:"startDate"`
	EndDate        string                           `gorm:"column:end_date;type:varchar(10);not null" json:"endDate"`
	SitterVerified bool                             `gorm:"column:sitter_verified;default:false" json:"sitterVerified"`
	Price          float64                          `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Breed          string                           `gorm:"column:breed" json:"breed,omitempty"`
	Age            int                              `gorm:"column:age" json:"age,omitempty"`
	Size           string                           `gorm:"column:size" json:"size,omitempty"`
	Feeding        string                           `gorm:"column:feeding" json:"feeding,omitempty"`
	Medication     string                           `gorm:"column:medication" json:"medication,omitempty"`

	Applications []Application `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// HasListingType reports whether the listing's type set contains t.
func (l *Listing) HasListingType(t ListingType) bool {
	for _, v := range l.ListingTypes {
		if v == t {
			return true
		}
	}
	return false
}
