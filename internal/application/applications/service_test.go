package applications

import (
	"context"
	"testing"
	"time"

	"petsitter-backend/internal/domain"
	"petsitter-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.Application{}))
	return &Service{DB: db}, db
}

func isoDate(daysFromNow int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func createListing(t *testing.T, db *gorm.DB, ownerID string, startInDays int) *domain.Listing {
	listing := &domain.Listing{
		OwnerID:      ownerID,
		Title:        "Betreuung gesucht",
		Description:  "Testbeschreibung",
		Species:      domain.SpeciesDog,
		ListingTypes: datatypes.NewJSONSlice([]domain.ListingType{domain.ListingTypeWalks}),
		StartDate:    isoDate(startInDays),
		EndDate:      isoDate(startInDays + 5),
		Price:        20,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func TestApply_CreatesPending(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)

	app, err := svc.Apply(context.Background(), "sitter1", listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.Equal(t, listing.ID, app.ListingID)
	assert.Equal(t, "sitter1", app.SitterID)
	assert.NotZero(t, app.ID)
}

func TestApply_TrimsSitterID(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)

	app, err := svc.Apply(context.Background(), "  sitter1  ", listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "sitter1", app.SitterID)
}

func TestApply_EmptySitterID(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)

	_, err := svc.Apply(context.Background(), "   ", listing.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "sitterId cannot be empty", err.Error())
}

func TestApply_ListingNotFound(t *testing.T) {
	svc, _ := setupTest(t)

	_, err := svc.Apply(context.Background(), "sitter1", 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, "Listing with ID 42 not found", err.Error())
}

func TestApply_DuplicateRejected(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)

	_, err := svc.Apply(context.Background(), "sitter1", listing.ID)
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), "sitter1", listing.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "has already applied")
}

// A duplicate is refused whatever the existing application's status.
func TestApply_DuplicateRejectedRegardlessOfStatus(t *testing.T) {
	for _, status := range domain.ApplicationStatusValues {
		t.Run(string(status), func(t *testing.T) {
			svc, db := setupTest(t)
			listing := createListing(t, db, "owner1", 3)
			require.NoError(t, db.Create(&domain.Application{
				ListingID: listing.ID,
				SitterID:  "sitter1",
				Status:    status,
			}).Error)

			_, err := svc.Apply(context.Background(), "sitter1", listing.ID)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		})
	}
}

func TestApply_SameSitterDifferentListings(t *testing.T) {
	svc, db := setupTest(t)
	first := createListing(t, db, "owner1", 3)
	second := createListing(t, db, "owner2", 4)

	_, err := svc.Apply(context.Background(), "sitter1", first.ID)
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), "sitter1", second.ID)
	require.NoError(t, err)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, db := setupTest(t)

	// Repeated calls fail identically and never mutate rows.
	for i := 0; i < 2; i++ {
		_, err := svc.UpdateStatus(context.Background(), 999, domain.StatusAccepted)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		assert.Equal(t, "Application with ID 999 not found", err.Error())
	}
	var count int64
	require.NoError(t, db.Model(&domain.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateStatus_Reject(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)
	app, err := svc.Apply(context.Background(), "sitter1", listing.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), app.ID, domain.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, updated.Status)

	var stored domain.Application
	require.NoError(t, db.First(&stored, app.ID).Error)
	assert.Equal(t, domain.StatusRejected, stored.Status)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)
	app, err := svc.Apply(context.Background(), "sitter1", listing.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), app.ID, domain.ApplicationStatus("approved"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "status must be one of: pending, accepted, rejected", err.Error())
}

// Accepting one application auto-rejects every pending sibling while leaving
// applications of other listings untouched.
func TestUpdateStatus_AcceptCascadesRejection(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)
	other := createListing(t, db, "owner2", 3)

	a, err := svc.Apply(context.Background(), "sitterA", listing.ID)
	require.NoError(t, err)
	b, err := svc.Apply(context.Background(), "sitterB", listing.ID)
	require.NoError(t, err)
	c, err := svc.Apply(context.Background(), "sitterC", listing.ID)
	require.NoError(t, err)
	unrelated, err := svc.Apply(context.Background(), "sitterA", other.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), b.ID, domain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)

	assert.Equal(t, domain.StatusRejected, storedStatus(t, db, a.ID))
	assert.Equal(t, domain.StatusAccepted, storedStatus(t, db, b.ID))
	assert.Equal(t, domain.StatusRejected, storedStatus(t, db, c.ID))
	assert.Equal(t, domain.StatusPending, storedStatus(t, db, unrelated.ID))
}

// An already-rejected sibling needs no touch, and its presence must not error.
func TestUpdateStatus_AcceptSkipsRejectedSiblings(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)

	a, err := svc.Apply(context.Background(), "sitterA", listing.ID)
	require.NoError(t, err)
	b, err := svc.Apply(context.Background(), "sitterB", listing.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), a.ID, domain.StatusRejected)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), b.ID, domain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, storedStatus(t, db, a.ID))
	assert.Equal(t, domain.StatusAccepted, storedStatus(t, db, b.ID))
}

func TestUpdateStatus_AcceptWithNoSiblings(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)
	app, err := svc.Apply(context.Background(), "sitter1", listing.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), app.ID, domain.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
}

// Accepting for a listing that already started is refused and the written
// status is reverted to pending.
func TestUpdateStatus_AcceptRevertedWhenListingStarted(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)
	app, err := svc.Apply(context.Background(), "sitter1", listing.ID)
	require.NoError(t, err)

	// Backdate the listing after applying; Create would refuse a past start.
	require.NoError(t, db.Model(listing).Updates(map[string]interface{}{
		"start_date": isoDate(-2),
		"end_date":   isoDate(3),
	}).Error)

	_, err = svc.UpdateStatus(context.Background(), app.ID, domain.StatusAccepted)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "Cannot accept applications for listings that have already started", err.Error())
	assert.Equal(t, domain.StatusPending, storedStatus(t, db, app.ID))
}

// Rejecting is allowed even after the listing started; the guard only fences
// acceptance.
func TestUpdateStatus_RejectAllowedAfterListingStarted(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)
	app, err := svc.Apply(context.Background(), "sitter1", listing.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(listing).Update("start_date", isoDate(-2)).Error)

	updated, err := svc.UpdateStatus(context.Background(), app.ID, domain.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, updated.Status)
}

func TestBySitter_EnrichedAndOrdered(t *testing.T) {
	svc, db := setupTest(t)
	first := createListing(t, db, "owner1", 3)
	second := createListing(t, db, "owner2", 4)

	a, err := svc.Apply(context.Background(), "sitter1", first.ID)
	require.NoError(t, err)
	b, err := svc.Apply(context.Background(), "sitter1", second.ID)
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), "sitter2", first.ID)
	require.NoError(t, err)

	apps, err := svc.BySitter(context.Background(), "sitter1")
	require.NoError(t, err)
	require.Len(t, apps, 2)

	// Most recent first, each with its parent listing attached.
	assert.Equal(t, b.ID, apps[0].ID)
	assert.Equal(t, a.ID, apps[1].ID)
	require.NotNil(t, apps[0].Listing)
	assert.Equal(t, second.ID, apps[0].Listing.ID)
	require.NotNil(t, apps[1].Listing)
	assert.Equal(t, first.ID, apps[1].Listing.ID)
}

func TestBySitter_Empty(t *testing.T) {
	svc, _ := setupTest(t)
	apps, err := svc.BySitter(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestByListing_InsertionOrder(t *testing.T) {
	svc, db := setupTest(t)
	listing := createListing(t, db, "owner1", 3)

	a, err := svc.Apply(context.Background(), "sitterA", listing.ID)
	require.NoError(t, err)
	b, err := svc.Apply(context.Background(), "sitterB", listing.ID)
	require.NoError(t, err)

	apps, err := svc.ByListing(context.Background(), listing.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, a.ID, apps[0].ID)
	assert.Equal(t, b.ID, apps[1].ID)
	assert.Nil(t, apps[0].Listing)
}

func storedStatus(t *testing.T, db *gorm.DB, id uint) domain.ApplicationStatus {
	t.Helper()
	var app domain.Application
	require.NoError(t, db.First(&app, id).Error)
	return app.Status
}
