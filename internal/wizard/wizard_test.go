package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/media"
	"github.com/stretchr/testify/require"
)

func TestDeriveSteps(t *testing.T) {
	tests := []struct {
		category listing.Category
		want     []Step
	}{
		{listing.CategoryNone, []Step{StepCategory, StepBasicInfo, StepContact, StepImages}},
		{listing.CategoryProperty, []Step{StepCategory, StepBasicInfo, StepContact, StepPropertyDetails, StepImages}},
		{listing.CategoryServices, []Step{StepCategory, StepBasicInfo, StepContact, StepHours, StepServices, StepImages}},
		{listing.CategoryStore, []Step{StepCategory, StepBasicInfo, StepContact, StepHours, StepImages}},
		{listing.CategoryAutoDealership, []Step{StepCategory, StepBasicInfo, StepContact, StepHours, StepAutoDealershipDetails, StepImages}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DeriveSteps(tt.category)); diff != "" {
				t.Errorf("DeriveSteps(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func newWizard() (*Wizard, *memListings, *memUploads) {
	listings := newMemListings()
	uploads := &memUploads{listings: listings, failOn: map[string]bool{}}
	w := New(Options{Listings: listings, Images: uploads, OwnerID: "owner-1"})
	return w, listings, uploads
}

func TestCategoryChangeRederivesSteps(t *testing.T) {
	w, _, _ := newWizard()

	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryProperty))
	steps := w.Steps()
	require.NotContains(t, steps, StepServices)
	require.NotContains(t, steps, StepAutoDealershipDetails)
	require.NotContains(t, steps, StepHours)

	require.NoError(t, w.UpdateField(FieldCategory, "SERVICES"))
	steps = w.Steps()
	require.Contains(t, steps, StepHours)
	require.Contains(t, steps, StepServices)
	require.NotContains(t, steps, StepPropertyDetails)
	require.NotContains(t, steps, StepAutoDealershipDetails)
}

func TestCategoryChangeClampsCursor(t *testing.T) {
	w, _, _ := newWizard()
	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryServices))
	w.GoToStep(5)
	require.Equal(t, 5, w.Current())

	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryProperty))
	require.Equal(t, 4, w.Current())
	require.Equal(t, StepImages, w.CurrentStep())
}

func TestCategoryChangeDropsForeignSubcategory(t *testing.T) {
	w, _, _ := newWizard()
	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryServices))
	require.NoError(t, w.UpdateField(FieldSubcategory, "Plumbing"))

	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryServices))
	require.Equal(t, "Plumbing", w.Form().Subcategory)

	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryStore))
	require.Empty(t, w.Form().Subcategory)
}

func TestUpdateFieldRejectsBadValues(t *testing.T) {
	w, _, _ := newWizard()
	require.NoError(t, w.UpdateField(FieldBusinessName, "Ace"))

	require.Error(t, w.UpdateField(FieldBusinessName, 42))
	require.Equal(t, "Ace", w.Form().BusinessName)

	require.Error(t, w.UpdateField(FieldCategory, "BOATS"))
	require.Equal(t, listing.CategoryNone, w.Form().Category)

	require.Error(t, w.UpdateField(FieldBusinessHours, []listing.DayHours{{Day: "Monday"}}))
	require.Len(t, w.Form().BusinessHours, 7)

	require.Error(t, w.UpdateField(Field("nope"), "x"))
	require.Error(t, w.UpdateField(FieldPropertyDetails, "house"))
}

func TestUpdateFieldShallowReplacesDetails(t *testing.T) {
	w, _, _ := newWizard()
	require.NoError(t, w.UpdateField(FieldPropertyDetails, listing.PropertyDetails{PropertyType: "House", Bedrooms: 3}))
	require.NoError(t, w.UpdateField(FieldPropertyDetails, &listing.PropertyDetails{Bathrooms: 2}))

	pd := w.Form().PropertyDetails
	require.Equal(t, "", pd.PropertyType, "no deep merge")
	require.Equal(t, 2, pd.Bathrooms)
}

func TestIsStepComplete(t *testing.T) {
	w, _, _ := newWizard()
	require.False(t, w.IsStepComplete(-1))
	require.False(t, w.IsStepComplete(99))

	require.False(t, w.IsStepComplete(0))
	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryServices))
	require.False(t, w.IsStepComplete(0))
	require.NoError(t, w.UpdateField(FieldSubcategory, "Plumbing"))
	require.True(t, w.IsStepComplete(0))

	require.NoError(t, w.UpdateField(FieldBusinessName, "Ace Plumbing"))
	require.NoError(t, w.UpdateField(FieldDescription, "123456789"))
	require.False(t, w.IsStepComplete(1), "description of 9")
	require.NoError(t, w.UpdateField(FieldDescription, "1234567890"))
	require.True(t, w.IsStepComplete(1), "description of 10")
	require.NoError(t, w.UpdateField(FieldBusinessName, "  Ac "))
	require.False(t, w.IsStepComplete(1), "name is trimmed")

	require.False(t, w.IsStepComplete(2))
	require.NoError(t, w.UpdateField(FieldLocation, "123 Main St"))
	require.True(t, w.IsStepComplete(2))
	require.NoError(t, w.UpdateField(FieldEmail, "not-an-email"))
	require.False(t, w.IsStepComplete(2))
	require.Contains(t, w.FieldErrors(StepContact), FieldEmail)
	require.NoError(t, w.UpdateField(FieldEmail, "ace@example.com"))
	require.NoError(t, w.UpdateField(FieldPhone, "+1 (555) 010-99"))
	require.NoError(t, w.UpdateField(FieldWebsite, "ace-plumbing.com/about"))
	require.True(t, w.IsStepComplete(2))
	require.NoError(t, w.UpdateField(FieldPhone, "12"))
	require.False(t, w.IsStepComplete(2))

	require.True(t, w.IsStepComplete(3), "hours never gate")

	require.False(t, w.IsStepComplete(4))
	require.NoError(t, w.UpdateField(FieldServices, []listing.Service{{Name: "  "}}))
	require.False(t, w.IsStepComplete(4))
	require.NoError(t, w.UpdateField(FieldServices, []listing.Service{{Name: "Drain cleaning"}}))
	require.True(t, w.IsStepComplete(4))

	require.False(t, w.IsStepComplete(5))
	w.Images().AddPending("/tmp/a.jpg")
	require.True(t, w.IsStepComplete(5))
	w.Close()
}

func TestDetailStepsRequireSelection(t *testing.T) {
	w, _, _ := newWizard()
	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryProperty))
	require.False(t, w.IsStepComplete(3))
	require.Contains(t, w.FieldErrors(StepPropertyDetails), FieldPropertyDetails)
	require.NoError(t, w.UpdateField(FieldPropertyDetails, listing.PropertyDetails{PropertyType: "Condo"}))
	require.True(t, w.IsStepComplete(3))

	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryAutoDealership))
	require.False(t, w.IsStepComplete(4))
	require.NoError(t, w.UpdateField(FieldAutoDealershipDetails, listing.AutoDealershipDetails{VehicleTypes: []string{"SUV"}}))
	require.True(t, w.IsStepComplete(4))
}

func TestValidators(t *testing.T) {
	require.True(t, ValidPhone("555-0100"))
	require.False(t, ValidPhone("555"))
	require.False(t, ValidPhone("1234567890123456"))
	require.False(t, ValidPhone("call me maybe"))

	require.True(t, ValidEmail("a@b.co"))
	require.False(t, ValidEmail("a@b"))

	require.True(t, ValidWebsite("https://shop.example.com"))
	require.True(t, ValidWebsite("example.com"))
	require.False(t, ValidWebsite("localhost"))
	require.False(t, ValidWebsite("ftp://example.com"))
}

func TestNavigation(t *testing.T) {
	w, _, _ := newWizard()

	require.False(t, w.NextStep(), "category incomplete")
	require.Equal(t, 0, w.Current())

	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryStore))
	require.NoError(t, w.UpdateField(FieldSubcategory, "Grocery"))
	require.True(t, w.NextStep())
	require.Equal(t, 1, w.Current())

	require.False(t, w.NextStep(), "basic info incomplete")
	require.True(t, w.PrevStep())
	require.False(t, w.PrevStep(), "floor at 0")

	require.False(t, w.CanGoTo(2))
	require.True(t, w.CanGoTo(1))

	w.GoToStep(-3)
	require.Equal(t, 0, w.Current())
	w.GoToStep(100)
	require.Equal(t, len(w.Steps())-1, w.Current())
	require.True(t, w.IsLast())

	w.Images().AddPending("/tmp/x.jpg")
	require.False(t, w.NextStep(), "cannot pass the last step")
	w.Close()
}

func TestNextStepBlockedWhileSaving(t *testing.T) {
	w, _, _ := newWizard()
	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryStore))
	require.NoError(t, w.UpdateField(FieldSubcategory, "Grocery"))

	req, err := w.BeginSave(false)
	require.NoError(t, err)
	require.True(t, w.Saving())
	require.False(t, w.NextStep())

	_, err = w.BeginSave(false)
	require.ErrorIs(t, err, ErrSaveInFlight)
	_, err = w.PrepareSubmit()
	require.ErrorIs(t, err, ErrSaveInFlight)

	require.NoError(t, w.FinishSave(req.Run(context.Background())))
	require.True(t, w.NextStep())
}

func TestSaveRemembersID(t *testing.T) {
	w, listings, _ := newWizard()
	ctx := context.Background()
	require.NoError(t, w.UpdateField(FieldBusinessName, "Ace Plumbing"))

	id, err := w.Save(ctx, false)
	require.NoError(t, err)
	require.Equal(t, listing.StatusDraft, w.Status())

	again, err := w.Save(ctx, false)
	require.NoError(t, err)
	require.Equal(t, id, again)
	require.Len(t, listings.records, 1)
	require.Equal(t, "owner-1", listings.records[id].OwnerID)

	_, err = w.Save(ctx, true)
	require.NoError(t, err)
	require.Equal(t, listing.StatusPending, listings.records[id].Status)
}

func TestSaveFailureKeepsState(t *testing.T) {
	w, listings, _ := newWizard()
	listings.saveErr = errors.New("kv unavailable")

	_, err := w.Save(context.Background(), false)
	require.Error(t, err)
	require.False(t, w.Saving())
	require.Empty(t, w.ListingID())
	require.Equal(t, 0, w.Current())
}

func TestImageSetSinglePrimary(t *testing.T) {
	s := NewImageSet([]listing.Image{{ID: "u1", URL: "https://x/u1.jpg"}}, nil)
	a := s.AddPending("/tmp/a.jpg")
	b := s.AddPending("/tmp/b.jpg")

	require.True(t, s.SetPrimary(a.ID))
	require.True(t, s.SetPrimary(b.ID))
	require.False(t, s.SetPrimary("missing"))

	count := 0
	for _, img := range s.All() {
		if img.IsPrimary {
			count++
			require.Equal(t, b.ID, img.ID)
		}
	}
	require.Equal(t, 1, count)
	s.Close()
}

func TestRemovingPrimaryPendingPromotesUploaded(t *testing.T) {
	s := NewImageSet([]listing.Image{{ID: "u1"}}, nil)
	p := s.AddPending("/tmp/only.jpg")
	s.SetPrimary(p.ID)

	require.True(t, s.RemovePending(p.ID))
	id, ok := s.Primary()
	require.True(t, ok)
	require.Equal(t, "u1", id)
}

func TestRemovingPrimaryPromotesFirstInDisplayOrder(t *testing.T) {
	s := NewImageSet([]listing.Image{{ID: "u1", IsPrimary: true}, {ID: "u2"}}, nil)
	p := s.AddPending("/tmp/p.jpg")

	require.True(t, s.RemoveUploaded("u1"))
	id, _ := s.Primary()
	require.Equal(t, "u2", id)

	require.True(t, s.RemoveUploaded("u2"))
	id, _ = s.Primary()
	require.Equal(t, p.ID, id)

	require.False(t, s.RemoveUploaded("u2"))
	require.True(t, s.RemovePending(p.ID))
	_, ok := s.Primary()
	require.False(t, ok)
}

func TestAddPendingAutoPromotes(t *testing.T) {
	s := NewImageSet(nil, nil)
	first := s.AddPending("/tmp/1.jpg")
	second := s.AddPending("/tmp/2.jpg")
	require.True(t, first.IsPrimary)
	require.False(t, second.IsPrimary)
	s.Close()
}

func TestPreviewsRevokedExactlyOnce(t *testing.T) {
	reg := media.NewPreviewRegistry()
	s := NewImageSet(nil, reg)
	a := s.AddPending("/tmp/a.jpg")
	s.AddPending("/tmp/b.jpg")
	require.Equal(t, 2, reg.Active())

	s.RemovePending(a.ID)
	require.Equal(t, 1, reg.Revoked())
	s.RemovePending(a.ID)
	require.Equal(t, 1, reg.Revoked())

	s.Close()
	s.Close()
	require.Equal(t, 2, reg.Revoked())
	require.Equal(t, 0, reg.Active())
}

func fillServicesListing(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.UpdateField(FieldCategory, listing.CategoryServices))
	require.NoError(t, w.UpdateField(FieldSubcategory, "Plumbing"))
	require.NoError(t, w.UpdateField(FieldBusinessName, "Ace Plumbing"))
	require.NoError(t, w.UpdateField(FieldDescription, "Pipes fixed!"))
	require.NoError(t, w.UpdateField(FieldLocation, "123 Main St"))
}

func TestSubmitEndToEnd(t *testing.T) {
	reg := media.NewPreviewRegistry()
	listings := newMemListings()
	uploads := &memUploads{listings: listings, failOn: map[string]bool{}}
	w := New(Options{Listings: listings, Images: uploads, Previews: reg})
	fillServicesListing(t, w)
	require.Len(t, w.Form().Description, 12)

	p := w.Images().AddPending("/tmp/front.jpg")
	require.True(t, w.Images().SetPrimary(p.ID))

	res, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Succeeded)
	require.Equal(t, 0, res.Failed)

	stored := listings.records[w.ListingID()]
	require.Equal(t, listing.StatusPending, stored.Status)
	require.Len(t, stored.Images, 1)
	require.True(t, stored.Images[0].IsPrimary)

	require.Empty(t, w.Images().Pending())
	require.Len(t, w.Images().Uploaded(), 1)
	require.True(t, w.Images().Uploaded()[0].IsPrimary)
	require.Equal(t, 0, reg.Active())
	require.Equal(t, listing.StatusPending, w.Status())
}

func TestSubmitRequiresImages(t *testing.T) {
	w, listings, _ := newWizard()
	fillServicesListing(t, w)

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, ErrIncomplete)
	require.Zero(t, listings.saves)
	require.False(t, w.Saving())
}

func TestSubmitPartialFailure(t *testing.T) {
	reg := media.NewPreviewRegistry()
	listings := newMemListings()
	uploads := &memUploads{listings: listings, failOn: map[string]bool{"/tmp/b.jpg": true}}
	w := New(Options{Listings: listings, Images: uploads, Previews: reg})
	fillServicesListing(t, w)

	w.Images().AddPending("/tmp/a.jpg")
	b := w.Images().AddPending("/tmp/b.jpg")
	w.Images().AddPending("/tmp/c.jpg")

	res, err := w.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, 2, res.Succeeded)
	require.Equal(t, 1, res.Failed)
	require.Equal(t, []string{"/tmp/a.jpg", "/tmp/b.jpg", "/tmp/c.jpg"}, uploads.calls, "sequential, in order")

	id := w.ListingID()
	require.NotEmpty(t, id)
	require.Equal(t, listing.StatusPending, listings.records[id].Status)
	require.Len(t, w.Images().Uploaded(), 2)
	require.Len(t, w.Images().Pending(), 1)
	require.Equal(t, b.ID, w.Images().Pending()[0].ID)
	require.Equal(t, 1, reg.Active(), "failed file keeps its preview")

	// Retry uploads the remaining file against the same listing.
	delete(uploads.failOn, "/tmp/b.jpg")
	res, err = w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Succeeded)
	require.Equal(t, id, w.ListingID())
	require.Len(t, listings.records, 1)
	require.Len(t, w.Images().Uploaded(), 3)
	require.Equal(t, 0, reg.Active())

	primaries := 0
	for _, img := range w.Images().Uploaded() {
		if img.IsPrimary {
			primaries++
		}
	}
	require.Equal(t, 1, primaries)
}

func TestSubmitSaveFailureUploadsNothing(t *testing.T) {
	w, listings, uploads := newWizard()
	fillServicesListing(t, w)
	w.Images().AddPending("/tmp/a.jpg")
	listings.saveErr = errors.New("offline")

	res, err := w.Submit(context.Background())
	require.Error(t, err)
	require.Error(t, res.SaveErr)
	require.Empty(t, uploads.calls)
	require.Len(t, w.Images().Pending(), 1)
	require.False(t, w.Saving())
	w.Close()
}

func TestEditInitializesFromListing(t *testing.T) {
	l := &listing.Listing{
		ID:           "L9",
		OwnerID:      "someone",
		Category:     listing.CategoryProperty,
		Subcategory:  "Residential",
		BusinessName: "Lake House",
		Status:       listing.StatusApproved,
		PropertyDetails: &listing.PropertyDetails{
			PropertyType: "House",
			Amenities:    []string{"Dock"},
		},
		Images: []listing.Image{{ID: "i1", IsPrimary: true}},
	}
	w := Edit(l, Options{})

	require.Equal(t, "L9", w.ListingID())
	require.Equal(t, listing.StatusApproved, w.Status())
	require.Len(t, w.Form().BusinessHours, 7)
	require.Equal(t, DeriveSteps(listing.CategoryProperty), w.Steps())
	require.Len(t, w.Images().Uploaded(), 1)

	// The form holds copies.
	w.Form().PropertyDetails.Amenities[0] = "Pool"
	require.Equal(t, "Dock", l.PropertyDetails.Amenities[0])

	out := w.Listing()
	require.Equal(t, "someone", out.OwnerID)
	require.Nil(t, out.BusinessHours, "properties have no hours")
	require.Nil(t, out.Services)
}

func TestDeleteUploaded(t *testing.T) {
	w, _, uploads := newWizard()
	w = Edit(&listing.Listing{ID: "L1", Images: []listing.Image{{ID: "u1", IsPrimary: true}, {ID: "u2"}}},
		Options{Listings: newMemListings(), Images: uploads})

	require.Error(t, w.DeleteUploaded(context.Background(), "nope"))
	require.NoError(t, w.DeleteUploaded(context.Background(), "u1"))
	require.Equal(t, []string{"u1"}, uploads.deleted)
	id, _ := w.Images().Primary()
	require.Equal(t, "u2", id)
}

func TestDeleteUploadedBlockedWhileSaving(t *testing.T) {
	_, _, uploads := newWizard()
	w := Edit(&listing.Listing{ID: "L1", Images: []listing.Image{{ID: "u1", IsPrimary: true}}},
		Options{Listings: newMemListings(), Images: uploads})

	_, err := w.BeginSave(true)
	require.NoError(t, err)

	_, err = w.BeginDelete("u1")
	require.ErrorIs(t, err, ErrSaveInFlight)
	require.ErrorIs(t, w.DeleteUploaded(context.Background(), "u1"), ErrSaveInFlight)
	require.Empty(t, uploads.deleted)
	require.Equal(t, 1, w.Images().Len())

	require.Error(t, w.FinishSave(SaveResult{Err: errors.New("store offline")}))
	require.NoError(t, w.DeleteUploaded(context.Background(), "u1"))
	require.Equal(t, []string{"u1"}, uploads.deleted)
}
