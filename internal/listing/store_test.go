package listing

import (
	"context"
	"testing"

	"github.com/mark3labs/listr/internal/nats"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	ctx := context.Background()

	e, err := nats.Open(ctx, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	return NewStoreFromEmbedded(e), ctx
}

func sampleListing() *Listing {
	return &Listing{
		OwnerID:       "user-1",
		Category:      CategoryStore,
		Subcategory:   "Grocery",
		BusinessName:  "Corner Grocer",
		Description:   "Fresh produce every morning",
		Location:      "12 Main St",
		BusinessHours: DefaultHours(),
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	s, ctx := setupTestStore(t)

	created, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, StatusDraft, created.Status)
	require.Contains(t, created.Slug, "corner-grocer-")
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Corner Grocer", got.BusinessName)
	require.Len(t, got.BusinessHours, 7)
}

func TestStore_GetMissing(t *testing.T) {
	s, ctx := setupTestStore(t)

	_, err := s.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateKeepsImagesAndOwner(t *testing.T) {
	s, ctx := setupTestStore(t)

	created, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)
	_, err = s.AttachImage(ctx, created.ID, Image{ID: "img-1", URL: "https://x/1.jpg"})
	require.NoError(t, err)

	edit := *created
	edit.BusinessName = "Corner Grocer & Deli"
	edit.OwnerID = ""
	edit.Images = nil
	edit.Status = StatusPending

	updated, err := s.Save(ctx, &edit)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "user-1", updated.OwnerID)
	require.Len(t, updated.Images, 1)
	require.Equal(t, StatusPending, updated.Status)
	require.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	require.Contains(t, updated.Slug, "corner-grocer-and-deli-")
}

func TestStore_UpdateMissing(t *testing.T) {
	s, ctx := setupTestStore(t)

	l := sampleListing()
	l.ID = "ghost"
	_, err := s.Save(ctx, l)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteAndList(t *testing.T) {
	s, ctx := setupTestStore(t)

	a, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)
	second := sampleListing()
	second.BusinessName = "Second Shop"
	b, err := s.Save(ctx, second)
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, s.Delete(ctx, a.ID))
	require.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)

	all, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, b.ID, all[0].ID)
}

func TestStore_AttachImageSinglePrimary(t *testing.T) {
	s, ctx := setupTestStore(t)

	l, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)

	l, err = s.AttachImage(ctx, l.ID, Image{ID: "a"})
	require.NoError(t, err)
	require.True(t, l.Images[0].IsPrimary, "first image becomes primary")

	l, err = s.AttachImage(ctx, l.ID, Image{ID: "b"})
	require.NoError(t, err)
	require.False(t, l.Images[1].IsPrimary)

	l, err = s.AttachImage(ctx, l.ID, Image{ID: "c", IsPrimary: true})
	require.NoError(t, err)
	require.Equal(t, 1, countPrimary(l.Images))
	require.True(t, l.Images[2].IsPrimary)
}

func TestStore_DetachImagePromotesFirst(t *testing.T) {
	s, ctx := setupTestStore(t)

	l, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c"} {
		l, err = s.AttachImage(ctx, l.ID, Image{ID: id})
		require.NoError(t, err)
	}

	l, removed, err := s.DetachImage(ctx, l.ID, "a")
	require.NoError(t, err)
	require.Equal(t, "a", removed.ID)
	require.Len(t, l.Images, 2)
	require.Equal(t, "b", l.Images[0].ID)
	require.True(t, l.Images[0].IsPrimary)

	_, _, err = s.DetachImage(ctx, l.ID, "zzz")
	require.Error(t, err)
}

func TestStore_History(t *testing.T) {
	s, ctx := setupTestStore(t)

	l, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)
	l.Description = "Fresh produce and a deli counter"
	_, err = s.Save(ctx, l)
	require.NoError(t, err)

	revs, err := s.History(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	require.Less(t, revs[0].Revision, revs[1].Revision)

	diff := DiffRevisions(revs[0], revs[1])
	require.Contains(t, diff, "-  Fresh produce every morning")
	require.Contains(t, diff, "+  Fresh produce and a deli counter")

	_, err = s.History(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Inquiries(t *testing.T) {
	s, ctx := setupTestStore(t)

	l, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)

	_, err = s.AddInquiry(ctx, l.ID, InquiryParams{Name: "Ann", Email: "bad", Message: "Is this still open?"})
	require.Error(t, err)

	inq, err := s.AddInquiry(ctx, l.ID, InquiryParams{Name: "Ann", Email: "ann@example.com", Message: "Do you deliver on Sundays?"})
	require.NoError(t, err)
	require.Equal(t, l.ID, inq.ListingID)

	_, err = s.AddInquiry(ctx, "missing", InquiryParams{Name: "Ann", Email: "ann@example.com", Message: "Do you deliver on Sundays?"})
	require.ErrorIs(t, err, ErrNotFound)

	list, err := s.Inquiries(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Ann", list[0].Name)
	require.Equal(t, "ann@example.com", list[0].Email)
	require.Equal(t, "Do you deliver on Sundays?", list[0].Message)
}

func TestStore_EventsRecordLifecycle(t *testing.T) {
	s, ctx := setupTestStore(t)

	l, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)
	l.Status = StatusPending
	_, err = s.Save(ctx, l)
	require.NoError(t, err)

	events, err := s.Events(ctx, l.ID)
	require.NoError(t, err)

	var actions []string
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	require.Equal(t, []string{"created", "pending"}, actions)
}

func countPrimary(images []Image) int {
	n := 0
	for _, img := range images {
		if img.IsPrimary {
			n++
		}
	}
	return n
}

func TestListings_SaveListing(t *testing.T) {
	s, ctx := setupTestStore(t)
	svc := NewListings(s)

	id, err := svc.SaveListing(ctx, sampleListing(), false)
	require.NoError(t, err)
	got, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusDraft, got.Status)

	got.Status = StatusApproved
	_, err = s.Save(ctx, got)
	require.NoError(t, err)

	got.BusinessName = "Renamed"
	got.Status = ""
	again, err := svc.SaveListing(ctx, got, false)
	require.NoError(t, err)
	require.Equal(t, id, again)
	reloaded, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusApproved, reloaded.Status, "plain save keeps status")

	_, err = svc.SaveListing(ctx, reloaded, true)
	require.NoError(t, err)
	reloaded, err = svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.Equal(t, StatusPending, reloaded.Status)

	require.NoError(t, svc.DeleteListing(ctx, id))
	_, err = svc.GetListing(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SavePrimaryChoice(t *testing.T) {
	s, ctx := setupTestStore(t)

	l, err := s.Save(ctx, sampleListing())
	require.NoError(t, err)
	l, err = s.AttachImage(ctx, l.ID, Image{ID: "a"})
	require.NoError(t, err)
	l, err = s.AttachImage(ctx, l.ID, Image{ID: "b"})
	require.NoError(t, err)

	l.Images[0].IsPrimary = false
	l.Images[1].IsPrimary = true
	l.Images = append(l.Images, Image{ID: "ghost"})
	saved, err := s.Save(ctx, l)
	require.NoError(t, err)
	require.Len(t, saved.Images, 2)
	require.False(t, saved.Images[0].IsPrimary)
	require.True(t, saved.Images[1].IsPrimary)
}
