package listing

import (
	"context"
)

// Listings adapts a Store to the create-or-update contract used by the
// listing wizard.
type Listings struct {
	store *Store
}

// NewListings wraps a Store.
func NewListings(store *Store) *Listings {
	return &Listings{store: store}
}

// GetListing loads a listing.
func (s *Listings) GetListing(ctx context.Context, id string) (*Listing, error) {
	return s.store.Get(ctx, id)
}

// SaveListing creates or updates l and returns its ID. Publishing moves the
// listing to pending review; otherwise a new listing stays a draft and an
// existing one keeps its status.
func (s *Listings) SaveListing(ctx context.Context, l *Listing, publish bool) (string, error) {
	toSave := *l
	switch {
	case publish:
		toSave.Status = StatusPending
	case toSave.ID == "":
		toSave.Status = StatusDraft
	default:
		existing, err := s.store.Get(ctx, toSave.ID)
		if err != nil {
			return "", err
		}
		toSave.Status = existing.Status
	}
	saved, err := s.store.Save(ctx, &toSave)
	if err != nil {
		return "", err
	}
	return saved.ID, nil
}

// DeleteListing removes a listing.
func (s *Listings) DeleteListing(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
