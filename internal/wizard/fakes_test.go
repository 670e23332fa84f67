package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/listr/internal/listing"
)

type memListings struct {
	records map[string]*listing.Listing
	saves   int
	saveErr error
	next    int
}

func newMemListings() *memListings {
	return &memListings{records: map[string]*listing.Listing{}}
}

func (m *memListings) GetListing(_ context.Context, id string) (*listing.Listing, error) {
	l, ok := m.records[id]
	if !ok {
		return nil, listing.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memListings) SaveListing(_ context.Context, l *listing.Listing, publish bool) (string, error) {
	m.saves++
	if m.saveErr != nil {
		return "", m.saveErr
	}
	cp := *l
	if cp.ID == "" {
		m.next++
		cp.ID = fmt.Sprintf("listing-%d", m.next)
		cp.Status = listing.StatusDraft
	}
	if publish {
		cp.Status = listing.StatusPending
	}
	if prev, ok := m.records[cp.ID]; ok {
		cp.Images = prev.Images
	} else {
		cp.Images = nil
	}
	m.records[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memListings) DeleteListing(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

type memUploads struct {
	listings *memListings
	failOn   map[string]bool
	calls    []string
	deleted  []string
}

func (m *memUploads) UploadImage(_ context.Context, file, listingID string, isPrimary bool) (listing.Image, error) {
	m.calls = append(m.calls, file)
	if m.failOn[file] {
		return listing.Image{}, errors.New("upload rejected")
	}
	l, ok := m.listings.records[listingID]
	if !ok {
		return listing.Image{}, listing.ErrNotFound
	}
	img := listing.Image{
		ID:        "img-" + strings.TrimSuffix(file[strings.LastIndex(file, "/")+1:], ".jpg"),
		URL:       "nats://listing-images/" + listingID + "/" + file,
		IsPrimary: isPrimary || len(l.Images) == 0,
	}
	if img.IsPrimary {
		for i := range l.Images {
			l.Images[i].IsPrimary = false
		}
	}
	l.Images = append(l.Images, img)
	return img, nil
}

func (m *memUploads) DeleteImage(_ context.Context, listingID, imageID string) error {
	m.deleted = append(m.deleted, imageID)
	return nil
}
