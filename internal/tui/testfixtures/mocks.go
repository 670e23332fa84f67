// Package testfixtures provides fakes and test utilities for TUI testing.
//
// The fakes stand in for the services the listing screens talk to:
//   - MockListings: listing persistence (get, save, delete)
//   - MockImages: image upload and deletion
//   - MockInquiries: contact requests
//   - MockLoader: image bytes by URL
//
// All fakes are safe for use from tea.Cmd goroutines and record their calls
// for assertions.
package testfixtures

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mark3labs/listr/internal/listing"
)

// MockListings is an in-memory listing service.
type MockListings struct {
	mu sync.Mutex

	Records map[string]*listing.Listing
	SaveErr error

	SaveCalls   int
	DeleteCalls int
	next        int
}

// NewMockListings creates an empty MockListings.
func NewMockListings() *MockListings {
	return &MockListings{Records: map[string]*listing.Listing{}}
}

// Put seeds a record.
func (m *MockListings) Put(l *listing.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.Records[l.ID] = &cp
}

// GetListing returns a copy of the stored record.
func (m *MockListings) GetListing(_ context.Context, id string) (*listing.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.Records[id]
	if !ok {
		return nil, listing.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

// SaveListing creates or updates a record. Stored images are kept the way
// the real store keeps them.
func (m *MockListings) SaveListing(_ context.Context, l *listing.Listing, publish bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	cp := *l
	if cp.ID == "" {
		m.next++
		cp.ID = fmt.Sprintf("listing-new-%d", m.next)
		cp.Status = listing.StatusDraft
	}
	if publish {
		cp.Status = listing.StatusPending
	}
	if prev, ok := m.Records[cp.ID]; ok {
		cp.Images = prev.Images
	} else {
		cp.Images = nil
	}
	m.Records[cp.ID] = &cp
	return cp.ID, nil
}

// DeleteListing removes a record.
func (m *MockListings) DeleteListing(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if _, ok := m.Records[id]; !ok {
		return listing.ErrNotFound
	}
	delete(m.Records, id)
	return nil
}

// MockImages uploads into a MockListings.
type MockImages struct {
	mu sync.Mutex

	Listings *MockListings
	// FailOn makes uploads of these file paths fail.
	FailOn map[string]bool

	Uploaded []string
	Deleted  []string
}

// NewMockImages creates an image service backed by listings.
func NewMockImages(listings *MockListings) *MockImages {
	return &MockImages{Listings: listings, FailOn: map[string]bool{}}
}

// UploadImage attaches a record for file to the listing.
func (m *MockImages) UploadImage(_ context.Context, file, listingID string, isPrimary bool) (listing.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailOn[file] {
		return listing.Image{}, errors.New("upload rejected")
	}
	m.Listings.mu.Lock()
	defer m.Listings.mu.Unlock()
	l, ok := m.Listings.Records[listingID]
	if !ok {
		return listing.Image{}, listing.ErrNotFound
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	img := listing.Image{
		ID:        "img-" + name,
		URL:       "https://cdn.example/" + listingID + "/" + filepath.Base(file),
		Alt:       name,
		IsPrimary: isPrimary || len(l.Images) == 0,
	}
	if img.IsPrimary {
		for i := range l.Images {
			l.Images[i].IsPrimary = false
		}
	}
	l.Images = append(l.Images, img)
	m.Uploaded = append(m.Uploaded, file)
	return img, nil
}

// DeleteImage records the deletion.
func (m *MockImages) DeleteImage(_ context.Context, listingID, imageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, imageID)
	return nil
}

// MockInquiries records inquiries.
type MockInquiries struct {
	mu sync.Mutex

	Err  error
	Sent []listing.InquiryParams
}

// AddInquiry records params or returns Err.
func (m *MockInquiries) AddInquiry(_ context.Context, listingID string, params listing.InquiryParams) (*listing.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.Sent = append(m.Sent, params)
	return &listing.Inquiry{
		ID:        fmt.Sprintf("inq-%d", len(m.Sent)),
		ListingID: listingID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Message:   params.Message,
		CreatedAt: FixedTime,
	}, nil
}

// MockLoader serves PNG bytes for any URL except those in Fail.
type MockLoader struct {
	mu sync.Mutex

	Fail  map[string]bool
	Calls []string
}

// NewMockLoader creates a loader that succeeds for every URL.
func NewMockLoader() *MockLoader {
	return &MockLoader{Fail: map[string]bool{}}
}

// Load returns a small PNG.
func (m *MockLoader) Load(_ context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, url)
	if m.Fail[url] {
		return nil, fmt.Errorf("fetch %s: 404", url)
	}
	return PNG(8, 6, color.RGBA{R: 0xcb, G: 0xa6, B: 0xf7, A: 0xff}), nil
}
