package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/logger"
)

// ImageRecords attaches and detaches image records on a listing.
type ImageRecords interface {
	AttachImage(ctx context.Context, listingID string, img listing.Image) (*listing.Listing, error)
	DetachImage(ctx context.Context, listingID, imageID string) (*listing.Listing, listing.Image, error)
}

// Service uploads files to a Storage and records them on listings.
type Service struct {
	storage  Storage
	records  ImageRecords
	resolver *Resolver
}

// NewService wires storage, listing records and URL resolution together.
func NewService(storage Storage, records ImageRecords, placeholder string) *Service {
	return &Service{
		storage:  storage,
		records:  records,
		resolver: NewResolver(storage, placeholder),
	}
}

// Resolver returns the resolver used for stored paths.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// Resolve maps a stored reference to a display URL.
func (s *Service) Resolve(ref string) string {
	return s.resolver.Resolve(ref)
}

// UploadImage stores a local file and attaches it to the listing.
// If attaching fails the stored object is removed again.
func (s *Service) UploadImage(ctx context.Context, file, listingID string, isPrimary bool) (listing.Image, error) {
	if listingID == "" {
		return listing.Image{}, errors.New("listing id is required")
	}
	f, err := os.Open(file)
	if err != nil {
		return listing.Image{}, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	id := NewImageID()
	stored, err := s.storage.Put(ctx, ObjectName(listingID, id, file), f)
	if err != nil {
		return listing.Image{}, err
	}

	img := listing.Image{
		ID:        id,
		URL:       s.resolver.Resolve(stored),
		Path:      stored,
		IsPrimary: isPrimary,
		Alt:       altText(file),
	}
	l, err := s.records.AttachImage(ctx, listingID, img)
	if err != nil {
		if delErr := s.storage.Delete(ctx, stored); delErr != nil {
			logger.Warn("Orphaned image object %s: %v", stored, delErr)
		}
		return listing.Image{}, fmt.Errorf("failed to attach image: %w", err)
	}
	for _, attached := range l.Images {
		if attached.ID == id {
			return attached, nil
		}
	}
	return img, nil
}

// DeleteImage detaches an image from its listing and removes the stored object.
func (s *Service) DeleteImage(ctx context.Context, listingID, imageID string) error {
	_, removed, err := s.records.DetachImage(ctx, listingID, imageID)
	if err != nil {
		return fmt.Errorf("failed to detach image: %w", err)
	}
	if removed.Path != "" {
		if err := s.storage.Delete(ctx, removed.Path); err != nil {
			logger.Warn("Image %s detached but object %s remains: %v", imageID, removed.Path, err)
		}
	}
	return nil
}

func altText(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return strings.NewReplacer("-", " ", "_", " ").Replace(base)
}
