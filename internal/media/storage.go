// Package media stores listing images and turns stored paths into displayable URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mark3labs/listr/internal/config"
)

// Storage is an image backend. Put returns a storage-relative path that
// URL turns into an absolute display URL.
type Storage interface {
	Put(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	URL(path string) (string, error)
}

// ObjectName builds the storage name for an uploaded file:
// <listing>/<image-id>-<slug>.<ext>.
func ObjectName(listingID, imageID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "image"
	}
	return path.Join(listingID, imageID+"-"+base+ext)
}

// NewImageID returns a fresh image identifier.
func NewImageID() string {
	return uuid.NewString()
}

// Backends groups what NewStorage may need besides the config.
type Backends struct {
	Objects ObjectStore
}

// NewStorage builds the Storage selected by cfg.Storage.Backend.
func NewStorage(cfg *config.Config, b Backends) (Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendNATS, "":
		if b.Objects == nil {
			return nil, fmt.Errorf("nats storage requires an object store")
		}
		return NewObjectStorage(b.Objects, cfg.Storage.BaseURL), nil
	case config.BackendCloudinary:
		return NewCloudinaryStorage(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
