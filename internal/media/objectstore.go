package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/mark3labs/listr/internal/logger"
	"github.com/nats-io/nats.go/jetstream"
)

// ObjectStore is the subset of jetstream.ObjectStore used for images.
type ObjectStore interface {
	Put(ctx context.Context, obj jetstream.ObjectMeta, reader io.Reader) (*jetstream.ObjectInfo, error)
	GetBytes(ctx context.Context, name string, opts ...jetstream.GetObjectOpt) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// ObjectStorage keeps image bytes in the JetStream object store. Paths are
// object names; URLs are <baseURL>/<name>, typically nats://listing-images/...
type ObjectStorage struct {
	objects ObjectStore
	baseURL string
}

// NewObjectStorage creates an object-store backed Storage.
func NewObjectStorage(objects ObjectStore, baseURL string) *ObjectStorage {
	return &ObjectStorage{objects: objects, baseURL: strings.TrimRight(baseURL, "/")}
}

// Put stores the reader under name.
func (s *ObjectStorage) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	meta := jetstream.ObjectMeta{Name: name}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		meta.Headers = map[string][]string{"Content-Type": {ct}}
	}
	info, err := s.objects.Put(ctx, meta, r)
	if err != nil {
		return "", fmt.Errorf("failed to store object %s: %w", name, err)
	}
	logger.Debug("Stored image object %s (%d bytes)", name, info.Size)
	return name, nil
}

// Delete removes an object. A missing object is not an error.
func (s *ObjectStorage) Delete(ctx context.Context, name string) error {
	if err := s.objects.Delete(ctx, name); err != nil && !errors.Is(err, jetstream.ErrObjectNotFound) {
		return fmt.Errorf("failed to delete object %s: %w", name, err)
	}
	return nil
}

// URL joins the object name onto the base URL.
func (s *ObjectStorage) URL(name string) (string, error) {
	if s.baseURL == "" {
		return "", errors.New("storage base url is not configured")
	}
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "", errors.New("empty object name")
	}
	return s.baseURL + "/" + name, nil
}

// Get returns an object's bytes.
func (s *ObjectStorage) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.objects.GetBytes(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", name, err)
	}
	return data, nil
}
