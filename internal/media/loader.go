package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/listr/internal/logger"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// maxImageBytes caps how much of a remote image is read.
const maxImageBytes = 16 << 20

// ErrUnsupportedURL is returned for URLs the loader cannot fetch.
var ErrUnsupportedURL = errors.New("unsupported image url")

// ObjectReader reads stored objects by name.
type ObjectReader interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// Loader fetches image bytes for display. It understands http(s) URLs,
// nats:// object URLs, preview:// URLs and plain file paths. Concurrent loads
// of the same URL share one fetch.
type Loader struct {
	client   *http.Client
	objects  ObjectReader
	previews *PreviewRegistry
	limiter  *rate.Limiter
	group    singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithObjects lets the loader read nats:// URLs.
func WithObjects(objects ObjectReader) LoaderOption {
	return func(l *Loader) { l.objects = objects }
}

// WithPreviews lets the loader read preview:// URLs.
func WithPreviews(previews *PreviewRegistry) LoaderOption {
	return func(l *Loader) { l.previews = previews }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// NewLoader creates a Loader. Remote fetches are limited to a few per second.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client:  &http.Client{Timeout: 20 * time.Second},
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the bytes behind u.
func (l *Loader) Load(ctx context.Context, u string) ([]byte, error) {
	v, err, _ := l.group.Do(u, func() (any, error) {
		return l.load(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *Loader) load(ctx context.Context, raw string) ([]byte, error) {
	if IsPreview(raw) {
		if l.previews == nil {
			return nil, ErrUnsupportedURL
		}
		path, ok := l.previews.Lookup(raw)
		if !ok {
			return nil, fmt.Errorf("preview %s has been revoked", raw)
		}
		return os.ReadFile(path)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid image url %q: %w", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l.fetch(ctx, raw)
	case "nats":
		if l.objects == nil {
			return nil, ErrUnsupportedURL
		}
		return l.objects.Get(ctx, strings.TrimPrefix(u.Path, "/"))
	case "", "file":
		return os.ReadFile(u.Path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, raw)
	}
}

func (l *Loader) fetch(ctx context.Context, u string) ([]byte, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", u, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u, err)
	}
	logger.Debug("Fetched %s (%d bytes)", u, len(data))
	return data, nil
}

// Info describes a decoded image header.
type Info struct {
	Format string
	Width  int
	Height int
	Bytes  int
}

// Describe reads the image header without decoding pixels.
func Describe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("unrecognized image: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height, Bytes: len(data)}, nil
}

// Decode decodes image pixels.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unrecognized image: %w", err)
	}
	return img, nil
}
