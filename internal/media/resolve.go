package media

import (
	"net/url"
	"strings"

	"github.com/mark3labs/listr/internal/logger"
)

// URLer turns a storage path into an absolute URL.
type URLer interface {
	URL(path string) (string, error)
}

// Resolver maps stored image references to display URLs.
type Resolver struct {
	storage     URLer
	placeholder string
}

// NewResolver creates a Resolver. A nil storage resolves only absolute URLs.
func NewResolver(storage URLer, placeholder string) *Resolver {
	return &Resolver{storage: storage, placeholder: placeholder}
}

// Placeholder is the URL shown when an image cannot be resolved.
func (r *Resolver) Placeholder() string {
	return r.placeholder
}

// Resolve passes absolute URLs through, resolves storage-relative paths
// against the backend, and falls back to the placeholder on any error.
func (r *Resolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.placeholder
	}
	if IsAbsolute(ref) {
		return ref
	}
	if r.storage == nil {
		return r.placeholder
	}
	resolved, err := r.storage.URL(ref)
	if err != nil || resolved == "" {
		logger.Debug("Falling back to placeholder for %q: %v", ref, err)
		return r.placeholder
	}
	return resolved
}

// IsAbsolute reports whether ref already carries a scheme we can display.
func IsAbsolute(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "data", "nats", PreviewScheme:
		return true
	}
	return false
}
