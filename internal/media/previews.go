package media

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// PreviewScheme prefixes URLs that point at local files not yet uploaded.
const PreviewScheme = "preview"

// PreviewRegistry owns preview URLs for pending files. Each URL is revoked
// exactly once; revoking an unknown or already revoked URL is a no-op.
type PreviewRegistry struct {
	mu      sync.Mutex
	active  map[string]string // url -> local path
	revoked int
}

// NewPreviewRegistry creates an empty registry.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{active: make(map[string]string)}
}

// Create registers a local file and returns its preview URL.
func (p *PreviewRegistry) Create(localPath string) string {
	u := PreviewScheme + "://" + uuid.NewString()
	p.mu.Lock()
	p.active[u] = localPath
	p.mu.Unlock()
	return u
}

// Lookup returns the local path behind a live preview URL.
func (p *PreviewRegistry) Lookup(u string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	path, ok := p.active[u]
	return path, ok
}

// Revoke releases a preview URL. It reports whether the URL was live.
func (p *PreviewRegistry) Revoke(u string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.active[u]; !ok {
		return false
	}
	delete(p.active, u)
	p.revoked++
	return true
}

// RevokeAll releases every live preview and returns how many were released.
func (p *PreviewRegistry) RevokeAll() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.active)
	p.revoked += n
	p.active = make(map[string]string)
	return n
}

// Active returns the number of live previews.
func (p *PreviewRegistry) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}

// Revoked returns how many previews have been released so far.
func (p *PreviewRegistry) Revoked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revoked
}

// IsPreview reports whether u is a preview URL.
func IsPreview(u string) bool {
	return strings.HasPrefix(u, PreviewScheme+"://")
}
