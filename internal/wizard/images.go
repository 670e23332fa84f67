package wizard

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/media"
)

// PendingImage is a local file selected for upload.
type PendingImage struct {
	ID         string
	Path       string
	PreviewURL string
	IsPrimary  bool
}

// DisplayImage is one entry of the combined image list, uploaded first.
type DisplayImage struct {
	ID        string
	URL       string
	Label     string
	IsPrimary bool
	Pending   bool
}

// ImageSet holds uploaded and pending images. Exactly one image across both
// collections is primary whenever the set is non-empty and EnsurePrimary has
// run. Preview URLs of pending files are owned by the set's registry.
type ImageSet struct {
	uploaded []listing.Image
	pending  []PendingImage
	previews *media.PreviewRegistry
}

// NewImageSet creates a set seeded with already uploaded images.
func NewImageSet(uploaded []listing.Image, previews *media.PreviewRegistry) *ImageSet {
	if previews == nil {
		previews = media.NewPreviewRegistry()
	}
	return &ImageSet{
		uploaded: append([]listing.Image(nil), uploaded...),
		previews: previews,
	}
}

// Uploaded returns the uploaded images.
func (s *ImageSet) Uploaded() []listing.Image { return s.uploaded }

// Pending returns the pending files in selection order.
func (s *ImageSet) Pending() []PendingImage { return s.pending }

// Previews returns the registry that owns pending preview URLs.
func (s *ImageSet) Previews() *media.PreviewRegistry { return s.previews }

// Len returns the number of images across both collections.
func (s *ImageSet) Len() int { return len(s.uploaded) + len(s.pending) }

// All returns the combined display list: uploaded images, then pending files.
func (s *ImageSet) All() []DisplayImage {
	out := make([]DisplayImage, 0, s.Len())
	for _, img := range s.uploaded {
		label := img.Alt
		if label == "" {
			label = img.ID
		}
		out = append(out, DisplayImage{ID: img.ID, URL: img.URL, Label: label, IsPrimary: img.IsPrimary})
	}
	for _, p := range s.pending {
		out = append(out, DisplayImage{ID: p.ID, URL: p.PreviewURL, Label: filepath.Base(p.Path), IsPrimary: p.IsPrimary, Pending: true})
	}
	return out
}

// Gallery returns the combined list as listing images for previewing.
func (s *ImageSet) Gallery() []listing.Image {
	all := s.All()
	out := make([]listing.Image, len(all))
	for i, d := range all {
		out[i] = listing.Image{ID: d.ID, URL: d.URL, IsPrimary: d.IsPrimary, Alt: d.Label}
	}
	return out
}

// AddPending registers a local file and returns it.
func (s *ImageSet) AddPending(path string) PendingImage {
	p := PendingImage{
		ID:         "pending-" + uuid.NewString(),
		Path:       path,
		PreviewURL: s.previews.Create(path),
	}
	s.pending = append(s.pending, p)
	s.EnsurePrimary()
	for _, cur := range s.pending {
		if cur.ID == p.ID {
			return cur
		}
	}
	return p
}

// SetPrimary marks id primary and clears the flag everywhere else.
// It reports whether id was found.
func (s *ImageSet) SetPrimary(id string) bool {
	if !s.has(id) {
		return false
	}
	for i := range s.uploaded {
		s.uploaded[i].IsPrimary = s.uploaded[i].ID == id
	}
	for i := range s.pending {
		s.pending[i].IsPrimary = s.pending[i].ID == id
	}
	return true
}

// Primary returns the ID of the primary image.
func (s *ImageSet) Primary() (string, bool) {
	for _, img := range s.uploaded {
		if img.IsPrimary {
			return img.ID, true
		}
	}
	for _, p := range s.pending {
		if p.IsPrimary {
			return p.ID, true
		}
	}
	return "", false
}

// EnsurePrimary promotes the first image in display order when no image is
// primary, and drops extra primary flags.
func (s *ImageSet) EnsurePrimary() {
	if id, ok := s.Primary(); ok {
		s.SetPrimary(id)
		return
	}
	switch {
	case len(s.uploaded) > 0:
		s.uploaded[0].IsPrimary = true
	case len(s.pending) > 0:
		s.pending[0].IsPrimary = true
	}
}

// RemovePending drops a pending file and revokes its preview.
func (s *ImageSet) RemovePending(id string) bool {
	for i, p := range s.pending {
		if p.ID != id {
			continue
		}
		s.previews.Revoke(p.PreviewURL)
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.EnsurePrimary()
		return true
	}
	return false
}

// RemoveUploaded drops an uploaded image from the local list. The remote
// delete is the caller's job.
func (s *ImageSet) RemoveUploaded(id string) bool {
	for i, img := range s.uploaded {
		if img.ID != id {
			continue
		}
		s.uploaded = append(s.uploaded[:i], s.uploaded[i+1:]...)
		s.EnsurePrimary()
		return true
	}
	return false
}

// IsUploaded reports whether id names an uploaded image.
func (s *ImageSet) IsUploaded(id string) bool {
	for _, img := range s.uploaded {
		if img.ID == id {
			return true
		}
	}
	return false
}

// markUploaded moves a pending file into the uploaded list as img and
// revokes its preview. A primary record clears every other primary flag.
func (s *ImageSet) markUploaded(pendingID string, img listing.Image) {
	for i, p := range s.pending {
		if p.ID != pendingID {
			continue
		}
		s.previews.Revoke(p.PreviewURL)
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		break
	}
	s.uploaded = append(s.uploaded, img)
	if img.IsPrimary {
		s.SetPrimary(img.ID)
	}
}

// Close revokes every outstanding preview URL.
func (s *ImageSet) Close() {
	for _, p := range s.pending {
		s.previews.Revoke(p.PreviewURL)
	}
}

func (s *ImageSet) has(id string) bool {
	if s.IsUploaded(id) {
		return true
	}
	for _, p := range s.pending {
		if p.ID == id {
			return true
		}
	}
	return false
}
