package gallery

import (
	"fmt"
	"strings"

	"github.com/mark3labs/listr/internal/listing"
)

// ResolveFunc maps a stored image reference to a display URL. It must
// return a placeholder rather than fail.
type ResolveFunc func(ref string) string

// NormalizeImages turns loosely typed image entries into gallery images.
// Entries may be plain path strings, listing.Image values or decoded JSON
// objects. Unknown entries are skipped, missing IDs are generated and only
// the first primary flag is kept.
func NormalizeImages(raw []any, resolve ResolveFunc) []listing.Image {
	out := make([]listing.Image, 0, len(raw))
	for _, item := range raw {
		img, ok := normalizeOne(item, resolve)
		if !ok {
			continue
		}
		if img.ID == "" {
			img.ID = fmt.Sprintf("image-%d", len(out))
		}
		out = append(out, img)
	}
	return singlePrimary(out)
}

// FromListing normalizes a listing's stored images.
func FromListing(l *listing.Listing, resolve ResolveFunc) []listing.Image {
	if l == nil {
		return nil
	}
	raw := make([]any, len(l.Images))
	for i, img := range l.Images {
		raw[i] = img
	}
	return NormalizeImages(raw, resolve)
}

func normalizeOne(item any, resolve ResolveFunc) (listing.Image, bool) {
	switch v := item.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return listing.Image{}, false
		}
		return listing.Image{URL: resolve(v), Path: v}, true
	case listing.Image:
		ref := v.URL
		if ref == "" {
			ref = v.Path
		}
		v.URL = resolve(ref)
		return v, true
	case *listing.Image:
		if v == nil {
			return listing.Image{}, false
		}
		return normalizeOne(*v, resolve)
	case map[string]any:
		img := listing.Image{
			ID:        stringField(v, "id"),
			Alt:       stringField(v, "alt"),
			IsPrimary: boolField(v, "is_primary") || boolField(v, "isPrimary"),
		}
		ref := firstNonEmpty(stringField(v, "url"), stringField(v, "image_url"), stringField(v, "path"))
		img.Path = stringField(v, "path")
		img.URL = resolve(ref)
		return img, true
	default:
		return listing.Image{}, false
	}
}

func singlePrimary(images []listing.Image) []listing.Image {
	seen := false
	for i := range images {
		if images[i].IsPrimary {
			if seen {
				images[i].IsPrimary = false
			}
			seen = true
		}
	}
	return images
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
