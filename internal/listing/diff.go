package listing

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// Render formats a listing as the plain text used for revision diffs.
// Timestamps are left out so unchanged revisions diff as empty.
func Render(l *Listing) string {
	if l == nil {
		return ""
	}
	var b strings.Builder
	line := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	line("name", l.BusinessName)
	line("category", l.Category.Label())
	line("subcategory", l.Subcategory)
	line("status", string(l.Status))
	line("location", l.Location)
	line("phone", l.Phone)
	line("email", l.Email)
	line("website", l.Website)
	if l.Description != "" {
		b.WriteString("description:\n")
		for _, d := range strings.Split(strings.TrimRight(l.Description, "\n"), "\n") {
			b.WriteString("  " + d + "\n")
		}
	}
	for _, h := range l.BusinessHours {
		fmt.Fprintf(&b, "hours.%s: %s\n", strings.ToLower(h.Day), h.Summary())
	}
	for _, s := range l.Services {
		fmt.Fprintf(&b, "service: %s %s\n", s.Name, s.Price)
	}
	if p := l.PropertyDetails; p != nil {
		fmt.Fprintf(&b, "property: %s for %s, %.0f, %d bd / %d ba, %d sqft\n",
			p.PropertyType, p.ListingType, p.Price, p.Bedrooms, p.Bathrooms, p.AreaSqFt)
		for _, a := range p.Amenities {
			line("amenity", a)
		}
	}
	if d := l.AutoDealershipDetails; d != nil {
		line("vehicles", strings.Join(d.VehicleTypes, ", "))
		line("brands", strings.Join(d.Brands, ", "))
		fmt.Fprintf(&b, "financing: %t\nservice_center: %t\n", d.OffersFinancing, d.HasServiceCenter)
	}
	for _, img := range l.Images {
		primary := ""
		if img.IsPrimary {
			primary = " (primary)"
		}
		fmt.Fprintf(&b, "image: %s%s\n", img.ID, primary)
	}
	return b.String()
}

// DiffRevisions returns a unified diff between two revisions.
func DiffRevisions(older, newer Revision) string {
	return udiff.Unified(
		fmt.Sprintf("rev %d", older.Revision),
		fmt.Sprintf("rev %d", newer.Revision),
		Render(older.Listing),
		Render(newer.Listing),
	)
}
