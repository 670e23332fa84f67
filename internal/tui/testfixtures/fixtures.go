package testfixtures

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/mark3labs/listr/internal/listing"
)

// Fixed test values for consistent rendering
const (
	FixedOwnerID   = "user-owner"
	FixedVisitorID = "user-visitor"
	FixedListingID = "listing-1"
)

var (
	// FixedTime is a Monday morning.
	FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
)

// StoreListing returns an approved store listing with three images, the
// second one primary.
func StoreListing() *listing.Listing {
	return &listing.Listing{
		ID:            FixedListingID,
		OwnerID:       FixedOwnerID,
		Slug:          "corner-grocer-1",
		Category:      listing.CategoryStore,
		Subcategory:   "Grocery",
		BusinessName:  "Corner Grocer",
		Description:   "Fresh **produce** every morning.",
		Location:      "12 Main St",
		Phone:         "+1 555 0100",
		Email:         "hello@corner.example",
		BusinessHours: listing.DefaultHours(),
		Images: []listing.Image{
			{ID: "img-1", URL: "https://cdn.example/1.png", Alt: "Storefront"},
			{ID: "img-2", URL: "https://cdn.example/2.png", Alt: "Produce aisle", IsPrimary: true},
			{ID: "img-3", URL: "https://cdn.example/3.png", Alt: "Checkout"},
		},
		Status:    listing.StatusApproved,
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// PropertyListing returns a house for sale without images.
func PropertyListing() *listing.Listing {
	return &listing.Listing{
		ID:           "listing-2",
		OwnerID:      FixedOwnerID,
		Category:     listing.CategoryProperty,
		Subcategory:  "Residential",
		BusinessName: "Maple House",
		Description:  "Three bedrooms close to the park.",
		Location:     "4 Maple Ave",
		PropertyDetails: &listing.PropertyDetails{
			PropertyType: "House",
			ListingType:  "sale",
			Price:        350000,
			Bedrooms:     3,
			Bathrooms:    2,
			AreaSqFt:     1800,
		},
		Status:    listing.StatusPending,
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// PNG encodes a solid w x h image.
func PNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
