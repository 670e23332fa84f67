// Package listing holds the marketplace listing model and its JetStream-backed store.
package listing

import (
	"time"
)

// Category is the top-level kind of business a listing describes.
type Category string

const (
	CategoryNone           Category = ""
	CategoryProperty       Category = "PROPERTY"
	CategoryServices       Category = "SERVICES"
	CategoryStore          Category = "STORE"
	CategoryAutoDealership Category = "AUTO_DEALERSHIP"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{
	CategoryProperty,
	CategoryServices,
	CategoryStore,
	CategoryAutoDealership,
}

// Label returns a human readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryProperty:
		return "Property"
	case CategoryServices:
		return "Services"
	case CategoryStore:
		return "Store"
	case CategoryAutoDealership:
		return "Auto Dealership"
	default:
		return "Uncategorized"
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the review state of a listing.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Image is a displayable listing image.
type Image struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
	Alt       string `json:"alt,omitempty"`
	// Path is the storage-relative object name; empty for external URLs.
	Path string `json:"path,omitempty"`
}

// DayHours is one day of a listing's weekly schedule.
// Empty OpenTime/CloseTime means the time is not set.
type DayHours struct {
	Day       string `json:"day"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	IsClosed  bool   `json:"is_closed"`
}

// Weekdays is the calendar order used for business hours.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DefaultHours returns a Monday..Sunday schedule, 09:00-17:00 on weekdays
// and closed on weekends.
func DefaultHours() []DayHours {
	hours := make([]DayHours, len(Weekdays))
	for i, day := range Weekdays {
		hours[i] = DayHours{Day: day, OpenTime: "09:00", CloseTime: "17:00"}
		if i >= 5 {
			hours[i] = DayHours{Day: day, IsClosed: true}
		}
	}
	return hours
}

// Service is one offering of a services listing.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
}

// PropertyDetails are the property-specific fields of a listing.
type PropertyDetails struct {
	PropertyType string   `json:"property_type"`
	ListingType  string   `json:"listing_type"` // sale, rent
	Price        float64  `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	AreaSqFt     int      `json:"area_sq_ft"`
	Amenities    []string `json:"amenities,omitempty"`
}

// AutoDealershipDetails are the dealership-specific fields of a listing.
type AutoDealershipDetails struct {
	VehicleTypes     []string `json:"vehicle_types"`
	Brands           []string `json:"brands,omitempty"`
	OffersFinancing  bool     `json:"offers_financing"`
	HasServiceCenter bool     `json:"has_service_center"`
}

// Listing is a business, property, service, store or dealership record.
type Listing struct {
	ID                    string                 `json:"id"`
	OwnerID               string                 `json:"owner_id"`
	Slug                  string                 `json:"slug"`
	Category              Category               `json:"category"`
	Subcategory           string                 `json:"subcategory"`
	BusinessName          string                 `json:"business_name"`
	Description           string                 `json:"description"`
	Location              string                 `json:"location"`
	Phone                 string                 `json:"phone,omitempty"`
	Email                 string                 `json:"email,omitempty"`
	Website               string                 `json:"website,omitempty"`
	BusinessHours         []DayHours             `json:"business_hours,omitempty"`
	Services              []Service              `json:"services,omitempty"`
	PropertyDetails       *PropertyDetails       `json:"property_details,omitempty"`
	AutoDealershipDetails *AutoDealershipDetails `json:"auto_dealership_details,omitempty"`
	Images                []Image                `json:"images,omitempty"`
	Status                Status                 `json:"status"`
	CreatedAt             time.Time              `json:"created_at"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

// PrimaryImage returns the image flagged primary, falling back to the first image.
func (l *Listing) PrimaryImage() (Image, bool) {
	for _, img := range l.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(l.Images) > 0 {
		return l.Images[0], true
	}
	return Image{}, false
}

// OwnedBy reports whether userID owns the listing. An empty user never owns anything.
func (l *Listing) OwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}
