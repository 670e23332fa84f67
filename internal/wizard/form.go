package wizard

import (
	"fmt"

	"github.com/mark3labs/listr/internal/listing"
)

// Field names one editable form field.
type Field string

const (
	FieldCategory              Field = "category"
	FieldSubcategory           Field = "subcategory"
	FieldBusinessName          Field = "business_name"
	FieldDescription           Field = "description"
	FieldLocation              Field = "location"
	FieldPhone                 Field = "phone"
	FieldEmail                 Field = "email"
	FieldWebsite               Field = "website"
	FieldBusinessHours         Field = "business_hours"
	FieldServices              Field = "services"
	FieldPropertyDetails       Field = "property_details"
	FieldAutoDealershipDetails Field = "auto_dealership_details"
)

// FormState is the wizard's working copy of a listing. Images live in the
// wizard's ImageSet.
type FormState struct {
	Category              listing.Category
	Subcategory           string
	BusinessName          string
	Description           string
	Location              string
	Phone                 string
	Email                 string
	Website               string
	BusinessHours         []listing.DayHours
	Services              []listing.Service
	PropertyDetails       *listing.PropertyDetails
	AutoDealershipDetails *listing.AutoDealershipDetails
}

// NewForm returns the defaults for a new listing.
func NewForm() FormState {
	return FormState{BusinessHours: listing.DefaultHours()}
}

// FormFromListing copies a stored listing into a form.
func FormFromListing(l *listing.Listing) FormState {
	f := FormState{
		Category:     l.Category,
		Subcategory:  l.Subcategory,
		BusinessName: l.BusinessName,
		Description:  l.Description,
		Location:     l.Location,
		Phone:        l.Phone,
		Email:        l.Email,
		Website:      l.Website,
		Services:     append([]listing.Service(nil), l.Services...),
	}
	f.BusinessHours = append([]listing.DayHours(nil), l.BusinessHours...)
	if len(f.BusinessHours) != len(listing.Weekdays) {
		f.BusinessHours = listing.DefaultHours()
	}
	if l.PropertyDetails != nil {
		pd := *l.PropertyDetails
		pd.Amenities = append([]string(nil), pd.Amenities...)
		f.PropertyDetails = &pd
	}
	if l.AutoDealershipDetails != nil {
		ad := *l.AutoDealershipDetails
		ad.VehicleTypes = append([]string(nil), ad.VehicleTypes...)
		ad.Brands = append([]string(nil), ad.Brands...)
		f.AutoDealershipDetails = &ad
	}
	return f
}

// apply merges one field. Detail objects are replaced, not merged; callers
// read the current value, change it and pass the whole object back.
func (f *FormState) apply(field Field, value any) error {
	switch field {
	case FieldCategory:
		var c listing.Category
		switch v := value.(type) {
		case listing.Category:
			c = v
		case string:
			c = listing.Category(v)
		default:
			return typeError(field, value)
		}
		if c != listing.CategoryNone && !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
		f.Category = c
	case FieldSubcategory, FieldBusinessName, FieldDescription, FieldLocation, FieldPhone, FieldEmail, FieldWebsite:
		s, ok := value.(string)
		if !ok {
			return typeError(field, value)
		}
		*f.stringField(field) = s
	case FieldBusinessHours:
		hours, ok := value.([]listing.DayHours)
		if !ok {
			return typeError(field, value)
		}
		if len(hours) != len(listing.Weekdays) {
			return fmt.Errorf("business hours need %d days, got %d", len(listing.Weekdays), len(hours))
		}
		f.BusinessHours = append([]listing.DayHours(nil), hours...)
	case FieldServices:
		services, ok := value.([]listing.Service)
		if !ok {
			return typeError(field, value)
		}
		f.Services = append([]listing.Service(nil), services...)
	case FieldPropertyDetails:
		switch v := value.(type) {
		case *listing.PropertyDetails:
			f.PropertyDetails = v
		case listing.PropertyDetails:
			f.PropertyDetails = &v
		default:
			return typeError(field, value)
		}
	case FieldAutoDealershipDetails:
		switch v := value.(type) {
		case *listing.AutoDealershipDetails:
			f.AutoDealershipDetails = v
		case listing.AutoDealershipDetails:
			f.AutoDealershipDetails = &v
		default:
			return typeError(field, value)
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func (f *FormState) stringField(field Field) *string {
	switch field {
	case FieldSubcategory:
		return &f.Subcategory
	case FieldBusinessName:
		return &f.BusinessName
	case FieldDescription:
		return &f.Description
	case FieldLocation:
		return &f.Location
	case FieldPhone:
		return &f.Phone
	case FieldEmail:
		return &f.Email
	case FieldWebsite:
		return &f.Website
	}
	return nil
}

func typeError(field Field, value any) error {
	return fmt.Errorf("field %s: unexpected value type %T", field, value)
}

// toListing builds the listing record to persist. Only detail objects that
// belong to the category are kept.
func (f FormState) toListing(id, ownerID string, images []listing.Image) *listing.Listing {
	l := &listing.Listing{
		ID:            id,
		OwnerID:       ownerID,
		Category:      f.Category,
		Subcategory:   f.Subcategory,
		BusinessName:  f.BusinessName,
		Description:   f.Description,
		Location:      f.Location,
		Phone:         f.Phone,
		Email:         f.Email,
		Website:       f.Website,
		BusinessHours: append([]listing.DayHours(nil), f.BusinessHours...),
		Images:        images,
	}
	switch f.Category {
	case listing.CategoryProperty:
		l.BusinessHours = nil
		if f.PropertyDetails != nil {
			pd := *f.PropertyDetails
			l.PropertyDetails = &pd
		}
	case listing.CategoryServices:
		l.Services = append([]listing.Service(nil), f.Services...)
	case listing.CategoryAutoDealership:
		if f.AutoDealershipDetails != nil {
			ad := *f.AutoDealershipDetails
			l.AutoDealershipDetails = &ad
		}
	}
	return l
}
