package wizard

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern   = regexp.MustCompile(`^[0-9+\-\s().]{7,15}$`)
	websitePattern = regexp.MustCompile(`^(https?://)?([\w-]+\.)+[\w-]+(/\S*)?$`)
)

const (
	minNameLength        = 3
	minDescriptionLength = 10
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return emailPattern.MatchString(strings.TrimSpace(s)) }

// ValidPhone reports whether s is 7-15 digits and phone punctuation.
func ValidPhone(s string) bool { return phonePattern.MatchString(strings.TrimSpace(s)) }

// ValidWebsite reports whether s is a bare or schemed domain.
func ValidWebsite(s string) bool { return websitePattern.MatchString(strings.TrimSpace(s)) }

func length(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// formStepComplete evaluates the per-step predicate for everything except
// images, which need the wizard's image set.
func (f *FormState) formStepComplete(step Step) bool {
	switch step {
	case StepCategory:
		return f.Category != "" && strings.TrimSpace(f.Subcategory) != ""
	case StepBasicInfo:
		return length(f.BusinessName) >= minNameLength && length(f.Description) >= minDescriptionLength
	case StepContact:
		if strings.TrimSpace(f.Location) == "" {
			return false
		}
		return f.contactFormatErrors() == nil
	case StepHours:
		return true
	case StepServices:
		for _, s := range f.Services {
			if strings.TrimSpace(s.Name) != "" {
				return true
			}
		}
		return false
	case StepPropertyDetails:
		return f.PropertyDetails != nil && strings.TrimSpace(f.PropertyDetails.PropertyType) != ""
	case StepAutoDealershipDetails:
		return f.AutoDealershipDetails != nil && len(f.AutoDealershipDetails.VehicleTypes) > 0
	}
	return false
}

func (f *FormState) contactFormatErrors() map[Field]string {
	errs := map[Field]string{}
	if strings.TrimSpace(f.Phone) != "" && !ValidPhone(f.Phone) {
		errs[FieldPhone] = "Enter a valid phone number"
	}
	if strings.TrimSpace(f.Email) != "" && !ValidEmail(f.Email) {
		errs[FieldEmail] = "Enter a valid email address"
	}
	if strings.TrimSpace(f.Website) != "" && !ValidWebsite(f.Website) {
		errs[FieldWebsite] = "Enter a valid website"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// fieldErrors returns advisory messages for a step. Untouched required
// fields are reported too so the step can explain why Next is disabled.
func (f *FormState) fieldErrors(step Step) map[Field]string {
	errs := map[Field]string{}
	switch step {
	case StepCategory:
		if f.Category == "" {
			errs[FieldCategory] = "Choose a category"
		}
		if strings.TrimSpace(f.Subcategory) == "" {
			errs[FieldSubcategory] = "Choose a subcategory"
		}
	case StepBasicInfo:
		if length(f.BusinessName) < minNameLength {
			errs[FieldBusinessName] = "Name must be at least 3 characters"
		}
		if length(f.Description) < minDescriptionLength {
			errs[FieldDescription] = "Description must be at least 10 characters"
		}
	case StepContact:
		if strings.TrimSpace(f.Location) == "" {
			errs[FieldLocation] = "Location is required"
		}
		for k, v := range f.contactFormatErrors() {
			errs[k] = v
		}
	case StepServices:
		if !f.formStepComplete(StepServices) {
			errs[FieldServices] = "Add at least one service"
		}
	case StepPropertyDetails:
		if !f.formStepComplete(StepPropertyDetails) {
			errs[FieldPropertyDetails] = "Choose a property type"
		}
	case StepAutoDealershipDetails:
		if !f.formStepComplete(StepAutoDealershipDetails) {
			errs[FieldAutoDealershipDetails] = "Choose at least one vehicle type"
		}
	}
	return errs
}
