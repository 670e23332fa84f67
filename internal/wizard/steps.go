// Package wizard drives the multi-step listing editor: category-conditioned
// steps, per-field form state, completion predicates and submission through
// external listing and image services.
package wizard

import "github.com/mark3labs/listr/internal/listing"

// Step tags one page of the wizard.
type Step string

const (
	StepCategory              Step = "category"
	StepBasicInfo             Step = "basic_info"
	StepContact               Step = "contact"
	StepHours                 Step = "hours"
	StepServices              Step = "services"
	StepPropertyDetails       Step = "property_details"
	StepAutoDealershipDetails Step = "auto_dealership_details"
	StepImages                Step = "images"
)

// Title is the heading shown for a step.
func (s Step) Title() string {
	switch s {
	case StepCategory:
		return "Category"
	case StepBasicInfo:
		return "Basic Info"
	case StepContact:
		return "Contact"
	case StepHours:
		return "Business Hours"
	case StepServices:
		return "Services"
	case StepPropertyDetails:
		return "Property Details"
	case StepAutoDealershipDetails:
		return "Dealership Details"
	case StepImages:
		return "Images"
	default:
		return string(s)
	}
}

// DeriveSteps returns the ordered step list for a category.
func DeriveSteps(c listing.Category) []Step {
	steps := []Step{StepCategory, StepBasicInfo, StepContact}
	if c != listing.CategoryProperty && c != listing.CategoryNone {
		steps = append(steps, StepHours)
	}
	switch c {
	case listing.CategoryServices:
		steps = append(steps, StepServices)
	case listing.CategoryProperty:
		steps = append(steps, StepPropertyDetails)
	case listing.CategoryAutoDealership:
		steps = append(steps, StepAutoDealershipDetails)
	}
	return append(steps, StepImages)
}
