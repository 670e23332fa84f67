package listing

var subcategories = map[Category][]string{
	CategoryProperty: {
		"Residential", "Commercial", "Land", "Vacation Rental",
	},
	CategoryServices: {
		"Plumbing", "Electrical", "Cleaning", "Landscaping", "Moving", "Beauty & Wellness", "Tutoring",
	},
	CategoryStore: {
		"Grocery", "Clothing", "Electronics", "Hardware", "Pharmacy", "Furniture",
	},
	CategoryAutoDealership: {
		"New Vehicles", "Used Vehicles", "New & Used",
	},
}

// Subcategories returns the subcategory options for a category.
func Subcategories(c Category) []string {
	return subcategories[c]
}

// PropertyTypes are the selectable property types.
var PropertyTypes = []string{"House", "Apartment", "Condo", "Townhouse", "Office", "Retail", "Land"}

// ListingTypes are the ways a property can be offered.
var ListingTypes = []string{"sale", "rent"}

// VehicleTypes are the selectable vehicle types for dealerships.
var VehicleTypes = []string{"Sedan", "SUV", "Truck", "Van", "Coupe", "Motorcycle", "Electric"}
