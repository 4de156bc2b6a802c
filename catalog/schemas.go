package catalog

import (
	"github.com/rescuedex/apicheck/registry"
	"github.com/rescuedex/apicheck/schema"
)

// Built-in response schemas for the Rescuedex aggregator API.
// Full schemas cover every documented field of a payload; the essential
// variants cover only the fields the UI needs, for faster smoke checks.

var (
	// Dog describes a full dog record as returned by /api/dogs/{id}.
	Dog = schema.Schema{
		"id": {
			Type:        schema.TypeNumber,
			Required:    true,
			Min:         floatPtr(1),
			Description: "Unique dog identifier",
		},
		"name": {
			Type:        schema.TypeString,
			Required:    true,
			MinLength:   intPtr(1),
			MaxLength:   intPtr(100),
			Description: "Dog call name",
		},
		"breed": {
			Type:        schema.TypeString,
			Required:    true,
			MinLength:   intPtr(1),
			Description: "Primary breed, or 'mixed'",
		},
		"age_months": {
			Type:        schema.TypeNumber,
			Min:         floatPtr(0),
			Max:         floatPtr(480),
			Description: "Estimated age in months",
		},
		"size": {
			Type:        schema.TypeString,
			Pattern:     "^(small|medium|large|xlarge)$",
			Description: "Size bucket used by the search filters",
		},
		"sex": {
			Type:    schema.TypeString,
			Pattern: "^(male|female|unknown)$",
		},
		"adoption_status": {
			Type:        schema.TypeString,
			Required:    true,
			Pattern:     "^(available|pending|adopted)$",
			Description: "Listing state shown on the card",
		},
		"photo_url": {
			Type:        schema.TypeURL,
			AllowNull:   true,
			Description: "Primary photo, null when the rescue has not uploaded one",
		},
		"description": {
			Type:      schema.TypeString,
			AllowNull: true,
			MaxLength: intPtr(5000),
		},
		"tags": {
			Type:        schema.TypeArray,
			MaxLength:   intPtr(32),
			Description: "Free-form attributes (house-trained, good-with-cats, ...)",
		},
		"organization_id": {
			Type:        schema.TypeNumber,
			Required:    true,
			Min:         floatPtr(1),
			Description: "Owning rescue organization",
		},
		"created_at": {
			Type:     schema.TypeDate,
			Required: true,
		},
		"updated_at": {
			Type: schema.TypeDate,
		},
	}

	// Organization describes a rescue organization record as returned by
	// /api/organizations/{id}.
	Organization = schema.Schema{
		"id": {
			Type:        schema.TypeNumber,
			Required:    true,
			Min:         floatPtr(1),
			Description: "Unique organization identifier",
		},
		"name": {
			Type:      schema.TypeString,
			Required:  true,
			MinLength: intPtr(1),
			MaxLength: intPtr(200),
		},
		"email": {
			Type:        schema.TypeEmail,
			Required:    true,
			Description: "Adoption inquiry contact",
		},
		"website": {
			Type:      schema.TypeURL,
			AllowNull: true,
		},
		"city": {
			Type: schema.TypeString,
		},
		"country": {
			Type:        schema.TypeString,
			Pattern:     "^[A-Z]{2}$",
			Description: "ISO 3166-1 alpha-2 country code",
		},
		"active": {
			Type:     schema.TypeBoolean,
			Required: true,
		},
		"dog_count": {
			Type: schema.TypeNumber,
			Min:  floatPtr(0),
		},
	}

	// Meta describes the pagination envelope wrapped around list responses.
	Meta = schema.Schema{
		"total": {
			Type:     schema.TypeNumber,
			Required: true,
			Min:      floatPtr(0),
		},
		"page": {
			Type:     schema.TypeNumber,
			Required: true,
			Min:      floatPtr(1),
		},
		"per_page": {
			Type:     schema.TypeNumber,
			Required: true,
			Min:      floatPtr(1),
			Max:      floatPtr(100),
		},
	}

	// DogEssential is the reduced tier of Dog checked on every page load.
	DogEssential = registry.Pick(Dog,
		"id", "name", "breed", "adoption_status", "photo_url")

	// OrganizationEssential is the reduced tier of Organization.
	OrganizationEssential = registry.Pick(Organization,
		"id", "name", "active")
)

// Builtin returns a built-in schema by name.
func Builtin(name string) (schema.Schema, bool) {
	switch name {
	case "dog":
		return Dog, true
	case "dog_essential":
		return DogEssential, true
	case "organization":
		return Organization, true
	case "organization_essential":
		return OrganizationEssential, true
	case "meta":
		return Meta, true
	default:
		return nil, false
	}
}

// Names returns the names of all built-in schemas.
// This is useful for CLI help text and documentation.
func Names() []string {
	return []string{
		"dog",
		"dog_essential",
		"organization",
		"organization_essential",
		"meta",
	}
}

// NewRegistry returns a registry pre-populated with every built-in schema.
func NewRegistry() *registry.Registry {
	reg := registry.New()
	for _, name := range Names() {
		s, _ := Builtin(name)
		reg.Register(name, s)
	}
	return reg
}

// intPtr returns a pointer to an int.
// Helper function for setting length constraints in schemas.
func intPtr(i int) *int {
	return &i
}

// floatPtr returns a pointer to a float64.
// Helper function for setting numeric constraints in schemas.
func floatPtr(f float64) *float64 {
	return &f
}
