package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescuedex/apicheck/schema"
)

func sampleDog() map[string]any {
	return map[string]any{
		"id":              float64(42),
		"name":            "Clementine",
		"breed":           "beagle",
		"age_months":      float64(30),
		"size":            "medium",
		"sex":             "female",
		"adoption_status": "available",
		"photo_url":       "https://cdn.rescuedex.example.com/dogs/42.jpg",
		"description":     "Gentle beagle who loves car rides.",
		"tags":            []any{"house-trained", "good-with-kids"},
		"organization_id": float64(7),
		"created_at":      "2024-03-10T14:00:00Z",
		"updated_at":      "2024-05-01T09:30:00Z",
	}
}

func sampleOrganization() map[string]any {
	return map[string]any{
		"id":        float64(7),
		"name":      "Second Chance Beagle Rescue",
		"email":     "hello@scbr.example.org",
		"website":   "https://scbr.example.org",
		"city":      "Portland",
		"country":   "US",
		"active":    true,
		"dog_count": float64(23),
	}
}

func TestDogSchemaAcceptsFullRecord(t *testing.T) {
	result := schema.ValidateObject(sampleDog(), Dog)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestDogSchemaNullPhoto(t *testing.T) {
	dog := sampleDog()
	dog["photo_url"] = nil

	result := schema.ValidateObject(dog, Dog)
	assert.True(t, result.Valid, "null photo_url is allowed: %v", result.Errors)
}

func TestDogSchemaRejectsBadStatus(t *testing.T) {
	dog := sampleDog()
	dog["adoption_status"] = "on-hold"

	result := schema.ValidateObject(dog, Dog)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "adoption_status", result.Errors[0].Field)
}

func TestDogEssentialSubset(t *testing.T) {
	require.Len(t, DogEssential, 5)
	for name, rule := range DogEssential {
		assert.Equal(t, Dog[name], rule, "essential rule %q must match the full schema", name)
	}

	// A record that only carries the essential fields passes the essential
	// tier while the extra-field warnings stay out of the way.
	record := map[string]any{
		"id":              float64(1),
		"name":            "Mo",
		"breed":           "mixed",
		"adoption_status": "pending",
		"photo_url":       "https://cdn.rescuedex.example.com/dogs/1.jpg",
	}
	result := schema.ValidateObject(record, DogEssential)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestOrganizationSchema(t *testing.T) {
	result := schema.ValidateObject(sampleOrganization(), Organization)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	org := sampleOrganization()
	org["email"] = "not-an-email"
	org["country"] = "USA"
	result = schema.ValidateObject(org, Organization)
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
}

func TestMetaSchema(t *testing.T) {
	result := schema.ValidateObject(map[string]any{
		"total":    float64(120),
		"page":     float64(1),
		"per_page": float64(24),
	}, Meta)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	result = schema.ValidateObject(map[string]any{
		"total":    float64(120),
		"page":     float64(0),
		"per_page": float64(500),
	}, Meta)
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
}

func TestBuiltin(t *testing.T) {
	for _, name := range Names() {
		s, ok := Builtin(name)
		require.True(t, ok, "builtin %q should exist", name)
		assert.NotEmpty(t, s, "builtin %q should declare fields", name)
	}

	_, ok := Builtin("hamster")
	assert.False(t, ok)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, len(Names()), reg.Len())
	s, ok := reg.Get("dog")
	require.True(t, ok)
	assert.Equal(t, Dog, s)
}
