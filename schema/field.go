package schema

// FieldType identifies the expected JSON type of a field.
type FieldType string

const (
	// TypeString expects a JSON string.
	TypeString FieldType = "string"

	// TypeNumber expects a JSON number. NaN is rejected.
	TypeNumber FieldType = "number"

	// TypeBoolean expects a JSON boolean.
	TypeBoolean FieldType = "boolean"

	// TypeArray expects a JSON array.
	TypeArray FieldType = "array"

	// TypeObject expects a JSON object (non-null, non-array).
	TypeObject FieldType = "object"

	// TypeDate expects an ISO-8601 date-time string (with a time component).
	TypeDate FieldType = "date"

	// TypeURL expects a string that parses as an absolute URL.
	TypeURL FieldType = "url"

	// TypeEmail expects a string matching a basic email shape.
	TypeEmail FieldType = "email"
)

// Predicate is a caller-supplied check applied to a field value after all
// declarative checks have passed. It must not mutate the value, and it must
// be safe for concurrent use since validation runs from parallel test workers.
type Predicate func(value any) bool

// FieldRule describes the constraints applied to a single field of a
// response payload. Rules are plain data and are treated as immutable once
// constructed; the Check predicate is deliberately the only part that cannot
// be expressed in a serialized schema document.
type FieldRule struct {
	// Type is the expected JSON type of the field.
	Type FieldType `json:"type"`

	// Required reports whether the field must be present and non-null.
	Required bool `json:"required,omitempty"`

	// AllowNull permits an explicit null for a required field.
	AllowNull bool `json:"allowNull,omitempty"`

	// Format applies an additional format check to string fields.
	// Supported values: "date-time", "url", "uri", "email".
	// Date, URL and email typed fields are format-checked implicitly.
	Format string `json:"format,omitempty"`

	// MinLength and MaxLength bound the length of string and array fields.
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// Min and Max bound the value of number fields.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// Pattern is a regular expression string fields must match.
	Pattern string `json:"pattern,omitempty"`

	// Check is an optional custom predicate, evaluated last.
	Check Predicate `json:"-"`

	// Description is a human-readable description of the field.
	Description string `json:"description,omitempty"`
}

// Schema maps field names to their rules. It describes one expected response
// payload shape (e.g., a dog record or an organization record). Field order
// is irrelevant; errors are reported in sorted field order for determinism.
type Schema map[string]FieldRule

// String creates a rule for a string field.
func String() FieldRule {
	return FieldRule{Type: TypeString}
}

// Number creates a rule for a number field.
func Number() FieldRule {
	return FieldRule{Type: TypeNumber}
}

// Bool creates a rule for a boolean field.
func Bool() FieldRule {
	return FieldRule{Type: TypeBoolean}
}

// Array creates a rule for an array field.
func Array() FieldRule {
	return FieldRule{Type: TypeArray}
}

// Object creates a rule for an object field.
func Object() FieldRule {
	return FieldRule{Type: TypeObject}
}

// Date creates a rule for an ISO-8601 date-time field.
func Date() FieldRule {
	return FieldRule{Type: TypeDate}
}

// URL creates a rule for a URL field.
func URL() FieldRule {
	return FieldRule{Type: TypeURL}
}

// Email creates a rule for an email field.
func Email() FieldRule {
	return FieldRule{Type: TypeEmail}
}

// WithRequired returns a copy of the rule marked as required.
// This method is immutable - it does not modify the receiver.
func (r FieldRule) WithRequired() FieldRule {
	r.Required = true
	return r
}

// WithCheck returns a copy of the rule with the given custom predicate attached.
// This method is immutable - it does not modify the receiver.
func (r FieldRule) WithCheck(p Predicate) FieldRule {
	r.Check = p
	return r
}

// WithDescription returns a copy of the rule with a description attached.
// This method is immutable - it does not modify the receiver.
func (r FieldRule) WithDescription(desc string) FieldRule {
	r.Description = desc
	return r
}

// knownTypes lists every valid FieldType, for schema-document validation.
var knownTypes = map[FieldType]bool{
	TypeString:  true,
	TypeNumber:  true,
	TypeBoolean: true,
	TypeArray:   true,
	TypeObject:  true,
	TypeDate:    true,
	TypeURL:     true,
	TypeEmail:   true,
}

// ValidType reports whether t is a recognized field type.
func ValidType(t FieldType) bool {
	return knownTypes[t]
}
