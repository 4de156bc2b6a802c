// Package schema validates decoded JSON API responses against declarative
// field schemas.
//
// A Schema maps field names to FieldRule values describing the expected type
// and constraints of each field. Validation is a pure function from a value
// and a schema to a Result: it performs no I/O, never panics, and never
// mutates its inputs, so concurrent invocations from parallel test workers
// are safe.
//
// # Defining Schemas
//
// Schemas are plain data, usually defined once as package-level
// configuration:
//
//	minLen := 1
//	min := 1.0
//	dog := schema.Schema{
//		"id":   {Type: schema.TypeNumber, Required: true, Min: &min},
//		"name": {Type: schema.TypeString, Required: true, MinLength: &minLen},
//		"tags": {Type: schema.TypeArray},
//	}
//
// Type constructors exist for the common cases:
//
//	rule := schema.String().WithRequired()
//
// # Validating
//
// ValidateObject checks a single decoded object; ValidateArray checks every
// element of a decoded array, tagging errors with positional paths:
//
//	result := schema.ValidateObject(body, dog)
//	if !result.Valid {
//		for _, fe := range result.Errors {
//			log.Println(fe)
//		}
//	}
//
// A Result is valid if and only if it carries no errors. Keys present in the
// value but absent from the schema produce warnings, never errors, so
// schemas can trail the real payload without breaking test runs.
//
// # Check Pipeline
//
// Each field passes through required, type, format, length, range, pattern,
// and custom-predicate checks. The required and type checks short-circuit
// the field; the remaining checks accumulate, so one field can report
// several violations in a single pass.
package schema
