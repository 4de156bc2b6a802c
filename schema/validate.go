package schema

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
)

// emailPattern is intentionally loose: one non-space local part, an @, and a
// dotted domain. Stricter RFC 5322 matching rejects addresses real rescue
// organizations actually use.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dateLayouts are tried in order when parsing date fields.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateObject validates a decoded JSON value against a schema.
//
// If data is not an object (null, array, or primitive), the result carries a
// single root-level error and no field checks run. Otherwise every declared
// field is checked, all errors across all fields are accumulated, and every
// key present in data but absent from the schema produces a warning.
// Warnings never affect validity.
func ValidateObject(data any, s Schema) Result {
	return validateObject(data, s, "")
}

// ValidateArray validates a decoded JSON array against a per-element schema.
//
// If data is not an array, the result carries a single root-level error.
// Otherwise every element is validated as an object, with each element's
// errors and warnings tagged with its positional path ("[0]", "[1]", ...).
func ValidateArray(data any, item Schema) Result {
	if data == nil {
		return newResult([]FieldError{rootError(data, "array", "")}, nil)
	}
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return newResult([]FieldError{rootError(data, "array", "")}, nil)
	}

	var errs []FieldError
	var warnings []string
	for i := 0; i < v.Len(); i++ {
		pos := fmt.Sprintf("[%d]", i)
		r := validateObject(v.Index(i).Interface(), item, pos)
		errs = append(errs, r.Errors...)
		for _, w := range r.Warnings {
			warnings = append(warnings, pos+" "+w)
		}
	}
	return newResult(errs, warnings)
}

// ValidateField validates a single value against a single rule. A nil value
// is treated as an explicit null. The path, when non-empty, prefixes the
// field name in reported error paths.
func ValidateField(name string, value any, rule FieldRule, path string) []FieldError {
	return validateField(name, value, true, rule, path)
}

func validateObject(data any, s Schema, path string) Result {
	obj, ok := data.(map[string]any)
	if !ok {
		return newResult([]FieldError{rootError(data, "object", path)}, nil)
	}

	var errs []FieldError
	for _, name := range sortedKeys(s) {
		value, present := obj[name]
		errs = append(errs, validateField(name, value, present, s[name], path)...)
	}

	var warnings []string
	for _, name := range sortedKeys(obj) {
		if _, declared := s[name]; !declared {
			warnings = append(warnings, fmt.Sprintf("Unexpected field '%s' found in response", name))
		}
	}
	return newResult(errs, warnings)
}

// validateField runs the per-field check pipeline. The required and type
// checks short-circuit; all later checks accumulate, so a single field can
// report several violations in one pass.
func validateField(name string, value any, present bool, rule FieldRule, path string) []FieldError {
	if !present || value == nil {
		if rule.Required {
			// An explicit null is acceptable when the rule allows it;
			// absence never is.
			if present && rule.AllowNull {
				return nil
			}
			return []FieldError{fieldError(name, path, value, expectation(rule), "required field is missing")}
		}
		return nil
	}

	if fe, ok := checkType(name, value, rule, path); !ok {
		return []FieldError{fe}
	}

	var errs []FieldError
	errs = append(errs, checkFormat(name, value, rule, path)...)
	errs = append(errs, checkLength(name, value, rule, path)...)
	errs = append(errs, checkRange(name, value, rule, path)...)
	errs = append(errs, checkPattern(name, value, rule, path)...)

	if rule.Check != nil && !rule.Check(value) {
		errs = append(errs, fieldError(name, path, value, expectation(rule), "failed custom validation"))
	}
	return errs
}

// checkType verifies the runtime type of value against the rule's declared
// kind. On mismatch it returns the single error and ok=false so the caller
// stops checking the field; deeper checks are meaningless against the wrong
// type.
func checkType(name string, value any, rule FieldRule, path string) (FieldError, bool) {
	var ok bool
	switch rule.Type {
	case TypeString, TypeDate, TypeURL, TypeEmail:
		_, ok = value.(string)
	case TypeNumber:
		var num float64
		if num, ok = numericValue(value); ok && math.IsNaN(num) {
			return fieldError(name, path, value, expectation(rule), "expected number, got NaN"), false
		}
	case TypeBoolean:
		_, ok = value.(bool)
	case TypeArray:
		k := reflect.ValueOf(value).Kind()
		ok = k == reflect.Slice || k == reflect.Array
	case TypeObject:
		k := reflect.ValueOf(value).Kind()
		ok = k == reflect.Map || k == reflect.Struct
	default:
		return fieldError(name, path, value, string(rule.Type),
			fmt.Sprintf("unknown field type %q in schema", rule.Type)), false
	}

	if !ok {
		msg := fmt.Sprintf("expected %s, got %s", rule.Type, typeName(value))
		return fieldError(name, path, value, expectation(rule), msg), false
	}
	return FieldError{}, true
}

// checkFormat applies format checks to string-kinded fields. Date, URL and
// email types are checked implicitly; plain strings only when rule.Format is
// set. Format failures accumulate rather than short-circuit.
func checkFormat(name string, value any, rule FieldRule, path string) []FieldError {
	str, isStr := value.(string)
	if !isStr {
		return nil
	}

	format := rule.Format
	switch rule.Type {
	case TypeDate:
		format = "date-time"
	case TypeURL:
		format = "url"
	case TypeEmail:
		format = "email"
	case TypeString:
		// rule.Format as declared
	default:
		return nil
	}

	switch format {
	case "date-time":
		if !isISODateTime(str) {
			return []FieldError{fieldError(name, path, value, expectation(rule),
				"expected an ISO-8601 date-time string")}
		}
	case "url", "uri":
		if !isURL(str) {
			return []FieldError{fieldError(name, path, value, expectation(rule),
				"expected a valid URL")}
		}
	case "email":
		if !emailPattern.MatchString(str) {
			return []FieldError{fieldError(name, path, value, expectation(rule),
				"expected a valid email address")}
		}
	}
	return nil
}

// checkLength bounds string and array lengths. Each violated bound appends
// its own error.
func checkLength(name string, value any, rule FieldRule, path string) []FieldError {
	if rule.MinLength == nil && rule.MaxLength == nil {
		return nil
	}

	var n int
	switch rule.Type {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return nil
		}
		n = len(str)
	case TypeArray:
		v := reflect.ValueOf(value)
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return nil
		}
		n = v.Len()
	default:
		return nil
	}

	var errs []FieldError
	if rule.MinLength != nil && n < *rule.MinLength {
		errs = append(errs, fieldError(name, path, value, expectation(rule),
			fmt.Sprintf("length %d is less than minimum length %d", n, *rule.MinLength)))
	}
	if rule.MaxLength != nil && n > *rule.MaxLength {
		errs = append(errs, fieldError(name, path, value, expectation(rule),
			fmt.Sprintf("length %d is greater than maximum length %d", n, *rule.MaxLength)))
	}
	return errs
}

// checkRange bounds number values.
func checkRange(name string, value any, rule FieldRule, path string) []FieldError {
	if rule.Type != TypeNumber || (rule.Min == nil && rule.Max == nil) {
		return nil
	}
	num, ok := numericValue(value)
	if !ok {
		return nil
	}

	var errs []FieldError
	if rule.Min != nil && num < *rule.Min {
		errs = append(errs, fieldError(name, path, value, expectation(rule),
			fmt.Sprintf("value %v is less than minimum value %v", num, *rule.Min)))
	}
	if rule.Max != nil && num > *rule.Max {
		errs = append(errs, fieldError(name, path, value, expectation(rule),
			fmt.Sprintf("value %v is greater than maximum value %v", num, *rule.Max)))
	}
	return errs
}

// checkPattern tests string values against the rule's regular expression.
func checkPattern(name string, value any, rule FieldRule, path string) []FieldError {
	if rule.Type != TypeString || rule.Pattern == "" {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}

	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return []FieldError{fieldError(name, path, value, expectation(rule),
			fmt.Sprintf("invalid pattern %q: %v", rule.Pattern, err))}
	}
	if !re.MatchString(str) {
		return []FieldError{fieldError(name, path, value, expectation(rule),
			fmt.Sprintf("does not match pattern %q", rule.Pattern))}
	}
	return nil
}

// isISODateTime reports whether s parses as a date and carries an explicit
// time component. Requiring the literal "T" rejects bare dates such as
// "2024-01-15" even though they parse; the aggregator's API always emits
// full date-times, and a bare date there has historically meant a bug.
func isISODateTime(s string) bool {
	if !strings.Contains(s, "T") {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// isURL reports whether s parses as an absolute URL with a host.
func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// numericValue extracts a float64 from any numeric Go type. JSON decoding
// yields float64, but callers also validate hand-built maps with int fields.
func numericValue(value any) (float64, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

// typeName returns the JSON-level name of a value's type for error messages.
func typeName(value any) string {
	if value == nil {
		return "null"
	}
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// expectation returns the human-readable expectation for a rule, preferring
// the declared description.
func expectation(rule FieldRule) string {
	if rule.Description != "" {
		return rule.Description
	}
	return string(rule.Type)
}

func fieldError(name, path string, value any, expected, msg string) FieldError {
	return FieldError{
		Field:    name,
		Path:     joinPath(path, name),
		Expected: expected,
		Actual:   value,
		Message:  msg,
	}
}

func rootError(value any, expected, path string) FieldError {
	return FieldError{
		Path:     path,
		Expected: expected,
		Actual:   value,
		Message:  fmt.Sprintf("expected an %s, got %s", expected, typeName(value)),
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// sortedKeys returns the keys of a string-keyed map in sorted order so error
// and warning reporting stays deterministic across runs.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
