// Package celrule compiles CEL expressions into field predicates.
//
// Custom checks are function values and cannot live in a serialized schema
// document. celrule bridges that gap: a schema loaded from YAML can have
// expression-based checks attached after loading, without writing Go
// closures for each one.
package celrule
