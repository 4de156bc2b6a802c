// Package apicheck validates JSON API responses of the Rescuedex
// dog-adoption aggregator against declarative schemas.
//
// The core of the module is the schema package: a pure, synchronous
// validator that walks a declared field schema over a decoded JSON value
// and returns every violation as data. On top of it, this package provides
// a Checker that fetches an endpoint, decodes its body, and validates it
// against a named schema from a registry.
//
// # Packages
//
//   - schema: field rules, the validation pipeline, and results
//   - registry: named schema storage, Extend/Pick derivation, YAML loading
//   - catalog: the built-in Rescuedex response schemas
//   - celrule: CEL-expression custom predicates
//   - respcache: Redis-backed response body cache
//
// # Checking an Endpoint
//
//	reg := catalog.NewRegistry()
//	checker, err := apicheck.New(reg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer checker.Close()
//
//	report, err := checker.CheckObject(ctx, "https://api.rescuedex.example.com/dogs/42", "dog")
//	if err != nil {
//		log.Fatal(err) // the check could not run
//	}
//	if !report.Result.Valid {
//		for _, fe := range report.Result.Errors {
//			log.Println(fe)
//		}
//	}
//
// Validation failures are reported as data; the returned error covers only
// transport, decoding, and configuration problems. Warnings (such as fields
// the schema does not declare) are logged, never fatal.
//
// # Observability
//
// The Checker accepts OpenTelemetry tracer and meter providers via options.
// Each check produces one span and increments check and failure counters;
// with no providers configured both are no-ops.
package apicheck
