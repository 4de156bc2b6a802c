// Package registry provides a named store for response schemas, plus helpers
// for deriving schemas from one another.
//
// A Registry is populated explicitly at process start, either in code:
//
//	reg := registry.New()
//	reg.Register("dog", dogSchema)
//	reg.Register("dog_essential", registry.Pick(dogSchema, "id", "name"))
//
// or from a declarative YAML document:
//
//	if err := reg.LoadFile("schemas.yaml"); err != nil {
//		log.Fatal(err)
//	}
//
// Extend merges two schemas explicitly; Pick derives the reduced "essential"
// tier used for fast smoke checks. The registry is safe for concurrent
// readers once populated.
package registry
