package registry

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rescuedex/apicheck/schema"
)

// document is the top-level structure of a schema YAML file.
type document struct {
	Schemas map[string]schemaDoc `yaml:"schemas"`
}

// schemaDoc declares one named schema. Extends names another schema in the
// same document whose fields are merged in before this one's own.
type schemaDoc struct {
	Extends string             `yaml:"extends,omitempty"`
	Fields  map[string]ruleDoc `yaml:"fields"`
}

// ruleDoc is the serializable subset of schema.FieldRule. Custom predicates
// are function values and deliberately have no YAML form; attach them in
// code after loading (see celrule for expression-based checks).
type ruleDoc struct {
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required,omitempty"`
	AllowNull   bool     `yaml:"allowNull,omitempty"`
	Format      string   `yaml:"format,omitempty"`
	MinLength   *int     `yaml:"minLength,omitempty"`
	MaxLength   *int     `yaml:"maxLength,omitempty"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Load parses a YAML schema document into named schemas.
//
// Example document:
//
//	schemas:
//	  dog:
//	    fields:
//	      id:   {type: number, required: true, min: 1}
//	      name: {type: string, required: true, minLength: 1}
//	  dog_essential:
//	    extends: dog
//	    fields:
//	      breed: {type: string}
func Load(r io.Reader) (map[string]schema.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}
	if len(doc.Schemas) == 0 {
		return nil, fmt.Errorf("schema document declares no schemas")
	}

	schemas := make(map[string]schema.Schema, len(doc.Schemas))
	names := make([]string, 0, len(doc.Schemas))
	for name := range doc.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, done := schemas[name]; done {
			continue
		}
		if err := resolve(name, doc.Schemas, schemas, map[string]bool{}); err != nil {
			return nil, err
		}
	}
	return schemas, nil
}

// LoadFile parses the YAML schema document at path.
func LoadFile(path string) (map[string]schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a YAML schema document from r and registers every schema it
// declares.
func (r *Registry) Load(src io.Reader) error {
	schemas, err := Load(src)
	if err != nil {
		return err
	}
	for name, s := range schemas {
		r.Register(name, s)
	}
	return nil
}

// LoadFile parses the YAML schema document at path and registers every
// schema it declares.
func (r *Registry) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open schema document: %w", err)
	}
	defer f.Close()
	return r.Load(f)
}

// resolve converts one declared schema, resolving its extends chain first.
// The visiting set detects cycles.
func resolve(name string, docs map[string]schemaDoc, out map[string]schema.Schema, visiting map[string]bool) error {
	if visiting[name] {
		return fmt.Errorf("schema %q: circular extends chain", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	doc, ok := docs[name]
	if !ok {
		return fmt.Errorf("schema %q: extends unknown schema", name)
	}

	base := schema.Schema{}
	if doc.Extends != "" {
		if _, done := out[doc.Extends]; !done {
			if err := resolve(doc.Extends, docs, out, visiting); err != nil {
				return err
			}
		}
		base = out[doc.Extends]
	}

	own := make(schema.Schema, len(doc.Fields))
	for fieldName, rd := range doc.Fields {
		rule, err := rd.toRule()
		if err != nil {
			return fmt.Errorf("schema %q, field %q: %w", name, fieldName, err)
		}
		own[fieldName] = rule
	}

	out[name] = Extend(base, own)
	return nil
}

func (rd ruleDoc) toRule() (schema.FieldRule, error) {
	ft := schema.FieldType(rd.Type)
	if !schema.ValidType(ft) {
		return schema.FieldRule{}, fmt.Errorf("unknown field type %q", rd.Type)
	}
	return schema.FieldRule{
		Type:        ft,
		Required:    rd.Required,
		AllowNull:   rd.AllowNull,
		Format:      rd.Format,
		MinLength:   rd.MinLength,
		MaxLength:   rd.MaxLength,
		Min:         rd.Min,
		Max:         rd.Max,
		Pattern:     rd.Pattern,
		Description: rd.Description,
	}, nil
}
