// Package schema implements the declarative request validation engine: a
// request shape is an ordered list of named, typed, constrained fields
// evaluated against a plain key/value input, accumulating per-field errors
// into a per-request Result.
package schema

import "slices"

// Field declares one named attribute of a request shape. Required means the
// key must be present in the input; Nullable permits the kind-appropriate
// empty value.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Nullable bool
}

// Schema is a named, ordered set of field declarations. Schemas are built
// once at definition time and are immutable afterwards; each incoming
// request is evaluated into a fresh Result.
type Schema struct {
	name   string
	fields []Field
}

func New(name string, fields ...Field) *Schema {
	return &Schema{name: name, fields: fields}
}

func (s *Schema) Name() string { return s.name }

// Result holds the outcome of validating one input mapping: the accepted
// values, the accepted field names in declaration order, and a field->message
// mapping for everything that failed.
type Result struct {
	Values    map[string]any
	Populated []string
	Errors    map[string]string
}

// Valid reports whether every declared field passed. Downstream code must
// not consume Populated or Values unless Valid returns true.
func (r *Result) Valid() bool { return len(r.Errors) == 0 }

// Has reports whether every named field was populated.
func (r *Result) Has(names ...string) bool {
	for _, name := range names {
		if !slices.Contains(r.Populated, name) {
			return false
		}
	}
	return true
}

// String returns the populated value of a string field, or "" when the
// field was not populated.
func (r *Result) String(name string) string {
	s, _ := r.Values[name].(string)
	return s
}

// Fail records a synthetic error against a field name, for request-level
// policies evaluated after per-field validation.
func (r *Result) Fail(name, message string) {
	r.Errors[name] = message
}

// Validate evaluates every declared field, in declaration order, against
// the input mapping. An absent key fails only when the field is required;
// a present empty value fails when the field is not nullable; anything
// else runs the kind's semantic check and, on success, populates the field.
func (s *Schema) Validate(input map[string]any) *Result {
	res := &Result{
		Values: make(map[string]any),
		Errors: make(map[string]string),
	}

	for _, f := range s.fields {
		v, present := input[f.Name]
		if !present {
			if f.Required {
				res.Errors[f.Name] = (&RequiredError{Field: f.Name}).Error()
			}
			continue
		}
		if v == nil {
			if !f.Nullable {
				res.Errors[f.Name] = (&NullableError{Field: f.Name}).Error()
			}
			continue
		}
		if f.Kind.Empty(v) && !f.Nullable {
			res.Errors[f.Name] = (&NullableError{Field: f.Name}).Error()
			continue
		}
		if err := f.Kind.Validate(v); err != nil {
			res.Errors[f.Name] = err.Error()
			continue
		}
		res.Values[f.Name] = v
		res.Populated = append(res.Populated, f.Name)
	}

	return res
}
