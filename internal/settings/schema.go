// Package settings owns the schema of configurable options and turns stored
// and submitted data into fully-defaulted, type-sanitized Values.
//
// A Registry collects Field definitions (built-in ones plus any extensions
// registered by callers) and is finalized into an immutable Schema. The
// Schema then computes defaults, resolves persisted blobs and sanitizes raw
// form submissions. None of these operations fail on bad user data: every
// field degrades to its default or to the previously persisted value.
package settings

import (
	"errors"
	"fmt"
	"sync"
)

// FieldType selects how a field is sanitized and rendered.
type FieldType string

const (
	TypeText         FieldType = "text"
	TypeCheckbox     FieldType = "checkbox"
	TypeMulticheck   FieldType = "multicheck"
	TypeRadio        FieldType = "radio"
	TypeSelect       FieldType = "select"
	TypeNumber       FieldType = "number"
	TypeTextarea     FieldType = "textarea"
	TypeTextareaHTML FieldType = "textarea_html"
	TypeLicense      FieldType = "license"
)

// HasOptions reports whether fields of this type carry an option list.
func (t FieldType) HasOptions() bool {
	return t == TypeMulticheck || t == TypeRadio || t == TypeSelect
}

// Option is one entry of an ordered option list.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Field describes one configurable option.
type Field struct {
	Key     string    `json:"key" yaml:"key"`
	Name    string    `json:"name,omitempty" yaml:"name"`
	Desc    string    `json:"desc,omitempty" yaml:"desc"`
	Section string    `json:"section,omitempty" yaml:"section"`
	Type    FieldType `json:"type" yaml:"type"`
	Options []Option  `json:"options,omitempty" yaml:"options"`

	// Default is a bool, string or float64. For multicheck fields the bool
	// is applied to every option.
	Default any `json:"default,omitempty" yaml:"default"`

	// UI hints only. Sanitize never clamps to Min/Max.
	Size string   `json:"size,omitempty" yaml:"size"`
	Min  *float64 `json:"min,omitempty" yaml:"min"`
	Max  *float64 `json:"max,omitempty" yaml:"max"`
	Step *float64 `json:"step,omitempty" yaml:"step"`
}

// HasOption reports whether key is one of the field's option keys.
func (f Field) HasOption(key string) bool {
	for _, o := range f.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// ErrRegistryFinalized is returned when fields are registered after Finalize.
var ErrRegistryFinalized = errors.New("settings: registry already finalized")

// Registry collects field definitions before they are frozen into a Schema.
type Registry struct {
	mu        sync.Mutex
	fields    []Field
	index     map[string]int
	finalized *Schema
}

// NewRegistry creates a registry seeded with the given fields.
// It panics on duplicate or empty keys, which are programming errors.
func NewRegistry(fields ...Field) *Registry {
	r := &Registry{index: make(map[string]int)}
	if err := r.Register(fields...); err != nil {
		panic(err)
	}
	return r
}

// Register appends fields to the registry. Extensions call this before the
// registry is finalized; afterwards it returns ErrRegistryFinalized.
func (r *Registry) Register(fields ...Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized != nil {
		return ErrRegistryFinalized
	}
	for _, f := range fields {
		if f.Key == "" {
			return fmt.Errorf("settings: field with empty key")
		}
		if IsBookkeepingKey(f.Key) {
			return fmt.Errorf("settings: key %q is reserved", f.Key)
		}
		if _, ok := r.index[f.Key]; ok {
			return fmt.Errorf("settings: duplicate field %q", f.Key)
		}
		if f.Type.HasOptions() && len(f.Options) == 0 {
			return fmt.Errorf("settings: field %q has no options", f.Key)
		}
		if f.Type == TypeRadio || f.Type == TypeSelect {
			def, _ := f.Default.(string)
			if !f.HasOption(def) {
				return fmt.Errorf("settings: field %q default %q is not an option", f.Key, def)
			}
		}
		r.index[f.Key] = len(r.fields)
		r.fields = append(r.fields, cloneField(f))
	}
	return nil
}

// Finalize freezes the registry and returns the schema snapshot. Calling it
// again returns the same snapshot.
func (r *Registry) Finalize() *Schema {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized == nil {
		s := &Schema{
			fields: make([]Field, len(r.fields)),
			index:  make(map[string]int, len(r.fields)),
		}
		for i, f := range r.fields {
			s.fields[i] = cloneField(f)
			s.index[f.Key] = i
		}
		r.finalized = s
	}
	return r.finalized
}

// Schema is an immutable, ordered set of fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// Fields returns a copy of the schema entries in display order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = cloneField(f)
	}
	return out
}

// Field returns the schema entry for key.
func (s *Schema) Field(key string) (Field, bool) {
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	return cloneField(s.fields[i]), true
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Sections returns the distinct section names in first-seen order.
func (s *Schema) Sections() []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range s.fields {
		if !seen[f.Section] {
			seen[f.Section] = true
			out = append(out, f.Section)
		}
	}
	return out
}

func cloneField(f Field) Field {
	if f.Options != nil {
		f.Options = append([]Option(nil), f.Options...)
	}
	return f
}
