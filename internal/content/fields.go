package content

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownList    = errors.New("unknown list")
	ErrNotAField      = errors.New("not a scalar field")
)

// Fields is the payload of a section: named string or boolean values, plus
// nested objects one level deep.
type Fields map[string]any

// Clone copies f and every nested object in it.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = cloneValue(inner)
		}
		return out
	case Fields:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner)
		}
		return out
	}
	return v
}

// String returns the named field as a string, or "" when absent or not a string.
func (f Fields) String(name string) string {
	s, _ := f[name].(string)
	return s
}

// Bool returns the named field as a boolean, false when absent.
func (f Fields) Bool(name string) bool {
	b, _ := f[name].(bool)
	return b
}

// Visible reads the "visible" flag. Only an explicit false hides a section.
func (f Fields) Visible() bool {
	v, ok := f["visible"].(bool)
	return !ok || v
}

// Nested returns the named nested object, or nil.
func (f Fields) Nested(name string) map[string]any {
	switch t := f[name].(type) {
	case map[string]any:
		return t
	case Fields:
		return t
	}
	return nil
}

// FieldPath addresses a value inside a scalar section.
type FieldPath interface {
	fmt.Stringer
	apply(f Fields, value any) Fields
}

// Field addresses a top-level field of a section.
type Field string

func (p Field) String() string { return string(p) }

func (p Field) apply(f Fields, value any) Fields {
	out := maps.Clone(f)
	if out == nil {
		out = make(Fields, 1)
	}
	out[string(p)] = value
	return out
}

// Nested addresses a field one level down, inside the object named Outer.
type Nested struct {
	Outer string
	Inner string
}

func (p Nested) String() string { return p.Outer + "." + p.Inner }

func (p Nested) apply(f Fields, value any) Fields {
	out := maps.Clone(f)
	if out == nil {
		out = make(Fields, 1)
	}

	inner := make(map[string]any)
	if existing := f.Nested(p.Outer); existing != nil {
		inner = maps.Clone(existing)
	}
	inner[p.Inner] = value
	out[p.Outer] = inner
	return out
}

// ParseFieldPath turns "name" into Field and "outer.inner" into Nested.
func ParseFieldPath(s string) FieldPath {
	if outer, inner, ok := strings.Cut(s, "."); ok {
		return Nested{Outer: outer, Inner: inner}
	}
	return Field(s)
}

func rootName(p FieldPath) string {
	switch t := p.(type) {
	case Field:
		return string(t)
	case Nested:
		return t.Outer
	}
	return p.String()
}

// SetField returns a copy of d with one field of section replaced. Only the
// touched section is rebuilt; d is left as it was.
func (d Document) SetField(section SectionKey, path FieldPath, value any) (Document, error) {
	if !section.Known() {
		return d, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if section.IsList() && rootName(path) == ListKey {
		return d, fmt.Errorf("%w: %s.%s is a list", ErrNotAField, section, ListKey)
	}

	out := d.shallow()
	switch section {
	case SectionGallery:
		out.Gallery = ListSection[GalleryCard]{Fields: path.apply(d.Gallery.Fields, value), Items: d.Gallery.Items}
	case SectionFeatures:
		out.Features = ListSection[FeatureItem]{Fields: path.apply(d.Features.Fields, value), Items: d.Features.Items}
	case SectionAppFeatures:
		out.AppFeatures = ListSection[AppFeatureItem]{Fields: path.apply(d.AppFeatures.Fields, value), Items: d.AppFeatures.Items}
	default:
		out.Sections[section] = path.apply(d.Sections[section], value)
	}
	return out, nil
}
