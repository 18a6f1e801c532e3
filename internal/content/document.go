// Package content defines the editable landing page document, its compiled-in
// defaults, and the pure operations the CMS applies to it.
package content

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// SectionKey names a top-level region of the document.
type SectionKey string

const (
	SectionHeader            SectionKey = "header"
	SectionRegistrationModal SectionKey = "registrationModal"
	SectionHero              SectionKey = "hero"
	SectionComingSoon        SectionKey = "comingSoon"
	SectionGallery           SectionKey = "gallery"
	SectionManifesto         SectionKey = "manifesto"
	SectionSupport           SectionKey = "support"
	SectionFeatures          SectionKey = "features"
	SectionAppFeatures       SectionKey = "appFeatures"
	SectionTestimonial       SectionKey = "testimonial"
	SectionFooterCta         SectionKey = "footerCta"
	SectionFooter            SectionKey = "footer"
	SectionPages             SectionKey = "pages"
	SectionSettings          SectionKey = "settings"
	SectionNotFound          SectionKey = "notFound"
	SectionAppShowcase       SectionKey = "appShowcase"
)

// ListKey is the only list field a list-bearing section carries.
const ListKey = "items"

const sectionOrderKey = "sectionOrder"

// ScalarSections lists every section that is a plain mapping of fields.
var ScalarSections = []SectionKey{
	SectionHeader,
	SectionRegistrationModal,
	SectionHero,
	SectionComingSoon,
	SectionManifesto,
	SectionSupport,
	SectionTestimonial,
	SectionFooterCta,
	SectionFooter,
	SectionPages,
	SectionSettings,
	SectionNotFound,
	SectionAppShowcase,
}

// ListSections lists every section holding an ordered list of entries.
var ListSections = []SectionKey{
	SectionGallery,
	SectionFeatures,
	SectionAppFeatures,
}

// IsScalar reports whether key names a scalar section.
func (k SectionKey) IsScalar() bool {
	return slices.Contains(ScalarSections, k)
}

// IsList reports whether key names a list-bearing section.
func (k SectionKey) IsList() bool {
	return slices.Contains(ListSections, k)
}

// Known reports whether key is part of the schema.
func (k SectionKey) Known() bool {
	return k.IsScalar() || k.IsList()
}

// GalleryCard is one image card of the gallery section.
type GalleryCard struct {
	ID         string `json:"id"`
	ImageURL   string `json:"imageUrl"`
	Title      string `json:"title"`
	FooterText string `json:"footerText,omitempty"`
}

// FeatureItem is one entry of the features section.
type FeatureItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Icon  string `json:"icon"`
}

// AppFeatureItem is one entry of the app features navigation.
type AppFeatureItem struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StatusText  string `json:"statusText"`
	Icon        string `json:"icon"`
}

// ListSection is a section with scalar fields plus an ordered list of entries.
type ListSection[T any] struct {
	Fields Fields
	Items  []T
}

func (s ListSection[T]) clone() ListSection[T] {
	return ListSection[T]{
		Fields: s.Fields.Clone(),
		Items:  slices.Clone(s.Items),
	}
}

// Visible reports the section's visibility flag.
func (s ListSection[T]) Visible() bool {
	return s.Fields.Visible()
}

func (s ListSection[T]) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Fields)+1)
	for k, v := range s.Fields {
		out[k] = v
	}
	items := s.Items
	if items == nil {
		items = []T{}
	}
	out[ListKey] = items
	return json.Marshal(out)
}

// UnmarshalJSON decodes the section wholesale. A missing or null items field
// leaves Items nil so callers can tell it apart from an empty list.
func (s *ListSection[T]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var items []T
	if rawItems, ok := raw[ListKey]; ok {
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return fmt.Errorf("decoding %s: %w", ListKey, err)
		}
		delete(raw, ListKey)
	}

	fields := make(Fields, len(raw))
	for k, v := range raw {
		var value any
		if err := json.Unmarshal(v, &value); err != nil {
			return fmt.Errorf("decoding field %q: %w", k, err)
		}
		fields[k] = value
	}

	s.Fields = fields
	s.Items = items
	return nil
}

// Document is the full editable content backing the landing page.
type Document struct {
	Sections     map[SectionKey]Fields
	Gallery      ListSection[GalleryCard]
	Features     ListSection[FeatureItem]
	AppFeatures  ListSection[AppFeatureItem]
	SectionOrder []SectionKey
}

// Section returns the scalar fields of any section, list-bearing ones included.
// The returned map must not be mutated.
func (d Document) Section(key SectionKey) Fields {
	switch key {
	case SectionGallery:
		return d.Gallery.Fields
	case SectionFeatures:
		return d.Features.Fields
	case SectionAppFeatures:
		return d.AppFeatures.Fields
	}
	return d.Sections[key]
}

// Settings is a shortcut for the settings section.
func (d Document) Settings() Fields {
	return d.Sections[SectionSettings]
}

// Clone returns a deep copy sharing no mutable state with d.
func (d Document) Clone() Document {
	sections := make(map[SectionKey]Fields, len(d.Sections))
	for k, v := range d.Sections {
		sections[k] = v.Clone()
	}
	return Document{
		Sections:     sections,
		Gallery:      d.Gallery.clone(),
		Features:     d.Features.clone(),
		AppFeatures:  d.AppFeatures.clone(),
		SectionOrder: slices.Clone(d.SectionOrder),
	}
}

// shallow copies the top level so a single section can be swapped without
// touching the others.
func (d Document) shallow() Document {
	out := d
	out.Sections = maps.Clone(d.Sections)
	if out.Sections == nil {
		out.Sections = make(map[SectionKey]Fields)
	}
	return out
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Sections)+4)
	for k, v := range d.Sections {
		if v == nil {
			v = Fields{}
		}
		out[string(k)] = v
	}
	out[string(SectionGallery)] = d.Gallery
	out[string(SectionFeatures)] = d.Features
	out[string(SectionAppFeatures)] = d.AppFeatures

	order := d.SectionOrder
	if order == nil {
		order = []SectionKey{}
	}
	out[sectionOrderKey] = order
	return json.Marshal(out)
}

// UnmarshalJSON decodes a complete document. Persisted blobs that may be stale
// go through Reconcile instead.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Reconcile(Document{}, data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
