package content

import (
	"fmt"
	"slices"
)

// Direction moves an entry or a section one step.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

func (d Direction) step() int {
	if d == Up {
		return -1
	}
	return 1
}

// Entry is an element of a list-bearing section, identified by a stable id.
type Entry[T any] interface {
	EntryID() string
	WithID(id string) T
	WithField(name, value string) (T, error)
}

// AddEntry appends a new entry built from template with a fresh id. The input
// slice is never written to.
func AddEntry[T Entry[T]](items []T, template T, ids *IDSource) []T {
	id := ids.Next(func(id string) bool {
		return slices.ContainsFunc(items, func(it T) bool { return it.EntryID() == id })
	})
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, template.WithID(id))
}

// UpdateEntry replaces one field on the entry matching id. An unknown id
// returns items unchanged.
func UpdateEntry[T Entry[T]](items []T, id, field, value string) ([]T, error) {
	i := slices.IndexFunc(items, func(it T) bool { return it.EntryID() == id })
	if i < 0 {
		return items, nil
	}
	updated, err := items[i].WithField(field, value)
	if err != nil {
		return items, err
	}
	out := slices.Clone(items)
	out[i] = updated
	return out, nil
}

// RemoveEntry drops the entry matching id.
func RemoveEntry[T Entry[T]](items []T, id string) []T {
	if !slices.ContainsFunc(items, func(it T) bool { return it.EntryID() == id }) {
		return items
	}
	out := make([]T, 0, len(items)-1)
	for _, it := range items {
		if it.EntryID() != id {
			out = append(out, it)
		}
	}
	return out
}

// MoveEntry swaps the entry matching id with its neighbour. Moves past either
// end are ignored.
func MoveEntry[T Entry[T]](items []T, id string, dir Direction) []T {
	i := slices.IndexFunc(items, func(it T) bool { return it.EntryID() == id })
	if i < 0 {
		return items
	}
	j := i + dir.step()
	if j < 0 || j >= len(items) {
		return items
	}
	out := slices.Clone(items)
	out[i], out[j] = out[j], out[i]
	return out
}

func (c GalleryCard) EntryID() string { return c.ID }

func (c GalleryCard) WithID(id string) GalleryCard {
	c.ID = id
	return c
}

func (c GalleryCard) WithField(name, value string) (GalleryCard, error) {
	switch name {
	case "imageUrl":
		c.ImageURL = value
	case "title":
		c.Title = value
	case "footerText":
		c.FooterText = value
	default:
		return c, fmt.Errorf("%w: gallery item has no field %q", ErrNotAField, name)
	}
	return c, nil
}

func (f FeatureItem) EntryID() string { return f.ID }

func (f FeatureItem) WithID(id string) FeatureItem {
	f.ID = id
	return f
}

func (f FeatureItem) WithField(name, value string) (FeatureItem, error) {
	switch name {
	case "title":
		f.Title = value
	case "desc":
		f.Desc = value
	case "icon":
		f.Icon = value
	default:
		return f, fmt.Errorf("%w: feature item has no field %q", ErrNotAField, name)
	}
	return f, nil
}

func (a AppFeatureItem) EntryID() string { return a.ID }

func (a AppFeatureItem) WithID(id string) AppFeatureItem {
	a.ID = id
	return a
}

func (a AppFeatureItem) WithField(name, value string) (AppFeatureItem, error) {
	switch name {
	case "key":
		a.Key = value
	case "title":
		a.Title = value
	case "description":
		a.Description = value
	case "statusText":
		a.StatusText = value
	case "icon":
		a.Icon = value
	default:
		return a, fmt.Errorf("%w: app feature item has no field %q", ErrNotAField, name)
	}
	return a, nil
}

// fromTemplate builds an entry out of loose string fields, ignoring any id.
func fromTemplate[T Entry[T]](zero T, template map[string]string) (T, error) {
	out := zero
	for name, value := range template {
		if name == "id" {
			continue
		}
		var err error
		if out, err = out.WithField(name, value); err != nil {
			return zero, err
		}
	}
	return out, nil
}

// AddTemplate returns the starting fields for a new entry of section.
func AddTemplate(section SectionKey) map[string]string {
	switch section {
	case SectionGallery:
		return map[string]string{"title": "Novo Card", "imageUrl": ""}
	case SectionFeatures:
		return map[string]string{"title": "Novo Recurso", "desc": "Descrição", "icon": "star"}
	case SectionAppFeatures:
		return map[string]string{
			"title":       "Nova Funcionalidade",
			"description": "Descrição...",
			"statusText":  "Em Breve",
			"icon":        "extension",
			"key":         "new",
		}
	}
	return nil
}

func checkList(section SectionKey, listKey string) error {
	if !section.IsList() {
		if section.Known() {
			return fmt.Errorf("%w: %s has no lists", ErrUnknownList, section)
		}
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if listKey != ListKey {
		return fmt.Errorf("%w: %s.%s", ErrUnknownList, section, listKey)
	}
	return nil
}

// AddItem appends a new entry to section.listKey. The new id is returned.
func (d Document) AddItem(section SectionKey, listKey string, template map[string]string, ids *IDSource) (Document, string, error) {
	if err := checkList(section, listKey); err != nil {
		return d, "", err
	}

	out := d.shallow()
	var newID string
	switch section {
	case SectionGallery:
		entry, err := fromTemplate(GalleryCard{}, template)
		if err != nil {
			return d, "", err
		}
		out.Gallery.Items = AddEntry(d.Gallery.Items, entry, ids)
		newID = out.Gallery.Items[len(out.Gallery.Items)-1].ID
	case SectionFeatures:
		entry, err := fromTemplate(FeatureItem{}, template)
		if err != nil {
			return d, "", err
		}
		out.Features.Items = AddEntry(d.Features.Items, entry, ids)
		newID = out.Features.Items[len(out.Features.Items)-1].ID
	case SectionAppFeatures:
		entry, err := fromTemplate(AppFeatureItem{}, template)
		if err != nil {
			return d, "", err
		}
		out.AppFeatures.Items = AddEntry(d.AppFeatures.Items, entry, ids)
		newID = out.AppFeatures.Items[len(out.AppFeatures.Items)-1].ID
	}
	return out, newID, nil
}

// UpdateItem sets one field of the entry matching id.
func (d Document) UpdateItem(section SectionKey, listKey, id, field, value string) (Document, error) {
	if err := checkList(section, listKey); err != nil {
		return d, err
	}

	out := d.shallow()
	var err error
	switch section {
	case SectionGallery:
		out.Gallery.Items, err = UpdateEntry(d.Gallery.Items, id, field, value)
	case SectionFeatures:
		out.Features.Items, err = UpdateEntry(d.Features.Items, id, field, value)
	case SectionAppFeatures:
		out.AppFeatures.Items, err = UpdateEntry(d.AppFeatures.Items, id, field, value)
	}
	if err != nil {
		return d, err
	}
	return out, nil
}

// RemoveItem drops the entry matching id.
func (d Document) RemoveItem(section SectionKey, listKey, id string) (Document, error) {
	if err := checkList(section, listKey); err != nil {
		return d, err
	}

	out := d.shallow()
	switch section {
	case SectionGallery:
		out.Gallery.Items = RemoveEntry(d.Gallery.Items, id)
	case SectionFeatures:
		out.Features.Items = RemoveEntry(d.Features.Items, id)
	case SectionAppFeatures:
		out.AppFeatures.Items = RemoveEntry(d.AppFeatures.Items, id)
	}
	return out, nil
}

// MoveItem swaps the entry matching id with its neighbour in direction dir.
func (d Document) MoveItem(section SectionKey, listKey, id string, dir Direction) (Document, error) {
	if err := checkList(section, listKey); err != nil {
		return d, err
	}

	out := d.shallow()
	switch section {
	case SectionGallery:
		out.Gallery.Items = MoveEntry(d.Gallery.Items, id, dir)
	case SectionFeatures:
		out.Features.Items = MoveEntry(d.Features.Items, id, dir)
	case SectionAppFeatures:
		out.AppFeatures.Items = MoveEntry(d.AppFeatures.Items, id, dir)
	}
	return out, nil
}
