package content

import "slices"

// Orderable lists the sections that may appear in sectionOrder.
var Orderable = []SectionKey{
	SectionHero,
	SectionComingSoon,
	SectionGallery,
	SectionAppShowcase,
	SectionFeatures,
	SectionManifesto,
	SectionTestimonial,
	SectionSupport,
	SectionFooterCta,
}

// IsOrderable reports whether k may be placed in sectionOrder.
func (k SectionKey) IsOrderable() bool {
	return slices.Contains(Orderable, k)
}

// MoveSection swaps order[index] with its neighbour in direction dir. An index
// or neighbour outside the slice leaves the order as it was. Tokens are not
// checked against the schema.
func MoveSection(order []SectionKey, dir Direction, index int) []SectionKey {
	if index < 0 || index >= len(order) {
		return order
	}
	j := index + dir.step()
	if j < 0 || j >= len(order) {
		return order
	}
	out := slices.Clone(order)
	out[index], out[j] = out[j], out[index]
	return out
}

// MoveSection returns a copy of d with its section order changed.
func (d Document) MoveSection(dir Direction, index int) Document {
	out := d
	out.SectionOrder = MoveSection(d.SectionOrder, dir, index)
	return out
}

// Block is one region of the rendered landing page.
type Block struct {
	Key    SectionKey
	Fields Fields
}

// Layout returns the sections to render, in sectionOrder. Unknown tokens,
// tokens that are not orderable, repeated tokens and hidden sections are
// skipped.
func (d Document) Layout() []Block {
	blocks := make([]Block, 0, len(d.SectionOrder))
	seen := make(map[SectionKey]bool, len(d.SectionOrder))
	for _, key := range d.SectionOrder {
		if !key.IsOrderable() || seen[key] {
			continue
		}
		seen[key] = true
		fields := d.Section(key)
		if !fields.Visible() {
			continue
		}
		blocks = append(blocks, Block{Key: key, Fields: fields})
	}
	return blocks
}
