package editor

import (
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/google/uuid"
)

type BufferID string

// Buffer is an operator's private working copy of the content. Every
// mutation goes through the copy-on-write operations of the content package,
// so a Buffer never shares mutable state with the Active document it was
// seeded from.
type Buffer struct {
	ID  BufferID         `json:"id"`
	Doc content.Document `json:"doc"`

	// BaseVersion is the Active version the buffer was seeded from.
	BaseVersion uint64 `json:"base_version"`
	// Revision counts the saves of this buffer.
	Revision  uint64    `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBuffer seeds a buffer from a snapshot of the Active content.
func NewBuffer(doc content.Document, version uint64) *Buffer {
	now := time.Now().UTC()
	return &Buffer{
		ID:          BufferID(uuid.New().String()),
		Doc:         doc.Clone(),
		BaseVersion: version,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *Buffer) touch(doc content.Document) {
	b.Doc = doc
	b.UpdatedAt = time.Now().UTC()
}

// Behind reports whether Active moved on since the buffer was seeded.
func (b *Buffer) Behind(activeVersion uint64) bool {
	return activeVersion > b.BaseVersion
}

func (b *Buffer) SetField(section content.SectionKey, path string, value any) error {
	doc, err := b.Doc.SetField(section, content.ParseFieldPath(path), value)
	if err != nil {
		return err
	}
	b.touch(doc)
	return nil
}

// AddItem appends an entry built from the section's template and returns its id.
func (b *Buffer) AddItem(section content.SectionKey, listKey string, ids *content.IDSource) (string, error) {
	doc, id, err := b.Doc.AddItem(section, listKey, content.AddTemplate(section), ids)
	if err != nil {
		return "", err
	}
	b.touch(doc)
	return id, nil
}

func (b *Buffer) UpdateItem(section content.SectionKey, listKey, id, field, value string) error {
	doc, err := b.Doc.UpdateItem(section, listKey, id, field, value)
	if err != nil {
		return err
	}
	b.touch(doc)
	return nil
}

func (b *Buffer) RemoveItem(section content.SectionKey, listKey, id string) error {
	doc, err := b.Doc.RemoveItem(section, listKey, id)
	if err != nil {
		return err
	}
	b.touch(doc)
	return nil
}

func (b *Buffer) MoveItem(section content.SectionKey, listKey, id string, dir content.Direction) error {
	doc, err := b.Doc.MoveItem(section, listKey, id, dir)
	if err != nil {
		return err
	}
	b.touch(doc)
	return nil
}

func (b *Buffer) MoveSection(dir content.Direction, index int) {
	b.touch(b.Doc.MoveSection(dir, index))
}

// SetGalleryImage stores an uploaded image on a gallery card and titles the
// card after the file.
func (b *Buffer) SetGalleryImage(id, url, title string) error {
	doc, err := b.Doc.UpdateItem(content.SectionGallery, content.ListKey, id, "imageUrl", url)
	if err != nil {
		return err
	}
	if title != "" {
		if doc, err = doc.UpdateItem(content.SectionGallery, content.ListKey, id, "title", title); err != nil {
			return err
		}
	}
	b.touch(doc)
	return nil
}
