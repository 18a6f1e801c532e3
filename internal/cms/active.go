// Package cms holds the published content and the pipeline that loads and
// saves it.
package cms

import (
	"sync"

	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/rs/zerolog"
)

var cmsLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	cmsLogger = l
}

// Active is the currently published document. Only the loader and the save
// pipeline replace it; readers get private copies.
type Active struct {
	mu      sync.RWMutex
	doc     content.Document
	version uint64

	replaceNotifier func(version uint64)
}

func NewActive(doc content.Document) *Active {
	return &Active{doc: doc.Clone(), version: 1}
}

// Get returns a deep copy of the published document.
func (a *Active) Get() content.Document {
	doc, _ := a.Snapshot()
	return doc
}

// Snapshot returns a deep copy of the published document and its version.
func (a *Active) Snapshot() (content.Document, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.doc.Clone(), a.version
}

func (a *Active) Version() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.version
}

// Replace publishes doc and returns the new version. The notifier runs after
// the lock is released.
func (a *Active) Replace(doc content.Document) uint64 {
	a.mu.Lock()
	a.doc = doc.Clone()
	a.version++
	version := a.version
	notify := a.replaceNotifier
	a.mu.Unlock()

	if notify != nil {
		notify(version)
	}
	return version
}

// SetReplaceNotifier sets a function called every time the document is replaced.
func (a *Active) SetReplaceNotifier(notifier func(version uint64)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replaceNotifier = notifier
}
