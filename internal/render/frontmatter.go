package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
)

const defaultLanguage = "pt"

// ErrNoFrontMatter means the text does not open with a %%% line.
var ErrNoFrontMatter = errors.New("no front matter")

// PageMeta is the TOML block a legal page text may open with:
//
//	%%%
//	title = "Política de Privacidade"
//	updated = "01/03/2025"
//	%%%
type PageMeta struct {
	Title    string `toml:"title"`
	Language string `toml:"language"`
	// Updated is shown as is under the page title.
	Updated string `toml:"updated"`
}

var (
	openDelimiter  = []byte("%%%\n")
	closeDelimiter = []byte("\n%%%")
)

// SplitFrontMatter separates the front matter of md from its body. Without a
// valid block the whole text is the body.
func SplitFrontMatter(md []byte) (PageMeta, []byte, error) {
	meta := PageMeta{Language: defaultLanguage}
	md = bytes.TrimLeft(markdown.NormalizeNewlines(md), "\n \t\r")

	rest, ok := bytes.CutPrefix(md, openDelimiter)
	if !ok {
		return meta, md, ErrNoFrontMatter
	}
	block, body, ok := bytes.Cut(rest, closeDelimiter)
	if !ok {
		return meta, md, fmt.Errorf("front matter is never closed")
	}

	if _, err := toml.Decode(string(block), &meta); err != nil {
		return PageMeta{Language: defaultLanguage}, md, fmt.Errorf("decode front matter: %w", err)
	}
	if meta.Language == "" {
		meta.Language = defaultLanguage
	}
	return meta, bytes.TrimLeft(body, " \t\n"), nil
}
