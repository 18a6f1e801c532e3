// Package render turns the legal page texts into HTML and highlights the
// content JSON shown in the admin panel.
package render

import (
	"errors"
	"sync"

	"github.com/debemdeboas/oremos-juntos/internal/cache"
	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/util"
	"github.com/gomarkdown/markdown"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/mmarkdown/mmark/v2/lang"
	"github.com/mmarkdown/mmark/v2/mparser"
	"github.com/mmarkdown/mmark/v2/render/mhtml"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

func rendererName() string {
	if config.AppConfig != nil && config.AppConfig.Content.MarkdownRenderer != "" {
		return config.AppConfig.Content.MarkdownRenderer
	}
	return config.DefaultMarkdownRenderer
}

// RenderMarkdown renders the body of md with the named renderer and returns
// it with the page's front matter. A malformed block is rendered as text.
func RenderMarkdown(md []byte, renderer string) ([]byte, PageMeta) {
	meta, body, err := SplitFrontMatter(md)
	if err != nil && !errors.Is(err, ErrNoFrontMatter) {
		renderLogger.Warn().Err(err).Msg("Ignoring page front matter")
	}

	switch renderer {
	case config.ClassicMarkdownRenderer:
		return RenderMarkdownClassic(body), meta
	default:
		return RenderMarkdownMmark(body, meta.Language), meta
	}
}

// Guards the check-render-set sequence of RenderPageCached
var renderCacheMutex sync.Mutex

// RenderPageCached renders a legal page text, reusing the result for as long
// as the text does not change. fallbackTitle is used when the text declares
// no title of its own.
func RenderPageCached(md string, fallbackTitle string) *cache.RenderedPage {
	renderer := rendererName()
	contentHash := util.ContentHashString(md)

	if cached, found := cache.GetRenderedPage(contentHash, renderer); found {
		renderLogger.Debug().Str("contentHash", contentHash).Msg("Cache hit for rendered page")
		return cached
	}

	renderCacheMutex.Lock()
	defer renderCacheMutex.Unlock()

	if cached, found := cache.GetRenderedPage(contentHash, renderer); found {
		return cached
	}

	renderLogger.Debug().Str("contentHash", contentHash).Str("renderer", renderer).Msg("Cache miss for rendered page")
	html, meta := RenderMarkdown([]byte(md), renderer)
	if meta.Title == "" {
		meta.Title = fallbackTitle
	}
	page := &cache.RenderedPage{HTML: html, Title: meta.Title, Updated: meta.Updated}
	cache.SetRenderedPage(contentHash, renderer, page)
	return page
}

func RenderMarkdownClassic(md []byte) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks,
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.Autolink | parser.Strikethrough | parser.SpaceHeadings |
			parser.HeadingIDs | parser.BackslashLineBreak | parser.DefinitionLists |
			parser.AutoHeadingIDs | parser.Footnotes | parser.OrderedListStart | parser.NonBlockingSpace,
	).Parse(md)

	return markdown.Render(doc, md_html.NewRenderer(opts))
}

// RenderMarkdownMmark renders md with the mmark extensions, localized to
// language.
func RenderMarkdownMmark(md []byte, language string) []byte {
	p := parser.NewWithExtensions(mparser.Extensions | parser.NoIntraEmphasis)
	p.Opts = parser.Options{
		ParserHook: mparser.Hook,
		Flags:      parser.FlagsNone,
	}

	doc := markdown.Parse(markdown.NormalizeNewlines(md), p)

	if language == "" {
		language = defaultLanguage
	}
	mhtmlOpts := mhtml.RendererOptions{
		Language: lang.New(language),
	}

	opts := md_html.RendererOptions{
		RenderNodeHook: mhtmlOpts.RenderHook,
		Flags:          md_html.CommonFlags | md_html.FootnoteNoHRTag | md_html.FootnoteReturnLinks,
	}

	return markdown.Render(doc, md_html.NewRenderer(opts))
}
