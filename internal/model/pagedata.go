// Package model holds the data shared by every rendered page.
package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/debemdeboas/oremos-juntos/internal/cms"
	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/debemdeboas/oremos-juntos/internal/theme"
)

type PageData struct {
	SiteName    string
	Description string
	Language    string

	PageURL string

	Theme            string
	ThemeIcon        template.HTML
	AllowThemeSwitch bool

	SyntaxCSS template.CSS

	AnalyticsID   string
	AllowIndexing bool

	Toasts []cms.Toast
}

func NewPageData(r *http.Request, doc content.Document) *PageData {
	t := theme.GetThemeFromRequest(r)
	pd := &PageData{
		SiteName:         "Oremos Juntos",
		Language:         "pt-BR",
		PageURL:          r.URL.Path,
		Theme:            t,
		ThemeIcon:        template.HTML(theme.GetThemeIcon(t)),
		AllowThemeSwitch: true,
		AllowIndexing:    true,
		AnalyticsID:      doc.Settings().String("googleAnalyticsId"),
	}
	if cfg := config.AppConfig; cfg != nil {
		pd.SiteName = cfg.Site.Name
		pd.Description = cfg.Site.Description
		pd.Language = cfg.Site.Language
		pd.AllowThemeSwitch = cfg.Theme.AllowSwitching
		pd.AllowIndexing = cfg.Content.AllowIndexing
	}
	return pd
}

// WithSyntaxCSS adds the stylesheet of the syntax theme matching the request.
func (pd *PageData) WithSyntaxCSS(r *http.Request) *PageData {
	pd.SyntaxCSS = theme.GenerateSyntaxCSS(theme.GetSyntaxThemeFromRequest(r))
	return pd
}

func (pd *PageData) AddToast(t cms.Toast) {
	pd.Toasts = append(pd.Toasts, t)
}

func (pd *PageData) IsAdmin() bool {
	return pd.PageURL == "/admin" || strings.HasPrefix(pd.PageURL, "/admin/")
}
