package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/debemdeboas/oremos-juntos/internal/config"
)

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
	// isImage marks fields edited through the upload form.
	"isImage": func(name string) bool {
		name = strings.ToLower(name)
		return strings.Contains(name, "image") || strings.Contains(name, "avatar")
	},
}

// pages holds every page parsed together with the shared layout.
type pages struct {
	byName map[string]*template.Template
}

func parsePages(fsys fs.FS) (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template)}
	for _, name := range []string{
		config.TemplateLanding,
		config.TemplatePage,
		config.TemplateNotFound,
		config.TemplateLogin,
		config.TemplateAdmin,
		config.TemplateLeads,
	} {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys,
			path.Join(config.TemplatesLocalDir, config.TemplateLayout),
			path.Join(config.TemplatesLocalDir, name),
		)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", name, err)
		}
		p.byName[name] = tmpl
	}
	return p, nil
}

// render executes the whole page.
func (p *pages) render(w http.ResponseWriter, page string, status int, data any) {
	p.renderBlock(w, page, "layout", status, data)
}

// renderBlock executes one named template of page, for htmx swaps. Output is
// buffered so a failing template never leaves a half written response.
func (p *pages) renderBlock(w http.ResponseWriter, page, block string, status int, data any) {
	tmpl, ok := p.byName[page]
	if !ok {
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
		appLogger.Error().Err(err).Str("page", page).Str("block", block).Msg("Error executing template")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
