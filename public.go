package main

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/debemdeboas/oremos-juntos/internal/leads"
	"github.com/debemdeboas/oremos-juntos/internal/model"
	"github.com/debemdeboas/oremos-juntos/internal/render"
)

// sectionBlock is one landing page section handed to its template.
type sectionBlock struct {
	Key    content.SectionKey
	Fields content.Fields
	Doc    *content.Document
}

type landingData struct {
	*model.PageData
	Doc      content.Document
	Sections []sectionBlock
}

func (a *app) serveLanding(w http.ResponseWriter, r *http.Request) {
	data := landingData{Doc: a.active.Get()}
	data.PageData = model.NewPageData(r, data.Doc)
	for _, b := range data.Doc.Layout() {
		data.Sections = append(data.Sections, sectionBlock{Key: b.Key, Fields: b.Fields, Doc: &data.Doc})
	}
	a.pages.render(w, config.TemplateLanding, http.StatusOK, data)
}

type legalData struct {
	*model.PageData
	Title   string
	Updated string
	Body    template.HTML
	Footer  content.Fields
	Pages   content.Fields
}

// serveLegal renders the pages.<key> text.
func (a *app) serveLegal(key, fallbackTitle string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := a.active.Get()
		texts := doc.Section(content.SectionPages)
		page := render.RenderPageCached(texts.String(key), fallbackTitle)

		a.pages.render(w, config.TemplatePage, http.StatusOK, legalData{
			PageData: model.NewPageData(r, doc),
			Title:    page.Title,
			Updated:  page.Updated,
			Body:     template.HTML(page.HTML),
			Footer:   doc.Section(content.SectionFooter),
			Pages:    texts,
		})
	}
}

type notFoundData struct {
	*model.PageData
	Fields content.Fields
}

func (a *app) serveNotFound(w http.ResponseWriter, r *http.Request) {
	doc := a.active.Get()
	a.pages.render(w, config.TemplateNotFound, http.StatusNotFound, notFoundData{
		PageData: model.NewPageData(r, doc),
		Fields:   doc.Section(content.SectionNotFound),
	})
}

type leadResult struct {
	OK    bool           `json:"success"`
	Error string         `json:"error,omitempty"`
	Modal content.Fields `json:"-"`
}

// serveRegisterLead takes the registration modal submission, either as a form
// (htmx) or as JSON.
func (a *app) serveRegisterLead(w http.ResponseWriter, r *http.Request) {
	l := zerolog.Ctx(r.Context())
	asJSON := strings.HasPrefix(r.Header.Get(config.HCType), config.CTypeJSON)

	var reg leads.Registration
	if asJSON {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&reg); err != nil {
			a.writeLeadResult(w, asJSON, http.StatusBadRequest, leadResult{Error: config.ErrLeadInvalid})
			return
		}
	} else {
		reg = leads.Registration{Name: r.FormValue("name"), Email: r.FormValue("email")}
	}

	_, err := a.leads.Register(r.Context(), reg)

	var invalid validation.Errors
	switch {
	case err == nil:
		a.writeLeadResult(w, asJSON, http.StatusCreated, leadResult{OK: true})
	case errors.As(err, &invalid):
		l.Debug().Err(err).Msg("Rejected registration")
		a.writeLeadResult(w, asJSON, http.StatusUnprocessableEntity, leadResult{Error: config.ErrLeadInvalid})
	default:
		l.Error().Err(err).Msg("Error saving registration")
		a.writeLeadResult(w, asJSON, http.StatusInternalServerError, leadResult{Error: config.ErrLeadSave})
	}
}

func (a *app) writeLeadResult(w http.ResponseWriter, asJSON bool, status int, res leadResult) {
	if asJSON {
		w.Header().Set(config.HCType, config.CTypeJSON)
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
		return
	}
	res.Modal = a.active.Get().Section(content.SectionRegistrationModal)
	a.pages.renderBlock(w, config.TemplateLanding, "lead-result", status, res)
}
