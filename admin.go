package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/oremos-juntos/internal/auth"
	"github.com/debemdeboas/oremos-juntos/internal/cms"
	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/debemdeboas/oremos-juntos/internal/editor"
	"github.com/debemdeboas/oremos-juntos/internal/model"
	"github.com/debemdeboas/oremos-juntos/internal/render"
	"github.com/debemdeboas/oremos-juntos/internal/repository"
	"github.com/debemdeboas/oremos-juntos/internal/sse"
	"github.com/debemdeboas/oremos-juntos/internal/storage"
	"github.com/debemdeboas/oremos-juntos/internal/theme"
)

const defaultMaxUpload = 10 << 20

// errBufferReseeded means the session pointed at a buffer that no longer
// exists and a fresh one was seeded in its place.
var errBufferReseeded = errors.New("edit buffer expired and was reseeded")

// editorSections is the order sections are listed in the panel.
var editorSections = []content.SectionKey{
	content.SectionHeader,
	content.SectionHero,
	content.SectionComingSoon,
	content.SectionGallery,
	content.SectionAppShowcase,
	content.SectionFeatures,
	content.SectionAppFeatures,
	content.SectionManifesto,
	content.SectionTestimonial,
	content.SectionSupport,
	content.SectionFooterCta,
	content.SectionFooter,
	content.SectionRegistrationModal,
	content.SectionNotFound,
	content.SectionPages,
	content.SectionSettings,
}

type fieldView struct {
	Path  string
	Value any
	Kind  string // text, long or bool
}

type itemView struct {
	ID       string
	ImageURL string
	Fields   []fieldView
}

type sectionView struct {
	Key    content.SectionKey
	IsList bool
	Fields []fieldView
	Items  []itemView
}

type orderView struct {
	Index   int
	Key     content.SectionKey
	Visible bool
	Last    bool
}

type adminData struct {
	*model.PageData
	Buffer   *editor.Buffer
	Behind   bool
	Sections []sectionView
	Order    []orderView
	Preview  template.HTML
}

type loginData struct {
	*model.PageData
	Error string
}

type leadsData struct {
	*model.PageData
	Leads []repository.Lead
	Error string
}

func fieldKind(v any) string {
	switch t := v.(type) {
	case bool:
		return "bool"
	case string:
		if len(t) > 80 {
			return "long"
		}
	}
	return "text"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// fieldViews flattens f into editable fields, nested objects as outer.inner.
func fieldViews(f content.Fields) []fieldView {
	var out []fieldView
	for _, name := range sortedKeys(f) {
		if nested, ok := f[name].(map[string]any); ok {
			for _, inner := range sortedKeys(nested) {
				out = append(out, fieldView{Path: name + "." + inner, Value: nested[inner], Kind: fieldKind(nested[inner])})
			}
			continue
		}
		out = append(out, fieldView{Path: name, Value: f[name], Kind: fieldKind(f[name])})
	}
	return out
}

func text(name, value string) fieldView {
	return fieldView{Path: name, Value: value, Kind: fieldKind(value)}
}

func buildSections(doc content.Document) []sectionView {
	views := make([]sectionView, 0, len(editorSections))
	for _, key := range editorSections {
		v := sectionView{Key: key, IsList: key.IsList(), Fields: fieldViews(doc.Section(key))}
		switch key {
		case content.SectionGallery:
			for _, c := range doc.Gallery.Items {
				v.Items = append(v.Items, itemView{ID: c.ID, ImageURL: c.ImageURL, Fields: []fieldView{
					text("title", c.Title), text("imageUrl", c.ImageURL), text("footerText", c.FooterText),
				}})
			}
		case content.SectionFeatures:
			for _, f := range doc.Features.Items {
				v.Items = append(v.Items, itemView{ID: f.ID, Fields: []fieldView{
					text("title", f.Title), text("desc", f.Desc), text("icon", f.Icon),
				}})
			}
		case content.SectionAppFeatures:
			for _, f := range doc.AppFeatures.Items {
				v.Items = append(v.Items, itemView{ID: f.ID, Fields: []fieldView{
					text("key", f.Key), text("title", f.Title), text("description", f.Description),
					text("statusText", f.StatusText), text("icon", f.Icon),
				}})
			}
		}
		views = append(views, v)
	}
	return views
}

func buildOrder(doc content.Document) []orderView {
	out := make([]orderView, len(doc.SectionOrder))
	for i, key := range doc.SectionOrder {
		out[i] = orderView{
			Index:   i,
			Key:     key,
			Visible: key.IsOrderable() && doc.Section(key).Visible(),
			Last:    i == len(doc.SectionOrder)-1,
		}
	}
	return out
}

func (a *app) editorData(r *http.Request, buf *editor.Buffer) adminData {
	pd := model.NewPageData(r, buf.Doc).WithSyntaxCSS(r)
	pd.AnalyticsID = ""

	data := adminData{
		PageData: pd,
		Buffer:   buf,
		Behind:   buf.Behind(a.active.Version()),
		Sections: buildSections(buf.Doc),
		Order:    buildOrder(buf.Doc),
	}

	raw, err := json.Marshal(buf.Doc)
	if err == nil {
		data.Preview, err = render.HighlightJSON(raw, theme.GetSyntaxThemeFromRequest(r))
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Error rendering content preview")
	}
	return data
}

// toast delivers t once: over the session's event stream when the panel is
// listening, in the Hx-Trigger header otherwise. It must run before the
// status is written.
func (a *app) toast(w http.ResponseWriter, sess auth.Session, t cms.Toast) {
	payload, err := json.Marshal(t)
	if err != nil {
		return
	}
	if a.clients.Broadcast(sse.AdminTopic(sess.Token), sse.Event{Name: "toast", Data: string(payload)}) > 0 {
		return
	}
	w.Header().Set(config.HHxTrigger, headerJSON(fmt.Sprintf(`{"toast":%s}`, payload)))
}

// headerJSON escapes non-ASCII runes as \uXXXX. Browsers read response
// headers as Latin-1, and JSON only carries such runes inside strings.
func headerJSON(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&b, `\u%04x`, u)
		}
	}
	return b.String()
}

func errorToast(msg string) cms.Toast {
	return cms.Toast{Kind: cms.ToastError, Message: msg}
}

// seedBuffer opens a fresh buffer from the Active content and links it to sess.
func (a *app) seedBuffer(ctx context.Context, sess *auth.Session) (*editor.Buffer, error) {
	doc, version := a.active.Snapshot()
	buf, err := a.buffers.Create(ctx, doc, version)
	if err != nil {
		return nil, err
	}
	sess.BufferID = string(buf.ID)
	if err := a.sessions.Update(ctx, *sess); err != nil {
		return nil, err
	}
	return buf, nil
}

// openBuffer drops whatever buffer sess had and seeds a fresh one, so every
// opening of the panel starts from the Active content.
func (a *app) openBuffer(ctx context.Context, sess *auth.Session) (*editor.Buffer, error) {
	if sess.BufferID != "" {
		id := editor.BufferID(sess.BufferID)
		unlock := a.locks.Lock(id)
		err := a.buffers.Delete(ctx, id)
		unlock()
		if err != nil {
			appLogger.Warn().Err(err).Str("buffer_id", sess.BufferID).Msg("Error deleting previous edit buffer")
		}
	}
	return a.seedBuffer(ctx, sess)
}

// currentBuffer returns the buffer of sess, seeding one if it has none. When
// the linked buffer is gone the new one comes back with errBufferReseeded.
func (a *app) currentBuffer(ctx context.Context, sess *auth.Session) (*editor.Buffer, error) {
	expired := false
	if sess.BufferID != "" {
		buf, err := a.buffers.Get(ctx, editor.BufferID(sess.BufferID))
		if err == nil {
			return buf, nil
		}
		if !errors.Is(err, editor.ErrBufferNotFound) {
			return nil, err
		}
		expired = true
	}

	buf, err := a.seedBuffer(ctx, sess)
	if err != nil {
		return nil, err
	}
	if expired {
		return buf, errBufferReseeded
	}
	return buf, nil
}

// bufferFor enforces the session and resolves its buffer. When it returns
// false the response has been written.
func (a *app) bufferFor(w http.ResponseWriter, r *http.Request) (auth.Session, *editor.Buffer, bool) {
	sess, err := a.sessions.Enforce(w, r)
	if err != nil {
		return sess, nil, false
	}

	buf, err := a.currentBuffer(r.Context(), &sess)
	if errors.Is(err, errBufferReseeded) {
		a.toast(w, sess, errorToast(config.ErrBufferExpired))
		w.Header().Set(config.HHxRefresh, "true")
		w.WriteHeader(http.StatusConflict)
		return sess, nil, false
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error loading edit buffer")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return sess, nil, false
	}
	return sess, buf, true
}

// lockedBuffer is bufferFor holding the buffer's lock, with the buffer read
// once the lock is held. unlock must be called when ok is true.
func (a *app) lockedBuffer(w http.ResponseWriter, r *http.Request) (sess auth.Session, buf *editor.Buffer, unlock func(), ok bool) {
	sess, buf, ok = a.bufferFor(w, r)
	if !ok {
		return sess, nil, nil, false
	}

	unlock = a.locks.Lock(buf.ID)
	buf, err := a.buffers.Get(r.Context(), buf.ID)
	if err != nil {
		unlock()
		a.bufferError(w, r, sess, err)
		return sess, nil, nil, false
	}
	return sess, buf, unlock, true
}

// updateBuffer applies edit to the buffer under its lock. A rejected edit
// answers 400 and false; so does a failing store, with its own status.
func (a *app) updateBuffer(w http.ResponseWriter, r *http.Request, sess auth.Session, id editor.BufferID, edit func(*editor.Buffer) error) (*editor.Buffer, bool) {
	unlock := a.locks.Lock(id)
	defer unlock()

	var rejected error
	buf, err := editor.Update(r.Context(), a.buffers, id, func(b *editor.Buffer) error {
		rejected = edit(b)
		return rejected
	})
	if rejected != nil {
		zerolog.Ctx(r.Context()).Warn().Err(rejected).Str("path", r.URL.Path).Msg("Rejected edit")
		a.toast(w, sess, errorToast(config.ErrInvalidEdit))
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	if err != nil {
		a.bufferError(w, r, sess, err)
		return nil, false
	}
	return buf, true
}

func (a *app) bufferError(w http.ResponseWriter, r *http.Request, sess auth.Session, err error) {
	switch {
	case errors.Is(err, editor.ErrBufferNotFound):
		a.toast(w, sess, errorToast(config.ErrBufferExpired))
		w.Header().Set(config.HHxRefresh, "true")
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, editor.ErrBufferConflict):
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Edit buffer kept changing")
		a.toast(w, sess, errorToast(config.ErrBufferBusy))
		w.WriteHeader(http.StatusConflict)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error saving edit buffer")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
	}
}

func (a *app) renderEditor(w http.ResponseWriter, r *http.Request, buf *editor.Buffer) {
	a.pages.renderBlock(w, config.TemplateAdmin, "editor", http.StatusOK, a.editorData(r, buf))
}

type bufferEdit func(r *http.Request, buf *editor.Buffer) error

// withBuffer applies edit to the session's buffer. Structural edits answer
// with the re-rendered editor, field edits with 204.
func (a *app) withBuffer(edit bufferEdit, rerender bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, buf, ok := a.bufferFor(w, r)
		if !ok {
			return
		}

		buf, ok = a.updateBuffer(w, r, sess, buf.ID, func(b *editor.Buffer) error {
			return edit(r, b)
		})
		if !ok {
			return
		}

		if !rerender {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		a.renderEditor(w, r, buf)
	}
}

func sectionOf(r *http.Request) content.SectionKey {
	return content.SectionKey(r.FormValue("section"))
}

func listOf(r *http.Request) string {
	if list := r.FormValue("list"); list != "" {
		return list
	}
	return content.ListKey
}

func (a *app) editField(r *http.Request, buf *editor.Buffer) error {
	var value any = r.FormValue("value")
	if r.FormValue("kind") == "bool" {
		v := r.FormValue("value")
		value = v == "true" || v == "on"
	}
	return buf.SetField(sectionOf(r), r.FormValue("path"), value)
}

func (a *app) addItem(r *http.Request, buf *editor.Buffer) error {
	_, err := buf.AddItem(sectionOf(r), listOf(r), a.ids)
	return err
}

func (a *app) updateItem(r *http.Request, buf *editor.Buffer) error {
	return buf.UpdateItem(sectionOf(r), listOf(r), r.FormValue("id"), r.FormValue("field"), r.FormValue("value"))
}

func (a *app) removeItem(r *http.Request, buf *editor.Buffer) error {
	return buf.RemoveItem(sectionOf(r), listOf(r), r.FormValue("id"))
}

func (a *app) moveItem(r *http.Request, buf *editor.Buffer) error {
	dir, err := content.ParseDirection(r.FormValue("direction"))
	if err != nil {
		return err
	}
	return buf.MoveItem(sectionOf(r), listOf(r), r.FormValue("id"), dir)
}

func (a *app) moveSection(r *http.Request, buf *editor.Buffer) error {
	dir, err := content.ParseDirection(r.FormValue("direction"))
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		return fmt.Errorf("invalid index: %w", err)
	}
	buf.MoveSection(dir, index)
	return nil
}

func (a *app) serveAdmin(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		a.pages.render(w, config.TemplateLogin, http.StatusOK, loginData{PageData: model.NewPageData(r, a.active.Get())})
		return
	}

	// Full page loads open the panel anew; htmx requests keep the buffer.
	var buf *editor.Buffer
	var err error
	if r.Header.Get("Hx-Request") == "" {
		buf, err = a.openBuffer(r.Context(), &sess)
	} else {
		buf, err = a.currentBuffer(r.Context(), &sess)
	}
	if err != nil && !errors.Is(err, errBufferReseeded) {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error loading edit buffer")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	data := a.editorData(r, buf)
	if errors.Is(err, errBufferReseeded) {
		data.AddToast(errorToast(config.ErrBufferExpired))
	}
	a.pages.render(w, config.TemplateAdmin, http.StatusOK, data)
}

func (a *app) serveLogin(w http.ResponseWriter, r *http.Request) {
	_, err := a.sessions.Login(r.Context(), w, r.FormValue("password"))
	if errors.Is(err, auth.ErrWrongPassword) {
		data := loginData{PageData: model.NewPageData(r, a.active.Get()), Error: config.ErrWrongPassword}
		if r.Header.Get("Hx-Request") != "" {
			a.pages.renderBlock(w, config.TemplateLogin, "login-form", http.StatusUnauthorized, data)
			return
		}
		a.pages.render(w, config.TemplateLogin, http.StatusUnauthorized, data)
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error opening session")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Hx-Request") != "" {
		w.Header().Set(config.HHxRedirect, "/admin")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (a *app) serveLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := auth.SessionFromContext(r.Context()); ok && sess.BufferID != "" {
		if err := a.buffers.Delete(r.Context(), editor.BufferID(sess.BufferID)); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Error deleting edit buffer")
		}
	}
	a.sessions.Logout(w, r)

	if r.Header.Get("Hx-Request") != "" {
		w.Header().Set(config.HHxRedirect, "/admin")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// serveSave commits the buffer through the save pipeline, holding the buffer
// lock so no edit lands in between. On success the buffer is dropped and a
// fresh one is seeded from the new Active content; on failure it is kept for
// a retry.
func (a *app) serveSave(w http.ResponseWriter, r *http.Request) {
	sess, buf, unlock, ok := a.lockedBuffer(w, r)
	if !ok {
		return
	}
	defer unlock()
	l := zerolog.Ctx(r.Context())

	// A closed tab must not cut a write short.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), a.saveTimeout)
	defer cancel()

	out := a.saver.Save(ctx, sess.Password, buf.Doc)
	l.Info().
		Str("path", string(out.Path)).
		Uint64("version", out.Version).
		AnErr("primary_error", out.PrimaryErr).
		AnErr("error", out.Err).
		Msg("Save settled")

	a.toast(w, sess, out.Toast)
	if !out.OK() {
		a.renderEditor(w, r, buf)
		return
	}

	err := a.buffers.Drop(ctx, buf)
	switch {
	case errors.Is(err, editor.ErrBufferConflict):
		// Edited by another instance meanwhile: those edits stay pending.
		l.Warn().Err(err).Msg("Edit buffer changed during save")
		if current, err := a.buffers.Get(ctx, buf.ID); err == nil {
			buf = current
		}
		a.renderEditor(w, r, buf)
		return
	case err != nil && !errors.Is(err, editor.ErrBufferNotFound):
		l.Warn().Err(err).Msg("Error deleting saved buffer")
	}

	fresh, err := a.seedBuffer(ctx, &sess)
	if err != nil {
		l.Error().Err(err).Msg("Error seeding edit buffer")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}
	a.renderEditor(w, r, fresh)
}

func (a *app) serveDiscard(w http.ResponseWriter, r *http.Request) {
	sess, buf, unlock, ok := a.lockedBuffer(w, r)
	if !ok {
		return
	}
	defer unlock()
	if err := a.buffers.Delete(r.Context(), buf.ID); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Error deleting edit buffer")
	}
	fresh, err := a.seedBuffer(r.Context(), &sess)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error seeding edit buffer")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}
	a.renderEditor(w, r, fresh)
}

// serveUpload stores an image and writes its URL into the buffer. With an id
// it goes to that gallery card, which is also titled after the file;
// otherwise to section/path.
func (a *app) serveUpload(w http.ResponseWriter, r *http.Request) {
	sess, buf, ok := a.bufferFor(w, r)
	if !ok {
		return
	}
	l := zerolog.Ctx(r.Context())

	limit := a.maxUpload
	if limit <= 0 {
		limit = defaultMaxUpload
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.toast(w, sess, errorToast(config.ErrUploadTooLarge))
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		a.toast(w, sess, errorToast(config.ErrUploadFailed))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		a.toast(w, sess, errorToast(config.ErrUploadFailed))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get(config.HCType)
	if err := storage.CheckType(contentType); err != nil {
		l.Warn().Err(err).Str("filename", header.Filename).Msg("Rejected upload")
		a.toast(w, sess, errorToast(config.ErrUploadUnsupported))
		w.WriteHeader(http.StatusUnsupportedMediaType)
		return
	}

	url, err := a.images.Upload(r.Context(), storage.ObjectName(header.Filename), contentType, file, header.Size)
	if err != nil {
		l.Error().Err(err).Str("filename", header.Filename).Msg("Error uploading image")
		a.toast(w, sess, errorToast(config.ErrUploadFailed))
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	buf, ok = a.updateBuffer(w, r, sess, buf.ID, func(b *editor.Buffer) error {
		if id := r.FormValue("id"); id != "" {
			return b.SetGalleryImage(id, url, storage.TitleFromFilename(header.Filename))
		}
		return b.SetField(sectionOf(r), r.FormValue("path"), url)
	})
	if !ok {
		return
	}

	l.Info().Str("url", url).Msg("Image uploaded")
	a.renderEditor(w, r, buf)
}

func (a *app) serveExport(w http.ResponseWriter, r *http.Request) {
	_, buf, ok := a.bufferFor(w, r)
	if !ok {
		return
	}
	data, err := json.MarshalIndent(buf.Doc, "", "  ")
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error exporting content")
		http.Error(w, config.ErrInternalServerError, http.StatusInternalServerError)
		return
	}
	w.Header().Set(config.HCType, config.CTypeJSON)
	w.Header().Set("Content-Disposition", `attachment; filename="oremos-juntos-content.json"`)
	w.Write(data)
}

func (a *app) leadsPage(r *http.Request) leadsData {
	pd := model.NewPageData(r, a.active.Get())
	pd.AnalyticsID = ""
	data := leadsData{PageData: pd}

	list, err := a.leads.List(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error listing leads")
		data.Error = config.ErrLeadsLoad
	}
	data.Leads = list
	return data
}

func (a *app) serveLeads(w http.ResponseWriter, r *http.Request) {
	if _, err := a.sessions.Enforce(w, r); err != nil {
		return
	}
	a.pages.render(w, config.TemplateLeads, http.StatusOK, a.leadsPage(r))
}

func (a *app) serveLeadContacted(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Enforce(w, r)
	if err != nil {
		return
	}

	contacted, _ := strconv.ParseBool(r.FormValue("contacted"))
	if err := a.leads.SetContacted(r.Context(), r.PathValue("id"), contacted); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		} else {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error updating lead")
		}
		a.toast(w, sess, errorToast(config.ErrLeadUpdate))
		w.WriteHeader(status)
		return
	}
	a.pages.renderBlock(w, config.TemplateLeads, "leads-table", http.StatusOK, a.leadsPage(r))
}

func (a *app) serveLeadDelete(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Enforce(w, r)
	if err != nil {
		return
	}

	if err := a.leads.Delete(r.Context(), r.PathValue("id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		} else {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Error deleting lead")
		}
		a.toast(w, sess, errorToast(config.ErrLeadDelete))
		w.WriteHeader(status)
		return
	}
	w.WriteHeader(http.StatusOK)
}
