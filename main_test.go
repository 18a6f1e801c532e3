package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/oremos-juntos/internal/cms"
	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/debemdeboas/oremos-juntos/internal/editor"
)

const testPassword = "123"

type testSite struct {
	app    *app
	server *httptest.Server
	client *http.Client
}

// newTestSite serves the whole application, save procedure included, from one
// test server backed by in-memory sqlite.
func newTestSite(t *testing.T) *testSite {
	t.Helper()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Store.SQLitePath = ":memory:"
	cfg.Storage.FSDir = filepath.Join(t.TempDir(), "uploads")
	cfg.Secrets.CMSPassword = testPassword
	config.AppConfig = cfg

	srv := httptest.NewUnstartedServer(nil)
	cfg.CMS.ProcedureURL = "http://" + srv.Listener.Addr().String()

	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		t.Fatalf("openDatabase: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	a, err := newApp(ctx, cfg, database)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	srv.Config.Handler = a.handler(zerolog.Nop())
	srv.Start()
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testSite{app: a, server: srv, client: client}
}

func (s *testSite) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	res, err := s.client.Get(s.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return res, readBody(t, res)
}

func (s *testSite) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	res, err := s.client.PostForm(s.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return res, readBody(t, res)
}

func (s *testSite) login(t *testing.T) {
	t.Helper()
	res, _ := s.post(t, "/admin/login", url.Values{"password": {testPassword}})
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("login: expected 303, got %d", res.StatusCode)
	}
}

// export returns the session's edit buffer as served by the export route.
func (s *testSite) export(t *testing.T) content.Document {
	t.Helper()
	res, body := s.get(t, "/admin/buffer/export")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", res.StatusCode)
	}
	var doc content.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("export: %v", err)
	}
	return doc
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// triggerToast decodes the toast carried in the Hx-Trigger header of res.
func triggerToast(t *testing.T, res *http.Response) cms.Toast {
	t.Helper()
	header := res.Header.Get(config.HHxTrigger)
	for _, r := range header {
		if r >= utf8.RuneSelf {
			t.Fatalf("Hx-Trigger is not ASCII: %q", header)
		}
	}
	var trigger struct {
		Toast cms.Toast `json:"toast"`
	}
	if err := json.Unmarshal([]byte(header), &trigger); err != nil {
		t.Fatalf("Hx-Trigger %q: %v", header, err)
	}
	return trigger.Toast
}

func TestPublicPages(t *testing.T) {
	site := newTestSite(t)

	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"landing", "/", http.StatusOK, "Oremos Juntos: Um Refúgio em Breve."},
		{"landing gallery", "/", http.StatusOK, "Cards que Edificam"},
		{"privacy", "/privacy", http.StatusOK, "Respeitamos seu silêncio"},
		{"terms", "/terms", http.StatusOK, "edificação mútua"},
		{"not found", "/nao-existe", http.StatusNotFound, "Um caminho inesperado"},
		{"robots", "/robots.txt", http.StatusOK, "Disallow: /admin"},
		{"static", "/static/app.js", http.StatusOK, "htmx:beforeSwap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := site.get(t, tt.path)
			if res.StatusCode != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, res.StatusCode)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("Expected body to contain %q", tt.want)
			}
		})
	}

	t.Run("secure headers", func(t *testing.T) {
		res, _ := site.get(t, "/")
		if res.Header.Get("X-Frame-Options") != "deny" {
			t.Errorf("Expected X-Frame-Options deny, got %q", res.Header.Get("X-Frame-Options"))
		}
	})

	t.Run("static etag", func(t *testing.T) {
		res, _ := site.get(t, "/static/style.css")
		if res.Header.Get(config.HETag) == "" {
			t.Error("Expected an ETag on static files")
		}
	})
}

func TestLandingHidesInvisibleSections(t *testing.T) {
	site := newTestSite(t)

	doc := site.app.active.Get()
	doc, err := doc.SetField(content.SectionGallery, content.ParseFieldPath("visible"), false)
	if err != nil {
		t.Fatal(err)
	}
	site.app.active.Replace(doc)

	_, body := site.get(t, "/")
	if strings.Contains(body, "Cards que Edificam") {
		t.Error("Expected hidden gallery not to render")
	}
	if !strings.Contains(body, "Uma Experiência Sem Ruído") {
		t.Error("Expected the other sections to render")
	}
}

func TestRegisterLead(t *testing.T) {
	site := newTestSite(t)

	t.Run("json", func(t *testing.T) {
		res, err := site.client.Post(site.server.URL+"/api/leads", config.CTypeJSON,
			strings.NewReader(`{"name":"Maria","email":"Maria@Example.com"}`))
		if err != nil {
			t.Fatal(err)
		}
		body := readBody(t, res)
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", res.StatusCode, body)
		}
		if !strings.Contains(body, `"success":true`) {
			t.Errorf("Unexpected body %s", body)
		}
	})

	t.Run("json invalid", func(t *testing.T) {
		res, err := site.client.Post(site.server.URL+"/api/leads", config.CTypeJSON,
			strings.NewReader(`{"name":"","email":"nope"}`))
		if err != nil {
			t.Fatal(err)
		}
		body := readBody(t, res)
		if res.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422, got %d", res.StatusCode)
		}
		if !strings.Contains(body, config.ErrLeadInvalid) {
			t.Errorf("Expected validation message, got %s", body)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		res, err := site.client.Post(site.server.URL+"/api/leads", config.CTypeJSON, strings.NewReader(`{`))
		if err != nil {
			t.Fatal(err)
		}
		readBody(t, res)
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", res.StatusCode)
		}
	})

	t.Run("form", func(t *testing.T) {
		res, body := site.post(t, "/api/leads", url.Values{"name": {"João"}, "email": {"joao@example.com"}})
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", res.StatusCode)
		}
		if !strings.Contains(body, "Interesse registrado!") {
			t.Errorf("Expected success fragment, got %s", body)
		}
	})

	list, err := site.app.leads.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var emails []string
	for _, l := range list {
		emails = append(emails, l.Email)
	}
	if len(emails) != 2 || !strings.Contains(strings.Join(emails, ","), "maria@example.com") {
		t.Errorf("Unexpected leads %v", emails)
	}
}

func TestAdminRequiresSession(t *testing.T) {
	site := newTestSite(t)

	res, body := site.get(t, "/admin")
	if res.StatusCode != http.StatusOK || !strings.Contains(body, `name="password"`) {
		t.Fatalf("Expected the login page, got %d", res.StatusCode)
	}

	for _, path := range []string{"/admin/buffer/save", "/admin/buffer/field", "/admin/buffer/items/add"} {
		res, _ := site.post(t, path, url.Values{})
		if res.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, res.StatusCode)
		}
	}

	res, _ = site.get(t, "/admin/leads")
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("leads: expected 401, got %d", res.StatusCode)
	}
}

func TestAdminLogin(t *testing.T) {
	site := newTestSite(t)

	t.Run("wrong password", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, site.server.URL+"/admin/login", strings.NewReader("password=errada"))
		req.Header.Set(config.HCType, "application/x-www-form-urlencoded")
		req.Header.Set("Hx-Request", "true")
		res, err := site.client.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		body := readBody(t, res)
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("Expected 401, got %d", res.StatusCode)
		}
		if !strings.Contains(body, config.ErrWrongPassword) || strings.Contains(body, "<html") {
			t.Errorf("Expected only the login form with an error, got %s", body)
		}
	})

	t.Run("htmx login", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, site.server.URL+"/admin/login", strings.NewReader("password="+testPassword))
		req.Header.Set(config.HCType, "application/x-www-form-urlencoded")
		req.Header.Set("Hx-Request", "true")
		res, err := site.client.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		readBody(t, res)
		if res.StatusCode != http.StatusNoContent || res.Header.Get(config.HHxRedirect) != "/admin" {
			t.Fatalf("Expected 204 with Hx-Redirect, got %d %q", res.StatusCode, res.Header.Get(config.HHxRedirect))
		}
	})

	res, body := site.get(t, "/admin")
	if res.StatusCode != http.StatusOK || !strings.Contains(body, `id="editor"`) {
		t.Fatalf("Expected the editor, got %d", res.StatusCode)
	}

	site.post(t, "/admin/logout", nil)
	res, _ = site.post(t, "/admin/buffer/save", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", res.StatusCode)
	}
}

func TestAdminEditAndSave(t *testing.T) {
	site := newTestSite(t)
	site.login(t)

	heroTitle := func(doc content.Document) string {
		return doc.Section(content.SectionHero).String("title")
	}
	before := heroTitle(site.app.active.Get())

	res, _ := site.post(t, "/admin/buffer/field", url.Values{"section": {"hero"}, "path": {"title"}, "value": {"Teste"}})
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", res.StatusCode)
	}
	if got := heroTitle(site.export(t)); got != "Teste" {
		t.Errorf("Expected buffer title Teste, got %q", got)
	}
	if got := heroTitle(site.app.active.Get()); got != before {
		t.Errorf("Active content changed before save: %q", got)
	}

	res, _ = site.post(t, "/admin/buffer/save", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", res.StatusCode)
	}
	if toast := triggerToast(t, res); toast.Message != cms.MsgSavedPrimary || toast.Kind != cms.ToastSuccess {
		t.Errorf("Expected primary save toast, got %+v", toast)
	}
	if got := heroTitle(site.app.active.Get()); got != "Teste" {
		t.Errorf("Expected Active title Teste, got %q", got)
	}

	rec, err := site.app.store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	stored, err := content.Reconcile(content.Defaults(), rec.Content)
	if err != nil {
		t.Fatal(err)
	}
	if heroTitle(stored) != "Teste" {
		t.Errorf("Expected stored title Teste, got %q", heroTitle(stored))
	}

	_, body := site.get(t, "/")
	if !strings.Contains(body, "Teste") {
		t.Error("Expected landing page to show the saved title")
	}
}

func TestAdminDiscard(t *testing.T) {
	site := newTestSite(t)
	site.login(t)

	site.post(t, "/admin/buffer/field", url.Values{"section": {"hero"}, "path": {"title"}, "value": {"Rascunho"}})
	res, _ := site.post(t, "/admin/buffer/discard", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", res.StatusCode)
	}

	if diff := cmp.Diff(site.app.active.Get().Section(content.SectionHero), site.export(t).Section(content.SectionHero)); diff != "" {
		t.Errorf("Buffer differs from Active after discard (-active +buffer):\n%s", diff)
	}
}

func TestAdminListAndOrderEdits(t *testing.T) {
	site := newTestSite(t)
	site.login(t)

	t.Run("remove item", func(t *testing.T) {
		res, _ := site.post(t, "/admin/buffer/items/remove", url.Values{"section": {"gallery"}, "id": {"2"}})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", res.StatusCode)
		}
		var ids []string
		for _, c := range site.export(t).Gallery.Items {
			ids = append(ids, c.ID)
		}
		if diff := cmp.Diff([]string{"1", "3", "4"}, ids); diff != "" {
			t.Errorf("Unexpected gallery ids (-want +got):\n%s", diff)
		}
	})

	t.Run("add item", func(t *testing.T) {
		res, _ := site.post(t, "/admin/buffer/items/add", url.Values{"section": {"features"}})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", res.StatusCode)
		}
		items := site.export(t).Features.Items
		if len(items) != 4 || items[3].ID == "" {
			t.Errorf("Expected a fourth feature with an id, got %+v", items)
		}
	})

	t.Run("move section", func(t *testing.T) {
		res, _ := site.post(t, "/admin/buffer/sections/move", url.Values{"index": {"0"}, "direction": {"down"}})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", res.StatusCode)
		}
		order := site.export(t).SectionOrder
		if order[0] != content.SectionComingSoon || order[1] != content.SectionHero {
			t.Errorf("Unexpected order %v", order)
		}
	})

	t.Run("invalid edit", func(t *testing.T) {
		res, _ := site.post(t, "/admin/buffer/items/move", url.Values{"section": {"gallery"}, "id": {"1"}, "direction": {"sideways"}})
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", res.StatusCode)
		}
		if toast := triggerToast(t, res); toast.Message != config.ErrInvalidEdit {
			t.Errorf("Expected an error toast, got %+v", toast)
		}
	})
}

func TestAdminUpload(t *testing.T) {
	site := newTestSite(t)
	site.login(t)

	upload := func(t *testing.T, contentType string, fields map[string]string) *http.Response {
		t.Helper()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		for k, v := range fields {
			mw.WriteField(k, v)
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="Pôr do sol.png"`)
		h.Set(config.HCType, contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("\x89PNG\r\n\x1a\nfake"))
		mw.Close()

		res, err := site.client.Post(site.server.URL+"/admin/buffer/upload", mw.FormDataContentType(), &body)
		if err != nil {
			t.Fatal(err)
		}
		readBody(t, res)
		return res
	}

	t.Run("unsupported type", func(t *testing.T) {
		res := upload(t, "text/plain", map[string]string{"id": "1"})
		if res.StatusCode != http.StatusUnsupportedMediaType {
			t.Errorf("Expected 415, got %d", res.StatusCode)
		}
	})

	t.Run("gallery card", func(t *testing.T) {
		res := upload(t, "image/png", map[string]string{"id": "1"})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", res.StatusCode)
		}
		card := site.export(t).Gallery.Items[0]
		if card.Title != "Pôr do sol" {
			t.Errorf("Expected title from filename, got %q", card.Title)
		}
		if !strings.HasPrefix(card.ImageURL, config.UploadsURLPath) {
			t.Fatalf("Unexpected image url %q", card.ImageURL)
		}
		res, _ = site.get(t, card.ImageURL)
		if res.StatusCode != http.StatusOK {
			t.Errorf("Expected uploaded image to be served, got %d", res.StatusCode)
		}
	})

	t.Run("section field", func(t *testing.T) {
		res := upload(t, "image/png", map[string]string{"section": "manifesto", "path": "image"})
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", res.StatusCode)
		}
		if got := site.export(t).Section(content.SectionManifesto).String("image"); !strings.HasPrefix(got, config.UploadsURLPath) {
			t.Errorf("Unexpected manifesto image %q", got)
		}
	})
}

func TestAdminLeads(t *testing.T) {
	site := newTestSite(t)
	site.post(t, "/api/leads", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}})
	site.login(t)

	res, body := site.get(t, "/admin/leads")
	if res.StatusCode != http.StatusOK || !strings.Contains(body, "ana@example.com") {
		t.Fatalf("Expected the lead to be listed, got %d", res.StatusCode)
	}

	list, err := site.app.leads.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected one lead, got %v (%v)", list, err)
	}
	id := list[0].ID

	res, _ = site.post(t, "/admin/leads/"+id+"/contacted", url.Values{"contacted": {"true"}})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", res.StatusCode)
	}
	res, _ = site.post(t, "/admin/leads/missing/contacted", url.Values{"contacted": {"true"}})
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for a missing lead, got %d", res.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, site.server.URL+"/admin/leads/"+id, nil)
	res, err = site.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	readBody(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", res.StatusCode)
	}
	if list, _ := site.app.leads.List(context.Background()); len(list) != 0 {
		t.Errorf("Expected no leads after delete, got %d", len(list))
	}
}

func TestThemeToggle(t *testing.T) {
	site := newTestSite(t)

	res, _ := site.get(t, "/theme/toggle")
	if res.StatusCode != http.StatusOK || res.Header.Get(config.HHxRefresh) != "true" {
		t.Fatalf("Expected 200 with Hx-Refresh, got %d", res.StatusCode)
	}
	_, body := site.get(t, "/")
	if !strings.Contains(body, `data-theme="light"`) {
		t.Error("Expected the toggled theme to be applied")
	}
}

func TestAdminConcurrentFieldEdits(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(8))

	site := newTestSite(t)
	site.login(t)
	site.get(t, "/admin")

	const writers = 16
	for round := range 20 {
		value := fmt.Sprintf("r%d", round)

		var wg sync.WaitGroup
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := site.client.PostForm(site.server.URL+"/admin/buffer/field", url.Values{
					"section": {"hero"},
					"path":    {fmt.Sprintf("f%d", i)},
					"value":   {value},
				})
				if err != nil {
					t.Errorf("POST f%d: %v", i, err)
					return
				}
				io.Copy(io.Discard, res.Body)
				res.Body.Close()
				if res.StatusCode != http.StatusNoContent {
					t.Errorf("f%d: expected 204, got %d", i, res.StatusCode)
				}
			}()
		}
		wg.Wait()

		hero := site.export(t).Section(content.SectionHero)
		for i := range writers {
			if got := hero.String(fmt.Sprintf("f%d", i)); got != value {
				t.Fatalf("Round %d: edit f%d lost, buffer holds %q", round, i, got)
			}
		}
	}
}

func TestAdminReopenStartsFresh(t *testing.T) {
	site := newTestSite(t)
	site.login(t)
	active := site.app.active.Get().Section(content.SectionHero).String("title")

	edit := func() {
		t.Helper()
		res, _ := site.post(t, "/admin/buffer/field", url.Values{"section": {"hero"}, "path": {"title"}, "value": {"Teste"}})
		if res.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", res.StatusCode)
		}
	}

	t.Run("page load drops unsaved edits", func(t *testing.T) {
		edit()
		res, _ := site.get(t, "/admin")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", res.StatusCode)
		}
		if got := site.export(t).Section(content.SectionHero).String("title"); got != active {
			t.Errorf("Expected a fresh buffer with %q, got %q", active, got)
		}
	})

	t.Run("htmx requests keep the buffer", func(t *testing.T) {
		edit()
		req, _ := http.NewRequest(http.MethodGet, site.server.URL+"/admin", nil)
		req.Header.Set("Hx-Request", "true")
		res, err := site.client.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		readBody(t, res)
		if got := site.export(t).Section(content.SectionHero).String("title"); got != "Teste" {
			t.Errorf("Expected the buffer to be kept, got %q", got)
		}
	})
}

// brokenCreate fails every new buffer.
type brokenCreate struct {
	editor.Repository
}

func (brokenCreate) Create(context.Context, content.Document, uint64) (*editor.Buffer, error) {
	return nil, errors.New("buffer store unavailable")
}

func TestAdminSaveToastWhenReseedFails(t *testing.T) {
	site := newTestSite(t)
	site.login(t)

	res, _ := site.post(t, "/admin/buffer/field", url.Values{"section": {"hero"}, "path": {"title"}, "value": {"Teste"}})
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", res.StatusCode)
	}

	site.app.buffers = brokenCreate{site.app.buffers}
	res, _ = site.post(t, "/admin/buffer/save", nil)
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", res.StatusCode)
	}
	if toast := triggerToast(t, res); toast.Message != cms.MsgSavedPrimary {
		t.Errorf("Expected the save toast, got %+v", toast)
	}
	if got := site.app.active.Get().Section(content.SectionHero).String("title"); got != "Teste" {
		t.Errorf("Expected Active title Teste, got %q", got)
	}
}

func TestHeaderJSON(t *testing.T) {
	payload := `{"toast":{"type":"success","message":"Conteúdo atualizado 🙏"}}`
	got := headerJSON(payload)

	for _, r := range got {
		if r >= utf8.RuneSelf {
			t.Fatalf("Expected ASCII, got %q", got)
		}
	}
	var back, want any
	if err := json.Unmarshal([]byte(got), &back); err != nil {
		t.Fatalf("Escaped payload is not JSON: %v", err)
	}
	json.Unmarshal([]byte(payload), &want)
	if diff := cmp.Diff(want, back); diff != "" {
		t.Errorf("Payload changed (-want +got):\n%s", diff)
	}
}
