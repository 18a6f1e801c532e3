package procedure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/rs/zerolog"
)

type memoryWriter struct {
	mu    sync.Mutex
	calls int
	last  []byte
	err   error
}

func (m *memoryWriter) Upsert(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.last = append([]byte(nil), data...)
	return nil
}

func init() {
	SetLogger(zerolog.Nop())
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var res Response
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return rec, res
}

func TestSecret(t *testing.T) {
	hash, err := HashPassword("segredo")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	tests := []struct {
		name     string
		secret   Secret
		password string
		want     bool
	}{
		{"Plain match", NewSecret("segredo", ""), "segredo", true},
		{"Plain mismatch", NewSecret("segredo", ""), "errado", false},
		{"Empty password", NewSecret("segredo", ""), "", false},
		{"Hash match", NewSecret("", hash), "segredo", true},
		{"Hash wins over plain", NewSecret("outro", hash), "outro", false},
		{"Not configured", NewSecret("", ""), "qualquer", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.secret.Verify(tt.password); got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestHandler(t *testing.T) {
	t.Run("Preflight", func(t *testing.T) {
		h := NewHandler(NewSecret("123", ""), &memoryWriter{})
		req := httptest.NewRequest(http.MethodOptions, Path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected CORS header")
		}
	})

	t.Run("Secret not configured", func(t *testing.T) {
		store := &memoryWriter{}
		rec, res := post(t, NewHandler(NewSecret("", ""), store), `{"password":"123","content":{}}`)
		if rec.Code != http.StatusBadRequest || res.Error != MsgMisconfiguration {
			t.Errorf("Expected misconfiguration error, got %d %+v", rec.Code, res)
		}
		if store.calls != 0 {
			t.Error("Expected no write")
		}
	})

	t.Run("Wrong password", func(t *testing.T) {
		store := &memoryWriter{}
		rec, res := post(t, NewHandler(NewSecret("123", ""), store), `{"password":"456","content":{}}`)
		if rec.Code != http.StatusUnauthorized || res.Error != MsgWrongPassword {
			t.Errorf("Expected 401 Senha incorreta, got %d %+v", rec.Code, res)
		}
		if store.calls != 0 {
			t.Error("Expected no write")
		}
	})

	t.Run("Content must be an object", func(t *testing.T) {
		rec, _ := post(t, NewHandler(NewSecret("123", ""), &memoryWriter{}), `{"password":"123","content":[1]}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("Store failure", func(t *testing.T) {
		store := &memoryWriter{err: errors.New("disk full")}
		rec, res := post(t, NewHandler(NewSecret("123", ""), store), `{"password":"123","content":{"hero":{}}}`)
		if rec.Code != http.StatusBadRequest || !strings.Contains(res.Error, "disk full") {
			t.Errorf("Expected 400 with store error, got %d %+v", rec.Code, res)
		}
	})

	t.Run("Success", func(t *testing.T) {
		store := &memoryWriter{}
		rec, res := post(t, NewHandler(NewSecret("123", ""), store), `{"password":"123","content":{"hero":{"title":"Ok"}}}`)
		if rec.Code != http.StatusOK || !res.Success {
			t.Errorf("Expected success, got %d %+v", rec.Code, res)
		}
		if string(store.last) != `{"hero":{"title":"Ok"}}` {
			t.Errorf("Unexpected stored content %s", store.last)
		}
	})

	t.Run("Method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, Path, nil)
		rec := httptest.NewRecorder()
		NewHandler(NewSecret("123", ""), &memoryWriter{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", rec.Code)
		}
	})
}

func TestClient(t *testing.T) {
	store := &memoryWriter{}
	mux := http.NewServeMux()
	mux.Handle(Path, NewHandler(NewSecret("123", ""), store))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL+"/", srv.Client())
	doc := content.Defaults()

	t.Run("Saves with the right password", func(t *testing.T) {
		if err := client.SaveContent(context.Background(), "123", doc); err != nil {
			t.Fatalf("SaveContent: %v", err)
		}
		got, err := content.Reconcile(content.Defaults(), store.last)
		if err != nil {
			t.Fatalf("Reconcile: %v", err)
		}
		if got.Sections[content.SectionHero].String("title") != doc.Sections[content.SectionHero].String("title") {
			t.Error("Stored document does not match")
		}
	})

	t.Run("Wrong password is ErrUnauthorized", func(t *testing.T) {
		err := client.SaveContent(context.Background(), "errada", doc)
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("Unreachable server", func(t *testing.T) {
		dead := NewClient("http://127.0.0.1:1", nil)
		if err := dead.SaveContent(context.Background(), "123", doc); err == nil || errors.Is(err, ErrUnauthorized) {
			t.Errorf("Expected a transport error, got %v", err)
		}
	})

	t.Run("Error body with 200", func(t *testing.T) {
		odd := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"quota"}`))
		}))
		defer odd.Close()
		err := NewClient(odd.URL, odd.Client()).SaveContent(context.Background(), "123", doc)
		if err == nil || !strings.Contains(err.Error(), "quota") {
			t.Errorf("Expected quota error, got %v", err)
		}
	})
}
