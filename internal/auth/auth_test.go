package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func init() {
	SetLogger(zerolog.Nop())
}

func TestGate(t *testing.T) {
	password := "123"
	gate := NewGate(func() string { return password })

	tests := []struct {
		name      string
		submitted string
		want      bool
	}{
		{"Match", "123", true},
		{"Mismatch", "124", false},
		{"Prefix", "12", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Check(tt.submitted); got != tt.want {
				t.Errorf("Check(%q) = %v, want %v", tt.submitted, got, tt.want)
			}
		})
	}

	t.Run("Follows the current password", func(t *testing.T) {
		password = "novo"
		defer func() { password = "123" }()
		if gate.Check("123") || !gate.Check("novo") {
			t.Error("Gate did not pick up the new password")
		}
	})

	t.Run("Empty configured password locks the panel", func(t *testing.T) {
		locked := NewGate(func() string { return "" })
		if locked.Check("") {
			t.Error("Expected empty password to be refused")
		}
	})
}

func sessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sess := Session{Token: "tok", Password: "123", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Password != "123" {
		t.Errorf("Expected stored password, got %q", got.Password)
	}

	got.BufferID = "buf-1"
	if err := store.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if again, _ := store.Get(ctx, "tok"); again.BufferID != "buf-1" {
		t.Errorf("Expected buffer id to be kept, got %q", again.BufferID)
	}

	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "tok"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemorySessionStore(t *testing.T) {
	sessionStoreContract(t, NewMemorySessionStore())

	t.Run("Expired", func(t *testing.T) {
		store := NewMemorySessionStore()
		store.Save(context.Background(), Session{Token: "old", ExpiresAt: time.Now().Add(-time.Second)})
		if _, err := store.Get(context.Background(), "old"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected expired session to be gone, got %v", err)
		}
	})
}

func TestRedisSessionStore(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	store := NewRedisSessionStore(client)
	sessionStoreContract(t, store)

	t.Run("Expires with the session", func(t *testing.T) {
		store.Save(context.Background(), Session{Token: "short", ExpiresAt: time.Now().Add(time.Minute)})
		s.FastForward(2 * time.Minute)
		if _, err := store.Get(context.Background(), "short"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected expired session to be gone, got %v", err)
		}
	})
}

func TestSessions(t *testing.T) {
	sessions := NewSessions(NewGate(func() string { return "123" }), NewMemorySessionStore(), time.Hour)

	protected := sessions.WithSession()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Enforce(w, r)
		if err != nil {
			return
		}
		w.Write([]byte(sess.Password))
	}))

	t.Run("Wrong password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if _, err := sessions.Login(context.Background(), rec, "999"); !errors.Is(err, ErrWrongPassword) {
			t.Errorf("Expected ErrWrongPassword, got %v", err)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Error("No cookie expected on failure")
		}
	})

	t.Run("No session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/buffer", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
		if rec.Header().Get(config.HHxRedirect) != "/admin" {
			t.Error("Expected htmx redirect to the gate")
		}
	})

	t.Run("Login then access", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if _, err := sessions.Login(context.Background(), rec, "123"); err != nil {
			t.Fatalf("Login: %v", err)
		}
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != config.CookieSession || !cookies[0].HttpOnly {
			t.Fatalf("Unexpected cookies %+v", cookies)
		}

		req := httptest.NewRequest(http.MethodGet, "/admin/buffer", nil)
		req.AddCookie(cookies[0])
		rec = httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != "123" {
			t.Errorf("Expected session password, got %d %q", rec.Code, rec.Body.String())
		}

		t.Run("Logout", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
			req.AddCookie(cookies[0])
			sessions.Logout(httptest.NewRecorder(), req)

			req = httptest.NewRequest(http.MethodGet, "/admin/buffer", nil)
			req.AddCookie(cookies[0])
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 after logout, got %d", rec.Code)
			}
		})
	})
}
