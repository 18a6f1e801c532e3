package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/rs/zerolog"
)

// Sessions ties the gate, the session store and the session cookie together.
type Sessions struct {
	gate   *Gate
	store  SessionStore
	ttl    time.Duration
	Secure bool

	now func() time.Time
}

func NewSessions(gate *Gate, store SessionStore, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Sessions{gate: gate, store: store, ttl: ttl, now: time.Now}
}

// Login opens a session when password passes the gate and sets the cookie.
func (s *Sessions) Login(ctx context.Context, w http.ResponseWriter, password string) (Session, error) {
	if !s.gate.Check(password) {
		return Session{}, ErrWrongPassword
	}

	token, err := newToken()
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	sess := Session{
		Token:     token,
		Password:  password,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSession,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	authLogger.Info().Msg("CMS session opened")
	return sess, nil
}

// Update stores changes to an existing session, such as its buffer id.
func (s *Sessions) Update(ctx context.Context, sess Session) error {
	return s.store.Save(ctx, sess)
}

func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(config.CookieSession); err == nil {
		if err := s.store.Delete(r.Context(), cookie.Value); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to delete session")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieSession,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) lookup(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(config.CookieSession)
	if err != nil || cookie.Value == "" {
		return Session{}, ErrSessionNotFound
	}
	sess, err := s.store.Get(r.Context(), cookie.Value)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// WithSession returns middleware that puts a valid session in the request
// context. Requests without one go through untouched.
func (s *Sessions) WithSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := s.lookup(r)
			if err != nil {
				if !errors.Is(err, ErrSessionNotFound) {
					zerolog.Ctx(r.Context()).Error().Err(err).Msg("Session lookup failed")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
		})
	}
}

// Enforce returns the session of r or answers 401, redirecting htmx clients
// to the gate.
func (s *Sessions) Enforce(w http.ResponseWriter, r *http.Request) (Session, error) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		zerolog.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("Unauthorized access attempt")
		w.Header().Add(config.HHxRedirect, "/admin")
		http.Error(w, config.ErrLoginRequired, http.StatusUnauthorized)
		return Session{}, ErrNoSession
	}
	return sess, nil
}
