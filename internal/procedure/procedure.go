// Package procedure implements the privileged save-content call: a server
// handler that re-checks the CMS password before writing, and the client the
// save pipeline uses to reach it.
package procedure

import (
	"crypto/subtle"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Path is where the procedure is mounted.
const Path = "/functions/v1/save-content"

var ErrUnauthorized = errors.New("unauthorized")

const (
	MsgWrongPassword    = "Senha incorreta"
	MsgMisconfiguration = "Server misconfiguration: CMS_PASSWORD not set"
)

var procLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	procLogger = l
}

type Request struct {
	Password string          `json:"password"`
	Content  json.RawMessage `json:"content"`
}

type Response struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Secret is the server-side password. It is never sent to the browser. A
// bcrypt hash takes precedence over a plain value.
type Secret struct {
	plain string
	hash  []byte
}

func NewSecret(plain, hash string) Secret {
	s := Secret{plain: plain}
	if hash != "" {
		s.hash = []byte(hash)
	}
	return s
}

func (s Secret) Configured() bool {
	return s.plain != "" || len(s.hash) > 0
}

func (s Secret) Verify(password string) bool {
	if password == "" {
		return false
	}
	if len(s.hash) > 0 {
		return bcrypt.CompareHashAndPassword(s.hash, []byte(password)) == nil
	}
	if s.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.plain), []byte(password)) == 1
}

// HashPassword returns a bcrypt hash suitable for CMS_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
