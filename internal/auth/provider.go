// Package auth gates the CMS panel behind the password stored in the content
// settings and keeps the resulting operator sessions.
package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/rs/zerolog"
)

var (
	ErrWrongPassword   = errors.New("wrong password")
	ErrSessionNotFound = errors.New("session not found")
	ErrNoSession       = errors.New("no session in context")
)

var authLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	authLogger = l
}

// PasswordSource returns the password currently required to open the panel.
type PasswordSource func() string

// Gate compares submitted passwords against a PasswordSource.
type Gate struct {
	password PasswordSource
}

func NewGate(password PasswordSource) *Gate {
	return &Gate{password: password}
}

// Check never accepts an empty password, even when none is configured.
func (g *Gate) Check(submitted string) bool {
	want := g.password()
	if submitted == "" || want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(want)) == 1
}
