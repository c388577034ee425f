// Package codes issues the one-time values used to confirm registrations and reset passwords.
package codes

import (
	"fmt"
	"strings"

	"github.com/workoutdiary/workoutdiary/internal/models"
	"github.com/workoutdiary/workoutdiary/pkg/crypto"
)

// DefaultBytes is the entropy of an issued code (256 bits).
const DefaultBytes = 32

// minBytes keeps misconfiguration from issuing guessable codes.
const minBytes = 16

// Code is a freshly issued one-time code. Value is handed to the account owner and never
// stored; Hash is what the store persists and looks up.
type Code struct {
	Value   string
	Hash    string
	Purpose models.CodePurpose
}

// Generator issues one-time codes.
type Generator struct {
	size  int
	token func(int) (string, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithSize overrides the number of random bytes per code. Values below 16 are ignored.
func WithSize(size int) Option {
	return func(g *Generator) {
		if size >= minBytes {
			g.size = size
		}
	}
}

// WithTokenSource replaces the random source, for tests.
func WithTokenSource(fn func(int) (string, error)) Option {
	return func(g *Generator) {
		if fn != nil {
			g.token = fn
		}
	}
}

// NewGenerator constructs a Generator backed by crypto/rand.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:  DefaultBytes,
		token: crypto.GenerateToken,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Issue returns a new code for the given purpose.
func (g *Generator) Issue(purpose models.CodePurpose) (Code, error) {
	if !purpose.Valid() {
		return Code{}, fmt.Errorf("codes: unknown purpose %q", purpose)
	}

	value, err := g.token(g.size)
	if err != nil {
		return Code{}, fmt.Errorf("codes: generate value: %w", err)
	}

	return Code{
		Value:   value,
		Hash:    HashValue(value),
		Purpose: purpose,
	}, nil
}

// HashValue hashes a presented code into its stored form.
func HashValue(value string) string {
	return crypto.HashToken(strings.TrimSpace(value))
}
