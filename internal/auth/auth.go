// Package auth resolves bearer tokens to buyer identities. Verification is
// delegated to the auth provider; this package only shapes the call.
package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// StaticVerifier resolves tokens from a fixed map. Development and tests
// only.
type StaticVerifier struct {
	identities map[string]Identity
}

// NewStaticVerifier accepts token -> "userID:email:name" entries, the format
// DEV_AUTH_TOKENS uses.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	identities := make(map[string]Identity, len(tokens))
	for token, triple := range tokens {
		parts := strings.SplitN(triple, ":", 3)
		id := Identity{UserID: parts[0]}
		if len(parts) > 1 {
			id.Email = parts[1]
		}
		if len(parts) > 2 {
			id.Name = parts[2]
		}
		identities[token] = id
	}
	return &StaticVerifier{identities: identities}
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (Identity, error) {
	id, ok := v.identities[token]
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return id, nil
}
