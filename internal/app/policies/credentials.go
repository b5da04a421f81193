package policies

import (
	"context"
	"errors"
)

var ErrNoCredential = errors.New("policies: no credential available")

// Credential is the opaque caller identity presented to the booking
// store. Acquisition and refresh belong to an external auth collaborator;
// the core only carries the value.
type Credential struct {
	Token string
}

func (c Credential) Empty() bool { return c.Token == "" }

// CredentialProvider supplies the current credential for outbound calls.
// Implementations may refresh behind the scenes; callers must not cache
// the returned value across user actions.
type CredentialProvider interface {
	Credential(ctx context.Context) (Credential, error)
}

// StaticCredentials returns the same credential on every call. Useful for
// tests and for flows where the surrounding view already holds a token.
type StaticCredentials struct {
	Value Credential
}

func (s StaticCredentials) Credential(ctx context.Context) (Credential, error) {
	if s.Value.Empty() {
		return Credential{}, ErrNoCredential
	}
	return s.Value, nil
}
