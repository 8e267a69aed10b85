// Package identity verifies bearer ID tokens and administers identity-provider
// accounts. The default configuration targets Firebase Authentication.
package identity

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrMissingToken indicates the request carried no bearer credential.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates the credential failed verification.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrAccountNotFound indicates the identity provider has no account for the uid.
	ErrAccountNotFound = errors.New("identity account not found")
	// ErrAccountsDisabled indicates account administration is not configured.
	ErrAccountsDisabled = errors.New("identity account administration disabled")
)

// Principal is the verified subject of an ID token.
type Principal struct {
	Subject string         `json:"sub"`
	Email   string         `json:"email,omitempty"`
	Claims  map[string]any `json:"claims,omitempty"`
}

// Verifier validates raw ID tokens.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Principal, error)
}

// Accounts administers identity-provider user accounts.
type Accounts interface {
	// DeleteAccount removes the account for uid. Returns ErrAccountNotFound
	// when the provider has no such account.
	DeleteAccount(ctx context.Context, uid string) error
}

// BearerToken extracts the credential from an Authorization header value of
// the form "Bearer <token>". Any other scheme, or no scheme, is ErrMissingToken.
func BearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", ErrMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" || token == "null" || token == "undefined" {
		return "", ErrMissingToken
	}
	return token, nil
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

type presence struct{}

// PresenceOnly returns a Verifier that accepts any non-empty token without
// checking it. Intended for local development with identity disabled.
func PresenceOnly() Verifier {
	return presence{}
}

func (presence) Verify(_ context.Context, rawToken string) (*Principal, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrMissingToken
	}
	return &Principal{}, nil
}

type disabledAccounts struct{}

// DisabledAccounts returns an Accounts whose operations fail with ErrAccountsDisabled.
func DisabledAccounts() Accounts {
	return disabledAccounts{}
}

func (disabledAccounts) DeleteAccount(context.Context, string) error {
	return ErrAccountsDisabled
}
