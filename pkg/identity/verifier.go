package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates a Verifier that checks token signatures against the
// configured JWKS endpoint, along with issuer, audience, and expiry. Keys are
// fetched lazily and cached; ctx bounds the background key fetches.
func NewVerifier(ctx context.Context, cfg *Config) Verifier {
	keySet := oidc.NewRemoteKeySet(ctx, cfg.JWKSURL)
	return &oidcVerifier{
		verifier: oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{ClientID: cfg.Audience}),
	}
}

func (v *oidcVerifier) Verify(ctx context.Context, rawToken string) (*Principal, error) {
	if rawToken == "" {
		return nil, ErrMissingToken
	}

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: claims: %v", ErrInvalidToken, err)
	}

	p := &Principal{
		Subject: token.Subject,
		Claims:  claims,
	}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	return p, nil
}
