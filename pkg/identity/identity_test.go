package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JaimeStill/schedease/pkg/identity"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		err    error
	}{
		{"bearer scheme", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"bare token", "abc", "", identity.ErrMissingToken},
		{"other scheme", "Basic dXNlcjpwYXNz", "", identity.ErrMissingToken},
		{"empty", "", "", identity.ErrMissingToken},
		{"whitespace", "   ", "", identity.ErrMissingToken},
		{"scheme only", "Bearer ", "", identity.ErrMissingToken},
		{"client null token", "Bearer null", "", identity.ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := identity.BearerToken(tt.header)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := identity.PrincipalFrom(ctx); ok {
		t.Error("empty context should carry no principal")
	}

	p := &identity.Principal{Subject: "uid-1"}
	got, ok := identity.PrincipalFrom(identity.WithPrincipal(ctx, p))
	if !ok || got.Subject != "uid-1" {
		t.Errorf("PrincipalFrom() = %v, %v", got, ok)
	}
}

func TestPresenceOnly(t *testing.T) {
	v := identity.PresenceOnly()

	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, identity.ErrMissingToken) {
		t.Errorf("err = %v, want ErrMissingToken", err)
	}
	if _, err := v.Verify(context.Background(), "anything"); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestDisabledAccounts(t *testing.T) {
	err := identity.DisabledAccounts().DeleteAccount(context.Background(), "uid")
	if !errors.Is(err, identity.ErrAccountsDisabled) {
		t.Errorf("err = %v, want ErrAccountsDisabled", err)
	}
}

func TestConfigFirebaseDefaults(t *testing.T) {
	cfg := identity.Config{Enabled: true, ProjectID: "schedease-dev"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Issuer != "https://securetoken.google.com/schedease-dev" {
		t.Errorf("Issuer = %q", cfg.Issuer)
	}
	if cfg.Audience != "schedease-dev" {
		t.Errorf("Audience = %q", cfg.Audience)
	}
	if cfg.JWKSURL == "" {
		t.Error("JWKSURL should default to the securetoken key set")
	}
}

func TestConfigValidation(t *testing.T) {
	disabled := identity.Config{}
	if err := disabled.Finalize(nil); err != nil {
		t.Errorf("disabled config should be valid, got %v", err)
	}

	enabled := identity.Config{Enabled: true}
	if err := enabled.Finalize(nil); err == nil {
		t.Error("enabled config without project should fail")
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("TEST_IDENTITY_ENABLED", "true")
	t.Setenv("TEST_IDENTITY_PROJECT_ID", "from-env")

	cfg := identity.Config{ProjectID: "from-file"}
	err := cfg.Finalize(&identity.Env{
		Enabled:   "TEST_IDENTITY_ENABLED",
		ProjectID: "TEST_IDENTITY_PROJECT_ID",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled || cfg.ProjectID != "from-env" || cfg.Audience != "from-env" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}
