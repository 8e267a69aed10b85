package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

type toolkitAccounts struct {
	svc    *identitytoolkit.Service
	logger *slog.Logger
}

// NewAccounts creates an Accounts backed by the Identity Toolkit admin API.
// Credentials come from CredentialsJSON, CredentialsFile, or application
// default credentials, in that order. extra options are applied last.
func NewAccounts(ctx context.Context, cfg *Config, logger *slog.Logger, extra ...option.ClientOption) (Accounts, error) {
	svc, err := identitytoolkit.NewService(ctx, append(clientOptions(cfg), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("create identity toolkit client: %w", err)
	}

	return &toolkitAccounts{
		svc:    svc,
		logger: logger.With("system", "identity"),
	}, nil
}

func (a *toolkitAccounts) DeleteAccount(ctx context.Context, uid string) error {
	if uid == "" {
		return ErrAccountNotFound
	}

	req := &identitytoolkit.IdentitytoolkitRelyingpartyDeleteAccountRequest{LocalId: uid}
	if _, err := a.svc.Relyingparty.DeleteAccount(req).Context(ctx).Do(); err != nil {
		if isUserNotFound(err) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("delete account %s: %w", uid, err)
	}

	a.logger.Info("identity account deleted", "uid", uid)
	return nil
}

func clientOptions(cfg *Config) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(cloudPlatformScope)}

	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	return opts
}

func isUserNotFound(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	if gerr.Code == http.StatusNotFound {
		return true
	}
	return strings.Contains(gerr.Message, "USER_NOT_FOUND")
}
