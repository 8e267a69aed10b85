// Package documents exposes untyped field-map access to an allowlisted set of
// document-store collections.
package documents

import (
	"context"

	"github.com/JaimeStill/schedease/pkg/identity"
)

// Fields is an open field map. Reads include the document id under "id".
type Fields map[string]any

// System defines the public contract for generic document operations. Every
// method returns ErrUnknownCollection for collections outside the allowlist.
type System interface {
	Handler(verifier identity.Verifier) *Handler

	Collections() []string
	List(ctx context.Context, collection string) ([]Fields, error)
	// Find returns ErrNotFound when the document is absent.
	Find(ctx context.Context, collection, id string) (Fields, error)
	// Create stores fields under a new store-generated id and returns it.
	Create(ctx context.Context, collection string, fields Fields) (string, error)
	// Update merges fields into an existing document, leaving other fields
	// untouched. Returns ErrNotFound when the document is absent.
	Update(ctx context.Context, collection, id string, fields Fields) error
	// Delete removes the document. Deleting an absent document succeeds.
	Delete(ctx context.Context, collection, id string) error
}
