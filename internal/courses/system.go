package courses

import (
	"context"

	"github.com/JaimeStill/schedease/pkg/identity"
)

// System defines the public contract for course operations.
type System interface {
	Handler(verifier identity.Verifier) *Handler

	List(ctx context.Context) ([]Course, error)
	// Find returns ErrNotFound when no course has id.
	Find(ctx context.Context, id string) (*Course, error)
	// Create stores c under a new store-generated id and returns that id.
	Create(ctx context.Context, c Course) (string, error)
	// Update replaces the course at id with c, forcing c.ID to id.
	Update(ctx context.Context, id string, c Course) error
	// Delete removes the course at id. Deleting an absent course succeeds.
	Delete(ctx context.Context, id string) error
}
