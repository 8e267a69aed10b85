package faculty

import (
	"context"

	"github.com/JaimeStill/schedease/pkg/identity"
)

// System defines the public contract for faculty deletion.
type System interface {
	Handler(verifier identity.Verifier) *Handler

	// DeleteFaculty removes the faculty member and every teacher record that
	// references it in one atomic batch. The identity account is revoked on a
	// best-effort basis; its failure never blocks the data cleanup. Returns
	// ErrNotFound when the faculty member is absent and ErrStore when the
	// store cannot be read or the batch cannot be committed.
	DeleteFaculty(ctx context.Context, facultyID string) (*Result, error)

	// DeleteTeacher removes a single teacher record without cascading.
	// Returns ErrTeacherNotFound when the record is absent.
	DeleteTeacher(ctx context.Context, teacherID string) error
}
