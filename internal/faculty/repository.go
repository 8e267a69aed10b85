package faculty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/schedease/pkg/docstore"
	"github.com/JaimeStill/schedease/pkg/identity"
)

type repo struct {
	store    docstore.Store
	accounts identity.Accounts
	archiver Archiver
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a faculty System. archiver may be nil to disable snapshots.
func New(store docstore.Store, accounts identity.Accounts, archiver Archiver, logger *slog.Logger) System {
	return &repo{
		store:    store,
		accounts: accounts,
		archiver: archiver,
		logger:   logger.With("system", "faculty"),
		now:      time.Now,
	}
}

func (r *repo) Handler(verifier identity.Verifier) *Handler {
	return NewHandler(r, verifier, r.logger)
}

func (r *repo) DeleteFaculty(ctx context.Context, facultyID string) (*Result, error) {
	doc, err := r.store.Get(ctx, FacultyCollection, facultyID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get faculty %s: %w", ErrStore, facultyID, err)
	}

	var (
		rev      Revocation
		teachers []docstore.Document
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rev = r.revoke(ctx, doc.Data[UIDField])
		return nil
	})

	g.Go(func() error {
		found, err := r.store.Where(gctx, TeacherCollection, FacultyRefField, facultyID)
		if err != nil {
			return fmt.Errorf("%w: query teachers: %w", ErrStore, err)
		}
		teachers = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := r.store.Batch()
	batch.Delete(FacultyCollection, facultyID)
	for _, t := range teachers {
		batch.Delete(TeacherCollection, t.ID)
	}

	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit deletion batch: %w", ErrStore, err)
	}

	result := &Result{
		FacultyID:       facultyID,
		TeachersDeleted: len(teachers),
		Revocation:      rev,
	}

	r.logger.Info(
		"faculty deleted",
		"id", facultyID,
		"teachers", result.TeachersDeleted,
		"revocation", rev.Status,
	)

	r.archive(ctx, doc, teachers, rev)
	return result, nil
}

func (r *repo) DeleteTeacher(ctx context.Context, teacherID string) error {
	if _, err := r.store.Get(ctx, TeacherCollection, teacherID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("%w: get teacher %s: %w", ErrStore, teacherID, err)
	}

	if err := r.store.Delete(ctx, TeacherCollection, teacherID); err != nil {
		return fmt.Errorf("%w: delete teacher %s: %w", ErrStore, teacherID, err)
	}

	r.logger.Info("teacher deleted", "id", teacherID)
	return nil
}

// revoke deletes the identity account named by the faculty uid field. An
// absent or empty uid is skipped; a uid of any other type is ignored with
// ErrInvalidUID.
func (r *repo) revoke(ctx context.Context, raw any) Revocation {
	if raw == nil {
		return Revocation{Status: RevocationSkipped}
	}

	uid, ok := raw.(string)
	if !ok {
		err := fmt.Errorf("%w: %T", ErrInvalidUID, raw)
		r.logger.Warn("faculty uid is not a string, skipping account deletion", "uid", raw, "error", err)
		return Revocation{Status: RevocationIgnored, Err: err}
	}
	if uid == "" {
		return Revocation{Status: RevocationSkipped}
	}

	if err := r.accounts.DeleteAccount(ctx, uid); err != nil {
		r.logger.Warn("identity account deletion failed, continuing", "uid", uid, "error", err)
		return Revocation{Status: RevocationIgnored, UID: uid, Err: err}
	}

	return Revocation{Status: RevocationCompleted, UID: uid}
}

func (r *repo) archive(ctx context.Context, faculty *docstore.Document, teachers []docstore.Document, rev Revocation) {
	if r.archiver == nil {
		return
	}

	s := Snapshot{
		FacultyID:  faculty.ID,
		Faculty:    faculty.Data,
		Teachers:   teachers,
		Revocation: rev.Status,
		UID:        rev.UID,
		DeletedAt:  r.now().UTC(),
	}
	if rev.Err != nil {
		s.RevokeErr = rev.Err.Error()
	}

	if err := r.archiver.Archive(ctx, s); err != nil {
		r.logger.Warn("deletion snapshot failed", "id", faculty.ID, "error", err)
	}
}
