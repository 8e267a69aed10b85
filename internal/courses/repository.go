package courses

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/schedease/pkg/docstore"
	"github.com/JaimeStill/schedease/pkg/identity"
)

// Collection is the document-store collection holding courses.
const Collection = "courses"

type repo struct {
	courses *docstore.Collection[Course, *Course]
	logger  *slog.Logger
}

// New creates a course repository implementing System over store.
func New(store docstore.Store, logger *slog.Logger) System {
	logger = logger.With("system", "courses")
	return &repo{
		courses: docstore.NewCollection[Course](store, Collection, logger),
		logger:  logger,
	}
}

func (r *repo) Handler(verifier identity.Verifier) *Handler {
	return NewHandler(r, verifier, r.logger)
}

func (r *repo) List(ctx context.Context) ([]Course, error) {
	items, err := r.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Course, error) {
	c, ok, err := r.courses.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", id, err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, c Course) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}

	id, err := r.courses.Create(ctx, &c)
	if err != nil {
		return "", fmt.Errorf("create course: %w", err)
	}

	r.logger.Info("course created", "id", id)
	return id, nil
}

func (r *repo) Update(ctx context.Context, id string, c Course) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}

	if err := r.courses.Update(ctx, id, &c); err != nil {
		return fmt.Errorf("update course %s: %w", id, err)
	}

	r.logger.Info("course updated", "id", id)
	return nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if err := r.courses.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}

	r.logger.Info("course deleted", "id", id)
	return nil
}
