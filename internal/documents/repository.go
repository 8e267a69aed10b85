package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/JaimeStill/schedease/pkg/docstore"
	"github.com/JaimeStill/schedease/pkg/identity"
)

const idField = "id"

type repo struct {
	store       docstore.Store
	collections []string
	cascaded    []string
	logger      *slog.Logger
}

// New creates a generic document System over store limited to collections.
// Documents in cascaded collections can be read and written but not deleted;
// their deletion belongs to a workflow that also removes dependents.
func New(store docstore.Store, collections, cascaded []string, logger *slog.Logger) System {
	return &repo{
		store:       store,
		collections: slices.Clone(collections),
		cascaded:    slices.Clone(cascaded),
		logger:      logger.With("system", "documents"),
	}
}

func (r *repo) Handler(verifier identity.Verifier) *Handler {
	return NewHandler(r, verifier, r.logger)
}

func (r *repo) Collections() []string {
	return slices.Clone(r.collections)
}

func (r *repo) List(ctx context.Context, collection string) ([]Fields, error) {
	if err := r.allowed(collection); err != nil {
		return nil, err
	}

	docs, err := r.store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	out := make([]Fields, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toFields(doc))
	}
	return out, nil
}

func (r *repo) Find(ctx context.Context, collection, id string) (Fields, error) {
	if err := r.allowed(collection); err != nil {
		return nil, err
	}

	doc, err := r.store.Get(ctx, collection, id)
	if err != nil {
		return nil, mapStoreError(err, "get %s/%s", collection, id)
	}
	return toFields(*doc), nil
}

func (r *repo) Create(ctx context.Context, collection string, fields Fields) (string, error) {
	if err := r.allowed(collection); err != nil {
		return "", err
	}

	id := r.store.NewID()
	if err := r.store.Set(ctx, collection, id, fromFields(fields)); err != nil {
		return "", mapStoreError(err, "create in %s", collection)
	}

	r.logger.Info("document created", "collection", collection, "id", id)
	return id, nil
}

func (r *repo) Update(ctx context.Context, collection, id string, fields Fields) error {
	if err := r.allowed(collection); err != nil {
		return err
	}

	if err := r.store.Merge(ctx, collection, id, fromFields(fields)); err != nil {
		return mapStoreError(err, "update %s/%s", collection, id)
	}

	r.logger.Info("document updated", "collection", collection, "id", id)
	return nil
}

func (r *repo) Delete(ctx context.Context, collection, id string) error {
	if err := r.allowed(collection); err != nil {
		return err
	}
	if slices.Contains(r.cascaded, collection) {
		return fmt.Errorf("%w: %q", ErrCascadeRequired, collection)
	}

	if err := r.store.Delete(ctx, collection, id); err != nil {
		return mapStoreError(err, "delete %s/%s", collection, id)
	}

	r.logger.Info("document deleted", "collection", collection, "id", id)
	return nil
}

func (r *repo) allowed(collection string) error {
	if !slices.Contains(r.collections, collection) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return nil
}

func toFields(doc docstore.Document) Fields {
	f := make(Fields, len(doc.Data)+1)
	maps.Copy(f, doc.Data)
	f[idField] = doc.ID
	return f
}

// fromFields drops the id key; the document key is the only id.
func fromFields(f Fields) map[string]any {
	data := make(map[string]any, len(f))
	for k, v := range f {
		if k != idField {
			data[k] = v
		}
	}
	return data
}

func mapStoreError(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, docstore.ErrInvalidRef), errors.Is(err, docstore.ErrInvalidField):
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
