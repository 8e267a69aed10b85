package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrMalformed indicates a stored document whose fields do not decode into
// the collection's record type.
var ErrMalformed = errors.New("malformed document")

// Entity is a record with a document id field.
type Entity interface {
	DocumentID() string
	SetDocumentID(id string)
}

// Collection maps documents in one collection to records of type T through
// T's JSON encoding. Fields absent from a document decode to their zero value.
type Collection[T any, P interface {
	*T
	Entity
}] struct {
	store  Store
	name   string
	logger *slog.Logger
}

// NewCollection binds a typed view to the named collection.
func NewCollection[T any, P interface {
	*T
	Entity
}](store Store, name string, logger *slog.Logger) *Collection[T, P] {
	return &Collection[T, P]{
		store:  store,
		name:   name,
		logger: logger.With("collection", name),
	}
}

// Name returns the collection name.
func (c *Collection[T, P]) Name() string {
	return c.name
}

// List returns every record in the collection. Malformed documents are
// logged and skipped.
func (c *Collection[T, P]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := c.fromDocument(doc)
		if err != nil {
			c.logger.Warn("skipping malformed document", "id", doc.ID, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns the record stored under id. The boolean is false when no such
// document exists; that case is not an error. A document that does not decode
// returns ErrMalformed.
func (c *Collection[T, P]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T

	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, false, nil
		}
		return zero, false, err
	}

	item, err := c.fromDocument(*doc)
	if err != nil {
		return zero, false, err
	}
	return item, true, nil
}

// Create allocates a new id, stamps it onto item, writes the full record,
// and returns the id.
func (c *Collection[T, P]) Create(ctx context.Context, item P) (string, error) {
	id := c.store.NewID()
	item.SetDocumentID(id)

	if err := c.write(ctx, id, item); err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces the document at id with item. The record's id is forced to
// id, whatever the caller supplied. Fields missing from item are erased.
func (c *Collection[T, P]) Update(ctx context.Context, id string, item P) error {
	item.SetDocumentID(id)
	return c.write(ctx, id, item)
}

// Delete removes the document at id. Deleting an absent document succeeds.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T, P]) write(ctx context.Context, id string, item P) error {
	data, err := toData(item)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.name, id, data)
}

func (c *Collection[T, P]) fromDocument(doc Document) (T, error) {
	var item T

	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return item, fmt.Errorf("encode %s: %w", doc, err)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("%w: %s: %w", ErrMalformed, doc, err)
	}

	if P(&item).DocumentID() == "" {
		P(&item).SetDocumentID(doc.ID)
	}
	return item, nil
}

func toData(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return decode(raw)
}
