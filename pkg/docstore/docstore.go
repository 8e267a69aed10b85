// Package docstore provides a collection/document store: documents are open
// field maps addressed by collection name and string id. Writes can be grouped
// into batches that commit atomically.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidRef indicates an empty collection name or document id.
	ErrInvalidRef = errors.New("invalid document reference")
	// ErrInvalidField indicates a query field name that is not a plain identifier.
	ErrInvalidField = errors.New("invalid field name")
)

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Document is a single stored record.
type Document struct {
	Collection string         `json:"collection"`
	ID         string         `json:"id"`
	Data       map[string]any `json:"data"`
}

// String returns the collection/id path of the document.
func (d Document) String() string {
	return d.Collection + "/" + d.ID
}

// Store is the document store contract.
type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)
	// List returns every document in the collection ordered by id.
	List(ctx context.Context, collection string) ([]Document, error)
	// Where returns documents whose top-level string field equals value.
	Where(ctx context.Context, collection, field, value string) ([]Document, error)
	// NewID allocates a fresh document id.
	NewID() string
	// Set writes data as the full content of the document, creating it if needed.
	Set(ctx context.Context, collection, id string, data map[string]any) error
	// Merge overlays data onto an existing document. Returns ErrNotFound when absent.
	Merge(ctx context.Context, collection, id string, data map[string]any) error
	// Delete removes the document. Deleting an absent document succeeds.
	Delete(ctx context.Context, collection, id string) error
	// Batch starts an atomic write set.
	Batch() Batch
}

// Batch groups writes that are applied together or not at all.
type Batch interface {
	Set(collection, id string, data map[string]any)
	Delete(collection, id string)
	Len() int
	// Commit applies every queued write atomically.
	Commit(ctx context.Context) error
}

type opKind int

const (
	opSet opKind = iota
	opDelete
)

type write struct {
	kind       opKind
	collection string
	id         string
	data       map[string]any
}

// NewID returns a 20 character identifier derived from a random UUID.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}

func validateRef(collection, id string) error {
	if collection == "" || id == "" {
		return fmt.Errorf("%w: %q/%q", ErrInvalidRef, collection, id)
	}
	return nil
}

func validateField(field string) error {
	if !fieldPattern.MatchString(field) {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

func encode(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

// decode keeps numbers as json.Number so integer fields survive a round trip.
func decode(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
