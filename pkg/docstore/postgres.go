package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/schedease/pkg/repository"
)

// errDuplicate never surfaces: every insert is an upsert.
var errDuplicate = errors.New("duplicate document")

type postgres struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgres returns a Store persisting documents as JSONB rows in the
// documents table created by the schedease migrations.
func NewPostgres(db *sql.DB, logger *slog.Logger) Store {
	return &postgres{
		db:     db,
		logger: logger.With("system", "docstore", "backend", "postgres"),
	}
}

func (p *postgres) NewID() string {
	return NewID()
}

func (p *postgres) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := validateRef(collection, id); err != nil {
		return nil, err
	}

	const q = `SELECT collection, id, data FROM documents WHERE collection = $1 AND id = $2`

	doc, err := repository.QueryOne(ctx, p.db, q, []any{collection, id}, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, errDuplicate)
	}
	return &doc, nil
}

func (p *postgres) List(ctx context.Context, collection string) ([]Document, error) {
	const q = `SELECT collection, id, data FROM documents WHERE collection = $1 ORDER BY id`

	docs, err := repository.QueryMany(ctx, p.db, q, []any{collection}, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, repository.MapError(err, ErrNotFound, errDuplicate))
	}
	return docs, nil
}

// Where embeds the validated field name as a literal so the planner can use
// expression indexes on (collection, data->>'field').
func (p *postgres) Where(ctx context.Context, collection, field, value string) ([]Document, error) {
	if err := validateField(field); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(
		`SELECT collection, id, data FROM documents WHERE collection = $1 AND data->>'%s' = $2 ORDER BY id`,
		field,
	)

	docs, err := repository.QueryMany(ctx, p.db, q, []any{collection, value}, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query %s.%s: %w", collection, field, repository.MapError(err, ErrNotFound, errDuplicate))
	}
	return docs, nil
}

func (p *postgres) Set(ctx context.Context, collection, id string, data map[string]any) error {
	w := write{kind: opSet, collection: collection, id: id, data: data}
	return apply(ctx, p.db, w)
}

func (p *postgres) Merge(ctx context.Context, collection, id string, data map[string]any) error {
	if err := validateRef(collection, id); err != nil {
		return err
	}

	raw, err := encode(data)
	if err != nil {
		return err
	}

	const q = `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2`

	if err := repository.ExecExpectOne(ctx, p.db, q, collection, id, string(raw)); err != nil {
		return repository.MapError(err, ErrNotFound, errDuplicate)
	}
	return nil
}

func (p *postgres) Delete(ctx context.Context, collection, id string) error {
	w := write{kind: opDelete, collection: collection, id: id}
	return apply(ctx, p.db, w)
}

func (p *postgres) Batch() Batch {
	return &pgBatch{store: p}
}

type pgBatch struct {
	store  *postgres
	writes []write
}

func (b *pgBatch) Set(collection, id string, data map[string]any) {
	b.writes = append(b.writes, write{kind: opSet, collection: collection, id: id, data: data})
}

func (b *pgBatch) Delete(collection, id string) {
	b.writes = append(b.writes, write{kind: opDelete, collection: collection, id: id})
}

func (b *pgBatch) Len() int {
	return len(b.writes)
}

func (b *pgBatch) Commit(ctx context.Context) error {
	if len(b.writes) == 0 {
		return nil
	}

	_, err := repository.WithTx(ctx, b.store.db, func(tx *sql.Tx) (struct{}, error) {
		for _, w := range b.writes {
			if err := apply(ctx, tx, w); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("commit batch of %d writes: %w", len(b.writes), err)
	}

	b.store.logger.Debug("batch committed", "writes", len(b.writes))
	return nil
}

func apply(ctx context.Context, e repository.Executor, w write) error {
	if err := validateRef(w.collection, w.id); err != nil {
		return err
	}

	switch w.kind {
	case opDelete:
		const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`
		if _, err := repository.Exec(ctx, e, q, w.collection, w.id); err != nil {
			return fmt.Errorf("delete %s/%s: %w", w.collection, w.id, err)
		}
	default:
		raw, err := encode(w.data)
		if err != nil {
			return err
		}

		const q = `
			INSERT INTO documents (collection, id, data)
			VALUES ($1, $2, $3::jsonb)
			ON CONFLICT (collection, id)
			DO UPDATE SET data = EXCLUDED.data, updated_at = now()`

		if _, err := repository.Exec(ctx, e, q, w.collection, w.id, string(raw)); err != nil {
			return fmt.Errorf("set %s/%s: %w", w.collection, w.id, err)
		}
	}
	return nil
}

func scanDocument(s repository.Scanner) (Document, error) {
	var (
		d   Document
		raw []byte
	)
	if err := s.Scan(&d.Collection, &d.ID, &raw); err != nil {
		return d, err
	}

	data, err := decode(raw)
	if err != nil {
		return d, err
	}
	d.Data = data
	return d, nil
}
