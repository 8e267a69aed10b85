package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgQueryCanceled   = "57014"
)

// MapError translates database errors to domain errors. sql.ErrNoRows maps to
// notFoundErr, unique violations (23505) to duplicateErr, and statements the
// server cancelled (57014) to context.DeadlineExceeded. Other errors are
// returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return duplicateErr
		case pgQueryCanceled:
			return errors.Join(context.DeadlineExceeded, err)
		}
	}

	return err
}
