// Package postgres implements the repository contract on PostgreSQL through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	apperrors "recruitment-workers/internal/common/errors"
	"recruitment-workers/internal/common/database"
	"recruitment-workers/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store runs statements on the pool, or on a transaction inside WithTx.
type Store struct {
	*Repo
	client *database.PostgresClient
}

// Repo executes the statements against one querier.
type Repo struct {
	q querier
}

var (
	_ repository.Store      = (*Store)(nil)
	_ repository.Repository = (*Repo)(nil)
)

func NewStore(client *database.PostgresClient) *Store {
	return &Store{Repo: &Repo{q: client.DB}, client: client}
}

// WithTx runs fn with a transaction-bound repository.
func (s *Store) WithTx(ctx context.Context, fn func(repo repository.Repository) error) error {
	return s.client.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&Repo{q: tx})
	})
}

// rowError maps a single-row read failure. An id that is not a valid uuid cannot match a
// row either.
func rowError(resource, id, operation string, err error) error {
	if errors.Is(err, sql.ErrNoRows) || database.IsInvalidText(err) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return apperrors.NewDatabaseError(operation, err)
}

// queryError maps a failure of a multi-row read or aggregate.
func queryError(operation string, err error) error {
	if database.IsInvalidText(err) {
		return apperrors.NewValidationError(operation + ": malformed identifier")
	}
	return apperrors.NewDatabaseError(operation, err)
}

// execError maps a write failure.
func execError(operation string, err error) error {
	if database.IsInvalidText(err) {
		return apperrors.NewValidationError(operation + ": malformed identifier")
	}
	if database.IsUniqueViolation(err) {
		return apperrors.NewConflictError("Record already exists", operation)
	}
	if database.IsForeignKeyViolation(err) {
		return apperrors.NewNotFoundError("referenced record", operation)
	}
	return apperrors.NewDatabaseError(operation, err)
}

// expectOne turns a zero-row update into NOT_FOUND.
func expectOne(res sql.Result, resource, id, operation string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewDatabaseError(operation, err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(resource, id)
	}
	return nil
}
