package order

import (
	"context"

	"grynvault-backend/internal/domain/apperr"
)

// ErrNotFound is matched with errors.Is against any ORDER_NOT_FOUND error.
var ErrNotFound = &apperr.Error{Code: apperr.CodeOrderNotFound}

type Repository interface {
	// Create stores r in kind's collection; the store assigns id, timestamp and status.
	Create(ctx context.Context, kind Kind, r *Record) error
	// List returns kind's collection, newest first.
	List(ctx context.Context, kind Kind) ([]Record, error)
	// Tx runs fn with a repository bound to one transaction.
	Tx(ctx context.Context, fn func(repo Repository) error) error
}
