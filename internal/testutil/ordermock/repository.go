package ordermock

import (
	"context"

	domain "grynvault-backend/internal/domain/order"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn func(ctx context.Context, kind domain.Kind, r *domain.Record) error
	ListFn   func(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
	TxFn     func(ctx context.Context, fn func(repo domain.Repository) error) error
}

func (m *Repo) Create(ctx context.Context, kind domain.Kind, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, kind, r)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, kind)
	}
	return nil, nil
}

// Tx runs fn against the mock itself unless TxFn is set.
func (m *Repo) Tx(ctx context.Context, fn func(repo domain.Repository) error) error {
	if m.TxFn != nil {
		return m.TxFn(ctx, fn)
	}
	return fn(m)
}
