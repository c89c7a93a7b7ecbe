package mysql

import (
	"context"
	"errors"

	"grynvault-backend/internal/domain/apperr"
	orderDomain "grynvault-backend/internal/domain/order"
	"grynvault-backend/pkg/id"

	"gorm.io/gorm"
)

type OrderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{db: db} }

// Migrate creates both collections with the shared record schema.
func (r *OrderRepository) Migrate(ctx context.Context) error {
	for _, k := range []orderDomain.Kind{orderDomain.KindDemand, orderDomain.KindSupply} {
		if err := r.db.WithContext(ctx).Table(k.Table()).AutoMigrate(&orderDomain.Record{}); err != nil {
			return storageErr("order.Migrate", err)
		}
	}
	return nil
}

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *OrderRepository) Tx(ctx context.Context, fn func(repo orderDomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&OrderRepository{db: tx})
	})
}

func (r *OrderRepository) Create(ctx context.Context, kind orderDomain.Kind, rec *orderDomain.Record) error {
	if !kind.Valid() {
		return apperr.Newf(apperr.CodeStorageConstraint, "order.Create", "unknown collection %q", kind)
	}
	if rec.OrderID == "" {
		rec.OrderID = id.New()
	}
	rec.ID = 0
	rec.Status = orderDomain.StoredActive
	if err := r.db.WithContext(ctx).Table(kind.Table()).Create(rec).Error; err != nil {
		return storageErr("order.Create", err)
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, kind orderDomain.Kind) ([]orderDomain.Record, error) {
	if !kind.Valid() {
		return nil, apperr.Newf(apperr.CodeStorageConstraint, "order.List", "unknown collection %q", kind)
	}
	var out []orderDomain.Record
	res := r.db.WithContext(ctx).
		Table(kind.Table()).
		Order("created_at DESC, id DESC").
		Find(&out)
	if res.Error != nil {
		return nil, storageErr("order.List", res.Error)
	}
	return out, nil
}

// storageErr maps gorm failures onto the two storage codes.
func storageErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated),
		errors.Is(err, gorm.ErrInvalidData):
		return apperr.New(apperr.CodeStorageConstraint, op, err)
	default:
		return apperr.New(apperr.CodeStorageUnavailable, op, err)
	}
}
