package orderbook

import (
	"context"
	"errors"
	"strings"
	"time"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/notification"
	"grynvault-backend/internal/domain/order"
	"grynvault-backend/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

type Usecase struct {
	repo       order.Repository
	store      *Store
	notifier   notification.Notifier
	templateID string
	log        *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewUsecase(repo order.Repository, store *Store, n notification.Notifier, templateID string, log *zap.Logger, m *metrics.Metrics) *Usecase {
	return &Usecase{
		repo:       repo,
		store:      store,
		notifier:   n,
		templateID: templateID,
		log:        log,
		metrics:    m,
		now:        time.Now,
	}
}

// Refresh reloads both collections into the store. On failure the store is
// emptied so readers never see a half-loaded book.
func (u *Usecase) Refresh(ctx context.Context) (*RefreshDTO, error) {
	demand, err := u.repo.List(ctx, order.KindDemand)
	if err != nil {
		return nil, u.refreshFailed(err)
	}
	supply, err := u.repo.List(ctx, order.KindSupply)
	if err != nil {
		return nil, u.refreshFailed(err)
	}

	all := append(order.ProjectAll(order.KindDemand, demand), order.ProjectAll(order.KindSupply, supply)...)
	u.store.Replace(all)
	u.log.Debug("orderbook refreshed", zap.Int("demand", len(demand)), zap.Int("supply", len(supply)))
	return &RefreshDTO{Demand: len(demand), Supply: len(supply)}, nil
}

func (u *Usecase) refreshFailed(err error) error {
	u.store.Replace(nil)
	u.log.Error("orderbook refresh failed", zap.Error(err))
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.New(apperr.CodeStorageUnavailable, "orderbook.Refresh", err)
}

func (u *Usecase) List(_ context.Context, tab order.Tab, f order.Filter) []order.Order {
	return order.Apply(u.store.Snapshot(), tab, f)
}

func (u *Usecase) Stats(_ context.Context) order.Stats {
	return order.ComputeStats(u.store.Snapshot())
}

// Accept notifies the desk that a visitor took an order from the book.
// A failed delivery is reported through Delivered, not as an error.
func (u *Usecase) Accept(ctx context.Context, in AcceptInput) (*AcceptDTO, error) {
	const op = "orderbook.Accept"

	var details []apperr.FieldError
	if strings.TrimSpace(in.Name) == "" {
		details = append(details, apperr.FieldError{Field: "name", Message: "is required"})
	}
	if strings.TrimSpace(in.Email) == "" {
		details = append(details, apperr.FieldError{Field: "email", Message: "is required"})
	}
	if len(details) > 0 {
		return nil, apperr.Validation(op, details)
	}

	o, ok := u.store.Find(in.OrderID)
	if !ok {
		return nil, apperr.Newf(apperr.CodeOrderNotFound, op, "order %q", in.OrderID)
	}

	msg := notification.AcceptanceMessage(u.templateID, o, strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), u.now())
	if err := u.notifier.Send(ctx, msg); err != nil {
		u.metrics.Notifications.WithLabelValues(metrics.OutcomeError).Inc()
		u.log.Warn("acceptance notification failed",
			zap.String("order_id", o.OrderID),
			zap.Error(err),
		)
		return &AcceptDTO{Order: o, Delivered: false}, nil
	}

	u.metrics.Notifications.WithLabelValues(metrics.OutcomeOK).Inc()
	u.log.Info("order accepted", zap.String("order_id", o.OrderID), zap.String("type", string(o.Type)))
	return &AcceptDTO{Order: o, Delivered: true}, nil
}

// TrackSize keeps the orderbook gauge in step with the store until ctx ends.
func (u *Usecase) TrackSize(ctx context.Context) {
	snaps, stop := u.store.Subscribe()
	defer stop()
	u.observe(u.store.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			u.observe(snap)
		}
	}
}

func (u *Usecase) observe(snap []order.Order) {
	counts := map[order.Kind]int{order.KindDemand: 0, order.KindSupply: 0}
	for _, o := range snap {
		counts[o.Type]++
	}
	for k, n := range counts {
		u.metrics.Orderbook.WithLabelValues(string(k)).Set(float64(n))
	}
}
