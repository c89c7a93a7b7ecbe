package loan

import (
	"context"
	"errors"
	"strings"
	"sync"

	"grynvault-backend/internal/domain/apperr"
	"grynvault-backend/internal/domain/competitor"
	"grynvault-backend/internal/domain/order"
	"grynvault-backend/internal/domain/preference"
	"grynvault-backend/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// ErrRedirectRequired matches any RedirectError with errors.Is.
var ErrRedirectRequired = &apperr.Error{Code: apperr.CodeRedirectRequired}

// RedirectError rejects a submission whose rate is better served elsewhere.
type RedirectError struct {
	Err         *apperr.Error
	Competitors []competitor.Competitor
}

func (e *RedirectError) Error() string { return e.Err.Error() }
func (e *RedirectError) Unwrap() error { return e.Err }

// Publisher receives every stored order.
type Publisher interface {
	Add(o order.Order)
}

type Usecase struct {
	repo        order.Repository
	book        Publisher
	competitors competitor.Source
	log         *zap.Logger
	metrics     *metrics.Metrics

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewUsecase(r order.Repository, book Publisher, src competitor.Source, log *zap.Logger, m *metrics.Metrics) *Usecase {
	return &Usecase{
		repo:        r,
		book:        book,
		competitors: src,
		log:         log,
		metrics:     m,
		inFlight:    make(map[string]struct{}),
	}
}

// Preview computes the derived metrics, or the competitor list when the rate is too low.
func (u *Usecase) Preview(ctx context.Context, p preference.Preference) (*PreviewDTO, error) {
	if err := p.ValidateTerms(); err != nil {
		return nil, err
	}
	if preference.ShouldRedirectToCompetitors(p) {
		recs, err := u.recommend(ctx)
		if err != nil {
			return nil, err
		}
		u.metrics.Redirects.Inc()
		return &PreviewDTO{Redirect: true, Competitors: recs}, nil
	}
	s := preference.Summarize(p)
	return &PreviewDTO{Summary: &s}, nil
}

// Submit stores a loan request and publishes it to the orderbook.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitDTO, error) {
	const op = "loan.Submit"
	p := in.Preference

	if err := p.Validate(); err != nil {
		u.metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	if preference.ShouldRedirectToCompetitors(p) && !in.SubmitAnyway {
		recs, err := u.recommend(ctx)
		if err != nil {
			return nil, err
		}
		u.metrics.Redirects.Inc()
		u.metrics.Submissions.WithLabelValues(metrics.OutcomeRedirect).Inc()
		return nil, &RedirectError{
			Err:         apperr.Newf(apperr.CodeRedirectRequired, op, "rate %.1f%% is above %.0f%%", p.UserRate, preference.RedirectRateThreshold),
			Competitors: recs,
		}
	}

	key := strings.ToLower(strings.TrimSpace(p.Email))
	if !u.acquire(key) {
		u.metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, apperr.Newf(apperr.CodeSubmissionInFlight, op, "a submission for %s is already in progress", key)
	}
	defer u.release(key)

	rec := order.RecordFromPreference(p)
	if err := u.repo.Create(ctx, order.KindDemand, rec); err != nil {
		u.metrics.Submissions.WithLabelValues(metrics.OutcomeError).Inc()
		u.log.Error("store loan request", zap.String("email", key), zap.Error(err))
		var ae *apperr.Error
		if !errors.As(err, &ae) {
			err = apperr.New(apperr.CodeStorageUnavailable, op, err)
		}
		return nil, err
	}

	o := order.Project(order.KindDemand, *rec)
	u.book.Add(o)

	u.metrics.Submissions.WithLabelValues(metrics.OutcomeOK).Inc()
	u.log.Info("loan request stored",
		zap.String("order_id", o.OrderID),
		zap.Float64("amount", o.Amount),
		zap.Bool("submit_anyway", in.SubmitAnyway),
	)
	return &SubmitDTO{Order: o, Summary: preference.Summarize(p)}, nil
}

func (u *Usecase) recommend(ctx context.Context) ([]competitor.Competitor, error) {
	list, err := u.competitors.List(ctx)
	if err != nil {
		return nil, err
	}
	return competitor.Recommend(list, competitor.DefaultLimit), nil
}

func (u *Usecase) acquire(key string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.inFlight[key]; busy {
		return false
	}
	u.inFlight[key] = struct{}{}
	return true
}

func (u *Usecase) release(key string) {
	u.mu.Lock()
	delete(u.inFlight, key)
	u.mu.Unlock()
}
