package services

import (
	"context"
	"time"

	"chaching/internal/api"
	"chaching/internal/core"
	"chaching/internal/log"
	"chaching/internal/query"
)

// PaymentMethods exposes payment method reads and mutations.
type PaymentMethods struct {
	svc    *api.PaymentMethodService
	query  *query.Client
	logger *log.Logger
}

func NewPaymentMethods(svc *api.PaymentMethodService, q *query.Client, logger *log.Logger) *PaymentMethods {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &PaymentMethods{
		svc:    svc,
		query:  q,
		logger: logger.WithComponent(log.ComponentApp),
	}
}

// List returns all payment methods, served from cache when fresh.
func (p *PaymentMethods) List(ctx context.Context) ([]core.PaymentMethod, error) {
	key := query.Key(query.ResourcePaymentMethods, "list")
	return query.FetchAs(ctx, p.query, key, func(ctx context.Context) ([]core.PaymentMethod, error) {
		env, err := p.svc.List(ctx)
		if err != nil {
			return nil, err
		}

		methods := make([]core.PaymentMethod, 0, len(env.Data))
		for _, item := range env.Data {
			methods = append(methods, core.PaymentMethodFromAPI(item))
		}
		return methods, nil
	})
}

// Stats returns per-payment-method totals for the named range.
func (p *PaymentMethods) Stats(ctx context.Context, rng core.Range) ([]core.PaymentMethodStats, error) {
	dateRange := rng.Resolve(time.Now())
	params := api.StatsParams{StartDate: dateRange.StartDate, EndDate: dateRange.EndDate}

	key := query.Key(query.ResourcePaymentMethods, "stats", params.CacheKey())
	return query.FetchAs(ctx, p.query, key, func(ctx context.Context) ([]core.PaymentMethodStats, error) {
		env, err := p.svc.Stats(ctx, params)
		if err != nil {
			return nil, err
		}

		stats := make([]core.PaymentMethodStats, 0, len(env.Data))
		for _, item := range env.Data {
			stats = append(stats, core.PaymentMethodStatsFromAPI(item))
		}
		return stats, nil
	})
}

// Create records a new payment method and invalidates the payment method
// caches.
func (p *PaymentMethods) Create(ctx context.Context, payload api.CreatePaymentMethodPayload) (*api.Envelope[*api.PaymentMethod], error) {
	env, err := p.svc.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	p.query.Invalidate(query.ResourcePaymentMethods)
	p.logger.InfoContext(ctx, "Payment method created",
		log.FieldOperation, log.OpCreate,
		"name", payload.Name)
	return env, nil
}
