package services

import (
	"context"
	"time"

	"chaching/internal/api"
	"chaching/internal/core"
	"chaching/internal/log"
	"chaching/internal/query"
)

// Categories exposes category reads and mutations.
type Categories struct {
	svc    *api.CategoryService
	query  *query.Client
	logger *log.Logger
}

func NewCategories(svc *api.CategoryService, q *query.Client, logger *log.Logger) *Categories {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Categories{
		svc:    svc,
		query:  q,
		logger: logger.WithComponent(log.ComponentApp),
	}
}

// List returns all categories, served from cache when fresh.
func (c *Categories) List(ctx context.Context) ([]core.Category, error) {
	key := query.Key(query.ResourceCategories, "list")
	return query.FetchAs(ctx, c.query, key, func(ctx context.Context) ([]core.Category, error) {
		env, err := c.svc.List(ctx)
		if err != nil {
			return nil, err
		}

		categories := make([]core.Category, 0, len(env.Data))
		for _, item := range env.Data {
			categories = append(categories, core.CategoryFromAPI(item))
		}
		return categories, nil
	})
}

// Stats returns per-category totals with budget for the named range.
// Empty results are an empty slice, never an error.
func (c *Categories) Stats(ctx context.Context, rng core.Range) ([]core.CategoryStats, error) {
	dateRange := rng.Resolve(time.Now())
	params := api.StatsParams{StartDate: dateRange.StartDate, EndDate: dateRange.EndDate}

	key := query.Key(query.ResourceCategories, "stats", params.CacheKey())
	return query.FetchAs(ctx, c.query, key, func(ctx context.Context) ([]core.CategoryStats, error) {
		env, err := c.svc.Stats(ctx, params)
		if err != nil {
			return nil, err
		}

		stats := make([]core.CategoryStats, 0, len(env.Data))
		for _, item := range env.Data {
			stats = append(stats, core.CategoryStatsFromAPI(item))
		}
		return stats, nil
	})
}

// Create records a new category and invalidates the category caches.
func (c *Categories) Create(ctx context.Context, payload api.CreateCategoryPayload) (*api.Envelope[*api.Category], error) {
	env, err := c.svc.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	c.query.Invalidate(query.ResourceCategories)
	c.logger.InfoContext(ctx, "Category created",
		log.FieldOperation, log.OpCreate,
		"name", payload.Name)
	return env, nil
}

// Update rewrites a category and invalidates the category caches.
func (c *Categories) Update(ctx context.Context, payload api.UpdateCategoryPayload) (*api.Envelope[*api.Category], error) {
	env, err := c.svc.Update(ctx, payload)
	if err != nil {
		return nil, err
	}

	c.query.Invalidate(query.ResourceCategories)
	c.logger.InfoContext(ctx, "Category updated",
		log.FieldOperation, log.OpUpdate,
		"id", payload.ID)
	return env, nil
}
