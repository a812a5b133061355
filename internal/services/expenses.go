// Package services binds the resource services to the query cache: filtered
// paginated readers, aggregate readers and mutation flows with explicit,
// exhaustive cache-invalidation lists.
package services

import (
	"context"
	"sync"
	"time"

	"chaching/internal/api"
	"chaching/internal/core"
	"chaching/internal/log"
	"chaching/internal/query"
)

// ItemsPerPage is the fixed page size of the expense list.
const ItemsPerPage = 10

// Expenses exposes expense reads and mutations.
type Expenses struct {
	svc    *api.ExpenseService
	query  *query.Client
	logger *log.Logger
}

func NewExpenses(svc *api.ExpenseService, q *query.Client, logger *log.Logger) *Expenses {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Expenses{
		svc:    svc,
		query:  q,
		logger: logger.WithComponent(log.ComponentExpenses),
	}
}

// List creates a paginated reader for the given filter.
func (e *Expenses) List(filter api.ExpenseFilter) *ExpenseList {
	return &ExpenseList{
		svc:    e.svc,
		query:  e.query,
		filter: filter,
	}
}

// invalidateAggregates marks every cache family an expense write can touch.
// An expense changes category and payment-method totals transitively, so
// the list is exhaustive by design, not inferred.
func (e *Expenses) invalidateAggregates() {
	e.query.Invalidate(query.ResourceExpenses)
	e.query.Invalidate(query.ResourceCategories)
	e.query.Invalidate(query.ResourcePaymentMethods)
}

// Create records a new expense and invalidates every dependent cache.
// Mutations are never retried automatically.
func (e *Expenses) Create(ctx context.Context, payload api.CreateExpensePayload) (*api.Envelope[*api.Expense], error) {
	env, err := e.svc.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	e.invalidateAggregates()
	e.logger.InfoContext(ctx, "Expense created",
		log.FieldOperation, log.OpCreate,
		"title", payload.Title,
		"amount", payload.Amount)
	return env, nil
}

// Update rewrites an expense and invalidates every dependent cache.
func (e *Expenses) Update(ctx context.Context, payload api.UpdateExpensePayload) (*api.Envelope[*api.Expense], error) {
	env, err := e.svc.Update(ctx, payload)
	if err != nil {
		return nil, err
	}

	e.invalidateAggregates()
	e.logger.InfoContext(ctx, "Expense updated",
		log.FieldOperation, log.OpUpdate,
		"id", payload.ID)
	return env, nil
}

// PerDayFilter narrows the per-day aggregate query.
type PerDayFilter struct {
	Range           core.Range
	CategoryID      int
	PaymentMethodID int
}

// PerDay returns per-day spending totals for the named range. An empty
// result set is an ordinary empty slice, never an error.
func (e *Expenses) PerDay(ctx context.Context, filter PerDayFilter) ([]core.DayTotal, error) {
	dateRange := filter.Range.Resolve(time.Now())
	params := api.StatsParams{
		StartDate:       dateRange.StartDate,
		EndDate:         dateRange.EndDate,
		CategoryID:      filter.CategoryID,
		PaymentMethodID: filter.PaymentMethodID,
	}

	key := query.Key(query.ResourceExpenses, "stats", "per-day", params.CacheKey())
	return query.FetchAs(ctx, e.query, key, func(ctx context.Context) ([]core.DayTotal, error) {
		env, err := e.svc.TotalPerDay(ctx, params)
		if err != nil {
			return nil, err
		}

		totals := make([]core.DayTotal, 0, len(env.Data))
		for _, item := range env.Data {
			totals = append(totals, core.DayTotalFromAPI(item))
		}
		return totals, nil
	})
}

// expensePage is one fetched page with its own lookup bundle; different
// pages may reference different categories and payment methods.
type expensePage struct {
	items      []*api.Expense
	related    *api.RelatedItems
	pagination *api.Pagination
	meta       *api.Meta
}

// ExpenseList is an ordered sequence of pages fetched with a page cursor
// starting at 1. Page N+1 is never requested before page N's response has
// been observed: the next cursor comes from the prior page.
type ExpenseList struct {
	svc    *api.ExpenseService
	query  *query.Client
	filter api.ExpenseFilter

	mu          sync.Mutex
	pages       []*expensePage
	loading     bool
	loadingMore bool
}

// CacheKey returns the cache key holding this list's accumulated pages.
func (l *ExpenseList) CacheKey() string {
	return query.Key(query.ResourceExpenses, "list", l.filter.CacheKey())
}

// Load fetches the first page (or restores the accumulated page set from
// the cache when fresh). Safe to call again after invalidation.
func (l *ExpenseList) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	pages, err := query.FetchAs(ctx, l.query, l.CacheKey(), func(ctx context.Context) ([]*expensePage, error) {
		page, err := l.fetchPage(ctx, 1)
		if err != nil {
			return nil, err
		}
		return []*expensePage{page}, nil
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.pages = pages
	l.mu.Unlock()
	return nil
}

// FetchNextPage fetches the page after the last observed one. A no-op when
// no page has loaded yet, when a fetch is already in flight, or when the
// cursor is exhausted.
func (l *ExpenseList) FetchNextPage(ctx context.Context) error {
	l.mu.Lock()
	if l.loading || l.loadingMore || len(l.pages) == 0 {
		l.mu.Unlock()
		return nil
	}
	next := l.pages[len(l.pages)-1].nextPage()
	if next == nil {
		l.mu.Unlock()
		return nil
	}
	l.loadingMore = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loadingMore = false
		l.mu.Unlock()
	}()

	page, err := query.WithRetry(ctx, l.query.Retries(), func(ctx context.Context) (*expensePage, error) {
		return l.fetchPage(ctx, *next)
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.pages = append(l.pages, page)
	pages := l.pages
	l.mu.Unlock()

	// Keep the cached page set in step with what has been observed.
	l.query.Store(l.CacheKey(), pages)
	return nil
}

func (l *ExpenseList) fetchPage(ctx context.Context, page int) (*expensePage, error) {
	env, err := l.svc.List(ctx, api.ListExpensesParams{
		Page:   page,
		Limit:  ItemsPerPage,
		Filter: l.filter,
	})
	if err != nil {
		return nil, err
	}

	return &expensePage{
		items:      env.Data,
		related:    env.RelatedItems,
		pagination: env.Pagination,
		meta:       env.Meta,
	}, nil
}

func (p *expensePage) nextPage() *int {
	if p.pagination == nil {
		return nil
	}
	return p.pagination.NextPage
}

// Expenses returns the flattened list across all fetched pages, preserving
// page order and item order within each page. Each item is resolved against
// the lookup bundle of its own page.
func (l *ExpenseList) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	var expenses []core.Expense
	for _, page := range l.pages {
		for _, item := range page.items {
			expenses = append(expenses, core.ResolveExpense(item, page.related))
		}
	}
	return expenses
}

// Meta returns the aggregate meta of the first page; later pages do not
// repeat it. Before any page has loaded it is all zeros.
func (l *ExpenseList) Meta() api.Meta {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pages) == 0 || l.pages[0].meta == nil {
		return api.Meta{}
	}
	return *l.pages[0].meta
}

// HasNextPage reports whether the most recently fetched page carries a
// non-null next_page cursor.
func (l *ExpenseList) HasNextPage() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pages) == 0 {
		return false
	}
	return l.pages[len(l.pages)-1].nextPage() != nil
}

// Loading reports whether the initial load is in flight. Distinct from
// LoadingMore: a full-screen spinner belongs to the former only.
func (l *ExpenseList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// LoadingMore reports whether a subsequent page fetch is in flight.
func (l *ExpenseList) LoadingMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadingMore
}
