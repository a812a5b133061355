package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaching/internal/api"
	"chaching/internal/core"
	"chaching/internal/query"
)

func TestCategories_ListCaches(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories", r.URL.Path)
		mu.Lock()
		requests++
		mu.Unlock()
		writeJSON(t, w, http.StatusOK, api.Envelope[[]*api.Category]{
			Data: []*api.Category{
				{ID: 1, Name: "Groceries", Budget: 500},
				{ID: 2, Name: "Transport", Budget: 120},
			},
		})
	})
	f := newFixture(t, handler)
	ctx := context.Background()

	first, err := f.categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Groceries", first[0].Name)
	assert.Equal(t, 500.0, first[0].Budget)

	second, err := f.categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	mu.Lock()
	assert.Equal(t, 1, requests, "second read is served from cache")
	mu.Unlock()
}

func TestCategories_StatsMapsRows(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories/stats", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("start_date"))
		assert.NotEmpty(t, r.URL.Query().Get("end_date"))
		writeJSON(t, w, http.StatusOK, api.Envelope[[]*api.CategoryStats]{
			Data: []*api.CategoryStats{
				{ID: 1, Name: "Groceries", Budget: 1000, TotalAmount: 750},
				{ID: 2, Name: "Fun", Budget: 0, TotalAmount: 40},
			},
		})
	})
	f := newFixture(t, handler)

	stats, err := f.categories.Stats(context.Background(), "current_month")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 0.75, stats[0].Progress())
	assert.Equal(t, 0.0, stats[1].Progress(), "no budget means no progress")
}

func TestCategories_CreateInvalidatesOnlyCategories(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/categories" && r.Method == http.MethodPost:
			writeJSON(t, w, http.StatusCreated, api.Envelope[*api.Category]{
				Data: &api.Category{ID: 3, Name: "Travel", Budget: 900},
			})
		case r.URL.Path == "/categories":
			writeJSON(t, w, http.StatusOK, api.Envelope[[]*api.Category]{Data: []*api.Category{}})
		case r.URL.Path == "/expenses":
			writeJSON(t, w, http.StatusOK, api.Envelope[[]*api.Expense]{Data: []*api.Expense{}})
		case r.URL.Path == "/payment-methods":
			writeJSON(t, w, http.StatusOK, api.Envelope[[]*api.PaymentMethod]{Data: []*api.PaymentMethod{}})
		default:
			http.NotFound(w, r)
		}
	})
	f := newFixture(t, handler)
	ctx := context.Background()

	list := f.expenses.List(api.ExpenseFilter{})
	require.NoError(t, list.Load(ctx))
	_, err := f.categories.List(ctx)
	require.NoError(t, err)
	_, err = f.paymentMethods.List(ctx)
	require.NoError(t, err)

	env, err := f.categories.Create(ctx, api.CreateCategoryPayload{Name: "Travel", Budget: 900})
	require.NoError(t, err)
	assert.Equal(t, "Travel", env.Data.Name)

	// A category write does not move expense rows or payment method totals.
	assert.False(t, f.cache.IsFresh(query.Key(query.ResourceCategories, "list")))
	assert.True(t, f.cache.IsFresh(list.CacheKey()))
	assert.True(t, f.cache.IsFresh(query.Key(query.ResourcePaymentMethods, "list")))
}

func TestCategories_UpdateInvalidatesStats(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/categories" && r.Method == http.MethodPut:
			writeJSON(t, w, http.StatusOK, api.Envelope[*api.Category]{
				Data: &api.Category{ID: 1, Name: "Groceries", Budget: 650},
			})
		case r.URL.Path == "/categories/stats":
			writeJSON(t, w, http.StatusOK, api.Envelope[[]*api.CategoryStats]{
				Data: []*api.CategoryStats{{ID: 1, Name: "Groceries", Budget: 500, TotalAmount: 100}},
			})
		default:
			http.NotFound(w, r)
		}
	})
	f := newFixture(t, handler)
	ctx := context.Background()

	_, err := f.categories.Stats(ctx, "current_week")
	require.NoError(t, err)

	_, err = f.categories.Update(ctx, api.UpdateCategoryPayload{ID: 1, Name: "Groceries", Budget: 650})
	require.NoError(t, err)

	// Budget changes shift stats, so the whole category family goes stale.
	dateRange := core.Range("current_week").Resolve(time.Now())
	statsKey := query.Key(query.ResourceCategories, "stats",
		api.StatsParams{StartDate: dateRange.StartDate, EndDate: dateRange.EndDate}.CacheKey())
	assert.False(t, f.cache.IsFresh(statsKey))
}
