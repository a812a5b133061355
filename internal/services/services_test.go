package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chaching/internal/api"
	"chaching/internal/cache"
	"chaching/internal/query"
	"chaching/internal/transport"
)

// fixture wires real transport, services and query cache against a fake
// backend so cache keys can be inspected end to end.
type fixture struct {
	cache          *cache.Cache
	query          *query.Client
	expenses       *Expenses
	categories     *Categories
	paymentMethods *PaymentMethods
	users          *Users
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := transport.NewClient(transport.Config{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})

	c := cache.New(64, time.Minute, time.Hour)
	q := query.New(c, 0, nil)

	return &fixture{
		cache:          c,
		query:          q,
		expenses:       NewExpenses(api.NewExpenseService(client), q, nil),
		categories:     NewCategories(api.NewCategoryService(client), q, nil),
		paymentMethods: NewPaymentMethods(api.NewPaymentMethodService(client), q, nil),
		users:          NewUsers(api.NewUserService(client), q),
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func intPtr(v int) *int {
	return &v
}
