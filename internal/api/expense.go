package api

import (
	"context"
)

// CreateExpensePayload is the camelCase shape accepted by CreateExpense;
// it marshals to the wire's snake_case body.
type CreateExpensePayload struct {
	CategoryID      int     `json:"category_id"`
	PaymentMethodID int     `json:"payment_method_id"`
	Title           string  `json:"title"`
	Amount          float64 `json:"amount"`
	ExpenseDate     string  `json:"expense_date"`
}

// UpdateExpensePayload is the body of an expense update. The target id
// travels in the body.
type UpdateExpensePayload struct {
	ID              int     `json:"id"`
	CategoryID      int     `json:"category_id"`
	PaymentMethodID int     `json:"payment_method_id"`
	Title           string  `json:"title"`
	Amount          float64 `json:"amount"`
	ExpenseDate     string  `json:"expense_date"`
}

// ExpenseService shapes expense requests. Pure request shaping, no
// business logic.
type ExpenseService struct {
	client Client
}

func NewExpenseService(client Client) *ExpenseService {
	return &ExpenseService{client: client}
}

// List fetches one page of expenses together with the page's related-items
// bundle, pagination cursor and meta aggregates.
func (s *ExpenseService) List(ctx context.Context, params ListExpensesParams) (*Envelope[[]*Expense], error) {
	var env Envelope[[]*Expense]
	if err := s.client.Get(ctx, "/expenses", params.Values(), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// TotalPerDay fetches per-day spending totals for a date range.
func (s *ExpenseService) TotalPerDay(ctx context.Context, params StatsParams) (*Envelope[[]*ExpenseTotalPerDay], error) {
	var env Envelope[[]*ExpenseTotalPerDay]
	if err := s.client.Get(ctx, "/expenses/stats/total-per-day", params.Values(), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Create records a new expense.
func (s *ExpenseService) Create(ctx context.Context, payload CreateExpensePayload) (*Envelope[*Expense], error) {
	var env Envelope[*Expense]
	if err := s.client.Post(ctx, "/expenses", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Update rewrites an existing expense.
func (s *ExpenseService) Update(ctx context.Context, payload UpdateExpensePayload) (*Envelope[*Expense], error) {
	var env Envelope[*Expense]
	if err := s.client.Put(ctx, "/expenses", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
