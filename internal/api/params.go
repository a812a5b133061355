package api

import (
	"fmt"
	"net/url"
	"strconv"
)

// ExpenseFilter narrows an expense list or stats query. All fields are
// optional and combine by logical AND; zero values are omitted from the
// query string rather than sent empty.
type ExpenseFilter struct {
	StartDate       string
	EndDate         string
	CategoryID      int
	PaymentMethodID int
}

func (f ExpenseFilter) apply(values url.Values) {
	if f.StartDate != "" {
		values.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		values.Set("end_date", f.EndDate)
	}
	if f.CategoryID > 0 {
		values.Set("category_id", strconv.Itoa(f.CategoryID))
	}
	if f.PaymentMethodID > 0 {
		values.Set("payment_method_id", strconv.Itoa(f.PaymentMethodID))
	}
}

// Values serializes the filter as query-string parameters.
func (f ExpenseFilter) Values() url.Values {
	values := url.Values{}
	f.apply(values)
	return values
}

// CacheKey returns a stable serialization of the filter for cache keying.
// Distinct filters must never collide.
func (f ExpenseFilter) CacheKey() string {
	return fmt.Sprintf("start=%s&end=%s&category=%d&method=%d",
		f.StartDate, f.EndDate, f.CategoryID, f.PaymentMethodID)
}

// ListExpensesParams parameterizes a paginated expense list request.
type ListExpensesParams struct {
	Page   int
	Limit  int
	Filter ExpenseFilter
}

// Values serializes the params as query-string parameters.
func (p ListExpensesParams) Values() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	p.Filter.apply(values)
	return values
}

// StatsParams parameterizes an aggregate request over an inclusive date
// range, optionally narrowed by category or payment method.
type StatsParams struct {
	StartDate       string
	EndDate         string
	CategoryID      int
	PaymentMethodID int
}

// Values serializes the params as query-string parameters.
func (p StatsParams) Values() url.Values {
	return ExpenseFilter(p).Values()
}

// CacheKey returns a stable serialization of the params for cache keying.
func (p StatsParams) CacheKey() string {
	return ExpenseFilter(p).CacheKey()
}
