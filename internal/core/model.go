// Package core holds the client-side model: camelCase records with resolved
// lookups, display-only aggregate helpers and named date ranges. Everything
// here is pure; the remote system of record owns the data.
package core

// Category is a spending category in client memory.
type Category struct {
	ID     int
	Name   string
	Budget float64
}

// PaymentMethod is a payment method in client memory.
type PaymentMethod struct {
	ID   int
	Name string
}

// Expense is an expense with its foreign keys resolved against the lookup
// bundle of the page it arrived on. Category and PaymentMethod are nil when
// the referenced entity no longer exists; that is a normal case, not an
// error, and consumers must tolerate it.
type Expense struct {
	ID              int
	UserID          int
	CategoryID      int
	PaymentMethodID int
	Category        *Category
	PaymentMethod   *PaymentMethod
	Title           string
	Amount          float64
	ExpenseDate     string
}

// User is the authenticated account in client memory.
type User struct {
	ID    int
	Name  string
	Email string
}

// CategoryStats is a per-category aggregate over a date range. The totals
// are server-authoritative; the client never recomputes them from raw rows.
type CategoryStats struct {
	ID          int
	Name        string
	Budget      float64
	TotalAmount float64
}

// Progress returns the spent/budget ratio clamped to [0, 1] for display.
// A zero or negative budget yields 0.
func (s CategoryStats) Progress() float64 {
	if s.Budget <= 0 {
		return 0
	}
	ratio := s.TotalAmount / s.Budget
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// PaymentMethodStats is a per-payment-method aggregate over a date range.
type PaymentMethodStats struct {
	ID          int
	Name        string
	TotalAmount float64
}

// DayTotal is one day's spending total within a date range.
type DayTotal struct {
	ExpenseDate string
	Count       int
	TotalAmount float64
}
