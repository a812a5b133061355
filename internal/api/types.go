package api

// Expense is an expense record as transmitted by the server.
type Expense struct {
	ID              int     `json:"id"`
	UserID          int     `json:"user_id"`
	CategoryID      int     `json:"category_id"`
	PaymentMethodID int     `json:"payment_method_id"`
	Title           string  `json:"title"`
	Amount          float64 `json:"amount"`
	ExpenseDate     string  `json:"expense_date"`
}

// Category is a spending category. Budget is a monthly soft ceiling used
// for display-only progress computation, never enforced server-side.
type Category struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
}

// PaymentMethod is a way of paying for an expense.
type PaymentMethod struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User is the authenticated account. Password is write-only and never
// round-tripped.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryStats is a per-category aggregate for a caller-supplied date range.
type CategoryStats struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Budget      float64 `json:"budget"`
	TotalAmount float64 `json:"total_amount"`
}

// PaymentMethodStats is a per-payment-method aggregate for a date range.
type PaymentMethodStats struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
}

// ExpenseTotalPerDay is a per-day spending total within a date range.
type ExpenseTotalPerDay struct {
	ExpenseDate string  `json:"expense_date"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}
