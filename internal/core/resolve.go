package core

import "chaching/internal/api"

// ResolveExpense joins a wire expense with the lookup bundle of the page it
// came from. Pure and synchronous: it never fetches, and an unresolved
// foreign key propagates as nil.
func ResolveExpense(data *api.Expense, related *api.RelatedItems) Expense {
	expense := Expense{
		ID:              data.ID,
		UserID:          data.UserID,
		CategoryID:      data.CategoryID,
		PaymentMethodID: data.PaymentMethodID,
		Title:           data.Title,
		Amount:          data.Amount,
		ExpenseDate:     data.ExpenseDate,
	}

	if related == nil {
		return expense
	}

	if c, ok := related.Categories[data.CategoryID]; ok && c != nil {
		expense.Category = &Category{ID: c.ID, Name: c.Name, Budget: c.Budget}
	}
	if m, ok := related.PaymentMethods[data.PaymentMethodID]; ok && m != nil {
		expense.PaymentMethod = &PaymentMethod{ID: m.ID, Name: m.Name}
	}

	return expense
}

// CategoryFromAPI converts a wire category into the client model.
func CategoryFromAPI(data *api.Category) Category {
	return Category{ID: data.ID, Name: data.Name, Budget: data.Budget}
}

// PaymentMethodFromAPI converts a wire payment method into the client model.
func PaymentMethodFromAPI(data *api.PaymentMethod) PaymentMethod {
	return PaymentMethod{ID: data.ID, Name: data.Name}
}

// UserFromAPI converts a wire user into the client model.
func UserFromAPI(data *api.User) User {
	return User{ID: data.ID, Name: data.Name, Email: data.Email}
}

// CategoryStatsFromAPI converts a wire category aggregate into the client model.
func CategoryStatsFromAPI(data *api.CategoryStats) CategoryStats {
	return CategoryStats{
		ID:          data.ID,
		Name:        data.Name,
		Budget:      data.Budget,
		TotalAmount: data.TotalAmount,
	}
}

// PaymentMethodStatsFromAPI converts a wire payment-method aggregate into
// the client model.
func PaymentMethodStatsFromAPI(data *api.PaymentMethodStats) PaymentMethodStats {
	return PaymentMethodStats{
		ID:          data.ID,
		Name:        data.Name,
		TotalAmount: data.TotalAmount,
	}
}

// DayTotalFromAPI converts a wire per-day total into the client model.
func DayTotalFromAPI(data *api.ExpenseTotalPerDay) DayTotal {
	return DayTotal{
		ExpenseDate: data.ExpenseDate,
		Count:       data.Count,
		TotalAmount: data.TotalAmount,
	}
}
