// Package models holds the data transfer types exchanged with the
// Finance Tracker backend.
package models

// Expense is a single spending record. Date is an ISO-8601 date string,
// matching what the backend stores and returns.
type Expense struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// Revenue is a single income record.
type Revenue struct {
	ID     string  `json:"id,omitempty"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// DashboardSummary aggregates the current month's position.
type DashboardSummary struct {
	NetBalance     float64 `json:"netBalance"`
	MonthlyIncome  float64 `json:"monthlyIncome"`
	IncomeTrend    float64 `json:"incomeTrend"`
	MonthlyExpense float64 `json:"monthlyExpense"`
	ExpenseTrend   float64 `json:"expenseTrend"`
	MonthName      string  `json:"monthName"`
}

// TrendPoint is one month of the income/expense trend series.
type TrendPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryBreakdown maps expense category to its total.
type CategoryBreakdown map[string]float64

// UserProfile is the authenticated user's account record.
type UserProfile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Provider  string `json:"provider,omitempty"`
}
