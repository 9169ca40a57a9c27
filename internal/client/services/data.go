package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrack/fintrack-cli/internal/client/api"
	"github.com/fintrack/fintrack-cli/internal/client/models"
)

// Validation errors surfaced before any request is made.
var (
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrEmptyField        = errors.New("required field is empty")
	ErrBadDate           = errors.New("date must be in YYYY-MM-DD format")
)

// DataService exposes expense, revenue and report operations to the CLI.
type DataService interface {
	ListExpenses(ctx context.Context, startDate, endDate string) ([]models.Expense, error)
	AddExpense(ctx context.Context, e *models.Expense) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id string, e *models.Expense) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	ListRevenues(ctx context.Context, startDate, endDate string) ([]models.Revenue, error)
	AddRevenue(ctx context.Context, r *models.Revenue) (*models.Revenue, error)
	UpdateRevenue(ctx context.Context, id string, r *models.Revenue) (*models.Revenue, error)
	DeleteRevenue(ctx context.Context, id string) error

	Dashboard(ctx context.Context) (*models.DashboardSummary, []models.TrendPoint, models.CategoryBreakdown, error)
}

type dataService struct {
	api api.DataAPI
}

func NewDataService(dataAPI api.DataAPI) DataService {
	return &dataService{api: dataAPI}
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateExpense(e *models.Expense) error {
	if e.Description == "" || e.Category == "" {
		return ErrEmptyField
	}
	if e.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if e.Date == "" || !validDate(e.Date) {
		return ErrBadDate
	}
	return nil
}

func validateRevenue(r *models.Revenue) error {
	if r.Source == "" {
		return ErrEmptyField
	}
	if r.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if r.Date == "" || !validDate(r.Date) {
		return ErrBadDate
	}
	return nil
}

func (d *dataService) ListExpenses(ctx context.Context, startDate, endDate string) ([]models.Expense, error) {
	if !validDate(startDate) || !validDate(endDate) {
		return nil, ErrBadDate
	}
	return d.api.ListExpenses(ctx, startDate, endDate)
}

func (d *dataService) AddExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	if err := validateExpense(e); err != nil {
		return nil, err
	}
	return d.api.CreateExpense(ctx, e)
}

func (d *dataService) UpdateExpense(ctx context.Context, id string, e *models.Expense) (*models.Expense, error) {
	if id == "" {
		return nil, ErrEmptyField
	}
	if err := validateExpense(e); err != nil {
		return nil, err
	}
	return d.api.UpdateExpense(ctx, id, e)
}

func (d *dataService) DeleteExpense(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyField
	}
	return d.api.DeleteExpense(ctx, id)
}

func (d *dataService) ListRevenues(ctx context.Context, startDate, endDate string) ([]models.Revenue, error) {
	if !validDate(startDate) || !validDate(endDate) {
		return nil, ErrBadDate
	}
	return d.api.ListRevenues(ctx, startDate, endDate)
}

func (d *dataService) AddRevenue(ctx context.Context, r *models.Revenue) (*models.Revenue, error) {
	if err := validateRevenue(r); err != nil {
		return nil, err
	}
	return d.api.CreateRevenue(ctx, r)
}

func (d *dataService) UpdateRevenue(ctx context.Context, id string, r *models.Revenue) (*models.Revenue, error) {
	if id == "" {
		return nil, ErrEmptyField
	}
	if err := validateRevenue(r); err != nil {
		return nil, err
	}
	return d.api.UpdateRevenue(ctx, id, r)
}

func (d *dataService) DeleteRevenue(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyField
	}
	return d.api.DeleteRevenue(ctx, id)
}

// Dashboard fetches the three report endpoints that back the dashboard
// view. A failure on any of them fails the whole view.
func (d *dataService) Dashboard(ctx context.Context) (*models.DashboardSummary, []models.TrendPoint, models.CategoryBreakdown, error) {
	summary, err := d.api.DashboardSummary(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("summary: %w", err)
	}
	trend, err := d.api.Trend(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("trend: %w", err)
	}
	breakdown, err := d.api.CategoryBreakdown(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("breakdown: %w", err)
	}
	return summary, trend, breakdown, nil
}
