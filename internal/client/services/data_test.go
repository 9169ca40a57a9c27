package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack-cli/internal/client/api"
	"github.com/fintrack/fintrack-cli/internal/client/models"
)

// fakeDataAPI embeds the interface so only the methods a test needs are
// implemented; calling anything else panics, which is what we want.
type fakeDataAPI struct {
	api.DataAPI

	listExpensesCalls int
	lastRange         [2]string
	expenses          []models.Expense

	createdExpense *models.Expense
	createdRevenue *models.Revenue
	deletedID      string

	summary   *models.DashboardSummary
	trend     []models.TrendPoint
	breakdown models.CategoryBreakdown
	reportErr error
}

func (f *fakeDataAPI) ListExpenses(_ context.Context, startDate, endDate string) ([]models.Expense, error) {
	f.listExpensesCalls++
	f.lastRange = [2]string{startDate, endDate}
	return f.expenses, nil
}

func (f *fakeDataAPI) CreateExpense(_ context.Context, e *models.Expense) (*models.Expense, error) {
	f.createdExpense = e
	out := *e
	out.ID = "new-id"
	return &out, nil
}

func (f *fakeDataAPI) CreateRevenue(_ context.Context, r *models.Revenue) (*models.Revenue, error) {
	f.createdRevenue = r
	out := *r
	out.ID = "new-id"
	return &out, nil
}

func (f *fakeDataAPI) DeleteExpense(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

func (f *fakeDataAPI) DashboardSummary(context.Context) (*models.DashboardSummary, error) {
	if f.reportErr != nil {
		return nil, f.reportErr
	}
	return f.summary, nil
}

func (f *fakeDataAPI) Trend(context.Context) ([]models.TrendPoint, error) {
	return f.trend, nil
}

func (f *fakeDataAPI) CategoryBreakdown(context.Context) (models.CategoryBreakdown, error) {
	return f.breakdown, nil
}

func TestDataService_ListExpensesPassesRange(t *testing.T) {
	fc := &fakeDataAPI{expenses: []models.Expense{{ID: "1", Description: "coffee", Amount: 3, Category: "food", Date: "2026-08-01"}}}
	svc := NewDataService(fc)

	out, err := svc.ListExpenses(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, [2]string{"2026-08-01", "2026-08-31"}, fc.lastRange)
}

func TestDataService_ListExpensesRejectsBadRange(t *testing.T) {
	fc := &fakeDataAPI{}
	svc := NewDataService(fc)

	_, err := svc.ListExpenses(context.Background(), "08/01/2026", "")
	require.ErrorIs(t, err, ErrBadDate)
	require.Zero(t, fc.listExpensesCalls, "invalid input must not reach the network")
}

func TestDataService_AddExpenseValidation(t *testing.T) {
	svc := NewDataService(&fakeDataAPI{})

	cases := []struct {
		name string
		e    models.Expense
		want error
	}{
		{"missing description", models.Expense{Category: "food", Amount: 1, Date: "2026-08-01"}, ErrEmptyField},
		{"zero amount", models.Expense{Description: "x", Category: "food", Amount: 0, Date: "2026-08-01"}, ErrAmountNotPositive},
		{"negative amount", models.Expense{Description: "x", Category: "food", Amount: -2, Date: "2026-08-01"}, ErrAmountNotPositive},
		{"bad date", models.Expense{Description: "x", Category: "food", Amount: 1, Date: "01.08.2026"}, ErrBadDate},
		{"no date", models.Expense{Description: "x", Category: "food", Amount: 1}, ErrBadDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddExpense(context.Background(), &tc.e)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDataService_AddExpenseSuccess(t *testing.T) {
	fc := &fakeDataAPI{}
	svc := NewDataService(fc)

	out, err := svc.AddExpense(context.Background(), &models.Expense{
		Description: "coffee", Category: "food", Amount: 3.5, Date: "2026-08-01",
	})
	require.NoError(t, err)
	require.Equal(t, "new-id", out.ID)
	require.NotNil(t, fc.createdExpense)
}

func TestDataService_AddRevenueValidation(t *testing.T) {
	fc := &fakeDataAPI{}
	svc := NewDataService(fc)

	_, err := svc.AddRevenue(context.Background(), &models.Revenue{Amount: 5, Date: "2026-08-01"})
	require.ErrorIs(t, err, ErrEmptyField)

	out, err := svc.AddRevenue(context.Background(), &models.Revenue{Source: "salary", Amount: 5, Date: "2026-08-01"})
	require.NoError(t, err)
	require.Equal(t, "new-id", out.ID)
}

func TestDataService_DeleteRequiresID(t *testing.T) {
	fc := &fakeDataAPI{}
	svc := NewDataService(fc)

	require.ErrorIs(t, svc.DeleteExpense(context.Background(), ""), ErrEmptyField)
	require.NoError(t, svc.DeleteExpense(context.Background(), "42"))
	require.Equal(t, "42", fc.deletedID)
}

func TestDataService_Dashboard(t *testing.T) {
	fc := &fakeDataAPI{
		summary:   &models.DashboardSummary{NetBalance: 120.5, MonthName: "August"},
		trend:     []models.TrendPoint{{Month: "2026-08", Income: 100, Expense: 40}},
		breakdown: models.CategoryBreakdown{"food": 40},
	}
	svc := NewDataService(fc)

	summary, trend, breakdown, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, "August", summary.MonthName)
	require.Len(t, trend, 1)
	require.Equal(t, 40.0, breakdown["food"])
}

func TestDataService_DashboardPropagatesSessionEnd(t *testing.T) {
	fc := &fakeDataAPI{reportErr: api.ErrUnauthorized}
	svc := NewDataService(fc)

	_, _, _, err := svc.Dashboard(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
}
