package cli

import (
	"context"
	"fmt"
	"sort"
)

// Dashboard prints the monthly summary, the income/expense trend and the
// expense breakdown by category. Categories are sorted by total so the
// output is stable and the biggest spenders come first.
func (a *App) Dashboard(ctx context.Context) error {
	summary, trend, breakdown, err := a.dataService.Dashboard(ctx)
	if err != nil {
		a.renderError(err)
		return nil
	}

	printlnFn(fmt.Sprintf("--- %s ---", summary.MonthName))
	printlnFn(fmt.Sprintf("Net balance:     %10.2f", summary.NetBalance))
	printlnFn(fmt.Sprintf("Monthly income:  %10.2f (%+.1f%%)", summary.MonthlyIncome, summary.IncomeTrend))
	printlnFn(fmt.Sprintf("Monthly expense: %10.2f (%+.1f%%)", summary.MonthlyExpense, summary.ExpenseTrend))

	if len(trend) > 0 {
		printlnFn("Trend:")
		for _, p := range trend {
			printlnFn(fmt.Sprintf("  %-10s income %10.2f  expense %10.2f", p.Month, p.Income, p.Expense))
		}
	}

	if len(breakdown) > 0 {
		categories := make([]string, 0, len(breakdown))
		for c := range breakdown {
			categories = append(categories, c)
		}
		sort.Slice(categories, func(i, j int) bool {
			if breakdown[categories[i]] != breakdown[categories[j]] {
				return breakdown[categories[i]] > breakdown[categories[j]]
			}
			return categories[i] < categories[j]
		})

		printlnFn("Expenses by category:")
		for _, c := range categories {
			printlnFn(fmt.Sprintf("  %-12s %10.2f", c, breakdown[c]))
		}
	}
	return nil
}
