package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fintrack/fintrack-cli/internal/client/models"
)

// Expenses lists expenses, optionally limited to a date range.
func (a *App) Expenses(ctx context.Context) error {
	start, end, err := a.promptDateRange()
	if err != nil {
		return err
	}

	items, err := a.dataService.ListExpenses(ctx, start, end)
	if err != nil {
		a.renderError(err)
		return nil
	}

	if len(items) == 0 {
		printlnFn("No expenses found.")
		return nil
	}
	for _, e := range items {
		printlnFn(fmt.Sprintf("%s  %s  %10.2f  %-12s %s", e.ID, e.Date, e.Amount, e.Category, e.Description))
	}
	return nil
}

func (a *App) promptExpense() (*models.Expense, error) {
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return nil, err
	}
	amount, err := a.promptAmount("Amount")
	if err != nil {
		return nil, err
	}
	category, err := getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return nil, err
	}
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	return &models.Expense{Description: description, Amount: amount, Category: category, Date: date}, nil
}

func (a *App) AddExpense(ctx context.Context) error {
	e, err := a.promptExpense()
	if err != nil {
		return err
	}

	created, err := a.dataService.AddExpense(ctx, e)
	if err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Added expense " + created.ID)
	return nil
}

func (a *App) EditExpense(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Expense ID", os.Stdout)
	if err != nil {
		return err
	}
	e, err := a.promptExpense()
	if err != nil {
		return err
	}

	if _, err := a.dataService.UpdateExpense(ctx, id, e); err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Updated expense " + id)
	return nil
}

func (a *App) DeleteExpense(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Expense ID", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.dataService.DeleteExpense(ctx, id); err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Deleted expense " + id)
	return nil
}
