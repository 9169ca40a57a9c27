package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fintrack/fintrack-cli/internal/client/models"
)

// Revenues lists revenues, optionally limited to a date range.
func (a *App) Revenues(ctx context.Context) error {
	start, end, err := a.promptDateRange()
	if err != nil {
		return err
	}

	items, err := a.dataService.ListRevenues(ctx, start, end)
	if err != nil {
		a.renderError(err)
		return nil
	}

	if len(items) == 0 {
		printlnFn("No revenues found.")
		return nil
	}
	for _, r := range items {
		printlnFn(fmt.Sprintf("%s  %s  %10.2f  %s", r.ID, r.Date, r.Amount, r.Source))
	}
	return nil
}

func (a *App) promptRevenue() (*models.Revenue, error) {
	source, err := getSimpleText(a.reader, "Source", os.Stdout)
	if err != nil {
		return nil, err
	}
	amount, err := a.promptAmount("Amount")
	if err != nil {
		return nil, err
	}
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	return &models.Revenue{Source: source, Amount: amount, Date: date}, nil
}

func (a *App) AddRevenue(ctx context.Context) error {
	r, err := a.promptRevenue()
	if err != nil {
		return err
	}

	created, err := a.dataService.AddRevenue(ctx, r)
	if err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Added revenue " + created.ID)
	return nil
}

func (a *App) EditRevenue(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Revenue ID", os.Stdout)
	if err != nil {
		return err
	}
	r, err := a.promptRevenue()
	if err != nil {
		return err
	}

	if _, err := a.dataService.UpdateRevenue(ctx, id, r); err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Updated revenue " + id)
	return nil
}

func (a *App) DeleteRevenue(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Revenue ID", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.dataService.DeleteRevenue(ctx, id); err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Deleted revenue " + id)
	return nil
}
