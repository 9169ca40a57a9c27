package cli

import (
	"fmt"
	"os"
	"strconv"
)

// promptAmount reads a positive decimal amount. The zero value and parse
// errors are reported by the data service validation, so this helper only
// converts.
func (a *App) promptAmount(prompt string) (float64, error) {
	raw, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return amount, nil
}

// promptDateRange reads an optional start and end date for list filters.
// Blank answers mean no bound on that side.
func (a *App) promptDateRange() (string, string, error) {
	start, err := getSimpleText(a.reader, "Start date (YYYY-MM-DD, blank for all)", os.Stdout)
	if err != nil {
		return "", "", err
	}
	end, err := getSimpleText(a.reader, "End date (YYYY-MM-DD, blank for all)", os.Stdout)
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}
