package cli

import (
	"context"
	"os"

	"github.com/fintrack/fintrack-cli/internal/common"
)

// Register prompts the user for a username, email and password and
// attempts to create a new account.
//
// On success it prints "Success!" and returns nil. The password byte
// slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, username, password, email); err != nil {
		a.renderError(err)
		return nil
	}

	printlnFn("Success!")
	return nil
}
