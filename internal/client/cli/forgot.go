package cli

import (
	"context"
	"os"

	"github.com/fintrack/fintrack-cli/internal/common"
)

// ForgotPassword asks the backend to send a password reset code to the
// given email address. The backend answers the same way whether or not
// the address has an account.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authService.ForgotPassword(ctx, email); err != nil {
		a.renderError(err)
		return nil
	}

	printlnFn("If the address has an account, a reset code is on its way.")
	return nil
}

// ResetPassword completes the recovery started by ForgotPassword: it takes
// the emailed reset code and a new password and applies them. The new
// password is read without echo and wiped before returning.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	code, err := getSimpleText(a.reader, "Enter reset code", os.Stdout)
	if err != nil {
		return err
	}

	newPassword, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.authService.ResetPassword(ctx, email, code, newPassword); err != nil {
		a.renderError(err)
		return nil
	}

	printlnFn("Password updated. You can log in now.")
	return nil
}
