package cli

import (
	"context"
	"os"
)

// Me prints the authenticated user's profile.
func (a *App) Me(ctx context.Context) error {
	profile, err := a.userService.Me(ctx)
	if err != nil {
		a.renderError(err)
		return nil
	}

	printlnFn("Username: " + profile.Username)
	printlnFn("Email:    " + profile.Email)
	if profile.Provider != "" {
		printlnFn("Provider: " + profile.Provider)
	}
	if profile.AvatarURL != "" {
		printlnFn("Avatar:   " + profile.AvatarURL)
	}
	return nil
}

// UploadAvatar reads an image from a local path and uploads it as the
// profile picture.
func (a *App) UploadAvatar(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to image file", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.userService.UploadAvatar(ctx, path); err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Avatar updated.")
	return nil
}

func (a *App) DeleteAvatar(ctx context.Context) error {
	if err := a.userService.DeleteAvatar(ctx); err != nil {
		a.renderError(err)
		return nil
	}
	printlnFn("Avatar removed.")
	return nil
}

// DeleteAccount permanently removes the account after an explicit
// confirmation, then ends the local session.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This permanently deletes your account and all data. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.userService.DeleteAccount(ctx); err != nil {
		a.renderError(err)
		return nil
	}
	a.authService.Logout()
	printlnFn("Account deleted.")
	return nil
}
