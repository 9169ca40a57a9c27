package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fintrack/fintrack-cli/internal/client/authflow"
	"github.com/fintrack/fintrack-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a username and password and drives the authentication
// flow to completion. Depending on the backend's answer the user may be
// asked to set up an authenticator app or to enter a one-time code; a
// blank code entry cancels the attempt.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in.")
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	flow := authflow.New(a.authAPI, a.log)
	defer flow.Close()

	state, err := flow.SubmitCredentials(ctx, username, password)
	if err != nil {
		a.renderAuthError(err)
		return nil
	}
	return a.completeChallenge(ctx, flow, state)
}

// LoginWithGoogle authenticates through Google sign-in. The browser
// consent flow yields an identity token which the backend treats like a
// password login, including the enrollment/challenge branching. OAuth
// sessions verify codes without a password.
func (a *App) LoginWithGoogle(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in.")
		return nil
	}

	clientID := a.config.GoogleClientID
	if clientID == "" {
		id, err := a.authAPI.GoogleClientID(ctx)
		if err != nil {
			a.renderError(err)
			return nil
		}
		clientID = id
	}

	idToken, err := a.googleToken(ctx, clientID)
	if err != nil {
		a.log.Warn(ctx, "google sign-in failed", "err", err)
		printlnFn("Google Login Failed. Please try again.")
		return nil
	}

	flow := authflow.New(a.authAPI, a.log)
	defer flow.Close()

	state, err := flow.SubmitGoogleToken(ctx, idToken)
	if err != nil {
		a.renderAuthError(err)
		return nil
	}
	return a.completeChallenge(ctx, flow, state)
}

// completeChallenge walks the flow from a post-credential state to
// completion. Enrollment material is shown once; each loop turn then reads
// either a 6-digit code, "email" to request delivery by mail, or a blank
// line to cancel. Rejected codes keep the flow (and any delivery
// confirmation) in place so the user can simply try again.
func (a *App) completeChallenge(ctx context.Context, flow *authflow.Flow, state authflow.State) error {
	if state == authflow.StateEnrollment {
		printlnFn("Two-factor setup required. Add this secret to your authenticator app:")
		printlnFn("  secret: " + flow.Secret())
		printlnFn("  QR:     " + flow.QRImageURL())
	}

	for {
		if state == authflow.StateComplete {
			printlnFn("Login successful!")
			return nil
		}

		code, err := getSimpleText(a.reader,
			"Enter the 6-digit code ('email' to receive one by email, blank to cancel)", os.Stdout)
		if err != nil {
			return err
		}

		switch code {
		case "":
			printlnFn("Login cancelled.")
			return nil
		case "email":
			msg, err := flow.RequestEmailCode(ctx)
			if err != nil {
				a.renderAuthError(err)
				continue
			}
			printlnFn(msg)
			continue
		}

		next, err := flow.SubmitCode(ctx, code)
		if err != nil {
			if errors.Is(err, authflow.ErrFlowClosed) {
				return nil
			}
			a.renderAuthError(err)
			continue
		}
		state = next
	}
}

// Logout drops the in-memory session credential. Idempotent.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the subject and validity window of the current session
// token. The claims are decoded locally and not verified.
func (a *App) WhoAmI(ctx context.Context) error {
	claims, err := a.authService.SessionClaims()
	if err != nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn("Logged in as: " + claims.Subject)
	if !claims.ExpiresAt.IsZero() {
		printlnFn(fmt.Sprintf("Session valid until: %s", claims.ExpiresAt.Format("2006-01-02 15:04:05")))
	}
	return nil
}
