// Package cli implements the interactive terminal client: a REPL with
// commands for authentication, expenses, revenues, reports and account
// management. Command handlers render user-facing messages themselves;
// the REPL loop only dispatches.
package cli

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/fintrack/fintrack-cli/internal/client/api"
	"github.com/fintrack/fintrack-cli/internal/client/authflow"
	"github.com/fintrack/fintrack-cli/internal/client/config"
	"github.com/fintrack/fintrack-cli/internal/client/oauth"
	"github.com/fintrack/fintrack-cli/internal/client/services"
	"github.com/fintrack/fintrack-cli/internal/client/token"
	"github.com/fintrack/fintrack-cli/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger

	authAPI     api.AuthAPI
	authService services.AuthService
	dataService services.DataService
	userService services.UserService

	reader *bufio.Reader

	// googleToken runs the browser consent flow. Swapped in tests.
	googleToken func(ctx context.Context, clientID string) (string, error)
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	tokens := token.NewMemoryStore()

	apiClient := api.NewHTTPClient(c.APIBaseURL, tokens, c.RequestTimeout)

	a := &App{
		config:      c,
		log:         log,
		authAPI:     apiClient,
		authService: services.NewAuthService(apiClient, tokens),
		dataService: services.NewDataService(apiClient),
		userService: services.NewUserService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
	}
	a.googleToken = func(ctx context.Context, clientID string) (string, error) {
		return oauth.NewGoogleSignIn(clientID, log).IdentityToken(ctx)
	}
	return a, nil
}

func (a *App) Run(ctx context.Context) {
	printlnFn("fintrack CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsLoggedIn()
}

func (a *App) getStatus() string {
	claims, err := a.authService.SessionClaims()
	if err != nil || claims.Subject == "" {
		return ""
	}
	return "(" + claims.Subject + ")"
}

// renderError prints the user-facing text for a failed command. A lost
// session gets its own message; the token store has already been cleared
// by the transport at that point, so the next guarded command will ask
// the user to log in again.
func (a *App) renderError(err error) {
	switch {
	case err == nil:
	case errors.Is(err, api.ErrUnauthorized):
		printlnFn("Your session has ended. Please log in again.")
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Unable to connect to server. Please try again later.")
	default:
		if apiErr, ok := api.AsAPIError(err); ok && apiErr.Message != "" {
			printlnFn(apiErr.Message)
			return
		}
		printlnFn(err.Error())
	}
}

// renderAuthError is renderError with the login-flow specific texts from
// authflow.UserMessage (invalid code format, busy flow, wrong password).
func (a *App) renderAuthError(err error) {
	if msg := authflow.UserMessage(err); msg != "" {
		printlnFn(msg)
	}
}
