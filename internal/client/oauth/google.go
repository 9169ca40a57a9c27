// Package oauth implements the Google sign-in leg of the login flow: it
// obtains a Google identity token through the authorization-code flow on
// a loopback redirect. The resulting id_token is exchanged with the
// fintrack backend, which applies the same enrollment/challenge branching
// as a password login.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/skratchdot/open-golang/open"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/fintrack/fintrack-cli/internal/common"
	"github.com/fintrack/fintrack-cli/internal/logging"
)

var (
	ErrNoIDToken       = errors.New("authorization response carried no id_token")
	ErrStateMismatch   = errors.New("oauth state parameter mismatch")
	ErrConsentDenied   = errors.New("consent was denied")
	ErrMissingClientID = errors.New("google client id is not configured")
)

// GoogleSignIn runs the browser consent dance and returns the identity
// token. The endpoint and browser opener are fields so tests can point
// them at local stand-ins.
type GoogleSignIn struct {
	ClientID string
	Endpoint oauth2.Endpoint

	log         logging.Logger
	openBrowser func(url string) error
}

func NewGoogleSignIn(clientID string, log logging.Logger) *GoogleSignIn {
	return &GoogleSignIn{
		ClientID:    clientID,
		Endpoint:    google.Endpoint,
		log:         log.With("component", "oauth"),
		openBrowser: open.Run,
	}
}

type callbackResult struct {
	code string
	err  error
}

// IdentityToken starts a one-shot HTTP listener on a random loopback
// port, opens the browser at Google's consent page and waits for the
// redirect. The authorization code is then exchanged for a token set and
// the id_token extracted from it.
func (g *GoogleSignIn) IdentityToken(ctx context.Context) (string, error) {
	if g.ClientID == "" {
		return "", ErrMissingClientID
	}

	state, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("starting redirect listener: %w", err)
	}
	defer ln.Close()

	conf := &oauth2.Config{
		ClientID:    g.ClientID,
		RedirectURL: fmt.Sprintf("http://%s/oauth2callback", ln.Addr().String()),
		Scopes:      []string{"openid", "email", "profile"},
		Endpoint:    g.Endpoint,
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			results <- callbackResult{err: ErrStateMismatch}
			http.Error(w, "state mismatch", http.StatusBadRequest)
		case q.Get("error") != "":
			results <- callbackResult{err: fmt.Errorf("%w: %s", ErrConsentDenied, q.Get("error"))}
			fmt.Fprintln(w, "Sign-in was cancelled. You can close this window.")
		case q.Get("code") == "":
			results <- callbackResult{err: errors.New("redirect carried no authorization code")}
			http.Error(w, "missing code", http.StatusBadRequest)
		default:
			results <- callbackResult{code: q.Get("code")}
			fmt.Fprintln(w, "Signed in. You can close this window and return to the terminal.")
		}
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
	g.log.Info(ctx, "opening browser for google consent")
	if err := g.openBrowser(authURL); err != nil {
		// The user can still follow the link by hand.
		g.log.Warn(ctx, "could not open browser", "err", err)
		fmt.Println("Open this URL in your browser to continue:")
		fmt.Println(authURL)
	}

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if res.err != nil {
		return "", res.err
	}

	tok, err := conf.Exchange(ctx, res.code)
	if err != nil {
		return "", fmt.Errorf("exchanging authorization code: %w", err)
	}

	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", ErrNoIDToken
	}
	return idToken, nil
}
