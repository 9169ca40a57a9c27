package oauth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/fintrack/fintrack-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

// fakeGoogle stands in for the token endpoint and the user's browser.
func fakeGoogle(t *testing.T, idToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at",
			"token_type":   "Bearer",
			"id_token":     idToken,
			"expires_in":   3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// browserStub simulates the consent redirect by requesting the local
// callback with the given query values.
func browserStub(t *testing.T, mutate func(q url.Values)) func(string) error {
	t.Helper()
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		require.NoError(t, err)
		q := u.Query()

		cb, err := url.Parse(q.Get("redirect_uri"))
		require.NoError(t, err)

		cbq := url.Values{}
		cbq.Set("state", q.Get("state"))
		cbq.Set("code", "auth-code")
		if mutate != nil {
			mutate(cbq)
		}
		cb.RawQuery = cbq.Encode()

		go func() {
			resp, err := http.Get(cb.String())
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func newTestSignIn(t *testing.T, idToken string, mutate func(q url.Values)) *GoogleSignIn {
	t.Helper()
	google := fakeGoogle(t, idToken)
	g := NewGoogleSignIn("client-id", testLogger())
	g.Endpoint = oauth2.Endpoint{AuthURL: google.URL + "/auth", TokenURL: google.URL + "/token"}
	g.openBrowser = browserStub(t, mutate)
	return g
}

func TestIdentityToken_HappyPath(t *testing.T) {
	g := newTestSignIn(t, "the-id-token", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	idToken, err := g.IdentityToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "the-id-token", idToken)
}

func TestIdentityToken_MissingIDToken(t *testing.T) {
	g := newTestSignIn(t, "", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := g.IdentityToken(ctx)
	require.ErrorIs(t, err, ErrNoIDToken)
}

func TestIdentityToken_StateMismatch(t *testing.T) {
	g := newTestSignIn(t, "tok", func(q url.Values) {
		q.Set("state", "forged")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := g.IdentityToken(ctx)
	require.ErrorIs(t, err, ErrStateMismatch)
}

func TestIdentityToken_ConsentDenied(t *testing.T) {
	g := newTestSignIn(t, "tok", func(q url.Values) {
		q.Del("code")
		q.Set("error", "access_denied")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := g.IdentityToken(ctx)
	require.ErrorIs(t, err, ErrConsentDenied)
}

func TestIdentityToken_RequiresClientID(t *testing.T) {
	g := NewGoogleSignIn("", testLogger())
	_, err := g.IdentityToken(context.Background())
	require.ErrorIs(t, err, ErrMissingClientID)
}

func TestIdentityToken_ContextCancelled(t *testing.T) {
	g := NewGoogleSignIn("client-id", testLogger())
	g.openBrowser = func(string) error { return nil } // browser never comes back

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.IdentityToken(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
