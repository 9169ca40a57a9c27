package api

import (
	"net/http"

	"github.com/fintrack/fintrack-cli/internal/client/token"
)

// authTransport attaches the stored bearer token to every outgoing request.
// It runs unconditionally for all API calls; endpoints that do not need a
// credential simply go out unmodified when none is stored. There is no
// allowlist at this layer.
type authTransport struct {
	tokens token.Store
	base   http.RoundTripper
}

// NewAuthTransport wraps base so that requests carry the session
// credential. A nil base falls back to http.DefaultTransport.
func NewAuthTransport(tokens token.Store, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{tokens: tokens, base: base}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, ok := t.tokens.Get()
	if !ok {
		return t.base.RoundTrip(req)
	}
	// RoundTrippers must not mutate the original request.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+tok)
	return t.base.RoundTrip(cloned)
}
