// Package authflow drives a user from credential entry through optional
// multi-factor enrollment or challenge to a completed session. It owns the
// transient pending context (username, enrollment material, delivery
// channel) and never persists any of it; the issued credential itself is
// stored by the api layer as part of the successful backend call.
package authflow

import (
	"context"
	"errors"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack-cli/internal/client/api"
	"github.com/fintrack/fintrack-cli/internal/common"
	"github.com/fintrack/fintrack-cli/internal/logging"
)

// State is the position of a flow between start and completion. Failures
// do not get a state of their own: a rejected call re-enters the state it
// was made from with the error surfaced to the caller.
type State int

const (
	// StateCredentialEntry collects username/password or an OAuth token.
	StateCredentialEntry State = iota
	// StateEnrollment shows first-time authenticator material; code
	// submission works exactly as in StateChallenge.
	StateEnrollment
	// StateChallenge awaits a 6-digit one-time code.
	StateChallenge
	// StateComplete is terminal: a credential is in the token store.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateCredentialEntry:
		return "credential-entry"
	case StateEnrollment:
		return "enrollment"
	case StateChallenge:
		return "challenge"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Channel selects which one-time-code path the verification call takes.
// Switching to email does not invalidate a previously generated
// authenticator code; it only changes the flag sent to the backend.
type Channel string

const (
	ChannelAuthenticator Channel = "authenticator"
	ChannelEmail         Channel = "email"
)

var (
	// ErrBusy: an authentication call is already in flight for this flow.
	ErrBusy = errors.New("authentication call already in flight")
	// ErrFlowClosed: the flow was reset or discarded; the result of any
	// call that was in flight at that moment has been dropped.
	ErrFlowClosed = errors.New("authentication flow discarded")
	// ErrInvalidCode: the entered code is not exactly six decimal digits.
	// No network call is made.
	ErrInvalidCode = errors.New("invalid code format")
	// ErrWrongState: the operation does not apply to the current state.
	ErrWrongState = errors.New("operation not valid in current state")
)

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// pending is the transient authentication context. It lives only between
// the first backend response and flow completion or teardown.
type pending struct {
	username        string
	password        []byte // nil for OAuth-originated sessions
	secret          string
	qrURL           string
	qrImageURL      string
	channel         Channel
	deliveryMessage string
}

func (p *pending) wipe() {
	common.WipeByteArray(p.password)
	*p = pending{channel: ChannelAuthenticator}
}

// Flow is one authentication attempt. Not safe for concurrent submissions
// by design: overlapping calls are rejected with ErrBusy, and results
// arriving after Reset or Close are discarded via an epoch check.
type Flow struct {
	api api.AuthAPI
	log logging.Logger
	id  uuid.UUID

	mu      sync.Mutex
	state   State
	busy    bool
	closed  bool
	epoch   uint64
	pending pending
}

func New(authAPI api.AuthAPI, log logging.Logger) *Flow {
	f := &Flow{
		api:   authAPI,
		id:    uuid.New(),
		state: StateCredentialEntry,
	}
	f.log = log.With("component", "authflow", "flow", f.id.String())
	f.pending.channel = ChannelAuthenticator
	return f
}

// ID identifies this flow instance in logs.
func (f *Flow) ID() uuid.UUID { return f.id }

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Username returns the account name held in the pending context.
func (f *Flow) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending.username
}

// Secret returns the shared secret shown during enrollment.
func (f *Flow) Secret() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending.secret
}

// QRImageURL returns the scannable provisioning image reference.
func (f *Flow) QRImageURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending.qrImageURL
}

func (f *Flow) Channel() Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending.channel
}

// DeliveryMessage returns the confirmation text from the last email-OTP
// dispatch, empty if none was requested.
func (f *Flow) DeliveryMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending.deliveryMessage
}

// begin marks the flow busy and snapshots the epoch the network call
// belongs to. Exactly one call may be outstanding at a time.
func (f *Flow) begin(allowed ...State) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, ErrFlowClosed
	}
	if f.busy {
		return 0, ErrBusy
	}
	ok := false
	for _, s := range allowed {
		if f.state == s {
			ok = true
			break
		}
	}
	if !ok {
		return 0, ErrWrongState
	}
	f.busy = true
	return f.epoch, nil
}

// apply runs fn under the lock if the flow still belongs to the epoch the
// call started in. A stale result is dropped without touching any state.
func (f *Flow) apply(epoch uint64, fn func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if f.closed || f.epoch != epoch {
		return ErrFlowClosed
	}
	if fn != nil {
		fn()
	}
	return nil
}

// SubmitCredentials performs a username/password login and advances the
// flow according to the backend's answer. The password is copied; the
// caller keeps ownership of (and should wipe) its own buffer.
func (f *Flow) SubmitCredentials(ctx context.Context, username string, password []byte) (State, error) {
	epoch, err := f.begin(StateCredentialEntry)
	if err != nil {
		return f.State(), err
	}

	res, callErr := f.api.Login(ctx, username, password)

	if callErr != nil {
		if err := f.apply(epoch, nil); err != nil {
			return f.State(), err
		}
		f.log.Debug(ctx, "login rejected", "user", username, "err", callErr)
		return f.State(), callErr
	}

	pw := append([]byte(nil), password...)
	if err := f.apply(epoch, func() { f.advance(res, username, pw) }); err != nil {
		common.WipeByteArray(pw)
		return f.State(), err
	}
	f.log.Info(ctx, "login advanced", "state", f.State().String())
	return f.State(), nil
}

// SubmitGoogleToken exchanges a Google identity token. The echoed username
// is captured and no password is kept, so later code submissions take the
// no-password verification path.
func (f *Flow) SubmitGoogleToken(ctx context.Context, idToken string) (State, error) {
	epoch, err := f.begin(StateCredentialEntry)
	if err != nil {
		return f.State(), err
	}

	res, callErr := f.api.LoginWithGoogle(ctx, idToken)

	if callErr != nil {
		if err := f.apply(epoch, nil); err != nil {
			return f.State(), err
		}
		f.log.Debug(ctx, "oauth login rejected", "err", callErr)
		return f.State(), callErr
	}

	if err := f.apply(epoch, func() { f.advance(res, "", nil) }); err != nil {
		return f.State(), err
	}
	f.log.Info(ctx, "oauth login advanced", "state", f.State().String())
	return f.State(), nil
}

// advance applies a login outcome. Caller holds the lock. The fallback
// username covers password logins where the backend does not echo one.
func (f *Flow) advance(res *api.LoginResult, fallbackUsername string, password []byte) {
	username := res.Username
	if username == "" {
		username = fallbackUsername
	}
	switch res.Kind {
	case api.KindAuthenticated:
		// Token already stored by the gateway.
		common.WipeByteArray(password)
		f.pending.wipe()
		f.state = StateComplete
	case api.KindEnrollmentRequired:
		f.pending = pending{
			username:   username,
			password:   password,
			secret:     res.Secret,
			qrURL:      res.QRURL,
			qrImageURL: api.QRImageURL(res.QRURL),
			channel:    ChannelAuthenticator,
		}
		f.state = StateEnrollment
	case api.KindChallengeRequired:
		f.pending = pending{
			username: username,
			password: password,
			channel:  ChannelAuthenticator,
		}
		f.state = StateChallenge
	}
}

// RequestEmailCode asks the backend to email a one-time code and switches
// the active delivery channel to email. An authenticator code generated
// earlier stays usable on its own channel.
func (f *Flow) RequestEmailCode(ctx context.Context) (string, error) {
	epoch, err := f.begin(StateEnrollment, StateChallenge)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	username := f.pending.username
	f.mu.Unlock()

	msg, callErr := f.api.SendEmailOTP(ctx, username)

	if callErr != nil {
		if err := f.apply(epoch, nil); err != nil {
			return "", err
		}
		return "", callErr
	}

	if err := f.apply(epoch, func() {
		f.pending.channel = ChannelEmail
		f.pending.deliveryMessage = msg
	}); err != nil {
		return "", err
	}
	f.log.Info(ctx, "email otp requested", "user", username)
	return msg, nil
}

// SubmitCode verifies a one-time code. Anything that is not exactly six
// decimal digits is rejected locally with ErrInvalidCode before any
// network call. On backend rejection the flow stays where it is; the
// delivery confirmation message is kept so the user still sees where the
// email code went.
func (f *Flow) SubmitCode(ctx context.Context, code string) (State, error) {
	if !codePattern.MatchString(code) {
		return f.State(), ErrInvalidCode
	}

	epoch, err := f.begin(StateEnrollment, StateChallenge)
	if err != nil {
		return f.State(), err
	}

	f.mu.Lock()
	username := f.pending.username
	password := f.pending.password
	emailOTP := f.pending.channel == ChannelEmail
	f.mu.Unlock()

	var callErr error
	if password == nil {
		callErr = f.api.Verify2FAOAuth(ctx, username, code, emailOTP)
	} else {
		callErr = f.api.Verify2FA(ctx, username, code, password, emailOTP)
	}

	if callErr != nil {
		if err := f.apply(epoch, nil); err != nil {
			return f.State(), err
		}
		f.log.Debug(ctx, "code rejected", "user", username, "channel", emailOTP)
		return f.State(), callErr
	}

	if err := f.apply(epoch, func() {
		f.pending.wipe()
		f.state = StateComplete
	}); err != nil {
		return f.State(), err
	}
	f.log.Info(ctx, "verification complete", "user", username)
	return StateComplete, nil
}

// Reset discards the pending context and returns the flow to credential
// entry. Any in-flight call's result will be dropped when it lands.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.epoch++
	f.pending.wipe()
	f.state = StateCredentialEntry
}

// Close invalidates the flow for good, e.g. when the user navigates away.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.epoch++
	f.closed = true
	f.pending.wipe()
}
