// Package api is the only layer that talks to the Finance Tracker backend.
// It exposes one operation per REST endpoint, normalizes login responses
// into an explicit tagged result, and attaches the stored bearer token to
// every outgoing request.
package api

import (
	"context"
	"net/url"

	"github.com/fintrack/fintrack-cli/internal/client/models"
)

// OutcomeKind discriminates the three ways a login or OAuth exchange can
// end. The backend populates at most one of token/setup2fa/requires2fa;
// should a response ever carry more than one, the fixed priority is
// token > setup2fa > requires2fa.
type OutcomeKind int

const (
	// KindAuthenticated: a token was issued, the session is complete.
	KindAuthenticated OutcomeKind = iota
	// KindEnrollmentRequired: first login, the user must register the
	// shared secret with an authenticator app before verifying.
	KindEnrollmentRequired
	// KindChallengeRequired: second factor already enrolled, a one-time
	// code is expected.
	KindChallengeRequired
)

// LoginResult is the normalized outcome of Login or LoginWithGoogle.
// Which fields are meaningful depends on Kind:
//   - KindAuthenticated: Token.
//   - KindEnrollmentRequired: Username, Secret, QRURL.
//   - KindChallengeRequired: Username.
type LoginResult struct {
	Kind     OutcomeKind
	Token    string
	Username string
	Secret   string
	QRURL    string
	Message  string
}

// AuthAPI covers the authentication endpoints. Calls that end a login
// flow successfully (Login, LoginWithGoogle, Verify2FA, Verify2FAOAuth)
// store the issued token before returning.
type AuthAPI interface {
	Login(ctx context.Context, username string, password []byte) (*LoginResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error)
	SendEmailOTP(ctx context.Context, username string) (string, error)
	Verify2FA(ctx context.Context, username, code string, password []byte, emailOTP bool) error
	Verify2FAOAuth(ctx context.Context, username, code string, emailOTP bool) error
	Register(ctx context.Context, username string, password []byte, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, resetCode string, newPassword []byte) error
	GoogleClientID(ctx context.Context) (string, error)
}

// DataAPI covers the authenticated application endpoints. A 401 from any
// of these clears the token store and surfaces ErrUnauthorized.
type DataAPI interface {
	ListExpenses(ctx context.Context, startDate, endDate string) ([]models.Expense, error)
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id string, e *models.Expense) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	ListRevenues(ctx context.Context, startDate, endDate string) ([]models.Revenue, error)
	GetRevenue(ctx context.Context, id string) (*models.Revenue, error)
	CreateRevenue(ctx context.Context, r *models.Revenue) (*models.Revenue, error)
	UpdateRevenue(ctx context.Context, id string, r *models.Revenue) (*models.Revenue, error)
	DeleteRevenue(ctx context.Context, id string) error

	DashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
	Trend(ctx context.Context) ([]models.TrendPoint, error)
	CategoryBreakdown(ctx context.Context) (models.CategoryBreakdown, error)

	CurrentUser(ctx context.Context) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, filename string, data []byte) error
	DeleteAvatar(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// qrImageBase is the third-party renderer used to turn the otpauth
// provisioning URI into a scannable image. No QR code is generated locally.
const qrImageBase = "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data="

// QRImageURL derives a scannable image reference from a provisioning URI.
func QRImageURL(provisioningURI string) string {
	if provisioningURI == "" {
		return ""
	}
	return qrImageBase + url.QueryEscape(provisioningURI)
}
