package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fintrack/fintrack-cli/internal/client/models"
	"github.com/fintrack/fintrack-cli/internal/client/token"
)

// HTTPClient implements AuthAPI and DataAPI over the backend's JSON REST
// interface. All requests go through the bearer authorizer transport.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  token.Store
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:8080/api"). The token store is consulted on
// every request and written to by the login/verify operations.
func NewHTTPClient(baseURL string, tokens token.Store, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewAuthTransport(tokens, nil),
		},
	}
}

// messageBody is the error/info envelope the backend uses on most responses.
type messageBody struct {
	Message string `json:"message"`
}

// loginResponse mirrors the wire shape of /auth/login, /auth/oauth and the
// verify endpoints. At most one of Token/Setup2FA/Requires2FA is expected.
type loginResponse struct {
	Token       string `json:"token"`
	Setup2FA    bool   `json:"setup2fa"`
	Requires2FA bool   `json:"requires2fa"`
	Secret      string `json:"secret"`
	QRURL       string `json:"qrUrl"`
	Username    string `json:"username"`
	Message     string `json:"message"`
}

// sessionScoped marks endpoints that require an established session: a 401
// there means the credential has expired and must be dropped.
type callOpts struct {
	sessionScoped bool
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, opts callOpts) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decoding response: %w", err)
			}
		}
		return nil
	}

	if opts.sessionScoped && resp.StatusCode == http.StatusUnauthorized {
		// The backend no longer accepts the credential. Session ended.
		c.tokens.Clear()
		return ErrUnauthorized
	}

	var msg messageBody
	_ = json.Unmarshal(data, &msg)
	return &APIError{Status: resp.StatusCode, Message: msg.Message}
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body any, out any, opts callOpts) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(raw), "application/json", out, opts)
}

func (c *HTTPClient) putJSON(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, bytes.NewReader(raw), "application/json", out, callOpts{sessionScoped: true})
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out, callOpts{sessionScoped: true})
}

func (c *HTTPClient) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, callOpts{sessionScoped: true})
}

// decodeLoginResult applies the fixed branch priority
// token > setup2fa > requires2fa to a raw login response.
func decodeLoginResult(raw *loginResponse) (*LoginResult, error) {
	res := &LoginResult{
		Token:    raw.Token,
		Username: raw.Username,
		Secret:   raw.Secret,
		QRURL:    raw.QRURL,
		Message:  raw.Message,
	}
	switch {
	case raw.Token != "":
		res.Kind = KindAuthenticated
	case raw.Setup2FA:
		res.Kind = KindEnrollmentRequired
	case raw.Requires2FA:
		res.Kind = KindChallengeRequired
	default:
		return nil, fmt.Errorf("unexpected login response: no token, setup2fa or requires2fa")
	}
	return res, nil
}

func (c *HTTPClient) login(ctx context.Context, path string, body any) (*LoginResult, error) {
	var raw loginResponse
	if err := c.postJSON(ctx, path, body, &raw, callOpts{}); err != nil {
		return nil, err
	}
	res, err := decodeLoginResult(&raw)
	if err != nil {
		return nil, err
	}
	if res.Kind == KindAuthenticated {
		c.tokens.Save(res.Token)
	}
	return res, nil
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*LoginResult, error) {
	return c.login(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": string(password),
	})
}

func (c *HTTPClient) LoginWithGoogle(ctx context.Context, idToken string) (*LoginResult, error) {
	return c.login(ctx, "/auth/oauth", map[string]string{
		"token":    idToken,
		"provider": "google",
	})
}

func (c *HTTPClient) SendEmailOTP(ctx context.Context, username string) (string, error) {
	var resp messageBody
	if err := c.postJSON(ctx, "/auth/send-2fa-email-otp", map[string]string{"username": username}, &resp, callOpts{}); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) verify(ctx context.Context, path string, body map[string]any) error {
	var raw loginResponse
	if err := c.postJSON(ctx, path, body, &raw, callOpts{}); err != nil {
		return err
	}
	if raw.Token == "" {
		return fmt.Errorf("unexpected verify response: token missing")
	}
	c.tokens.Save(raw.Token)
	return nil
}

func (c *HTTPClient) Verify2FA(ctx context.Context, username, code string, password []byte, emailOTP bool) error {
	return c.verify(ctx, "/auth/verify-2fa", map[string]any{
		"username":    username,
		"password":    string(password),
		"code":        code,
		"useEmailOtp": emailOTP,
	})
}

func (c *HTTPClient) Verify2FAOAuth(ctx context.Context, username, code string, emailOTP bool) error {
	return c.verify(ctx, "/auth/verify-2fa-oauth", map[string]any{
		"username":    username,
		"code":        code,
		"useEmailOtp": emailOTP,
	})
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte, email string) error {
	return c.postJSON(ctx, "/auth/register", map[string]string{
		"username": username,
		"password": string(password),
		"email":    email,
	}, nil, callOpts{})
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil, callOpts{})
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, resetCode string, newPassword []byte) error {
	return c.postJSON(ctx, "/auth/reset-password", map[string]string{
		"email":       email,
		"token":       resetCode,
		"newPassword": string(newPassword),
	}, nil, callOpts{})
}

func (c *HTTPClient) GoogleClientID(ctx context.Context) (string, error) {
	var resp struct {
		GoogleClientID string `json:"googleClientId"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/config", nil, "", &resp, callOpts{}); err != nil {
		return "", err
	}
	return resp.GoogleClientID, nil
}

// ---- expenses ----

func dateRangeQuery(startDate, endDate string) string {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *HTTPClient) ListExpenses(ctx context.Context, startDate, endDate string) ([]models.Expense, error) {
	var out []models.Expense
	if err := c.getJSON(ctx, "/expenses"+dateRangeQuery(startDate, endDate), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var out models.Expense
	if err := c.getJSON(ctx, "/expenses/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	var out models.Expense
	if err := c.postJSON(ctx, "/expenses", e, &out, callOpts{sessionScoped: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateExpense(ctx context.Context, id string, e *models.Expense) (*models.Expense, error) {
	var out models.Expense
	if err := c.putJSON(ctx, "/expenses/"+url.PathEscape(id), e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteExpense(ctx context.Context, id string) error {
	return c.delete(ctx, "/expenses/"+url.PathEscape(id))
}

// ---- revenues ----

func (c *HTTPClient) ListRevenues(ctx context.Context, startDate, endDate string) ([]models.Revenue, error) {
	var out []models.Revenue
	if err := c.getJSON(ctx, "/revenues"+dateRangeQuery(startDate, endDate), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetRevenue(ctx context.Context, id string) (*models.Revenue, error) {
	var out models.Revenue
	if err := c.getJSON(ctx, "/revenues/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateRevenue(ctx context.Context, r *models.Revenue) (*models.Revenue, error) {
	var out models.Revenue
	if err := c.postJSON(ctx, "/revenues", r, &out, callOpts{sessionScoped: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateRevenue(ctx context.Context, id string, r *models.Revenue) (*models.Revenue, error) {
	var out models.Revenue
	if err := c.putJSON(ctx, "/revenues/"+url.PathEscape(id), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteRevenue(ctx context.Context, id string) error {
	return c.delete(ctx, "/revenues/"+url.PathEscape(id))
}

// ---- reports ----

func (c *HTTPClient) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	var out models.DashboardSummary
	if err := c.getJSON(ctx, "/reports/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Trend(ctx context.Context) ([]models.TrendPoint, error) {
	var out []models.TrendPoint
	if err := c.getJSON(ctx, "/reports/trend", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CategoryBreakdown(ctx context.Context) (models.CategoryBreakdown, error) {
	var out models.CategoryBreakdown
	if err := c.getJSON(ctx, "/reports/breakdown", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- user ----

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.getJSON(ctx, "/users/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, filename string, data []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/users/avatar", &buf, w.FormDataContentType(), nil, callOpts{sessionScoped: true})
}

func (c *HTTPClient) DeleteAvatar(ctx context.Context) error {
	return c.delete(ctx, "/users/avatar")
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	return c.delete(ctx, "/users/me")
}
