package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/apexfit/apexfit-go/internal/client/credentials"
	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/common"
	"github.com/apexfit/apexfit-go/internal/logging"
)

// HTTPClient talks JSON to the backend. It reads the credential store fresh
// on every authenticated call rather than caching a token across requests,
// so concurrent refreshes cannot leave it acting on a stale pair.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   *credentials.Store
	log     logging.Logger
}

func NewHTTPClient(baseURL string, httpClient *http.Client, store *credentials.Store, log logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
		log:     log.With("component", "api"),
	}
}

// issue builds and sends one request. Caller headers are applied first;
// Content-Type and X-Request-Id always win, and the Authorization header is
// set when accessToken is non-empty.
func (c *HTTPClient) issue(ctx context.Context, method, path string, body []byte, headers http.Header, accessToken string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+accessToken)
	}
	return c.http.Do(req)
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return b, nil
}

// Do sends an authenticated request and returns the raw response.
//
// It fails fast with common.ErrUnauthenticated when no credentials are
// stored. On a 401 it performs at most one refresh exchange and one retry:
// a missing refresh token or a failed exchange returns the original 401
// unchanged, and a failed exchange additionally clears the store. Any other
// status, success or not, is the caller's concern. The caller owns the
// response body.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, headers http.Header) (*http.Response, error) {
	creds := c.store.Get(ctx)
	if creds == nil || !creds.Complete() {
		return nil, common.ErrUnauthenticated
	}

	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}

	resp, err := c.issue(ctx, method, path, payload, headers, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Re-read the store: a concurrent call may have rotated the pair since
	// this request was issued.
	fresh := c.store.Get(ctx)
	if fresh == nil || fresh.RefreshToken == "" {
		return resp, nil
	}

	rotated, err := c.refresh(ctx, fresh.RefreshToken)
	if err != nil {
		c.log.Warn(ctx, "token refresh failed, clearing credentials", "error", err)
		c.store.Clear(ctx)
		return resp, nil
	}
	if err := c.store.Set(ctx, *rotated); err != nil {
		return resp, nil
	}
	_ = resp.Body.Close()

	retry, err := c.issue(ctx, method, path, payload, headers, rotated.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return retry, nil
}

// doJSON is Do plus body handling: 2xx decodes into out, everything else
// maps to a sentinel-wrapped error with the server's message.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, method, path, body, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatusError(resp.StatusCode, raw)
	}
	return decodeBody(raw, out)
}

// post sends an unauthenticated JSON request and decodes a 2xx response
// into out.
func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	resp, err := c.issue(ctx, http.MethodPost, path, payload, nil, "")
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatusError(resp.StatusCode, raw)
	}
	return decodeBody(raw, out)
}

// refreshResponse tolerates both token payload shapes the backend emits:
// a bare pair or a pair nested under "tokens".
type refreshResponse struct {
	models.Credentials
	Tokens *models.Credentials `json:"tokens"`
}

func (c *HTTPClient) refresh(ctx context.Context, refreshToken string) (*models.Credentials, error) {
	var out refreshResponse
	err := c.post(ctx, "/auth/refresh", map[string]string{"refreshToken": refreshToken}, &out)
	if err != nil {
		return nil, err
	}
	pair := out.Credentials
	if out.Tokens != nil {
		pair = *out.Tokens
	}
	if !pair.Complete() {
		return nil, fmt.Errorf("refresh response missing tokens")
	}
	return &pair, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.post(ctx, "/auth/login", map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, payload models.RegistrationPayload) (*AuthResult, error) {
	var out AuthResult
	if err := c.post(ctx, "/auth/register", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the refresh token server-side. The caller clears
// local state regardless of the outcome.
func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	return c.post(ctx, "/auth/logout", map[string]string{"refreshToken": refreshToken}, nil)
}

func (c *HTTPClient) SendOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/send-otp", map[string]string{"email": email}, nil)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string) error {
	return c.post(ctx, "/auth/verify-otp", map[string]string{"email": email, "otp": code}, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*AuthResult, error) {
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{"currentPassword": current, "newPassword": updated}
	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", body, nil)
}
