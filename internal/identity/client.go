// Package identity wraps the Firebase Identity Toolkit REST API. The Admin
// SDK cannot verify passwords or consume out-of-band confirmation codes, so
// login and the email flows go through this adapter, keyed by the project's
// Web API key.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// OOB request types understood by accounts:sendOobCode.
const (
	oobVerifyEmail   = "VERIFY_EMAIL"
	oobPasswordReset = "PASSWORD_RESET"
	oobChangeEmail   = "VERIFY_AND_CHANGE_EMAIL"
)

// Client calls the Identity Toolkit REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an identity client for the given Web API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the adapter at a fake provider.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// SignInResult carries the fields of a successful password sign-in.
type SignInResult struct {
	UID          string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// post sends a JSON body to an accounts:{verb} endpoint and decodes the reply
// into out. Provider errors are mapped onto the tagged error set.
func (c *Client) post(ctx context.Context, verb string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("identity: encode %s request: %w", verb, err)
	}

	url := fmt.Sprintf("%s/accounts:%s?key=%s", c.baseURL, verb, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("identity: build %s request: %w", verb, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity: %s request failed: %w", verb, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var pe providerError
		if decErr := json.NewDecoder(resp.Body).Decode(&pe); decErr != nil || pe.Error.Message == "" {
			return fmt.Errorf("identity: %s returned status %d: %w", verb, resp.StatusCode, ErrProvider)
		}
		return fmt.Errorf("identity: %s: %w", verb, mapProviderCode(pe.Error.Message))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("identity: decode %s response: %w", verb, err)
	}
	return nil
}

// SignInWithPassword verifies an email/password pair and returns the signed-in
// identity. Wrong password and unknown email both map to ErrInvalidCredentials
// or ErrEmailNotFound.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	req := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var res SignInResult
	if err := c.post(ctx, "signInWithPassword", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SendEmailVerification asks the provider to email a VERIFY_EMAIL OOB code to
// the holder of idToken.
func (c *Client) SendEmailVerification(ctx context.Context, idToken string) error {
	req := map[string]interface{}{
		"requestType": oobVerifyEmail,
		"idToken":     idToken,
	}
	return c.post(ctx, "sendOobCode", req, nil)
}

// ConfirmEmailVerification consumes a VERIFY_EMAIL OOB code and returns the
// email address that was verified.
func (c *Client) ConfirmEmailVerification(ctx context.Context, oobCode string) (string, error) {
	req := map[string]interface{}{"oobCode": oobCode}
	var res struct {
		Email string `json:"email"`
	}
	if err := c.post(ctx, "update", req, &res); err != nil {
		return "", err
	}
	return res.Email, nil
}

// SendEmailChange asks the provider to email a VERIFY_AND_CHANGE_EMAIL OOB
// code confirming a move to newEmail.
func (c *Client) SendEmailChange(ctx context.Context, idToken, newEmail string) error {
	req := map[string]interface{}{
		"requestType": oobChangeEmail,
		"idToken":     idToken,
		"newEmail":    newEmail,
	}
	return c.post(ctx, "sendOobCode", req, nil)
}

// SendPasswordReset asks the provider to email a PASSWORD_RESET OOB code.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	req := map[string]interface{}{
		"requestType": oobPasswordReset,
		"email":       email,
	}
	return c.post(ctx, "sendOobCode", req, nil)
}

// ConfirmPasswordReset consumes a PASSWORD_RESET OOB code and sets the new
// password. Returns the account email on success.
func (c *Client) ConfirmPasswordReset(ctx context.Context, oobCode, newPassword string) (string, error) {
	req := map[string]interface{}{
		"oobCode":     oobCode,
		"newPassword": newPassword,
	}
	var res struct {
		Email string `json:"email"`
	}
	if err := c.post(ctx, "resetPassword", req, &res); err != nil {
		return "", err
	}
	return res.Email, nil
}
