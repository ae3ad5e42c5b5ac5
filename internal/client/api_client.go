package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

// ErrNetwork tags transport-level failures (connection refused, timeout, DNS).
// The pending-action replay retains the record on these and only on these;
// classification is by error type, never by message substring.
var ErrNetwork = errors.New("network error")

// API is the slice of the backend the reconciler and replay need.
type API interface {
	// SyncUser posts a verified ID token to the sync endpoint and returns the
	// canonical user record.
	SyncUser(ctx context.Context, idToken string) (*models.User, error)
	AddFavorite(ctx context.Context, idToken, teacherID string) error
}

// HTTPAPI implements API against a running backend.
type HTTPAPI struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPAPI creates an API client for the backend at baseURL.
func NewHTTPAPI(baseURL string) *HTTPAPI {
	return &HTTPAPI{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *HTTPAPI) do(ctx context.Context, method, path, idToken string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idToken != "" {
		req.Header.Set("Authorization", "Bearer "+idToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNetwork, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, apiErr.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

// SyncUser implements API.
func (a *HTTPAPI) SyncUser(ctx context.Context, idToken string) (*models.User, error) {
	var res struct {
		OK   bool         `json:"ok"`
		User *models.User `json:"user"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/auth/sync", idToken, nil, &res); err != nil {
		return nil, err
	}
	if !res.OK || res.User == nil {
		return nil, errors.New("sync returned no user")
	}
	return res.User, nil
}

// AddFavorite implements API.
func (a *HTTPAPI) AddFavorite(ctx context.Context, idToken, teacherID string) error {
	body := map[string]string{"teacherId": teacherID}
	return a.do(ctx, http.MethodPost, "/api/favorites", idToken, body, nil)
}
