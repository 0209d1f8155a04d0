package botcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTurnstileURL is Cloudflare's siteverify endpoint.
const DefaultTurnstileURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrSecretRequired is returned when the Turnstile secret key is missing.
var ErrSecretRequired = errors.New("turnstile secret key is required")

// Turnstile is a Verifier backed by Cloudflare Turnstile.
type Turnstile struct {
	secret   string
	endpoint string
	client   *http.Client
}

// TurnstileOption customizes the Turnstile verifier.
type TurnstileOption func(*Turnstile)

// WithEndpoint overrides the siteverify endpoint. Used by tests.
func WithEndpoint(endpoint string) TurnstileOption {
	return func(t *Turnstile) { t.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) TurnstileOption {
	return func(t *Turnstile) { t.client = client }
}

// NewTurnstile constructs a Turnstile verifier.
func NewTurnstile(secret string, opts ...TurnstileOption) (*Turnstile, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}

	t := &Turnstile{
		secret:   secret,
		endpoint: DefaultTurnstileURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

type turnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token to the siteverify endpoint.
//
// An empty token fails closed without a network round trip.
func (t *Turnstile) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", t.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("turnstile siteverify returned status %d", resp.StatusCode)
	}

	var body turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}

	return body.Success, nil
}
