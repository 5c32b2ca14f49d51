package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/modeladapter/usage"
	"github.com/XXpE3/goose/pkg/providers/model"
	"github.com/XXpE3/goose/pkg/tools/toolbox"
)

// Provider is the capability contract every backend adapter implements.
// Implementations must be safe for concurrent use: no instance field is
// mutated after construction.
type Provider interface {
	// Metadata returns the adapter's static descriptor. No I/O.
	Metadata() Metadata

	// ModelConfig returns the model the adapter was bound to at construction.
	ModelConfig() model.Model

	// Complete sends the conversation to the backend and returns the
	// assistant's reply plus a usage record. It performs exactly one network
	// round trip, never retries, and never mutates msgs or tools.
	// Cancellation and deadlines propagate through ctx into the request.
	Complete(ctx context.Context, system string, msgs []message.Message, tools []toolbox.Tool) (message.Message, usage.ProviderUsage, error)
}

// Auth holds authentication settings for an LLM provider API.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// ModelAdapter holds shared state for LLM provider implementations. Embed it
// in concrete adapter structs to get HTTP helpers, auth, custom headers, and
// usage tracking. All exported fields are set at construction and read-only
// afterwards, which is what makes concurrent Complete calls safe.
type ModelAdapter struct {
	model.Model                   // Embeds Name, ContextLimit, Temperature, MaxTokens.
	Auth        Auth              // Authentication settings.
	BaseURL     string            // API base URL (no trailing slash).
	Client      *http.Client      // HTTP client; falls back to a cached default.
	Headers     map[string]string // Extra headers applied to every request.
	Usage       usage.Tracker     // Token usage tracker, fed on every successful call.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// New creates a ModelAdapter with the given settings.
// A nil client falls back to a shared default client at call time.
func New(baseURL string, auth Auth, m model.Model, client *http.Client) ModelAdapter {
	return ModelAdapter{
		Model:   m,
		Auth:    auth,
		BaseURL: baseURL,
		Client:  client,
	}
}

// ModelConfig returns the bound model configuration.
func (a *ModelAdapter) ModelConfig() model.Model { return a.Model }

// UsageTracker returns the adapter's token usage tracker.
func (a *ModelAdapter) UsageTracker() *usage.Tracker { return &a.Usage }

// httpClient returns the configured client or a cached default client with a
// 10-minute timeout.
func (a *ModelAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	a.clientOnce.Do(func() {
		a.defaultClient = &http.Client{Timeout: 10 * time.Minute}
	})

	return a.defaultClient
}

// validHeaderValue reports whether s is a legal HTTP header field value
// (visible ASCII, space, or tab; RFC 7230 field-content).
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < ' ' && c != '\t') || c == 0x7f {
			return false
		}
	}
	return true
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied. An API key that cannot be carried in a header
// yields an *ExecutionError; the key itself is kept out of the error text.
func (a *ModelAdapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if a.Auth.Key != "" && !validHeaderValue(a.Auth.Key) {
		return nil, &ExecutionError{Reason: "api key contains characters not allowed in an HTTP header value"}
	}

	url := a.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &ExecutionError{Reason: "build request", Err: err}
	}

	// Apply auth.
	if a.Auth.Key != "" {
		header := a.Auth.Header
		if header == "" {
			header = "Authorization"
		}

		value := a.Auth.Key
		if header == "Authorization" {
			scheme := a.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}

			value = scheme + " " + value
		} else if a.Auth.Scheme != "" {
			value = a.Auth.Scheme + " " + value
		}

		req.Header.Set(header, value)
	}

	// Apply custom headers.
	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostJSON marshals payload as JSON, sends a POST to the given path, checks
// for a 2xx status, and unmarshals the response body into dest. If dest is
// nil the response body is discarded after the status check.
//
// Failures map onto the adapter error taxonomy: encode/decode and transport
// problems come back as *ExecutionError, any non-2xx status as
// *RequestFailedError carrying the verbatim response body.
func (a *ModelAdapter) PostJSON(ctx context.Context, path string, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ExecutionError{Reason: "marshal payload", Err: err}
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		return &ExecutionError{Reason: "do request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &RequestFailedError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &ExecutionError{Reason: "decode response", Err: err}
	}

	return nil
}
