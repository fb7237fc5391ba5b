package grid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPDoer is an interface for executing HTTP requests.
// This abstraction allows for easy testing with mock implementations.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport handles HTTP communication with the remote REST API.
// It adds bearer authentication and maps error responses to
// RemoteOperationError. It never retries.
type Transport struct {
	config     *Config
	httpClient HTTPDoer
}

// NewTransport creates a new Transport with the given configuration.
func NewTransport(cfg *Config) *Transport {
	return &Transport{
		config:     cfg,
		httpClient: cfg.NewHTTPClient(),
	}
}

// NewTransportWithClient creates a new Transport with a custom HTTP client.
// This is useful for testing with mock HTTP clients.
func NewTransportWithClient(cfg *Config, client HTTPDoer) *Transport {
	return &Transport{
		config:     cfg,
		httpClient: client,
	}
}

// RequestOptions contains options for an HTTP request.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Query   url.Values
	Body    any // JSON-encoded when non-nil
}

// Response wraps an HTTP response with convenience methods.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Decode unmarshals the JSON response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Request performs an HTTP request against the API root.
func (t *Transport) Request(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	reqURL, err := t.buildURL(path, opts.Query)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	t.setDefaultHeaders(req, opts)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.config.Logger.Debug().Err(err).Str("method", opts.Method).Str("path", path).Msg("remote call failed")
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	t.config.Logger.Debug().
		Str("method", opts.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("remote call")

	if resp.StatusCode >= 400 {
		return nil, newRemoteError(resp.StatusCode, path, body)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// buildURL constructs the full URL for an API request.
func (t *Transport) buildURL(path string, query url.Values) (string, error) {
	base := strings.TrimSuffix(t.config.BaseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := url.Parse(base + path)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}

// setDefaultHeaders sets default headers on a request.
func (t *Transport) setDefaultHeaders(req *http.Request, opts *RequestOptions) {
	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.config.UserAgent != "" {
		req.Header.Set("User-Agent", t.config.UserAgent)
	}
	if t.config.HasToken() {
		req.Header.Set("Authorization", "Bearer "+t.config.Token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
}

// errorEnvelope is the remote error body. The "error" member is either a
// bare string type ("NOT_FOUND") or an object with type and message.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// newRemoteError builds a RemoteOperationError from an error response,
// keeping the remote message verbatim.
func newRemoteError(status int, path string, body []byte) *RemoteOperationError {
	e := &RemoteOperationError{
		StatusCode: status,
		Path:       path,
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Error) > 0 {
		var detail errorDetail
		var kind string
		switch {
		case json.Unmarshal(env.Error, &detail) == nil:
			e.Type = detail.Type
			e.Message = detail.Message
		case json.Unmarshal(env.Error, &kind) == nil:
			e.Type = kind
		}
	} else {
		e.Message = strings.TrimSpace(string(body))
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
