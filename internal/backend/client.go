// Package backend is the typed HTTP client for the remote storefront API.
// The backend stays an opaque collaborator: every call maps a REST endpoint
// returning the `{success, data, message}` envelope onto a model value, and
// failures surface as typed application errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dvalverde/pos-companion/internal/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer token for authenticated calls. The session
// store implements it; requests go out unauthenticated when no session exists
// and the backend decides whether that is acceptable.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// envelope is the uniform response wrapper of the storefront API.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request body").WithError(err)
		}

		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.InternalError("Failed to build backend request").WithError(err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		if token, err := c.tokens.Token(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.BackendError("Storefront backend is unreachable").WithError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.BackendError("Failed to read backend response").WithError(err)
	}

	var env envelope
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &env); err != nil {
			return errors.BackendError("Malformed backend response").WithError(err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, env.Message)
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = "Backend reported failure"
		}

		return errors.BackendError(message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.BackendError("Malformed backend response data").WithError(err)
		}
	}

	return nil
}

func (c *Client) statusError(statusCode int, message string) error {
	if message == "" {
		message = fmt.Sprintf("Backend returned status %d", statusCode)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.UnauthorizedError(message)
	case http.StatusNotFound:
		return errors.NotFoundError(message)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return errors.BadRequestError(message)
	default:
		return errors.BackendError(message)
	}
}

func pageQuery(page, pageSize int, search string) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	if s := strings.TrimSpace(search); s != "" {
		query.Set("search", s)
	}

	return query
}
