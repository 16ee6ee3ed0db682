package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrUnauthorized is returned when the API rejects the token. The stored token
// is cleared by then, a new login is needed.
var ErrUnauthorized = errors.New("unauthorized, please log in again")

// APIError is a non 2xx response other than 401. Message is the plain text error the API sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

// New creates the API client. A nil httpClient gets a default one with a timeout
// long enough for the plan generation, a nil token store keeps the token in memory.
func New(baseURL string, httpClient *http.Client, tokens TokenStore) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("marshal request: %w", err)
	}
	return request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, nil
}

// do sends the request with the bearer token attached, and decodes a 2xx JSON body into out (if not nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	reqURL := c.baseURL + req.path
	if len(req.query) > 0 {
		reqURL += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, reqURL, req.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	log.Tracef("client: %s %s", req.method, req.path)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		if clearErr := c.tokens.Clear(); clearErr != nil {
			log.Errorf("client: clear token after 401: %s", clearErr)
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.method, req.path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	req, err := jsonRequest(method, path, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}
