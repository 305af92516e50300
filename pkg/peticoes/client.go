// Package peticoes is the typed client for the petition platform api. It is
// what the admin dashboard and the public signing form talk through.
//
// Signature submissions and link page writes degrade to a local json store
// when the api is unreachable; see SignResult and LinkPageResult. A degraded
// save is always reported as such, it never pretends the remote write worked.
package peticoes

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

const DefaultBaseURL = "http://localhost:8080/api"

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *localStore

	Petitions  *PetitionService
	Signatures *SignatureService
	LinkPages  *LinkPageService
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLocalStoreDir sets where degraded-mode records are written.
func WithLocalStoreDir(dir string) Option {
	return func(c *Client) {
		c.store = newLocalStore(dir)
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      newLocalStore(""),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Petitions = &PetitionService{client: c}
	c.Signatures = &SignatureService{client: c}
	c.LinkPages = &LinkPageService{client: c}

	return c
}

// APIError carries the server's status code and raw response body for any
// non-2xx answer.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// envelope mirrors the server's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Data == nil {
		return fmt.Errorf("response has no data")
	}

	return json.Unmarshal(env.Data, out)
}
