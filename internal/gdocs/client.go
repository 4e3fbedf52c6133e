package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"docs2mcp/internal/model"
)

// DefaultBaseURL points at the hosted document service.
const DefaultBaseURL = "https://docs.googleapis.com"

// TokenSource supplies a bearer credential on demand. Acquisition may fail;
// the failure surfaces as AUTH_FAILURE before any store traffic.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns the same token on every call.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", model.NewError(model.CodeAuthFailure, "empty access token")
	}
	return string(s), nil
}

// EnvTokenSource reads the token from an environment variable at call time,
// so a rotated token is picked up without a restart.
type EnvTokenSource string

func (e EnvTokenSource) Token(context.Context) (string, error) {
	v := os.Getenv(string(e))
	if v == "" {
		return "", model.NewError(model.CodeAuthFailure, fmt.Sprintf("environment variable %s is empty", string(e)))
	}
	return v, nil
}

// Client is the authenticated handle to the document store. It is created
// once at process start and never mutated afterwards, so it is safe to share
// across tool invocations without locking.
type Client struct {
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Get fetches the current document tree. One fetch per resolution call; the
// result is never cached across tool invocations.
func (c *Client) Get(ctx context.Context, documentID string) (*Document, error) {
	if documentID == "" {
		return nil, model.NewError(model.CodeDocNotFound, "document id is empty")
	}
	var doc Document
	if err := c.do(ctx, http.MethodGet, "/v1/documents/"+documentID, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create makes a new, empty document and returns its tree (id and title).
func (c *Client) Create(ctx context.Context, title string) (*Document, error) {
	var doc Document
	if err := c.do(ctx, http.MethodPost, "/v1/documents", createDocumentBody{Title: title}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// BatchUpdate submits one ordered mutation batch. The store applies the
// batch atomically: all requests or none.
func (c *Client) BatchUpdate(ctx context.Context, documentID string, requests []Request) error {
	if documentID == "" {
		return model.NewError(model.CodeDocNotFound, "document id is empty")
	}
	if len(requests) == 0 {
		return model.NewError(model.CodeInvalidIntent, "empty mutation batch")
	}
	path := "/v1/documents/" + documentID + ":batchUpdate"
	return c.do(ctx, http.MethodPost, path, batchUpdateBody{Requests: requests}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		if model.CodeOf(err) != "" {
			return err
		}
		return model.WrapError(model.CodeAuthFailure, "credential acquisition failed", err)
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return model.WrapError(model.CodeStoreRejected, "encoding request body", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return model.WrapError(model.CodeStoreUnavailable, "building request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return model.WrapError(model.CodeStoreUnavailable, "document store unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return storeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return model.WrapError(model.CodeStoreRejected, "decoding store response", err)
	}
	return nil
}

// storeError converts a non-2xx response into a typed error, preserving the
// store's own message rather than swallowing it.
func storeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(data))
	var envelope apiError
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}
	if msg == "" {
		msg = resp.Status
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.NewError(model.CodeDocNotFound, msg)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return model.NewError(model.CodeAuthFailure, msg)
	case resp.StatusCode >= 500:
		return model.NewError(model.CodeStoreUnavailable, fmt.Sprintf("store error %d: %s", resp.StatusCode, msg))
	default:
		return model.NewError(model.CodeStoreRejected, fmt.Sprintf("store rejected request (%d): %s", resp.StatusCode, msg))
	}
}
