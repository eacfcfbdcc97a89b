package api

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

	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// Client implements port.MarketplaceAPI against the marketplace REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ port.MarketplaceAPI = (*Client)(nil)

// NewClient creates a gateway for baseURL (e.g. http://localhost:5000).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one call to the API.
type request struct {
	method  string
	path    string
	token   string
	query   url.Values
	payload interface{}

	// body is sent as is with contentType when payload is nil.
	body        io.Reader
	contentType string
}

// do sends the request and returns the raw response body. Every failure is
// returned as a *port.APIError.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var body io.Reader
	if r.payload != nil {
		payloadBytes, err := json.Marshal(r.payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(payloadBytes)
	} else if r.body != nil {
		body = r.body
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	} else if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, port.NetworkError(c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, port.NetworkError(c.baseURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, data)
	}
	return data, nil
}

// call sends the request and decodes a JSON body into out, if any.
func (c *Client) call(ctx context.Context, r request, out interface{}) error {
	data, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// decodeError builds the APIError for a non-2xx response. The message is
// taken from error, error.message or message, in that order.
func decodeError(status int, data []byte) *port.APIError {
	apiErr := &port.APIError{
		Kind:    port.KindForStatus(status),
		Status:  status,
		Message: fmt.Sprintf("HTTP %d", status),
	}

	trimmed := bytes.TrimSpace(data)
	var body map[string]interface{}
	if err := json.Unmarshal(trimmed, &body); err != nil || body == nil {
		if len(trimmed) > 0 {
			apiErr.Details = string(trimmed)
		}
		return apiErr
	}

	apiErr.Details = body
	switch v := body["error"].(type) {
	case string:
		if v != "" {
			apiErr.Message = v
			return apiErr
		}
	case map[string]interface{}:
		apiErr.Details = v
		if m, ok := v["message"].(string); ok && m != "" {
			apiErr.Message = m
			return apiErr
		}
	}
	if m, ok := body["message"].(string); ok && m != "" {
		apiErr.Message = m
	}
	return apiErr
}

// decodeList accepts either a bare JSON array or an object holding the
// array under key.
func decodeList[T any](data []byte, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[key]
	if !ok {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func pathID(prefix string, id fmt.Stringer) string {
	return prefix + "/" + url.PathEscape(id.String())
}
