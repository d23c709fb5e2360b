package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultBaseURL = "https://graph.facebook.com"

// HTTPError is returned when the Graph API responds with a non-2xx status.
// Body carries the parsed error response for diagnostics.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       json.RawMessage
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graph api request failed: %s", e.Status)
}

// Client performs requests against the Facebook Graph API. The access
// token is attached to every request as a query parameter, which is the
// auth scheme the platform documents.
type Client struct {
	BaseURL     string
	Version     string
	AccessToken string
	HTTPClient  *http.Client
}

// NewClient returns a Client for the given API version and access token.
func NewClient(accessToken, version string) *Client {
	return &Client{
		BaseURL:     defaultBaseURL,
		Version:     version,
		AccessToken: accessToken,
		HTTPClient:  &http.Client{},
	}
}

// Send issues a request to the Graph API and decodes the JSON response
// into out when out is non-nil. The body is serialized as JSON for POST
// requests and omitted entirely for GET. A non-2xx response yields an
// *HTTPError carrying the parsed error body.
func (c *Client) Send(ctx context.Context, method, endpoint string, body, out any) error {
	requestURL := fmt.Sprintf("%s/%s/%s?access_token=%s",
		c.BaseURL, c.Version, strings.TrimPrefix(endpoint, "/"), url.QueryEscape(c.AccessToken))

	var reader io.Reader
	if body != nil && method != http.MethodGet {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       normalizeErrorBody(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// Get issues a GET request to the Graph API.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Send(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues a POST request to the Graph API.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Send(ctx, http.MethodPost, endpoint, body, out)
}

// normalizeErrorBody keeps the response body attachable as raw JSON even
// when the remote sends something that is not JSON at all.
func normalizeErrorBody(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return json.RawMessage(quoted)
}
