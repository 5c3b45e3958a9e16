package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// httpClient is a thin wrapper for the JSON tag-listing calls.
type httpClient struct {
	client  *http.Client
	headers map[string]string
}

func newHTTPClient(transport http.RoundTripper) httpClient {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return httpClient{
		client:  &http.Client{Transport: transport},
		headers: map[string]string{"Accept": "application/json"},
	}
}

// getJSON issues a GET and decodes the response body into result.
func (c *httpClient) getJSON(ctx context.Context, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("GET %s: %d %s", url, resp.StatusCode, truncateBody(body, 512))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding response from GET %s: %w", url, err)
	}
	return nil
}

func truncateBody(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
