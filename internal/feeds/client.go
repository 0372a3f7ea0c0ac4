package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches the four upstream data feeds from the port data hub.
// Every feed wraps its records in a {"data": [...]} envelope.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a feed client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the common wrapper used by all upstream endpoints.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// FetchAgency fetches the maritime agency feed.
func (c *Client) FetchAgency(ctx context.Context) ([]AgencyRecord, error) {
	var records []AgencyRecord
	if err := c.fetch(ctx, "/agencia-maritima", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchPilotage fetches the pilotage (praticagem) feed.
func (c *Client) FetchPilotage(ctx context.Context) ([]PilotageRecord, error) {
	var records []PilotageRecord
	if err := c.fetch(ctx, "/praticagem", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchTerminal fetches the terminal operator feed.
func (c *Client) FetchTerminal(ctx context.Context) ([]TerminalRecord, error) {
	var records []TerminalRecord
	if err := c.fetch(ctx, "/terminal-portuario", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchAuthority fetches the port authority feed.
func (c *Client) FetchAuthority(ctx context.Context) ([]AuthorityRecord, error) {
	var records []AuthorityRecord
	if err := c.fetch(ctx, "/autoridade-portuaria", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// fetch performs a GET against the given endpoint and decodes the data
// envelope into out, which must be a pointer to a record slice.
func (c *Client) fetch(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to parse %s envelope: %w", path, err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s records: %w", path, err)
	}
	return nil
}
