package email

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ArticleAllocator/internal/source"
)

// Client retrieves email bodies from the mail webhook. The webhook already
// handles mailbox access; this adapter only turns its JSON reply into plain
// body strings for the extractor.
type Client struct {
	token  string
	client *http.Client
}

var _ source.Fetcher = (*Client)(nil)

// NewClient builds a reusable webhook client.
func NewClient(client *http.Client, token string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{token: token, client: client}
}

// Name identifies the strategy inside the registry.
func (c *Client) Name() string {
	return "email"
}

// Fetch calls the webhook and returns one string per email body.
func (c *Client) Fetch(ctx context.Context, req source.Request) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch emails: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("email webhook %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var reply struct {
		Emails []struct {
			Body string `json:"body"`
		} `json:"emails"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode emails: %w", err)
	}

	bodies := make([]string, 0, len(reply.Emails))
	for _, mail := range reply.Emails {
		if mail.Body != "" {
			bodies = append(bodies, mail.Body)
		}
	}

	return bodies, nil
}
