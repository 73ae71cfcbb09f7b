package portal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ArticleAllocator/internal/source"
)

const defaultSelector = "#content"

// Client fetches portal pages and hands the raw inner HTML of their content
// regions to the extractor. It stays layout-agnostic beyond locating the
// region: all article detection happens downstream on the text.
type Client struct {
	client   *http.Client
	selector string
}

var _ source.Fetcher = (*Client)(nil)

// NewClient wires an HTTP client; the selector defaults to "#content".
func NewClient(client *http.Client, contentSelector string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if contentSelector == "" {
		contentSelector = defaultSelector
	}
	return &Client{client: client, selector: contentSelector}
}

// Name identifies the strategy inside the registry.
func (c *Client) Name() string {
	return "portal"
}

// Fetch downloads the page and returns one raw HTML fragment per matched
// content region. A per-source "selector" option overrides the default; when
// nothing matches, the whole body is returned so the extractor still gets a
// chance on unfamiliar page layouts.
func (c *Client) Fetch(ctx context.Context, req source.Request) ([]string, error) {
	doc, err := c.fetchDocument(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.SourceName, err)
	}

	selector := c.selector
	if override := req.Options["selector"]; override != "" {
		selector = override
	}

	var fragments []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if html, err := sel.Html(); err == nil {
			fragments = append(fragments, html)
		}
	})

	if len(fragments) == 0 {
		if html, err := doc.Find("body").Html(); err == nil && html != "" {
			fragments = append(fragments, html)
		}
	}

	return fragments, nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ArticleAllocator/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("portal returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}
