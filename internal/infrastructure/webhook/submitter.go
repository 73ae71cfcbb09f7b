package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ArticleAllocator/internal/domain"
	"ArticleAllocator/internal/ports"
)

// Row mirrors the tabular payload the submission sheet expects.
type Row struct {
	Name      string `json:"name"`
	ArticleID string `json:"articleId"`
	Pages     int    `json:"pages"`
	Month     string `json:"month"`
	Date      string `json:"date"`
}

// Submitter posts the flattened allocation table to the submission webhook.
type Submitter struct {
	endpoint string
	token    string
	client   *http.Client
}

var _ ports.AllocationSink = (*Submitter)(nil)

// NewSubmitter registers the webhook endpoint and auth token.
func NewSubmitter(endpoint, token string) *Submitter {
	return &Submitter{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit flattens the result and posts it as JSON.
func (s *Submitter) Submit(ctx context.Context, result domain.FinalAllocationResult) error {
	if s.endpoint == "" || s.client == nil {
		return fmt.Errorf("submitter misconfigured")
	}

	body, err := json.Marshal(map[string]any{"rows": Flatten(result)})
	if err != nil {
		return fmt.Errorf("marshal allocation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit allocation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("submission error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return nil
}

// Flatten orders rows person buckets first, then DDN, then unallocated,
// matching the layout of the destination sheet.
func Flatten(result domain.FinalAllocationResult) []Row {
	var rows []Row
	for _, person := range result.PersonAllocations {
		for _, article := range person.Articles {
			rows = append(rows, toRow(article))
		}
	}
	for _, article := range result.DdnArticles {
		rows = append(rows, toRow(article))
	}
	for _, article := range result.UnallocatedArticles {
		rows = append(rows, toRow(article))
	}
	return rows
}

func toRow(article domain.AllocatedArticle) Row {
	return Row{
		Name:      article.Name,
		ArticleID: article.ArticleID,
		Pages:     article.Pages,
		Month:     article.Month,
		Date:      article.Date,
	}
}
