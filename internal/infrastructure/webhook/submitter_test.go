package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ArticleAllocator/internal/domain"
)

func sampleResult() domain.FinalAllocationResult {
	return domain.FinalAllocationResult{
		PersonAllocations: []domain.PersonAllocation{
			{Person: "A", Articles: []domain.AllocatedArticle{
				{Name: "A", ArticleID: "P1", Pages: 5, Month: "May", Date: "02/05/2026"},
			}},
			{Person: "B", Articles: []domain.AllocatedArticle{}},
		},
		DdnArticles: []domain.AllocatedArticle{
			{Name: domain.AssigneeDDN, ArticleID: "P2", Pages: 3, Month: "May", Date: "02/05/2026"},
		},
		UnallocatedArticles: []domain.AllocatedArticle{
			{Name: domain.AssigneeUnallocated, ArticleID: "P3", Pages: 1, Month: "May", Date: "02/05/2026"},
		},
	}
}

func TestFlattenOrdersBuckets(t *testing.T) {
	t.Parallel()

	rows := Flatten(sampleResult())

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Name != "A" || rows[1].Name != domain.AssigneeDDN || rows[2].Name != domain.AssigneeUnallocated {
		t.Fatalf("unexpected row order: %v", rows)
	}
	if rows[0].ArticleID != "P1" || rows[0].Pages != 5 || rows[0].Date != "02/05/2026" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestSubmitPostsRows(t *testing.T) {
	t.Parallel()

	var received struct {
		Rows []Row `json:"rows"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	defer server.Close()

	submitter := NewSubmitter(server.URL, "token")
	submitter.client = server.Client()

	if err := submitter.Submit(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if len(received.Rows) != 3 || received.Rows[1].ArticleID != "P2" {
		t.Fatalf("unexpected payload: %+v", received.Rows)
	}
}

func TestSubmitErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sheet locked", http.StatusConflict)
	}))
	defer server.Close()

	submitter := NewSubmitter(server.URL, "")
	submitter.client = server.Client()

	if err := submitter.Submit(context.Background(), sampleResult()); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}
