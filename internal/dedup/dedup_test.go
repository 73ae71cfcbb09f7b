package dedup

import (
	"reflect"
	"testing"

	"ArticleAllocator/internal/domain"
)

func TestNormalizeKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	got := Normalize([]domain.ParsedArticle{
		{ArticleID: "ab123", Pages: 4},
		{ArticleID: "CD456", Pages: 2},
		{ArticleID: " AB123 ", Pages: 99},
	})

	want := []domain.ParsedArticle{
		{ArticleID: "AB123", Pages: 4},
		{ArticleID: "CD456", Pages: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestMergeSourcesFirstSourceWins(t *testing.T) {
	t.Parallel()

	first := []domain.ParsedArticle{{ArticleID: "AB123", Pages: 4}}
	second := []domain.ParsedArticle{
		{ArticleID: "ab123", Pages: 10},
		{ArticleID: "EF789", Pages: 1},
	}

	got := MergeSources([][]domain.ParsedArticle{first, second})

	want := []domain.ParsedArticle{
		{ArticleID: "AB123", Pages: 4},
		{ArticleID: "EF789", Pages: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestMergeSourcesIdempotent(t *testing.T) {
	t.Parallel()

	sources := [][]domain.ParsedArticle{
		{{ArticleID: "ab123", Pages: 4}, {ArticleID: "CD456", Pages: 2}},
		{{ArticleID: "AB123", Pages: 7}, {ArticleID: "gh012", Pages: 3}},
	}

	merged := MergeSources(sources)
	again := MergeSources([][]domain.ParsedArticle{merged})

	if !reflect.DeepEqual(merged, again) {
		t.Fatalf("merge is not idempotent: %v vs %v", merged, again)
	}
}

func TestMergeSourcesSkipsEmptyIDs(t *testing.T) {
	t.Parallel()

	got := MergeSources([][]domain.ParsedArticle{{
		{ArticleID: "  ", Pages: 5},
		{ArticleID: "AB123", Pages: 1},
	}})

	if len(got) != 1 || got[0].ArticleID != "AB123" {
		t.Fatalf("unexpected result: %v", got)
	}
}
