package dedup

import (
	"strings"

	"ArticleAllocator/internal/domain"
)

// NormalizeID trims and upper-cases an article identifier.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Normalize collapses repeated identifiers within a single source, keeping
// first-seen order and the first-seen page count.
func Normalize(articles []domain.ParsedArticle) []domain.ParsedArticle {
	return MergeSources([][]domain.ParsedArticle{articles})
}

// MergeSources merges per-source batches into one deduplicated list. Sources
// are processed in input order, not re-sorted: an identifier is recorded the
// first time it is seen across any source and later sources can never
// overwrite its page count. The merge is idempotent.
func MergeSources(sources [][]domain.ParsedArticle) []domain.ParsedArticle {
	seen := map[string]struct{}{}
	merged := make([]domain.ParsedArticle, 0)

	for _, source := range sources {
		for _, article := range source {
			id := NormalizeID(article.ArticleID)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, domain.ParsedArticle{ArticleID: id, Pages: article.Pages})
		}
	}

	return merged
}
