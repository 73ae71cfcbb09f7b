package allocation

import (
	"fmt"
	"strings"

	"ArticleAllocator/internal/domain"
)

// ValidateDdn parses the pinned-article blob (one article ID per line) and
// checks it against the candidate pool. IDs are returned verbatim, not
// normalized. An empty pool means the candidates are not yet known;
// membership checking is skipped but uniqueness is still enforced.
func ValidateDdn(text string, availableIDs []string) domain.DdnValidation {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	unique := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		unique[line] = struct{}{}
	}
	if len(unique) != len(lines) {
		return domain.DdnValidation{Err: ErrDuplicateDdn}
	}

	if len(availableIDs) > 0 {
		pool := make(map[string]struct{}, len(availableIDs))
		for _, id := range availableIDs {
			pool[id] = struct{}{}
		}
		for _, line := range lines {
			if _, ok := pool[line]; !ok {
				return domain.DdnValidation{Err: fmt.Errorf("%w: %s", ErrUnknownDdn, line)}
			}
		}
	}

	return domain.DdnValidation{Articles: lines}
}

// ValidateCapacity reports over-allocation of the candidate pool.
func ValidateCapacity(available int, fields []domain.PriorityField) error {
	requested := TotalAllocated(fields)
	if IsOverAllocated(available, requested) {
		return fmt.Errorf("%w: requested %d of %d", ErrOverAllocated, requested, available)
	}
	return nil
}

// ValidateRequest runs the capacity and DDN checks independently and returns
// the pinned IDs together with every applicable error; the checks never
// short-circuit each other.
func ValidateRequest(fields []domain.PriorityField, articles []domain.ParsedArticle, ddnText string) ([]string, []error) {
	var errs []error

	if err := ValidateCapacity(len(articles), fields); err != nil {
		errs = append(errs, err)
	}

	ids := make([]string, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ArticleID)
	}
	ddn := ValidateDdn(ddnText, ids)
	if ddn.Err != nil {
		errs = append(errs, ddn.Err)
	}

	return ddn.Articles, errs
}
