package allocation

import (
	"sort"

	"ArticleAllocator/internal/dedup"
	"ArticleAllocator/internal/domain"
)

// Distribute partitions a parsed batch into per-person, DDN and unallocated
// buckets. It is a pure partitioning: capacity problems are the validator's
// concern, and fields requesting more than remains simply receive fewer or
// zero articles once the cursor is exhausted.
//
// Pinned (DDN) articles are removed from the pool first. The rest is walked
// with a single cursor: under "allocate by priority" in original pool order,
// under "allocate by pages" after a stable sort by page count descending, so
// ties keep their relative order. Leftovers are tagged "NEED TO ALLOCATE"
// and, under the pages method, surface largest-first.
func Distribute(fields []domain.PriorityField, articles []domain.ParsedArticle, ddnIDs []string, method domain.AllocationMethod, month, date string) domain.FinalAllocationResult {
	ddnSet := make(map[string]struct{}, len(ddnIDs))
	for _, id := range ddnIDs {
		ddnSet[dedup.NormalizeID(id)] = struct{}{}
	}

	var result domain.FinalAllocationResult
	pool := make([]domain.ParsedArticle, 0, len(articles))
	for _, article := range articles {
		if _, ok := ddnSet[dedup.NormalizeID(article.ArticleID)]; ok {
			result.DdnArticles = append(result.DdnArticles, allocated(domain.AssigneeDDN, article, month, date))
			continue
		}
		pool = append(pool, article)
	}

	if method == domain.AllocateByPages {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].Pages > pool[j].Pages
		})
	}

	cursor := 0
	for _, field := range fields {
		person := domain.PersonAllocation{
			Person:   field.Label,
			Articles: []domain.AllocatedArticle{},
		}
		for n := 0; n < field.Value && cursor < len(pool); n++ {
			person.Articles = append(person.Articles, allocated(field.Label, pool[cursor], month, date))
			cursor++
		}
		result.PersonAllocations = append(result.PersonAllocations, person)
	}

	for ; cursor < len(pool); cursor++ {
		result.UnallocatedArticles = append(result.UnallocatedArticles, allocated(domain.AssigneeUnallocated, pool[cursor], month, date))
	}

	return result
}

func allocated(name string, article domain.ParsedArticle, month, date string) domain.AllocatedArticle {
	return domain.AllocatedArticle{
		Name:      name,
		ArticleID: article.ArticleID,
		Pages:     article.Pages,
		Month:     month,
		Date:      date,
	}
}
