package domain

// ParsedArticle is a detected article identifier with its page count.
// IDs are upper-normalized; a parsed batch contains each ID at most once.
type ParsedArticle struct {
	ArticleID string
	Pages     int
}

// PriorityField is one person's requested article count as entered in the
// allocation form. Consumed read-only by the calculator and distributor.
type PriorityField struct {
	ID    string
	Label string
	Value int
}

// Reserved assignee names for the non-person buckets.
const (
	AssigneeDDN         = "DDN"
	AssigneeUnallocated = "NEED TO ALLOCATE"
)

// AllocatedArticle is one (article, assignment) pair produced by the
// distributor. Month and Date are batch metadata shared by the whole run,
// not per-article facts.
type AllocatedArticle struct {
	Name      string
	ArticleID string
	Pages     int
	Month     string
	Date      string // DD/MM/YYYY
}

// PersonAllocation groups the articles assigned to a single person.
type PersonAllocation struct {
	Person   string
	Articles []AllocatedArticle
}

// FinalAllocationResult partitions a parsed batch into person, DDN and
// unallocated buckets. The article IDs across the three buckets are pairwise
// disjoint and jointly cover the input batch.
type FinalAllocationResult struct {
	PersonAllocations   []PersonAllocation
	DdnArticles         []AllocatedArticle
	UnallocatedArticles []AllocatedArticle
}

// DdnValidation is the outcome of checking a manually pinned article list.
type DdnValidation struct {
	Articles []string
	Err      error
}

// AllocationMethod selects how the distributor walks the remaining pool.
type AllocationMethod string

const (
	AllocateByPriority AllocationMethod = "allocate by priority"
	AllocateByPages    AllocationMethod = "allocate by pages"
)

// Source roles decide how a fetched text participates in an allocation run.
const (
	RoleCandidates = "candidates"
	RoleHandled    = "handled"
)

// SourceText is one raw payload pulled from a configured source.
type SourceText struct {
	Source string
	Role   string
	Body   string
}
