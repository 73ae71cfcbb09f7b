package ports

import (
	"context"

	"ArticleAllocator/internal/domain"
)

// TextProvider pulls raw text payloads from every configured source.
type TextProvider interface {
	FetchAll(ctx context.Context) ([]domain.SourceText, error)
}

// HandledRepository remembers article IDs that were already allocated in
// earlier runs, backing the already-handled exclusion.
type HandledRepository interface {
	AlreadyHandled(ctx context.Context, ids []string) (map[string]bool, error)
	MarkHandled(ctx context.Context, ids []string) error
}

// AllocationSink receives the flattened allocation table for submission.
type AllocationSink interface {
	Submit(ctx context.Context, result domain.FinalAllocationResult) error
}
