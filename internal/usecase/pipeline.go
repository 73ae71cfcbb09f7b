package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"ArticleAllocator/internal/allocation"
	"ArticleAllocator/internal/dedup"
	"ArticleAllocator/internal/domain"
	"ArticleAllocator/internal/extract"
	"ArticleAllocator/internal/ports"
)

// PipelineDeps wires all driven adapters into the allocation pipeline.
type PipelineDeps struct {
	Provider   ports.TextProvider
	Repository ports.HandledRepository
	Sink       ports.AllocationSink
	Logger     *slog.Logger
}

// Pipeline implements one allocation run: fetch raw texts, extract and merge
// articles, drop already-handled ones, validate the form state, distribute,
// and hand the result to the submission sink.
type Pipeline struct {
	provider   ports.TextProvider
	repository ports.HandledRepository
	sink       ports.AllocationSink
	logger     *slog.Logger
}

// Request carries one allocation run's form state.
type Request struct {
	Fields  []domain.PriorityField
	DdnText string
	Method  string
	Month   string
	Date    string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		provider:   deps.Provider,
		repository: deps.Repository,
		sink:       deps.Sink,
		logger:     deps.Logger,
	}
}

// Run executes one allocation. Validation failures (over-allocation, bad DDN
// list) come back in the second return value and leave the form editable; the
// third return value is reserved for hard failures of the surrounding
// collaborators. When validation fails nothing is distributed or submitted.
func (p *Pipeline) Run(ctx context.Context, req Request) (domain.FinalAllocationResult, []error, error) {
	var zero domain.FinalAllocationResult

	method, err := allocation.ParseMethod(req.Method)
	if err != nil {
		return zero, nil, err
	}

	for _, field := range req.Fields {
		if field.Value < 0 {
			return zero, nil, fmt.Errorf("priority field %s: negative requested count %d", field.ID, field.Value)
		}
	}

	if p.provider == nil {
		return zero, nil, fmt.Errorf("text provider is not configured")
	}

	texts, err := p.provider.FetchAll(ctx)
	if err != nil {
		return zero, nil, fmt.Errorf("fetch sources: %w", err)
	}

	var batches [][]domain.ParsedArticle
	handledFromSources := map[string]struct{}{}
	for _, text := range texts {
		res := extract.Extract(text.Body)
		p.debug("extracted source", "source", text.Source, "role", text.Role,
			"articles", len(res.Articles), "total_pages", res.TotalPages)

		if text.Role == domain.RoleHandled {
			for _, article := range res.Articles {
				handledFromSources[article.ArticleID] = struct{}{}
			}
			continue
		}
		batches = append(batches, res.Articles)
	}

	merged := dedup.MergeSources(batches)

	pool, err := p.excludeHandled(ctx, merged, handledFromSources)
	if err != nil {
		return zero, nil, err
	}
	p.debug("candidate pool ready", "merged", len(merged), "pool", len(pool))

	ddnIDs, validationErrs := allocation.ValidateRequest(req.Fields, pool, req.DdnText)
	if len(validationErrs) > 0 {
		return zero, validationErrs, nil
	}

	result := allocation.Distribute(req.Fields, pool, ddnIDs, method, req.Month, req.Date)

	if p.sink != nil {
		if err := p.sink.Submit(ctx, result); err != nil {
			return zero, nil, fmt.Errorf("submit allocation: %w", err)
		}
	}

	if p.repository != nil {
		if err := p.repository.MarkHandled(ctx, assignedIDs(result)); err != nil {
			return zero, nil, fmt.Errorf("mark handled: %w", err)
		}
	}

	return result, nil, nil
}

// excludeHandled drops articles already assigned in earlier runs, combining
// the repository's memory with IDs extracted from handled-role sources.
func (p *Pipeline) excludeHandled(ctx context.Context, merged []domain.ParsedArticle, fromSources map[string]struct{}) ([]domain.ParsedArticle, error) {
	handled := map[string]bool{}
	if p.repository != nil && len(merged) > 0 {
		ids := make([]string, 0, len(merged))
		for _, article := range merged {
			ids = append(ids, article.ArticleID)
		}
		stored, err := p.repository.AlreadyHandled(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load handled: %w", err)
		}
		handled = stored
	}

	pool := make([]domain.ParsedArticle, 0, len(merged))
	for _, article := range merged {
		if handled[article.ArticleID] {
			continue
		}
		if _, ok := fromSources[article.ArticleID]; ok {
			continue
		}
		pool = append(pool, article)
	}
	return pool, nil
}

// assignedIDs collects the IDs that actually got an assignee; leftovers stay
// unhandled so the next run picks them up again.
func assignedIDs(result domain.FinalAllocationResult) []string {
	var ids []string
	for _, person := range result.PersonAllocations {
		for _, article := range person.Articles {
			ids = append(ids, article.ArticleID)
		}
	}
	for _, article := range result.DdnArticles {
		ids = append(ids, article.ArticleID)
	}
	return ids
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
