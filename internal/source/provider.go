package source

import (
	"context"
	"fmt"
	"log/slog"

	"ArticleAllocator/internal/config"
	"ArticleAllocator/internal/domain"
	"ArticleAllocator/internal/ports"
)

// ConfigProvider implements TextProvider via registered fetcher strategies.
type ConfigProvider struct {
	registry *Registry
	sources  []config.SourceConfig
	logger   *slog.Logger
}

var _ ports.TextProvider = (*ConfigProvider)(nil)

// NewConfigProvider wires the fetcher registry with config-defined sources.
func NewConfigProvider(reg *Registry, sources []config.SourceConfig, log *slog.Logger) *ConfigProvider {
	return &ConfigProvider{
		registry: reg,
		sources:  sources,
		logger:   log,
	}
}

// FetchAll iterates over configured sources in order and executes their
// fetchers. Source order is preserved; it decides which source wins when the
// same article appears in several of them.
func (p *ConfigProvider) FetchAll(ctx context.Context) ([]domain.SourceText, error) {
	if p.registry == nil {
		return nil, fmt.Errorf("fetcher registry is not configured")
	}

	p.debug("fetch all", "sources", len(p.sources))

	var aggregated []domain.SourceText
	for _, src := range p.sources {
		p.debug("process source", "source", src.Name, "fetcher", src.Fetcher, "role", src.Role)
		fetcher, err := p.registry.Resolve(src.Fetcher)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}

		req := Request{
			SourceName: src.Name,
			URL:        src.URL,
			Options:    src.Options,
		}

		bodies, err := fetcher.Fetch(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("fetch source %s: %w", src.Name, err)
		}

		role := src.Role
		if role == "" {
			role = domain.RoleCandidates
		}
		for _, body := range bodies {
			aggregated = append(aggregated, domain.SourceText{
				Source: src.Name,
				Role:   role,
				Body:   body,
			})
		}
		p.debug("source produced payloads", "source", src.Name, "count", len(bodies))
	}

	p.debug("provider done", "total_payloads", len(aggregated))
	return aggregated, nil
}

func (p *ConfigProvider) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
