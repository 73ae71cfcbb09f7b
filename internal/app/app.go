package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"ArticleAllocator/internal/config"
	"ArticleAllocator/internal/domain"
	"ArticleAllocator/internal/infrastructure/email"
	"ArticleAllocator/internal/infrastructure/portal"
	"ArticleAllocator/internal/infrastructure/storage"
	"ArticleAllocator/internal/infrastructure/webhook"
	"ArticleAllocator/internal/logging"
	"ArticleAllocator/internal/ports"
	"ArticleAllocator/internal/source"
	"ArticleAllocator/internal/usecase"
)

// Application wires configuration to the allocation pipeline.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := source.NewRegistry()
	registry.Register(portal.NewClient(nil, cfg.Portal.ContentSelector))
	registry.Register(email.NewClient(nil, cfg.Email.Token))

	provider := source.NewConfigProvider(registry, cfg.Sources, baseLogger.With("component", "source"))

	var repository ports.HandledRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	var sink ports.AllocationSink
	if cfg.Submission.WebhookURL != "" {
		sink = webhook.NewSubmitter(cfg.Submission.WebhookURL, cfg.Submission.Token)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Provider:   provider,
		Repository: repository,
		Sink:       sink,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}, nil
}

// Run performs a single allocation over today's sources using the configured
// team defaults.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	now := time.Now().In(a.cfg.Allocation.Location())
	req := usecase.Request{
		Fields: fieldsFromTeam(a.cfg.Allocation.Team),
		Method: a.cfg.Allocation.Method,
		Month:  now.Month().String(),
		Date:   now.Format("02/01/2006"),
	}

	result, validationErrs, err := a.pipeline.Run(ctx, req)
	if err != nil {
		return err
	}

	if len(validationErrs) > 0 {
		for _, verr := range validationErrs {
			a.logger.Warn("allocation rejected", "reason", verr)
		}
		return nil
	}

	assigned := 0
	for _, person := range result.PersonAllocations {
		assigned += len(person.Articles)
	}
	a.logger.Info("allocation complete",
		"assigned", assigned,
		"ddn", len(result.DdnArticles),
		"unallocated", len(result.UnallocatedArticles))

	return nil
}

func fieldsFromTeam(team []config.TeamMemberConfig) []domain.PriorityField {
	fields := make([]domain.PriorityField, 0, len(team))
	for i, member := range team {
		fields = append(fields, domain.PriorityField{
			ID:    fmt.Sprintf("%d", i+1),
			Label: member.Name,
			Value: member.Articles,
		})
	}
	return fields
}
