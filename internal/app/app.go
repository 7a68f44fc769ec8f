package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"PaperSummarizer/internal/config"
	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/extract"
	"PaperSummarizer/internal/infrastructure/analysis"
	"PaperSummarizer/internal/infrastructure/ingest"
	"PaperSummarizer/internal/infrastructure/llm"
	"PaperSummarizer/internal/infrastructure/scheduler"
	"PaperSummarizer/internal/infrastructure/storage"
	"PaperSummarizer/internal/logging"
	"PaperSummarizer/internal/ports"
	"PaperSummarizer/internal/summarize"
	"PaperSummarizer/internal/textproc"
	"PaperSummarizer/internal/usecase"
)

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	db       *sql.DB
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := ingest.NewRegistry()
	registry.Register(ingest.NewArxivSource(cfg.Ingest.ArxivBaseURL, nil, logging.Component(baseLogger, "source.arxiv")))
	registry.Register(ingest.NewFileSource(domain.SourceText))
	registry.Register(ingest.NewFileSource(domain.SourcePDF))

	ranker, err := extract.NewRanker()
	if err != nil {
		return nil, fmt.Errorf("build ranker: %w", err)
	}

	var generator ports.Generator
	if cfg.OpenAI.APIKey != "" {
		generator = llm.NewOpenAIGenerator(cfg.OpenAI)
	}

	var analyzer ports.KeywordAnalyzer
	if cfg.Analysis.InferenceURL != "" {
		analyzer = analysis.NewClient(cfg.Analysis.InferenceURL, cfg.Analysis.APIKey)
	}

	var (
		db   *sql.DB
		repo ports.SummaryRepository
	)
	if cfg.Database.DSN != "" {
		db, err = storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect storage: %w", err)
		}
		repo = storage.NewPostgresRepository(db)
	}

	engine := summarize.NewEngine(ranker, generator, summarize.Config{
		NumSentences:    cfg.Pipeline.ExtractiveSentences,
		ReductionRatio:  cfg.Pipeline.HybridReductionRatio,
		ChunkChars:      cfg.Pipeline.ChunkChars,
		OverlapChars:    cfg.Pipeline.OverlapChars,
		GenerateTimeout: time.Duration(cfg.Pipeline.GenerateTimeoutSecs) * time.Second,
	}, logging.Component(baseLogger, "summarize"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Resolver:   registry,
		Repository: repo,
		Analyzer:   analyzer,
		Engine:     engine,
		Mode:       summarize.Mode(cfg.Pipeline.Mode),
		Preprocess: textproc.Config{
			RemoveReferences:  !cfg.Pipeline.DisableReferenceCut,
			RemoveCitations:   cfg.Pipeline.RemoveCitations,
			MaxTokensPerChunk: cfg.Pipeline.MaxTokensPerChunk,
			OverlapTokens:     cfg.Pipeline.OverlapTokens,
			FocusMaxChars:     cfg.Pipeline.FocusMaxChars,
			SectionCap:        cfg.Pipeline.SectionCap,
			MinSectionChars:   cfg.Pipeline.MinSectionChars,
		},
		Logger: logging.Component(baseLogger, "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, db: db, logger: baseLogger}, nil
}

// Run processes the configured papers: once immediately, or on the
// configured cron schedule until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	requests := make([]usecase.Request, 0, len(a.cfg.Papers))
	for _, paper := range a.cfg.Papers {
		requests = append(requests, usecase.Request{
			Source: domain.SourceKind(paper.Source),
			Ref:    paper.Ref,
		})
	}

	if a.cfg.Scheduler.CronExpression == "" {
		return a.pipeline.ProcessAll(ctx, requests)
	}

	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	runner := usecase.NewScheduler(driver, a.pipeline, requests)
	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return runner.Stop(stopCtx)
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
