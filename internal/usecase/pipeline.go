package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/ports"
	"PaperSummarizer/internal/summarize"
	"PaperSummarizer/internal/textproc"
)

// Request names one paper to process.
type Request struct {
	Source domain.SourceKind
	Ref    string
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Resolver   ports.SourceResolver
	Repository ports.SummaryRepository
	Analyzer   ports.KeywordAnalyzer
	Engine     *summarize.Engine
	Preprocess textproc.Config
	Mode       summarize.Mode
	Logger     *slog.Logger
}

// Pipeline implements the ingest -> preprocess -> summarize -> persist
// workflow. Each run is independent: fresh inputs, fresh outputs, no state
// shared across invocations.
type Pipeline struct {
	resolver   ports.SourceResolver
	repository ports.SummaryRepository
	analyzer   ports.KeywordAnalyzer
	engine     *summarize.Engine
	preprocess textproc.Config
	mode       summarize.Mode
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		resolver:   deps.Resolver,
		repository: deps.Repository,
		analyzer:   deps.Analyzer,
		engine:     deps.Engine,
		preprocess: deps.Preprocess,
		mode:       deps.Mode,
		logger:     deps.Logger,
	}
}

// ProcessAll runs every request, skipping papers already summarized. A
// failing paper does not abort the batch; failures are joined and returned
// after the batch completes.
func (p *Pipeline) ProcessAll(ctx context.Context, reqs []Request) error {
	var errs []error

	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		doc, result, err := p.ProcessOne(ctx, req)
		if err != nil {
			p.warn("paper failed", "source", req.Source, "ref", req.Ref, "error", err)
			errs = append(errs, fmt.Errorf("process %s/%s: %w", req.Source, req.Ref, err))
			continue
		}

		p.info("paper summarized",
			"paper", doc.PaperID,
			"method", result.Method,
			"sections", doc.Stats.NumSections,
			"chunks", doc.Stats.NumChunks,
			"summary_chars", len(result.Text),
		)
	}

	return errors.Join(errs...)
}

// ProcessOne fetches, preprocesses, summarizes, and persists a single paper.
func (p *Pipeline) ProcessOne(ctx context.Context, req Request) (domain.Document, domain.SummaryResult, error) {
	if p.resolver == nil || p.engine == nil {
		return domain.Document{}, domain.SummaryResult{}, fmt.Errorf("pipeline misconfigured")
	}

	source, err := p.resolver.Resolve(req.Source)
	if err != nil {
		return domain.Document{}, domain.SummaryResult{}, err
	}

	raw, err := source.Fetch(ctx, req.Ref)
	if err != nil {
		return domain.Document{}, domain.SummaryResult{}, fmt.Errorf("fetch: %w", err)
	}

	if p.repository != nil && raw.PaperID != "" {
		done, err := p.repository.AlreadySummarized(ctx, []string{raw.PaperID})
		if err != nil {
			return domain.Document{}, domain.SummaryResult{}, fmt.Errorf("load processed: %w", err)
		}
		if done[raw.PaperID] {
			p.info("paper already summarized, refreshing", "paper", raw.PaperID)
		}
	}

	doc := textproc.Preprocess(raw, p.preprocess)

	result, err := p.engine.Summarize(ctx, doc, p.mode)
	if err != nil {
		return doc, domain.SummaryResult{}, fmt.Errorf("summarize %s: %w", raw.PaperID, err)
	}

	if p.analyzer != nil {
		keywords, kErr := p.analyzer.ExtractKeywords(ctx, doc.FocusText)
		if kErr != nil {
			p.warn("keyword analysis unavailable", "paper", raw.PaperID, "error", kErr)
		} else {
			result.Keywords = keywords
		}
	}

	if p.repository != nil && raw.PaperID != "" {
		err = p.repository.SaveSummary(ctx, domain.StoredSummary{
			PaperID:    raw.PaperID,
			Title:      doc.Title,
			Method:     result.Method,
			Summary:    result.Text,
			FocusChars: doc.Stats.FocusChars,
			NumChunks:  doc.Stats.NumChunks,
		})
		if err != nil {
			return doc, result, fmt.Errorf("persist %s: %w", raw.PaperID, err)
		}
	}

	return doc, result, nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
