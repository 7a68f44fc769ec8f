package summarize

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/extract"
	"PaperSummarizer/internal/ports"
	"PaperSummarizer/internal/textproc"
)

// Mode selects the summarization strategy for a run.
type Mode string

const (
	ModeExtractive  Mode = "extractive"
	ModeAbstractive Mode = "abstractive"
	ModeHybrid      Mode = "hybrid"
)

// Orchestration states. A run walks start -> filtered -> delegated -> done,
// or ends in degraded when the generative collaborator is unavailable.
type state string

const (
	stateStart     state = "start"
	stateFiltered  state = "filtered"
	stateDelegated state = "delegated"
	stateDone      state = "done"
	stateDegraded  state = "degraded"
)

// Floor for the hybrid condensing target: below this the condensed text
// loses too much context to rewrite.
const minCondensedSentences = 5

// Config tunes the engine. Zero values fall back to package defaults.
type Config struct {
	NumSentences    int
	ReductionRatio  float64
	ChunkChars      int
	OverlapChars    int
	GenerateTimeout time.Duration
}

// Engine sequences extractive ranking and generative delegation, and owns
// the fallback chain. Whatever the generative collaborator does, Summarize
// returns a complete result with an honest method label — never its error.
type Engine struct {
	ranker    *extract.Ranker
	generator ports.Generator
	cfg       Config
	logger    *slog.Logger
}

// NewEngine wires the ranker and the (optional) generative collaborator.
func NewEngine(ranker *extract.Ranker, generator ports.Generator, cfg Config, logger *slog.Logger) *Engine {
	if cfg.NumSentences <= 0 {
		cfg.NumSentences = extract.DefaultNumSentences
	}
	if cfg.ReductionRatio <= 0 || cfg.ReductionRatio > 1 {
		cfg.ReductionRatio = 0.5
	}
	if cfg.ChunkChars <= 0 {
		cfg.ChunkChars = textproc.DefaultChunkChars
	}
	if cfg.OverlapChars <= 0 {
		cfg.OverlapChars = textproc.DefaultOverlapChars
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}

	return &Engine{ranker: ranker, generator: generator, cfg: cfg, logger: logger}
}

// Summarize produces a summary of the preprocessed document using the
// requested mode. The only error it returns is domain.ErrNoContent, when
// there is literally nothing to summarize.
func (e *Engine) Summarize(ctx context.Context, doc domain.Document, mode Mode) (domain.SummaryResult, error) {
	focus := strings.TrimSpace(doc.FocusText)
	if focus == "" {
		focus = strings.TrimSpace(doc.Abstract)
	}
	if focus == "" {
		return domain.SummaryResult{}, domain.ErrNoContent
	}

	switch mode {
	case ModeHybrid:
		return e.hybrid(ctx, focus), nil
	case ModeAbstractive:
		return e.abstractive(ctx, focus), nil
	default:
		return e.extractive(focus), nil
	}
}

func (e *Engine) extractive(focus string) domain.SummaryResult {
	text, sents := e.ranker.Rank(focus, e.cfg.NumSentences)
	return domain.SummaryResult{Text: text, Method: domain.MethodExtractive, Sentences: sents}
}

// hybrid condenses the focus text with the extractive ranker, then hands the
// condensed text to the generative step. Condensing keeps document order, so
// the rewriter sees coherent input at roughly ReductionRatio of the size.
func (e *Engine) hybrid(ctx context.Context, focus string) domain.SummaryResult {
	st := stateStart
	e.transition(st, "focus_chars", len(focus))

	target := int(math.Ceil(float64(approxSentenceCount(focus)) * e.cfg.ReductionRatio))
	if target < minCondensedSentences {
		target = minCondensedSentences
	}

	condensed, sents := e.ranker.Rank(focus, target)
	if condensed == "" {
		condensed = focus
	}
	st = stateFiltered
	e.transition(st, "target_sentences", target, "condensed_chars", len(condensed))

	st = stateDelegated
	e.transition(st)
	text, chunkSummaries, ok := e.delegate(ctx, condensed)
	if ok {
		st = stateDone
		e.transition(st, "method", domain.MethodHybrid)
		return domain.SummaryResult{
			Text:           text,
			Method:         domain.MethodHybrid,
			Sentences:      sents,
			ChunkSummaries: chunkSummaries,
		}
	}

	st = stateDegraded
	e.transition(st, "method", domain.MethodExtractiveFallback)

	// The condensed text already lost sentences; degrade against the
	// original focus so the fallback is a full extractive summary.
	fallbackText, fallbackSents := e.ranker.Rank(focus, e.cfg.NumSentences)
	return domain.SummaryResult{
		Text:      fallbackText,
		Method:    domain.MethodExtractiveFallback,
		Sentences: fallbackSents,
	}
}

// abstractive delegates without the condensing step, with the same degrade
// path when the collaborator is unavailable.
func (e *Engine) abstractive(ctx context.Context, focus string) domain.SummaryResult {
	text, chunkSummaries, ok := e.delegate(ctx, focus)
	if ok {
		return domain.SummaryResult{
			Text:           text,
			Method:         domain.MethodAbstractive,
			ChunkSummaries: chunkSummaries,
		}
	}

	fallbackText, fallbackSents := e.ranker.Rank(focus, e.cfg.NumSentences)
	return domain.SummaryResult{
		Text:      fallbackText,
		Method:    domain.MethodExtractiveFallback,
		Sentences: fallbackSents,
	}
}

// delegate splits text into character windows and asks the generative
// collaborator for each. One failed chunk is skipped, not fatal; the run
// fails only when zero chunks succeed.
func (e *Engine) delegate(ctx context.Context, text string) (string, []string, bool) {
	if e.generator == nil {
		return "", nil, false
	}

	chunks := textproc.ChunkByChars(text, e.cfg.ChunkChars, e.cfg.OverlapChars)

	var summaries []string
	for i, chunk := range chunks {
		chunkCtx, cancel := context.WithTimeout(ctx, e.cfg.GenerateTimeout)
		summary, err := e.generator.GenerateSummary(chunkCtx, chunk)
		cancel()
		if err != nil {
			e.warn("generative step failed for chunk", "chunk", i, "error", err)
			continue
		}
		if summary = strings.TrimSpace(summary); summary != "" {
			summaries = append(summaries, summary)
		}
	}

	if len(summaries) == 0 {
		return "", nil, false
	}

	return strings.Join(summaries, " "), summaries, true
}

// approxSentenceCount is a rough period count; good enough to size the
// condensing target.
func approxSentenceCount(text string) int {
	return strings.Count(text, ".")
}

func (e *Engine) transition(st state, args ...any) {
	if e.logger != nil {
		e.logger.Debug("summarize state", append([]any{"state", string(st)}, args...)...)
	}
}

func (e *Engine) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
