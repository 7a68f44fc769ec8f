package ports

import (
	"context"
	"time"

	"PaperSummarizer/internal/domain"
)

// DocumentSource retrieves raw paper content from one upstream kind
// (arXiv pages, pre-extracted PDF text, plain files).
type DocumentSource interface {
	Kind() domain.SourceKind
	Fetch(ctx context.Context, ref string) (domain.RawDocument, error)
}

// SourceResolver looks up the DocumentSource registered for a kind.
type SourceResolver interface {
	Resolve(kind domain.SourceKind) (DocumentSource, error)
}

// SummaryRepository persists completed summaries for deduplication/history.
type SummaryRepository interface {
	AlreadySummarized(ctx context.Context, ids []string) (map[string]bool, error)
	SaveSummary(ctx context.Context, rec domain.StoredSummary) error
}

// Generator is the external generative-model collaborator used for
// abstractive rewriting. Treated as a black box that may fail; callers own
// the fallback behavior and must never propagate its errors upward.
type Generator interface {
	GenerateSummary(ctx context.Context, text string) (string, error)
}

// KeywordAnalyzer pushes focus text to an external inference service for
// semantic keyword extraction.
type KeywordAnalyzer interface {
	ExtractKeywords(ctx context.Context, text string) ([]domain.Keyword, error)
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
