package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/extract"
)

type stubGenerator struct {
	fn    func(text string) (string, error)
	calls int
}

func (g *stubGenerator) GenerateSummary(_ context.Context, text string) (string, error) {
	g.calls++
	return g.fn(text)
}

func testFocus() string {
	sents := []string{
		"Quantum entanglement measurement yields decisive experimental confirmation.",
		"Standard baseline methods produce standard baseline outcomes.",
		"Neural architecture search discovers optimal transformer configurations.",
		"Empirical evaluation covers twelve public benchmark datasets.",
		"Bayesian calibration reduces systematic uncertainty dramatically.",
		"Regularization penalties constrain model complexity effectively.",
		"Gradient descent minimizes the training objective steadily.",
	}
	return strings.Join(sents, " ")
}

func testEngine(t *testing.T, gen *stubGenerator, cfg Config) *Engine {
	t.Helper()
	ranker, err := extract.NewRanker()
	if err != nil {
		t.Fatalf("NewRanker: %v", err)
	}
	if gen == nil {
		return NewEngine(ranker, nil, cfg, nil)
	}
	return NewEngine(ranker, gen, cfg, nil)
}

func TestSummarizeNoContent(t *testing.T) {
	t.Parallel()

	engine := testEngine(t, nil, Config{})
	doc := domain.Document{FocusText: "   ", Abstract: ""}

	if _, err := engine.Summarize(context.Background(), doc, ModeHybrid); !errors.Is(err, domain.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestSummarizeAbstractStandsInForFocus(t *testing.T) {
	t.Parallel()

	engine := testEngine(t, nil, Config{NumSentences: 2})
	doc := domain.Document{Abstract: testFocus()}

	result, err := engine.Summarize(context.Background(), doc, ModeExtractive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text == "" || result.Method != domain.MethodExtractive {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSummarizeExtractiveBounded(t *testing.T) {
	t.Parallel()

	engine := testEngine(t, nil, Config{NumSentences: 3})
	doc := domain.Document{FocusText: testFocus()}

	result, err := engine.Summarize(context.Background(), doc, ModeExtractive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(result.Sentences))
	}
	for i := 1; i < len(result.Sentences); i++ {
		if result.Sentences[i].Index <= result.Sentences[i-1].Index {
			t.Fatalf("sentences out of document order: %+v", result.Sentences)
		}
	}
}

func TestSummarizeHybridSuccess(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{fn: func(string) (string, error) {
		return "A rewritten summary of the chunk.", nil
	}}
	engine := testEngine(t, gen, Config{})
	doc := domain.Document{FocusText: testFocus()}

	result, err := engine.Summarize(context.Background(), doc, ModeHybrid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != domain.MethodHybrid {
		t.Fatalf("expected hybrid method, got %q", result.Method)
	}
	if gen.calls == 0 {
		t.Fatal("generator was never invoked")
	}
	if len(result.ChunkSummaries) == 0 || result.Text == "" {
		t.Fatalf("missing generated output: %+v", result)
	}
	if len(result.Sentences) == 0 {
		t.Fatal("condensed sentence ranking missing from hybrid result")
	}
}

func TestSummarizeHybridDegradesOnTotalFailure(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{fn: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	engine := testEngine(t, gen, Config{NumSentences: 4})
	doc := domain.Document{FocusText: testFocus()}

	result, err := engine.Summarize(context.Background(), doc, ModeHybrid)
	if err != nil {
		t.Fatalf("degraded run must not fail, got %v", err)
	}
	if result.Method != domain.MethodExtractiveFallback {
		t.Fatalf("expected fallback method, got %q", result.Method)
	}
	if result.Text == "" || len(result.Sentences) == 0 {
		t.Fatalf("fallback summary empty: %+v", result)
	}
	if len(result.ChunkSummaries) != 0 {
		t.Fatalf("failed delegation left chunk summaries: %v", result.ChunkSummaries)
	}
}

func TestSummarizeHybridWithoutGenerator(t *testing.T) {
	t.Parallel()

	engine := testEngine(t, nil, Config{})
	doc := domain.Document{FocusText: testFocus()}

	result, err := engine.Summarize(context.Background(), doc, ModeHybrid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != domain.MethodExtractiveFallback {
		t.Fatalf("expected fallback method, got %q", result.Method)
	}
}

func TestSummarizeAbstractivePartialChunkFailure(t *testing.T) {
	t.Parallel()

	var n int
	gen := &stubGenerator{fn: func(string) (string, error) {
		n++
		if n == 1 {
			return "", errors.New("transient failure")
		}
		return "Chunk summary.", nil
	}}
	// Small windows force several chunks out of the focus text.
	engine := testEngine(t, gen, Config{ChunkChars: 120, OverlapChars: 20})
	doc := domain.Document{FocusText: testFocus()}

	result, err := engine.Summarize(context.Background(), doc, ModeAbstractive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != domain.MethodAbstractive {
		t.Fatalf("one failed chunk must not degrade the run, got %q", result.Method)
	}
	if gen.calls < 2 {
		t.Fatalf("expected multiple chunk calls, got %d", gen.calls)
	}
	if len(result.ChunkSummaries) != gen.calls-1 {
		t.Fatalf("expected %d chunk summaries, got %d", gen.calls-1, len(result.ChunkSummaries))
	}
}

type deadlineGenerator struct {
	sawDeadline bool
}

func (g *deadlineGenerator) GenerateSummary(ctx context.Context, _ string) (string, error) {
	_, g.sawDeadline = ctx.Deadline()
	return "Generated text.", nil
}

func TestSummarizeAbstractiveSetsPerChunkDeadline(t *testing.T) {
	t.Parallel()

	gen := &deadlineGenerator{}
	ranker, err := extract.NewRanker()
	if err != nil {
		t.Fatalf("NewRanker: %v", err)
	}
	engine := NewEngine(ranker, gen, Config{}, nil)
	doc := domain.Document{FocusText: testFocus()}

	result, err := engine.Summarize(context.Background(), doc, ModeAbstractive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != domain.MethodAbstractive {
		t.Fatalf("expected abstractive method, got %q", result.Method)
	}
	if !gen.sawDeadline {
		t.Fatal("generator context carried no deadline")
	}
}
