package extract

import (
	"strings"
	"testing"
)

func newTestRanker(t *testing.T) *Ranker {
	t.Helper()
	ranker, err := NewRanker()
	if err != nil {
		t.Fatalf("NewRanker: %v", err)
	}
	return ranker
}

func TestRankSelectsSalientInDocumentOrder(t *testing.T) {
	t.Parallel()

	// Sentences 0, 2 and 4 carry words unique to the document; 1 and 3
	// repeat the same vocabulary and must rank below them.
	sents := []string{
		"Quantum entanglement measurement yields decisive experimental confirmation.",
		"Standard baseline methods produce standard baseline outcomes.",
		"Neural architecture search discovers optimal transformer configurations.",
		"Standard baseline methods produce standard baseline outcomes.",
		"Bayesian calibration reduces systematic uncertainty dramatically.",
	}
	text := strings.Join(sents, " ")

	ranker := newTestRanker(t)
	summary, selected := ranker.Rank(text, 3)

	if len(selected) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(selected))
	}
	wantIdx := []int{0, 2, 4}
	for i, s := range selected {
		if s.Index != wantIdx[i] {
			t.Fatalf("sentence %d has index %d, want %d", i, s.Index, wantIdx[i])
		}
		if s.Score <= 0 {
			t.Fatalf("sentence %d has no score: %+v", i, s)
		}
	}
	if strings.Contains(summary, "baseline") {
		t.Fatalf("low-salience sentence leaked into summary: %q", summary)
	}
	if !strings.Contains(summary, "Quantum") || !strings.Contains(summary, "Bayesian") {
		t.Fatalf("salient sentences missing from summary: %q", summary)
	}
}

func TestRankFiltersBoilerplate(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"arXiv hosts the canonical version of this manuscript.",
		"This preprint has not been peer reviewed by any venue.",
		"The proposed estimator converges under mild regularity assumptions.",
		"Empirical evaluation covers twelve public benchmark datasets.",
	}, " ")

	ranker := newTestRanker(t)
	summary, selected := ranker.Rank(text, 10)

	if len(selected) != 2 {
		t.Fatalf("expected 2 surviving sentences, got %d: %v", len(selected), selected)
	}
	if strings.Contains(summary, "arXiv") || strings.Contains(summary, "preprint") {
		t.Fatalf("boilerplate survived filtering: %q", summary)
	}
}

func TestRankNoEligibleSentencesFallsBackToFirstSentences(t *testing.T) {
	t.Parallel()

	// Every sentence trips the boilerplate filter, so nothing is scorable
	// and the leading sentences come back verbatim, unscored.
	sents := []string{
		"ArXiv hosts the preprint records for this area.",
		"DOI resolution services index the published articles.",
		"HTTP mirrors distribute the archival copies worldwide.",
	}
	text := strings.Join(sents, " ")

	ranker := newTestRanker(t)
	_, selected := ranker.Rank(text, 2)

	if len(selected) != 2 {
		t.Fatalf("expected 2 fallback sentences, got %d", len(selected))
	}
	for i, s := range selected {
		if s.Text != sents[i] {
			t.Fatalf("fallback sentence %d = %q, want %q", i, s.Text, sents[i])
		}
		if s.Index != i || s.Score != 0 {
			t.Fatalf("fallback sentence %d not verbatim leading sentence: %+v", i, s)
		}
	}
}

func TestFirstSentencesClampsToAvailable(t *testing.T) {
	t.Parallel()

	raw := []string{"First sentence.", "Second sentence."}
	_, selected := firstSentences(raw, 10)

	if len(selected) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(selected))
	}
	for i, s := range selected {
		if s.Text != raw[i] || s.Index != i || s.Score != 0 {
			t.Fatalf("sentence %d not verbatim: %+v", i, s)
		}
	}
}

func TestRankEmptyText(t *testing.T) {
	t.Parallel()

	ranker := newTestRanker(t)
	summary, selected := ranker.Rank("", 5)
	if summary != "" || selected != nil {
		t.Fatalf("expected empty result, got %q / %v", summary, selected)
	}
}

func TestRankFewerSentencesThanRequested(t *testing.T) {
	t.Parallel()

	text := "Gradient descent minimizes the training objective steadily. " +
		"Regularization penalties constrain model complexity effectively."

	ranker := newTestRanker(t)
	_, selected := ranker.Rank(text, 10)

	if len(selected) != 2 {
		t.Fatalf("expected both sentences, got %d", len(selected))
	}
	if selected[0].Index != 0 || selected[1].Index != 1 {
		t.Fatalf("document order not preserved: %+v", selected)
	}
}

func TestEligibleSentence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"normal prose", "The estimator remains unbiased in finite samples.", true},
		{"too short", "Tiny fragment.", false},
		{"doi prefix", "doi 10.1000/xyz123 identifies the published article.", false},
		{"copyright row", "Copyright 2024 by the authors of this volume.", false},
		{"formula debris", "x + y = z ( q r s t u v w )", false},
		{"numeric table row", "12.3 45.6 78.9 0.12 3.45 6.78 9.01 2.34", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := eligibleSentence(tc.in); got != tc.want {
				t.Fatalf("eligibleSentence(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
