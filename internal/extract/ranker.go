package extract

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"PaperSummarizer/internal/domain"
)

// DefaultNumSentences is the extractive summary length when the caller does
// not specify one.
const DefaultNumSentences = 10

// Sentences starting with these tokens are citation/boilerplate rows.
var boilerplatePrefixes = []string{"arxiv", "doi", "http", "vol.", "no."}

// Ranker selects the statistically most salient sentences of a text,
// preserving original document order in the output. The sentence tokenizer
// is an explicitly owned resource, constructed once and reused.
type Ranker struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewRanker loads the English sentence tokenizer.
func NewRanker() (*Ranker, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}
	return &Ranker{tokenizer: tokenizer}, nil
}

// Rank returns the top numSentences sentences of text by aggregate TF-IDF
// score, re-ordered to source position, plus the joined summary string.
// It never fails: low-value input degrades to the first sentences verbatim,
// empty input yields empty output.
func (r *Ranker) Rank(text string, numSentences int) (string, []domain.RankedSentence) {
	if numSentences <= 0 {
		numSentences = DefaultNumSentences
	}

	raw := r.splitSentences(text)
	if len(raw) == 0 {
		return "", nil
	}

	// Filter garbage before scoring; keep originals for output.
	var (
		docs  [][]string
		valid []int
	)
	for i, s := range raw {
		if !eligibleSentence(s) {
			continue
		}
		docs = append(docs, strings.Fields(stopwords.CleanString(s, "en", false)))
		valid = append(valid, i)
	}

	scores, err := scoreByTFIDF(docs)
	if len(valid) == 0 || err != nil {
		return firstSentences(raw, numSentences)
	}

	// Rank locally by score, then map back to original indices so the
	// summary preserves narrative flow.
	order := make([]int, len(valid))
	for i := range order {
		order[i] = i
	}
	if len(valid) > numSentences {
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]] > scores[order[b]]
		})
		order = order[:numSentences]
	}
	sort.Slice(order, func(a, b int) bool { return valid[order[a]] < valid[order[b]] })

	selected := make([]domain.RankedSentence, 0, len(order))
	for _, local := range order {
		selected = append(selected, domain.RankedSentence{
			Text:  raw[valid[local]],
			Index: valid[local],
			Score: scores[local],
		})
	}

	return joinSentences(selected), selected
}

func (r *Ranker) splitSentences(text string) []string {
	var out []string
	for _, s := range r.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// firstSentences is the empty-vocabulary degrade path: the leading sentences
// verbatim, unscored.
func firstSentences(raw []string, n int) (string, []domain.RankedSentence) {
	if n > len(raw) {
		n = len(raw)
	}
	out := make([]domain.RankedSentence, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.RankedSentence{Text: raw[i], Index: i})
	}
	return joinSentences(out), out
}

func joinSentences(sents []domain.RankedSentence) string {
	parts := make([]string, 0, len(sents))
	for _, s := range sents {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// eligibleSentence rejects fragments, citation rows, boilerplate, and
// table/formula debris before scoring.
func eligibleSentence(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if len(lower) < 20 {
		return false
	}
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	if strings.Contains(lower, "preprint") || strings.Contains(lower, "copyright") {
		return false
	}
	if alphaRatio(s) < 0.7 {
		return false
	}
	if singleLetterTokenRatio(s) > 0.2 {
		return false
	}
	return true
}

// alphaRatio is the share of letters among non-whitespace characters. Stray
// table and formula rows score low here.
func alphaRatio(s string) float64 {
	var letters, total int
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}

// singleLetterTokenRatio measures mathematical variable soup: the share of
// tokens that are a lone letter not forming an English word.
func singleLetterTokenRatio(s string) float64 {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return 0
	}

	var lone int
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(tok)
		if !unicode.IsLetter(r) {
			continue
		}
		if l := unicode.ToLower(r); l == 'a' || l == 'i' {
			continue
		}
		lone++
	}

	return float64(lone) / float64(len(tokens))
}
