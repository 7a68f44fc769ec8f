package extract

import (
	"errors"
	"math"
)

// ErrEmptyVocabulary signals that the filtered corpus contains no scorable
// terms (all-stopword or all-numeric text). Resolved by the caller with the
// verbatim first-N fallback; never surfaced past Rank.
var ErrEmptyVocabulary = errors.New("empty vocabulary")

// scoreByTFIDF scores each tokenized sentence by the sum of the
// term-frequency–inverse-document-frequency weights of its words, with the
// sentence set itself as the statistical corpus.
func scoreByTFIDF(docs [][]string) ([]float64, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, w := range doc {
			if !seen[w] {
				df[w]++
				seen[w] = true
			}
		}
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for w, count := range df {
		idf[w] = math.Log(n/float64(count)) + 1.0
	}

	scores := make([]float64, len(docs))
	for i, doc := range docs {
		if len(doc) == 0 {
			continue
		}
		tf := make(map[string]int, len(doc))
		for _, w := range doc {
			tf[w]++
		}
		var sum float64
		for w, count := range tf {
			sum += float64(count) / float64(len(doc)) * idf[w]
		}
		scores[i] = sum
	}

	return scores, nil
}
