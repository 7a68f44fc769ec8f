package textproc

import (
	"math"
	"strings"
	"unicode"
)

// Default chunk sizing. Token budgets feed transformer-style consumers,
// character windows feed anything with a raw length limit.
const (
	DefaultMaxTokensPerChunk = 900
	DefaultOverlapTokens     = 120
	DefaultChunkChars        = 3000
	DefaultOverlapChars      = 200
)

// ApproxTokenCount estimates subword token usage from whitespace words.
// Whitespace splitting undercounts against BPE tokenizers, so the estimate
// is inflated by 1.2 to keep a safety margin under model limits.
func ApproxTokenCount(s string) int {
	return int(float64(len(strings.Fields(s))) * 1.2)
}

// ChunkByTokens splits text on blank-line paragraph boundaries and packs
// paragraphs into chunks of at most maxTokens approximate tokens. Each chunk
// after the first is seeded with the trailing words of its predecessor for
// cross-chunk context. A single paragraph over the budget is decomposed at
// sentence-ish boundaries instead of being emitted oversized.
func ChunkByTokens(text string, maxTokens, overlapTokens int) []string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokensPerChunk
	}
	if overlapTokens < 0 {
		overlapTokens = 0
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var (
		chunks        []string
		current       []string
		currentTokens int
	)

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.TrimSpace(strings.Join(current, "\n\n")))
		}
		current = nil
		currentTokens = 0
	}

	for _, p := range paragraphs {
		pTokens := ApproxTokenCount(p)

		if pTokens > maxTokens {
			for _, part := range splitFragments(p) {
				partTokens := ApproxTokenCount(part)
				if currentTokens+partTokens > maxTokens {
					flush()
				}
				current = append(current, part)
				currentTokens += partTokens
			}
			continue
		}

		if currentTokens+pTokens > maxTokens {
			flush()

			if len(chunks) > 0 && overlapTokens > 0 {
				if overlap := trailingWords(chunks[len(chunks)-1], overlapTokens); overlap != "" {
					current = []string{overlap}
					currentTokens = ApproxTokenCount(overlap)
				}
			}
		}

		current = append(current, p)
		currentTokens += pTokens
	}

	flush()
	return chunks
}

// trailingWords returns the last ~overlapTokens worth of words from prev.
func trailingWords(prev string, overlapTokens int) string {
	words := strings.Fields(prev)
	if len(words) == 0 {
		return ""
	}

	n := int(math.Round(float64(overlapTokens) / 1.2))
	if n < 1 {
		n = 1
	}
	if n > len(words) {
		n = len(words)
	}

	return strings.Join(words[len(words)-n:], " ")
}

// splitFragments breaks an oversized paragraph at punctuation followed by
// whitespace, or at embedded newlines.
func splitFragments(p string) []string {
	var (
		frags []string
		b     strings.Builder
	)

	flush := func() {
		if f := strings.TrimSpace(b.String()); f != "" {
			frags = append(frags, f)
		}
		b.Reset()
	}

	runes := []rune(p)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		b.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			flush()
		}
	}
	flush()

	return frags
}

// ChunkByChars cuts text into a sliding character window of chunkSize with
// the given overlap, snapping the right edge back to a space when possible.
// The snap never reaches before start+overlap, and next_start is forced
// strictly past start, so the loop terminates for any configuration —
// including the degenerate overlap >= chunkSize.
func ChunkByChars(text string, chunkSize, overlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkChars
	}
	if overlap < 0 {
		overlap = 0
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}

		// Avoid splitting mid-word, but only within the zone that still
		// guarantees forward progress.
		if end < len(text) {
			if safe := start + overlap; safe < end {
				if sp := strings.LastIndex(text[safe:end], " "); sp != -1 {
					end = safe + sp
				}
			}
		}

		chunks = append(chunks, text[start:end])

		next := end - overlap
		if next <= start {
			// overlap >= chunkSize or a pathological snap: force progress.
			step := chunkSize - overlap
			if step < 1 {
				step = 1
			}
			next = start + step
		}
		start = next
	}

	return chunks
}
