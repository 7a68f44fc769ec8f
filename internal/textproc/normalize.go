package textproc

import (
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"
)

// Trailing window (in bytes) searched for a references/bibliography heading.
// Bounded so that in-text mentions of "references" earlier in the document
// never truncate real content.
const referencesWindow = 15000

var (
	// PDF extraction artifacts: "trans-\nformer" -> "transformer".
	hyphenBreakRE = regexp.MustCompile(`(\w)-[ \t]*\r?\n[ \t]*(\w)`)

	// Page numbers alone on a line.
	pageNumRE = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)

	multiSpaceRE   = regexp.MustCompile(`[ \t]+`)
	multiNewlineRE = regexp.MustCompile(`\n{3,}`)

	// arXiv/HTML boilerplate seen in scraped papers.
	attributionRE = regexp.MustCompile(`(?is)Provided proper attribution is provided.*?scholarly works\.`)
	arxivIDRE     = regexp.MustCompile(`(?i)arXiv:\s*\d{4}\.\d{4,5}v?\d*`)
	footnoteRE    = regexp.MustCompile(`(?i)\bfootnote(?:mark)?\b`)

	// Inline citations like [12], [3, 5], (Smith et al., 2020).
	bracketCitationRE = regexp.MustCompile(`\[[0-9,\s\-]{1,20}\]`)
	parenCitationRE   = regexp.MustCompile(`\(([A-Z][A-Za-z]+ et al\.,?\s*\d{4}|[A-Z][A-Za-z]+,\s*\d{4})\)`)

	// "References" / "Bibliography" as a standalone heading line, with an
	// optional numeric prefix ("7. References") and trailing colon/period.
	referencesHeadingRE = regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?(?:references|bibliography|literature cited|reference list)[ \t]*[:.]?[ \t]*$`)

	urlRE = xurls.Strict()
)

// CleanOptions parameterizes the Cleaner.
type CleanOptions struct {
	RemoveReferences bool
	RemoveCitations  bool
}

// CleanResult is the normalized text plus what the cleaner actually did.
type CleanResult struct {
	Text          string
	CutReferences bool
}

// Cleaner repairs layout artifacts and strips boilerplate from raw paper
// text. Works on messy PDF-extracted text and cleaner arXiv HTML text.
type Cleaner struct {
	opts CleanOptions
}

// NewCleaner builds a cleaner with the given options.
func NewCleaner(opts CleanOptions) *Cleaner {
	return &Cleaner{opts: opts}
}

// Clean normalizes raw text. It never fails: empty input yields empty output.
func (c *Cleaner) Clean(raw string) CleanResult {
	if raw == "" {
		return CleanResult{}
	}

	text := hyphenBreakRE.ReplaceAllString(raw, "$1$2")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = pageNumRE.ReplaceAllString(text, "")
	text = multiSpaceRE.ReplaceAllString(text, " ")
	text = multiNewlineRE.ReplaceAllString(text, "\n\n")
	text = stripBoilerplate(text)

	var didCut bool
	if c.opts.RemoveReferences {
		text, didCut = cutReferencesTail(text)
	}

	if c.opts.RemoveCitations {
		text = bracketCitationRE.ReplaceAllString(text, "")
		text = parenCitationRE.ReplaceAllString(text, "")
	}

	// Boilerplate and citation removal can leave double spaces behind.
	text = multiSpaceRE.ReplaceAllString(text, " ")
	text = multiNewlineRE.ReplaceAllString(text, "\n\n")

	return CleanResult{Text: strings.TrimSpace(text), CutReferences: didCut}
}

func stripBoilerplate(text string) string {
	text = attributionRE.ReplaceAllString(text, "")
	text = arxivIDRE.ReplaceAllString(text, "")
	text = footnoteRE.ReplaceAllString(text, "")

	// Drop bare arXiv URLs; other links stay, they may carry meaning.
	text = urlRE.ReplaceAllStringFunc(text, func(u string) string {
		if strings.Contains(u, "arxiv.org") {
			return ""
		}
		return u
	})

	return text
}

// cutReferencesTail truncates everything from the first references heading
// found inside the bounded trailing window. Returns the trimmed text and
// whether a cut happened.
func cutReferencesTail(text string) (string, bool) {
	windowStart := len(text) - referencesWindow
	if windowStart < 0 {
		windowStart = 0
	}

	loc := referencesHeadingRE.FindStringIndex(text[windowStart:])
	if loc == nil {
		return text, false
	}

	return strings.TrimSpace(text[:windowStart+loc[0]]), true
}
