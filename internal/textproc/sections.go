package textproc

import (
	"regexp"
	"strings"

	"PaperSummarizer/internal/domain"
)

// DefaultMinSectionChars drops sections shorter than this. Matches below the
// threshold are almost always false-positive inline mentions rather than
// real headers.
const DefaultMinSectionChars = 200

// Section heading on its own line, optionally prefixed by arabic or roman
// numbering ("3. Results", "IV) Discussion").
var headingRE = regexp.MustCompile(`(?im)^[ \t]*(?:(?:\d+|[ivxlcdm]+)[ \t]*[.)]?[ \t]+)?(abstract|introduction|background|related work|preliminaries|methods?|methodology|approach|model|experiments?|experimental setup|results?|discussion|analysis|conclusions?|limitations|future work|acknowledge?ments?|references|bibliography|appendix)[ \t]*$`)

var canonicalSectionNames = map[string]string{
	"methods":            "method",
	"methodology":        "method",
	"experiment":         "experiments",
	"experimental setup": "experiments",
	"result":             "results",
	"conclusions":        "conclusion",
	"acknowledgement":    "acknowledgments",
	"acknowledgements":   "acknowledgments",
	"acknowledgment":     "acknowledgments",
	"bibliography":       "references",
}

// ExtractSections partitions cleaned text into named spans between detected
// headings. Best effort, not a grammar: callers must tolerate an empty or
// partial result. Names are canonicalized and the first occurrence of a name
// wins; spans shorter than minChars are dropped.
func ExtractSections(text string, minChars int) domain.Sections {
	if minChars <= 0 {
		minChars = DefaultMinSectionChars
	}

	matches := headingRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var sections domain.Sections
	seen := map[string]bool{}

	for i, m := range matches {
		name := canonicalizeSectionName(text[m[2]:m[3]])

		next := len(text)
		if i+1 < len(matches) {
			next = matches[i+1][0]
		}

		content := strings.TrimSpace(text[m[1]:next])
		if len(content) < minChars {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		sections = append(sections, domain.Section{
			Name:    name,
			Content: content,
			Start:   m[0],
		})
	}

	return sections
}

func canonicalizeSectionName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := canonicalSectionNames[name]; ok {
		return canonical
	}
	return name
}
