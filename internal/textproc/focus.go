package textproc

import (
	"strings"

	"PaperSummarizer/internal/domain"
)

// DefaultFocusMaxChars is an emergency guard against huge memory/compute
// spikes, not a quality feature.
const DefaultFocusMaxChars = 120000

// Labeled sections in the fixed priority order used for focus assembly.
// "approach"/"model" substitute for an absent "method".
var focusOrder = []struct {
	name  string
	label string
}{
	{"introduction", "INTRODUCTION"},
	{"method", "METHOD"},
	{"experiments", "EXPERIMENTS"},
	{"results", "RESULTS"},
	{"discussion", "DISCUSSION"},
	{"analysis", "ANALYSIS"},
	{"conclusion", "CONCLUSION"},
}

// BuildFocus assembles the prioritized excerpt fed to chunking/ranking:
// abstract first, then key sections in fixed order, each preceded by a
// label. Sections that were not detected are skipped silently. When nothing
// at all was detected the full clean text is returned so downstream
// consumers never see an empty string while real content exists.
//
// sectionCap > 0 truncates each section's contribution; maxChars > 0 hard-caps
// the assembled result at that byte boundary.
func BuildFocus(abstract string, sections domain.Sections, cleanText string, maxChars, sectionCap int) string {
	var parts []string

	if strings.TrimSpace(abstract) != "" {
		parts = append(parts, "ABSTRACT\n"+strings.TrimSpace(abstract))
	}

	appendSection := func(name, label string) {
		content, ok := sections.Get(name)
		if !ok {
			return
		}
		content = strings.TrimSpace(content)
		if sectionCap > 0 && len(content) > sectionCap {
			content = content[:sectionCap]
		}
		parts = append(parts, label+"\n"+content)
	}

	for _, entry := range focusOrder {
		if entry.name == "method" && !sections.Has("method") {
			appendSection("approach", "APPROACH")
			appendSection("model", "MODEL")
			continue
		}
		appendSection(entry.name, entry.label)
	}

	focus := cleanText
	if len(parts) > 0 {
		focus = strings.TrimSpace(strings.Join(parts, "\n\n"))
	}

	if maxChars > 0 && len(focus) > maxChars {
		focus = focus[:maxChars]
	}

	return focus
}
