package domain

import "time"

// SourceKind identifies which ingestion collaborator produced a document.
type SourceKind string

const (
	SourceArxiv SourceKind = "arxiv"
	SourcePDF   SourceKind = "pdf"
	SourceText  SourceKind = "text"
)

// RawDocument is the immutable ingestion record handed to the core pipeline.
type RawDocument struct {
	Source   SourceKind
	PaperID  string
	Title    string
	Abstract string
	Text     string
	Meta     map[string]string
}

// Section is a heuristically detected named span of a document.
type Section struct {
	Name    string
	Content string
	Start   int
}

// Sections keeps detected sections ordered by source position.
type Sections []Section

// Get returns the content of the named section, if present.
func (s Sections) Get(name string) (string, bool) {
	for _, sec := range s {
		if sec.Name == name {
			return sec.Content, true
		}
	}
	return "", false
}

// Has reports whether the named section was detected.
func (s Sections) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names lists section names in source order.
func (s Sections) Names() []string {
	names := make([]string, 0, len(s))
	for _, sec := range s {
		names = append(names, sec.Name)
	}
	return names
}

// Map flattens sections into a name->content map for export.
func (s Sections) Map() map[string]string {
	out := make(map[string]string, len(s))
	for _, sec := range s {
		out[sec.Name] = sec.Content
	}
	return out
}

// Stats carries debugging counters produced during preprocessing.
type Stats struct {
	RawChars      int
	CleanChars    int
	FocusChars    int
	NumSections   int
	NumChunks     int
	CutReferences bool
}

// Document is the preprocessed form of a RawDocument: cleaned text, the
// best-effort section partition, the prioritized focus excerpt, and
// model-sized chunks. Chunk position is the slice index.
type Document struct {
	Source   SourceKind
	PaperID  string
	Title    string
	Abstract string
	Meta     map[string]string

	CleanText string
	Sections  Sections
	FocusText string
	Chunks    []string
	Stats     Stats
}

// RankedSentence pairs an original sentence with its source position and
// aggregate relevance score.
type RankedSentence struct {
	Text  string
	Index int
	Score float64
}

// Method labels which summarization path actually produced the result.
type Method string

const (
	MethodExtractive         Method = "extractive"
	MethodAbstractive        Method = "abstractive"
	MethodHybrid             Method = "hybrid"
	MethodExtractiveFallback Method = "extractive (fallback)"
)

// SummaryResult is the final output of a summarization run. Method reflects
// any degradation honestly: a failed generative step yields
// MethodExtractiveFallback, never an error.
type SummaryResult struct {
	Text   string
	Method Method
	// Sentences lists the extractive picks that contributed, in source order.
	Sentences []RankedSentence
	// ChunkSummaries lists per-chunk generative outputs that contributed.
	ChunkSummaries []string
	Keywords       []Keyword
}

// Keyword is a semantic tag returned by the external analysis collaborator.
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// StoredSummary is the persisted snapshot of a completed run.
type StoredSummary struct {
	PaperID    string
	Title      string
	Method     Method
	Summary    string
	FocusChars int
	NumChunks  int
	CreatedAt  time.Time
}
