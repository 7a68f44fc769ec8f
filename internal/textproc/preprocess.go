package textproc

import (
	"PaperSummarizer/internal/domain"
)

// Config is the preprocessing parameter table. Zero values fall back to the
// package defaults, so an empty Config is usable.
type Config struct {
	RemoveReferences  bool
	RemoveCitations   bool
	MaxTokensPerChunk int
	OverlapTokens     int
	FocusMaxChars     int
	SectionCap        int
	MinSectionChars   int
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		RemoveReferences:  true,
		MaxTokensPerChunk: DefaultMaxTokensPerChunk,
		OverlapTokens:     DefaultOverlapTokens,
		FocusMaxChars:     DefaultFocusMaxChars,
		MinSectionChars:   DefaultMinSectionChars,
	}
}

// Preprocess turns an ingested raw document into its cleaned, sectioned,
// focused and chunked form. Pure: no shared state, fresh outputs per call.
// It never fails; an empty input yields an empty Document.
func Preprocess(raw domain.RawDocument, cfg Config) domain.Document {
	if cfg.FocusMaxChars == 0 {
		cfg.FocusMaxChars = DefaultFocusMaxChars
	}

	cleaner := NewCleaner(CleanOptions{
		RemoveReferences: cfg.RemoveReferences,
		RemoveCitations:  cfg.RemoveCitations,
	})
	cleaned := cleaner.Clean(raw.Text)

	sections := ExtractSections(cleaned.Text, cfg.MinSectionChars)

	// PDF and plain-file ingestion carries no abstract metadata; promote a
	// detected abstract section instead.
	abstract := raw.Abstract
	if abstract == "" {
		if detected, ok := sections.Get("abstract"); ok {
			abstract = detected
		}
	}

	focus := BuildFocus(abstract, sections, cleaned.Text, cfg.FocusMaxChars, cfg.SectionCap)
	chunks := ChunkByTokens(focus, cfg.MaxTokensPerChunk, cfg.OverlapTokens)

	return domain.Document{
		Source:    raw.Source,
		PaperID:   raw.PaperID,
		Title:     raw.Title,
		Abstract:  abstract,
		Meta:      raw.Meta,
		CleanText: cleaned.Text,
		Sections:  sections,
		FocusText: focus,
		Chunks:    chunks,
		Stats: domain.Stats{
			RawChars:      len(raw.Text),
			CleanChars:    len(cleaned.Text),
			FocusChars:    len(focus),
			NumSections:   len(sections),
			NumChunks:     len(chunks),
			CutReferences: cleaned.CutReferences,
		},
	}
}
