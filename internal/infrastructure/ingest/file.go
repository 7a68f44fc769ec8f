package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/ports"
)

// FileSource reads paper text from the local filesystem. Registered twice:
// once as the plain-text source and once for pre-extracted PDF text, so the
// provenance of the two kinds stays distinguishable downstream.
type FileSource struct {
	kind domain.SourceKind
}

var _ ports.DocumentSource = (*FileSource)(nil)

// NewFileSource builds a file-backed source reporting the given kind.
func NewFileSource(kind domain.SourceKind) *FileSource {
	return &FileSource{kind: kind}
}

// Kind identifies the source inside the registry.
func (f *FileSource) Kind() domain.SourceKind {
	return f.kind
}

// Fetch reads the referenced file. Title falls back to the file name; the
// abstract is left empty so preprocessing can promote a detected abstract
// section instead.
func (f *FileSource) Fetch(ctx context.Context, ref string) (domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawDocument{}, err
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("read %s: %w", ref, err)
	}

	name := filepath.Base(ref)
	return domain.RawDocument{
		Source:  f.kind,
		PaperID: name,
		Title:   strings.TrimSuffix(name, filepath.Ext(name)),
		Text:    string(data),
		Meta: map[string]string{
			"path":            ref,
			"fulltext_source": string(f.kind),
		},
	}, nil
}
