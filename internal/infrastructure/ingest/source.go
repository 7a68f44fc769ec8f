package ingest

import (
	"fmt"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/ports"
)

// Registry keeps a mapping from source kinds to their implementations.
type Registry struct {
	sources map[domain.SourceKind]ports.DocumentSource
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[domain.SourceKind]ports.DocumentSource{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(source ports.DocumentSource) {
	if r.sources == nil {
		r.sources = map[domain.SourceKind]ports.DocumentSource{}
	}
	r.sources[source.Kind()] = source
}

// Resolve returns a source by kind or an error if it is absent.
func (r *Registry) Resolve(kind domain.SourceKind) (ports.DocumentSource, error) {
	if source, ok := r.sources[kind]; ok {
		return source, nil
	}
	return nil, fmt.Errorf("source %s is not registered", kind)
}
