package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/ports"
)

const defaultArxivBaseURL = "https://arxiv.org"

var arxivIDExpr = regexp.MustCompile(`\d{4}\.\d{4,5}(?:v\d+)?`)

// ArxivSource fetches paper metadata from the arXiv abstract page and, when
// available, the full text from the HTML rendering. When no HTML rendering
// exists the document carries the abstract alone; binary page extraction is
// someone else's job.
type ArxivSource struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.DocumentSource = (*ArxivSource)(nil)

// NewArxivSource wires an HTTP client; baseURL defaults to arxiv.org.
func NewArxivSource(baseURL string, client *http.Client, logger *slog.Logger) *ArxivSource {
	if baseURL == "" {
		baseURL = defaultArxivBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ArxivSource{baseURL: strings.TrimSuffix(baseURL, "/"), client: client, logger: logger}
}

// Kind identifies the source inside the registry.
func (a *ArxivSource) Kind() domain.SourceKind {
	return domain.SourceArxiv
}

// Fetch resolves ref (a bare id, "arXiv:..." tag, or abs/pdf URL) and builds
// the raw ingestion record.
func (a *ArxivSource) Fetch(ctx context.Context, ref string) (domain.RawDocument, error) {
	paperID := parseArxivID(ref)
	if paperID == "" {
		return domain.RawDocument{}, fmt.Errorf("invalid arxiv reference %q", ref)
	}

	absURL := fmt.Sprintf("%s/abs/%s", a.baseURL, paperID)
	htmlURL := fmt.Sprintf("%s/html/%s", a.baseURL, paperID)

	doc := domain.RawDocument{
		Source:  domain.SourceArxiv,
		PaperID: paperID,
		Meta: map[string]string{
			"abs_url":  absURL,
			"html_url": htmlURL,
		},
	}

	title, abstract, err := a.fetchMetadata(ctx, absURL)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("fetch metadata for %s: %w", paperID, err)
	}
	doc.Title = title
	doc.Abstract = abstract

	text, err := a.fetchHTMLText(ctx, htmlURL)
	if err != nil {
		a.debug("html full text unavailable", "paper", paperID, "error", err)
		doc.Meta["fulltext_source"] = "abstract-only"
		return doc, nil
	}

	doc.Text = text
	doc.Meta["fulltext_source"] = "arxiv_html"
	return doc, nil
}

func (a *ArxivSource) fetchMetadata(ctx context.Context, absURL string) (title, abstract string, err error) {
	page, err := a.fetchDocument(ctx, absURL)
	if err != nil {
		return "", "", err
	}

	title = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(page.Find("h1.title").First().Text()), "Title:"))
	abstract = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(page.Find("blockquote.abstract").First().Text()), "Abstract:"))

	return title, abstract, nil
}

// fetchHTMLText extracts readable text from the arXiv HTML rendering,
// keeping headings and paragraphs on their own lines so section detection
// still works downstream.
func (a *ArxivSource) fetchHTMLText(ctx context.Context, htmlURL string) (string, error) {
	page, err := a.fetchDocument(ctx, htmlURL)
	if err != nil {
		return "", err
	}

	root := page.Find("article").First()
	if root.Length() == 0 {
		root = page.Find("body").First()
	}
	root.Find("script, style, nav, header, footer").Remove()

	var b strings.Builder
	root.Find("h1, h2, h3, h4, h5, p, figcaption, li").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			b.WriteString(t)
			b.WriteString("\n\n")
		}
	})

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("html rendering at %s has no textual content", htmlURL)
	}

	return text, nil
}

func (a *ArxivSource) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "PaperSummarizer/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// parseArxivID accepts "2301.12345", "arXiv:2301.12345v2", or any arxiv.org
// URL containing the id.
func parseArxivID(ref string) string {
	return arxivIDExpr.FindString(strings.TrimSpace(ref))
}

func (a *ArxivSource) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
