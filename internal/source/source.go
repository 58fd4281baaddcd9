// Package source supplies raw export HTML for registered documents.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/docpress/docpress/internal/registry"
)

// Fetcher retrieves the raw export HTML for one document.
type Fetcher interface {
	Fetch(ctx context.Context, doc registry.Document) (string, error)
}

const defaultExportBaseURL = "https://docs.google.com"

// maxExportBytes bounds how much export HTML is read per document.
const maxExportBytes = 20 << 20 // 20MB

// Export fetches documents from the editor's HTML export endpoint.
type Export struct {
	client  *http.Client
	baseURL string
}

// NewExport creates an export fetcher with the given request timeout.
func NewExport(timeout time.Duration) *Export {
	return &Export{
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultExportBaseURL,
	}
}

// NewExportWithBaseURL creates an export fetcher against a custom endpoint,
// used in tests.
func NewExportWithBaseURL(baseURL string, timeout time.Duration) *Export {
	e := NewExport(timeout)
	e.baseURL = baseURL
	return e
}

func (e *Export) Fetch(ctx context.Context, doc registry.Document) (string, error) {
	url := fmt.Sprintf("%s/document/d/%s/export?format=html", e.baseURL, doc.ExternalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building export request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching export for %q: %w", doc.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching export for %q: unexpected status %d", doc.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExportBytes))
	if err != nil {
		return "", fmt.Errorf("reading export for %q: %w", doc.Name, err)
	}
	return string(body), nil
}

// Dir reads pre-downloaded exports from a local directory, one
// <externalID>.html file per document.
type Dir struct {
	dir string
}

// NewDir creates a directory fetcher.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

func (d *Dir) Fetch(ctx context.Context, doc registry.Document) (string, error) {
	path := filepath.Join(d.dir, doc.ExternalID+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading export for %q: %w", doc.Name, err)
	}
	return string(data), nil
}
