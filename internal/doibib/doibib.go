// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package doibib turns a DOI into a BibTeX entry. It prefers the local
// doi2bib command-line tool when one is installed and falls back to DOI
// content negotiation against doi.org.
package doibib

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"regexp"
	"strings"

	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
)

// doiOrgBase is the DOI content negotiation endpoint. Declared as a var
// so tests can substitute an httptest server.
var doiOrgBase = "https://doi.org"

const doi2bibBin = "doi2bib"

var doiInURL = regexp.MustCompile(`doi\.org/(10\.\d{4,9}/[^\s?#]+)`)

// DOIFromURL extracts the DOI identifier from a doi.org URL. Returns ""
// when the URL carries none.
func DOIFromURL(rawURL string) string {
	m := doiInURL.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return strings.TrimSuffix(m[1], "/")
}

// LandingURL maps a DOI to the page it should be read from. ACM DOIs go
// straight to dl.acm.org; routing them through doi.org trips the
// publisher's redirect bot check.
func LandingURL(doi string) string {
	if strings.HasPrefix(doi, "10.1145/") {
		return "https://dl.acm.org/doi/" + doi
	}
	return doiOrgBase + "/" + doi
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Fetcher resolves DOIs to BibTeX entries.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	exec      executor
}

// NewFetcher builds a fetcher around the shared HTTP client.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{Client: client, UserAgent: userAgent, exec: osExecutor{}}
}

// BibTeX resolves doi to a BibTeX entry, trying the doi2bib tool first
// and doi.org content negotiation second.
func (f *Fetcher) BibTeX(ctx context.Context, doi string) (string, error) {
	if doi == "" {
		return "", fmt.Errorf("empty DOI")
	}

	if _, err := f.exec.LookPath(doi2bibBin); err == nil {
		out, err := f.exec.RunOutput(ctx, doi2bibBin, doi)
		if err == nil {
			if entry := strings.TrimSpace(string(out)); strings.HasPrefix(entry, "@") {
				return entry, nil
			}
		}
	}

	return f.negotiate(ctx, doi)
}

// negotiate asks doi.org for the BibTeX rendering of the DOI.
func (f *Fetcher) negotiate(ctx context.Context, doi string) (string, error) {
	reqURL := doiOrgBase + "/" + doi
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/x-bibtex")
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, 2)
	if err != nil {
		return "", fmt.Errorf("doi.org request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("doi.org returned HTTP %d for %s", resp.StatusCode, doi)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading doi.org response: %w", err)
	}
	entry := strings.TrimSpace(string(body))
	if !strings.HasPrefix(entry, "@") {
		return "", fmt.Errorf("doi.org returned no BibTeX for %s", doi)
	}
	return entry, nil
}
