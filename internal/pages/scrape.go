// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pages

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// Patterns that landing pages use to print page ranges, most specific
// first.
var textPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)pages?\s*[:=]?\s*(\d+)\s*[-–—]+\s*(\d+)`),
	regexp.MustCompile(`(?i)pp\.?\s*(\d+)\s*[-–—]+\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*[-–—]{1,2}\s*(\d+)\s*(?:pp|pages)`),
}

// ScanText looks for a page range in free-form page text. Returns "" when
// no pattern matches.
func ScanText(text string) string {
	for _, re := range textPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + "-" + m[2]
		}
	}
	return ""
}

// FetchText downloads a page and returns its visible text with script and
// style content removed.
func FetchText(ctx context.Context, client *http.Client, userAgent, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := httputil.DoWithRetry(ctx, client, req, 2)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}
	return VisibleText(doc), nil
}

// VisibleText strips script and style nodes and returns the document's
// remaining text.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(doc.Text())
}

// HTMLScan fetches a paper's landing page and pattern-matches the page
// range out of the text. Protected publisher domains are skipped.
type HTMLScan struct {
	client    *http.Client
	userAgent string
}

// NewHTMLScan builds the strategy around the shared HTTP client.
func NewHTMLScan(client *http.Client, userAgent string) *HTMLScan {
	return &HTMLScan{client: client, userAgent: userAgent}
}

// Name identifies the strategy in logs and in PagesSource.
func (h *HTMLScan) Name() string { return "html" }

// Extract downloads ref's landing page and scans it for a page range.
func (h *HTMLScan) Extract(ctx context.Context, ref *types.PaperRef) (string, error) {
	pageURL := ref.BestURL()
	if pageURL == "" || IsProtected(pageURL) {
		return "", nil
	}
	text, err := FetchText(ctx, h.client, h.userAgent, pageURL)
	if err != nil {
		return "", err
	}
	return ScanText(text), nil
}
