// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
	"github.com/GodHu777777/paper-reference-agent/internal/pages"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

var (
	pmlrVolume   = regexp.MustCompile(`/v(\d+)/`)
	pmlrBibEntry = regexp.MustCompile(`@\w+\s*\{[^@]*\}`)
)

// PMLR enriches records whose URL points at the Proceedings of Machine
// Learning Research. PMLR has no search API, so Search never matches;
// the value is in Enrich, which reads the authoritative BibTeX off the
// paper's landing page.
type PMLR struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (p *PMLR) Name() string { return "pmlr" }

// Search always reports no match; PMLR cannot be queried by title.
func (p *PMLR) Search(_ context.Context, _ string) (*types.PaperRef, error) {
	return nil, nil
}

// IsPMLR reports whether rawURL points at a PMLR paper page.
func IsPMLR(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), "proceedings.mlr.press")
}

// Enrich fetches the PMLR landing page for ref and fills volume, pages,
// venue, and BibTeX from it. No-op for non-PMLR URLs.
func (p *PMLR) Enrich(ctx context.Context, ref *types.PaperRef) error {
	if !IsPMLR(ref.BestURL()) {
		return nil
	}
	return p.enrichPage(ctx, ref)
}

func (p *PMLR) enrichPage(ctx context.Context, ref *types.PaperRef) error {
	pageURL := ref.BestURL()

	if ref.Volume == "" {
		if m := pmlrVolume.FindStringSubmatch(pageURL); m != nil {
			ref.Volume = m[1]
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", p.UserAgent)
	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 2)
	if err != nil {
		return fmt.Errorf("fetching PMLR page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("PMLR page returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parsing PMLR page: %w", err)
	}

	var entry string
	doc.Find("pre, code, #bibtex").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := pmlrBibEntry.FindString(s.Text()); m != "" {
			entry = m
			return false
		}
		return true
	})
	if entry == "" {
		entry = pmlrBibEntry.FindString(doc.Text())
	}
	if entry == "" {
		return nil
	}

	if ref.BibTeX == "" {
		ref.BibTeX = entry
	}
	if !ref.HasPages() {
		if pp := pages.FromBibTeX(entry); pp != "" {
			ref.Pages = pp
			ref.PagesSource = p.Name()
		}
	}
	if ref.Venue == "" {
		ref.Venue = "Proceedings of Machine Learning Research"
	}
	return nil
}
