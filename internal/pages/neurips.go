// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pages

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

var neuripsHosts = []string{
	"papers.nips.cc",
	"papers.neurips.cc",
	"proceedings.neurips.cc",
}

var bibEntry = regexp.MustCompile(`@\w+\s*\{[^@]*\}`)

// NeurIPS digs the official BibTeX entry out of a NeurIPS proceedings
// page. The entry carries the authoritative page range for pre-2020
// volumes.
type NeurIPS struct {
	client    *http.Client
	userAgent string
}

// NewNeurIPS builds the strategy around the shared HTTP client.
func NewNeurIPS(client *http.Client, userAgent string) *NeurIPS {
	return &NeurIPS{client: client, userAgent: userAgent}
}

// Name identifies the strategy in logs and in PagesSource.
func (n *NeurIPS) Name() string { return "neurips" }

// Extract fetches the paper's NeurIPS page, locates its BibTeX entry,
// and returns the pages field. Non-NeurIPS URLs are skipped silently.
func (n *NeurIPS) Extract(ctx context.Context, ref *types.PaperRef) (string, error) {
	pageURL := ref.BestURL()
	if !isNeurIPS(pageURL) {
		return "", nil
	}

	doc, err := n.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	entry := n.findBibTeX(ctx, doc, pageURL)
	if entry == "" {
		return "", nil
	}
	if ref.BibTeX == "" {
		ref.BibTeX = entry
	}
	return FromBibTeX(entry), nil
}

// findBibTeX tries the known hiding places in priority order: a link
// labeled "bibtex", any link whose href mentions "bib", then inline
// <pre>, <code>, and <script> blocks, and finally the raw page text.
func (n *NeurIPS) findBibTeX(ctx context.Context, doc *goquery.Document, pageURL string) string {
	var bibHref string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(a.Text()), "bibtex") {
			bibHref, _ = a.Attr("href")
			return false
		}
		return true
	})
	if bibHref == "" {
		doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, ok := a.Attr("href")
			if ok && strings.Contains(strings.ToLower(href), "bib") {
				bibHref = href
				return false
			}
			return true
		})
	}
	if bibHref != "" {
		if entry := n.fetchBibLink(ctx, pageURL, bibHref); entry != "" {
			return entry
		}
	}

	for _, sel := range []string{"pre", "code", "script"} {
		var entry string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := bibEntry.FindString(s.Text()); m != "" {
				entry = m
				return false
			}
			return true
		})
		if entry != "" {
			return entry
		}
	}

	return bibEntry.FindString(doc.Text())
}

// fetchBibLink resolves href against the page URL and fetches it. The
// target is either a .bib file or a page embedding the entry.
func (n *NeurIPS) fetchBibLink(ctx context.Context, pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	rel, err := url.Parse(href)
	if err != nil {
		return ""
	}
	target := base.ResolveReference(rel).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", n.userAgent)
	resp, err := httputil.DoWithRetry(ctx, n.client, req, 2)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}
	return bibEntry.FindString(doc.Text())
}

func (n *NeurIPS) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", n.userAgent)
	resp, err := httputil.DoWithRetry(ctx, n.client, req, 2)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func isNeurIPS(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range neuripsHosts {
		if host == h {
			return true
		}
	}
	return false
}
