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
	"golang.org/x/time/rate"

	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
	"github.com/GodHu777777/paper-reference-agent/internal/match"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// scholarBase is the Google Scholar search page. Declared as a var so
// tests can substitute an httptest server.
var scholarBase = "https://scholar.google.com/scholar"

var yearInByline = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Scholar scrapes Google Scholar result pages. It is the source of last
// resort: no API, aggressive rate limits, and occasional captcha walls.
// The limiter keeps requests well under one per two seconds.
type Scholar struct {
	Client    *http.Client
	UserAgent string
	limiter   *rate.Limiter
}

// NewScholar builds the client with its rate limiter.
func NewScholar(client *http.Client, userAgent string) *Scholar {
	return &Scholar{
		Client:    client,
		UserAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(0.5), 1),
	}
}

// Name returns the source identifier.
func (s *Scholar) Name() string { return "google_scholar" }

// Search scrapes the first Scholar result page and returns the best
// title match. A captcha interstitial is reported as an error so the
// resolver can move on without burning more requests.
func (s *Scholar) Search(ctx context.Context, query string) (*types.PaperRef, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"q":  {query},
		"hl": {"en"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scholarBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("scholar request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scholar returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing scholar page: %w", err)
	}

	if doc.Find("#gs_captcha_ccl, #captcha-form").Length() > 0 ||
		strings.Contains(doc.Text(), "unusual traffic") {
		return nil, fmt.Errorf("scholar served a captcha page")
	}

	type hit struct {
		title   string
		href    string
		byline  string
		pdfHref string
	}
	var hits []hit
	doc.Find(".gs_ri").Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("h3.gs_rt a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			// Citation-only entries have no link; take the heading text
			// minus the [CITATION] marker.
			title = strings.TrimSpace(sel.Find("h3.gs_rt").Text())
			title = strings.TrimPrefix(title, "[CITATION][C] ")
		}
		if title == "" {
			return
		}
		h := hit{title: title, byline: strings.TrimSpace(sel.Find(".gs_a").Text())}
		h.href, _ = link.Attr("href")
		h.pdfHref, _ = sel.Parent().Find(".gs_or_ggsm a").First().Attr("href")
		hits = append(hits, h)
	})
	if len(hits) == 0 {
		return nil, nil
	}

	titles := make([]string, len(hits))
	for i, h := range hits {
		titles[i] = h.title
	}
	idx, _ := match.Best(query, titles)
	if idx < 0 {
		return nil, nil
	}
	h := hits[idx]

	ref := &types.PaperRef{
		Title:  h.title,
		URL:    h.href,
		PDFURL: h.pdfHref,
		Source: s.Name(),
	}
	fillFromByline(ref, h.byline)
	return ref, nil
}

// fillFromByline parses the green byline under a Scholar hit:
// "A Vaswani, N Shazeer... - Advances in neural information..., 2017 - papers.nips.cc".
func fillFromByline(ref *types.PaperRef, byline string) {
	if byline == "" {
		return
	}
	parts := strings.Split(byline, " - ")
	for _, name := range strings.Split(parts[0], ",") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "…"))
		if name != "" && name != "..." {
			ref.Authors = append(ref.Authors, CleanAuthor(name))
		}
	}
	if len(parts) > 1 {
		venueYear := parts[1]
		if m := yearInByline.FindString(venueYear); m != "" {
			ref.Year = atoiSafe(m)
		}
		venue := yearInByline.ReplaceAllString(venueYear, "")
		venue = strings.Trim(strings.TrimSpace(venue), ",… ")
		if venue != "" {
			ref.Venue = ExpandVenue(venue)
		}
	}
}
