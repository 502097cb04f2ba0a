// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/GodHu777777/paper-reference-agent/internal/match"
	"github.com/GodHu777777/paper-reference-agent/internal/pages"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// Crossref queries the Crossref works API. Strongest on journal
// metadata: volume, issue, and printed page ranges.
type Crossref struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (c *Crossref) Name() string { return "crossref" }

type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	Title  []string `json:"title"`
	Author []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	ContainerTitle []string `json:"container-title"`
	Volume         string   `json:"volume"`
	Issue          string   `json:"issue"`
	Page           string   `json:"page"`
	DOI            string   `json:"DOI"`
	URL            string   `json:"URL"`
	Issued         struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
}

// Search queries Crossref and returns the best title match.
func (c *Crossref) Search(ctx context.Context, query string) (*types.PaperRef, error) {
	params := url.Values{
		"query.title": {query},
		"rows":        {"10"},
	}
	reqURL := crossrefAPIBase + "?" + params.Encode()

	var cr crossrefResponse
	if err := getJSON(ctx, c.Client, reqURL, c.UserAgent, "", &cr); err != nil {
		return nil, fmt.Errorf("crossref search: %w", err)
	}
	items := cr.Message.Items
	if len(items) == 0 {
		return nil, nil
	}

	titles := make([]string, len(items))
	for i, it := range items {
		if len(it.Title) > 0 {
			titles[i] = it.Title[0]
		}
	}
	idx, _ := match.Best(query, titles)
	if idx < 0 {
		return nil, nil
	}
	it := items[idx]

	ref := &types.PaperRef{
		Title:  titles[idx],
		Volume: it.Volume,
		Issue:  it.Issue,
		Pages:  pages.Normalize(it.Page),
		DOI:    it.DOI,
		URL:    it.URL,
		Source: c.Name(),
	}
	if ref.Pages != "" {
		ref.PagesSource = c.Name()
	}
	if len(it.ContainerTitle) > 0 {
		ref.Venue = ExpandVenue(it.ContainerTitle[0])
	}
	if len(it.Issued.DateParts) > 0 && len(it.Issued.DateParts[0]) > 0 {
		ref.Year = it.Issued.DateParts[0][0]
	}
	for _, a := range it.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			ref.Authors = append(ref.Authors, CleanAuthor(name))
		}
	}
	return ref, nil
}
