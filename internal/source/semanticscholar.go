// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/GodHu777777/paper-reference-agent/internal/match"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// semanticAPIBase is the Semantic Scholar Graph API root. Declared as a
// var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1"

const semanticFields = "title,authors,year,venue,publicationVenue,externalIds,url,openAccessPdf,citationCount"

// SemanticScholar queries the Semantic Scholar Graph API: broad coverage
// and stable DOI/arXiv identifiers.
type SemanticScholar struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the source identifier.
func (s *SemanticScholar) Name() string { return "semantic_scholar" }

type semanticSearchResponse struct {
	Data []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID string `json:"paperId"`
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Year             int    `json:"year"`
	Venue            string `json:"venue"`
	PublicationVenue struct {
		Name string `json:"name"`
	} `json:"publicationVenue"`
	URL string `json:"url"`
	ExternalIDs struct {
		DOI   string `json:"DOI"`
		ArXiv string `json:"ArXiv"`
		DBLP  string `json:"DBLP"`
	} `json:"externalIds"`
	OpenAccessPDF struct {
		URL string `json:"url"`
	} `json:"openAccessPdf"`
	CitationCount int `json:"citationCount"`
}

type semanticDetailResponse struct {
	CitationStyles struct {
		BibTeX string `json:"bibtex"`
	} `json:"citationStyles"`
}

// Search finds the best title match and enriches it with the official
// BibTeX entry from the paper detail endpoint.
func (s *SemanticScholar) Search(ctx context.Context, query string) (*types.PaperRef, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {"10"},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "/paper/search?" + params.Encode()

	var sr semanticSearchResponse
	if err := getJSON(ctx, s.Client, reqURL, s.UserAgent, s.APIKey, &sr); err != nil {
		return nil, fmt.Errorf("semantic scholar search: %w", err)
	}
	if len(sr.Data) == 0 {
		return nil, nil
	}

	titles := make([]string, len(sr.Data))
	for i, p := range sr.Data {
		titles[i] = p.Title
	}
	idx, _ := match.Best(query, titles)
	if idx < 0 {
		return nil, nil
	}
	p := sr.Data[idx]

	// The publication venue object carries the canonical name when the
	// flat venue field is an abbreviation.
	venue := p.PublicationVenue.Name
	if venue == "" {
		venue = p.Venue
	}

	ref := &types.PaperRef{
		Title:         p.Title,
		Year:          p.Year,
		Venue:         ExpandVenue(venue),
		URL:           p.URL,
		DOI:           p.ExternalIDs.DOI,
		ArxivID:       p.ExternalIDs.ArXiv,
		DBLPID:        p.ExternalIDs.DBLP,
		PDFURL:        p.OpenAccessPDF.URL,
		CitationCount: p.CitationCount,
		Source:        s.Name(),
	}
	for _, a := range p.Authors {
		ref.Authors = append(ref.Authors, CleanAuthor(a.Name))
	}

	// Best effort: the detail endpoint carries the BibTeX entry.
	if p.PaperID != "" {
		detailURL := semanticAPIBase + "/paper/" + url.PathEscape(p.PaperID) + "?fields=citationStyles"
		var dr semanticDetailResponse
		if err := getJSON(ctx, s.Client, detailURL, s.UserAgent, s.APIKey, &dr); err == nil {
			ref.BibTeX = dr.CitationStyles.BibTeX
		}
	}
	return ref, nil
}
