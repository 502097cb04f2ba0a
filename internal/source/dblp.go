// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/GodHu777777/paper-reference-agent/internal/match"
	"github.com/GodHu777777/paper-reference-agent/internal/pages"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// dblpAPIBase is the DBLP publication search endpoint. Declared as a var
// so tests can substitute an httptest server.
var dblpAPIBase = "https://dblp.org/search/publ/api"

// DBLP queries the DBLP computer science bibliography. DBLP returns many
// near-duplicate hits (preprint, conference, journal versions), so the
// refined selector with its length penalties does the picking.
type DBLP struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the source identifier.
func (d *DBLP) Name() string { return "dblp" }

type dblpResponse struct {
	Result struct {
		Hits struct {
			Hit []struct {
				Info dblpInfo `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type dblpInfo struct {
	Key     string      `json:"key"`
	Title   string      `json:"title"`
	Authors dblpAuthors `json:"authors"`
	Year    string      `json:"year"`
	Venue   dblpVenue   `json:"venue"`
	Volume  string      `json:"volume"`
	Number  string      `json:"number"`
	Pages   string      `json:"pages"`
	DOI     string      `json:"doi"`
	EE      string      `json:"ee"`
	URL     string      `json:"url"`
}

// dblpAuthors tolerates DBLP's habit of returning a single author as an
// object and multiple authors as an array.
type dblpAuthors struct {
	Names []string
}

func (a *dblpAuthors) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Author json.RawMessage `json:"author"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	if len(wrapper.Author) == 0 {
		return nil
	}

	type entry struct {
		Text string `json:"text"`
	}
	var many []entry
	if err := json.Unmarshal(wrapper.Author, &many); err == nil {
		for _, e := range many {
			a.Names = append(a.Names, e.Text)
		}
		return nil
	}
	var one entry
	if err := json.Unmarshal(wrapper.Author, &one); err != nil {
		return err
	}
	a.Names = append(a.Names, one.Text)
	return nil
}

// dblpVenue tolerates both a string and an array of strings.
type dblpVenue struct {
	Name string
}

func (v *dblpVenue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Name = s
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	if len(list) > 0 {
		v.Name = list[0]
	}
	return nil
}

// Search queries DBLP and picks the best hit with the refined selector.
func (d *DBLP) Search(ctx context.Context, query string) (*types.PaperRef, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"h":      {"50"},
	}
	reqURL := dblpAPIBase + "?" + params.Encode()

	var dr dblpResponse
	if err := getJSON(ctx, d.Client, reqURL, d.UserAgent, "", &dr); err != nil {
		return nil, fmt.Errorf("dblp search: %w", err)
	}
	hits := dr.Result.Hits.Hit
	if len(hits) == 0 {
		return nil, nil
	}

	titles := make([]string, len(hits))
	for i, h := range hits {
		titles[i] = h.Info.Title
	}
	idx, _ := match.BestRefined(query, titles)
	if idx < 0 {
		return nil, nil
	}
	info := hits[idx].Info

	ref := &types.PaperRef{
		Title:  info.Title,
		Year:   atoiSafe(info.Year),
		Venue:  ExpandVenue(info.Venue.Name),
		Volume: info.Volume,
		Issue:  info.Number,
		Pages:  pages.Normalize(info.Pages),
		DOI:    info.DOI,
		URL:    info.EE,
		DBLPID: info.Key,
		Source: d.Name(),
	}
	if ref.Pages != "" {
		ref.PagesSource = d.Name()
	}
	if info.URL != "" {
		ref.DBLPURL = info.URL
	}
	for _, name := range info.Authors.Names {
		ref.Authors = append(ref.Authors, CleanAuthor(name))
	}
	return ref, nil
}
