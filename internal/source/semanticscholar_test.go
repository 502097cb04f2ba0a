// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
)

func init() {
	// Scripted 429 responses must not sit through real backoff waits.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func TestSemanticScholarSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/paper/search", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "attention is all you need" {
			t.Errorf("query param = %q", got)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Errorf("x-api-key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[
			{"paperId":"p1","title":"Attention mechanisms: a survey","year":2021},
			{"paperId":"p2","title":"Attention Is All You Need","year":2017,
			 "venue":"NIPS","publicationVenue":{"name":"NeurIPS"},
			 "url":"https://www.semanticscholar.org/paper/p2",
			 "externalIds":{"DOI":"10.5555/3295222","ArXiv":"1706.03762","DBLP":"conf/nips/VaswaniSPUJGKP17"},
			 "openAccessPdf":{"url":"https://arxiv.org/pdf/1706.03762"},
			 "citationCount":90000,
			 "authors":[{"name":"Ashish Vaswani"},{"name":"Noam Shazeer 0001"}]}
		]}`)
	})
	mux.HandleFunc("/paper/p2", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"citationStyles":{"bibtex":"@inproceedings{vaswani2017, pages = {5998--6008}}"}}`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), UserAgent: "test-agent", APIKey: "sk-test"}
	ref, err := s.Search(context.Background(), "attention is all you need")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ref == nil {
		t.Fatal("Search returned no match")
	}
	if ref.Title != "Attention Is All You Need" {
		t.Errorf("title = %q", ref.Title)
	}
	if ref.Year != 2017 || ref.DOI != "10.5555/3295222" || ref.ArxivID != "1706.03762" {
		t.Errorf("identifiers = %d %q %q", ref.Year, ref.DOI, ref.ArxivID)
	}
	if ref.Source != "semantic_scholar" {
		t.Errorf("source = %q", ref.Source)
	}
	// publicationVenue.name wins over the flat venue field and is expanded.
	if ref.Venue != "Advances in Neural Information Processing Systems" {
		t.Errorf("venue = %q, want expanded publication venue", ref.Venue)
	}
	if len(ref.Authors) != 2 || ref.Authors[1] != "Noam Shazeer" {
		t.Errorf("authors = %v, want cleaned suffix", ref.Authors)
	}
	if !strings.Contains(ref.BibTeX, "5998--6008") {
		t.Errorf("bibtex not attached: %q", ref.BibTeX)
	}
}

func TestSemanticScholarNoMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"paperId":"x","title":"soil composition of the gobi desert"}]}`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), UserAgent: "test-agent"}
	ref, err := s.Search(context.Background(), "generative adversarial networks")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ref != nil {
		t.Errorf("expected no match, got %q", ref.Title)
	}
}

func TestSemanticScholarRateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	s := &SemanticScholar{Client: ts.Client(), UserAgent: "test-agent"}
	_, err := s.Search(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("want API key hint in error, got %v", err)
	}
}
