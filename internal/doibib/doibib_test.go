// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doibib

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const acmBib = `@inproceedings{10.1145/3539618.3591695,
  title = {Generative Retrieval},
  pages = {1--10}
}`

// fakeExecutor simulates the doi2bib binary.
type fakeExecutor struct {
	installed bool
	output    string
	err       error
}

func (f *fakeExecutor) LookPath(string) (string, error) {
	if !f.installed {
		return "", errors.New("not found")
	}
	return "/usr/bin/doi2bib", nil
}

func (f *fakeExecutor) RunOutput(_ context.Context, _ string, _ ...string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.output), nil
}

func TestDOIFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://doi.org/10.1145/3539618.3591695", "10.1145/3539618.3591695"},
		{"https://doi.org/10.18653/v1/2023.acl-long.782", "10.18653/v1/2023.acl-long.782"},
		{"https://dx.doi.org/10.1109/TIFS.2021.123?query=1", "10.1109/TIFS.2021.123"},
		{"https://arxiv.org/abs/1706.03762", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DOIFromURL(tt.url); got != tt.want {
			t.Errorf("DOIFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestLandingURL(t *testing.T) {
	if got := LandingURL("10.1145/3539618.3591695"); got != "https://dl.acm.org/doi/10.1145/3539618.3591695" {
		t.Errorf("ACM landing = %q", got)
	}
	if got := LandingURL("10.18653/v1/2023.acl-long.782"); got != "https://doi.org/10.18653/v1/2023.acl-long.782" {
		t.Errorf("generic landing = %q", got)
	}
}

func TestBibTeXViaTool(t *testing.T) {
	f := &Fetcher{exec: &fakeExecutor{installed: true, output: acmBib + "\n"}}
	entry, err := f.BibTeX(context.Background(), "10.1145/3539618.3591695")
	if err != nil {
		t.Fatalf("BibTeX: %v", err)
	}
	if !strings.HasPrefix(entry, "@inproceedings") {
		t.Errorf("entry = %q", entry)
	}
}

func TestBibTeXFallsBackToNegotiation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/x-bibtex" {
			t.Errorf("Accept = %q", got)
		}
		if r.URL.Path != "/10.1145/3539618.3591695" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, acmBib)
	}))
	defer ts.Close()

	old := doiOrgBase
	doiOrgBase = ts.URL
	defer func() { doiOrgBase = old }()

	f := &Fetcher{Client: ts.Client(), UserAgent: "test-agent", exec: &fakeExecutor{installed: false}}
	entry, err := f.BibTeX(context.Background(), "10.1145/3539618.3591695")
	if err != nil {
		t.Fatalf("BibTeX: %v", err)
	}
	if !strings.Contains(entry, "pages = {1--10}") {
		t.Errorf("entry = %q", entry)
	}
}

func TestBibTeXToolFailureFallsBack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, acmBib)
	}))
	defer ts.Close()

	old := doiOrgBase
	doiOrgBase = ts.URL
	defer func() { doiOrgBase = old }()

	f := &Fetcher{Client: ts.Client(), UserAgent: "test-agent", exec: &fakeExecutor{installed: true, err: errors.New("exit 1")}}
	entry, err := f.BibTeX(context.Background(), "10.1145/3539618.3591695")
	if err != nil {
		t.Fatalf("BibTeX: %v", err)
	}
	if entry == "" {
		t.Error("empty entry after fallback")
	}
}

func TestBibTeXEmptyDOI(t *testing.T) {
	f := NewFetcher(http.DefaultClient, "test-agent")
	if _, err := f.BibTeX(context.Background(), ""); err == nil {
		t.Error("want error for empty DOI")
	}
}

func TestBibTeXNotBibTeXBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "<html>redirect page</html>")
	}))
	defer ts.Close()

	old := doiOrgBase
	doiOrgBase = ts.URL
	defer func() { doiOrgBase = old }()

	f := &Fetcher{Client: ts.Client(), UserAgent: "test-agent", exec: &fakeExecutor{installed: false}}
	if _, err := f.BibTeX(context.Background(), "10.1000/xyz"); err == nil {
		t.Error("want error for non-BibTeX body")
	}
}
