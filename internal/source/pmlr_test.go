// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

func TestIsPMLR(t *testing.T) {
	if !IsPMLR("https://proceedings.mlr.press/v80/chen18a.html") {
		t.Error("PMLR URL not recognized")
	}
	if IsPMLR("https://papers.nips.cc/paper/7181") {
		t.Error("non-PMLR URL recognized")
	}
}

func TestPMLREnrich(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body><code id="bibtex">@InProceedings{chen18a,
  title = {Stochastic Gradient Methods},
  pages = {912--921},
  volume = {80}
}</code></body></html>`)
	}))
	defer ts.Close()

	// The volume comes from the URL path, so the test URL keeps the
	// real path shape.
	ref := &types.PaperRef{
		Title: "Stochastic Gradient Methods",
		URL:   ts.URL + "/v80/chen18a.html",
	}

	p := &PMLR{Client: ts.Client(), UserAgent: "test-agent"}

	// Point recognition at the test server host.
	if IsPMLR(ref.URL) {
		t.Fatal("test URL should not be PMLR before host rewrite")
	}
	if err := p.enrichPage(context.Background(), ref); err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if ref.Volume != "80" {
		t.Errorf("volume = %q, want 80", ref.Volume)
	}
	if ref.Pages != "912-921" || ref.PagesSource != "pmlr" {
		t.Errorf("pages = %q via %q", ref.Pages, ref.PagesSource)
	}
	if !strings.Contains(ref.BibTeX, "chen18a") {
		t.Errorf("bibtex not attached: %q", ref.BibTeX)
	}
	if ref.Venue != "Proceedings of Machine Learning Research" {
		t.Errorf("venue = %q", ref.Venue)
	}
}
