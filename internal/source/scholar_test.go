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

const scholarPage = `<html><body>
<div class="gs_r gs_or gs_scl">
  <div class="gs_ggs gs_fl"><div class="gs_or_ggsm"><a href="https://arxiv.org/pdf/1706.03762">[PDF] arxiv.org</a></div></div>
  <div class="gs_ri">
    <h3 class="gs_rt"><a href="https://papers.nips.cc/paper/7181">Attention is all you need</a></h3>
    <div class="gs_a">A Vaswani, N Shazeer, N Parmar&#8230; - Advances in neural information processing systems, 2017 - papers.nips.cc</div>
  </div>
</div>
<div class="gs_r gs_or gs_scl">
  <div class="gs_ri">
    <h3 class="gs_rt"><a href="https://example.org/survey">A survey of attention mechanisms in deep learning and beyond</a></h3>
    <div class="gs_a">J Doe - Some Journal, 2021 - example.org</div>
  </div>
</div>
</body></html>`

func TestScholarSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "attention is all you need" {
			t.Errorf("q param = %q", got)
		}
		io.WriteString(w, scholarPage)
	}))
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := NewScholar(ts.Client(), "test-agent")
	ref, err := s.Search(context.Background(), "attention is all you need")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ref == nil {
		t.Fatal("Search returned no match")
	}
	if ref.Title != "Attention is all you need" {
		t.Errorf("title = %q", ref.Title)
	}
	if ref.URL != "https://papers.nips.cc/paper/7181" {
		t.Errorf("url = %q", ref.URL)
	}
	if ref.PDFURL != "https://arxiv.org/pdf/1706.03762" {
		t.Errorf("pdf url = %q", ref.PDFURL)
	}
	if ref.Year != 2017 {
		t.Errorf("year = %d", ref.Year)
	}
	if len(ref.Authors) != 3 || ref.Authors[0] != "A Vaswani" {
		t.Errorf("authors = %v", ref.Authors)
	}
	if !strings.Contains(ref.Venue, "Advances in neural information processing systems") {
		t.Errorf("venue = %q", ref.Venue)
	}
}

func TestScholarCaptcha(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body><form id="captcha-form">Our systems have detected unusual traffic from your computer network.</form></body></html>`)
	}))
	defer ts.Close()

	old := scholarBase
	scholarBase = ts.URL
	defer func() { scholarBase = old }()

	s := NewScholar(ts.Client(), "test-agent")
	_, err := s.Search(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "captcha") {
		t.Errorf("want captcha error, got %v", err)
	}
}

func TestFillFromByline(t *testing.T) {
	ref := &types.PaperRef{}
	fillFromByline(ref, "A Vaswani, N Shazeer… - Advances in neural information processing systems, 2017 - papers.nips.cc")
	if len(ref.Authors) != 2 {
		t.Fatalf("authors = %v", ref.Authors)
	}
	if ref.Year != 2017 {
		t.Errorf("year = %d", ref.Year)
	}
}
