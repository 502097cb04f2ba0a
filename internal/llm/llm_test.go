// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare range", "5998-6008", "5998-6008"},
		{"en dash", "5998–6008", "5998-6008"},
		{"labeled", "The pages are: pages: 123-145", "123-145"},
		{"pp form", "pp. 120-135", "120-135"},
		{"chatty reply", "The paper appears on pages 711 to 724 of the issue.", "711-724"},
		{"not found", "not found", ""},
		{"not found embedded", "Sorry, the page range was not found on this page.", ""},
		{"nothing useful", "the page does not mention it", ""},
		{"single number only", "volume 30", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseReply(tt.reply); got != tt.want {
				t.Errorf("ParseReply(%q) = %q, want %q", tt.reply, got, tt.want)
			}
		})
	}
}

func TestExtractPages(t *testing.T) {
	var gotAuth string
	var gotPrompt string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "gpt-4o-mini" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) == 1 {
			gotPrompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"5998-6008"}}]}`)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, APIKey: "sk-test", Model: "gpt-4o-mini", HTTPClient: ts.Client()}
	pages, err := c.ExtractPages(context.Background(), "NeurIPS 2017, pages 5998-6008", "https://papers.nips.cc/paper/7181", "Attention Is All You Need")
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if pages != "5998-6008" {
		t.Errorf("pages = %q", pages)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if !strings.Contains(gotPrompt, "Paper title: Attention Is All You Need") {
		t.Errorf("prompt missing title:\n%s", gotPrompt)
	}
}

func TestExtractPagesTruncatesText(t *testing.T) {
	var promptLen int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) == 1 {
			promptLen = len(req.Messages[0].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"not found"}}]}`)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, Model: "gpt-4o-mini", HTTPClient: ts.Client()}
	long := strings.Repeat("x", 50000)
	pages, err := c.ExtractPages(context.Background(), long, "https://example.org", "")
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if pages != "" {
		t.Errorf("pages = %q, want empty on not found", pages)
	}
	if promptLen > maxPageText+1000 {
		t.Errorf("prompt length %d, page text not truncated", promptLen)
	}
}

func TestExtractPagesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, Model: "gpt-4o-mini", HTTPClient: ts.Client()}
	_, err := c.ExtractPages(context.Background(), "text", "https://example.org", "")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("want status error, got %v", err)
	}
}
