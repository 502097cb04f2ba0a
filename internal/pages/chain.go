// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// protectedHosts are publisher domains that reject scrapers and ban
// aggressively. URL-fetching strategies must skip them.
var protectedHosts = []string{
	"dl.acm.org",
	"aclanthology.org",
	"ieee.org",
}

// IsProtected reports whether rawURL points at a publisher domain that
// must not be scraped.
func IsProtected(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, p := range protectedHosts {
		if host == p || strings.HasSuffix(host, "."+p) {
			return true
		}
	}
	return false
}

// Strategy is one way of finding a page range for a paper. Extract
// returns the raw (un-normalized) page string, or "" when the strategy
// has nothing to offer. An error means the strategy was applicable but
// failed; the chain logs it and moves on.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, ref *types.PaperRef) (string, error)
}

// Chain runs strategies in order until one yields pages. Progress is
// written to w.
type Chain struct {
	strategies []Strategy
	w          io.Writer
}

// NewChain builds a chain over the given strategies. Order matters:
// cheaper and more reliable strategies go first.
func NewChain(w io.Writer, strategies ...Strategy) *Chain {
	if w == nil {
		w = io.Discard
	}
	return &Chain{strategies: strategies, w: w}
}

// Run tries each strategy in order and fills ref.Pages and
// ref.PagesSource from the first hit. Pages already present on ref are
// never overwritten. Returns the name of the strategy that produced the
// pages, or "" when the whole chain came up empty.
func (c *Chain) Run(ctx context.Context, ref *types.PaperRef) string {
	if ref.HasPages() {
		return ref.PagesSource
	}
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return ""
		}
		raw, err := s.Extract(ctx, ref)
		if err != nil {
			fmt.Fprintf(c.w, "warning: pages via %s: %v\n", s.Name(), err)
			continue
		}
		pages := Normalize(raw)
		if pages == "" {
			continue
		}
		ref.Pages = pages
		ref.PagesSource = s.Name()
		fmt.Fprintf(c.w, "pages: %s (via %s)\n", pages, s.Name())
		return s.Name()
	}
	return ""
}

// Func adapts a plain function into a Strategy.
type Func struct {
	Label string
	Fn    func(ctx context.Context, ref *types.PaperRef) (string, error)
}

// Name returns the strategy label.
func (f Func) Name() string { return f.Label }

// Extract invokes the wrapped function.
func (f Func) Extract(ctx context.Context, ref *types.PaperRef) (string, error) {
	return f.Fn(ctx, ref)
}

// RecordBibTeX extracts pages from the BibTeX already attached to the
// record. This is the cheapest strategy and always runs first.
type RecordBibTeX struct{}

// Name identifies the strategy in logs and in PagesSource.
func (RecordBibTeX) Name() string { return "bibtex" }

// Extract reads the pages field from ref.BibTeX. While here it also
// backfills volume and issue when the record lacks them.
func (RecordBibTeX) Extract(_ context.Context, ref *types.PaperRef) (string, error) {
	if ref.BibTeX == "" {
		return "", nil
	}
	volume, issue := VolumeIssue(ref.BibTeX)
	if ref.Volume == "" {
		ref.Volume = volume
	}
	if ref.Issue == "" {
		ref.Issue = issue
	}
	return FromBibTeX(ref.BibTeX), nil
}
