// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolver orchestrates a paper lookup: cache, then the
// bibliographic sources in priority order, then the page-extraction
// chain, then cache and history writes.
package resolver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/GodHu777777/paper-reference-agent/internal/cache"
	"github.com/GodHu777777/paper-reference-agent/internal/history"
	"github.com/GodHu777777/paper-reference-agent/internal/match"
	"github.com/GodHu777777/paper-reference-agent/internal/pages"
	"github.com/GodHu777777/paper-reference-agent/internal/source"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// enricher augments a record from its landing page (PMLR).
type enricher interface {
	Enrich(ctx context.Context, ref *types.PaperRef) error
}

// Resolver walks sources in priority order and fills in pages.
type Resolver struct {
	sources  []source.Client
	chain    *pages.Chain
	enricher enricher
	store    *cache.Store
	hist     *history.Store
	delay    time.Duration
	w        io.Writer
}

// Options configures a Resolver. Cache, History, and Enricher are
// optional; Sources and Chain are not.
type Options struct {
	Sources  []source.Client
	Chain    *pages.Chain
	Enricher enricher
	Cache    *cache.Store
	History  *history.Store

	// InterSourceDelay spaces out requests to consecutive sources.
	InterSourceDelay time.Duration

	// Out receives progress lines; defaults to io.Discard.
	Out io.Writer
}

// New builds a Resolver from options.
func New(opts Options) *Resolver {
	w := opts.Out
	if w == nil {
		w = io.Discard
	}
	return &Resolver{
		sources:  opts.Sources,
		chain:    opts.Chain,
		enricher: opts.Enricher,
		store:    opts.Cache,
		hist:     opts.History,
		delay:    opts.InterSourceDelay,
		w:        w,
	}
}

// Result pairs a query with its outcome in a batch run.
type Result struct {
	Query string
	Ref   *types.PaperRef
	Err   error
}

// Resolve looks up one paper by title. It returns (nil, nil) when no
// source has an acceptable match; misses are never cached, so a later
// run retries the network. Set useCache false to bypass both cache read
// and write.
func (r *Resolver) Resolve(ctx context.Context, query string, useCache bool) (*types.PaperRef, error) {
	if useCache && r.store != nil {
		if ref, ok := r.store.Get(query); ok {
			fmt.Fprintf(r.w, "cache hit: %s\n", query)
			return ref, nil
		}
	}

	cleaned := match.CleanQuery(query)
	if cleaned == "" {
		return nil, fmt.Errorf("empty query after cleaning: %q", query)
	}

	ref, err := r.searchSources(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		fmt.Fprintf(r.w, "no match: %s\n", query)
		return nil, nil
	}

	if r.enricher != nil {
		if err := r.enricher.Enrich(ctx, ref); err != nil {
			fmt.Fprintf(r.w, "warning: enriching %s: %v\n", ref.BestURL(), err)
		}
	}

	if r.chain != nil {
		r.chain.Run(ctx, ref)
	}

	if useCache && r.store != nil {
		if err := r.store.Put(query, ref); err != nil {
			fmt.Fprintf(r.w, "warning: caching %q: %v\n", query, err)
		}
	}
	if r.hist != nil {
		if err := r.hist.Record(ctx, query, ref); err != nil {
			fmt.Fprintf(r.w, "warning: recording history: %v\n", err)
		}
	}
	return ref, nil
}

// searchSources walks the sources in priority order and returns the
// first acceptable match. Source failures are logged and skipped; an
// error comes back only when the context is done.
func (r *Resolver) searchSources(ctx context.Context, query string) (*types.PaperRef, error) {
	for i, s := range r.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i > 0 && r.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.delay):
			}
		}

		fmt.Fprintf(r.w, "searching %s: %s\n", s.Name(), query)
		ref, err := s.Search(ctx, query)
		if err != nil {
			fmt.Fprintf(r.w, "warning: source %s failed: %v\n", s.Name(), err)
			continue
		}
		if ref == nil {
			continue
		}
		fmt.Fprintf(r.w, "found via %s: %s\n", s.Name(), ref.Title)
		return ref, nil
	}
	return nil, nil
}

// ResolveBatch resolves several titles and returns one Result per
// query, in input order.
func (r *Resolver) ResolveBatch(ctx context.Context, queries []string, useCache bool) []Result {
	results := make([]Result, len(queries))
	for i, q := range queries {
		ref, err := r.Resolve(ctx, q, useCache)
		results[i] = Result{Query: q, Ref: ref, Err: err}
	}
	return results
}

// CacheStats reports cache statistics; zero stats without a cache.
func (r *Resolver) CacheStats() (cache.Stats, error) {
	if r.store == nil {
		return cache.Stats{}, nil
	}
	return r.store.Stats()
}

// ClearCache empties the cache; no-op without one.
func (r *Resolver) ClearCache() error {
	if r.store == nil {
		return nil
	}
	return r.store.Clear()
}
