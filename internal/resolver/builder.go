// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/GodHu777777/paper-reference-agent/internal/browser"
	"github.com/GodHu777777/paper-reference-agent/internal/cache"
	"github.com/GodHu777777/paper-reference-agent/internal/doibib"
	"github.com/GodHu777777/paper-reference-agent/internal/history"
	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
	"github.com/GodHu777777/paper-reference-agent/internal/llm"
	"github.com/GodHu777777/paper-reference-agent/internal/pages"
	"github.com/GodHu777777/paper-reference-agent/internal/source"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// App bundles the resolver with the resources it owns.
type App struct {
	*Resolver

	renderer *browser.Renderer
	hist     *history.Store
}

// Close releases the browser session and the history database.
func (a *App) Close() error {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.hist != nil {
		return a.hist.Close()
	}
	return nil
}

// History exposes the history store for the history command; nil when
// history is disabled.
func (a *App) History() *history.Store {
	return a.hist
}

// Build wires a full resolver from configuration: HTTP client, sources
// in engine order, cache, history, and the page-extraction chain.
func Build(cfg types.Config, w io.Writer) (*App, error) {
	client, err := httputil.NewClient(cfg.Sources.Timeout, cfg.Sources.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("building HTTP client: %w", err)
	}

	sources, pmlr, err := buildSources(cfg, client)
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(cfg.Cache.Dir, cfg.Cache.ExpiryDays)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	var hist *history.Store
	if cfg.History.Path != "" {
		hist, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
	}

	app := &App{hist: hist}

	ua := cfg.Sources.UserAgent
	strategies := []pages.Strategy{
		pages.RecordBibTeX{},
		doiStrategy(doibib.NewFetcher(client, ua)),
		pages.NewNeurIPS(client, ua),
		pages.NewHTMLScan(client, ua),
	}
	var llmClient *llm.Client
	if cfg.LLM.Enabled {
		llmClient = &llm.Client{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			HTTPClient: &http.Client{
				Timeout: cfg.LLM.Timeout,
			},
		}
		strategies = append(strategies, llmStrategy(llmClient, client, ua))
	}
	// The renderer runs last: it picks up pages where the plain fetch hit
	// an anti-automation challenge and hands the rendered text back to the
	// language model when one is configured.
	if cfg.Browser.Enabled {
		app.renderer = browser.New(cfg.Browser.WaitTimeout)
		strategies = append(strategies, renderStrategy(app.renderer, llmClient))
	}

	app.Resolver = New(Options{
		Sources:          sources,
		Chain:            pages.NewChain(w, strategies...),
		Enricher:         pmlr,
		Cache:            store,
		History:          hist,
		InterSourceDelay: cfg.Sources.InterSourceDelay,
		Out:              w,
	})
	return app, nil
}

// buildSources instantiates the configured engines in order.
func buildSources(cfg types.Config, client *http.Client) ([]source.Client, *source.PMLR, error) {
	ua := cfg.Sources.UserAgent
	pmlr := &source.PMLR{Client: client, UserAgent: ua}

	var sources []source.Client
	for _, name := range cfg.Sources.Engines {
		switch name {
		case "semantic_scholar":
			sources = append(sources, &source.SemanticScholar{
				Client:    client,
				UserAgent: ua,
				APIKey:    cfg.Sources.SemanticScholarAPIKey,
			})
		case "dblp":
			sources = append(sources, &source.DBLP{Client: client, UserAgent: ua})
		case "crossref":
			sources = append(sources, &source.Crossref{Client: client, UserAgent: ua})
		case "google_scholar":
			sources = append(sources, source.NewScholar(client, ua))
		case "pmlr":
			sources = append(sources, pmlr)
		default:
			return nil, nil, fmt.Errorf("unknown source engine: %q", name)
		}
	}
	if len(sources) == 0 {
		return nil, nil, fmt.Errorf("no source engines configured")
	}
	return sources, pmlr, nil
}

// doiStrategy resolves the record's DOI to BibTeX and reads the pages
// field out of it.
func doiStrategy(f *doibib.Fetcher) pages.Strategy {
	return pages.Func{Label: "doi2bib", Fn: func(ctx context.Context, ref *types.PaperRef) (string, error) {
		doi := ref.DOI
		if doi == "" {
			doi = doibib.DOIFromURL(ref.BestURL())
		}
		if doi == "" {
			return "", nil
		}
		entry, err := f.BibTeX(ctx, doi)
		if err != nil {
			return "", err
		}
		if ref.BibTeX == "" {
			ref.BibTeX = entry
		}
		return pages.FromBibTeX(entry), nil
	}}
}

// renderStrategy loads the landing page in a headless browser, waits out
// any anti-automation challenge, and extracts pages from the rendered
// text: through the language model when one is configured, otherwise by
// scanning for page-range patterns. It covers pages that are empty or
// blocked without JavaScript.
func renderStrategy(r *browser.Renderer, c *llm.Client) pages.Strategy {
	return pages.Func{Label: "browser", Fn: func(ctx context.Context, ref *types.PaperRef) (string, error) {
		pageURL := landingURL(ref)
		if pageURL == "" || pages.IsProtected(pageURL) {
			return "", nil
		}
		text, err := r.Render(ctx, pageURL)
		if err != nil {
			return "", err
		}
		if c != nil {
			return c.ExtractPages(ctx, text, pageURL, ref.Title)
		}
		return pages.ScanText(text), nil
	}}
}

// llmStrategy hands the landing page text to the language model. A page
// that answers the plain fetch with an anti-automation challenge is
// reported as an error so the renderer fallback gets a turn.
func llmStrategy(c *llm.Client, httpClient *http.Client, ua string) pages.Strategy {
	return pages.Func{Label: "llm", Fn: func(ctx context.Context, ref *types.PaperRef) (string, error) {
		pageURL := landingURL(ref)
		if pageURL == "" || pages.IsProtected(pageURL) {
			return "", nil
		}
		text, err := pages.FetchText(ctx, httpClient, ua, pageURL)
		if err != nil {
			return "", err
		}
		if browser.IsChallenge(text) {
			return "", fmt.Errorf("%s answered with an anti-automation challenge", pageURL)
		}
		return c.ExtractPages(ctx, text, pageURL, ref.Title)
	}}
}

// landingURL picks the page a strategy should read. ACM DOIs map to
// dl.acm.org directly rather than through the doi.org redirect.
func landingURL(ref *types.PaperRef) string {
	if u := ref.BestURL(); u != "" {
		return u
	}
	if ref.DOI != "" {
		return doibib.LandingURL(ref.DOI)
	}
	return ""
}
