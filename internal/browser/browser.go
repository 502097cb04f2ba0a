// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browser renders JavaScript-heavy paper pages with a headless
// Chrome instance. It exists for the handful of publishers whose pages
// are empty without script execution or sit behind a bot check.
package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// challengeMarkers appear in interstitial pages while a bot check runs.
var challengeMarkers = []string{
	"just a moment",
	"checking your browser",
	"verifying you are human",
}

// Renderer owns a headless Chrome session. The browser process starts
// on first use and lives until Close; rendering several pages in one
// batch reuses it.
type Renderer struct {
	waitTimeout time.Duration

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancel      context.CancelFunc
}

// New builds a renderer. waitTimeout bounds how long Render waits for a
// challenge interstitial to clear.
func New(waitTimeout time.Duration) *Renderer {
	return &Renderer{waitTimeout: waitTimeout}
}

// session starts the browser on first call.
func (r *Renderer) session() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCtx != nil {
		return r.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	r.browserCtx, r.cancel = chromedp.NewContext(r.allocCtx)

	// Force the browser process to start now so a missing Chrome binary
	// surfaces here instead of mid-render.
	if err := chromedp.Run(r.browserCtx); err != nil {
		r.closeLocked()
		return nil, fmt.Errorf("starting headless browser: %w", err)
	}
	return r.browserCtx, nil
}

// Render loads pageURL, waits out any bot-check interstitial, and
// returns the rendered page text.
func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	browserCtx, err := r.session()
	if err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		tabCtx, cancelDeadline = context.WithDeadline(tabCtx, deadline)
		defer cancelDeadline()
	}

	var text string
	err = chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", pageURL, err)
	}

	// Poll until the challenge clears or the wait budget runs out.
	deadline := time.Now().Add(r.waitTimeout)
	for IsChallenge(text) && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
		}
		if err := chromedp.Run(tabCtx, chromedp.Text("body", &text, chromedp.ByQuery)); err != nil {
			return "", fmt.Errorf("rendering %s: %w", pageURL, err)
		}
	}
	if IsChallenge(text) {
		return "", fmt.Errorf("challenge page did not clear for %s", pageURL)
	}
	return text, nil
}

// Close shuts the browser process down. Safe to call without a prior
// Render.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked()
}

func (r *Renderer) closeLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCancel = nil
	}
	r.browserCtx = nil
	r.allocCtx = nil
}

// IsChallenge reports whether page text looks like an anti-automation
// interstitial rather than real content.
func IsChallenge(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range challengeMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
