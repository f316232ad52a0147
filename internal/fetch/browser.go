// Package fetch - browser.go renders profile pages in headless Chrome.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// BrowserOptions configures headless rendering.
type BrowserOptions struct {
	// Timeout bounds opening the page and each snapshot separately.
	Timeout time.Duration
	// SessionCookie is injected before navigation so authenticated sections render.
	SessionCookie string
	// ScrollPasses scrolls to the bottom this many times to trigger lazily rendered sections.
	ScrollPasses int
	// Settle is how long to wait after load and after each scroll.
	Settle  time.Duration
	Verbose bool
}

// DefaultBrowserOptions returns sensible defaults for rendering a profile.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Timeout:      60 * time.Second,
		ScrollPasses: 3,
		Settle:       1500 * time.Millisecond,
	}
}

// BrowserSession keeps one rendered page open so it can be snapshotted repeatedly
// while sections load.
type BrowserSession struct {
	ctx    context.Context
	cancel context.CancelFunc
	url    string
	opts   BrowserOptions
}

// OpenBrowser starts headless Chrome and navigates to urlStr.
// Requires Chrome/Chromium to be installed on the system.
func OpenBrowser(ctx context.Context, urlStr string, opts BrowserOptions) (*BrowserSession, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultBrowserOptions().Timeout
	}
	if opts.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", urlStr)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	session := &BrowserSession{
		ctx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
		url:  urlStr,
		opts: opts,
	}

	// The first Run launches the browser and ties it to browserCtx, so it must not carry the timeout.
	if err := chromedp.Run(browserCtx, network.Enable()); err != nil {
		session.Close()
		return nil, &Error{URL: urlStr, Message: "failed to start browser", Cause: err}
	}

	openCtx, cancel := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	err := chromedp.Run(openCtx,
		setSessionCookie(urlStr, opts.SessionCookie),
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(opts.Settle),
	)
	if err != nil {
		session.Close()
		return nil, &Error{URL: urlStr, Message: "browser navigation failed", Cause: err}
	}

	return session, nil
}

// Snapshot scrolls the page to load lazy sections and returns the current DOM.
func (s *BrowserSession) Snapshot(ctx context.Context) (*Result, error) {
	snapCtx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()

	// Honor the caller's cancellation as well as the session's own lifetime.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html, location string
	err := chromedp.Run(snapCtx,
		scrollToBottom(s.opts.ScrollPasses, s.opts.Settle),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: s.url, Message: "browser snapshot failed", Cause: err}
	}

	if s.opts.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes (location %s)", len(html), location)
	}
	if location == "" {
		location = s.url
	}
	return &Result{URL: location, HTML: html, ContentType: "text/html", StatusCode: 200}, nil
}

// Close shuts the browser down.
func (s *BrowserSession) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// WithBrowser renders a page once and returns the rendered HTML together with
// the final page location.
func WithBrowser(ctx context.Context, urlStr string, opts BrowserOptions) (*Result, error) {
	session, err := OpenBrowser(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	return session.Snapshot(ctx)
}

func setSessionCookie(urlStr, value string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		platform := DetectPlatform(urlStr)
		name := SessionCookieName(platform)
		if value == "" || name == "" {
			return nil
		}
		err := network.SetCookie(name, value).
			WithDomain(CookieDomain(platform)).
			WithPath("/").
			WithSecure(true).
			WithHTTPOnly(true).
			Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to set session cookie: %w", err)
		}
		return nil
	})
}

// scrollToBottom scrolls repeatedly so below-the-fold sections render before capture.
func scrollToBottom(passes int, settle time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for i := 0; i < passes; i++ {
			if err := chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil).Do(ctx); err != nil {
				return err
			}
			if err := chromedp.Sleep(settle).Do(ctx); err != nil {
				return err
			}
		}
		return chromedp.Evaluate(`window.scrollTo(0, 0)`, nil).Do(ctx)
	})
}
