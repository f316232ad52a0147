package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/profile-agent/internal/config"
	"github.com/jonathan/profile-agent/internal/extract"
	"github.com/jonathan/profile-agent/internal/fetch"
	"github.com/jonathan/profile-agent/internal/schemas"
	"github.com/jonathan/profile-agent/internal/types"
	"github.com/jonathan/profile-agent/internal/watch"
	"golang.org/x/sync/errgroup"
)

// pageInput is one page to extract: a saved HTML file or a live URL.
type pageInput struct {
	Path string
	URL  string
}

func (in pageInput) String() string {
	if in.URL != "" {
		return in.URL
	}
	return in.Path
}

// collectInputs turns --html and --url values into inputs, falling back to the
// single html/url entry of the resolved config when no flag was given.
func collectInputs(htmlFiles, urls []string, cfg config.Config) ([]pageInput, error) {
	if len(htmlFiles) == 0 && len(urls) == 0 {
		if cfg.HTML != "" {
			htmlFiles = []string{cfg.HTML}
		}
		if cfg.URL != "" {
			urls = []string{cfg.URL}
		}
	}
	if len(htmlFiles) == 0 && len(urls) == 0 {
		return nil, fmt.Errorf("must provide --html or --url")
	}
	if cfg.PageURL != "" && len(htmlFiles) != 1 {
		return nil, fmt.Errorf("--page-url applies to exactly one --html file")
	}

	inputs := make([]pageInput, 0, len(htmlFiles)+len(urls))
	for _, path := range htmlFiles {
		inputs = append(inputs, pageInput{Path: path})
	}
	for _, u := range urls {
		inputs = append(inputs, pageInput{URL: u})
	}
	return inputs, nil
}

// pipeline acquires a page, runs the extractor on it and checks the result.
type pipeline struct {
	cfg       config.Config
	selectors extract.Selectors
	throttle  *fetch.Throttle
	watch     bool
}

func newPipeline(cfg config.Config, watchPage bool) (*pipeline, error) {
	sel, err := config.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}
	if watchPage && !cfg.UseBrowser {
		return nil, fmt.Errorf("--watch requires --browser")
	}
	return &pipeline{
		cfg:       cfg,
		selectors: sel,
		throttle:  fetch.NewThrottle(cfg.RequestsPerMinute, max(cfg.Concurrency, 1)),
		watch:     watchPage,
	}, nil
}

// run produces a checked profile for one input.
func (p *pipeline) run(ctx context.Context, in pageInput) (types.CandidateProfile, error) {
	var (
		profile types.CandidateProfile
		pageURL string
		err     error
	)

	if in.URL != "" {
		if err := p.throttle.Wait(ctx, in.URL); err != nil {
			return types.CandidateProfile{}, err
		}
	}

	switch {
	case in.Path != "":
		profile, pageURL, err = p.fromFile(in.Path)
	case p.cfg.UseBrowser && p.watch:
		profile, pageURL, err = p.watchBrowser(ctx, in.URL)
	case p.cfg.UseBrowser:
		profile, pageURL, err = p.fromBrowser(ctx, in.URL)
	default:
		profile, pageURL, err = p.fromHTTP(ctx, in.URL)
	}
	if err != nil {
		return types.CandidateProfile{}, err
	}

	if err := extract.RequireName(&profile, pageURL, p.cfg.HostDomain); err != nil {
		return profile, err
	}
	if err := schemas.ValidateProfile(profile); err != nil {
		return profile, fmt.Errorf("extracted profile does not validate against schema: %w", err)
	}
	return profile, nil
}

func (p *pipeline) fromFile(path string) (types.CandidateProfile, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.CandidateProfile{}, "", fmt.Errorf("failed to read HTML file: %w", err)
	}
	defer func() { _ = f.Close() }()

	pageURL := p.cfg.PageURL
	if pageURL == "" {
		pageURL = fileURL(path)
	}
	if p.cfg.Verbose {
		log.Printf("[VERBOSE] Extracting %s as %s", path, pageURL)
	}

	profile, err := extract.ParseHTML(f, pageURL, p.selectors)
	return profile, pageURL, err
}

func (p *pipeline) fromHTTP(ctx context.Context, urlStr string) (types.CandidateProfile, string, error) {
	p.warnIfNotProfile(urlStr)

	opts := fetch.DefaultOptions()
	opts.Timeout = p.cfg.Timeout()
	opts.SessionCookie = p.cfg.SessionCookie

	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return types.CandidateProfile{}, "", err
	}
	if fetch.NeedsBrowser(result.HTML) {
		log.Printf("[FETCH] %s does not look rendered; retry with --browser", result.URL)
	}

	profile, err := extract.ParseHTML(strings.NewReader(result.HTML), result.URL, p.selectors)
	return profile, result.URL, err
}

func (p *pipeline) fromBrowser(ctx context.Context, urlStr string) (types.CandidateProfile, string, error) {
	p.warnIfNotProfile(urlStr)

	result, err := fetch.WithBrowser(ctx, urlStr, p.browserOptions())
	if err != nil {
		return types.CandidateProfile{}, "", err
	}

	profile, err := extract.ParseHTML(strings.NewReader(result.HTML), result.URL, p.selectors)
	return profile, result.URL, err
}

// watchBrowser keeps the page open and re-extracts until the profile stops changing.
func (p *pipeline) watchBrowser(ctx context.Context, urlStr string) (types.CandidateProfile, string, error) {
	p.warnIfNotProfile(urlStr)

	session, err := fetch.OpenBrowser(ctx, urlStr, p.browserOptions())
	if err != nil {
		return types.CandidateProfile{}, "", err
	}
	defer session.Close()

	pageURL := urlStr
	extractOnce := func(ctx context.Context) (types.CandidateProfile, error) {
		result, err := session.Snapshot(ctx)
		if err != nil {
			return types.CandidateProfile{}, err
		}
		pageURL = result.URL
		return extract.ParseHTML(strings.NewReader(result.HTML), result.URL, p.selectors)
	}

	profile, err := watch.Poll(ctx, extractOnce, watch.Options{
		Interval:    p.cfg.Interval(),
		MaxAttempts: p.cfg.WatchAttempts,
		OnAttempt: func(attempt int, profile types.CandidateProfile) {
			if p.cfg.Verbose {
				log.Printf("[WATCH] Attempt %d: %q, %d experiences, %d skills",
					attempt, profile.FullName(), len(profile.Experiences), len(profile.Skills))
			}
		},
	})
	if errors.Is(err, watch.ErrNotStable) {
		// The last snapshot is still usable.
		log.Printf("[WATCH] %s: %v", urlStr, err)
		err = nil
	}
	return profile, pageURL, err
}

func (p *pipeline) browserOptions() fetch.BrowserOptions {
	opts := fetch.DefaultBrowserOptions()
	if p.cfg.TimeoutSeconds > 0 {
		opts.Timeout = p.cfg.Timeout()
	}
	opts.SessionCookie = p.cfg.SessionCookie
	opts.Verbose = p.cfg.Verbose
	return opts
}

func (p *pipeline) warnIfNotProfile(urlStr string) {
	if p.cfg.Verbose && !fetch.IsProfileURL(urlStr) {
		log.Printf("[VERBOSE] %s is not a recognized profile URL", urlStr)
	}
}

// fileURL gives a saved page a file:// address so the profile still carries a URL.
func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}

// extractAll runs the pipeline over inputs with at most limit in flight. Profiles
// come back in input order; failed inputs are reported in the map instead.
func extractAll(ctx context.Context, inputs []pageInput, limit int, run func(context.Context, pageInput) (types.CandidateProfile, error)) ([]types.CandidateProfile, map[string]error) {
	if limit <= 0 {
		limit = 1
	}

	results := make([]*types.CandidateProfile, len(inputs))
	failures := make(map[string]error)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(limit)
	for i, in := range inputs {
		g.Go(func() error {
			profile, err := run(ctx, in)
			if err != nil {
				mu.Lock()
				failures[in.String()] = err
				mu.Unlock()
				return nil
			}
			results[i] = &profile
			return nil
		})
	}
	_ = g.Wait()

	profiles := make([]types.CandidateProfile, 0, len(inputs))
	for _, r := range results {
		if r != nil {
			profiles = append(profiles, *r)
		}
	}
	return profiles, failures
}
