// Package watch re-runs profile extraction on an interval until lazily rendered
// sections have settled.
package watch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jonathan/profile-agent/internal/types"
)

// ErrNotStable is returned with the last profile when attempts run out before two
// consecutive extractions agreed.
var ErrNotStable = errors.New("profile did not stabilize")

// DefaultInterval is the delay between extraction attempts.
const DefaultInterval = 2 * time.Second

// DefaultMaxAttempts bounds the number of extraction attempts.
const DefaultMaxAttempts = 10

// ExtractFunc produces one profile from the current state of the page.
type ExtractFunc func(ctx context.Context) (types.CandidateProfile, error)

// Options configures polling.
type Options struct {
	Interval    time.Duration
	MaxAttempts int
	// OnAttempt, if set, is called after every successful extraction.
	OnAttempt func(attempt int, profile types.CandidateProfile)
}

// Poll calls extract until it returns the same named profile twice in a row.
// Extraction errors stop polling immediately.
func Poll(ctx context.Context, extract ExtractFunc, opts Options) (types.CandidateProfile, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var last types.CandidateProfile
	haveLast := false

	for attempt := 1; ; attempt++ {
		profile, err := extract(ctx)
		if err != nil {
			return last, fmt.Errorf("extraction attempt %d failed: %w", attempt, err)
		}
		if opts.OnAttempt != nil {
			opts.OnAttempt(attempt, profile)
		}

		if haveLast && profile.HasName() && reflect.DeepEqual(last, profile) {
			return profile, nil
		}
		last, haveLast = profile, true

		if attempt >= opts.MaxAttempts {
			return last, fmt.Errorf("%w after %d attempts", ErrNotStable, attempt)
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
}
