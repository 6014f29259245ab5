// Package enrichment counts household social statuses by querying every
// member's person record concurrently.
package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"famcard/internal/family/models"
	"famcard/internal/family/ports"
	strutil "famcard/pkg/platform/strings"
)

type Enricher struct {
	backend ports.Backend
	limit   int
	logger  *slog.Logger
}

type Option func(*Enricher)

// WithConcurrency caps in-flight person requests. Zero or less means no cap.
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		e.limit = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

func New(backend ports.Backend, opts ...Option) (*Enricher, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	e := &Enricher{backend: backend, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Enrich fetches all members' person records and tallies their catalog
// statuses. The first failure cancels the remaining requests and is returned;
// partial counts are discarded.
func (e *Enricher) Enrich(ctx context.Context, sess ports.Session, members []models.Member) (models.SocialStatusCounts, error) {
	counts := models.NewSocialStatusCounts()
	if len(members) == 0 {
		return counts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	var mu sync.Mutex
	for _, m := range members {
		g.Go(func() error {
			details, err := e.backend.PersonDetails(gctx, sess, m.IIN)
			if err != nil {
				return err
			}
			// A member counts once per status however many records repeat it.
			names := strutil.DedupeAndTrim(details.StatusNames())

			mu.Lock()
			defer mu.Unlock()
			for _, name := range names {
				if !counts.Increment(name) {
					e.logger.DebugContext(ctx, "ignoring status outside catalog", "status", name)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
