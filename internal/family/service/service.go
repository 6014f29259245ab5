// Package service runs the family lookup pipeline: validate the IIN, serve
// from cache when possible, otherwise authenticate, fetch the household,
// enrich its members, decode risks and assemble the profile.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"famcard/internal/audit"
	"famcard/internal/family/aggregate"
	"famcard/internal/family/enrichment"
	"famcard/internal/family/lookup"
	"famcard/internal/family/metrics"
	"famcard/internal/family/models"
	"famcard/internal/family/ports"
	"famcard/internal/family/session"
	"famcard/pkg/platform/circuit"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultAuditTimeout = 5 * time.Second
)

// FamilyCache stores assembled profiles by IIN. Find returns
// sentinel.ErrNotFound on a miss.
type FamilyCache interface {
	Find(ctx context.Context, iin string) (*models.Family, error)
	Save(ctx context.Context, iin string, family *models.Family) error
	Delete(ctx context.Context, iin string) error
}

// Config carries the pipeline settings.
type Config struct {
	Credentials       ports.Credentials
	Timeout           time.Duration
	EligibilityCheck  bool
	EnrichConcurrency int
	RetryPolicy       session.RetryPolicy
	NeedASP           aggregate.NeedASPPredicate
}

// Service runs lookups. It is safe for concurrent use; each lookup owns its
// session and shares only the cache.
type Service struct {
	creds      ports.Credentials
	timeout    time.Duration
	auth       *session.Authenticator
	finder     *lookup.Lookup
	enricher   *enrichment.Enricher
	aggregator *aggregate.Aggregator

	cache     FamilyCache
	publisher audit.Publisher
	breaker   *circuit.Breaker
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	logger    *slog.Logger

	auditTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCache enables result caching.
func WithCache(c FamilyCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithPublisher enables lookup auditing.
func WithPublisher(p audit.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithBreaker guards the backend with a circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

// WithAuditTimeout bounds how long a lookup waits for its audit event to be
// accepted by the publisher.
func WithAuditTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.auditTimeout = d
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New wires the pipeline over backend.
func New(backend ports.Backend, cfg Config, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}

	s := &Service{
		creds:   cfg.Credentials,
		timeout: cfg.Timeout,
		tracer:  otel.Tracer("famcard/internal/family/service"),
		logger:  slog.Default(),

		auditTimeout: defaultAuditTimeout,
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	for _, opt := range opts {
		opt(s)
	}

	policy := cfg.RetryPolicy
	if policy.MaxAttempts == 0 {
		policy = session.DefaultRetryPolicy()
	}

	var err error
	s.auth, err = session.New(backend,
		session.WithRetryPolicy(policy),
		session.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	s.finder, err = lookup.New(backend,
		lookup.WithEligibilityCheck(cfg.EligibilityCheck),
		lookup.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	s.enricher, err = enrichment.New(backend,
		enrichment.WithConcurrency(cfg.EnrichConcurrency),
		enrichment.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	s.aggregator = aggregate.New(aggregate.WithNeedASP(cfg.NeedASP))

	return s, nil
}
