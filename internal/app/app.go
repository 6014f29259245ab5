// Package app assembles the family lookup service from configuration. Both
// the HTTP server and the lookup CLI start from here.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"famcard/internal/audit"
	"famcard/internal/audit/kafka"
	"famcard/internal/family/aggregate"
	"famcard/internal/family/backend"
	"famcard/internal/family/metrics"
	"famcard/internal/family/ports"
	"famcard/internal/family/service"
	"famcard/internal/family/session"
	"famcard/internal/family/snapshot"
	"famcard/internal/family/store"
	"famcard/internal/platform/config"
	"famcard/internal/platform/postgres"
	"famcard/internal/platform/redis"
	"famcard/pkg/platform/circuit"
)

// App owns the service and every resource opened to build it.
type App struct {
	Service *service.Service
	Metrics *metrics.Metrics

	closers []func() error
	logger  *slog.Logger
}

type Option func(*options)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers pipeline metrics somewhere other than the default
// registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// Build opens the data source, cache, and audit sink named by cfg and wires
// the pipeline over them. On error every resource opened so far is closed.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (_ *App, err error) {
	o := options{logger: slog.Default(), registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{logger: o.logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	source, err := a.dataSource(cfg.Backend)
	if err != nil {
		return nil, err
	}

	needASP, err := aggregate.ParseNeedASPRule(cfg.Pipeline.NeedASPRule)
	if err != nil {
		return nil, err
	}

	svcOpts := []service.Option{
		service.WithLogger(o.logger),
		service.WithBreaker(circuit.New("backend",
			circuit.WithFailureThreshold(cfg.Pipeline.BreakerFailures),
			circuit.WithSuccessThreshold(1),
			circuit.WithOpenTimeout(cfg.Pipeline.BreakerOpenFor),
		)),
	}

	a.Metrics = metrics.NewWithRegisterer(o.registerer)
	svcOpts = append(svcOpts, service.WithMetrics(a.Metrics))

	cache, err := a.cache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		svcOpts = append(svcOpts, service.WithCache(cache))
	}

	publisher, err := a.publisher(ctx, cfg.Audit)
	if err != nil {
		return nil, err
	}
	svcOpts = append(svcOpts, service.WithPublisher(publisher))

	policy := session.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.Pipeline.AuthRetryAttempts
	if cfg.Pipeline.AuthRetryInterval > 0 {
		policy.InitialInterval = cfg.Pipeline.AuthRetryInterval
	}

	a.Service, err = service.New(source, service.Config{
		Credentials: ports.Credentials{
			Username: cfg.Backend.Username,
			Password: cfg.Backend.Password,
		},
		Timeout:           cfg.Pipeline.Timeout,
		EligibilityCheck:  cfg.Pipeline.EligibilityCheck,
		EnrichConcurrency: cfg.Pipeline.EnrichConcurrency,
		RetryPolicy:       policy,
		NeedASP:           needASP,
	}, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("build service: %w", err)
	}
	return a, nil
}

func (a *App) dataSource(cfg config.Backend) (ports.Backend, error) {
	if cfg.SnapshotDir != "" {
		a.logger.Info("using recorded snapshots", "dir", cfg.SnapshotDir)
		source, err := snapshot.Open(cfg.SnapshotDir)
		if err != nil {
			return nil, err
		}
		return source, nil
	}
	client, err := backend.New(cfg.URL,
		backend.WithTimeout(cfg.HTTPTimeout),
		backend.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (a *App) cache(ctx context.Context, cfg config.Cache) (service.FamilyCache, error) {
	switch strings.ToLower(cfg.Backend) {
	case config.CacheNone:
		return nil, nil
	case config.CacheRedis:
		client, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return store.NewRedisCache(client.Client, cfg.TTL), nil
	case config.CachePostgres:
		pool, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		cache, err := store.NewPostgresCache(ctx, pool, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return cache, nil
	default:
		return store.NewInMemoryCache(cfg.TTL), nil
	}
}

func (a *App) publisher(ctx context.Context, cfg config.Audit) (audit.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewLogPublisher(a.logger), nil
	}
	p, err := kafka.New(cfg.KafkaBrokers, kafka.WithTopic(cfg.Topic), kafka.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, p.Close)
	if err := p.EnsureTopic(ctx, 1, 1); err != nil {
		return nil, err
	}
	return p, nil
}

// Close releases resources in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
