package service

import (
	"context"
	"errors"
	"time"

	"famcard/internal/audit"
	"famcard/internal/family/aggregate"
	"famcard/internal/family/domain"
	"famcard/internal/family/lookup"
	"famcard/internal/family/models"
	"famcard/internal/family/ports"
	"famcard/internal/family/risk"
	dErrors "famcard/pkg/domain-errors"
	"famcard/pkg/platform/sentinel"
	"famcard/pkg/requestcontext"
)

// Lookup returns the profile of the household that rawIIN belongs to. A
// malformed IIN fails before any I/O. Every error is a *domainerrors.Error.
func (s *Service) Lookup(ctx context.Context, rawIIN string) (*models.Family, error) {
	return s.lookup(ctx, rawIIN, false)
}

// Refresh is Lookup without the cache read; the fresh result replaces the
// cached one.
func (s *Service) Refresh(ctx context.Context, rawIIN string) (*models.Family, error) {
	return s.lookup(ctx, rawIIN, true)
}

func (s *Service) lookup(ctx context.Context, rawIIN string, refresh bool) (*models.Family, error) {
	start := time.Now()

	iin, err := domain.ParseIIN(rawIIN)
	if err != nil {
		s.metrics.IncrementOutcome(string(dErrors.CodeValidation))
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed iin")
	}

	family, source, err := s.resolve(ctx, iin, refresh)
	s.finish(ctx, iin, family, source, err, start)
	if err != nil {
		return nil, dErrors.Classify(err)
	}
	return family, nil
}

func (s *Service) resolve(ctx context.Context, iin domain.IIN, refresh bool) (*models.Family, string, error) {
	if s.cache != nil {
		if refresh {
			if err := s.cache.Delete(ctx, iin.String()); err != nil {
				s.logger.WarnContext(ctx, "cache delete failed",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
			}
		} else if family, ok := s.fromCache(ctx, iin); ok {
			return family, audit.SourceCache, nil
		}
	}

	if s.breaker != nil && !s.breaker.Allow() {
		s.metrics.RecordBreakerRejection()
		return nil, audit.SourceBackend, dErrors.New(dErrors.CodeTransport, "backend circuit open")
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	family, err := s.run(runCtx, iin)
	s.recordBreaker(ctx, err)
	if err != nil {
		return nil, audit.SourceBackend, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, iin.String(), family); err != nil {
			s.logger.WarnContext(ctx, "cache save failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
	}
	return family, audit.SourceBackend, nil
}

func (s *Service) fromCache(ctx context.Context, iin domain.IIN) (*models.Family, bool) {
	family, err := s.cache.Find(ctx, iin.String())
	if err == nil {
		s.metrics.RecordCacheHit()
		return family, true
	}
	s.metrics.RecordCacheMiss()
	if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	return nil, false
}

// run executes the backend stages under one deadline.
func (s *Service) run(ctx context.Context, iin domain.IIN) (*models.Family, error) {
	var sess ports.Session
	err := s.instrument(ctx, "authenticate", func(ctx context.Context) error {
		var err error
		sess, err = s.auth.Authenticate(ctx, s.creds)
		return err
	})
	if err != nil {
		return nil, err
	}

	var found *lookup.Result
	err = s.instrument(ctx, "lookup", func(ctx context.Context) error {
		var err error
		found, err = s.finder.Find(ctx, sess, iin)
		return err
	})
	if err != nil {
		return nil, err
	}

	var counts models.SocialStatusCounts
	err = s.instrument(ctx, "enrich", func(ctx context.Context) error {
		var err error
		counts, err = s.enricher.Enrich(ctx, sess, found.Members)
		return err
	})
	if err != nil {
		return nil, err
	}

	var risks models.RiskFlags
	err = s.instrument(ctx, "decode", func(context.Context) error {
		var err error
		risks, err = risk.Decode(found.Quality().RiskDetail)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDecode, "undecodable risk code")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var family *models.Family
	err = s.instrument(ctx, "aggregate", func(context.Context) error {
		var err error
		family, err = s.aggregator.Build(aggregate.Input{
			Quality:      found.Quality(),
			Address:      found.Info.AddressRu,
			Members:      found.Members,
			SocialStatus: counts,
			Risks:        risks,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return family, nil
}

// recordBreaker counts transport failures against the backend. Cancellation
// by the caller says nothing about backend health and is ignored.
func (s *Service) recordBreaker(ctx context.Context, err error) {
	if s.breaker == nil {
		return
	}
	if err != nil && ctx.Err() != nil {
		return
	}
	if err != nil && dErrors.CodeOf(dErrors.Classify(err)) == dErrors.CodeTransport {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.ErrorContext(ctx, "backend circuit opened",
				"breaker", s.breaker.Name(),
				"error", err,
			)
		}
		return
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "backend circuit closed", "breaker", s.breaker.Name())
	}
}

// finish records the outcome of a validated lookup: metrics, log line and
// audit event. Audit failures are logged only.
func (s *Service) finish(ctx context.Context, iin domain.IIN, family *models.Family, source string, err error, start time.Time) {
	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(dErrors.Classify(err)))
	}
	s.metrics.IncrementOutcome(outcome)
	s.metrics.ObserveLookupLatency(elapsed)

	requestID := requestcontext.RequestID(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "family lookup failed",
			"request_id", requestID,
			"outcome", outcome,
			"source", source,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
	} else {
		s.logger.InfoContext(ctx, "family lookup finished",
			"request_id", requestID,
			"source", source,
			"members", len(family.Members),
			"duration_ms", elapsed.Milliseconds(),
		)
	}

	if s.publisher == nil {
		return
	}
	event := audit.Event{
		Timestamp:     requestcontext.Now(ctx),
		Action:        audit.ActionFamilyLookup,
		SubjectIDHash: audit.HashSubject(iin.String()),
		RequestID:     requestID,
		ActorID:       s.creds.Username,
		Outcome:       outcome,
		Source:        source,
		DurationMs:    elapsed.Milliseconds(),
	}
	if family != nil {
		event.MemberCount = len(family.Members)
	}
	// Detached from the caller so a cancelled request is still audited, but
	// bounded so a stuck sink cannot hold the response.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.auditTimeout)
	defer cancel()
	if perr := s.publisher.Publish(auditCtx, event); perr != nil {
		s.logger.WarnContext(ctx, "audit publish failed",
			"request_id", requestID,
			"error", perr,
		)
	}
}
