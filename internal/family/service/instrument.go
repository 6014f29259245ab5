package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"famcard/pkg/requestcontext"
)

// instrument runs one pipeline stage inside a span, observes its duration
// and logs it.
func (s *Service) instrument(ctx context.Context, stage string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "family."+stage)
	defer span.End()
	span.SetAttributes(attribute.String("famcard.stage", stage))

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	s.metrics.ObserveStage(stage, elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logger.DebugContext(ctx, "stage finished",
		"request_id", requestcontext.RequestID(ctx),
		"stage", stage,
		"duration_ms", elapsed.Milliseconds(),
		"failed", err != nil,
	)
	return err
}
