// Package audit records family lookups. Publishing is best effort: a failed
// publish is logged by the caller and never fails the lookup.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Publisher delivers audit events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to a structured logger. It is the sink used
// when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	event = event.Normalize(time.Now())
	p.logger.InfoContext(ctx, "audit",
		"event_id", event.ID.String(),
		"action", event.Action,
		"subject_id_hash", event.SubjectIDHash,
		"request_id", event.RequestID,
		"outcome", event.Outcome,
		"source", event.Source,
		"member_count", event.MemberCount,
		"duration_ms", event.DurationMs,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
