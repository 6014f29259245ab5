// Package lookup fetches the primary household record of an IIN.
package lookup

import (
	"context"
	"errors"
	"log/slog"

	"famcard/internal/family/domain"
	"famcard/internal/family/models"
	"famcard/internal/family/ports"
	dErrors "famcard/pkg/domain-errors"
)

// Result is the raw household record with its members in display order.
type Result struct {
	Info    *ports.FamilyInfo
	Members []models.Member
}

// Quality returns the household metrics. Find guarantees it is non-nil.
func (r *Result) Quality() ports.FamilyQuality {
	return r.Info.Family.FamilyQuality
}

type Lookup struct {
	backend     ports.Backend
	eligibility bool
	logger      *slog.Logger
}

type Option func(*Lookup)

// WithEligibilityCheck enables the cohort membership check that some
// deployments require.
func WithEligibilityCheck(enabled bool) Option {
	return func(l *Lookup) {
		l.eligibility = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Lookup) {
		l.logger = logger
	}
}

func New(backend ports.Backend, opts ...Option) (*Lookup, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	l := &Lookup{backend: backend, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Find returns the household of iin. It fails with not_found when the backend
// has no household and with eligibility when the cohort check is enabled and
// reports no match.
func (l *Lookup) Find(ctx context.Context, sess ports.Session, iin domain.IIN) (*Result, error) {
	info, err := l.backend.FamilyInfo(ctx, sess, iin.String())
	if err != nil {
		return nil, err
	}
	if info == nil || info.Family == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "family record is null")
	}

	if l.eligibility {
		total, err := l.backend.CohortTotal(ctx, sess, iin.String())
		if err != nil {
			return nil, err
		}
		if total == 0 {
			return nil, dErrors.New(dErrors.CodeEligibility, "iin is outside the cohort")
		}
	}

	members := make([]models.Member, 0, len(info.FamilyMemberList))
	for _, m := range info.FamilyMemberList {
		members = append(members, models.NewMember(m.IIN, m.FullName))
	}
	ordered := models.OrderMembers(members, iin.String())
	if len(ordered) > 0 && ordered[0].IIN != iin.String() {
		l.logger.WarnContext(ctx, "queried iin missing from member list",
			"members", len(ordered),
		)
	}

	return &Result{Info: info, Members: ordered}, nil
}
