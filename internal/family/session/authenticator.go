// Package session establishes the backend session for one pipeline run.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-jwt/jwt/v5"

	"famcard/internal/family/ports"
	dErrors "famcard/pkg/domain-errors"
)

// RetryPolicy bounds login retries. Only transport failures are retried;
// credential rejections are permanent.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy makes a single attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     1,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
}

// Authenticator logs in against the backend.
type Authenticator struct {
	backend ports.Backend
	policy  RetryPolicy
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Authenticator)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(a *Authenticator) {
		a.policy = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// WithClock overrides the time source used to reject expired tokens.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

func New(backend ports.Backend, opts ...Option) (*Authenticator, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	a := &Authenticator{
		backend: backend,
		policy:  DefaultRetryPolicy(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Authenticate exchanges credentials for a session. The session is never
// refreshed; a pipeline run that outlives the token fails with an auth error.
func (a *Authenticator) Authenticate(ctx context.Context, creds ports.Credentials) (ports.Session, error) {
	attempt := 0
	login := func() (*ports.LoginResult, error) {
		attempt++
		res, err := a.backend.Login(ctx, creds)
		if err != nil {
			ce := dErrors.Classify(err)
			if !ce.Retryable() {
				return nil, backoff.Permanent(ce)
			}
			return nil, ce
		}
		return res, nil
	}
	notify := func(err error, wait time.Duration) {
		a.logger.WarnContext(ctx, "login failed, retrying",
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	}

	res, err := backoff.RetryNotifyWithData(login, a.policy.backOff(ctx), notify)
	if err != nil {
		return ports.Session{}, dErrors.Classify(err)
	}
	if res == nil || res.AccessToken == "" {
		return ports.Session{}, dErrors.New(dErrors.CodeAuth, "login returned no access token")
	}

	sess := ports.Session{
		Token:  res.AccessToken,
		UserID: string(res.User.UserID),
	}
	claims, err := parseClaims(res.AccessToken)
	if err != nil {
		// Opaque tokens are accepted as is.
		a.logger.DebugContext(ctx, "access token is not a JWT", "error", err)
		return sess, nil
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
		if !sess.ExpiresAt.After(a.now()) {
			return ports.Session{}, dErrors.New(dErrors.CodeAuth, "login returned an expired token")
		}
	}
	if sess.UserID == "" {
		sess.UserID = claims.Subject
	}
	return sess, nil
}

// parseClaims reads the token claims without verifying the signature. The
// backend owns the signing key; the claims are only informational here.
func parseClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
