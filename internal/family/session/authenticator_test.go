package session

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"famcard/internal/family/ports"
	"famcard/internal/family/ports/mocks"
	dErrors "famcard/pkg/domain-errors"
)

type AuthenticatorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	backend *mocks.MockBackend
	now     time.Time
	creds   ports.Credentials
}

func TestAuthenticatorSuite(t *testing.T) {
	suite.Run(t, new(AuthenticatorSuite))
}

func (s *AuthenticatorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.backend = mocks.NewMockBackend(s.ctrl)
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.creds = ports.Credentials{Username: "operator", Password: "secret"}
}

func (s *AuthenticatorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthenticatorSuite) newAuthenticator(opts ...Option) *Authenticator {
	opts = append([]Option{WithClock(func() time.Time { return s.now })}, opts...)
	a, err := New(s.backend, opts...)
	s.Require().NoError(err)
	return a
}

func (s *AuthenticatorSuite) signedToken(claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	s.Require().NoError(err)
	return token
}

func retryPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

// =============================================================================
// Construction
// =============================================================================

func (s *AuthenticatorSuite) TestNewRequiresBackend() {
	_, err := New(nil)
	s.Require().Error(err)
}

// =============================================================================
// Session establishment
// =============================================================================

func (s *AuthenticatorSuite) TestAuthenticate() {
	ctx := context.Background()

	s.Run("jwt claims fill expiry and subject", func() {
		exp := s.now.Add(time.Hour).Truncate(time.Second)
		token := s.signedToken(jwt.RegisteredClaims{Subject: "user-9", ExpiresAt: jwt.NewNumericDate(exp)})
		s.backend.EXPECT().Login(ctx, s.creds).Return(&ports.LoginResult{AccessToken: token}, nil)

		sess, err := s.newAuthenticator().Authenticate(ctx, s.creds)
		s.Require().NoError(err)
		s.Equal(token, sess.Token)
		s.Equal("user-9", sess.UserID)
		s.True(exp.Equal(sess.ExpiresAt))
	})

	s.Run("login user id wins over subject", func() {
		token := s.signedToken(jwt.RegisteredClaims{Subject: "user-9"})
		s.backend.EXPECT().Login(ctx, s.creds).Return(&ports.LoginResult{
			AccessToken: token,
			User:        ports.LoginUser{UserID: "42"},
		}, nil)

		sess, err := s.newAuthenticator().Authenticate(ctx, s.creds)
		s.Require().NoError(err)
		s.Equal("42", sess.UserID)
		s.True(sess.ExpiresAt.IsZero())
	})

	s.Run("opaque token is accepted", func() {
		s.backend.EXPECT().Login(ctx, s.creds).Return(&ports.LoginResult{AccessToken: "opaque"}, nil)

		sess, err := s.newAuthenticator().Authenticate(ctx, s.creds)
		s.Require().NoError(err)
		s.Equal("opaque", sess.Token)
	})

	s.Run("empty access token is an auth error", func() {
		s.backend.EXPECT().Login(ctx, s.creds).Return(&ports.LoginResult{}, nil)

		_, err := s.newAuthenticator().Authenticate(ctx, s.creds)
		s.True(dErrors.HasCode(err, dErrors.CodeAuth))
	})

	s.Run("expired token is an auth error", func() {
		token := s.signedToken(jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(s.now.Add(-time.Minute))})
		s.backend.EXPECT().Login(ctx, s.creds).Return(&ports.LoginResult{AccessToken: token}, nil)

		_, err := s.newAuthenticator().Authenticate(ctx, s.creds)
		s.True(dErrors.HasCode(err, dErrors.CodeAuth))
	})
}

// =============================================================================
// Retry policy
// =============================================================================

func (s *AuthenticatorSuite) TestRetryPolicy() {
	ctx := context.Background()
	unreachable := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	s.Run("default policy makes one attempt", func() {
		s.backend.EXPECT().Login(ctx, s.creds).Return(nil, unreachable).Times(1)

		_, err := s.newAuthenticator().Authenticate(ctx, s.creds)
		s.True(dErrors.HasCode(err, dErrors.CodeTransport))
	})

	s.Run("transport failures are retried up to the limit", func() {
		s.backend.EXPECT().Login(ctx, s.creds).Return(nil, unreachable).Times(3)

		_, err := s.newAuthenticator(WithRetryPolicy(retryPolicy(3))).Authenticate(ctx, s.creds)
		s.True(dErrors.HasCode(err, dErrors.CodeTransport))
	})

	s.Run("recovers after a transient failure", func() {
		gomock.InOrder(
			s.backend.EXPECT().Login(ctx, s.creds).Return(nil, unreachable),
			s.backend.EXPECT().Login(ctx, s.creds).Return(&ports.LoginResult{AccessToken: "opaque"}, nil),
		)

		sess, err := s.newAuthenticator(WithRetryPolicy(retryPolicy(3))).Authenticate(ctx, s.creds)
		s.Require().NoError(err)
		s.Equal("opaque", sess.Token)
	})

	s.Run("auth errors are never retried", func() {
		s.backend.EXPECT().Login(ctx, s.creds).
			Return(nil, dErrors.New(dErrors.CodeAuth, "credentials rejected")).
			Times(1)

		_, err := s.newAuthenticator(WithRetryPolicy(retryPolicy(5))).Authenticate(ctx, s.creds)
		s.True(dErrors.HasCode(err, dErrors.CodeAuth))
	})

	s.Run("cancelled context stops retrying", func() {
		cctx, cancel := context.WithCancel(ctx)
		s.backend.EXPECT().Login(cctx, s.creds).DoAndReturn(
			func(context.Context, ports.Credentials) (*ports.LoginResult, error) {
				cancel()
				return nil, unreachable
			}).Times(1)

		_, err := s.newAuthenticator(WithRetryPolicy(retryPolicy(5))).Authenticate(cctx, s.creds)
		s.True(dErrors.HasCode(err, dErrors.CodeTransport))
	})
}
