package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"famcard/internal/family/domain"
	"famcard/internal/family/models"
	"famcard/internal/family/ports"
	"famcard/internal/family/ports/mocks"
	dErrors "famcard/pkg/domain-errors"
)

type LookupSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	backend *mocks.MockBackend
	sess    ports.Session
	iin     domain.IIN
}

func TestLookupSuite(t *testing.T) {
	suite.Run(t, new(LookupSuite))
}

func (s *LookupSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.backend = mocks.NewMockBackend(s.ctrl)
	s.sess = ports.Session{Token: "tok"}
	s.iin = domain.MustIIN("900101300123")
}

func (s *LookupSuite) TearDownTest() {
	s.ctrl.Finish()
}

func familyInfo(members ...ports.MemberRecord) *ports.FamilyInfo {
	return &ports.FamilyInfo{
		Family:           &ports.FamilyRecord{FamilyQuality: ports.FamilyQuality{CntMem: len(members)}},
		FamilyMemberList: members,
		AddressRu:        "г. Шымкент",
	}
}

func (s *LookupSuite) TestFind() {
	ctx := context.Background()

	s.Run("selected member comes first and names are normalized", func() {
		l, err := New(s.backend)
		s.Require().NoError(err)

		s.backend.EXPECT().FamilyInfo(ctx, s.sess, s.iin.String()).Return(familyInfo(
			ports.MemberRecord{IIN: "850505400111", FullName: "ПЕТРОВА АННА"},
			ports.MemberRecord{IIN: "900101300123", FullName: "ПЕТРОВ ИВАН"},
			ports.MemberRecord{IIN: "150505500222", FullName: "ПЕТРОВ ОЛЕГ"},
		), nil)

		res, err := l.Find(ctx, s.sess, s.iin)
		s.Require().NoError(err)
		s.Equal([]models.Member{
			{IIN: "900101300123", FullName: "Петров Иван"},
			{IIN: "850505400111", FullName: "Петрова Анна"},
			{IIN: "150505500222", FullName: "Петров Олег"},
		}, res.Members)
		s.Equal(3, res.Quality().CntMem)
	})

	s.Run("null family is not found", func() {
		l, err := New(s.backend, WithEligibilityCheck(true))
		s.Require().NoError(err)

		s.backend.EXPECT().FamilyInfo(ctx, s.sess, s.iin.String()).Return(&ports.FamilyInfo{}, nil)

		_, err = l.Find(ctx, s.sess, s.iin)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("backend errors pass through", func() {
		l, err := New(s.backend)
		s.Require().NoError(err)

		boom := dErrors.New(dErrors.CodeTransport, "down")
		s.backend.EXPECT().FamilyInfo(ctx, s.sess, s.iin.String()).Return(nil, boom)

		_, err = l.Find(ctx, s.sess, s.iin)
		s.ErrorIs(err, boom)
	})
}

func (s *LookupSuite) TestEligibility() {
	ctx := context.Background()
	member := ports.MemberRecord{IIN: "900101300123", FullName: "ПЕТРОВ ИВАН"}

	s.Run("disabled check makes no cohort call", func() {
		l, err := New(s.backend)
		s.Require().NoError(err)
		s.backend.EXPECT().FamilyInfo(ctx, s.sess, s.iin.String()).Return(familyInfo(member), nil)
		s.backend.EXPECT().CohortTotal(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err = l.Find(ctx, s.sess, s.iin)
		s.Require().NoError(err)
	})

	s.Run("zero total is an eligibility error", func() {
		l, err := New(s.backend, WithEligibilityCheck(true))
		s.Require().NoError(err)
		s.backend.EXPECT().FamilyInfo(ctx, s.sess, s.iin.String()).Return(familyInfo(member), nil)
		s.backend.EXPECT().CohortTotal(ctx, s.sess, s.iin.String()).Return(0, nil)

		_, err = l.Find(ctx, s.sess, s.iin)
		s.True(dErrors.HasCode(err, dErrors.CodeEligibility))
	})

	s.Run("positive total passes", func() {
		l, err := New(s.backend, WithEligibilityCheck(true))
		s.Require().NoError(err)
		s.backend.EXPECT().FamilyInfo(ctx, s.sess, s.iin.String()).Return(familyInfo(member), nil)
		s.backend.EXPECT().CohortTotal(ctx, s.sess, s.iin.String()).Return(2, nil)

		res, err := l.Find(ctx, s.sess, s.iin)
		s.Require().NoError(err)
		s.Len(res.Members, 1)
	})

	s.Run("cohort failure propagates", func() {
		l, err := New(s.backend, WithEligibilityCheck(true))
		s.Require().NoError(err)
		s.backend.EXPECT().FamilyInfo(ctx, s.sess, s.iin.String()).Return(familyInfo(member), nil)
		s.backend.EXPECT().CohortTotal(ctx, s.sess, s.iin.String()).Return(0, errors.New("reset"))

		_, err = l.Find(ctx, s.sess, s.iin)
		s.Error(err)
	})
}

func (s *LookupSuite) TestNewRequiresBackend() {
	_, err := New(nil)
	s.Error(err)
}
