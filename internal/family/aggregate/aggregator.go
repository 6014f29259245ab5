// Package aggregate assembles the canonical household profile from the raw
// backend record and the enrichment results.
package aggregate

import (
	"fmt"

	"famcard/internal/family/models"
	"famcard/internal/family/ports"
	dErrors "famcard/pkg/domain-errors"
)

// Input is everything the aggregator combines.
type Input struct {
	Quality      ports.FamilyQuality
	Address      string
	Members      []models.Member
	SocialStatus models.SocialStatusCounts
	Risks        models.RiskFlags
}

type Aggregator struct {
	needASP NeedASPPredicate
}

type Option func(*Aggregator)

// WithNeedASP replaces the ASP recommendation rule.
func WithNeedASP(p NeedASPPredicate) Option {
	return func(a *Aggregator) {
		if p != nil {
			a.needASP = p
		}
	}
}

func New(opts ...Option) *Aggregator {
	a := &Aggregator{needASP: NeedASPPresent}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build produces the profile. Null numbers are already zero in the input,
// except the per-capita ASP income, whose presence feeds the ASP rule.
func (a *Aggregator) Build(in Input) (*models.Family, error) {
	q := in.Quality
	if q.CntMem < 0 || q.CntChild < 0 {
		return nil, dErrors.New(dErrors.CodeDecode,
			fmt.Sprintf("negative household counts: members=%d children=%d", q.CntMem, q.CntChild))
	}

	var perCapitaASP float64
	if q.SddAsp != nil {
		perCapitaASP = *q.SddAsp
	}

	status := in.SocialStatus
	if status == nil {
		status = models.NewSocialStatusCounts()
	}

	members := make([]models.Member, len(in.Members))
	copy(members, in.Members)

	return &models.Family{
		Members:            members,
		MemberCnt:          q.CntMem,
		ChildCnt:           q.CntChild,
		FamilyLevel:        q.TzhsDictionary.NameRu,
		Address:            in.Address,
		Salary:             q.IncomeOop,
		SocialPayment:      q.IncomeCbd,
		PerCapitaIncome:    q.Sdd,
		PerCapitaIncomeASP: perCapitaASP,
		TotalIncomeASP:     models.TotalIncomeASP(perCapitaASP, q.CntMem),
		Income:             q.FamilyPm.NameRu,
		Recommendations: models.Recommendations{
			NeedASP:  a.needASP(q.SddAsp),
			NeedEdu:  bool(q.NeedEdu),
			NeedMed:  bool(q.NeedMed),
			NeedEmp:  bool(q.NeedEmp),
			NeedNedv: bool(q.NeedNedv),
		},
		Assets: models.Assets{
			LandCnt:            q.CntLand,
			EmpCnt:             q.CntEmp,
			SocPayRecipientCnt: q.CntCbd,
			NedvCnt:            q.CntNedv,
			TransportCnt:       q.CntDv,
		},
		Risks:        in.Risks,
		SocialStatus: status,
	}, nil
}
