// Package models defines the canonical household profile produced by the
// lookup pipeline and its semantic output mapping.
package models

// Recommendations are the support programs suggested for a household.
type Recommendations struct {
	NeedASP  bool `json:"need_asp"`
	NeedEdu  bool `json:"need_edu"`
	NeedMed  bool `json:"need_med"`
	NeedEmp  bool `json:"need_emp"`
	NeedNedv bool `json:"need_nedv"`
}

// Labels returns display texts for the set recommendations in a fixed order.
func (r Recommendations) Labels() []string {
	pairs := []struct {
		set   bool
		label string
	}{
		{r.NeedASP, "АСП"},
		{r.NeedEdu, "Образование"},
		{r.NeedMed, "Медицина"},
		{r.NeedEmp, "Трудоустройство"},
		{r.NeedNedv, "Жилье"},
	}
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.set {
			out = append(out, p.label)
		}
	}
	return out
}

// Assets counts household property and employment.
type Assets struct {
	LandCnt            int `json:"land_cnt"`
	EmpCnt             int `json:"emp_cnt"`
	SocPayRecipientCnt int `json:"soc_pay_recipient_cnt"`
	NedvCnt            int `json:"nedv_cnt"`
	TransportCnt       int `json:"transport_cnt"`
}

// Family is the canonical household profile. It is built once per lookup and
// never mutated afterwards.
type Family struct {
	Members            []Member           `json:"members"`
	MemberCnt          int                `json:"member_cnt"`
	ChildCnt           int                `json:"child_cnt"`
	FamilyLevel        string             `json:"family_level"`
	Address            string             `json:"address"`
	Salary             float64            `json:"salary"`
	SocialPayment      float64            `json:"social_payment"`
	PerCapitaIncome    float64            `json:"per_capita_income"`
	PerCapitaIncomeASP float64            `json:"per_capita_income_asp"`
	TotalIncomeASP     float64            `json:"total_income_asp"`
	Income             string             `json:"income"`
	Recommendations    Recommendations    `json:"recommendations"`
	Assets             Assets             `json:"assets"`
	Risks              RiskFlags          `json:"risks"`
	SocialStatus       SocialStatusCounts `json:"social_status"`
}

// TotalIncomeASP derives the quarterly ASP income: per-capita ASP income
// times members times three months.
func TotalIncomeASP(perCapitaASP float64, memberCnt int) float64 {
	return perCapitaASP * float64(memberCnt) * 3
}

// ToMap exposes the profile as semantic field → value for the formatting
// layer. Social statuses with a zero count are omitted.
func (f *Family) ToMap() map[string]any {
	members := make([]map[string]string, len(f.Members))
	for i, m := range f.Members {
		members[i] = map[string]string{"iin": m.IIN, "full_name": m.FullName}
	}
	return map[string]any{
		"members": members,
		"general": map[string]any{
			"member_cnt":   f.MemberCnt,
			"child_cnt":    f.ChildCnt,
			"family_level": f.FamilyLevel,
			"address":      f.Address,
		},
		"income": map[string]any{
			"salary":                f.Salary,
			"social_payment":        f.SocialPayment,
			"per_capita_income":     f.PerCapitaIncome,
			"total_income_asp":      f.TotalIncomeASP,
			"per_capita_income_asp": f.PerCapitaIncomeASP,
			"income":                f.Income,
		},
		"recommendations": f.Recommendations.Labels(),
		"assets": map[string]any{
			"land_cnt":              f.Assets.LandCnt,
			"emp_cnt":               f.Assets.EmpCnt,
			"soc_pay_recipient_cnt": f.Assets.SocPayRecipientCnt,
			"nedv_cnt":              f.Assets.NedvCnt,
			"transport_cnt":         f.Assets.TransportCnt,
		},
		"risks":         f.Risks.Labels(),
		"social_status": f.SocialStatus.NonZero(),
	}
}
