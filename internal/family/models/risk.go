package models

import (
	"encoding/json"
	"fmt"
)

// Risk is one household risk category. Values follow the position order of
// the backend's risk code string.
type Risk uint8

const (
	RiskIncome Risk = iota
	RiskCredit
	RiskMedicalAttachment
	RiskDispensary
	RiskHealthInsurance
	RiskPreschool
	RiskSchool
)

// Risks lists every category in enumeration order.
var Risks = []Risk{
	RiskIncome,
	RiskCredit,
	RiskMedicalAttachment,
	RiskDispensary,
	RiskHealthInsurance,
	RiskPreschool,
	RiskSchool,
}

var riskNames = [...]string{
	"income",
	"credit",
	"medical_attachment",
	"dispensary",
	"health_insurance",
	"preschool",
	"school",
}

var riskLabels = [...]string{
	"Уровень дохода ниже ЧБ",
	"Семья имеет задолженность по кредиту больше 90 дней",
	"Член семьи не имеет прикрепление к медицинской организации",
	"Член семьи состоит на диспансерном учете",
	"Член семьи не имеет обязательное социальное медицинское страхование",
	"Дети не посещают дошкольные организации",
	"Дети не посещают школы",
}

func (r Risk) String() string {
	if int(r) < len(riskNames) {
		return riskNames[r]
	}
	return fmt.Sprintf("risk(%d)", uint8(r))
}

// Label is the display text for the risk.
func (r Risk) Label() string {
	if int(r) < len(riskLabels) {
		return riskLabels[r]
	}
	return r.String()
}

// ParseRisk resolves a risk by its semantic name.
func ParseRisk(name string) (Risk, bool) {
	for i, n := range riskNames {
		if n == name {
			return Risk(i), true
		}
	}
	return 0, false
}

// RiskFlags is an immutable set of risks.
type RiskFlags uint8

// NewRiskFlags builds a set from the given risks.
func NewRiskFlags(risks ...Risk) RiskFlags {
	var f RiskFlags
	for _, r := range risks {
		f = f.With(r)
	}
	return f
}

// With returns a copy of the set including r.
func (f RiskFlags) With(r Risk) RiskFlags {
	return f | 1<<r
}

func (f RiskFlags) Has(r Risk) bool {
	return f&(1<<r) != 0
}

func (f RiskFlags) IsEmpty() bool {
	return f == 0
}

// List returns the present risks in enumeration order.
func (f RiskFlags) List() []Risk {
	out := make([]Risk, 0, len(Risks))
	for _, r := range Risks {
		if f.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Labels returns display texts of present risks in enumeration order.
func (f RiskFlags) Labels() []string {
	list := f.List()
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Label()
	}
	return out
}

func (f RiskFlags) MarshalJSON() ([]byte, error) {
	list := f.List()
	names := make([]string, len(list))
	for i, r := range list {
		names[i] = r.String()
	}
	return json.Marshal(names)
}

func (f *RiskFlags) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out RiskFlags
	for _, n := range names {
		r, ok := ParseRisk(n)
		if !ok {
			return fmt.Errorf("unknown risk %q", n)
		}
		out = out.With(r)
	}
	*f = out
	return nil
}
