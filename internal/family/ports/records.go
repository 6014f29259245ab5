package ports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Credentials are the backend login. Supplied by configuration.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserID is a backend user identifier. The backend sends it as a number or a
// string depending on the deployment.
type UserID string

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// LoginUser is the user block of a login response.
type LoginUser struct {
	UserID UserID `json:"userId"`
}

// LoginResult is the body of POST /auth/login.
type LoginResult struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         LoginUser `json:"user"`
}

// Session is the bearer token of one pipeline run. It is read-only once
// established and never persisted.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// AuthorizationHeader returns the value of the Authorization header.
func (s Session) AuthorizationHeader() string {
	return "Bearer " + s.Token
}

// Dictionary is a backend reference value.
type Dictionary struct {
	NameRu string `json:"nameRu"`
}

// Flag is a backend boolean that may arrive as a bool, a number, a string, or
// null. Zero, empty, false and null are false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = false
	case bytes.Equal(data, []byte("true")):
		*f = true
	case bytes.Equal(data, []byte("false")):
		*f = false
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			n, nerr := strconv.ParseFloat(s, 64)
			if nerr != nil {
				*f = Flag(s != "")
				return nil
			}
			b = n != 0
		}
		*f = Flag(b)
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("flag: unexpected value %s", data)
		}
		*f = n != 0
	}
	return nil
}

// FamilyQuality carries the household metrics computed by the backend.
// Numeric fields that arrive as null decode to zero; SddAsp keeps presence
// because the ASP recommendation depends on it.
type FamilyQuality struct {
	CntMem         int        `json:"cntMem"`
	CntChild       int        `json:"cntChild"`
	TzhsDictionary Dictionary `json:"tzhsDictionary"`
	IncomeOop      float64    `json:"incomeOop"`
	IncomeCbd      float64    `json:"incomeCbd"`
	Sdd            float64    `json:"sdd"`
	SddAsp         *float64   `json:"sddAsp"`
	FamilyPm       Dictionary `json:"familyPm"`
	NeedEdu        Flag       `json:"needEdu"`
	NeedEmp        Flag       `json:"needEmp"`
	NeedMed        Flag       `json:"needMed"`
	NeedNedv       Flag       `json:"needNedv"`
	CntLand        int        `json:"cntLand"`
	CntEmp         int        `json:"cntEmp"`
	CntCbd         int        `json:"cntCbd"`
	CntNedv        int        `json:"cntNedv"`
	CntDv          int        `json:"cntDv"`
	RiskDetail     string     `json:"riskDetail"`
}

// FamilyRecord is the non-null family block of a familyInfo response.
type FamilyRecord struct {
	FamilyQuality FamilyQuality `json:"familyQuality"`
}

// MemberRecord is one entry of familyMemberList.
type MemberRecord struct {
	IIN      string `json:"iin"`
	FullName string `json:"fullName"`
}

// FamilyInfo is the body of POST /api/card/familyInfo. Family is nil when the
// backend has no household for the IIN.
type FamilyInfo struct {
	Family           *FamilyRecord  `json:"family"`
	FamilyMemberList []MemberRecord `json:"familyMemberList"`
	AddressRu        string         `json:"addressRu"`
}

// PersonSource is one social status record of a person.
type PersonSource struct {
	Status Dictionary `json:"status"`
}

// PersonDetails is the body of POST /api/card/getPersonDetailsDTOByIin.
type PersonDetails struct {
	PersonSourceList []PersonSource `json:"personSourceList"`
}

// StatusNames lists the status names carried by the person's records.
func (p *PersonDetails) StatusNames() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.PersonSourceList))
	for _, src := range p.PersonSourceList {
		out = append(out, src.Status.NameRu)
	}
	return out
}
