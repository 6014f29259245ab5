// Package risk decodes the backend's compact risk code string into risk flags.
//
// The code is a sequence of single-letter markers; 'N' is a placeholder that
// carries no risk. Decoding is pure: the same code always yields the same set.
package risk

import (
	"fmt"

	"famcard/internal/family/models"
)

// Sentinel marks a position with no risk.
const Sentinel = 'N'

var table = map[rune]models.Risk{
	'I': models.RiskIncome,
	'C': models.RiskCredit,
	'M': models.RiskMedicalAttachment,
	'D': models.RiskDispensary,
	'O': models.RiskHealthInsurance,
	'S': models.RiskPreschool,
	'E': models.RiskSchool,
}

// DecodeError reports a marker outside the table.
type DecodeError struct {
	Char     rune
	Position int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown risk marker %q at position %d", e.Char, e.Position)
}

// Decode maps every marker of code onto its risk. An empty code, or one made
// only of sentinels, decodes to an empty set.
func Decode(code string) (models.RiskFlags, error) {
	var flags models.RiskFlags
	pos := 0
	for _, c := range code {
		if c != Sentinel {
			r, ok := table[c]
			if !ok {
				return 0, &DecodeError{Char: c, Position: pos}
			}
			flags = flags.With(r)
		}
		pos++
	}
	return flags, nil
}

// Encode is the inverse of Decode for a canonical, sentinel-free code.
func Encode(flags models.RiskFlags) string {
	out := make([]rune, 0, len(models.Risks))
	for _, r := range flags.List() {
		out = append(out, markerOf(r))
	}
	return string(out)
}

func markerOf(r models.Risk) rune {
	for c, risk := range table {
		if risk == r {
			return c
		}
	}
	return Sentinel
}
