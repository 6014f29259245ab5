package models

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Member is one person in a household.
type Member struct {
	IIN      string `json:"iin"`
	FullName string `json:"full_name"`
}

// NewMember builds a Member with the name normalized to title case.
func NewMember(iin, fullName string) Member {
	return Member{IIN: iin, FullName: NormalizeName(fullName)}
}

// NormalizeName upper-cases the first letter of every space-separated word
// and lower-cases the rest. Hyphenated parts after the first stay lower case
// ("ИВАНОВА-ПЕТРОВА" becomes "Иванова-петрова"). Spacing is preserved.
func NormalizeName(name string) string {
	// Casers carry state and must not be shared across goroutines.
	upper := cases.Upper(language.Russian)
	lower := cases.Lower(language.Russian)

	words := strings.Split(name, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + lower.String(w[size:])
	}
	return strings.Join(words, " ")
}

// OrderMembers returns a copy of members with the member holding iin moved to
// the front. The relative order of everyone else is preserved. When iin is not
// present the order is unchanged.
func OrderMembers(members []Member, iin string) []Member {
	ordered := make([]Member, 0, len(members))
	selected := -1
	for i, m := range members {
		if selected < 0 && m.IIN == iin {
			selected = i
			continue
		}
		ordered = append(ordered, m)
	}
	if selected < 0 {
		return ordered
	}
	return append([]Member{members[selected]}, ordered...)
}
