package aggregate

import (
	"fmt"
	"strconv"
	"strings"
)

// NeedASPPredicate decides the ASP recommendation from the per-capita ASP
// income. A nil value means the backend sent null.
type NeedASPPredicate func(perCapitaASP *float64) bool

// NeedASPPresent recommends ASP whenever the backend reported a non-negative
// per-capita ASP income.
func NeedASPPresent(v *float64) bool {
	return v != nil && *v >= 0
}

// NeedASPAlways recommends ASP unconditionally.
func NeedASPAlways(*float64) bool {
	return true
}

// NeedASPThreshold recommends ASP when the reported income is non-negative
// and at most limit.
func NeedASPThreshold(limit float64) NeedASPPredicate {
	return func(v *float64) bool {
		return v != nil && *v >= 0 && *v <= limit
	}
}

// ParseNeedASPRule resolves a rule name: "present", "always", or
// "threshold:<n>". An empty name selects "present".
func ParseNeedASPRule(rule string) (NeedASPPredicate, error) {
	rule = strings.TrimSpace(strings.ToLower(rule))
	switch {
	case rule == "" || rule == "present":
		return NeedASPPresent, nil
	case rule == "always":
		return NeedASPAlways, nil
	case strings.HasPrefix(rule, "threshold:"):
		raw := strings.TrimPrefix(rule, "threshold:")
		limit, err := strconv.ParseFloat(raw, 64)
		if err != nil || limit < 0 {
			return nil, fmt.Errorf("invalid need_asp threshold %q", raw)
		}
		return NeedASPThreshold(limit), nil
	default:
		return nil, fmt.Errorf("unknown need_asp rule %q", rule)
	}
}
