package models

import "encoding/json"

// SocialStatusCounts maps catalog status names to the number of members
// holding that status.
type SocialStatusCounts map[string]int

// NewSocialStatusCounts returns a zeroed map over the full catalog.
func NewSocialStatusCounts() SocialStatusCounts {
	c := make(SocialStatusCounts, len(socialStatusCatalog))
	for _, name := range socialStatusCatalog {
		c[name] = 0
	}
	return c
}

// SocialStatusCatalog returns a copy of the catalog in its canonical order.
func SocialStatusCatalog() []string {
	return append([]string(nil), socialStatusCatalog...)
}

// IsCatalogStatus reports whether name is a counted status.
func IsCatalogStatus(name string) bool {
	for _, n := range socialStatusCatalog {
		if n == name {
			return true
		}
	}
	return false
}

// Increment adds one to name. Names outside the catalog are ignored and
// reported with false.
func (c SocialStatusCounts) Increment(name string) bool {
	if _, ok := c[name]; !ok {
		return false
	}
	c[name]++
	return true
}

// NonZero returns only the categories with a positive count.
func (c SocialStatusCounts) NonZero() map[string]int {
	out := make(map[string]int)
	for name, n := range c {
		if n > 0 {
			out[name] = n
		}
	}
	return out
}

// MarshalJSON exposes only positive counts.
func (c SocialStatusCounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.NonZero())
}

// UnmarshalJSON restores the full catalog, zero-filling missing categories.
func (c *SocialStatusCounts) UnmarshalJSON(data []byte) error {
	var nonZero map[string]int
	if err := json.Unmarshal(data, &nonZero); err != nil {
		return err
	}
	out := NewSocialStatusCounts()
	for name, n := range nonZero {
		out[name] = n
	}
	*c = out
	return nil
}
