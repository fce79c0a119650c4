package naming

import "github.com/backkem/aclgroups/pkg/rights"

// TierSuffixes assigns a name suffix to each permission tier. An empty
// string means the tier was not requested; presence is explicit rather
// than encoded in a sentinel value.
type TierSuffixes struct {
	Read        string
	Write       string
	Modify      string
	FullControl string
}

// DefaultSuffixes returns the conventional single-letter suffixes.
func DefaultSuffixes() TierSuffixes {
	return TierSuffixes{
		Read:        "R",
		Write:       "W",
		Modify:      "M",
		FullControl: "F",
	}
}

// Suffix returns the suffix assigned to the tier, or "" if the tier is
// absent (or invalid).
func (s TierSuffixes) Suffix(t rights.Tier) string {
	switch t {
	case rights.TierRead:
		return s.Read
	case rights.TierWrite:
		return s.Write
	case rights.TierModify:
		return s.Modify
	case rights.TierFullControl:
		return s.FullControl
	default:
		return ""
	}
}

// IsZero returns true if no tier has a suffix.
func (s TierSuffixes) IsZero() bool {
	return s == TierSuffixes{}
}

// Contains returns true if the suffix is assigned to any tier.
func (s TierSuffixes) Contains(suffix string) bool {
	if suffix == "" {
		return false
	}
	for _, t := range rights.Tiers {
		if s.Suffix(t) == suffix {
			return true
		}
	}
	return false
}

// ForEach calls fn for every tier with a non-empty suffix, in canonical
// tier order. Iteration stops at the first error.
func (s TierSuffixes) ForEach(fn func(t rights.Tier, suffix string) error) error {
	for _, t := range rights.Tiers {
		suffix := s.Suffix(t)
		if suffix == "" {
			continue
		}
		if err := fn(t, suffix); err != nil {
			return err
		}
	}
	return nil
}
