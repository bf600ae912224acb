package product

import "marketplace-catalog/internal/pkg/errs"

type MatchMode uint8

const (
	// MatchSuperset accepts any variant whose options include every requested pair.
	MatchSuperset MatchMode = iota
	// MatchExact requires the same option names, values compared case-insensitively.
	MatchExact
)

func (m MatchMode) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "superset"
}

// Match returns the first variant in list order whose options contain every requested pair.
func (vs Variants) Match(requested Options) (int, Variant, error) {
	return vs.find(requested, MatchSuperset)
}

func (vs Variants) MatchExact(requested Options) (int, Variant, error) {
	return vs.find(requested, MatchExact)
}

func (vs Variants) Find(requested Options, mode MatchMode) (int, Variant, error) {
	return vs.find(requested, mode)
}

func (vs Variants) find(requested Options, mode MatchMode) (int, Variant, error) {
	if requested.IsEmpty() {
		return -1, Variant{}, errs.ErrMissingOptions
	}
	for i, v := range vs {
		ok := v.options.Contains(requested)
		if mode == MatchExact {
			ok = v.options.Equal(requested)
		}
		if ok {
			return i, v, nil
		}
	}
	return -1, Variant{}, errs.ErrVariantNotFound
}
