package bracket

import "sort"

// Match returns the first active bracket, in ascending MinBound order, that
// contains input. It returns nil when nothing matches, which callers treat as 0%.
//
// Brackets are sorted here rather than trusting the store's ordering. Ties on
// MinBound only happen when overlap validation was bypassed; they are broken by
// ID so the result is at least stable across storage backends.
func Match(brackets []Bracket, input int) *Bracket {
	ordered := make([]Bracket, len(brackets))
	copy(ordered, brackets)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].MinBound != ordered[j].MinBound {
			return ordered[i].MinBound < ordered[j].MinBound
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	for i := range ordered {
		if ordered[i].Active && ordered[i].Contains(input) {
			matched := ordered[i]
			return &matched
		}
	}
	return nil
}
