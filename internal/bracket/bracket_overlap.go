package bracket

import (
	bracketerrors "go-payroll/internal/bracket/errors"

	"github.com/google/uuid"
)

// ValidateBounds rejects a negative minimum and a maximum below the minimum.
func ValidateBounds(minBound int, maxBound *int) error {
	if minBound < 0 {
		return bracketerrors.ErrNegativeMinBound
	}
	if maxBound != nil && *maxBound < minBound {
		return bracketerrors.ErrInvalidBracketBounds
	}
	return nil
}

// Overlaps reports whether [minA, maxA] and [minB, maxB] share at least one value.
// A nil max is +inf, so two unbounded ranges always overlap and a touching
// boundary counts as overlap. The test is symmetric in its two ranges.
func Overlaps(minA int, maxA *int, minB int, maxB *int) bool {
	aStartsBeforeBEnds := maxB == nil || minA <= *maxB
	bStartsBeforeAEnds := maxA == nil || minB <= *maxA
	return aStartsBeforeBEnds && bStartsBeforeAEnds
}

// HasOverlap reports whether the candidate range conflicts with any active bracket
// in existing. The bracket with excludeID is ignored so an update can be checked
// against everything but itself; pass uuid.Nil to exclude nothing.
//
// An unbounded candidate only conflicts with brackets whose range reaches its
// minimum, so [10, inf) may sit above [0, 5].
func HasOverlap(existing []Bracket, candidateMin int, candidateMax *int, excludeID uuid.UUID) bool {
	for _, b := range existing {
		if !b.Active {
			continue
		}
		if excludeID != uuid.Nil && b.ID == excludeID {
			continue
		}
		if Overlaps(candidateMin, candidateMax, b.MinBound, b.MaxBound) {
			return true
		}
	}
	return false
}
