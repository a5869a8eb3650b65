package domain

import (
	"fmt"
	"time"
)

// Conflicts reports whether two half-open intervals [aStart, aEnd) and [bStart, bEnd) overlap.
// Touching intervals (aEnd == bStart) do not conflict. Identical intervals always conflict.
func Conflicts(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidateInterval rejects empty and inverted intervals
func ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
