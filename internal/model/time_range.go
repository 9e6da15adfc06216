package model

import "time"

// TimeRange is a half-open interval [Start, End). All ranges are expected
// to be in UTC; callers must normalize before constructing one. A range
// with Start == End is empty.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (t TimeRange) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// IsEmpty reports whether the range covers no time at all.
func (t TimeRange) IsEmpty() bool {
	return !t.Start.Before(t.End)
}

// Overlaps reports whether two half-open ranges share any instant.
// Touching ranges (one ends exactly when the other starts) do not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Contains reports whether the instant falls inside the range.
func (t TimeRange) Contains(at time.Time) bool {
	return !at.Before(t.Start) && at.Before(t.End)
}

// Constrain clips the range to the given bounds. The result may be empty
// when the range and bounds do not overlap.
func (t TimeRange) Constrain(bounds TimeRange) TimeRange {
	out := t
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	if out.End.Before(out.Start) {
		out.End = out.Start
	}
	return out
}

// Subtract removes the overlap with other from the range. It returns zero
// pieces when other fully covers the range, one piece when other covers an
// edge (or does not overlap at all), and two pieces when other is strictly
// interior and splits the range.
func (t TimeRange) Subtract(other TimeRange) []TimeRange {
	if !t.Overlaps(other) {
		if t.IsEmpty() {
			return []TimeRange{}
		}
		return []TimeRange{t}
	}
	pieces := make([]TimeRange, 0, 2)
	if t.Start.Before(other.Start) {
		pieces = append(pieces, TimeRange{Start: t.Start, End: other.Start})
	}
	if other.End.Before(t.End) {
		pieces = append(pieces, TimeRange{Start: other.End, End: t.End})
	}
	return pieces
}

// AvailabilityList is an ordered sequence of non-overlapping ranges,
// chronological by Start. The zero value is an empty list.
type AvailabilityList []TimeRange

// Constrain intersects every entry with bounds and drops entries that end
// up empty. Ordering is preserved.
func (a AvailabilityList) Constrain(bounds TimeRange) AvailabilityList {
	out := make(AvailabilityList, 0, len(a))
	for _, r := range a {
		clipped := r.Constrain(bounds)
		if !clipped.IsEmpty() {
			out = append(out, clipped)
		}
	}
	return out
}

// Subtract removes the given range from every entry, splitting entries
// where necessary. The result remains ordered and disjoint.
func (a AvailabilityList) Subtract(r TimeRange) AvailabilityList {
	out := make(AvailabilityList, 0, len(a))
	for _, entry := range a {
		out = append(out, entry.Subtract(r)...)
	}
	return out
}

// TotalDuration sums the durations of all entries.
func (a AvailabilityList) TotalDuration() time.Duration {
	var total time.Duration
	for _, r := range a {
		total += r.Duration()
	}
	return total
}

// FilterShorterThan drops entries whose duration is below the minimum.
func (a AvailabilityList) FilterShorterThan(min time.Duration) AvailabilityList {
	out := make(AvailabilityList, 0, len(a))
	for _, r := range a {
		if r.Duration() >= min {
			out = append(out, r)
		}
	}
	return out
}
