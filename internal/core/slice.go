package core

import (
	"math"

	"trackstore/pkg/domain"
)

// TimedRecord is any store record carrying a timestamp. Slices keep their
// records sorted by it.
type TimedRecord interface {
	Timestamp() float64
}

// timedPtr constrains slice element types to comparable timed records, in
// practice pointers to domain update structs.
type timedPtr interface {
	TimedRecord
	comparable
}

// lowerBound returns the index of the first record with timestamp >= t.
func lowerBound[T timedPtr](data []T, t float64) int {
	lo, hi := 0, len(data)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if data[mid].Timestamp() < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the index of the first record with timestamp > t.
func upperBound[T timedPtr](data []T, t float64) int {
	lo, hi := 0, len(data)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if data[mid].Timestamp() <= t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// interpolateFn blends two bracketing records into a synthetic record at
// time t, with earlier.Timestamp() <= t <= later.Timestamp().
type interpolateFn[T timedPtr] func(earlier, later T, t float64) T

// UpdateSlice is a time-ordered series of update records for one entity,
// with a notion of the "current" record resolved by the store's update
// pass. Read methods are safe to call from query transactions; all
// mutation happens inside the store.
type UpdateSlice[T timedPtr] struct {
	data []T

	current      T
	interpolated bool

	// dirty is set by any mutation and cleared by the next resolve; it is
	// how the store skips entities with no new data.
	dirty   bool
	changed bool
}

func newUpdateSlice[T timedPtr]() *UpdateSlice[T] {
	return &UpdateSlice[T]{}
}

// insert adds u in time order. A record at exactly the same time is
// replaced.
func (s *UpdateSlice[T]) insert(u T) {
	idx := upperBound(s.data, u.Timestamp())
	if idx > 0 && s.data[idx-1].Timestamp() == u.Timestamp() {
		s.data[idx-1] = u
	} else {
		s.data = append(s.data, u)
		copy(s.data[idx+1:], s.data[idx:])
		s.data[idx] = u
	}
	s.dirty = true
}

// resolve sets current to the latest record at or before t, or to a blended
// record when t falls between two samples and interp is non-nil. A nil
// current means the entity has no data yet at t.
func (s *UpdateSlice[T]) resolve(t float64, interp interpolateFn[T]) {
	var zero T
	prev := s.current
	s.interpolated = false

	idx := upperBound(s.data, t)
	if idx == 0 {
		s.current = zero
	} else if s.data[idx-1].Timestamp() == t || idx == len(s.data) || interp == nil {
		s.current = s.data[idx-1]
	} else {
		s.current = interp(s.data[idx-1], s.data[idx], t)
		s.interpolated = true
	}

	s.changed = s.dirty || s.current != prev
	s.dirty = false
}

// resolveEmpty clears current without touching stored records, for entities
// whose data is gated off or expired at the update time.
func (s *UpdateSlice[T]) resolveEmpty() {
	var zero T
	prev := s.current
	s.current = zero
	s.interpolated = false
	s.changed = s.dirty || prev != zero
	s.dirty = false
}

// limitByPoints drops the oldest records so at most n remain, returning the
// number dropped. n == 0 is treated as no limit.
func (s *UpdateSlice[T]) limitByPoints(n uint32) int {
	if n == 0 || len(s.data) <= int(n) {
		return 0
	}
	drop := len(s.data) - int(n)
	s.data = append(s.data[:0], s.data[drop:]...)
	s.dirty = true
	return drop
}

// limitByTime drops records older than window seconds before the newest one,
// returning the number dropped. The newest record always survives. window
// <= 0 is treated as no limit.
func (s *UpdateSlice[T]) limitByTime(window float64) int {
	if window <= 0 || len(s.data) == 0 {
		return 0
	}
	cutoff := s.data[len(s.data)-1].Timestamp() - window
	drop := lowerBound(s.data, cutoff)
	if drop == 0 {
		return 0
	}
	s.data = append(s.data[:0], s.data[drop:]...)
	s.dirty = true
	return drop
}

// flush discards records. With keepStatic, a sole record at the static
// timestamp survives.
func (s *UpdateSlice[T]) flush(keepStatic bool) int {
	if keepStatic && len(s.data) == 1 && s.data[0].Timestamp() == domain.StaticTime {
		return 0
	}
	n := len(s.data)
	s.data = nil
	var zero T
	s.current = zero
	s.interpolated = false
	s.dirty = true
	return n
}

// flushRange discards records with timestamps in [start, end).
func (s *UpdateSlice[T]) flushRange(start, end float64) int {
	lo := lowerBound(s.data, start)
	hi := lowerBound(s.data, end)
	if hi <= lo {
		return 0
	}
	n := hi - lo
	s.data = append(s.data[:lo], s.data[hi:]...)
	s.dirty = true
	return n
}

// Current returns the record resolved by the last update pass, or the zero
// value when the entity has no data at that time.
func (s *UpdateSlice[T]) Current() T { return s.current }

// IsInterpolated reports whether Current is a synthetic blended record.
func (s *UpdateSlice[T]) IsInterpolated() bool { return s.interpolated }

// HasChanged reports whether the last update pass changed Current.
func (s *UpdateSlice[T]) HasChanged() bool { return s.changed }

// NumItems returns the number of stored records.
func (s *UpdateSlice[T]) NumItems() int { return len(s.data) }

// At returns the i'th record in time order.
func (s *UpdateSlice[T]) At(i int) T { return s.data[i] }

// FirstTime returns the earliest record time, or +MaxFloat64 when empty.
func (s *UpdateSlice[T]) FirstTime() float64 {
	if len(s.data) == 0 {
		return math.MaxFloat64
	}
	return s.data[0].Timestamp()
}

// LastTime returns the latest record time, or -MaxFloat64 when empty.
func (s *UpdateSlice[T]) LastTime() float64 {
	if len(s.data) == 0 {
		return -math.MaxFloat64
	}
	return s.data[len(s.data)-1].Timestamp()
}

// LowerBound returns the index of the first record at or after t.
func (s *UpdateSlice[T]) LowerBound(t float64) int { return lowerBound(s.data, t) }

// UpperBound returns the index of the first record after t.
func (s *UpdateSlice[T]) UpperBound(t float64) int { return upperBound(s.data, t) }

// ForEach visits every record in time order until fn returns false.
func (s *UpdateSlice[T]) ForEach(fn func(T) bool) {
	for _, u := range s.data {
		if !fn(u) {
			return
		}
	}
}

// isStatic reports a sole record at the static timestamp.
func (s *UpdateSlice[T]) isStatic() bool {
	return len(s.data) == 1 && s.data[0].Timestamp() == domain.StaticTime
}
