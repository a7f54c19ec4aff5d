package core

import (
	"math"
	"sort"

	"trackstore/pkg/domain"
)

// categoryEntry is one assignment on a category's timeline.
type categoryEntry struct {
	time  float64
	value string
}

// CategoryDataSlice holds an entity's category assignments over time.
// Category values are sticky: the value in effect at time t is the latest
// assignment at or before t, and never expires.
type CategoryDataSlice struct {
	names map[string][]categoryEntry

	lastValues map[string]string
	changed    bool
	resolved   bool
}

func newCategoryDataSlice() *CategoryDataSlice {
	return &CategoryDataSlice{names: make(map[string][]categoryEntry)}
}

// insert adds every assignment of c onto its category's timeline. An
// assignment at exactly the same time replaces the existing value.
func (s *CategoryDataSlice) insert(c *domain.CategoryData) {
	for _, e := range c.Entries {
		tl := s.names[e.Name]
		idx := sort.Search(len(tl), func(i int) bool { return tl[i].time >= c.Time })
		if idx < len(tl) && tl[idx].time == c.Time {
			tl[idx].value = e.Value
		} else {
			tl = append(tl, categoryEntry{})
			copy(tl[idx+1:], tl[idx:])
			tl[idx] = categoryEntry{time: c.Time, value: e.Value}
		}
		s.names[e.Name] = tl
		s.resolved = false
	}
}

// removePoint drops the assignment of name at exactly time t, reporting
// whether one existed. A category left empty is removed.
func (s *CategoryDataSlice) removePoint(name string, t float64) bool {
	tl, ok := s.names[name]
	if !ok {
		return false
	}
	idx := sort.Search(len(tl), func(i int) bool { return tl[i].time >= t })
	if idx == len(tl) || tl[idx].time != t {
		return false
	}
	tl = append(tl[:idx], tl[idx+1:]...)
	if len(tl) == 0 {
		delete(s.names, name)
	} else {
		s.names[name] = tl
	}
	s.resolved = false
	return true
}

// update recomputes the category values in effect at t and reports whether
// the set differs from the previous pass.
func (s *CategoryDataSlice) update(t float64) bool {
	values := make(map[string]string, len(s.names))
	for name, tl := range s.names {
		idx := sort.Search(len(tl), func(i int) bool { return tl[i].time > t })
		if idx > 0 {
			values[name] = tl[idx-1].value
		}
	}
	changed := !s.resolved || len(values) != len(s.lastValues)
	if !changed {
		for name, v := range values {
			if prev, ok := s.lastValues[name]; !ok || prev != v {
				changed = true
				break
			}
		}
	}
	s.lastValues = values
	s.resolved = true
	s.changed = changed
	return changed
}

// HasChanged reports whether the last update pass changed the current
// value set.
func (s *CategoryDataSlice) HasChanged() bool { return s.changed }

// Current returns the name/value pairs in effect at the last update time,
// sorted by name.
func (s *CategoryDataSlice) Current() []domain.CategoryDataEntry {
	return sortedCategoryEntries(s.lastValues)
}

// ValuesAt returns the name/value pairs in effect at t, sorted by name.
func (s *CategoryDataSlice) ValuesAt(t float64) []domain.CategoryDataEntry {
	values := make(map[string]string, len(s.names))
	for name, tl := range s.names {
		idx := sort.Search(len(tl), func(i int) bool { return tl[i].time > t })
		if idx > 0 {
			values[name] = tl[idx-1].value
		}
	}
	return sortedCategoryEntries(values)
}

func sortedCategoryEntries(values map[string]string) []domain.CategoryDataEntry {
	out := make([]domain.CategoryDataEntry, 0, len(values))
	for name, v := range values {
		out = append(out, domain.CategoryDataEntry{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted category names with any stored history.
func (s *CategoryDataSlice) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NumItems returns the total number of assignments across all categories.
func (s *CategoryDataSlice) NumItems() int {
	n := 0
	for _, tl := range s.names {
		n += len(tl)
	}
	return n
}

// FirstTime returns the earliest assignment time, or +MaxFloat64 when empty.
func (s *CategoryDataSlice) FirstTime() float64 {
	first := math.MaxFloat64
	for _, tl := range s.names {
		if len(tl) > 0 && tl[0].time < first {
			first = tl[0].time
		}
	}
	return first
}

// LastTime returns the latest assignment time, or -MaxFloat64 when empty.
func (s *CategoryDataSlice) LastTime() float64 {
	last := -math.MaxFloat64
	for _, tl := range s.names {
		if len(tl) > 0 && tl[len(tl)-1].time > last {
			last = tl[len(tl)-1].time
		}
	}
	return last
}

// limitByPoints caps each category's timeline to its newest n assignments.
func (s *CategoryDataSlice) limitByPoints(n uint32) int {
	if n == 0 {
		return 0
	}
	dropped := 0
	for name, tl := range s.names {
		if len(tl) <= int(n) {
			continue
		}
		drop := len(tl) - int(n)
		s.names[name] = append(tl[:0], tl[drop:]...)
		dropped += drop
	}
	if dropped > 0 {
		s.resolved = false
	}
	return dropped
}

// limitByTime drops assignments older than window seconds before each
// category's newest one. The newest assignment always survives.
func (s *CategoryDataSlice) limitByTime(window float64) int {
	if window <= 0 {
		return 0
	}
	dropped := 0
	for name, tl := range s.names {
		if len(tl) == 0 {
			continue
		}
		cutoff := tl[len(tl)-1].time - window
		drop := sort.Search(len(tl), func(i int) bool { return tl[i].time >= cutoff })
		if drop == 0 {
			continue
		}
		s.names[name] = append(tl[:0], tl[drop:]...)
		dropped += drop
	}
	if dropped > 0 {
		s.resolved = false
	}
	return dropped
}

// flush discards assignments. With keepStatic, assignments at the static
// timestamp survive so entity identity categories persist across live
// resets.
func (s *CategoryDataSlice) flush(keepStatic bool) int {
	if !keepStatic {
		n := s.NumItems()
		s.names = make(map[string][]categoryEntry)
		s.lastValues = nil
		s.resolved = false
		return n
	}
	dropped := 0
	for name, tl := range s.names {
		kept := tl[:0]
		for _, e := range tl {
			if e.time == domain.StaticTime {
				kept = append(kept, e)
				continue
			}
			dropped++
		}
		if len(kept) == 0 {
			delete(s.names, name)
		} else {
			s.names[name] = kept
		}
	}
	if dropped > 0 {
		s.resolved = false
	}
	return dropped
}

// flushRange discards assignments with times in [start, end).
func (s *CategoryDataSlice) flushRange(start, end float64) int {
	dropped := 0
	for name, tl := range s.names {
		kept := tl[:0]
		for _, e := range tl {
			if e.time >= start && e.time < end {
				dropped++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(s.names, name)
		} else {
			s.names[name] = kept
		}
	}
	if dropped > 0 {
		s.resolved = false
	}
	return dropped
}
