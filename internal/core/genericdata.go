package core

import (
	"math"
	"sort"

	"trackstore/pkg/domain"
)

// genericEntry is one value on a tag's timeline. expire is the absolute
// time the value lapses, or 0 for no expiry.
type genericEntry struct {
	time   float64
	value  string
	expire float64
}

// GenericDataSlice holds free-form tag/value timelines for one entity or for
// the scenario. The value of a tag at time t is the latest entry at or
// before t that has not expired; an expired latest entry hides the tag
// rather than falling back to an older value.
type GenericDataSlice struct {
	tags map[string][]genericEntry

	// lastValues is the snapshot from the last update pass, used both for
	// change detection and for Current queries.
	lastValues map[string]string
	changed    bool
	resolved   bool
}

func newGenericDataSlice() *GenericDataSlice {
	return &GenericDataSlice{tags: make(map[string][]genericEntry)}
}

// insert places every entry of g onto its tag's timeline at the record
// time. A tag holds at most one value per exact time: re-inserting the same
// value at an occupied time is always dropped, a different value replaces.
// With ignoreDuplicates, an entry whose value matches the one immediately
// preceding its insertion point is also dropped.
func (s *GenericDataSlice) insert(g *domain.GenericData, ignoreDuplicates bool) {
	expire := 0.0
	if g.Duration > 0 {
		expire = g.Time + g.Duration
	}
	for _, e := range g.Entries {
		tl := s.tags[e.Tag]
		entry := genericEntry{time: g.Time, value: e.Value, expire: expire}
		idx := sort.Search(len(tl), func(i int) bool { return tl[i].time > g.Time })
		if idx > 0 && tl[idx-1].time == g.Time {
			if tl[idx-1].value == e.Value {
				continue
			}
			tl[idx-1] = entry
			s.resolved = false
			continue
		}
		if ignoreDuplicates && idx > 0 && tl[idx-1].value == e.Value {
			continue
		}
		tl = append(tl, genericEntry{})
		copy(tl[idx+1:], tl[idx:])
		tl[idx] = entry
		s.tags[e.Tag] = tl
		s.resolved = false
	}
}

// removeTag drops a tag's entire timeline, reporting whether it existed.
func (s *GenericDataSlice) removeTag(tag string) bool {
	if _, ok := s.tags[tag]; !ok {
		return false
	}
	delete(s.tags, tag)
	s.resolved = false
	return true
}

// valueAt returns the tag value in effect at t from one timeline.
func valueAt(tl []genericEntry, t float64) (string, bool) {
	idx := sort.Search(len(tl), func(i int) bool { return tl[i].time > t })
	if idx == 0 {
		return "", false
	}
	e := tl[idx-1]
	if e.expire > 0 && t >= e.expire {
		return "", false
	}
	return e.value, true
}

// update recomputes the tag values in effect at t and reports whether the
// set differs from the previous pass.
func (s *GenericDataSlice) update(t float64) bool {
	values := make(map[string]string, len(s.tags))
	for tag, tl := range s.tags {
		if v, ok := valueAt(tl, t); ok {
			values[tag] = v
		}
	}
	changed := !s.resolved || len(values) != len(s.lastValues)
	if !changed {
		for tag, v := range values {
			if prev, ok := s.lastValues[tag]; !ok || prev != v {
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
func (s *GenericDataSlice) HasChanged() bool { return s.changed }

// Current returns the tag/value pairs in effect at the last update time,
// sorted by tag.
func (s *GenericDataSlice) Current() []domain.GenericDataEntry {
	return sortedEntries(s.lastValues)
}

// ValuesAt returns the tag/value pairs in effect at t, sorted by tag.
func (s *GenericDataSlice) ValuesAt(t float64) []domain.GenericDataEntry {
	values := make(map[string]string, len(s.tags))
	for tag, tl := range s.tags {
		if v, ok := valueAt(tl, t); ok {
			values[tag] = v
		}
	}
	return sortedEntries(values)
}

func sortedEntries(values map[string]string) []domain.GenericDataEntry {
	out := make([]domain.GenericDataEntry, 0, len(values))
	for tag, v := range values {
		out = append(out, domain.GenericDataEntry{Tag: tag, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Tags returns the sorted tag names with any stored history.
func (s *GenericDataSlice) Tags() []string {
	out := make([]string, 0, len(s.tags))
	for tag := range s.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// NumItems returns the total number of stored points across all tags.
func (s *GenericDataSlice) NumItems() int {
	n := 0
	for _, tl := range s.tags {
		n += len(tl)
	}
	return n
}

// FirstTime returns the earliest point time, or +MaxFloat64 when empty.
func (s *GenericDataSlice) FirstTime() float64 {
	first := math.MaxFloat64
	for _, tl := range s.tags {
		if len(tl) > 0 && tl[0].time < first {
			first = tl[0].time
		}
	}
	return first
}

// LastTime returns the latest point time, or -MaxFloat64 when empty.
func (s *GenericDataSlice) LastTime() float64 {
	last := -math.MaxFloat64
	for _, tl := range s.tags {
		if len(tl) > 0 && tl[len(tl)-1].time > last {
			last = tl[len(tl)-1].time
		}
	}
	return last
}

// limitByPoints caps each tag's timeline to its newest n points.
func (s *GenericDataSlice) limitByPoints(n uint32) int {
	if n == 0 {
		return 0
	}
	dropped := 0
	for tag, tl := range s.tags {
		if len(tl) <= int(n) {
			continue
		}
		drop := len(tl) - int(n)
		s.tags[tag] = append(tl[:0], tl[drop:]...)
		dropped += drop
	}
	if dropped > 0 {
		s.resolved = false
	}
	return dropped
}

// limitByTime drops points older than window seconds before each tag's
// newest point. The newest point always survives.
func (s *GenericDataSlice) limitByTime(window float64) int {
	if window <= 0 {
		return 0
	}
	dropped := 0
	for tag, tl := range s.tags {
		if len(tl) == 0 {
			continue
		}
		cutoff := tl[len(tl)-1].time - window
		drop := sort.Search(len(tl), func(i int) bool { return tl[i].time >= cutoff })
		if drop == 0 {
			continue
		}
		s.tags[tag] = append(tl[:0], tl[drop:]...)
		dropped += drop
	}
	if dropped > 0 {
		s.resolved = false
	}
	return dropped
}

// flush discards all tags and points.
func (s *GenericDataSlice) flush() int {
	n := s.NumItems()
	s.tags = make(map[string][]genericEntry)
	s.lastValues = nil
	s.resolved = false
	return n
}

// flushRange discards points with times in [start, end). Tags left empty
// are removed.
func (s *GenericDataSlice) flushRange(start, end float64) int {
	dropped := 0
	for tag, tl := range s.tags {
		kept := tl[:0]
		for _, e := range tl {
			if e.time >= start && e.time < end {
				dropped++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(s.tags, tag)
		} else {
			s.tags[tag] = kept
		}
	}
	if dropped > 0 {
		s.resolved = false
	}
	return dropped
}
