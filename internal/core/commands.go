package core

import (
	"math"

	"trackstore/pkg/domain"
)

// prefsPtr constrains a pointer-to-prefs type to the operations command
// replay and the store need from every prefs struct.
type prefsPtr[P any] interface {
	*P
	MergeFrom(*P)
	ClearFieldsSetIn(*P)
	CommonPrefs() *domain.CommonPrefs
	Clone() *P
}

// CommandSlice holds an entity's time-ordered commands and replays them onto
// the entity's preferences as the store's time moves. Replayed state
// accumulates in a cache so that commands stay in effect after their time
// has passed; a clear command removes fields from both the cache and the
// live prefs.
type CommandSlice[P any, PP prefsPtr[P]] struct {
	data []*domain.Command[P]

	// cache is the merged effect of every command replayed so far. It is
	// re-merged onto prefs at each update so command state overrides any
	// prefs edits made in between.
	cache P

	lastUpdateTime float64
	// earliestInsert tracks the oldest command added since the last replay;
	// an insert behind lastUpdateTime forces a replay from scratch.
	earliestInsert float64
	changed        bool
}

func newCommandSlice[P any, PP prefsPtr[P]]() *CommandSlice[P, PP] {
	return &CommandSlice[P, PP]{
		lastUpdateTime: -math.MaxFloat64,
		earliestInsert: math.MaxFloat64,
	}
}

// insert adds cmd in time order. A command at exactly the same time is
// merged field-wise rather than duplicated.
func (s *CommandSlice[P, PP]) insert(cmd *domain.Command[P]) {
	if cmd.Time < s.earliestInsert {
		s.earliestInsert = cmd.Time
	}
	idx := lowerBound(s.data, cmd.Time)
	if idx < len(s.data) && s.data[idx].Time == cmd.Time {
		existing := s.data[idx]
		if existing.Prefs == nil {
			existing.Prefs = cmd.Prefs
		} else if cmd.Prefs != nil {
			PP(existing.Prefs).MergeFrom(cmd.Prefs)
		}
		existing.Clear = cmd.Clear
		return
	}
	s.data = append(s.data, cmd)
	copy(s.data[idx+1:], s.data[idx:])
	s.data[idx] = cmd
}

// currentCommand returns the latest command at or before lastUpdateTime.
func (s *CommandSlice[P, PP]) currentCommand() *domain.Command[P] {
	idx := upperBound(s.data, s.lastUpdateTime)
	if idx == 0 {
		return nil
	}
	return s.data[idx-1]
}

// update replays commands onto prefs for the move to time t. Moving forward
// replays only the commands in (lastUpdateTime, t]; moving backward, or
// inserting behind the replay point, rebuilds the cache from the beginning.
// Command effects already merged into prefs are not undone when t drops
// below a command's time.
func (s *CommandSlice[P, PP]) update(prefs PP, t float64) {
	s.changed = false

	if len(s.data) == 0 || t < s.data[0].Time {
		s.reset()
		return
	}

	last := s.currentCommand()
	if (last == nil || t >= last.Time) && s.earliestInsert > s.lastUpdateTime {
		s.changed = s.advance(prefs, s.lastUpdateTime, t)
		prefs.MergeFrom(&s.cache)
	} else {
		s.reset()
		s.advance(prefs, -math.MaxFloat64, t)
		s.changed = true
		prefs.MergeFrom(&s.cache)
	}
	s.earliestInsert = math.MaxFloat64
}

// advance applies every command in (startTime, t] to the cache, and clear
// commands to prefs as well. Reports whether any command executed.
func (s *CommandSlice[P, PP]) advance(prefs PP, startTime, t float64) bool {
	if t < startTime {
		return false
	}
	executed := false
	for _, cmd := range s.data[upperBound(s.data, startTime):upperBound(s.data, t)] {
		if cmd.Prefs == nil {
			continue
		}
		if cmd.Clear {
			prefs.ClearFieldsSetIn(cmd.Prefs)
			PP(&s.cache).ClearFieldsSetIn(cmd.Prefs)
		} else {
			PP(&s.cache).MergeFrom(cmd.Prefs)
		}
		executed = true
		s.lastUpdateTime = cmd.Time
	}
	return executed
}

func (s *CommandSlice[P, PP]) reset() {
	s.changed = true
	var empty P
	s.cache = empty
	s.lastUpdateTime = -math.MaxFloat64
	s.earliestInsert = math.MaxFloat64
}

// HasChanged reports whether the last update pass executed or reset
// commands.
func (s *CommandSlice[P, PP]) HasChanged() bool { return s.changed }

// NumItems returns the number of stored commands.
func (s *CommandSlice[P, PP]) NumItems() int { return len(s.data) }

// At returns the i'th command in time order.
func (s *CommandSlice[P, PP]) At(i int) *domain.Command[P] { return s.data[i] }

// FirstTime returns the earliest command time, or +MaxFloat64 when empty.
func (s *CommandSlice[P, PP]) FirstTime() float64 {
	if len(s.data) == 0 {
		return math.MaxFloat64
	}
	return s.data[0].Time
}

// LastTime returns the latest command time, or -MaxFloat64 when empty.
func (s *CommandSlice[P, PP]) LastTime() float64 {
	if len(s.data) == 0 {
		return -math.MaxFloat64
	}
	return s.data[len(s.data)-1].Time
}

// ForEach visits every command in time order until fn returns false.
func (s *CommandSlice[P, PP]) ForEach(fn func(*domain.Command[P]) bool) {
	for _, c := range s.data {
		if !fn(c) {
			return
		}
	}
}

func (s *CommandSlice[P, PP]) limitByPoints(n uint32) int {
	if n == 0 || len(s.data) <= int(n) {
		return 0
	}
	drop := len(s.data) - int(n)
	s.data = append(s.data[:0], s.data[drop:]...)
	return drop
}

func (s *CommandSlice[P, PP]) limitByTime(window float64) int {
	if window <= 0 || len(s.data) == 0 {
		return 0
	}
	cutoff := s.data[len(s.data)-1].Time - window
	drop := lowerBound(s.data, cutoff)
	if drop == 0 {
		return 0
	}
	s.data = append(s.data[:0], s.data[drop:]...)
	return drop
}

func (s *CommandSlice[P, PP]) flush() int {
	n := len(s.data)
	s.data = nil
	s.earliestInsert = math.MaxFloat64
	return n
}

func (s *CommandSlice[P, PP]) flushRange(start, end float64) int {
	lo := lowerBound(s.data, start)
	hi := lowerBound(s.data, end)
	if hi <= lo {
		return 0
	}
	n := hi - lo
	s.data = append(s.data[:lo], s.data[hi:]...)
	s.earliestInsert = math.MaxFloat64
	return n
}
