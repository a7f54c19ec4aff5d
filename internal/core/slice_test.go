package core

import (
	"math"
	"testing"

	"trackstore/pkg/domain"
)

func platformAt(t, x float64) *domain.PlatformUpdate {
	return &domain.PlatformUpdate{Time: t, Position: geoVec(x, 0, 0)}
}

func TestUpdateSliceInsertKeepsTimeOrder(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	s.insert(platformAt(2, 2))
	s.insert(platformAt(0, 0))
	s.insert(platformAt(1, 1))

	if s.NumItems() != 3 {
		t.Fatalf("expected 3 items, got %d", s.NumItems())
	}
	for i, want := range []float64{0, 1, 2} {
		if got := s.At(i).Time; got != want {
			t.Fatalf("item %d at time %v, want %v", i, got, want)
		}
	}
}

func TestUpdateSliceSameTimeReplaces(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	s.insert(platformAt(1, 10))
	s.insert(platformAt(1, 20))

	if s.NumItems() != 1 {
		t.Fatalf("expected latest write to win, got %d items", s.NumItems())
	}
	if got := s.At(0).Position.X; got != 20 {
		t.Fatalf("expected replacement value 20, got %v", got)
	}
}

func TestUpdateSliceResolve(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	s.insert(platformAt(0, 0))
	s.insert(platformAt(1, 1))
	s.insert(platformAt(2, 2))

	t.Run("before first record", func(t *testing.T) {
		s.resolve(-1, nil)
		if s.Current() != nil {
			t.Fatalf("expected no current record before first time")
		}
	})

	t.Run("exact hit", func(t *testing.T) {
		s.resolve(1, nil)
		cur := s.Current()
		if cur == nil || cur.Time != 1 {
			t.Fatalf("expected record at t=1, got %+v", cur)
		}
		if s.IsInterpolated() {
			t.Fatalf("exact hit must not be marked interpolated")
		}
	})

	t.Run("holds earlier without interpolator", func(t *testing.T) {
		s.resolve(1.5, nil)
		cur := s.Current()
		if cur == nil || cur.Time != 1 {
			t.Fatalf("expected hold at t=1, got %+v", cur)
		}
	})

	t.Run("interpolates between records", func(t *testing.T) {
		interp := func(a, b *domain.PlatformUpdate, tt float64) *domain.PlatformUpdate {
			out := a.Clone()
			out.Time = tt
			return out
		}
		s.resolve(1.5, interp)
		cur := s.Current()
		if cur == nil || cur.Time != 1.5 {
			t.Fatalf("expected synthesized record at t=1.5, got %+v", cur)
		}
		if !s.IsInterpolated() {
			t.Fatalf("expected interpolated flag")
		}
	})

	t.Run("past last record holds last", func(t *testing.T) {
		s.resolve(10, nil)
		cur := s.Current()
		if cur == nil || cur.Time != 2 {
			t.Fatalf("expected hold at t=2, got %+v", cur)
		}
	})
}

func TestUpdateSliceChangeDetection(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	s.insert(platformAt(0, 0))
	s.insert(platformAt(1, 1))

	s.resolve(0, nil)
	if !s.HasChanged() {
		t.Fatalf("first resolve should report a change")
	}
	s.resolve(0, nil)
	if s.HasChanged() {
		t.Fatalf("resolving the same time twice should not report a change")
	}
	s.resolve(1, nil)
	if !s.HasChanged() {
		t.Fatalf("moving to a new record should report a change")
	}
}

func TestUpdateSliceLimitByPoints(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	for i := 0; i < 5; i++ {
		s.insert(platformAt(float64(i), float64(i)))
	}
	dropped := s.limitByPoints(2)
	if dropped != 3 {
		t.Fatalf("expected 3 dropped, got %d", dropped)
	}
	if s.NumItems() != 2 || s.At(0).Time != 3 || s.At(1).Time != 4 {
		t.Fatalf("expected the two newest records to survive")
	}
}

func TestUpdateSliceLimitByTime(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	for i := 0; i < 5; i++ {
		s.insert(platformAt(float64(i), float64(i)))
	}
	s.limitByTime(1.5)
	if s.NumItems() != 2 || s.FirstTime() != 3 {
		t.Fatalf("expected trailing window [2.5, 4], got %d items starting %v",
			s.NumItems(), s.FirstTime())
	}
}

func TestUpdateSliceFlushKeepsSoleStaticRecord(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	s.insert(platformAt(domain.StaticTime, 0))

	if flushed := s.flush(true); flushed != 0 {
		t.Fatalf("static record should survive a keep-static flush, flushed %d", flushed)
	}
	if flushed := s.flush(false); flushed != 1 {
		t.Fatalf("expected the static record flushed, got %d", flushed)
	}
}

func TestUpdateSliceFlushRange(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	for i := 0; i < 5; i++ {
		s.insert(platformAt(float64(i), float64(i)))
	}
	// [1, 3) drops t=1 and t=2.
	if flushed := s.flushRange(1, 3); flushed != 2 {
		t.Fatalf("expected 2 records flushed, got %d", flushed)
	}
	if s.NumItems() != 3 || s.At(1).Time != 3 {
		t.Fatalf("unexpected survivors after range flush")
	}
}

func TestUpdateSliceTimeAccessorsEmpty(t *testing.T) {
	s := newUpdateSlice[*domain.PlatformUpdate]()
	if s.FirstTime() != math.MaxFloat64 {
		t.Fatalf("empty FirstTime should be +max")
	}
	if s.LastTime() != -math.MaxFloat64 {
		t.Fatalf("empty LastTime should be -max")
	}
}
