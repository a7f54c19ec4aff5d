package core

import (
	"testing"

	"trackstore/pkg/domain"
)

func nameCommand(t float64, name string) *domain.Command[domain.PlatformPrefs] {
	return &domain.Command[domain.PlatformPrefs]{
		Time:  t,
		Prefs: &domain.PlatformPrefs{Common: domain.CommonPrefs{Name: strp(name)}},
	}
}

func clearNameCommand(t float64) *domain.Command[domain.PlatformPrefs] {
	return &domain.Command[domain.PlatformPrefs]{
		Time:  t,
		Prefs: &domain.PlatformPrefs{Common: domain.CommonPrefs{Name: strp("")}},
		Clear: true,
	}
}

func TestCommandSliceForwardReplay(t *testing.T) {
	cs := newCommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]()
	cs.insert(nameCommand(2, "alpha"))
	cs.insert(nameCommand(4, "bravo"))

	prefs := &domain.PlatformPrefs{}

	cs.update(prefs, 1)
	if prefs.Common.Name != nil {
		t.Fatalf("no command due before t=2, got name %q", *prefs.Common.Name)
	}

	cs.update(prefs, 3)
	if !cs.HasChanged() {
		t.Fatalf("expected change when the first command executes")
	}
	if prefs.Common.Name == nil || *prefs.Common.Name != "alpha" {
		t.Fatalf("expected name alpha at t=3, got %v", prefs.Common.Name)
	}

	cs.update(prefs, 3.5)
	if cs.HasChanged() {
		t.Fatalf("no new command between t=3 and t=3.5")
	}

	cs.update(prefs, 4)
	if prefs.Common.Name == nil || *prefs.Common.Name != "bravo" {
		t.Fatalf("expected name bravo at t=4, got %v", prefs.Common.Name)
	}
}

func TestCommandSliceClearCommand(t *testing.T) {
	cs := newCommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]()
	cs.insert(nameCommand(2, "alpha"))
	cs.insert(clearNameCommand(5))

	prefs := &domain.PlatformPrefs{}

	cs.update(prefs, 3)
	if prefs.Common.Name == nil || *prefs.Common.Name != "alpha" {
		t.Fatalf("expected name alpha before the clear, got %v", prefs.Common.Name)
	}

	cs.update(prefs, 6)
	if prefs.Common.Name != nil {
		t.Fatalf("clear command should unset the name, got %q", *prefs.Common.Name)
	}

	// The clear also purges the replay cache, so later updates do not
	// resurrect the value.
	cs.update(prefs, 7)
	if prefs.Common.Name != nil {
		t.Fatalf("cleared field must stay unset, got %q", *prefs.Common.Name)
	}
}

func TestCommandSliceEffectsStickyGoingBackward(t *testing.T) {
	cs := newCommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]()
	cs.insert(nameCommand(2, "alpha"))

	prefs := &domain.PlatformPrefs{}
	cs.update(prefs, 3)
	if prefs.Common.Name == nil || *prefs.Common.Name != "alpha" {
		t.Fatalf("expected name alpha, got %v", prefs.Common.Name)
	}

	// Time moves back below the command. The merge already applied to prefs
	// is not undone.
	cs.update(prefs, 1)
	if prefs.Common.Name == nil || *prefs.Common.Name != "alpha" {
		t.Fatalf("command effects must stay applied when time moves back")
	}
}

func TestCommandSliceBackInsertForcesRebuild(t *testing.T) {
	cs := newCommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]()
	cs.insert(nameCommand(5, "late"))

	prefs := &domain.PlatformPrefs{}
	cs.update(prefs, 6)
	if *prefs.Common.Name != "late" {
		t.Fatalf("expected name late, got %v", prefs.Common.Name)
	}

	// A command inserted behind the replay point must take effect on the
	// next update even though time does not move.
	cs.insert(&domain.Command[domain.PlatformPrefs]{
		Time:  2,
		Prefs: &domain.PlatformPrefs{Icon: strp("jet")},
	})
	cs.update(prefs, 6)
	if !cs.HasChanged() {
		t.Fatalf("rebuild should report a change")
	}
	if prefs.Icon == nil || *prefs.Icon != "jet" {
		t.Fatalf("expected back-inserted command applied, got %v", prefs.Icon)
	}
	if *prefs.Common.Name != "late" {
		t.Fatalf("rebuild must preserve later command effects")
	}
}

func TestCommandSliceSameTimeInsertMerges(t *testing.T) {
	cs := newCommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]()
	cs.insert(nameCommand(2, "alpha"))
	cs.insert(&domain.Command[domain.PlatformPrefs]{
		Time:  2,
		Prefs: &domain.PlatformPrefs{Icon: strp("jet")},
	})

	if cs.NumItems() != 1 {
		t.Fatalf("same-time insert should merge, got %d commands", cs.NumItems())
	}
	merged := cs.At(0)
	if merged.Prefs.Common.Name == nil || merged.Prefs.Icon == nil {
		t.Fatalf("merged command should carry both fields: %+v", merged.Prefs)
	}
}

func TestCommandSliceLimiting(t *testing.T) {
	cs := newCommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]()
	for i := 0; i < 5; i++ {
		cs.insert(nameCommand(float64(i), "n"))
	}
	if dropped := cs.limitByPoints(3); dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", dropped)
	}
	if cs.FirstTime() != 2 {
		t.Fatalf("expected newest commands kept, first now %v", cs.FirstTime())
	}
	if dropped := cs.limitByTime(1.5); dropped != 1 {
		t.Fatalf("expected 1 dropped by window, got %d", dropped)
	}
}
