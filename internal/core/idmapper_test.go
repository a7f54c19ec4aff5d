package core

import (
	"testing"

	"trackstore/pkg/domain"
)

func platformWithOriginalID(t *testing.T, s *MemoryDataStore, originalID uint64, name string) domain.ObjectID {
	t.Helper()
	id := newPlatform(t, s, name)
	props, txn, err := s.MutablePlatformProperties(id)
	if err != nil {
		t.Fatalf("mutable properties: %v", err)
	}
	props.OriginalID = originalID
	txn.Complete()
	return id
}

func beamWithOriginalID(t *testing.T, s *MemoryDataStore, host domain.ObjectID, originalID uint64, name string) domain.ObjectID {
	t.Helper()
	props, txn, err := s.AddBeam(host)
	if err != nil {
		t.Fatalf("add beam: %v", err)
	}
	txn.Complete()
	mp, ptxn, err := s.MutableBeamProperties(props.ID)
	if err != nil {
		t.Fatalf("mutable beam properties: %v", err)
	}
	mp.OriginalID = originalID
	ptxn.Complete()
	if name != "" {
		prefs, ntxn, err := s.MutableBeamPrefs(props.ID)
		if err != nil {
			t.Fatalf("mutable beam prefs: %v", err)
		}
		prefs.Common.Name = strp(name)
		ntxn.Complete()
	}
	return props.ID
}

func TestIDMapperResolvesByOriginalID(t *testing.T) {
	s := NewMemoryDataStore()
	localID := platformWithOriginalID(t, s, 42, "alpha")

	m := NewDataStoreIDMapper(s)
	m.AddMapping(7, 42, "alpha", 7) // host == remote marks a platform

	if got := m.Map(7); got != localID {
		t.Fatalf("expected %v, got %v", localID, got)
	}
	if got := m.RemoteID(localID); got != 7 {
		t.Fatalf("reverse lookup expected 7, got %v", got)
	}
	if got := m.Map(99); got != domain.ScenarioID {
		t.Fatalf("unknown remote id must not resolve, got %v", got)
	}
}

func TestIDMapperDisambiguatesByHostPlatform(t *testing.T) {
	s := NewMemoryDataStore()
	hostA := platformWithOriginalID(t, s, 1, "shipA")
	hostB := platformWithOriginalID(t, s, 2, "shipB")
	beamA := beamWithOriginalID(t, s, hostA, 10, "radar")
	beamB := beamWithOriginalID(t, s, hostB, 10, "radar")

	m := NewDataStoreIDMapper(s)
	m.AddMapping(100, 1, "shipA", 100)
	m.AddMapping(200, 2, "shipB", 200)
	m.AddMapping(101, 10, "radar", 100)
	m.AddMapping(201, 10, "radar", 200)

	if got := m.Map(101); got != beamA {
		t.Fatalf("expected beam on shipA (%v), got %v", beamA, got)
	}
	if got := m.Map(201); got != beamB {
		t.Fatalf("expected beam on shipB (%v), got %v", beamB, got)
	}
}

func TestIDMapperDisambiguatesByName(t *testing.T) {
	s := NewMemoryDataStore()
	host := platformWithOriginalID(t, s, 1, "ship")
	search := beamWithOriginalID(t, s, host, 10, "search")
	beamWithOriginalID(t, s, host, 10, "track")

	m := NewDataStoreIDMapper(s)
	m.AddMapping(100, 1, "ship", 100)
	m.AddMapping(101, 10, "search", 100)

	if got := m.Map(101); got != search {
		t.Fatalf("expected the name to break the tie, got %v", got)
	}
}

func TestIDMapperInvalidatesOnEntityRemoval(t *testing.T) {
	s := NewMemoryDataStore()
	localID := platformWithOriginalID(t, s, 42, "alpha")

	m := NewDataStoreIDMapper(s)
	m.AddMapping(7, 42, "alpha", 7)
	if m.Map(7) != localID {
		t.Fatalf("mapping should resolve before removal")
	}

	if err := s.RemoveEntity(localID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := m.Map(7); got != domain.ScenarioID {
		t.Fatalf("stale resolution must be invalidated, got %v", got)
	}

	// A replacement entity with the same original id resolves fresh.
	replacement := platformWithOriginalID(t, s, 42, "alpha")
	if got := m.Map(7); got != replacement {
		t.Fatalf("expected re-resolution to %v, got %v", replacement, got)
	}
}

func TestIDMapperRemoveAndClear(t *testing.T) {
	s := NewMemoryDataStore()
	localID := platformWithOriginalID(t, s, 42, "alpha")

	m := NewDataStoreIDMapper(s)
	m.AddMapping(7, 42, "alpha", 7)
	m.Map(7)

	m.RemoveID(7)
	if got := m.Map(7); got != domain.ScenarioID {
		t.Fatalf("removed mapping must not resolve, got %v", got)
	}

	m.AddMapping(7, 42, "alpha", 7)
	if m.Map(7) != localID {
		t.Fatalf("re-added mapping should resolve")
	}
	m.ClearMappings()
	if got := m.Map(7); got != domain.ScenarioID {
		t.Fatalf("cleared mapper must not resolve, got %v", got)
	}
}
