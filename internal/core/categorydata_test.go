package core

import (
	"testing"

	"trackstore/pkg/domain"
)

func categoryPoint(t float64, name, value string) *domain.CategoryData {
	return &domain.CategoryData{
		Time:    t,
		Entries: []domain.CategoryDataEntry{{Name: name, Value: value}},
	}
}

func TestCategoryDataValuesAreSticky(t *testing.T) {
	s := newCategoryDataSlice()
	s.insert(categoryPoint(0, "affinity", "friendly"))
	s.insert(categoryPoint(5, "affinity", "hostile"))

	if got := s.ValuesAt(3); len(got) != 1 || got[0].Value != "friendly" {
		t.Fatalf("expected friendly at t=3, got %+v", got)
	}
	// No expiry: far past the last assignment the value still holds.
	if got := s.ValuesAt(1000); len(got) != 1 || got[0].Value != "hostile" {
		t.Fatalf("expected hostile to persist, got %+v", got)
	}
}

func TestCategoryDataSameTimeReplaces(t *testing.T) {
	s := newCategoryDataSlice()
	s.insert(categoryPoint(1, "affinity", "friendly"))
	s.insert(categoryPoint(1, "affinity", "neutral"))

	if s.NumItems() != 1 {
		t.Fatalf("same-time insert should replace, got %d points", s.NumItems())
	}
	if got := s.ValuesAt(1); got[0].Value != "neutral" {
		t.Fatalf("expected the replacement value, got %+v", got)
	}
}

func TestCategoryDataRemovePoint(t *testing.T) {
	s := newCategoryDataSlice()
	s.insert(categoryPoint(1, "affinity", "friendly"))
	s.insert(categoryPoint(2, "affinity", "hostile"))

	if !s.removePoint("affinity", 2) {
		t.Fatalf("expected removal of existing point")
	}
	if s.removePoint("affinity", 2) {
		t.Fatalf("second removal should report absence")
	}
	if got := s.ValuesAt(10); got[0].Value != "friendly" {
		t.Fatalf("expected fallback to remaining point, got %+v", got)
	}

	if !s.removePoint("affinity", 1) {
		t.Fatalf("expected removal of last point")
	}
	if len(s.Names()) != 0 {
		t.Fatalf("category left empty should be removed")
	}
}

func TestCategoryDataUpdateChangeDetection(t *testing.T) {
	s := newCategoryDataSlice()
	s.insert(categoryPoint(0, "affinity", "friendly"))
	s.insert(categoryPoint(5, "affinity", "hostile"))

	if !s.update(1) {
		t.Fatalf("first update should report a change")
	}
	if s.update(2) {
		t.Fatalf("unchanged value set should not report a change")
	}
	if !s.update(6) {
		t.Fatalf("value transition should report a change")
	}
}

func TestCategoryDataFlushKeepsStaticPoints(t *testing.T) {
	s := newCategoryDataSlice()
	s.insert(categoryPoint(domain.StaticTime, "kind", "site"))
	s.insert(categoryPoint(3, "affinity", "friendly"))

	s.flush(true)
	names := s.Names()
	if len(names) != 1 || names[0] != "kind" {
		t.Fatalf("expected only the static point to survive, got %v", names)
	}

	s.flush(false)
	if len(s.Names()) != 0 {
		t.Fatalf("full flush should drop static points too")
	}
}
