package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"trackstore/pkg/domain"
)

func TestExpvarMetricsRecorder(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")

	rec.Observe(context.Background(), "update", true, 2*time.Millisecond)
	rec.Observe(context.Background(), "update", false, time.Millisecond)
	rec.SetEntityCount(domain.Platform, 3)
	rec.AddPrunedPoints(5)
	rec.AddPrunedPoints(2)

	snap := rec.Snapshot()
	if snap.Results["update"]["success"] != 1 || snap.Results["update"]["error"] != 1 {
		t.Fatalf("result counters wrong: %+v", snap.Results)
	}
	if snap.DurationsMS["update"] != 3 {
		t.Fatalf("expected 3ms accumulated, got %v", snap.DurationsMS["update"])
	}
	if snap.Entities[domain.Platform.String()] != 3 {
		t.Fatalf("entity gauge wrong: %+v", snap.Entities)
	}
	if snap.Pruned != 7 {
		t.Fatalf("pruned total wrong: %d", snap.Pruned)
	}
}

func TestExpvarMetricsRecorderNamesAreUnique(t *testing.T) {
	a := NewExpvarMetricsRecorder("")
	b := NewExpvarMetricsRecorder("")
	if a.Name() == b.Name() {
		t.Fatalf("generated names must not collide: %q", a.Name())
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusMetricsRecorder(reg)

	rec.Observe(context.Background(), "update", true, time.Millisecond)
	rec.SetEntityCount(domain.Beam, 2)
	rec.AddPrunedPoints(4)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	seen := map[string]bool{}
	for _, mf := range families {
		seen[mf.GetName()] = true
	}
	for _, want := range []string{
		"trackstore_operation_duration_seconds",
		"trackstore_operation_results_total",
		"trackstore_entities",
		"trackstore_pruned_points_total",
	} {
		if !seen[want] {
			t.Fatalf("collector %s not registered, got %v", want, seen)
		}
	}
}

func TestStoreRecordsEntityCounts(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	s := NewMemoryDataStore(WithMetrics(rec))

	id := newPlatform(t, s, "")
	if got := rec.Snapshot().Entities[domain.Platform.String()]; got != 1 {
		t.Fatalf("expected gauge 1, got %d", got)
	}
	if err := s.RemoveEntity(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := rec.Snapshot().Entities[domain.Platform.String()]; got != 0 {
		t.Fatalf("expected gauge 0 after removal, got %d", got)
	}
}
