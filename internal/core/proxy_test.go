package core

import (
	"testing"

	"trackstore/pkg/domain"
)

func TestProxyDelegates(t *testing.T) {
	inner := NewMemoryDataStore()
	p := NewDataStoreProxy(inner)

	props, txn := p.AddPlatform()
	txn.Complete()
	if p.ObjectTypeOf(props.ID) != domain.Platform {
		t.Fatalf("proxy must delegate to the wrapped store")
	}
	if inner.ObjectTypeOf(props.ID) != domain.Platform {
		t.Fatalf("the wrapped store must hold the entity")
	}
}

func TestProxyResetCarriesObserversAndSettings(t *testing.T) {
	first := NewMemoryDataStore()
	p := NewDataStoreProxy(first)

	rec := &recordingListener{}
	p.AddListener(rec)
	p.SetInterpolator(NewLinearInterpolator())
	p.EnableInterpolation(true)
	p.SetDataLimiting(true)

	second := NewMemoryDataStore()
	p.Reset(second)
	if p.Store() != DataStore(second) {
		t.Fatalf("proxy must now wrap the replacement store")
	}
	if !second.IsInterpolationEnabled() || second.Interpolator() == nil {
		t.Fatalf("interpolation settings must carry over")
	}
	if !second.DataLimiting() {
		t.Fatalf("data limiting must carry over")
	}

	_, txn := p.AddPlatform()
	txn.Complete()
	if rec.added != 1 {
		t.Fatalf("listener must be registered on the new store, got %d", rec.added)
	}

	// The old store no longer reaches proxy-registered observers.
	_, oldTxn := first.AddPlatform()
	oldTxn.Complete()
	if rec.added != 1 {
		t.Fatalf("old store must not notify after reset, got %d", rec.added)
	}
}

func TestProxyResetIgnoresNilAndSelf(t *testing.T) {
	inner := NewMemoryDataStore()
	p := NewDataStoreProxy(inner)
	p.Reset(nil)
	if p.Store() != DataStore(inner) {
		t.Fatalf("nil reset must be ignored")
	}
	p.Reset(inner)
	if p.Store() != DataStore(inner) {
		t.Fatalf("self reset must be ignored")
	}
}
