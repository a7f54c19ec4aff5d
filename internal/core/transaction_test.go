package core

import "testing"

func TestTransactionCommitThenRelease(t *testing.T) {
	commits, releases := 0, 0
	txn := newTransaction(func() { commits++ }, func() { releases++ })

	txn.Commit()
	if commits != 1 || releases != 0 {
		t.Fatalf("release must wait for Release, got %d/%d", commits, releases)
	}
	txn.Commit() // republish is allowed
	txn.Release()
	if commits != 2 || releases != 1 {
		t.Fatalf("got %d commits, %d releases", commits, releases)
	}

	txn.Release() // idempotent
	if releases != 1 {
		t.Fatalf("release must fire once, got %d", releases)
	}
}

func TestTransactionReleaseWithoutCommitSkipsNotification(t *testing.T) {
	releases := 0
	txn := newTransaction(nil, func() { releases++ })
	txn.Release()
	if releases != 0 {
		t.Fatalf("uncommitted release must not notify, got %d", releases)
	}
}

func TestTransactionNilFuncsAreSafe(t *testing.T) {
	txn := newTransaction(nil, nil)
	txn.Complete()
}

func TestTransactionCommitAfterReleasePanics(t *testing.T) {
	txn := newTransaction(nil, nil)
	txn.Release()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	txn.Commit()
}
