package core

// Transaction is the handle returned by every store operation that exposes
// mutable state. Changes become visible to other readers on Commit and
// observer notifications fire on Release, so a caller batches edits, commits
// them, and releases to publish. Complete is the common commit-then-release
// shorthand.
//
// A transaction must be released exactly once. Committing after release is
// a programming error and panics.
type Transaction struct {
	commit  func()
	release func()

	committed bool
	released  bool
}

func newTransaction(commit, release func()) *Transaction {
	return &Transaction{commit: commit, release: release}
}

// Commit publishes the staged changes to the store. It may be called more
// than once; each call republishes the handle's current state.
func (t *Transaction) Commit() {
	if t.released {
		panic("core: Commit on released transaction")
	}
	if t.commit != nil {
		t.commit()
	}
	t.committed = true
}

// Release finalizes the transaction. If anything was committed, observer
// notifications fire here. Releasing an uncommitted transaction abandons
// the staged changes. Release is idempotent.
func (t *Transaction) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.committed && t.release != nil {
		t.release()
	}
}

// Complete commits and releases in one step.
func (t *Transaction) Complete() {
	t.Commit()
	t.Release()
}
