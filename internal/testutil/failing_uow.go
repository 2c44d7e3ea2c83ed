package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/etude/internal/db"
)

// FailOnNthExecUoW wraps a UnitOfWork and, while armed, fails the Nth
// ExecContext of every transaction so the whole transaction rolls back.
// Reads are not counted.
type FailOnNthExecUoW struct {
	inner  db.UnitOfWork
	failOn atomic.Int32
	err    error
}

// NewFailOnNthExecUoW arms inner to fail on exec n with err (ErrInjected
// when nil). n == 0 starts disarmed.
func NewFailOnNthExecUoW(inner db.UnitOfWork, n int32, err error) *FailOnNthExecUoW {
	if err == nil {
		err = ErrInjected
	}
	u := &FailOnNthExecUoW{inner: inner, err: err}
	u.failOn.Store(n)
	return u
}

// FailOn re-arms the wrapper; 0 lets every transaction through.
func (u *FailOnNthExecUoW) FailOn(n int32) { u.failOn.Store(n) }

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	n := u.failOn.Load()
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if n == 0 {
			return fn(ctx, tx)
		}
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: n, err: u.err})
	})
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
