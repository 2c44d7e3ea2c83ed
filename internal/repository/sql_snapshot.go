package repository

import (
	"context"

	"github.com/alexanderramin/etude/internal/db"
	"github.com/alexanderramin/etude/internal/domain"
)

// SQLSnapshotRecorder implements SnapshotRecorder with tx-scoped repositories.
type SQLSnapshotRecorder struct {
	uow     db.UnitOfWork
	logOpts []LogRepoOption
}

func NewSQLSnapshotRecorder(uow db.UnitOfWork, opts ...LogRepoOption) *SQLSnapshotRecorder {
	return &SQLSnapshotRecorder{uow: uow, logOpts: opts}
}

func (r *SQLSnapshotRecorder) RecordSnapshot(ctx context.Context, userID string, bpm domain.BPMEntry, draft domain.LogDraft) (SnapshotResult, error) {
	var res SnapshotResult
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		bpms := NewSQLBPMRepo(tx)
		raised, err := bpms.Raise(ctx, userID, bpm)
		if err != nil {
			return err
		}
		res.Raised = raised
		res.BPM = bpm.BPM
		if !raised {
			if res.BPM, err = bpms.Get(ctx, userID, bpm.ID); err != nil {
				return err
			}
		}

		res.Entry, err = NewSQLPracticeLogRepo(tx, r.logOpts...).Insert(ctx, userID, draft)
		return err
	})
	if err != nil {
		return SnapshotResult{}, err
	}
	return res, nil
}
