package repository

import (
	"context"

	"github.com/alexanderramin/etude/internal/db"
	"github.com/alexanderramin/etude/internal/domain"
)

// SQLFamilyResetter implements FamilyResetter with tx-scoped repositories.
type SQLFamilyResetter struct {
	uow db.UnitOfWork
}

func NewSQLFamilyResetter(uow db.UnitOfWork) *SQLFamilyResetter {
	return &SQLFamilyResetter{uow: uow}
}

func (r *SQLFamilyResetter) ResetFamily(ctx context.Context, userID string, family domain.Family) (FamilyResetResult, error) {
	var res FamilyResetResult
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := NewSQLStatusRepo(tx).DeleteFamily(ctx, userID, family)
		if err != nil {
			return err
		}
		res.Statuses = n

		n, err = NewSQLBPMRepo(tx).DeleteFamily(ctx, userID, family)
		if err != nil {
			return err
		}
		res.BPMs = n
		return nil
	})
	if err != nil {
		return FamilyResetResult{}, err
	}
	return res, nil
}
