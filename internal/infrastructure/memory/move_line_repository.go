package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

type moveRepo struct{ t *tables }

var _ repository.MoveRepository = moveRepo{}

func (r moveRepo) Create(_ context.Context, m *entity.Move) error {
	return r.t.moves.insert(m.ID, *m)
}

func (r moveRepo) FindByTransferAndProduct(_ context.Context, transferID, productID string) (*entity.Move, error) {
	return r.t.moves.first(func(m *entity.Move) bool {
		return m.TransferID == transferID && m.ProductID == productID
	}), nil
}

func (r moveRepo) ListByTransfer(_ context.Context, transferID string) ([]*entity.Move, error) {
	return r.t.moves.find(func(m *entity.Move) bool { return m.TransferID == transferID }, 0), nil
}

func (r moveRepo) UpdateState(_ context.Context, id, state string) error {
	return r.t.moves.update(id, func(m *entity.Move) {
		m.State = state
		m.UpdatedAt = time.Now()
	})
}

type moveLineRepo struct{ t *tables }

var _ repository.MoveLineRepository = moveLineRepo{}

func (r moveLineRepo) Create(_ context.Context, l *entity.MoveLine) error {
	return r.t.moveLines.insert(l.ID, *l)
}

func (r moveLineRepo) GetByID(_ context.Context, id string) (*entity.MoveLine, error) {
	return r.t.moveLines.get(id), nil
}

func (r moveLineRepo) Find(_ context.Context, f entity.MoveLineFilter) ([]*entity.MoveLine, error) {
	return r.t.moveLines.find(func(l *entity.MoveLine) bool { return matchLine(l, f) }, f.Limit), nil
}

func matchLine(l *entity.MoveLine, f entity.MoveLineFilter) bool {
	if f.TransferID != "" && l.TransferID != f.TransferID {
		return false
	}
	if f.ProductID != "" && l.ProductID != f.ProductID {
		return false
	}
	if f.Quantity != nil && !l.Quantity.Equal(*f.Quantity) {
		return false
	}
	if slices.Contains(f.ExcludeIDs, l.ID) {
		return false
	}
	switch {
	case f.LotID != nil:
		if l.LotID != nil {
			return *l.LotID == *f.LotID
		}
		return f.LotName != "" && l.LotName == f.LotName
	case f.LotName != "":
		return l.LotID == nil && l.LotName == f.LotName
	}
	return true
}

func (r moveLineRepo) ListByTransfer(_ context.Context, transferID string) ([]*entity.MoveLine, error) {
	return r.t.moveLines.find(func(l *entity.MoveLine) bool { return l.TransferID == transferID }, 0), nil
}

func (r moveLineRepo) Update(_ context.Context, l *entity.MoveLine) error {
	return r.t.moveLines.put(l.ID, *l)
}

func (r moveLineRepo) SetResultPackage(_ context.Context, ids []string, packageID string) error {
	now := time.Now()
	for _, id := range ids {
		err := r.t.moveLines.update(id, func(l *entity.MoveLine) {
			l.ResultPackageID = &packageID
			l.UpdatedAt = now
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type auditRepo struct{ t *tables }

var _ repository.AuditRepository = auditRepo{}

func (r auditRepo) Create(_ context.Context, e *entity.AuditEntry) error {
	return r.t.audit.insert(e.ID, *e)
}

func (r auditRepo) ListByTransfer(_ context.Context, transferID string) ([]*entity.AuditEntry, error) {
	return r.t.audit.find(func(e *entity.AuditEntry) bool { return e.TransferID == transferID }, 0), nil
}
