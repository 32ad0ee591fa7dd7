package memory

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

type transferRepo struct{ t *tables }

var _ repository.TransferRepository = transferRepo{}

func (r transferRepo) Create(_ context.Context, tr *entity.Transfer) error {
	return r.t.transfers.insert(tr.ID, *tr)
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	return r.t.transfers.get(id), nil
}

// GetForUpdate no necesita bloqueo propio: Store.Run ya serializa las transacciones.
func (r transferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r transferRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.Transfer, error) {
	return r.t.transfers.find(func(tr *entity.Transfer) bool {
		return tr.BatchID != nil && *tr.BatchID == batchID
	}, 0), nil
}

func (r transferRepo) ListBackorders(_ context.Context, originID string) ([]*entity.Transfer, error) {
	return r.t.transfers.find(func(tr *entity.Transfer) bool {
		return tr.BackorderID != nil && *tr.BackorderID == originID
	}, 0), nil
}

func (r transferRepo) UpdateState(_ context.Context, id, state string, dateDone *time.Time) error {
	return r.t.transfers.update(id, func(tr *entity.Transfer) {
		tr.State = state
		tr.DateDone = dateDone
		tr.UpdatedAt = time.Now()
	})
}

func (r transferRepo) SetBatch(_ context.Context, id string, batchID *string) error {
	return r.t.transfers.update(id, func(tr *entity.Transfer) {
		tr.BatchID = batchID
		tr.UpdatedAt = time.Now()
	})
}

type batchRepo struct{ t *tables }

var _ repository.BatchRepository = batchRepo{}

func (r batchRepo) Create(_ context.Context, b *entity.Batch) error {
	return r.t.batches.insert(b.ID, *b)
}

func (r batchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return r.t.batches.get(id), nil
}

func (r batchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r batchRepo) UpdateState(_ context.Context, id, state string) error {
	return r.t.batches.update(id, func(b *entity.Batch) {
		b.State = state
		b.UpdatedAt = time.Now()
	})
}
