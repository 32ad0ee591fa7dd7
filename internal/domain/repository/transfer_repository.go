package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para transferencias.
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila de la transferencia hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Transfer, error)
	// ListBackorders devuelve los backorders creados al validar originID.
	ListBackorders(ctx context.Context, originID string) ([]*entity.Transfer, error)
	UpdateState(ctx context.Context, id, state string, dateDone *time.Time) error
	SetBatch(ctx context.Context, id string, batchID *string) error
}
