package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes de transferencias.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	UpdateState(ctx context.Context, id, state string) error
}
