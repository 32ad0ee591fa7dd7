package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// MoveLineRepository define el puerto de persistencia para líneas realizadas.
// Find devuelve las líneas en el orden por defecto del almacén (id de creación).
type MoveLineRepository interface {
	Create(ctx context.Context, line *entity.MoveLine) error
	GetByID(ctx context.Context, id string) (*entity.MoveLine, error)
	Find(ctx context.Context, filter entity.MoveLineFilter) ([]*entity.MoveLine, error)
	ListByTransfer(ctx context.Context, transferID string) ([]*entity.MoveLine, error)
	Update(ctx context.Context, line *entity.MoveLine) error
	SetResultPackage(ctx context.Context, ids []string, packageID string) error
}
