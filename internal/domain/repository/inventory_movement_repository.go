package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de inventario (solo inserción).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.InventoryMovement, error)
}
