package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// MoveRepository define el puerto de persistencia para líneas planificadas.
type MoveRepository interface {
	Create(ctx context.Context, move *entity.Move) error
	// FindByTransferAndProduct devuelve la primera línea planificada del producto o nil.
	FindByTransferAndProduct(ctx context.Context, transferID, productID string) (*entity.Move, error)
	ListByTransfer(ctx context.Context, transferID string) ([]*entity.Move, error)
	UpdateState(ctx context.Context, id, state string) error
}
