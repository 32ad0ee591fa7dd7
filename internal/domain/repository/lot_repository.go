package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes y números de serie.
type LotRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe (product_id, name).
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	FindByName(ctx context.Context, productID, name string) (*entity.Lot, error)
}
