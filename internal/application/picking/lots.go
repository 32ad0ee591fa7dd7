package picking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// FindOrCreateLot busca el lote (producto, nombre) y lo crea si no existe.
// La unicidad es por producto: la empresa del lote es la del producto.
// Si otra transacción lo crea en paralelo (ErrDuplicate) se relee el existente.
func FindOrCreateLot(ctx context.Context, lots repository.LotRepository, product *entity.Product, name string) (*entity.Lot, error) {
	name = inventory.NormalizeToken(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	lot, err := lots.FindByName(ctx, product.ID, name)
	if err != nil {
		return nil, err
	}
	if lot != nil {
		return lot, nil
	}
	lot = &entity.Lot{
		ID:        uuid.New().String(),
		CompanyID: product.CompanyID,
		ProductID: product.ID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := lots.Create(ctx, lot); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return lots.FindByName(ctx, product.ID, name)
	}
	return lot, nil
}
