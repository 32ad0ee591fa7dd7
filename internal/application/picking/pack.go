package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PutInPack crea un paquete desechable con el siguiente nombre de la secuencia y lo asigna
// como paquete resultado de las líneas. El peso es la suma de cantidad * peso unitario.
// Los ids repetidos se empacan una sola vez.
func PutInPack(ctx context.Context, store repository.Store, companyID string, lineIDs []string) (*entity.Package, error) {
	ids := uniqueIDs(lineIDs)
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}

	quantities := make([]decimal.Decimal, 0, len(ids))
	weights := make([]decimal.Decimal, 0, len(ids))
	for _, id := range ids {
		line, err := store.MoveLines().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if line == nil {
			return nil, fmt.Errorf("línea %s: %w", id, domain.ErrNotFound)
		}
		product, err := store.Products().GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		unit := decimal.Zero
		if product != nil {
			unit = product.Weight
		}
		quantities = append(quantities, line.Quantity)
		weights = append(weights, unit)
	}

	name, err := store.Packages().NextName(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	pkg := &entity.Package{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       name,
		PackageUse: entity.PackageUseDisposable,
		Weight:     inventory.PackageWeight(quantities, weights),
		PackDate:   now,
		CreatedAt:  now,
	}
	if err := store.Packages().Create(ctx, pkg); err != nil {
		return nil, err
	}
	if err := store.MoveLines().SetResultPackage(ctx, ids, pkg.ID); err != nil {
		return nil, err
	}
	return pkg, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
