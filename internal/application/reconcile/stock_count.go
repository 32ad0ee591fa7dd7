package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UpsertStockCounts registra cantidades contadas y aplica el ajuste de inventario de cada
// una. Cada conteo corre en su propia transacción: al primer fallo se detiene y los
// conteos anteriores quedan aplicados (Result.Applied los informa).
func (s *Service) UpsertStockCounts(ctx context.Context, actor Actor, counts []StockCount) Result {
	if len(counts) == 0 {
		r := failed(CodeStockQuantData, "No se recibieron datos de conteo.")
		s.logResult("stock_count", actor, r, 0, nil)
		return r
	}

	applied := 0
	for _, c := range counts {
		err := s.tx.Run(ctx, func(store repository.Store) error {
			return s.applyCount(ctx, store, actor, c)
		})
		if err != nil {
			r := failed(CodeBadRequest, "Error al registrar el conteo: "+err.Error())
			r.ProductID, r.LocationID, r.Applied = c.ProductID, c.LocationID, applied
			s.logResult("stock_count", actor, r, len(counts), err)
			return r
		}
		applied++
	}

	r := success(CodeSuccess, "Existencias actualizadas con las cantidades contadas.")
	r.Applied = applied
	s.logResult("stock_count", actor, r, len(counts), nil)
	return r
}

func (s *Service) applyCount(ctx context.Context, store repository.Store, actor Actor, c StockCount) error {
	if c.ProductID == "" || c.LocationID == "" {
		return &ResolutionError{ProductID: c.ProductID, LocationID: c.LocationID, Reason: "producto y ubicación son obligatorios"}
	}
	product, err := store.Products().GetByID(ctx, c.ProductID)
	if err != nil {
		return err
	}
	if product == nil || !actor.owns(product.CompanyID) {
		return &ResolutionError{ProductID: c.ProductID, LocationID: c.LocationID, Reason: "el producto no existe"}
	}
	location, err := store.Locations().GetByID(ctx, c.LocationID)
	if err != nil {
		return err
	}
	if location == nil || !location.KeepsStock() {
		return &ResolutionError{ProductID: c.ProductID, LocationID: c.LocationID, Reason: "la ubicación no lleva existencias"}
	}

	key := entity.QuantKey{
		CompanyID:  product.CompanyID,
		LocationID: location.ID,
		ProductID:  product.ID,
	}
	if c.OwnerID != "" {
		owner := c.OwnerID
		key.OwnerID = &owner
	}
	if key.PackageID, err = s.resolvePackage(ctx, store, product.CompanyID, c.Package); err != nil {
		return err
	}
	if token := inventory.NormalizeToken(c.LotToken); token != "" {
		lot, err := s.lots.FindOrCreate(ctx, store, product, token)
		if err != nil {
			return err
		}
		key.LotID = &lot.ID
	}

	quant, err := store.Quants().Find(ctx, key)
	if err != nil {
		return err
	}
	now := time.Now()
	created := quant == nil
	if created {
		quant = &entity.Quant{
			ID:         uuid.New().String(),
			CompanyID:  key.CompanyID,
			LocationID: key.LocationID,
			ProductID:  key.ProductID,
			LotID:      key.LotID,
			PackageID:  key.PackageID,
			OwnerID:    key.OwnerID,
			Quantity:   decimal.Zero,
		}
	}
	quant.InventoryQuantity = c.Counted
	quant.InventoryQuantitySet = true
	quant.InventoryDate = c.CountDate
	quant.UpdatedAt = now
	if created {
		err = store.Quants().Create(ctx, quant)
	} else {
		err = store.Quants().Update(ctx, quant)
	}
	if err != nil {
		return err
	}
	return picking.ApplyAdjustment(ctx, store, quant.ID, actor.UserID)
}

// resolvePackage acepta el id de un paquete o una etiqueta; una etiqueta desconocida crea
// un paquete desechable.
func (s *Service) resolvePackage(ctx context.Context, store repository.Store, companyID, ref string) (*string, error) {
	ref = inventory.NormalizeToken(ref)
	if ref == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(ref); err == nil {
		pkg, err := store.Packages().GetByID(ctx, ref)
		if err != nil {
			return nil, err
		}
		if pkg != nil {
			return &pkg.ID, nil
		}
	}
	pkg, err := store.Packages().FindByName(ctx, companyID, ref)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		now := time.Now()
		pkg = &entity.Package{
			ID:         uuid.New().String(),
			CompanyID:  companyID,
			Name:       ref,
			PackageUse: entity.PackageUseDisposable,
			PackDate:   now,
			CreatedAt:  now,
		}
		if err := store.Packages().Create(ctx, pkg); err != nil {
			return nil, fmt.Errorf("crear paquete %s: %w", ref, err)
		}
	}
	return &pkg.ID, nil
}
