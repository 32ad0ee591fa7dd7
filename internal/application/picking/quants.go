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

// addToQuant suma delta a las existencias de la clave, creando el registro si no existe.
// Se permiten existencias negativas (salidas sin entrada previa registrada).
func addToQuant(ctx context.Context, quants repository.QuantRepository, key entity.QuantKey, delta decimal.Decimal, now time.Time) error {
	q, err := quants.Find(ctx, key)
	if err != nil {
		return err
	}
	if q == nil {
		return quants.Create(ctx, &entity.Quant{
			ID:         uuid.New().String(),
			CompanyID:  key.CompanyID,
			LocationID: key.LocationID,
			ProductID:  key.ProductID,
			LotID:      key.LotID,
			PackageID:  key.PackageID,
			OwnerID:    key.OwnerID,
			Quantity:   delta,
			UpdatedAt:  now,
		})
	}
	q.Quantity = q.Quantity.Add(delta)
	q.UpdatedAt = now
	return quants.Update(ctx, q)
}

// ApplyAdjustment aplica la cantidad contada de un quant: las existencias pasan a ser
// la cantidad contada, se registra un asiento ADJUSTMENT por la diferencia y se limpian
// los campos de conteo.
func ApplyAdjustment(ctx context.Context, store repository.Store, quantID, userID string) error {
	q, err := store.Quants().GetByID(ctx, quantID)
	if err != nil {
		return err
	}
	if q == nil {
		return fmt.Errorf("quant %s: %w", quantID, domain.ErrNotFound)
	}
	if !q.InventoryQuantitySet {
		return fmt.Errorf("quant %s sin cantidad contada: %w", quantID, domain.ErrInvalidInput)
	}

	now := time.Now()
	delta := inventory.AdjustmentDelta(q.Quantity, q.InventoryQuantity)
	date := now
	if q.InventoryDate != nil {
		date = *q.InventoryDate
	}

	q.Quantity = q.InventoryQuantity
	q.InventoryQuantity = decimal.Zero
	q.InventoryQuantitySet = false
	q.InventoryDate = nil
	q.UpdatedAt = now
	if err := store.Quants().Update(ctx, q); err != nil {
		return err
	}
	if delta.IsZero() {
		return nil
	}
	return store.Movements().Create(ctx, &entity.InventoryMovement{
		ID:            uuid.New().String(),
		TransactionID: q.ID,
		CompanyID:     q.CompanyID,
		ProductID:     q.ProductID,
		LocationID:    q.LocationID,
		LocationDest:  q.LocationID,
		LotID:         q.LotID,
		Type:          entity.MovementTypeADJUSTMENT,
		Quantity:      delta,
		Date:          date,
		CreatedAt:     now,
		CreatedBy:     userID,
	})
}
