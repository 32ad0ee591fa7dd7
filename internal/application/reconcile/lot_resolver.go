package reconcile

import (
	"context"

	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// ResolvedLot es el lote de una línea reportada.
// BindByName: la línea se vincula solo por nombre (recepción que crea lotes nuevos);
// ID sigue informando el lote subyacente.
type ResolvedLot struct {
	ID         string
	Name       string
	BindByName bool
}

// apply escribe el vínculo de lote en la línea.
func (l *ResolvedLot) apply(line *entity.MoveLine) {
	if l.BindByName {
		line.LotID = nil
		line.LotName = l.Name
		return
	}
	id := l.ID
	line.LotID = &id
	line.LotName = ""
}

// filter restringe la búsqueda de identidad al lote resuelto.
func (l *ResolvedLot) filter(f *entity.MoveLineFilter) {
	id := l.ID
	f.LotID = &id
	f.LotName = l.Name
}

// LotResolver resuelve lotes/series con política por tipo de operación.
type LotResolver struct{}

// Resolve devuelve el lote de la línea o nil si no trae lote.
// El token escaneado tiene prioridad sobre el id explícito; el id se usa tal cual.
func (LotResolver) Resolve(ctx context.Context, store repository.Store, transfer *entity.Transfer, product *entity.Product, token, lotID string) (*ResolvedLot, error) {
	token = inventory.NormalizeToken(token)
	if token == "" {
		if lotID == "" {
			return nil, nil
		}
		resolved := &ResolvedLot{ID: lotID}
		lot, err := store.Lots().GetByID(ctx, lotID)
		if err != nil {
			return nil, err
		}
		if lot != nil {
			if lot.ProductID != product.ID {
				return nil, resolutionErrorf(product.ID, "el lote %s es de otro producto", lot.Name)
			}
			resolved.Name = lot.Name
		}
		return resolved, nil
	}

	lot, err := LotResolver{}.FindOrCreate(ctx, store, product, token)
	if err != nil {
		return nil, err
	}
	resolved := &ResolvedLot{ID: lot.ID, Name: lot.Name}
	if transfer.OperationCode == entity.OperationIncoming && !transfer.UseExistingLots {
		resolved.BindByName = true
	}
	return resolved, nil
}

// FindOrCreate busca o crea el lote (producto, nombre). Nunca falla por inexistencia.
func (LotResolver) FindOrCreate(ctx context.Context, store repository.Store, product *entity.Product, name string) (*entity.Lot, error) {
	return picking.FindOrCreateLot(ctx, store.Lots(), product, name)
}
