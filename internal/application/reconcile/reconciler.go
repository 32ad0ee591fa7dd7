package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Pass es el estado de una pasada de reconciliación: líneas ya consumidas y paquetes
// por etiqueta. Vive lo que dura una solicitud.
type Pass struct {
	store    repository.Store
	actor    Actor
	consumed map[string]struct{}
	packages *PackageGrouping
	now      time.Time
}

// NewPass abre una pasada. Los ids que el reporte trae explícitos se consideran
// consumidos desde el inicio para que ninguna otra línea se empareje con ellos.
func NewPass(store repository.Store, actor Actor, lines []ReportLine) *Pass {
	p := &Pass{
		store:    store,
		actor:    actor,
		consumed: make(map[string]struct{}, len(lines)),
		packages: NewPackageGrouping(),
		now:      time.Now(),
	}
	for _, l := range lines {
		if l.ID != "" {
			p.consumed[l.ID] = struct{}{}
		}
	}
	return p
}

func (p *Pass) consume(id string) {
	p.consumed[id] = struct{}{}
}

// Finish empaca los grupos de etiquetas acumulados en la pasada.
func (p *Pass) Finish(ctx context.Context, companyID string) ([]*entity.Package, error) {
	if p.packages.Len() == 0 {
		return nil, nil
	}
	return p.packages.Flush(ctx, p.store, companyID)
}

// LineReconciler aplica las líneas reportadas sobre las líneas realizadas de una transferencia.
type LineReconciler struct {
	identity IdentityResolver
	lots     LotResolver
}

// NewLineReconciler construye el reconciliador.
func NewLineReconciler() *LineReconciler {
	return &LineReconciler{}
}

// Reconcile procesa las líneas en el orden recibido. No rechaza líneas por estado: la
// validación de estado la hace el llamador antes de abrir la pasada.
// Devuelve *ResolutionError si una línea no puede resolverse.
func (r *LineReconciler) Reconcile(ctx context.Context, p *Pass, transfer *entity.Transfer, lines []ReportLine) error {
	for _, rl := range lines {
		if err := r.reconcileLine(ctx, p, transfer, rl); err != nil {
			return err
		}
	}
	return nil
}

func (r *LineReconciler) reconcileLine(ctx context.Context, p *Pass, transfer *entity.Transfer, rl ReportLine) error {
	var existing *entity.MoveLine
	if rl.ID != "" {
		line, err := p.store.MoveLines().GetByID(ctx, rl.ID)
		if err != nil {
			return err
		}
		if line == nil || line.TransferID != transfer.ID {
			return resolutionErrorf(rl.ProductID, "la línea %s no pertenece a la transferencia %s", rl.ID, transfer.Name)
		}
		if rl.ProductID != "" && rl.ProductID != line.ProductID {
			return resolutionErrorf(rl.ProductID, "la línea %s es del producto %s", rl.ID, line.ProductID)
		}
		existing = line
		rl.ProductID = line.ProductID
	}
	if rl.ProductID == "" {
		return resolutionErrorf("", "la línea reportada no indica producto")
	}

	product, err := p.store.Products().GetByID(ctx, rl.ProductID)
	if err != nil {
		return err
	}

	var lot *ResolvedLot
	if rl.LotToken != "" || rl.LotID != "" {
		if product == nil {
			return resolutionErrorf(rl.ProductID, "el producto %s no existe", rl.ProductID)
		}
		lot, err = r.lots.Resolve(ctx, p.store, transfer, product, rl.LotToken, rl.LotID)
		if err != nil {
			return err
		}
	}

	if existing == nil {
		existing, err = r.identity.Resolve(ctx, p.store.MoveLines(), transfer.ID, rl, lot, p.consumed)
		if err != nil {
			return err
		}
	}

	var lineID string
	if existing != nil {
		p.consume(existing.ID)
		lineID = existing.ID
		err = r.updateLine(ctx, p, transfer, existing, rl, lot)
	} else {
		lineID, err = r.createLine(ctx, p, transfer, product, rl, lot)
		if err == nil {
			p.consume(lineID)
		}
	}
	if err != nil {
		return err
	}

	p.packages.Add(rl.PackageLabel, lineID)
	return nil
}

// updateLine escribe cantidad, lote, ubicaciones y paquete solo si cambian. Sin cambios no
// hay escritura ni auditoría.
func (r *LineReconciler) updateLine(ctx context.Context, p *Pass, transfer *entity.Transfer, current *entity.MoveLine, rl ReportLine, lot *ResolvedLot) error {
	next := *current
	next.Quantity = rl.QuantityDone
	if lot != nil {
		lot.apply(&next)
	}
	if rl.LocationID != "" && rl.LocationID != current.LocationID {
		next.LocationID = rl.LocationID
	}
	if rl.LocationDestID != "" && rl.LocationDestID != current.LocationDestID {
		next.LocationDestID = rl.LocationDestID
	}
	if rl.PackageLabel == "" && rl.PackageID != "" {
		pkgID := rl.PackageID
		next.ResultPackageID = &pkgID
	}

	changes, err := diffLine(ctx, p.store, current, &next)
	if err != nil || len(changes) == 0 {
		return err
	}
	next.UpdatedAt = p.now
	if err := p.store.MoveLines().Update(ctx, &next); err != nil {
		return err
	}
	return p.store.AuditEntries().Create(ctx, &entity.AuditEntry{
		ID:         uuid.New().String(),
		TransferID: transfer.ID,
		MoveLineID: next.ID,
		Changes:    joinChanges(changes),
		CreatedBy:  p.actor.UserID,
		CreatedAt:  p.now,
	})
}

// createLine crea una línea nueva con ubicaciones de la línea planificada del producto o,
// si no hay, de la transferencia.
func (r *LineReconciler) createLine(ctx context.Context, p *Pass, transfer *entity.Transfer, product *entity.Product, rl ReportLine, lot *ResolvedLot) (string, error) {
	move, err := p.store.Moves().FindByTransferAndProduct(ctx, transfer.ID, rl.ProductID)
	if err != nil {
		return "", err
	}
	if move == nil && product == nil {
		return "", resolutionErrorf(rl.ProductID, "el producto %s no existe ni está planificado en %s", rl.ProductID, transfer.Name)
	}

	line := &entity.MoveLine{
		ID:             uuid.New().String(),
		TransferID:     transfer.ID,
		BatchID:        transfer.BatchID,
		CompanyID:      transfer.CompanyID,
		ProductID:      rl.ProductID,
		Quantity:       rl.QuantityDone,
		LocationID:     transfer.LocationID,
		LocationDestID: transfer.LocationDestID,
		CreatedBy:      p.actor.UserID,
		CreatedAt:      p.now,
		UpdatedAt:      p.now,
	}
	if move != nil {
		moveID := move.ID
		line.MoveID = &moveID
		line.ProductID = move.ProductID
		line.LocationID = move.LocationID
		line.LocationDestID = move.LocationDestID
	}
	if rl.LocationID != "" {
		line.LocationID = rl.LocationID
	}
	if rl.LocationDestID != "" {
		line.LocationDestID = rl.LocationDestID
	}
	if line.LocationID == "" || line.LocationDestID == "" {
		return "", &ResolutionError{
			ProductID: rl.ProductID,
			Reason:    "no se pudieron determinar las ubicaciones por defecto para " + transfer.Name,
		}
	}
	if lot != nil {
		lot.apply(line)
	}
	if rl.PackageLabel == "" && rl.PackageID != "" {
		pkgID := rl.PackageID
		line.ResultPackageID = &pkgID
	}

	if err := p.store.MoveLines().Create(ctx, line); err != nil {
		return "", err
	}
	fields, err := describeLine(ctx, p.store, line)
	if err != nil {
		return "", err
	}
	err = p.store.AuditEntries().Create(ctx, &entity.AuditEntry{
		ID:         uuid.New().String(),
		TransferID: transfer.ID,
		MoveLineID: line.ID,
		Created:    true,
		Changes:    joinChanges(fields),
		CreatedBy:  p.actor.UserID,
		CreatedAt:  p.now,
	})
	return line.ID, err
}
