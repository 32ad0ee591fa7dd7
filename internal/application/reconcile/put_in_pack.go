package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// PutLinesIntoPackage empaca líneas de una transferencia abierta en un paquete nuevo.
// Las líneas por id deben pertenecer a la transferencia y se les reescribe la cantidad;
// las líneas por producto copian una línea existente del producto con la cantidad indicada.
func (s *Service) PutLinesIntoPackage(ctx context.Context, actor Actor, req PackRequest) PackageResult {
	if req.TransferID == "" || len(req.Lines) == 0 {
		return PackageResult{Result: failed(CodePostDataError, "Datos inválidos, revise la solicitud.").forTransfer(req.TransferID)}
	}

	var res PackageResult
	err := s.tx.Run(ctx, func(store repository.Store) error {
		transfer, r, err := s.openTransfer(ctx, store, actor, req.TransferID)
		if err != nil || !r.OK {
			res.Result = r
			return err
		}

		ids, err := s.packLines(ctx, store, actor, transfer, req.Lines)
		if err != nil {
			return err
		}
		pkg, err := picking.PutInPack(ctx, store, transfer.CompanyID, ids)
		if err != nil {
			return fail(failed(CodePackageNotCreated, "No se pudo crear el paquete: "+err.Error()).forTransfer(transfer.ID))
		}
		res = PackageResult{
			Result:  success(CodeSuccess, "Transferencia actualizada con el paquete.").forTransfer(transfer.ID),
			Package: pkg,
		}
		return nil
	})
	if err != nil {
		res = PackageResult{Result: outcome(err, req.TransferID, "")}
	}
	s.logResult("put_in_pack", actor, res.Result, len(req.Lines), err)
	return res
}

func (s *Service) packLines(ctx context.Context, store repository.Store, actor Actor, transfer *entity.Transfer, lines []PackLine) ([]string, error) {
	now := time.Now()
	ids := make([]string, 0, len(lines))
	for _, pl := range lines {
		if pl.ID == "" {
			continue
		}
		line, err := store.MoveLines().GetByID(ctx, pl.ID)
		if err != nil {
			return nil, err
		}
		if line == nil || line.TransferID != transfer.ID {
			return nil, fail(failed(CodeInvalidMoveLine, "Línea "+pl.ID+" inválida para la transferencia.").forTransfer(transfer.ID))
		}
		line.Quantity = pl.QuantityDone
		line.UpdatedAt = now
		if err := store.MoveLines().Update(ctx, line); err != nil {
			return nil, err
		}
		ids = append(ids, line.ID)
	}

	for _, pl := range lines {
		if pl.ID != "" {
			continue
		}
		var found []*entity.MoveLine
		if pl.ProductID != "" {
			var err error
			found, err = store.MoveLines().Find(ctx, entity.MoveLineFilter{TransferID: transfer.ID, ProductID: pl.ProductID, Limit: 1})
			if err != nil {
				return nil, err
			}
		}
		if len(found) == 0 {
			r := failed(CodeMoveLineNotFound, "No hay líneas del producto en la transferencia.").forTransfer(transfer.ID)
			r.ProductID = pl.ProductID
			return nil, fail(r)
		}
		copied := *found[0]
		copied.ID = uuid.New().String()
		copied.Quantity = pl.QuantityDone
		copied.ResultPackageID = nil
		copied.CreatedBy = actor.UserID
		copied.CreatedAt = now
		copied.UpdatedAt = now
		if err := store.MoveLines().Create(ctx, &copied); err != nil {
			return nil, err
		}
		ids = append(ids, copied.ID)
	}
	return ids, nil
}
