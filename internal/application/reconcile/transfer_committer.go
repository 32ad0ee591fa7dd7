package reconcile

import (
	"context"

	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// ReconcileAndCommitTransfer reconcilia las líneas reportadas y valida la transferencia.
// Estados terminales e entradas inválidas se detectan antes de escribir. Cualquier error
// posterior revierte la solicitud completa.
func (s *Service) ReconcileAndCommitTransfer(ctx context.Context, actor Actor, req TransferRequest) Result {
	if req.TransferID == "" || len(req.Lines) == 0 {
		r := failed(CodePostDataError, "Datos inválidos, revise la solicitud.").forTransfer(req.TransferID)
		s.logResult("validate_transfer", actor, r, len(req.Lines), nil)
		return r
	}

	var res Result
	err := s.tx.Run(ctx, func(store repository.Store) error {
		transfer, r, err := s.openTransfer(ctx, store, actor, req.TransferID)
		if err != nil || !r.OK {
			res = r
			return err
		}

		p := NewPass(store, actor, req.Lines)
		if err := s.reconciler.Reconcile(ctx, p, transfer, req.Lines); err != nil {
			return err
		}
		if _, err := p.Finish(ctx, transfer.CompanyID); err != nil {
			return err
		}

		err = s.committer.CommitTransfer(ctx, store, transfer.ID, picking.CommitOptions{
			CreateBackorder:       backorderFor(req.CreateBackorder, transfer.CreatesBackorder()),
			SuppressNotifications: !s.opts.NotifyOnValidate,
			UserID:                actor.UserID,
		})
		if err != nil {
			return err
		}
		res = success(CodeSuccess, "Transferencia validada.").forTransfer(transfer.ID)
		return nil
	})
	if err != nil {
		res = outcome(err, req.TransferID, "")
	}
	s.logResult("validate_transfer", actor, res, len(req.Lines), err)
	return res
}

// ReconcileAndCommitBatch valida solicitudes independientes. Cada una corre en su propia
// transacción y el fallo de una no detiene las demás.
func (s *Service) ReconcileAndCommitBatch(ctx context.Context, actor Actor, reqs []TransferRequest) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, s.ReconcileAndCommitTransfer(ctx, actor, req))
	}
	return results
}

// SyncLines reconcilia las líneas de una o más transferencias sin validarlas. Sirve para
// que el operario guarde avance parcial. Un resultado por solicitud.
func (s *Service) SyncLines(ctx context.Context, actor Actor, reqs []TransferRequest) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, s.syncTransfer(ctx, actor, req))
	}
	return results
}

func (s *Service) syncTransfer(ctx context.Context, actor Actor, req TransferRequest) Result {
	if req.TransferID == "" || len(req.Lines) == 0 {
		return failed(CodePostDataError, "Datos inválidos, revise la solicitud.").forTransfer(req.TransferID)
	}
	var res Result
	err := s.tx.Run(ctx, func(store repository.Store) error {
		transfer, r, err := s.openTransfer(ctx, store, actor, req.TransferID)
		if err != nil || !r.OK {
			res = r
			return err
		}
		p := NewPass(store, actor, req.Lines)
		if err := s.reconciler.Reconcile(ctx, p, transfer, req.Lines); err != nil {
			return err
		}
		if _, err := p.Finish(ctx, transfer.CompanyID); err != nil {
			return err
		}
		res = success(CodeSuccess, "Transferencia "+transfer.Name+" actualizada.").forTransfer(transfer.ID)
		return nil
	})
	if err != nil {
		res = outcome(err, req.TransferID, "")
	}
	s.logResult("sync_lines", actor, res, len(req.Lines), err)
	return res
}

// openTransfer bloquea la transferencia y verifica que admita reconciliación.
// r.OK=false trae el resultado estructurado (sin escrituras).
func (s *Service) openTransfer(ctx context.Context, store repository.Store, actor Actor, id string) (*entity.Transfer, Result, error) {
	transfer, err := store.Transfers().GetForUpdate(ctx, id)
	if err != nil {
		return nil, Result{}, err
	}
	if transfer == nil || !actor.owns(transfer.CompanyID) {
		return nil, failed(CodePickingNotExists, "La transferencia no existe.").forTransfer(id), nil
	}
	switch transfer.State {
	case entity.TransferStateDone:
		return nil, failed(CodeAlreadyValidated, "Esta transferencia ya fue validada.").forTransfer(id), nil
	case entity.TransferStateCancel:
		return nil, failed(CodePickingCancelled, "Esta transferencia está cancelada.").forTransfer(id), nil
	}
	return transfer, Result{OK: true}, nil
}
