package reconcile

import (
	"context"
	"slices"

	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// ReconcileAndCommitBatchGroup reconcilia las líneas de un lote (cada línea indica su
// transferencia) y valida el lote con una sola llamada. El resultado refleja el estado del
// lote releído después de validar.
func (s *Service) ReconcileAndCommitBatchGroup(ctx context.Context, actor Actor, req BatchRequest) Result {
	if req.BatchID == "" {
		r := failed(CodePostDataError, "Datos inválidos, revise la solicitud.")
		s.logResult("validate_batch", actor, r, len(req.Lines), nil)
		return r
	}

	var res Result
	err := s.tx.Run(ctx, func(store repository.Store) error {
		var err error
		res, err = s.commitBatchGroup(ctx, store, actor, req)
		return err
	})
	if err != nil {
		res = outcome(err, "", req.BatchID)
	}
	s.logResult("validate_batch", actor, res, len(req.Lines), err)
	return res
}

// SyncBatchGroups valida varios lotes; un resultado por lote en el orden recibido.
func (s *Service) SyncBatchGroups(ctx context.Context, actor Actor, reqs []BatchRequest) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, s.ReconcileAndCommitBatchGroup(ctx, actor, req))
	}
	return results
}

func (s *Service) commitBatchGroup(ctx context.Context, store repository.Store, actor Actor, req BatchRequest) (Result, error) {
	batch, err := store.Batches().GetForUpdate(ctx, req.BatchID)
	if err != nil {
		return Result{}, err
	}
	if batch == nil || !actor.owns(batch.CompanyID) {
		return failed(CodeBatchNotExists, "El lote de transferencias no existe.").forBatch(req.BatchID), nil
	}
	switch batch.State {
	case entity.BatchStateDone:
		return failed(CodeAlreadyValidated, "Este lote ya fue validado.").forBatch(batch.ID), nil
	case entity.BatchStateCancel:
		return failed(CodeBatchCancelled, "Este lote está cancelado.").forBatch(batch.ID), nil
	}
	if len(req.Lines) == 0 {
		return failed(CodeMoveLinesEmpty, "No se recibieron líneas.").forBatch(batch.ID), nil
	}

	members, err := lockMembers(ctx, store, batch.ID)
	if err != nil {
		return Result{}, err
	}
	byID := make(map[string]*entity.Transfer, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	// La pertenencia se valida antes de escribir nada.
	for _, rl := range req.Lines {
		member, ok := byID[rl.TransferID]
		if !ok {
			return failed(CodePickingNotInBatch, "La transferencia no pertenece al lote.").
				forBatch(batch.ID).forTransfer(rl.TransferID), nil
		}
		if member.IsTerminal() {
			return failed(CodeAlreadyValidated, "La transferencia "+member.Name+" ya está cerrada.").
				forBatch(batch.ID).forTransfer(member.ID), nil
		}
	}

	p := NewPass(store, actor, req.Lines)
	for _, rl := range req.Lines {
		if err := s.reconciler.Reconcile(ctx, p, byID[rl.TransferID], []ReportLine{rl}); err != nil {
			return Result{}, err
		}
	}
	if _, err := p.Finish(ctx, batch.CompanyID); err != nil {
		return Result{}, err
	}

	opts := picking.BatchCommitOptions{
		SuppressNotifications: !s.opts.NotifyOnValidate,
		UserID:                actor.UserID,
	}
	if !backorderFor(req.CreateBackorder, batch.CreatesBackorder()) {
		for _, m := range members {
			if !m.IsTerminal() {
				opts.NoBackorderTransferIDs = append(opts.NoBackorderTransferIDs, m.ID)
			}
		}
	}
	if err := s.committer.CommitBatch(ctx, store, batch.ID, opts); err != nil {
		return Result{}, err
	}

	after, err := store.Batches().GetByID(ctx, batch.ID)
	if err != nil {
		return Result{}, err
	}
	if after == nil || after.State != entity.BatchStateDone {
		return failed(CodeFail, "El lote no pudo validarse.").forBatch(batch.ID), nil
	}
	return success(CodeSuccess, "Lote validado.").forBatch(batch.ID), nil
}

// lockMembers bloquea las transferencias del lote en orden de id, el mismo orden para
// toda pasada, y devuelve su estado releído bajo el bloqueo.
func lockMembers(ctx context.Context, store repository.Store, batchID string) ([]*entity.Transfer, error) {
	listed, err := store.Transfers().ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(listed))
	for _, m := range listed {
		ids = append(ids, m.ID)
	}
	slices.Sort(ids)

	members := make([]*entity.Transfer, 0, len(ids))
	for _, id := range ids {
		m, err := store.Transfers().GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil || m.BatchID == nil || *m.BatchID != batchID {
			continue
		}
		members = append(members, m)
	}
	return members, nil
}
