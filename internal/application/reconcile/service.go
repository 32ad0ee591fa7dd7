package reconcile

import (
	"context"
	"fmt"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/rs/zerolog"
)

// Options configuración del servicio.
type Options struct {
	// NotifyOnValidate habilita las notificaciones salientes al validar.
	NotifyOnValidate bool
}

// Service expone la reconciliación y validación de transferencias, lotes, conteos y empaques.
// Cada solicitud corre en una transacción que empieza bloqueando la transferencia o el lote.
type Service struct {
	tx         repository.TxRunner
	committer  Committer
	reconciler *LineReconciler
	lots       LotResolver
	log        *logger.Logger
	opts       Options
}

// NewService construye el servicio.
func NewService(tx repository.TxRunner, committer Committer, log *logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		tx:         tx,
		committer:  committer,
		reconciler: NewLineReconciler(),
		log:        log.Component("reconcile"),
		opts:       opts,
	}
}

// TransferChanges devuelve el historial de cambios hechos desde la app sobre la transferencia.
func (s *Service) TransferChanges(ctx context.Context, actor Actor, transferID string) ([]*entity.AuditEntry, error) {
	var entries []*entity.AuditEntry
	err := s.tx.Run(ctx, func(store repository.Store) error {
		transfer, err := store.Transfers().GetByID(ctx, transferID)
		if err != nil {
			return err
		}
		if transfer == nil || !actor.owns(transfer.CompanyID) {
			return fmt.Errorf("transferencia %s: %w", transferID, domain.ErrNotFound)
		}
		entries, err = store.AuditEntries().ListByTransfer(ctx, transferID)
		return err
	})
	return entries, err
}

// logResult registra un evento por solicitud.
func (s *Service) logResult(op string, actor Actor, r Result, lines int, err error) {
	var ev *zerolog.Event
	switch {
	case err != nil && r.Code == CodeBadRequest:
		ev = s.log.Error().Err(err)
	case !r.OK:
		ev = s.log.Warn()
	default:
		ev = s.log.Info()
	}
	ev.Str("op", op).
		Str("user_id", actor.UserID).
		Str("company_id", actor.CompanyID).
		Str("code", r.Code).
		Int("lines", lines)
	if r.TransferID != "" {
		ev = ev.Str("picking_id", r.TransferID)
	}
	if r.BatchID != "" {
		ev = ev.Str("batch_id", r.BatchID)
	}
	ev.Msg(r.Message)
}

// backorderFor aplica el indicador de la solicitud o, si no viene, la política por defecto.
func backorderFor(requested *bool, policy bool) bool {
	if requested != nil {
		return *requested
	}
	return policy
}
