package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia del historial de cambios desde la app.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	ListByTransfer(ctx context.Context, transferID string) ([]*entity.AuditEntry, error)
}
