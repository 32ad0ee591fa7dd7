package picking

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// Notifier avisa a terceros (cliente, transportista) que una transferencia quedó validada.
type Notifier interface {
	TransferValidated(ctx context.Context, transfer *entity.Transfer) error
}

// LogNotifier registra la notificación en el log estructurado. Es la implementación
// por defecto mientras no exista un canal de salida (SMS, correo).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notifier")}
}

// TransferValidated implementa Notifier.
func (n *LogNotifier) TransferValidated(_ context.Context, transfer *entity.Transfer) error {
	n.log.Info().
		Str("picking_id", transfer.ID).
		Str("picking", transfer.Name).
		Str("operation", transfer.OperationCode).
		Msg("transferencia validada")
	return nil
}
