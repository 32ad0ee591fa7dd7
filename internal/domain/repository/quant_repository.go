package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// QuantRepository define el puerto para consultar/actualizar existencias.
// Usado dentro de transacciones para garantizar consistencia.
type QuantRepository interface {
	// Find busca por la clave completa; nil en lote/paquete/propietario significa "sin".
	Find(ctx context.Context, key entity.QuantKey) (*entity.Quant, error)
	GetByID(ctx context.Context, id string) (*entity.Quant, error)
	Create(ctx context.Context, quant *entity.Quant) error
	Update(ctx context.Context, quant *entity.Quant) error
}
