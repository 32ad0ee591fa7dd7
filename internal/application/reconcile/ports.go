package reconcile

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Committer es la operación de validación de la plataforma (picking.Committer).
type Committer interface {
	CommitTransfer(ctx context.Context, store repository.Store, transferID string, opts picking.CommitOptions) error
	CommitBatch(ctx context.Context, store repository.Store, batchID string, opts picking.BatchCommitOptions) error
}

var _ Committer = (*picking.Committer)(nil)

// ReportLine es una línea del reporte de lo recolectado/contado por el operario.
type ReportLine struct {
	ID               string // línea realizada existente; vacío = resolver identidad
	TransferID       string // solo en validación de lotes
	ProductID        string
	QuantityDone     decimal.Decimal
	LotToken         string // nombre de lote/serie escaneado
	LotID            string // lote existente, se usa tal cual
	LocationID       string
	LocationDestID   string
	PackageLabel     string // etiqueta de paquete ad hoc
	PackageID        string // paquete existente
	SkipLineMatching bool
}

// TransferRequest solicitud de reconciliación y validación de una transferencia.
// CreateBackorder nil aplica la política de la transferencia.
type TransferRequest struct {
	TransferID      string
	Lines           []ReportLine
	CreateBackorder *bool
}

// BatchRequest solicitud de reconciliación y validación de un lote de transferencias.
type BatchRequest struct {
	BatchID         string
	Lines           []ReportLine
	CreateBackorder *bool
}

// StockCount es una cantidad contada en (ubicación, producto, lote, paquete, propietario).
// Package acepta el id de un paquete existente o una etiqueta.
type StockCount struct {
	LocationID string
	ProductID  string
	LotToken   string
	Package    string
	OwnerID    string
	Counted    decimal.Decimal
	CountDate  *time.Time
}

// PackLine referencia una línea a empacar: por id (se reescribe la cantidad) o por
// producto (se copia una línea del producto con la cantidad indicada).
type PackLine struct {
	ID           string
	ProductID    string
	QuantityDone decimal.Decimal
}

// PackRequest solicitud de empaque de líneas de una transferencia.
type PackRequest struct {
	TransferID string
	Lines      []PackLine
}
