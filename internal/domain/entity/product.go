package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seguimiento de trazabilidad del producto.
const (
	TrackingNone   = "none"
	TrackingLot    = "lot"
	TrackingSerial = "serial"
)

// Product representa un producto almacenable. El seguimiento define si sus movimientos
// exigen lote o número de serie al validar.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // referencia interna
	Name        string
	Barcode     string
	Tracking    string
	UnitMeasure string
	Weight      decimal.Decimal // peso unitario (kg)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName devuelve "[SKU] Nombre" o solo el nombre si no hay SKU.
func (p *Product) DisplayName() string {
	if p.SKU == "" {
		return p.Name
	}
	return "[" + p.SKU + "] " + p.Name
}

// IsTracked indica si el producto se controla por lote o por serie.
func (p *Product) IsTracked() bool {
	return p.Tracking == TrackingLot || p.Tracking == TrackingSerial
}
