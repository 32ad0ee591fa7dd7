package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIN         = "IN"         // entrada desde proveedor
	MovementTypeOUT        = "OUT"        // salida a cliente
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste por conteo
	MovementTypeTRANSFER   = "TRANSFER"   // traslado interno
)

// InventoryMovement es un asiento del libro de inventario. Se genera al validar una
// transferencia (uno por línea realizada) y al aplicar un conteo.
type InventoryMovement struct {
	ID            string
	TransactionID string // transferencia o quant que originó el asiento
	CompanyID     string
	ProductID     string
	LocationID    string
	LocationDest  string
	LotID         *string
	Type          string
	Quantity      decimal.Decimal // positivo entrada/ajuste+, negativo ajuste-
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}

// MovementTypeForOperation devuelve el tipo de asiento según el código de operación.
func MovementTypeForOperation(code string) string {
	switch code {
	case OperationIncoming:
		return MovementTypeIN
	case OperationOutgoing:
		return MovementTypeOUT
	default:
		return MovementTypeTRANSFER
	}
}
