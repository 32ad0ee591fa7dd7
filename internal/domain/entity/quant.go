package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quant representa las existencias de un producto en una ubicación para una combinación
// concreta de lote, paquete y propietario. InventoryQuantity guarda la cantidad contada
// pendiente de aplicar.
type Quant struct {
	ID                   string
	CompanyID            string
	LocationID           string
	ProductID            string
	LotID                *string
	PackageID            *string
	OwnerID              *string
	Quantity             decimal.Decimal
	InventoryQuantity    decimal.Decimal
	InventoryQuantitySet bool
	InventoryDate        *time.Time
	UpdatedAt            time.Time
}

// QuantKey identifica un registro de existencias.
type QuantKey struct {
	CompanyID  string
	LocationID string
	ProductID  string
	LotID      *string
	PackageID  *string
	OwnerID    *string
}
