package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveLine es una línea realizada: lo que efectivamente se movió. MoveID es nulo para
// líneas extra no planificadas. LotName se usa cuando la recepción crea lotes nuevos y
// el lote se vincula por nombre hasta la validación.
type MoveLine struct {
	ID              string
	TransferID      string
	MoveID          *string
	BatchID         *string
	CompanyID       string
	ProductID       string
	Quantity        decimal.Decimal
	LocationID      string
	LocationDestID  string
	LotID           *string
	LotName         string
	ResultPackageID *string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MoveLineFilter criterios de búsqueda de líneas realizadas. Los campos nil no filtran.
type MoveLineFilter struct {
	TransferID string
	ProductID  string
	Quantity   *decimal.Decimal
	// Lote: coincide si lot_id = LotID, o si lot_id es nulo y lot_name = LotName.
	LotID      *string
	LotName    string
	ExcludeIDs []string
	Limit      int
}
