package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Move es una línea planificada de una transferencia: producto y cantidad a mover.
type Move struct {
	ID             string
	TransferID     string
	CompanyID      string
	ProductID      string
	Quantity       decimal.Decimal // cantidad planificada
	LocationID     string
	LocationDestID string
	State          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
