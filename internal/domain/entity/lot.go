package entity

import "time"

// Lot identifica un lote o número de serie de un producto. (Name, ProductID) es único.
type Lot struct {
	ID        string
	CompanyID string
	ProductID string
	Name      string
	CreatedAt time.Time
}
