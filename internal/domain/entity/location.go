package entity

import "time"

// Uso de la ubicación (define si mantiene registros de existencias).
const (
	LocationUsageInternal  = "internal"
	LocationUsageTransit   = "transit"
	LocationUsageSupplier  = "supplier"
	LocationUsageCustomer  = "customer"
	LocationUsageInventory = "inventory"
	LocationUsageView      = "view"
)

// Location representa una ubicación física o virtual del almacén.
type Location struct {
	ID        string
	CompanyID string
	ParentID  *string
	Name      string
	FullName  string // "WH/Stock/Estante 1"
	Usage     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KeepsStock indica si la ubicación lleva existencias (internas o en tránsito).
func (l *Location) KeepsStock() bool {
	return l.Usage == LocationUsageInternal || l.Usage == LocationUsageTransit
}
