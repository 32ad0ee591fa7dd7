package entity

import "time"

// AuditEntry registra los cambios que la app móvil aplicó sobre una línea realizada.
// Es inmutable una vez creada.
type AuditEntry struct {
	ID         string
	TransferID string
	MoveLineID string
	Created    bool   // true: línea creada desde la app; false: línea modificada
	Changes    string // una línea "Campo: antes → después" por cambio
	CreatedBy  string
	CreatedAt  time.Time
}
