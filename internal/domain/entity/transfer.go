package entity

import "time"

// Códigos de tipo de operación.
const (
	OperationIncoming = "incoming" // recepción
	OperationOutgoing = "outgoing" // entrega
	OperationInternal = "internal" // traslado interno
)

// Estados de una transferencia.
const (
	TransferStateDraft    = "draft"
	TransferStateWaiting  = "waiting"
	TransferStateAssigned = "assigned"
	TransferStateDone     = "done"
	TransferStateCancel   = "cancel"
)

// Política de backorder por defecto.
const (
	BackorderAlways = "always"
	BackorderNever  = "never"
)

// Transfer representa un documento de movimiento planificado (recepción, entrega o traslado).
// Solo avanza de estado salvo cancelación explícita; done es terminal.
type Transfer struct {
	ID              string
	CompanyID       string
	Name            string // WH/OUT/00012
	OperationCode   string
	UseExistingLots bool // solo aplica a recepciones
	LocationID      string
	LocationDestID  string
	State           string
	UserID          *string
	BatchID         *string
	BackorderID     *string // transferencia de la que es backorder
	BackorderPolicy string
	DateDone        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTerminal indica si la transferencia ya no admite cambios.
func (t *Transfer) IsTerminal() bool {
	return t.State == TransferStateDone || t.State == TransferStateCancel
}

// CreatesBackorder aplica la política por defecto cuando la petición no la indica.
func (t *Transfer) CreatesBackorder() bool {
	return t.BackorderPolicy != BackorderNever
}
