package entity

import "time"

// Estados de un lote de transferencias.
const (
	BatchStateDraft      = "draft"
	BatchStateInProgress = "in_progress"
	BatchStateDone       = "done"
	BatchStateCancel     = "cancel"
)

// Batch agrupa varias transferencias que se validan juntas.
type Batch struct {
	ID              string
	CompanyID       string
	Name            string
	State           string
	UserID          *string
	BackorderPolicy string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreatesBackorder aplica la política por defecto del lote.
func (b *Batch) CreatesBackorder() bool {
	return b.BackorderPolicy != BackorderNever
}
