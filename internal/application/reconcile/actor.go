package reconcile

// Actor es el usuario y la empresa que ejecutan la operación. Lo construye la capa HTTP
// desde el JWT y se pasa explícitamente a cada llamada.
type Actor struct {
	UserID    string
	CompanyID string
}

// owns indica si el registro de la empresa companyID es visible para el actor.
func (a Actor) owns(companyID string) bool {
	return a.CompanyID == "" || a.CompanyID == companyID
}
