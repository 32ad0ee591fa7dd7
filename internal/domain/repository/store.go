package repository

import "context"

// Store da acceso a todos los repositorios de inventario dentro de una misma transacción.
type Store interface {
	Transfers() TransferRepository
	Moves() MoveRepository
	MoveLines() MoveLineRepository
	Lots() LotRepository
	Packages() PackageRepository
	Batches() BatchRepository
	AuditEntries() AuditRepository
	Quants() QuantRepository
	Products() ProductRepository
	Locations() LocationRepository
	Movements() InventoryMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(store Store) error) error
}
