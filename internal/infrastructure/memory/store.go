// Package memory implementa los puertos de repositorio en memoria con semántica
// transaccional (instantánea + rollback). Se usa en tests y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

type tables struct {
	transfers  *table[entity.Transfer]
	moves      *table[entity.Move]
	moveLines  *table[entity.MoveLine]
	lots       *table[entity.Lot]
	packages   *table[entity.Package]
	batches    *table[entity.Batch]
	audit      *table[entity.AuditEntry]
	quants     *table[entity.Quant]
	products   *table[entity.Product]
	locations  *table[entity.Location]
	movements  *table[entity.InventoryMovement]
	packageSeq int
}

func newTables() *tables {
	return &tables{
		transfers: newTable[entity.Transfer](),
		moves:     newTable[entity.Move](),
		moveLines: newTable[entity.MoveLine](),
		lots:      newTable[entity.Lot](),
		packages:  newTable[entity.Package](),
		batches:   newTable[entity.Batch](),
		audit:     newTable[entity.AuditEntry](),
		quants:    newTable[entity.Quant](),
		products:  newTable[entity.Product](),
		locations: newTable[entity.Location](),
		movements: newTable[entity.InventoryMovement](),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		transfers:  t.transfers.clone(),
		moves:      t.moves.clone(),
		moveLines:  t.moveLines.clone(),
		lots:       t.lots.clone(),
		packages:   t.packages.clone(),
		batches:    t.batches.clone(),
		audit:      t.audit.clone(),
		quants:     t.quants.clone(),
		products:   t.products.clone(),
		locations:  t.locations.clone(),
		movements:  t.movements.clone(),
		packageSeq: t.packageSeq,
	}
}

// Store es el almacén en memoria. Las transacciones se serializan con un mutex, lo que
// equivale a bloquear toda fila leída con SELECT ... FOR UPDATE.
type Store struct {
	mu sync.Mutex
	t  *tables
}

// Ensure Store implements repository.TxRunner.
var _ repository.TxRunner = (*Store)(nil)

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

// Run ejecuta fn con repositorios atados a la transacción; si fn falla se restaura la
// instantánea tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(store repository.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.t.clone()
	defer func() {
		if p := recover(); p != nil {
			s.t = snapshot
			err = fmt.Errorf("transacción abortada: %v", p)
			return
		}
		if err != nil {
			s.t = snapshot
		}
	}()
	return fn(&txStore{t: s.t})
}

// txStore agrupa los repositorios de una transacción.
type txStore struct {
	t *tables
}

var _ repository.Store = (*txStore)(nil)

func (s *txStore) Transfers() repository.TransferRepository          { return transferRepo{s.t} }
func (s *txStore) Moves() repository.MoveRepository                  { return moveRepo{s.t} }
func (s *txStore) MoveLines() repository.MoveLineRepository          { return moveLineRepo{s.t} }
func (s *txStore) Lots() repository.LotRepository                    { return lotRepo{s.t} }
func (s *txStore) Packages() repository.PackageRepository            { return packageRepo{s.t} }
func (s *txStore) Batches() repository.BatchRepository               { return batchRepo{s.t} }
func (s *txStore) AuditEntries() repository.AuditRepository          { return auditRepo{s.t} }
func (s *txStore) Quants() repository.QuantRepository                { return quantRepo{s.t} }
func (s *txStore) Products() repository.ProductRepository            { return productRepo{s.t} }
func (s *txStore) Locations() repository.LocationRepository          { return locationRepo{s.t} }
func (s *txStore) Movements() repository.InventoryMovementRepository { return movementRepo{s.t} }
