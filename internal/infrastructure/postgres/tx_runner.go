package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(store repository.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Store agrupa los repositorios sobre un mismo Querier (pool o tx).
type Store struct {
	transfers *TransferRepo
	moves     *MoveRepo
	moveLines *MoveLineRepo
	lots      *LotRepo
	packages  *PackageRepo
	batches   *BatchRepo
	audits    *AuditRepo
	quants    *QuantRepo
	products  *ProductRepo
	locations *LocationRepo
	movements *InventoryMovementRepo
}

var _ repository.Store = (*Store)(nil)

// NewStore construye los repositorios sobre q.
func NewStore(q Querier) *Store {
	return &Store{
		transfers: NewTransferRepository(q),
		moves:     NewMoveRepository(q),
		moveLines: NewMoveLineRepository(q),
		lots:      NewLotRepository(q),
		packages:  NewPackageRepository(q),
		batches:   NewBatchRepository(q),
		audits:    NewAuditRepository(q),
		quants:    NewQuantRepository(q),
		products:  NewProductRepository(q),
		locations: NewLocationRepository(q),
		movements: NewInventoryMovementRepository(q),
	}
}

func (s *Store) Transfers() repository.TransferRepository          { return s.transfers }
func (s *Store) Moves() repository.MoveRepository                  { return s.moves }
func (s *Store) MoveLines() repository.MoveLineRepository          { return s.moveLines }
func (s *Store) Lots() repository.LotRepository                    { return s.lots }
func (s *Store) Packages() repository.PackageRepository            { return s.packages }
func (s *Store) Batches() repository.BatchRepository               { return s.batches }
func (s *Store) AuditEntries() repository.AuditRepository          { return s.audits }
func (s *Store) Quants() repository.QuantRepository                { return s.quants }
func (s *Store) Products() repository.ProductRepository            { return s.products }
func (s *Store) Locations() repository.LocationRepository          { return s.locations }
func (s *Store) Movements() repository.InventoryMovementRepository { return s.movements }
