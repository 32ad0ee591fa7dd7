package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.QuantRepository = (*QuantRepo)(nil)

// QuantRepo existencias por (ubicación, producto, lote, paquete, propietario) sobre PostgreSQL.
type QuantRepo struct {
	q Querier
}

// NewQuantRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewQuantRepository(q Querier) *QuantRepo {
	return &QuantRepo{q: q}
}

const quantColumns = `id, company_id, location_id, product_id, lot_id, package_id, owner_id, quantity,
	inventory_quantity, inventory_quantity_set, inventory_date, updated_at`

func scanQuant(row pgx.Row) (*entity.Quant, error) {
	var q entity.Quant
	err := row.Scan(&q.ID, &q.CompanyID, &q.LocationID, &q.ProductID, &q.LotID, &q.PackageID, &q.OwnerID,
		&q.Quantity, &q.InventoryQuantity, &q.InventoryQuantitySet, &q.InventoryDate, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Find busca por la clave completa y bloquea la fila (SELECT FOR UPDATE).
func (r *QuantRepo) Find(ctx context.Context, key entity.QuantKey) (*entity.Quant, error) {
	query := `
		SELECT ` + quantColumns + ` FROM quants
		WHERE company_id = $1 AND location_id = $2 AND product_id = $3
		  AND lot_id IS NOT DISTINCT FROM $4
		  AND package_id IS NOT DISTINCT FROM $5
		  AND owner_id IS NOT DISTINCT FROM $6
		FOR UPDATE`
	q, err := scanQuant(r.q.QueryRow(ctx, query,
		key.CompanyID, key.LocationID, key.ProductID, key.LotID, key.PackageID, key.OwnerID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find quant: %w", err)
	}
	return q, nil
}

// GetByID obtiene un registro de existencias por ID.
func (r *QuantRepo) GetByID(ctx context.Context, id string) (*entity.Quant, error) {
	q, err := scanQuant(r.q.QueryRow(ctx, `SELECT `+quantColumns+` FROM quants WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quant: %w", err)
	}
	return q, nil
}

// Create persiste un registro de existencias.
func (r *QuantRepo) Create(ctx context.Context, q *entity.Quant) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO quants (`+quantColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		q.ID, q.CompanyID, q.LocationID, q.ProductID, q.LotID, q.PackageID, q.OwnerID,
		q.Quantity, q.InventoryQuantity, q.InventoryQuantitySet, q.InventoryDate, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quant: %w", err)
	}
	return nil
}

// Update reescribe cantidad y datos de conteo.
func (r *QuantRepo) Update(ctx context.Context, q *entity.Quant) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE quants SET quantity = $2, inventory_quantity = $3, inventory_quantity_set = $4,
			inventory_date = $5, updated_at = $6
		WHERE id = $1`,
		q.ID, q.Quantity, q.InventoryQuantity, q.InventoryQuantitySet, q.InventoryDate, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes y números de serie sobre PostgreSQL.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create inserta el lote. Un (product_id, name) existente devuelve domain.ErrDuplicate sin
// abortar la transacción en curso.
func (r *LotRepo) Create(ctx context.Context, l *entity.Lot) error {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO lots (id, company_id, product_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, name) DO NOTHING`,
		l.ID, l.CompanyID, l.ProductID, l.Name, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	return r.get(ctx, `SELECT id, company_id, product_id, name, created_at FROM lots WHERE id = $1`, id)
}

// FindByName busca el lote del producto por nombre exacto.
func (r *LotRepo) FindByName(ctx context.Context, productID, name string) (*entity.Lot, error) {
	return r.get(ctx, `SELECT id, company_id, product_id, name, created_at FROM lots WHERE product_id = $1 AND name = $2`, productID, name)
}

func (r *LotRepo) get(ctx context.Context, query string, args ...any) (*entity.Lot, error) {
	var l entity.Lot
	err := r.q.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CompanyID, &l.ProductID, &l.Name, &l.CreatedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo paquetes sobre PostgreSQL.
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

const packageColumns = `id, company_id, name, package_use, weight, pack_date, created_at`

func (r *PackageRepo) get(ctx context.Context, query string, args ...any) (*entity.Package, error) {
	var p entity.Package
	err := r.q.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CompanyID, &p.Name, &p.PackageUse, &p.Weight, &p.PackDate, &p.CreatedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return &p, nil
}

// Create persiste un paquete.
func (r *PackageRepo) Create(ctx context.Context, p *entity.Package) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO packages (`+packageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.CompanyID, p.Name, p.PackageUse, p.Weight, p.PackDate, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert package: %w", err)
	}
	return nil
}

// GetByID obtiene un paquete por ID.
func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	return r.get(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id)
}

// FindByName devuelve el paquete más antiguo de la empresa con ese nombre.
func (r *PackageRepo) FindByName(ctx context.Context, companyID, name string) (*entity.Package, error) {
	return r.get(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE company_id = $1 AND name = $2 ORDER BY created_at, id LIMIT 1`,
		companyID, name)
}

// Rename cambia el nombre del paquete.
func (r *PackageRepo) Rename(ctx context.Context, id, name string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE packages SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("rename package: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextName toma el siguiente valor de la secuencia package_name_seq.
func (r *PackageRepo) NextName(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('package_name_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next package name: %w", err)
	}
	return fmt.Sprintf("PACK%07d", n), nil
}
