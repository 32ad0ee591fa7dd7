package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.MoveRepository = (*MoveRepo)(nil)

// MoveRepo líneas planificadas sobre PostgreSQL.
type MoveRepo struct {
	q Querier
}

// NewMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoveRepository(q Querier) *MoveRepo {
	return &MoveRepo{q: q}
}

const moveColumns = `id, transfer_id, company_id, product_id, quantity, location_id, location_dest_id, state, created_at, updated_at`

func scanMove(row pgx.Row) (*entity.Move, error) {
	var m entity.Move
	err := row.Scan(&m.ID, &m.TransferID, &m.CompanyID, &m.ProductID, &m.Quantity,
		&m.LocationID, &m.LocationDestID, &m.State, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una línea planificada.
func (r *MoveRepo) Create(ctx context.Context, m *entity.Move) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO moves (`+moveColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.TransferID, m.CompanyID, m.ProductID, m.Quantity, m.LocationID, m.LocationDestID, m.State, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	return nil
}

// FindByTransferAndProduct devuelve la primera línea planificada del producto.
func (r *MoveRepo) FindByTransferAndProduct(ctx context.Context, transferID, productID string) (*entity.Move, error) {
	m, err := scanMove(r.q.QueryRow(ctx,
		`SELECT `+moveColumns+` FROM moves WHERE transfer_id = $1 AND product_id = $2 ORDER BY created_at, id LIMIT 1`,
		transferID, productID,
	))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find move: %w", err)
	}
	return m, nil
}

// ListByTransfer lista las líneas planificadas de la transferencia.
func (r *MoveRepo) ListByTransfer(ctx context.Context, transferID string) ([]*entity.Move, error) {
	rows, err := r.q.Query(ctx, `SELECT `+moveColumns+` FROM moves WHERE transfer_id = $1 ORDER BY created_at, id`, transferID)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()
	var out []*entity.Move
	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateState cambia el estado de la línea planificada.
func (r *MoveRepo) UpdateState(ctx context.Context, id, state string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE moves SET state = $2, updated_at = now() WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("update move state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.MoveLineRepository = (*MoveLineRepo)(nil)

// MoveLineRepo líneas realizadas sobre PostgreSQL.
type MoveLineRepo struct {
	q Querier
}

// NewMoveLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoveLineRepository(q Querier) *MoveLineRepo {
	return &MoveLineRepo{q: q}
}

const moveLineColumns = `id, transfer_id, move_id, batch_id, company_id, product_id, quantity, location_id,
	location_dest_id, lot_id, lot_name, result_package_id, created_by, created_at, updated_at`

func scanMoveLine(row pgx.Row) (*entity.MoveLine, error) {
	var l entity.MoveLine
	var lotName, createdBy *string
	err := row.Scan(&l.ID, &l.TransferID, &l.MoveID, &l.BatchID, &l.CompanyID, &l.ProductID, &l.Quantity,
		&l.LocationID, &l.LocationDestID, &l.LotID, &lotName, &l.ResultPackageID, &createdBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.LotName = fromNullable(lotName)
	l.CreatedBy = fromNullable(createdBy)
	return &l, nil
}

// Create persiste una línea realizada.
func (r *MoveLineRepo) Create(ctx context.Context, l *entity.MoveLine) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO move_lines (`+moveLineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		l.ID, l.TransferID, l.MoveID, l.BatchID, l.CompanyID, l.ProductID, l.Quantity, l.LocationID,
		l.LocationDestID, l.LotID, nullable(l.LotName), l.ResultPackageID, nullable(l.CreatedBy), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert move line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea realizada por ID.
func (r *MoveLineRepo) GetByID(ctx context.Context, id string) (*entity.MoveLine, error) {
	l, err := scanMoveLine(r.q.QueryRow(ctx, `SELECT `+moveLineColumns+` FROM move_lines WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get move line: %w", err)
	}
	return l, nil
}

// Find arma el WHERE a partir del filtro. El orden es el de creación.
func (r *MoveLineRepo) Find(ctx context.Context, f entity.MoveLineFilter) ([]*entity.MoveLine, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.TransferID != "" {
		conds = append(conds, "transfer_id = "+arg(f.TransferID))
	}
	if f.ProductID != "" {
		conds = append(conds, "product_id = "+arg(f.ProductID))
	}
	if f.Quantity != nil {
		conds = append(conds, "quantity = "+arg(*f.Quantity))
	}
	if len(f.ExcludeIDs) > 0 {
		conds = append(conds, "NOT (id = ANY("+arg(f.ExcludeIDs)+"))")
	}
	switch {
	case f.LotID != nil && f.LotName != "":
		conds = append(conds, "(lot_id = "+arg(*f.LotID)+" OR (lot_id IS NULL AND lot_name = "+arg(f.LotName)+"))")
	case f.LotID != nil:
		conds = append(conds, "lot_id = "+arg(*f.LotID))
	case f.LotName != "":
		conds = append(conds, "lot_id IS NULL AND lot_name = "+arg(f.LotName))
	}

	query := `SELECT ` + moveLineColumns + ` FROM move_lines`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	return r.list(ctx, query, args...)
}

// ListByTransfer lista las líneas realizadas de la transferencia.
func (r *MoveLineRepo) ListByTransfer(ctx context.Context, transferID string) ([]*entity.MoveLine, error) {
	return r.list(ctx, `SELECT `+moveLineColumns+` FROM move_lines WHERE transfer_id = $1 ORDER BY created_at, id`, transferID)
}

func (r *MoveLineRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MoveLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list move lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.MoveLine
	for rows.Next() {
		l, err := scanMoveLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan move line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update reescribe los campos editables de la línea.
func (r *MoveLineRepo) Update(ctx context.Context, l *entity.MoveLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE move_lines SET product_id = $2, quantity = $3, location_id = $4, location_dest_id = $5,
			lot_id = $6, lot_name = $7, result_package_id = $8, updated_at = $9
		WHERE id = $1`,
		l.ID, l.ProductID, l.Quantity, l.LocationID, l.LocationDestID,
		l.LotID, nullable(l.LotName), l.ResultPackageID, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update move line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetResultPackage asigna el paquete resultado a las líneas.
func (r *MoveLineRepo) SetResultPackage(ctx context.Context, ids []string, packageID string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE move_lines SET result_package_id = $2, updated_at = now() WHERE id = ANY($1)`,
		ids, packageID,
	)
	if err != nil {
		return fmt.Errorf("set result package: %w", err)
	}
	if int(cmd.RowsAffected()) != len(ids) {
		return fmt.Errorf("set result package: %w", domain.ErrNotFound)
	}
	return nil
}

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo historial de cambios desde la app (solo inserción).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditRepo) Create(ctx context.Context, a *entity.AuditEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_entries (id, transfer_id, move_line_id, created, changes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.TransferID, a.MoveLineID, a.Created, a.Changes, nullable(a.CreatedBy), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByTransfer lista el historial de la transferencia en orden cronológico.
func (r *AuditRepo) ListByTransfer(ctx context.Context, transferID string) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, transfer_id, move_line_id, created, changes, created_by, created_at
		FROM audit_entries WHERE transfer_id = $1 ORDER BY created_at, id`, transferID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var out []*entity.AuditEntry
	for rows.Next() {
		var a entity.AuditEntry
		var createdBy *string
		if err := rows.Scan(&a.ID, &a.TransferID, &a.MoveLineID, &a.Created, &a.Changes, &createdBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		a.CreatedBy = fromNullable(createdBy)
		out = append(out, &a)
	}
	return out, rows.Err()
}
