package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, company_id, name, operation_code, use_existing_lots, location_id, location_dest_id,
	state, user_id, batch_id, backorder_id, backorder_policy, date_done, created_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.OperationCode, &t.UseExistingLots, &t.LocationID, &t.LocationDestID,
		&t.State, &t.UserID, &t.BatchID, &t.BackorderID, &t.BackorderPolicy, &t.DateDone, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una transferencia.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.Name, t.OperationCode, t.UseExistingLots, t.LocationID, t.LocationDestID,
		t.State, t.UserID, t.BatchID, t.BackorderID, t.BackorderPolicy, t.DateDone, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene una transferencia por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// GetForUpdate obtiene la transferencia y bloquea la fila (SELECT FOR UPDATE).
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer for update: %w", err)
	}
	return t, nil
}

// ListByBatch lista las transferencias del lote.
func (r *TransferRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Transfer, error) {
	return r.list(ctx, `SELECT `+transferColumns+` FROM transfers WHERE batch_id = $1 ORDER BY created_at, id`, batchID)
}

// ListBackorders lista los backorders de originID.
func (r *TransferRepo) ListBackorders(ctx context.Context, originID string) ([]*entity.Transfer, error) {
	return r.list(ctx, `SELECT `+transferColumns+` FROM transfers WHERE backorder_id = $1 ORDER BY created_at, id`, originID)
}

func (r *TransferRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateState cambia el estado; dateDone solo se escribe si no es nil.
func (r *TransferRepo) UpdateState(ctx context.Context, id, state string, dateDone *time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE transfers SET state = $2, date_done = COALESCE($3, date_done), updated_at = now() WHERE id = $1`,
		id, state, dateDone,
	)
	if err != nil {
		return fmt.Errorf("update transfer state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetBatch asigna o quita (nil) el lote de la transferencia.
func (r *TransferRepo) SetBatch(ctx context.Context, id string, batchID *string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE transfers SET batch_id = $2, updated_at = now() WHERE id = $1`, id, batchID)
	if err != nil {
		return fmt.Errorf("set transfer batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, company_id, name, state, user_id, backorder_policy, created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.State, &b.UserID, &b.BackorderPolicy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un lote de transferencias.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO batches (`+batchColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.CompanyID, b.Name, b.State, b.UserID, b.BackorderPolicy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el lote y bloquea la fila.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// UpdateState cambia el estado del lote.
func (r *BatchRepo) UpdateState(ctx context.Context, id, state string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE batches SET state = $2, updated_at = now() WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("update batch state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
