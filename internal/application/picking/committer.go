package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CommitOptions parámetros de validación de una transferencia.
type CommitOptions struct {
	CreateBackorder       bool
	SuppressNotifications bool
	UserID                string
}

// BatchCommitOptions parámetros de validación de un lote. Las transferencias listadas en
// NoBackorderTransferIDs se validan sin crear backorder.
type BatchCommitOptions struct {
	NoBackorderTransferIDs []string
	SuppressNotifications  bool
	UserID                 string
}

// Committer valida transferencias y lotes: mueve existencias, registra el libro de
// inventario, cierra las líneas planificadas y crea backorders.
// Opera sobre el Store de la transacción del llamador; no abre transacciones propias.
type Committer struct {
	notifier Notifier
	now      func() time.Time
}

// NewCommitter construye el committer. notifier puede ser nil.
func NewCommitter(notifier Notifier) *Committer {
	return &Committer{notifier: notifier, now: time.Now}
}

// CommitTransfer lleva la transferencia a done. Relee la transferencia con bloqueo de fila.
// Errores: ErrNotFound, ErrConflict (ya terminal), ErrNothingToValidate, ErrMissingLot, ErrSerialQuantity.
func (c *Committer) CommitTransfer(ctx context.Context, store repository.Store, transferID string, opts CommitOptions) error {
	transfer, err := store.Transfers().GetForUpdate(ctx, transferID)
	if err != nil {
		return err
	}
	if transfer == nil {
		return fmt.Errorf("transferencia %s: %w", transferID, domain.ErrNotFound)
	}
	if transfer.IsTerminal() {
		return fmt.Errorf("transferencia %s en estado %s: %w", transfer.Name, transfer.State, domain.ErrConflict)
	}

	done, err := linesWithQuantity(ctx, store, transfer.ID)
	if err != nil {
		return err
	}
	if len(done) == 0 {
		return fmt.Errorf("transferencia %s: %w", transfer.Name, domain.ErrNothingToValidate)
	}

	now := c.now()
	for _, line := range done {
		if err := c.prepareLine(ctx, store, line, now); err != nil {
			return err
		}
	}
	for _, line := range done {
		if err := c.moveStock(ctx, store, transfer, line, opts.UserID, now); err != nil {
			return err
		}
	}
	if err := c.closeMoves(ctx, store, transfer, done, opts.CreateBackorder, now); err != nil {
		return err
	}
	if err := store.Transfers().UpdateState(ctx, transfer.ID, entity.TransferStateDone, &now); err != nil {
		return err
	}
	transfer.State = entity.TransferStateDone
	transfer.DateDone = &now

	if opts.SuppressNotifications || c.notifier == nil {
		return nil
	}
	return c.notifier.TransferValidated(ctx, transfer)
}

// CommitBatch valida cada transferencia abierta del lote que tenga cantidades, saca del
// lote las que no tienen nada realizado y marca el lote done cuando no queda ninguna abierta.
func (c *Committer) CommitBatch(ctx context.Context, store repository.Store, batchID string, opts BatchCommitOptions) error {
	batch, err := store.Batches().GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return fmt.Errorf("lote %s: %w", batchID, domain.ErrNotFound)
	}
	if batch.State == entity.BatchStateDone || batch.State == entity.BatchStateCancel {
		return fmt.Errorf("lote %s en estado %s: %w", batch.Name, batch.State, domain.ErrConflict)
	}

	members, err := store.Transfers().ListByBatch(ctx, batch.ID)
	if err != nil {
		return err
	}
	noBackorder := make(map[string]struct{}, len(opts.NoBackorderTransferIDs))
	for _, id := range opts.NoBackorderTransferIDs {
		noBackorder[id] = struct{}{}
	}

	committed := 0
	for _, member := range members {
		if member.IsTerminal() {
			continue
		}
		lines, err := linesWithQuantity(ctx, store, member.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			if err := store.Transfers().SetBatch(ctx, member.ID, nil); err != nil {
				return err
			}
			continue
		}
		_, skip := noBackorder[member.ID]
		err = c.CommitTransfer(ctx, store, member.ID, CommitOptions{
			CreateBackorder:       !skip,
			SuppressNotifications: opts.SuppressNotifications,
			UserID:                opts.UserID,
		})
		if err != nil {
			return fmt.Errorf("transferencia %s: %w", member.Name, err)
		}
		committed++
	}
	if committed == 0 {
		return fmt.Errorf("lote %s: %w", batch.Name, domain.ErrNothingToValidate)
	}
	return store.Batches().UpdateState(ctx, batch.ID, entity.BatchStateDone)
}

func linesWithQuantity(ctx context.Context, store repository.Store, transferID string) ([]*entity.MoveLine, error) {
	lines, err := store.MoveLines().ListByTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.MoveLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity.GreaterThan(decimal.Zero) {
			out = append(out, l)
		}
	}
	return out, nil
}

// prepareLine asigna el lote a las líneas vinculadas solo por nombre y verifica trazabilidad.
func (c *Committer) prepareLine(ctx context.Context, store repository.Store, line *entity.MoveLine, now time.Time) error {
	product, err := store.Products().GetByID(ctx, line.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", line.ProductID, domain.ErrNotFound)
	}
	if line.LotID == nil && line.LotName != "" {
		lot, err := FindOrCreateLot(ctx, store.Lots(), product, line.LotName)
		if err != nil {
			return err
		}
		line.LotID = &lot.ID
		line.UpdatedAt = now
		if err := store.MoveLines().Update(ctx, line); err != nil {
			return err
		}
	}
	if !product.IsTracked() {
		return nil
	}
	if line.LotID == nil {
		return fmt.Errorf("%w: %s", domain.ErrMissingLot, product.DisplayName())
	}
	if product.Tracking == entity.TrackingSerial && !line.Quantity.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %s", domain.ErrSerialQuantity, product.DisplayName())
	}
	return nil
}

// moveStock descuenta del origen y suma al destino (solo ubicaciones que llevan existencias)
// y registra el asiento en el libro.
func (c *Committer) moveStock(ctx context.Context, store repository.Store, transfer *entity.Transfer, line *entity.MoveLine, userID string, now time.Time) error {
	src, err := getLocation(ctx, store, line.LocationID)
	if err != nil {
		return err
	}
	dest, err := getLocation(ctx, store, line.LocationDestID)
	if err != nil {
		return err
	}

	if src.KeepsStock() {
		key := entity.QuantKey{CompanyID: line.CompanyID, LocationID: src.ID, ProductID: line.ProductID, LotID: line.LotID}
		if err := addToQuant(ctx, store.Quants(), key, line.Quantity.Neg(), now); err != nil {
			return err
		}
	}
	if dest.KeepsStock() {
		key := entity.QuantKey{
			CompanyID:  line.CompanyID,
			LocationID: dest.ID,
			ProductID:  line.ProductID,
			LotID:      line.LotID,
			PackageID:  line.ResultPackageID,
		}
		if err := addToQuant(ctx, store.Quants(), key, line.Quantity, now); err != nil {
			return err
		}
	}

	return store.Movements().Create(ctx, &entity.InventoryMovement{
		ID:            uuid.New().String(),
		TransactionID: transfer.ID,
		CompanyID:     line.CompanyID,
		ProductID:     line.ProductID,
		LocationID:    src.ID,
		LocationDest:  dest.ID,
		LotID:         line.LotID,
		Type:          entity.MovementTypeForOperation(transfer.OperationCode),
		Quantity:      line.Quantity,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	})
}

func getLocation(ctx context.Context, store repository.Store, id string) (*entity.Location, error) {
	loc, err := store.Locations().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("ubicación %s: %w", id, domain.ErrNotFound)
	}
	return loc, nil
}

// closeMoves cierra las líneas planificadas y, si se permite, pasa lo pendiente a un backorder.
// Una línea planificada sin nada realizado queda cancelada cuando no hay backorder.
func (c *Committer) closeMoves(ctx context.Context, store repository.Store, transfer *entity.Transfer, done []*entity.MoveLine, createBackorder bool, now time.Time) error {
	moves, err := store.Moves().ListByTransfer(ctx, transfer.ID)
	if err != nil {
		return err
	}
	doneByMove := make(map[string]decimal.Decimal, len(moves))
	for _, l := range done {
		if l.MoveID != nil {
			doneByMove[*l.MoveID] = doneByMove[*l.MoveID].Add(l.Quantity)
		}
	}

	var pending []*entity.Move
	for _, m := range moves {
		if m.State == entity.TransferStateDone || m.State == entity.TransferStateCancel {
			continue
		}
		qty := doneByMove[m.ID]
		remaining := inventory.Remaining(m.Quantity, qty)
		if remaining.IsPositive() && createBackorder {
			rest := *m
			rest.Quantity = remaining
			pending = append(pending, &rest)
		}
		state := entity.TransferStateDone
		if qty.IsZero() {
			state = entity.TransferStateCancel
		}
		if err := store.Moves().UpdateState(ctx, m.ID, state); err != nil {
			return err
		}
	}
	if len(pending) == 0 {
		return nil
	}
	return createBackorderTransfer(ctx, store, transfer, pending, now)
}

func createBackorderTransfer(ctx context.Context, store repository.Store, origin *entity.Transfer, moves []*entity.Move, now time.Time) error {
	originID := origin.ID
	backorder := &entity.Transfer{
		ID:              uuid.New().String(),
		CompanyID:       origin.CompanyID,
		Name:            origin.Name + "-BO",
		OperationCode:   origin.OperationCode,
		UseExistingLots: origin.UseExistingLots,
		LocationID:      origin.LocationID,
		LocationDestID:  origin.LocationDestID,
		State:           entity.TransferStateAssigned,
		UserID:          origin.UserID,
		BackorderID:     &originID,
		BackorderPolicy: origin.BackorderPolicy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := store.Transfers().Create(ctx, backorder); err != nil {
		return err
	}
	for _, m := range moves {
		m.ID = uuid.New().String()
		m.TransferID = backorder.ID
		m.State = entity.TransferStateAssigned
		m.CreatedAt = now
		m.UpdatedAt = now
		if err := store.Moves().Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
