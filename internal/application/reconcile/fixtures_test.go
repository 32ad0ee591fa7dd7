package reconcile_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/application/reconcile"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	companyID   = "C1"
	stockLoc    = "LOC-STOCK"
	shelfLoc    = "LOC-SHELF"
	packLoc     = "LOC-PACK"
	customerLoc = "LOC-CUSTOMER"
	supplierLoc = "LOC-SUPPLIER"
	productID   = "P-PLAIN"
	lotProduct  = "P-LOT"
)

var actor = reconcile.Actor{UserID: "U1", CompanyID: companyID}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func ptr[T any](v T) *T { return &v }

// env es un almacén en memoria con el servicio conectado al committer real.
type env struct {
	store *memory.Store
	svc   *reconcile.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	e := &env{
		store: store,
		svc:   reconcile.NewService(store, picking.NewCommitter(nil), logger.Nop(), reconcile.Options{}),
	}
	e.seed(t, func(ctx context.Context, s repository.Store) {
		for _, loc := range []*entity.Location{
			{ID: stockLoc, CompanyID: companyID, Name: "Stock", FullName: "WH/Stock", Usage: entity.LocationUsageInternal},
			{ID: shelfLoc, CompanyID: companyID, Name: "Estante 1", FullName: "WH/Stock/Estante 1", Usage: entity.LocationUsageInternal},
			{ID: packLoc, CompanyID: companyID, Name: "Empaque", FullName: "WH/Empaque", Usage: entity.LocationUsageInternal},
			{ID: customerLoc, CompanyID: companyID, Name: "Clientes", Usage: entity.LocationUsageCustomer},
			{ID: supplierLoc, CompanyID: companyID, Name: "Proveedores", Usage: entity.LocationUsageSupplier},
		} {
			require.NoError(t, s.Locations().Create(ctx, loc))
		}
		require.NoError(t, s.Products().Create(ctx, &entity.Product{
			ID: productID, CompanyID: companyID, SKU: "SKU-1", Name: "Tornillo", Tracking: entity.TrackingNone, Weight: qty(1),
		}))
		require.NoError(t, s.Products().Create(ctx, &entity.Product{
			ID: lotProduct, CompanyID: companyID, SKU: "SKU-2", Name: "Pintura", Tracking: entity.TrackingLot, Weight: qty(2),
		}))
	})
	return e
}

func (e *env) seed(t *testing.T, fn func(ctx context.Context, s repository.Store)) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.store.Run(ctx, func(s repository.Store) error {
		fn(ctx, s)
		return nil
	}))
}

func (e *env) transfer(t *testing.T, id string) *entity.Transfer {
	t.Helper()
	var tr *entity.Transfer
	e.seed(t, func(ctx context.Context, s repository.Store) {
		tr, _ = s.Transfers().GetByID(ctx, id)
	})
	require.NotNil(t, tr)
	return tr
}

func (e *env) lines(t *testing.T, transferID string) []*entity.MoveLine {
	t.Helper()
	var out []*entity.MoveLine
	e.seed(t, func(ctx context.Context, s repository.Store) {
		out, _ = s.MoveLines().ListByTransfer(ctx, transferID)
	})
	return out
}

func (e *env) audits(t *testing.T, transferID string) []*entity.AuditEntry {
	t.Helper()
	var out []*entity.AuditEntry
	e.seed(t, func(ctx context.Context, s repository.Store) {
		out, _ = s.AuditEntries().ListByTransfer(ctx, transferID)
	})
	return out
}

func outgoing(id string) *entity.Transfer {
	return &entity.Transfer{
		ID: id, CompanyID: companyID, Name: "WH/OUT/" + id, OperationCode: entity.OperationOutgoing,
		LocationID: stockLoc, LocationDestID: customerLoc, State: entity.TransferStateAssigned,
	}
}

func incoming(id string, useExisting bool) *entity.Transfer {
	return &entity.Transfer{
		ID: id, CompanyID: companyID, Name: "WH/IN/" + id, OperationCode: entity.OperationIncoming,
		UseExistingLots: useExisting, LocationID: supplierLoc, LocationDestID: stockLoc, State: entity.TransferStateAssigned,
	}
}

func move(id, transferID, product string, planned int64, src, dest string) *entity.Move {
	return &entity.Move{
		ID: id, TransferID: transferID, CompanyID: companyID, ProductID: product,
		Quantity: qty(planned), LocationID: src, LocationDestID: dest, State: entity.TransferStateAssigned,
	}
}

func line(id, transferID, product string, done int64) *entity.MoveLine {
	return &entity.MoveLine{
		ID: id, TransferID: transferID, CompanyID: companyID, ProductID: product,
		Quantity: qty(done), LocationID: stockLoc, LocationDestID: customerLoc,
	}
}

// tracingTx envuelve el almacén y registra, en orden, los bloqueos de transferencias
// ("lock:T1") y las líneas realizadas creadas ("line:T1").
type tracingTx struct {
	inner  repository.TxRunner
	events []string
}

func (tx *tracingTx) Run(ctx context.Context, fn func(store repository.Store) error) error {
	return tx.inner.Run(ctx, func(s repository.Store) error {
		return fn(tracingStore{Store: s, tx: tx})
	})
}

func (tx *tracingTx) filter(prefix string) []string {
	var out []string
	for _, ev := range tx.events {
		if id, ok := strings.CutPrefix(ev, prefix+":"); ok {
			out = append(out, id)
		}
	}
	return out
}

type tracingStore struct {
	repository.Store
	tx *tracingTx
}

func (s tracingStore) Transfers() repository.TransferRepository {
	return tracingTransfers{TransferRepository: s.Store.Transfers(), tx: s.tx}
}

func (s tracingStore) MoveLines() repository.MoveLineRepository {
	return tracingLines{MoveLineRepository: s.Store.MoveLines(), tx: s.tx}
}

type tracingTransfers struct {
	repository.TransferRepository
	tx *tracingTx
}

func (r tracingTransfers) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	r.tx.events = append(r.tx.events, "lock:"+id)
	return r.TransferRepository.GetForUpdate(ctx, id)
}

type tracingLines struct {
	repository.MoveLineRepository
	tx *tracingTx
}

func (r tracingLines) Create(ctx context.Context, l *entity.MoveLine) error {
	r.tx.events = append(r.tx.events, "line:"+l.TransferID)
	return r.MoveLineRepository.Create(ctx, l)
}
