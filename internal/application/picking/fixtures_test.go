package picking_test

import (
	"context"
	"testing"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	companyID   = "C1"
	stockLoc    = "LOC-STOCK"
	customerLoc = "LOC-CUSTOMER"
	supplierLoc = "LOC-SUPPLIER"
	productID   = "P-PLAIN"
	lotProduct  = "P-LOT"
	serialProd  = "P-SERIAL"
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func ptr(s string) *string { return &s }

// newWarehouse crea un almacén con ubicaciones y productos base.
func newWarehouse(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	seed(t, store, func(ctx context.Context, s repository.Store) {
		for _, loc := range []*entity.Location{
			{ID: stockLoc, CompanyID: companyID, Name: "Stock", FullName: "WH/Stock", Usage: entity.LocationUsageInternal},
			{ID: customerLoc, CompanyID: companyID, Name: "Clientes", Usage: entity.LocationUsageCustomer},
			{ID: supplierLoc, CompanyID: companyID, Name: "Proveedores", Usage: entity.LocationUsageSupplier},
		} {
			require.NoError(t, s.Locations().Create(ctx, loc))
		}
		for _, p := range []*entity.Product{
			{ID: productID, CompanyID: companyID, SKU: "SKU-1", Name: "Tornillo", Tracking: entity.TrackingNone, Weight: decimal.RequireFromString("0.5")},
			{ID: lotProduct, CompanyID: companyID, SKU: "SKU-2", Name: "Pintura", Tracking: entity.TrackingLot, Weight: qty(2)},
			{ID: serialProd, CompanyID: companyID, SKU: "SKU-3", Name: "Taladro", Tracking: entity.TrackingSerial, Weight: qty(3)},
		} {
			require.NoError(t, s.Products().Create(ctx, p))
		}
	})
	return store
}

func seed(t *testing.T, store *memory.Store, fn func(ctx context.Context, s repository.Store)) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Run(ctx, func(s repository.Store) error {
		fn(ctx, s)
		return nil
	}))
}

func outgoing(id string) *entity.Transfer {
	return &entity.Transfer{
		ID: id, CompanyID: companyID, Name: "WH/OUT/" + id, OperationCode: entity.OperationOutgoing,
		LocationID: stockLoc, LocationDestID: customerLoc, State: entity.TransferStateAssigned,
	}
}

func incoming(id string) *entity.Transfer {
	return &entity.Transfer{
		ID: id, CompanyID: companyID, Name: "WH/IN/" + id, OperationCode: entity.OperationIncoming,
		LocationID: supplierLoc, LocationDestID: stockLoc, State: entity.TransferStateAssigned,
	}
}

func move(id, transferID, product string, planned int64, src, dest string) *entity.Move {
	return &entity.Move{
		ID: id, TransferID: transferID, CompanyID: companyID, ProductID: product,
		Quantity: qty(planned), LocationID: src, LocationDestID: dest, State: entity.TransferStateAssigned,
	}
}

func line(id, transferID, moveID, product string, done int64, src, dest string) *entity.MoveLine {
	l := &entity.MoveLine{
		ID: id, TransferID: transferID, CompanyID: companyID, ProductID: product,
		Quantity: qty(done), LocationID: src, LocationDestID: dest,
	}
	if moveID != "" {
		l.MoveID = ptr(moveID)
	}
	return l
}

// read ejecuta fn en una transacción de solo lectura.
func read(t *testing.T, store *memory.Store, fn func(ctx context.Context, s repository.Store)) {
	t.Helper()
	seed(t, store, fn)
}
