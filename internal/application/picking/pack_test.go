package picking_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutInPack(t *testing.T) {
	store := newWarehouse(t)
	seed(t, store, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
		require.NoError(t, s.MoveLines().Create(ctx, line("ML1", "T1", "", productID, 4, stockLoc, customerLoc)))
		require.NoError(t, s.MoveLines().Create(ctx, line("ML2", "T1", "", lotProduct, 1, stockLoc, customerLoc)))
	})

	var pkg *entity.Package
	err := store.Run(context.Background(), func(s repository.Store) error {
		var err error
		pkg, err = picking.PutInPack(context.Background(), s, companyID, []string{"ML1", "ML2", "ML1"})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "PACK0000001", pkg.Name)
	assert.Equal(t, entity.PackageUseDisposable, pkg.PackageUse)
	// 4 * 0.5 + 1 * 2
	assert.True(t, decimal.NewFromInt(4).Equal(pkg.Weight), "peso: %s", pkg.Weight)

	read(t, store, func(ctx context.Context, s repository.Store) {
		for _, id := range []string{"ML1", "ML2"} {
			ml, _ := s.MoveLines().GetByID(ctx, id)
			require.NotNil(t, ml.ResultPackageID)
			assert.Equal(t, pkg.ID, *ml.ResultPackageID)
		}
	})
}

func TestPutInPack_Errores(t *testing.T) {
	store := newWarehouse(t)
	err := store.Run(context.Background(), func(s repository.Store) error {
		_, err := picking.PutInPack(context.Background(), s, companyID, nil)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Run(context.Background(), func(s repository.Store) error {
		_, err := picking.PutInPack(context.Background(), s, companyID, []string{"NO-EXISTE"})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyAdjustment(t *testing.T) {
	store := newWarehouse(t)
	countDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, store, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Quants().Create(ctx, &entity.Quant{
			ID: "Q1", CompanyID: companyID, LocationID: stockLoc, ProductID: productID,
			Quantity: qty(7), InventoryQuantity: qty(10), InventoryQuantitySet: true, InventoryDate: &countDate,
		}))
		require.NoError(t, s.Quants().Create(ctx, &entity.Quant{
			ID: "Q2", CompanyID: companyID, LocationID: stockLoc, ProductID: lotProduct, Quantity: qty(1),
		}))
	})

	err := store.Run(context.Background(), func(s repository.Store) error {
		return picking.ApplyAdjustment(context.Background(), s, "Q1", "U1")
	})
	require.NoError(t, err)

	read(t, store, func(ctx context.Context, s repository.Store) {
		q, _ := s.Quants().GetByID(ctx, "Q1")
		assert.True(t, qty(10).Equal(q.Quantity))
		assert.False(t, q.InventoryQuantitySet)
		assert.Nil(t, q.InventoryDate)

		ledger, _ := s.Movements().ListByTransaction(ctx, "Q1")
		require.Len(t, ledger, 1)
		assert.Equal(t, entity.MovementTypeADJUSTMENT, ledger[0].Type)
		assert.True(t, qty(3).Equal(ledger[0].Quantity))
		assert.True(t, countDate.Equal(ledger[0].Date))
	})

	err = store.Run(context.Background(), func(s repository.Store) error {
		return picking.ApplyAdjustment(context.Background(), s, "Q2", "U1")
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cantidad contada no hay ajuste")
}
