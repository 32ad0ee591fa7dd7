package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/picking"
	"github.com/jhoicas/wms-api/internal/application/reconcile"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// seedOutgoing crea una salida T1 de 5 unidades con existencias en WH/Stock.
func seedOutgoing(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	five := decimal.NewFromInt(5)
	require.NoError(t, store.Run(ctx, func(s repository.Store) error {
		for _, loc := range []*entity.Location{
			{ID: "L-STOCK", CompanyID: testCompanyID, Name: "Stock", FullName: "WH/Stock", Usage: entity.LocationUsageInternal},
			{ID: "L-CUST", CompanyID: testCompanyID, Name: "Clientes", Usage: entity.LocationUsageCustomer},
		} {
			if err := s.Locations().Create(ctx, loc); err != nil {
				return err
			}
		}
		if err := s.Products().Create(ctx, &entity.Product{
			ID: "P1", CompanyID: testCompanyID, SKU: "SKU-1", Name: "Tornillo", Tracking: entity.TrackingNone,
		}); err != nil {
			return err
		}
		if err := s.Quants().Create(ctx, &entity.Quant{
			ID: "Q1", CompanyID: testCompanyID, LocationID: "L-STOCK", ProductID: "P1", Quantity: five,
		}); err != nil {
			return err
		}
		if err := s.Transfers().Create(ctx, &entity.Transfer{
			ID: "T1", CompanyID: testCompanyID, Name: "WH/OUT/T1", OperationCode: entity.OperationOutgoing,
			LocationID: "L-STOCK", LocationDestID: "L-CUST", State: entity.TransferStateAssigned,
		}); err != nil {
			return err
		}
		return s.Moves().Create(ctx, &entity.Move{
			ID: "M1", TransferID: "T1", CompanyID: testCompanyID, ProductID: "P1", Quantity: five,
			LocationID: "L-STOCK", LocationDestID: "L-CUST", State: entity.TransferStateAssigned,
		})
	}))
}

func TestRouter_ValidaContraAlmacenEnMemoria(t *testing.T) {
	store := memory.NewStore()
	seedOutgoing(t, store)
	svc := reconcile.NewService(store, picking.NewCommitter(nil), logger.Nop(), reconcile.Options{})
	app := newApp(svc, newFakeResponses(), true)
	body := `{"picking_id":"T1","move_line_ids":[{"product_id":"P1","quantity_done":5}]}`

	resp := call(t, app, http.MethodPost, "/api/pickings/validate", body, nil)
	require.Equal(t, http.StatusOK, resp.status, resp.body)
	assert.Equal(t, reconcile.CodeSuccess, decode[dto.ResultResponse](t, resp.body).Code)

	resp = call(t, app, http.MethodPost, "/api/pickings/validate", body, nil)
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, reconcile.CodeAlreadyValidated, decode[dto.ResultResponse](t, resp.body).Code)

	resp = call(t, app, http.MethodGet, "/api/pickings/T1/changes", "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, 1, decode[dto.ChangesResponse](t, resp.body).Count)

	resp = call(t, app, http.MethodPost, "/api/pickings/validate", `{"picking_id":"T-404","move_line_ids":[{"product_id":"P1","quantity_done":1}]}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
}
