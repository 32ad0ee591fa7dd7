package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/reconcile"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

func TestPickingValidateRequest_CamposDeLaApp(t *testing.T) {
	body := `{
		"picking_id": "T1",
		"create_backorder": false,
		"move_line_ids": [{
			"product_id": "P1",
			"quantity_done": "2.5",
			"lot_id": "A-1",
			"stock_lot_id": "LOT-9",
			"location_id": "L1",
			"location_dest_id": "L2",
			"product_package": "CAJA-1",
			"product_packages_id": "PK-1",
			"skip_line_matching": true
		}]
	}`
	var in dto.PickingValidateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	req := in.ToTransferRequest()
	assert.Equal(t, "T1", req.TransferID)
	require.NotNil(t, req.CreateBackorder)
	assert.False(t, *req.CreateBackorder)
	require.Len(t, req.Lines, 1)

	l := req.Lines[0]
	assert.Equal(t, "P1", l.ProductID)
	assert.True(t, l.QuantityDone.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "A-1", l.LotToken)
	assert.Equal(t, "LOT-9", l.LotID)
	assert.Equal(t, "L1", l.LocationID)
	assert.Equal(t, "L2", l.LocationDestID)
	assert.Equal(t, "CAJA-1", l.PackageLabel)
	assert.Equal(t, "PK-1", l.PackageID)
	assert.True(t, l.SkipLineMatching)
}

func TestPickingValidateRequest_SinCreateBackorder(t *testing.T) {
	var in dto.PickingValidateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"picking_id":"T1","move_line_ids":[]}`), &in))
	assert.Nil(t, in.ToTransferRequest().CreateBackorder)
}

func TestBatchValidateSyncRequest_ConservaOrden(t *testing.T) {
	in := dto.BatchValidateSyncRequest{Data: []dto.BatchValidateRequest{
		{BatchID: "B2", MoveLineIDs: []dto.MoveLineRequest{{PickingID: "T9", ProductID: "P1"}}},
		{BatchID: "B1"},
	}}
	reqs := in.ToBatchRequests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "B2", reqs[0].BatchID)
	assert.Equal(t, "T9", reqs[0].Lines[0].TransferID)
	assert.Equal(t, "B1", reqs[1].BatchID)
}

func TestStockQuantsRequest_ToStockCounts(t *testing.T) {
	body := `{"stock_quant":[{"location_id":"L1","product_id":"P1","lot":"A-1","package":"CAJA-7","owner_id":"O1","inventory_quantity":"4","inventory_date":"2026-10-01T00:00:00Z"}]}`
	var in dto.StockQuantsRequest
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	counts := in.ToStockCounts()
	require.Len(t, counts, 1)
	assert.Equal(t, "A-1", counts[0].LotToken)
	assert.Equal(t, "CAJA-7", counts[0].Package)
	assert.Equal(t, "O1", counts[0].OwnerID)
	assert.True(t, counts[0].Counted.Equal(decimal.NewFromInt(4)))
	require.NotNil(t, counts[0].CountDate)
	assert.Equal(t, 2026, counts[0].CountDate.Year())
}

func TestFromResult_OmiteCamposVacios(t *testing.T) {
	raw, err := json.Marshal(dto.FromResult(reconcile.Result{Code: reconcile.CodePickingNotExists, Message: "no existe", TransferID: "T1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":false,"code":"picking_not_exists","message":"no existe","picking_id":"T1"}`, string(raw))

	counted := dto.FromStockCountResult(reconcile.Result{OK: true, Code: reconcile.CodeSuccess})
	require.NotNil(t, counted.Applied)
	assert.Equal(t, 0, *counted.Applied)
}

func TestFromPackageResult(t *testing.T) {
	res := reconcile.PackageResult{
		Result:  reconcile.Result{OK: true, Code: reconcile.CodeSuccess, TransferID: "T1"},
		Package: &entity.Package{ID: "PK", Name: "PACK0000001", Weight: decimal.NewFromInt(5)},
	}
	out := dto.FromPackageResult(res)
	assert.True(t, out.Status)
	require.NotNil(t, out.Package)
	assert.Equal(t, "PACK0000001", out.Package.Name)

	assert.Nil(t, dto.FromPackageResult(reconcile.PackageResult{}).Package)
}
