package reconcile_test

import (
	"context"
	"testing"

	"github.com/jhoicas/wms-api/internal/application/reconcile"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Validación de una transferencia
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcileAndCommitTransfer_LineaNuevaDesdePlanificada(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
		require.NoError(t, s.Moves().Create(ctx, move("M1", "T1", productID, 5, stockLoc, packLoc)))
	})

	res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, reconcile.TransferRequest{
		TransferID: "T1",
		Lines:      []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(5)}},
	})

	require.True(t, res.OK, res.Message)
	assert.Equal(t, "T1", res.TransferID)
	assert.Equal(t, reconcile.CodeSuccess, res.Code)

	lines := e.lines(t, "T1")
	require.Len(t, lines, 1)
	assert.True(t, qty(5).Equal(lines[0].Quantity))
	assert.Equal(t, stockLoc, lines[0].LocationID)
	assert.Equal(t, packLoc, lines[0].LocationDestID, "las ubicaciones vienen de la línea planificada")
	require.NotNil(t, lines[0].MoveID)
	assert.Equal(t, "M1", *lines[0].MoveID)
	assert.Equal(t, "U1", lines[0].CreatedBy)

	assert.Equal(t, entity.TransferStateDone, e.transfer(t, "T1").State)

	audits := e.audits(t, "T1")
	require.Len(t, audits, 1)
	assert.True(t, audits[0].Created)
	assert.Contains(t, audits[0].Changes, "Producto: [SKU-1] Tornillo")
	assert.Contains(t, audits[0].Changes, "Hacia: WH/Empaque")
}

func TestReconcileAndCommitTransfer_LineaSinCambios(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
		require.NoError(t, s.MoveLines().Create(ctx, line("L1", "T1", productID, 5)))
	})

	res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, reconcile.TransferRequest{
		TransferID: "T1",
		Lines:      []reconcile.ReportLine{{ID: "L1", QuantityDone: qty(5)}},
	})

	require.True(t, res.OK, res.Message)
	assert.Empty(t, e.audits(t, "T1"), "sin diferencias no hay auditoría")
	lines := e.lines(t, "T1")
	require.Len(t, lines, 1)
	assert.True(t, qty(5).Equal(lines[0].Quantity))
	assert.Nil(t, lines[0].LotID)
	assert.Equal(t, entity.TransferStateDone, e.transfer(t, "T1").State)
}

func TestReconcileAndCommitTransfer_YaValidada(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		tr := outgoing("T1")
		tr.State = entity.TransferStateDone
		require.NoError(t, s.Transfers().Create(ctx, tr))
		require.NoError(t, s.MoveLines().Create(ctx, line("L1", "T1", productID, 5)))
	})
	req := reconcile.TransferRequest{
		TransferID: "T1",
		Lines: []reconcile.ReportLine{
			{ProductID: productID, QuantityDone: qty(3)},
			{ID: "L1", QuantityDone: qty(1)},
		},
	}

	for i := 0; i < 2; i++ {
		res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, req)
		assert.False(t, res.OK)
		assert.Equal(t, reconcile.CodeAlreadyValidated, res.Code)
		assert.Equal(t, "T1", res.TransferID)
	}

	lines := e.lines(t, "T1")
	require.Len(t, lines, 1, "no se crean líneas")
	assert.True(t, qty(5).Equal(lines[0].Quantity), "no se modifican líneas")
	assert.Empty(t, e.audits(t, "T1"))
	assert.Equal(t, entity.TransferStateDone, e.transfer(t, "T1").State)
}

func TestReconcileAndCommitTransfer_ErroresDeEntradaYEstado(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		cancelled := outgoing("T-CANCEL")
		cancelled.State = entity.TransferStateCancel
		require.NoError(t, s.Transfers().Create(ctx, cancelled))
		other := outgoing("T-OTRA")
		other.CompanyID = "C2"
		require.NoError(t, s.Transfers().Create(ctx, other))
	})
	oneLine := []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(1)}}

	tests := []struct {
		name string
		req  reconcile.TransferRequest
		code string
	}{
		{"sin transferencia", reconcile.TransferRequest{Lines: oneLine}, reconcile.CodePostDataError},
		{"sin líneas", reconcile.TransferRequest{TransferID: "T-CANCEL"}, reconcile.CodePostDataError},
		{"inexistente", reconcile.TransferRequest{TransferID: "NO-EXISTE", Lines: oneLine}, reconcile.CodePickingNotExists},
		{"cancelada", reconcile.TransferRequest{TransferID: "T-CANCEL", Lines: oneLine}, reconcile.CodePickingCancelled},
		{"de otra empresa", reconcile.TransferRequest{TransferID: "T-OTRA", Lines: oneLine}, reconcile.CodePickingNotExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, tt.req)
			assert.False(t, res.OK)
			assert.Equal(t, tt.code, res.Code)
			assert.NotEmpty(t, res.Message)
		})
	}
	assert.Empty(t, e.lines(t, "T-CANCEL"))
	assert.Empty(t, e.lines(t, "T-OTRA"))
}

func TestReconcileAndCommitTransfer_ErrorDeResolucionRevierte(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
	})

	res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, reconcile.TransferRequest{
		TransferID: "T1",
		Lines: []reconcile.ReportLine{
			{ProductID: productID, QuantityDone: qty(2)},
			{ProductID: "P-FANTASMA", QuantityDone: qty(1)},
		},
	})

	assert.False(t, res.OK)
	assert.Equal(t, reconcile.CodeUnknownError, res.Code)
	assert.Equal(t, "P-FANTASMA", res.ProductID)
	assert.Empty(t, e.lines(t, "T1"), "la primera línea también se revierte")
	assert.Empty(t, e.audits(t, "T1"))
	assert.Equal(t, entity.TransferStateAssigned, e.transfer(t, "T1").State)
}

func TestReconcileAndCommitTransfer_LineaAjena(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T2")))
		require.NoError(t, s.MoveLines().Create(ctx, line("L-T2", "T2", productID, 1)))
	})

	res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, reconcile.TransferRequest{
		TransferID: "T1",
		Lines:      []reconcile.ReportLine{{ID: "L-T2", QuantityDone: qty(4)}},
	})

	assert.Equal(t, reconcile.CodeUnknownError, res.Code)
	assert.True(t, qty(1).Equal(e.lines(t, "T2")[0].Quantity))
}

func TestReconcileAndCommitTransfer_ErrorDeValidacionRevierte(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
	})

	// Cantidad cero: la reconciliación crea la línea pero la validación la rechaza.
	res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, reconcile.TransferRequest{
		TransferID: "T1",
		Lines:      []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(0)}},
	})

	assert.False(t, res.OK)
	assert.Equal(t, reconcile.CodeBadRequest, res.Code)
	assert.Contains(t, res.Message, "no hay cantidades")
	assert.Empty(t, e.lines(t, "T1"))
	assert.Equal(t, entity.TransferStateAssigned, e.transfer(t, "T1").State)
}

func TestReconcileAndCommitTransfer_PoliticaDeBackorder(t *testing.T) {
	tests := []struct {
		name      string
		policy    string
		requested *bool
		want      int
	}{
		{"política por defecto crea", entity.BackorderAlways, nil, 1},
		{"política nunca", entity.BackorderNever, nil, 0},
		{"la solicitud anula la política", entity.BackorderAlways, ptr(false), 0},
		{"la solicitud fuerza backorder", entity.BackorderNever, ptr(true), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.seed(t, func(ctx context.Context, s repository.Store) {
				tr := outgoing("T1")
				tr.BackorderPolicy = tt.policy
				require.NoError(t, s.Transfers().Create(ctx, tr))
				require.NoError(t, s.Moves().Create(ctx, move("M1", "T1", productID, 10, stockLoc, customerLoc)))
			})

			res := e.svc.ReconcileAndCommitTransfer(context.Background(), actor, reconcile.TransferRequest{
				TransferID:      "T1",
				Lines:           []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(4)}},
				CreateBackorder: tt.requested,
			})
			require.True(t, res.OK, res.Message)

			e.seed(t, func(ctx context.Context, s repository.Store) {
				backorders, _ := s.Transfers().ListBackorders(ctx, "T1")
				assert.Len(t, backorders, tt.want)
			})
		})
	}
}

func TestReconcileAndCommitBatch_ResultadoPorSolicitud(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		done := outgoing("T-DONE")
		done.State = entity.TransferStateDone
		require.NoError(t, s.Transfers().Create(ctx, done))
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T-OK")))
	})
	oneLine := []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(1)}}

	results := e.svc.ReconcileAndCommitBatch(context.Background(), actor, []reconcile.TransferRequest{
		{TransferID: "T-DONE", Lines: oneLine},
		{TransferID: "T-OK", Lines: []reconcile.ReportLine{{ProductID: "P-FANTASMA", QuantityDone: qty(1)}}},
		{TransferID: "T-OK", Lines: oneLine},
	})

	require.Len(t, results, 3)
	assert.Equal(t, reconcile.CodeAlreadyValidated, results[0].Code)
	assert.Equal(t, reconcile.CodeUnknownError, results[1].Code, "un fallo no detiene el resto")
	assert.True(t, results[2].OK)
	assert.Equal(t, "T-OK", results[2].TransferID)
}

func TestSyncLines_NoValida(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T2")))
	})

	results := e.svc.SyncLines(context.Background(), actor, []reconcile.TransferRequest{
		{TransferID: "T1", Lines: []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(2)}}},
		{TransferID: "T2"},
		{TransferID: "NO-EXISTE", Lines: []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(2)}}},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.Contains(t, results[0].Message, "WH/OUT/T1")
	assert.Equal(t, reconcile.CodePostDataError, results[1].Code)
	assert.Equal(t, reconcile.CodePickingNotExists, results[2].Code)

	assert.Len(t, e.lines(t, "T1"), 1)
	assert.Equal(t, entity.TransferStateAssigned, e.transfer(t, "T1").State, "la sincronización no valida")
}

func TestTransferChanges(t *testing.T) {
	e := newEnv(t)
	e.seed(t, func(ctx context.Context, s repository.Store) {
		require.NoError(t, s.Transfers().Create(ctx, outgoing("T1")))
	})
	e.svc.SyncLines(context.Background(), actor, []reconcile.TransferRequest{
		{TransferID: "T1", Lines: []reconcile.ReportLine{{ProductID: productID, QuantityDone: qty(2)}}},
	})

	entries, err := e.svc.TransferChanges(context.Background(), actor, "T1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Created)

	_, err = e.svc.TransferChanges(context.Background(), reconcile.Actor{CompanyID: "C2"}, "T1")
	assert.Error(t, err)
}
