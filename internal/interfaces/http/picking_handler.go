package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/reconcile"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// PickingService operaciones de reconciliación que expone la API (lo implementa *reconcile.Service).
type PickingService interface {
	ReconcileAndCommitTransfer(ctx context.Context, actor reconcile.Actor, req reconcile.TransferRequest) reconcile.Result
	ReconcileAndCommitBatch(ctx context.Context, actor reconcile.Actor, reqs []reconcile.TransferRequest) []reconcile.Result
	ReconcileAndCommitBatchGroup(ctx context.Context, actor reconcile.Actor, req reconcile.BatchRequest) reconcile.Result
	SyncBatchGroups(ctx context.Context, actor reconcile.Actor, reqs []reconcile.BatchRequest) []reconcile.Result
	SyncLines(ctx context.Context, actor reconcile.Actor, reqs []reconcile.TransferRequest) []reconcile.Result
	UpsertStockCounts(ctx context.Context, actor reconcile.Actor, counts []reconcile.StockCount) reconcile.Result
	PutLinesIntoPackage(ctx context.Context, actor reconcile.Actor, req reconcile.PackRequest) reconcile.PackageResult
	TransferChanges(ctx context.Context, actor reconcile.Actor, transferID string) ([]*entity.AuditEntry, error)
}

var _ PickingService = (*reconcile.Service)(nil)

// PickingHandler maneja las peticiones de la app móvil de bodega (protegido).
type PickingHandler struct {
	svc         PickingService
	statusCodes bool
}

// NewPickingHandler construye el handler. statusCodes=false responde siempre 200 con el
// resultado en el cuerpo; true traduce los códigos de falla a 4xx.
func NewPickingHandler(svc PickingService, statusCodes bool) *PickingHandler {
	return &PickingHandler{svc: svc, statusCodes: statusCodes}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func (h *PickingHandler) respond(c *fiber.Ctx, code string, body interface{}) error {
	return c.Status(statusFor(code, h.statusCodes)).JSON(body)
}

func (h *PickingHandler) emptyList(c *fiber.Ctx) error {
	r := reconcile.Result{Code: reconcile.CodePostDataError, Message: "la solicitud no trae elementos en data"}
	return h.respond(c, r.Code, dto.FromResult(r))
}

// Validate godoc
// @Summary      Reconciliar y validar una transferencia
// @Description  Aplica las líneas reportadas por el operario sobre la transferencia y la valida.
// @Tags         pickings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                      false  "clave para reintentos"
// @Param        body             body    dto.PickingValidateRequest  true   "picking_id, move_line_ids, create_backorder"
// @Success      200  {object}  dto.ResultResponse
// @Failure      400  {object}  dto.ResultResponse
// @Failure      404  {object}  dto.ResultResponse
// @Failure      409  {object}  dto.ResultResponse
// @Router       /api/pickings/validate [post]
func (h *PickingHandler) Validate(c *fiber.Ctx) error {
	var in dto.PickingValidateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r := h.svc.ReconcileAndCommitTransfer(c.Context(), ActorFrom(c), in.ToTransferRequest())
	return h.respond(c, r.Code, dto.FromResult(r))
}

// ValidateMany godoc
// @Summary      Validar varias transferencias independientes
// @Description  Cada elemento corre en su propia transacción; un resultado por elemento, en orden.
// @Tags         pickings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PickingValidateBatchRequest  true  "data: [{picking_id, move_line_ids, create_backorder}]"
// @Success      200  {object}  dto.ResultListResponse
// @Router       /api/pickings/validate/batch [post]
func (h *PickingHandler) ValidateMany(c *fiber.Ctx) error {
	var in dto.PickingValidateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.Data) == 0 {
		return h.emptyList(c)
	}
	results := h.svc.ReconcileAndCommitBatch(c.Context(), ActorFrom(c), in.ToTransferRequests())
	return c.JSON(dto.FromResults(results))
}

// ValidateBatch godoc
// @Summary      Reconciliar y validar un lote de transferencias
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                    false  "clave para reintentos"
// @Param        body             body    dto.BatchValidateRequest  true   "batch_id, move_line_ids (con picking_id), create_backorder"
// @Success      200  {object}  dto.ResultResponse
// @Failure      400  {object}  dto.ResultResponse
// @Failure      404  {object}  dto.ResultResponse
// @Failure      409  {object}  dto.ResultResponse
// @Router       /api/batches/validate [post]
func (h *PickingHandler) ValidateBatch(c *fiber.Ctx) error {
	var in dto.BatchValidateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r := h.svc.ReconcileAndCommitBatchGroup(c.Context(), ActorFrom(c), in.ToBatchRequest())
	return h.respond(c, r.Code, dto.FromResult(r))
}

// SyncBatches godoc
// @Summary      Sincronizar validaciones de lotes pendientes
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchValidateSyncRequest  true  "data: [{batch_id, move_line_ids, create_backorder}]"
// @Success      200  {object}  dto.ResultListResponse
// @Router       /api/batches/validate/sync [post]
func (h *PickingHandler) SyncBatches(c *fiber.Ctx) error {
	var in dto.BatchValidateSyncRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.Data) == 0 {
		return h.emptyList(c)
	}
	results := h.svc.SyncBatchGroups(c.Context(), ActorFrom(c), in.ToBatchRequests())
	return c.JSON(dto.FromResults(results))
}

// SyncMoveLines godoc
// @Summary      Sincronizar líneas sin validar
// @Description  Reconcilia las líneas de una o varias transferencias sin validarlas.
// @Tags         pickings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PickingValidateBatchRequest  true  "data: [{picking_id, move_line_ids}]"
// @Success      200  {object}  dto.ResultListResponse
// @Router       /api/move-lines/sync [post]
func (h *PickingHandler) SyncMoveLines(c *fiber.Ctx) error {
	var in dto.PickingValidateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.Data) == 0 {
		return h.emptyList(c)
	}
	results := h.svc.SyncLines(c.Context(), ActorFrom(c), in.ToTransferRequests())
	return c.JSON(dto.FromResults(results))
}

// StockQuants godoc
// @Summary      Registrar conteos físicos y ajustar existencias
// @Description  Aplica los conteos en orden y se detiene en el primero que falla; applied indica cuántos quedaron aplicados.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "clave para reintentos"
// @Param        body             body    dto.StockQuantsRequest  true   "stock_quant: [{location_id, product_id, lot, package, owner_id, inventory_quantity, inventory_date}]"
// @Success      200  {object}  dto.ResultResponse
// @Failure      400  {object}  dto.ResultResponse
// @Router       /api/stock-quants [post]
func (h *PickingHandler) StockQuants(c *fiber.Ctx) error {
	var in dto.StockQuantsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r := h.svc.UpsertStockCounts(c.Context(), ActorFrom(c), in.ToStockCounts())
	return h.respond(c, r.Code, dto.FromStockCountResult(r))
}

// PutInPack godoc
// @Summary      Empacar líneas de una transferencia
// @Tags         pickings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PutInPackRequest  true  "picking_id, move_line_ids: [{id | product_id, quantity_done}]"
// @Success      200  {object}  dto.PutInPackResponse
// @Failure      400  {object}  dto.PutInPackResponse
// @Failure      404  {object}  dto.PutInPackResponse
// @Router       /api/pickings/put-in-pack [post]
func (h *PickingHandler) PutInPack(c *fiber.Ctx) error {
	var in dto.PutInPackRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r := h.svc.PutLinesIntoPackage(c.Context(), ActorFrom(c), in.ToPackRequest())
	return h.respond(c, r.Code, dto.FromPackageResult(r))
}

// Changes godoc
// @Summary      Historial de cambios hechos desde la app
// @Tags         pickings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.ChangesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pickings/{id}/changes [get]
func (h *PickingHandler) Changes(c *fiber.Ctx) error {
	entries, err := h.svc.TransferChanges(c.Context(), ActorFrom(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transferencia no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromAuditEntries(entries))
}
