package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/wms-api/internal/application/reconcile"
)

// statusFor traduce el código del resultado a estado HTTP. Con enabled=false la app móvil
// recibe siempre 200 y decide por status/code del cuerpo.
func statusFor(code string, enabled bool) int {
	if !enabled {
		return fiber.StatusOK
	}
	switch code {
	case reconcile.CodeSuccess:
		return fiber.StatusOK
	case reconcile.CodePostDataError, reconcile.CodeMoveLinesEmpty, reconcile.CodeInvalidMoveLine,
		reconcile.CodeStockQuantData, reconcile.CodeBadRequest:
		return fiber.StatusBadRequest
	case reconcile.CodePickingNotExists, reconcile.CodeBatchNotExists, reconcile.CodeMoveLineNotFound:
		return fiber.StatusNotFound
	case reconcile.CodeAlreadyValidated, reconcile.CodePickingCancelled, reconcile.CodeBatchCancelled,
		reconcile.CodePickingNotInBatch:
		return fiber.StatusConflict
	default:
		// unknown_error, fail, package_not_created
		return fiber.StatusUnprocessableEntity
	}
}
