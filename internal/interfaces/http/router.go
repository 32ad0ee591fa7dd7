package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/pkg/jwt"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Picking         PickingService
	Replay          ports.ResponseStore // nil = sin reintentos idempotentes
	ReplayTTL       time.Duration
	HTTPStatusCodes bool
	JWTSecret       string
	JWTIssuer       string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor, jwt.RoleOperator),
	)

	// Los envíos que validan o ajustan aceptan Idempotency-Key
	replay := func(c *fiber.Ctx) error { return c.Next() }
	if deps.Replay != nil {
		replay = Replay(deps.Replay, deps.ReplayTTL, deps.Log)
	}

	h := NewPickingHandler(deps.Picking, deps.HTTPStatusCodes)

	pickings := api.Group("/pickings")
	pickings.Post("/validate", replay, h.Validate)
	pickings.Post("/validate/batch", replay, h.ValidateMany)
	pickings.Post("/put-in-pack", replay, h.PutInPack)
	pickings.Get("/:id/changes", h.Changes)

	batches := api.Group("/batches")
	batches.Post("/validate", replay, h.ValidateBatch)
	batches.Post("/validate/sync", replay, h.SyncBatches)

	api.Post("/move-lines/sync", h.SyncMoveLines)
	api.Post("/stock-quants", replay, h.StockQuants)
}
