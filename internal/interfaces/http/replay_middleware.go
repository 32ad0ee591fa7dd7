package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// Cabeceras del reintento idempotente.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// Replay devuelve la respuesta guardada cuando la app reenvía un POST con la misma
// Idempotency-Key. Sin cabecera la solicitud pasa tal cual. Va después de AuthMiddleware:
// la clave se acota por empresa y usuario.
//
// Si el almacén falla la solicitud se ejecuta igual y se registra el error.
func Replay(store ports.ResponseStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("replay")
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if raw == "" || c.Method() != fiber.MethodPost {
			return c.Next()
		}
		key := strings.Join([]string{GetCompanyID(c), GetUserID(c), c.Path(), raw}, ":")
		ctx := c.Context()

		saved, pending, err := store.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("no se pudo leer la respuesta guardada")
			return c.Next()
		}
		if saved != nil {
			c.Set(HeaderReplayed, "true")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Status(saved.Status).Send(saved.Body)
		}
		if pending {
			return inProgress(c)
		}

		reserved, err := store.Reserve(ctx, key, ttl)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("no se pudo reservar la clave")
			return c.Next()
		}
		if !reserved {
			return inProgress(c)
		}

		if err := c.Next(); err != nil {
			if relErr := store.Release(ctx, key); relErr != nil {
				log.Warn().Err(relErr).Msg("no se pudo liberar la clave")
			}
			return err
		}
		resp := ports.StoredResponse{
			Status: c.Response().StatusCode(),
			Body:   append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Save(ctx, key, resp, ttl); err != nil {
			log.Warn().Err(err).Str("path", c.Path()).Msg("no se pudo guardar la respuesta")
		}
		return nil
	}
}

func inProgress(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
		Code:    "REQUEST_IN_PROGRESS",
		Message: "la solicitud con esta Idempotency-Key sigue en proceso",
	})
}
