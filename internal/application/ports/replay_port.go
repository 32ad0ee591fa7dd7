package ports

import (
	"context"
	"time"
)

// StoredResponse es la respuesta HTTP guardada para una Idempotency-Key.
type StoredResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// ResponseStore guarda la primera respuesta de cada envío para que los reintentos del
// cliente móvil la reciban sin volver a ejecutar la reconciliación.
// Siguiendo DIP, la capa HTTP solo conoce este contrato (Redis en producción).
type ResponseStore interface {
	// Reserve marca la clave como en curso. false si ya estaba reservada o guardada.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Save reemplaza la reserva por la respuesta final.
	Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	// Get devuelve la respuesta guardada; pending=true si la clave sigue en curso.
	Get(ctx context.Context, key string) (resp *StoredResponse, pending bool, err error)
	// Release borra una reserva que no llegó a guardarse (p. ej. error de transporte).
	Release(ctx context.Context, key string) error
}
