package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Reglas de validación de transferencias.
	ErrNothingToValidate = errors.New("no hay cantidades registradas para validar la transferencia")
	ErrMissingLot        = errors.New("se requiere lote/serie para el producto")
	ErrSerialQuantity    = errors.New("un número de serie solo puede moverse con cantidad 1")
)
