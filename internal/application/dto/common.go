package dto

// ErrorResponse cuerpo de error HTTP (autenticación, cuerpo inválido, reintentos).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
