package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarningDTO aviso no fatal emitido por una operación (clave sin fila de
// origen, stock fijado en cero, etc.).
type WarningDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
