package dto

import "github.com/shopspring/decimal"

func init() {
	// Montos como números JSON, no como cadenas.
	decimal.MarshalJSONWithoutQuotes = true
}

// SearchLimit máximo de filas que devuelve cualquier /search.
const SearchLimit = 50

// ErrorResponse cuerpo de error HTTP. Error solo lleva el detalle técnico de un 500 fuera de producción.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse respuesta de operaciones sin cuerpo propio (ej. borrado).
type MessageResponse struct {
	Message string `json:"message"`
}
