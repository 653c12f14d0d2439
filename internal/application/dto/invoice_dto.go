package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest entrada para crear factura. Month, Year y Document son
// obligatorios (punteros para distinguir ausente de cero); description y
// amount son opcionales con default "" y 0.
type CreateInvoiceRequest struct {
	Month       *int             `json:"month" validate:"required,min=1,max=12"`
	Year        *int             `json:"year" validate:"required,min=1900"`
	Document    *string          `json:"document" validate:"required"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// UpdateInvoiceRequest entrada del update parcial: todo es opcional, los campos
// ausentes conservan el valor almacenado. Al menos uno debe venir presente.
type UpdateInvoiceRequest struct {
	Month       *int             `json:"month"`
	Year        *int             `json:"year"`
	Document    *string          `json:"document"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// HasFields indica si el patch trae al menos un campo reconocido.
func (r UpdateInvoiceRequest) HasFields() bool {
	return r.Month != nil || r.Year != nil || r.Document != nil ||
		r.Description != nil || r.Amount != nil
}

// ListInvoicesQuery parámetros de listado ya parseados del query string.
// OrderBy llega como nombres lógicos (month, year, document); los desconocidos
// se descartan en la capa de datos, no se rechazan.
type ListInvoicesQuery struct {
	Page        int
	Limit       int
	FilterBy    string
	FilterValue string
	OrderBy     []string
}

// InvoiceResponse salida de una factura (solo filas activas llegan aquí).
type InvoiceResponse struct {
	ID          int64           `json:"id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Document    string          `json:"document"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}
