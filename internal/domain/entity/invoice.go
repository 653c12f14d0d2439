package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa una factura con baja lógica (soft delete):
// nunca se borra físicamente, solo se marca IsActive = false.
type Invoice struct {
	ID             int64
	ReferenceMonth int             // 1-12
	ReferenceYear  int             // >= 1900
	Document       string          // identificador del documento (ej. número tributario)
	Description    string          // opcional, default ""
	Amount         decimal.Decimal // opcional, default 0
	IsActive       bool
	CreatedAt      time.Time
	DeactivatedAt  *time.Time // nil mientras la factura esté activa
}
