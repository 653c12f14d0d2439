package invoicing

import (
	"context"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repo atado a ella.
// El update parcial lo usa para que leer-mezclar-escribir sea atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error
}

// InvoicePDFGenerator genera la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
