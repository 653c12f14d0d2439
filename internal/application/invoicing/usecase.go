package invoicing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// UseCase casos de uso de facturas: listado, consulta, alta, update parcial y
// baja lógica. Las reglas de negocio (rangos, campos obligatorios, merge)
// viven aquí; el handler solo traduce el formato de cable.
type UseCase struct {
	invoices repository.InvoiceRepository
	tx       TxRunner
	pdf      InvoicePDFGenerator
}

// NewUseCase construye el caso de uso con sus dependencias inyectadas.
func NewUseCase(invoices repository.InvoiceRepository, tx TxRunner, pdf InvoicePDFGenerator) *UseCase {
	return &UseCase{invoices: invoices, tx: tx, pdf: pdf}
}

// GetInvoice devuelve una factura activa. ErrNotFound si no existe o está dada de baja.
func (uc *UseCase) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lista facturas activas con filtro, orden y paginación opcionales.
func (uc *UseCase) ListInvoices(ctx context.Context, q dto.ListInvoicesQuery) ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoices.List(ctx, repository.InvoiceListParams{
		Page:        q.Page,
		Limit:       q.Limit,
		FilterBy:    q.FilterBy,
		FilterValue: q.FilterValue,
		OrderBy:     q.OrderBy,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// CreateInvoice valida y persiste una factura nueva. Devuelve la factura creada.
func (uc *UseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Month == nil || in.Year == nil || in.Document == nil || *in.Document == "" {
		return nil, fmt.Errorf(`%w: "month", "year" y "document" son obligatorios`, domain.ErrInvalidInput)
	}
	if err := validateRanges(*in.Month, *in.Year); err != nil {
		return nil, err
	}
	amount := decimal.Zero
	if in.Amount != nil {
		amount = *in.Amount
	}
	inv := &entity.Invoice{
		ReferenceMonth: *in.Month,
		ReferenceYear:  *in.Year,
		Document:       *in.Document,
		Description:    in.Description,
		Amount:         amount,
	}
	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// UpdateInvoice aplica un update parcial: lee la fila actual, mezcla los campos
// presentes del patch y escribe — todo dentro de una transacción para que dos
// PUTs concurrentes sobre la misma factura no pierdan cambios.
func (uc *UseCase) UpdateInvoice(ctx context.Context, id int64, patch dto.UpdateInvoiceRequest) error {
	if !patch.HasFields() {
		return fmt.Errorf("%w: el JSON debe traer al menos un campo a actualizar", domain.ErrInvalidInput)
	}
	return uc.tx.Run(ctx, func(invoices repository.InvoiceRepository) error {
		inv, err := invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if patch.Month != nil {
			inv.ReferenceMonth = *patch.Month
		}
		if patch.Year != nil {
			inv.ReferenceYear = *patch.Year
		}
		if patch.Document != nil {
			inv.Document = *patch.Document
		}
		if patch.Description != nil {
			inv.Description = *patch.Description
		}
		if patch.Amount != nil {
			inv.Amount = *patch.Amount
		}
		if err := validateRanges(inv.ReferenceMonth, inv.ReferenceYear); err != nil {
			return err
		}
		return invoices.Update(ctx, inv)
	})
}

// DeleteInvoice da de baja lógica una factura. ErrNotFound si no hay fila activa.
func (uc *UseCase) DeleteInvoice(ctx context.Context, id int64) error {
	deleted, err := uc.invoices.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// RenderPDF genera el PDF de una factura activa.
func (uc *UseCase) RenderPDF(ctx context.Context, id int64) ([]byte, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateInvoicePDF(ctx, inv)
}

func validateRanges(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf(`%w: "month" debe estar entre 1 y 12`, domain.ErrInvalidInput)
	}
	if year < 1900 {
		return fmt.Errorf(`%w: "year" debe ser mayor o igual a 1900`, domain.ErrInvalidInput)
	}
	return nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:          inv.ID,
		Month:       inv.ReferenceMonth,
		Year:        inv.ReferenceYear,
		Document:    inv.Document,
		Description: inv.Description,
		Amount:      inv.Amount,
		CreatedAt:   inv.CreatedAt,
	}
}
