package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// GetByID obtiene una factura activa por ID. Devuelve (nil, nil) si no existe
// o si está dada de baja (las filas inactivas no se exponen en ninguna lectura).
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceSelectColumns + `
		FROM invoice
		WHERE is_active = TRUE AND id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List ejecuta el statement armado por buildInvoiceListQuery.
func (r *InvoiceRepo) List(ctx context.Context, params repository.InvoiceListParams) ([]*entity.Invoice, error) {
	query, args := buildInvoiceListQuery(params)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Create persiste la factura: estampa created_at, fuerza is_active=true y
// asigna el id generado por la base.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoice.IsActive = true
	invoice.CreatedAt = time.Now()
	query := `
		INSERT INTO invoice (reference_month, reference_year, document, description, amount, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		invoice.ReferenceMonth, invoice.ReferenceYear, invoice.Document,
		invoice.Description, invoice.Amount, invoice.IsActive, invoice.CreatedAt,
	).Scan(&invoice.ID)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update escribe los cinco campos de negocio. La resolución de campos "sin
// cambio" (leer, mezclar, escribir) es responsabilidad del caso de uso.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoice
		SET reference_month = $2,
		    reference_year  = $3,
		    document        = $4,
		    description     = $5,
		    amount          = $6
		WHERE is_active = TRUE AND id = $1`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.ReferenceMonth, invoice.ReferenceYear,
		invoice.Document, invoice.Description, invoice.Amount,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// SoftDelete marca la fila como inactiva y estampa deactivated_at; la fila
// queda en la tabla. Devuelve false si no había fila activa con ese id.
func (r *InvoiceRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE invoice
		SET is_active = FALSE, deactivated_at = $2
		WHERE is_active = TRUE AND id = $1`
	tag, err := r.q.Exec(ctx, query, id, time.Now())
	if err != nil {
		return false, fmt.Errorf("soft delete invoice: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.ReferenceMonth, &inv.ReferenceYear, &inv.Document,
		&inv.Description, &inv.Amount, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.IsActive = true // solo se leen filas activas
	return &inv, nil
}
