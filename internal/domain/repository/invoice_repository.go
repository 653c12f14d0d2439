package repository

import (
	"context"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// InvoiceListParams parámetros del listado: filtro, orden y paginación componen
// de forma independiente (cualquier combinación es válida).
//
// FilterBy y OrderBy usan nombres lógicos de campo (month, year, document);
// cualquier nombre fuera de la allow-list se descarta en silencio, nunca llega
// al texto SQL. Page <= 0 significa sin paginación.
type InvoiceListParams struct {
	Page        int
	Limit       int
	FilterBy    string
	FilterValue string
	OrderBy     []string
}

// InvoiceRepository define el puerto de persistencia para Invoice.
// Las lecturas solo ven filas activas; GetByID devuelve (nil, nil) cuando no
// hay fila activa con ese id (ausencia no es error).
type InvoiceRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	List(ctx context.Context, params InvoiceListParams) ([]*entity.Invoice, error)
	// Create persiste la factura, estampa created_at e is_active=true y asigna el ID generado.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update escribe los cinco campos de negocio (month, year, document, description, amount).
	Update(ctx context.Context, invoice *entity.Invoice) error
	// SoftDelete marca is_active=false y estampa deactivated_at.
	// Devuelve false si no había fila activa con ese id.
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
