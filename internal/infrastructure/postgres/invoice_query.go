package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// invoiceListColumns allow-list de campos lógicos admitidos para filtrar y
// ordenar el listado. Todo nombre de campo que llegue del cliente pasa por
// este mapa: lo que no esté aquí se descarta, nunca se concatena al SQL.
var invoiceListColumns = map[string]string{
	"month":    "reference_month",
	"year":     "reference_year",
	"document": "document",
}

const invoiceSelectColumns = `id, reference_month, reference_year, document, description, amount, created_at`

// defaultListLimit tamaño de página cuando el cliente pagina sin indicar limit.
const defaultListLimit = 10

// buildInvoiceListQuery arma el SELECT del listado componiendo filtro, orden y
// paginación en un solo statement. Es una función pura (sin DB) para que cada
// combinación de los tres ejes sea verificable de forma aislada.
//
// Reglas:
//   - Solo filas con is_active = TRUE.
//   - FilterBy fuera de la allow-list (o FilterValue vacío) = sin filtro.
//     El valor del filtro siempre viaja como parámetro enlazado, jamás
//     interpolado en el texto.
//   - OrderBy se reduce a las columnas de la allow-list; si queda vacío, el
//     orden por defecto es el de creación (created_at, con id como desempate).
//   - Page >= 1 pagina con LIMIT/OFFSET enlazados; Page <= 0 devuelve todo.
func buildInvoiceListQuery(p repository.InvoiceListParams) (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT ` + invoiceSelectColumns + `
		FROM invoice
		WHERE is_active = TRUE`)

	if col, ok := invoiceListColumns[p.FilterBy]; ok && p.FilterValue != "" {
		switch col {
		case "reference_month", "reference_year":
			// Columna numérica: un valor no numérico no puede coincidir con
			// ninguna fila, pero tampoco debe romper el statement.
			if n, err := strconv.Atoi(p.FilterValue); err == nil {
				args = append(args, n)
				fmt.Fprintf(&sb, " AND %s = $%d", col, len(args))
			} else {
				sb.WriteString(" AND FALSE")
			}
		default:
			args = append(args, p.FilterValue)
			fmt.Fprintf(&sb, " AND %s = $%d", col, len(args))
		}
	}

	var orderCols []string
	for _, field := range p.OrderBy {
		if col, ok := invoiceListColumns[field]; ok {
			orderCols = append(orderCols, col+" ASC")
		}
	}
	if len(orderCols) == 0 {
		orderCols = []string{"created_at ASC", "id ASC"}
	}
	sb.WriteString(" ORDER BY " + strings.Join(orderCols, ", "))

	if p.Page >= 1 {
		limit := p.Limit
		if limit <= 0 {
			limit = defaultListLimit
		}
		args = append(args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
		args = append(args, limit*(p.Page-1))
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	return sb.String(), args
}
