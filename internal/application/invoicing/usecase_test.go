package invoicing_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/application/invoicing"
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: repo en memoria que respeta la semántica de baja lógica
// (las filas inactivas existen pero ninguna lectura las devuelve) y un runner
// que ejecuta el callback directo sobre el mismo repo.
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	rows   map[int64]*entity.Invoice
	nextID int64
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{rows: make(map[int64]*entity.Invoice), nextID: 1}
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id int64) (*entity.Invoice, error) {
	inv, ok := f.rows[id]
	if !ok || !inv.IsActive {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) List(_ context.Context, p repository.InvoiceListParams) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for _, inv := range f.rows {
		if !inv.IsActive {
			continue
		}
		if !matchesFilter(inv, p.FilterBy, p.FilterValue) {
			continue
		}
		cp := *inv
		list = append(list, &cp)
	}
	sortInvoices(list, p.OrderBy)
	if p.Page >= 1 {
		limit := p.Limit
		if limit <= 0 {
			limit = 10
		}
		offset := limit * (p.Page - 1)
		if offset >= len(list) {
			return nil, nil
		}
		list = list[offset:]
		if len(list) > limit {
			list = list[:limit]
		}
	}
	return list, nil
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	inv.ID = f.nextID
	f.nextID++
	inv.IsActive = true
	inv.CreatedAt = time.Now().Add(time.Duration(inv.ID) * time.Millisecond)
	cp := *inv
	f.rows[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	stored, ok := f.rows[inv.ID]
	if !ok || !stored.IsActive {
		return nil
	}
	stored.ReferenceMonth = inv.ReferenceMonth
	stored.ReferenceYear = inv.ReferenceYear
	stored.Document = inv.Document
	stored.Description = inv.Description
	stored.Amount = inv.Amount
	return nil
}

func (f *fakeInvoiceRepo) SoftDelete(_ context.Context, id int64) (bool, error) {
	inv, ok := f.rows[id]
	if !ok || !inv.IsActive {
		return false, nil
	}
	now := time.Now()
	inv.IsActive = false
	inv.DeactivatedAt = &now
	return true, nil
}

func matchesFilter(inv *entity.Invoice, field, value string) bool {
	if value == "" {
		return true
	}
	switch field {
	case "month":
		return strconv.Itoa(inv.ReferenceMonth) == value
	case "year":
		return strconv.Itoa(inv.ReferenceYear) == value
	case "document":
		return inv.Document == value
	default:
		// campo fuera de la allow-list = sin filtro
		return true
	}
}

func sortInvoices(list []*entity.Invoice, orderBy []string) {
	var fields []string
	for _, f := range orderBy {
		switch f {
		case "month", "year", "document":
			fields = append(fields, f)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		for _, f := range fields {
			switch f {
			case "month":
				if a.ReferenceMonth != b.ReferenceMonth {
					return a.ReferenceMonth < b.ReferenceMonth
				}
			case "year":
				if a.ReferenceYear != b.ReferenceYear {
					return a.ReferenceYear < b.ReferenceYear
				}
			case "document":
				if a.Document != b.Document {
					return a.Document < b.Document
				}
			}
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

type fakeTxRunner struct {
	repo repository.InvoiceRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	return fn(f.repo)
}

type stubPDF struct{}

func (stubPDF) GenerateInvoicePDF(context.Context, *entity.Invoice) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func newTestUseCase() (*invoicing.UseCase, *fakeInvoiceRepo) {
	repo := newFakeInvoiceRepo()
	return invoicing.NewUseCase(repo, &fakeTxRunner{repo: repo}, stubPDF{}), repo
}

func intPtr(n int) *int          { return &n }
func strPtr(s string) *string    { return &s }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func mustCreate(t *testing.T, uc *invoicing.UseCase, month, year int, document string) *dto.InvoiceResponse {
	t.Helper()
	out, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Month: intPtr(month), Year: intPtr(year), Document: strPtr(document),
	})
	require.NoError(t, err)
	return out
}

// ── Get ───────────────────────────────────────────────────────────────────────

func TestGetInvoice_NotFoundSiNoExiste(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.GetInvoice(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound, "id inexistente es ausencia, no error de storage")
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreateInvoice_DefaultsYLectura(t *testing.T) {
	uc, _ := newTestUseCase()

	created, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Month: intPtr(5), Year: intPtr(2023), Document: strPtr("D1"),
	})
	require.NoError(t, err)

	got, err := uc.GetInvoice(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Month)
	assert.Equal(t, 2023, got.Year)
	assert.Equal(t, "D1", got.Document)
	assert.Equal(t, "", got.Description, "description omitida queda en cadena vacía")
	assert.True(t, got.Amount.IsZero(), "amount omitido queda en 0")
}

func TestCreateInvoice_CamposObligatorios(t *testing.T) {
	uc, _ := newTestUseCase()

	cases := []dto.CreateInvoiceRequest{
		{Year: intPtr(2023), Document: strPtr("D1")},
		{Month: intPtr(5), Document: strPtr("D1")},
		{Month: intPtr(5), Year: intPtr(2023)},
		{Month: intPtr(5), Year: intPtr(2023), Document: strPtr("")},
	}
	for _, in := range cases {
		_, err := uc.CreateInvoice(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreateInvoice_RangosInvalidos(t *testing.T) {
	uc, _ := newTestUseCase()

	for _, c := range []struct{ month, year int }{
		{0, 2023}, {13, 2023}, {5, 1899},
	} {
		_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
			Month: intPtr(c.month), Year: intPtr(c.year), Document: strPtr("D1"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestUpdateInvoice_SoloAmountNoTocaElResto(t *testing.T) {
	uc, _ := newTestUseCase()
	created := mustCreate(t, uc, 5, 2023, "D1")

	err := uc.UpdateInvoice(context.Background(), created.ID, dto.UpdateInvoiceRequest{
		Amount: decPtr("99.9"),
	})
	require.NoError(t, err)

	got, err := uc.GetInvoice(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Month)
	assert.Equal(t, 2023, got.Year)
	assert.Equal(t, "D1", got.Document)
	assert.Equal(t, "", got.Description)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("99.9")))
}

func TestUpdateInvoice_SinCamposEsInvalido(t *testing.T) {
	uc, _ := newTestUseCase()
	created := mustCreate(t, uc, 5, 2023, "D1")

	err := uc.UpdateInvoice(context.Background(), created.ID, dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateInvoice_NotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	err := uc.UpdateInvoice(context.Background(), 404, dto.UpdateInvoiceRequest{Amount: decPtr("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateInvoice_MergeNoPermiteRangoInvalido(t *testing.T) {
	uc, _ := newTestUseCase()
	created := mustCreate(t, uc, 5, 2023, "D1")

	err := uc.UpdateInvoice(context.Background(), created.ID, dto.UpdateInvoiceRequest{Month: intPtr(13)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetInvoice(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Month, "el update rechazado no debe dejar rastro")
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDeleteInvoice_BajaLogica(t *testing.T) {
	uc, repo := newTestUseCase()
	created := mustCreate(t, uc, 5, 2023, "D1")

	require.NoError(t, uc.DeleteInvoice(context.Background(), created.ID))

	_, err := uc.GetInvoice(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la fila dada de baja desaparece del contrato público")

	// Verificación interna: la fila sigue existiendo, marcada inactiva y con timestamp de baja.
	row := repo.rows[created.ID]
	require.NotNil(t, row, "la baja es lógica, la fila no se borra")
	assert.False(t, row.IsActive)
	require.NotNil(t, row.DeactivatedAt)
}

func TestDeleteInvoice_NotFoundYNoReactivable(t *testing.T) {
	uc, _ := newTestUseCase()
	created := mustCreate(t, uc, 5, 2023, "D1")

	require.NoError(t, uc.DeleteInvoice(context.Background(), created.ID))

	// Segunda baja sobre la misma fila: ya no hay fila activa.
	err := uc.DeleteInvoice(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Un update tampoco la revive.
	err = uc.UpdateInvoice(context.Background(), created.ID, dto.UpdateInvoiceRequest{Amount: decPtr("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── List ──────────────────────────────────────────────────────────────────────

func TestListInvoices_PaginasDisjuntas(t *testing.T) {
	uc, _ := newTestUseCase()
	for i := 0; i < 25; i++ {
		mustCreate(t, uc, 1+i%12, 2020+i%3, string(rune('A'+i%26)))
	}

	page1, err := uc.ListInvoices(context.Background(), dto.ListInvoicesQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	page2, err := uc.ListInvoices(context.Background(), dto.ListInvoicesQuery{Page: 2, Limit: 10})
	require.NoError(t, err)

	require.Len(t, page1, 10)
	require.Len(t, page2, 10)
	seen := make(map[int64]bool)
	for _, inv := range page1 {
		seen[inv.ID] = true
	}
	for _, inv := range page2 {
		assert.False(t, seen[inv.ID], "page 2 no debe repetir filas de page 1")
	}
}

func TestListInvoices_OrdenPorDocument(t *testing.T) {
	uc, _ := newTestUseCase()
	for _, doc := range []string{"C", "A", "B"} {
		mustCreate(t, uc, 1, 2023, doc)
	}

	list, err := uc.ListInvoices(context.Background(), dto.ListInvoicesQuery{OrderBy: []string{"document"}})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Document, list[i].Document)
	}
}

func TestListInvoices_OrdenDesconocidoCaeACreacion(t *testing.T) {
	uc, _ := newTestUseCase()
	mustCreate(t, uc, 1, 2023, "Z")
	mustCreate(t, uc, 1, 2023, "A")

	list, err := uc.ListInvoices(context.Background(), dto.ListInvoicesQuery{OrderBy: []string{"nope"}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Z", list[0].Document, "con orden desconocido manda el orden de creación")
}

func TestListInvoices_SinPaginaDevuelveTodo(t *testing.T) {
	uc, _ := newTestUseCase()
	for i := 0; i < 15; i++ {
		mustCreate(t, uc, 1, 2023, "D")
	}

	list, err := uc.ListInvoices(context.Background(), dto.ListInvoicesQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 15, "page ausente = sin paginación")
}

// ── PDF ───────────────────────────────────────────────────────────────────────

func TestRenderPDF(t *testing.T) {
	uc, _ := newTestUseCase()
	created := mustCreate(t, uc, 5, 2023, "D1")

	pdf, err := uc.RenderPDF(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = uc.RenderPDF(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
