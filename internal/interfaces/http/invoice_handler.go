package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/application/invoicing"
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/pkg/logger"
)

// InvoiceHandler traduce entre el formato de cable y el caso de uso de
// facturas; no contiene reglas de negocio más allá del parseo de entrada.
type InvoiceHandler struct {
	uc  *invoicing.UseCase
	log *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *invoicing.UseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar facturas activas
// @Tags         invoices
// @Produce      json
// @Param        page          query  int     false  "1-indexada; ausente o <= 0 = sin paginación"
// @Param        limit         query  int     false  "tamaño de página (default 10)"
// @Param        filter_by     query  string  false  "month | year | document"
// @Param        filter_value  query  string  false  "valor exacto del filtro"
// @Param        order_by      query  string  false  "campos separados por coma (month,year,document)"
// @Success      200  {object}  dto.ResultResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	q := dto.ListInvoicesQuery{
		Page:        c.QueryInt("page", 0),
		Limit:       c.QueryInt("limit", 10),
		FilterBy:    c.Query("filter_by"),
		FilterValue: c.Query("filter_value"),
	}
	if raw := c.Query("order_by"); raw != "" {
		// Los tokens desconocidos se descartan aguas abajo (allow-list), no se rechazan.
		q.OrderBy = strings.Split(raw, ",")
	}
	list, err := h.uc.ListInvoices(c.Context(), q)
	if err != nil {
		return h.fail(c, err, "listar facturas")
	}
	return c.JSON(dto.ResultResponse{Result: list})
}

// GetByID godoc
// @Summary      Obtener una factura por id
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.ResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	inv, err := h.uc.GetInvoice(c.Context(), id)
	if err != nil {
		return h.fail(c, err, "obtener factura")
	}
	return c.JSON(dto.ResultResponse{Result: inv})
}

// Create godoc
// @Summary      Crear factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "month, year, document obligatorios"
// @Success      201  {object}  object
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /new_invoice [post]
// @Security     BearerAuth
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Msg: `"month" y "year" deben ser enteros y "amount" decimal`})
	}
	if _, err := h.uc.CreateInvoice(c.Context(), in); err != nil {
		return h.fail(c, err, "crear factura")
	}
	return c.Status(fiber.StatusCreated).JSON(struct{}{})
}

// Update godoc
// @Summary      Actualizar factura (parcial)
// @Tags         invoices
// @Accept       json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /update_invoice/{id} [put]
// @Security     BearerAuth
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	var patch dto.UpdateInvoiceRequest
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Msg: "cuerpo inválido"})
	}
	if err := h.uc.UpdateInvoice(c.Context(), id, patch); err != nil {
		return h.fail(c, err, "actualizar factura")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Dar de baja una factura (soft delete)
// @Tags         invoices
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /delete_invoice/{id} [delete]
// @Security     BearerAuth
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.uc.DeleteInvoice(c.Context(), id); err != nil {
		return h.fail(c, err, "dar de baja factura")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar la representación PDF de una factura
// @Tags         invoices
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	pdfBytes, err := h.uc.RenderPDF(c.Context(), id)
	if err != nil {
		return h.fail(c, err, "generar PDF")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// fail mapea errores de dominio a status codes. Los fallos de storage se
// registran con detalle completo pero el cable solo lleva un mensaje grueso.
func (h *InvoiceHandler) fail(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Msg: err.Error()})
	default:
		h.log.Error().Err(err).Str("op", op).Msg("fallo de storage")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Msg: "error interno"})
	}
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Msg: "factura no encontrada"})
}

// parseID lee el segmento :id. Un id no numérico se trata igual que uno
// inexistente (404), nunca llega a la capa de datos.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
