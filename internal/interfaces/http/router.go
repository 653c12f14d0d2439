package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturas-api/internal/application/auth"
	"github.com/jhoicas/facturas-api/internal/application/invoicing"
	"github.com/jhoicas/facturas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC *invoicing.UseCase
	AuthUC    *auth.UseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
// Política de auth: las rutas mutadoras van detrás del Bearer token; las
// lecturas y los endpoints de auth son públicos.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.Log)
	app.Get("/invoices", invoiceHandler.List)
	app.Get("/invoices/:id", invoiceHandler.GetByID)
	app.Get("/invoices/:id/pdf", invoiceHandler.PDF)

	requireAuth := AuthMiddleware(deps.JWTSecret)
	app.Post("/new_invoice", requireAuth, invoiceHandler.Create)
	app.Put("/update_invoice/:id", requireAuth, invoiceHandler.Update)
	app.Delete("/delete_invoice/:id", requireAuth, invoiceHandler.Delete)
}
