package routes

import (
	"github.com/gofiber/fiber/v2"

	"grafttrack-backend/controllers"
	"grafttrack-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Graft product catalog
	protected.Post("/product", controllers.CreateProducts) // batch create
	protected.Get("/products", controllers.GetProducts)
	protected.Get("/products/price", controllers.LookupPrice)
	protected.Put("/products/:id", controllers.UpdateProduct)

	// Patients
	protected.Post("/patient", controllers.CreatePatient)
	protected.Get("/patients", controllers.GetPatients)
	protected.Get("/patient/:id", controllers.GetPatient)
	protected.Put("/patient/:id", controllers.UpdatePatient)

	// Representatives
	protected.Post("/representative", controllers.CreateRepresentative)
	protected.Get("/representatives", controllers.GetRepresentatives)
	protected.Put("/representative/:id", controllers.UpdateRepresentative)

	// Treatments (invoice generated alongside)
	protected.Post("/treatment", controllers.CreateTreatment)
	protected.Get("/treatments", controllers.GetTreatments)
	protected.Get("/treatment/:id", controllers.GetTreatment)
	protected.Put("/treatments/:id", controllers.UpdateTreatment)

	// Invoices (lifecycle + commission assignments)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoices/:id/assignments", controllers.UpdateAssignments)
	protected.Put("/invoices/:id/status", controllers.UpdateInvoiceStatus)
	protected.Get("/invoices/:id/history", controllers.GetInvoiceHistory)

	// Commission reporting
	protected.Get("/commissions/periods", controllers.GetCommissionPeriods)
	protected.Get("/commissions/export", controllers.ExportCommissions)
}
