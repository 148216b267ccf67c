package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/medtrack-api/internal/application/auth"
	"github.com/tu-usuario/medtrack-api/internal/application/company"
	"github.com/tu-usuario/medtrack-api/internal/application/reconcile"
	"github.com/tu-usuario/medtrack-api/internal/application/scan"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *company.CompanyUseCase
	ReconcileUC *reconcile.UseCase
	ScanUC      *scan.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: el alta es parte del onboarding)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lecturas EPC y lotes (protegido)
	scanHandler := NewScanHandler(deps.ScanUC)
	protected.Post("/scans/bulk", scanHandler.BulkIngest)
	protected.Post("/lots", scanHandler.RegisterLot)

	// Conciliación (protegido)
	rec := protected.Group("/reconcile")
	reconcileHandler := NewReconcileHandler(deps.ReconcileUC)
	rec.Post("/discrepancies", reconcileHandler.ComputeDiscrepancies)
	rec.Get("/discrepancies", reconcileHandler.ListDiscrepancies)
	rec.Post("/transfer", reconcileHandler.ApplyTransfer)
	rec.Post("/rebuild", reconcileHandler.Rebuild)
}
