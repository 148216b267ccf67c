package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/application/reconcile"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/pkg/dates"
)

// ReconcileHandler maneja las peticiones HTTP de conciliación (protegido).
type ReconcileHandler struct {
	uc *reconcile.UseCase
}

// NewReconcileHandler construye el handler.
func NewReconcileHandler(uc *reconcile.UseCase) *ReconcileHandler {
	return &ReconcileHandler{uc: uc}
}

// ComputeDiscrepancies godoc
// @Summary      Recalcular el reporte de discrepancias de una fecha
// @Tags         reconcile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComputeDiscrepanciesRequest  true  "company_id, date"
// @Success      200   {object}  dto.DiscrepancyReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reconcile/discrepancies [post]
func (h *ReconcileHandler) ComputeDiscrepancies(c *fiber.Ctx) error {
	var in dto.ComputeDiscrepanciesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, ok := parseDate(c, in.Date)
	if !ok {
		return nil
	}
	out, err := h.uc.ComputeDiscrepancies(c.Context(), in.CompanyID, date)
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(out)
}

// ListDiscrepancies godoc
// @Summary      Reporte de discrepancias persistido de una fecha
// @Tags         reconcile
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  true  "UUID de la compañía"
// @Param        date        query  string  true  "YYYY-MM-DD, YYYY/MM/DD o YYYYMMDD"
// @Success      200  {array}   dto.DiscrepancyDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reconcile/discrepancies [get]
func (h *ReconcileHandler) ListDiscrepancies(c *fiber.Ctx) error {
	companyID := c.Query("company_id")
	if companyID == "" {
		companyID = GetCompanyID(c)
	}
	date, ok := parseDate(c, c.Query("date"))
	if !ok {
		return nil
	}
	out, err := h.uc.ListDiscrepancies(c.Context(), companyID, date)
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "discrepancies": out})
}

// ApplyTransfer godoc
// @Summary      Aplicar el traslado de cantidades conciliadas
// @Tags         reconcile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "source_company_id, dest_company_id, date"
// @Success      200   {object}  dto.TransferResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reconcile/transfer [post]
func (h *ReconcileHandler) ApplyTransfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, ok := parseDate(c, in.Date)
	if !ok {
		return nil
	}
	out, err := h.uc.ApplyMatchedTransfer(c.Context(), in.SourceCompanyID, in.DestCompanyID, date)
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(out)
}

// Rebuild godoc
// @Summary      Reconstruir inventario desde discrepancias (ruta legada)
// @Tags         reconcile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RebuildRequest  true  "company_id, date"
// @Success      200   {object}  dto.RebuildResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reconcile/rebuild [post]
func (h *ReconcileHandler) Rebuild(c *fiber.Ctx) error {
	var in dto.RebuildRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, ok := parseDate(c, in.Date)
	if !ok {
		return nil
	}
	out, err := h.uc.RebuildFromDiscrepancies(c.Context(), in.CompanyID, date)
	if err != nil {
		return reconcileError(c, err)
	}
	// Un fallo de persistencia viaja dentro del cuerpo (Success=false).
	return c.JSON(out)
}

// parseDate normaliza la fecha del request; en error escribe la
// respuesta 400 y devuelve ok=false.
func parseDate(c *fiber.Ctx, raw string) (time.Time, bool) {
	date, err := dates.Normalize(raw)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha inválida; use YYYY-MM-DD, YYYY/MM/DD o YYYYMMDD"})
		return time.Time{}, false
	}
	return date, true
}

func reconcileError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrCompanyNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compañía no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
