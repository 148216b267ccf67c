package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/application/scan"
	"github.com/tu-usuario/medtrack-api/internal/domain"
)

// ScanHandler maneja la ingesta de lecturas EPC y el registro de lotes (protegido).
type ScanHandler struct {
	uc *scan.UseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(uc *scan.UseCase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// BulkIngest godoc
// @Summary      Ingerir un lote de lecturas EPC
// @Description  Deduplica, decodifica y acumula las lecturas en las
//
//	partidas de la fecha. Una ingesta INSPECTED con
//	target_company_id dispara la conciliación completa.
//
// @Tags         scans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkScanRequest  true  "company_id, date, direction, epcs"
// @Success      200   {object}  dto.BulkScanResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/scans/bulk [post]
func (h *ScanHandler) BulkIngest(c *fiber.Ctx) error {
	var in dto.BulkScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CompanyID == "" {
		in.CompanyID = GetCompanyID(c)
	}
	date, ok := parseDate(c, in.Date)
	if !ok {
		return nil
	}
	out, err := h.uc.IngestScans(c.Context(), in, date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compañía no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RegisterLot godoc
// @Summary      Registrar el alias de un número de lote
// @Tags         scans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterLotRequest  true  "lot_number"
// @Success      201   {object}  dto.RegisterLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *ScanHandler) RegisterLot(c *fiber.Ctx) error {
	var in dto.RegisterLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterLot(c.Context(), in.LotNumber)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lot_number es obligatorio"})
		}
		if errors.Is(err, domain.ErrHashExhausted) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HASH_EXHAUSTED", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
