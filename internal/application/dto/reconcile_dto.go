package dto

import "github.com/shopspring/decimal"

// ── Discrepancias ─────────────────────────────────────────────────────────────

// ComputeDiscrepanciesRequest body para POST /api/reconcile/discrepancies.
type ComputeDiscrepanciesRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"` // YYYY-MM-DD, YYYY/MM/DD o YYYYMMDD
}

// DiscrepancyDTO un registro de discrepancia en respuestas.
type DiscrepancyDTO struct {
	ProductNum     string          `json:"product_num"`
	MedicationName string          `json:"medication_name,omitempty"`
	ExpiryDate     string          `json:"expiry_date,omitempty"`
	LotNumber      string          `json:"lot_number,omitempty"`
	Reason         string          `json:"reason"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// DiscrepancyReportDTO salida del cálculo de discrepancias de una fecha.
type DiscrepancyReportDTO struct {
	CompanyID      string           `json:"company_id"`
	Date           string           `json:"date"`
	OutgoingItems  int              `json:"outgoing_items"`
	InspectedItems int              `json:"inspected_items"`
	MatchedKeys    int              `json:"matched_keys"`
	MismatchedKeys int              `json:"mismatched_keys"`
	ByReason       map[string]int   `json:"by_reason"`
	Discrepancies  []DiscrepancyDTO `json:"discrepancies"`
}

// ── Traslado conciliado ───────────────────────────────────────────────────────

// TransferRequest body para POST /api/reconcile/transfer.
type TransferRequest struct {
	SourceCompanyID string `json:"source_company_id" validate:"required,uuid"`
	DestCompanyID   string `json:"dest_company_id" validate:"required,uuid"`
	Date            string `json:"date" validate:"required"`
}

// TransferResultDTO salida del traslado de cantidades conciliadas.
type TransferResultDTO struct {
	SourceCompanyID string          `json:"source_company_id"`
	DestCompanyID   string          `json:"dest_company_id"`
	Date            string          `json:"date"`
	MovedKeys       int             `json:"moved_keys"`
	MovedQty        decimal.Decimal `json:"moved_qty"`
	SourceUpdated   int             `json:"source_updated"`
	DestUpdated     int             `json:"dest_updated"`
	DestCreated     int             `json:"dest_created"`
	Warnings        []WarningDTO    `json:"warnings,omitempty"`
}

// ── Reconstrucción legada ─────────────────────────────────────────────────────

// RebuildRequest body para POST /api/reconcile/rebuild.
type RebuildRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"`
}

// RebuildResultDTO salida de la reconstrucción por discrepancias.
// Success=false con Error poblado indica fallo de persistencia; el
// handler igual responde 200 con este cuerpo.
type RebuildResultDTO struct {
	Success     bool         `json:"success"`
	Error       string       `json:"error,omitempty"`
	AppliedRows int          `json:"applied_rows"`
	SkippedRows int          `json:"skipped_rows"`
	Warnings    []WarningDTO `json:"warnings,omitempty"`
}

// ── Arrastre e inspección ─────────────────────────────────────────────────────

// CarryOverResultDTO salida del arrastre del snapshot previo. Las filas
// que ya existían en la fecha destino se dejan intactas y cuentan como
// omitidas.
type CarryOverResultDTO struct {
	CompanyID   string `json:"company_id"`
	Date        string `json:"date"`
	FromDate    string `json:"from_date,omitempty"` // vacía si no había snapshot previo
	RowsCreated int    `json:"rows_created"`
	RowsSkipped int    `json:"rows_skipped"`
}

// InspectionResultDTO salida de la orquestación completa de inspección:
// arrastre de ambos inventarios, reporte de discrepancias y traslado
// conciliado.
type InspectionResultDTO struct {
	SourceCarryOver *CarryOverResultDTO   `json:"source_carry_over,omitempty"`
	DestCarryOver   *CarryOverResultDTO   `json:"dest_carry_over,omitempty"`
	Report          *DiscrepancyReportDTO `json:"report"`
	Transfer        *TransferResultDTO    `json:"transfer"`
}
