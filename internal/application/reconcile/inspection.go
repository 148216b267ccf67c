package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/application/dto"
)

// RunInspection orquesta la conciliación completa del día: arrastra los
// inventarios de origen y destino a la fecha, recalcula el reporte de
// discrepancias y aplica el traslado conciliado. Cada paso persiste en
// su propia transacción; un fallo corta la secuencia y deja los pasos
// anteriores aplicados.
func (uc *UseCase) RunInspection(ctx context.Context, sourceCompanyID, destCompanyID string, date time.Time) (out *dto.InspectionResultDTO, err error) {
	defer uc.observe("run_inspection", time.Now(), &err)

	result := &dto.InspectionResultDTO{}

	if result.SourceCarryOver, err = uc.CarryOverInventory(ctx, sourceCompanyID, date); err != nil {
		return nil, fmt.Errorf("arrastre en origen: %w", err)
	}
	if result.DestCarryOver, err = uc.CarryOverInventory(ctx, destCompanyID, date); err != nil {
		return nil, fmt.Errorf("arrastre en destino: %w", err)
	}
	if result.Report, err = uc.ComputeDiscrepancies(ctx, sourceCompanyID, date); err != nil {
		return nil, fmt.Errorf("reporte de discrepancias: %w", err)
	}
	if result.Transfer, err = uc.ApplyMatchedTransfer(ctx, sourceCompanyID, destCompanyID, date); err != nil {
		return nil, fmt.Errorf("traslado conciliado: %w", err)
	}
	return result, nil
}
