package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain/reconcile"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

// RebuildFromDiscrepancies reaplica los registros de discrepancia de una
// fecha sobre el inventario (ruta legada de corrección manual). A
// diferencia del resto de operaciones, un fallo de persistencia no se
// propaga como error: se devuelve un resultado con Success=false para
// que el cliente legado reciba siempre un cuerpo estructurado.
func (uc *UseCase) RebuildFromDiscrepancies(ctx context.Context, companyID string, date time.Time) (out *dto.RebuildResultDTO, err error) {
	defer uc.observe("rebuild_from_discrepancies", time.Now(), &err)

	if err = uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	records, err := uc.discRepo.ListByDate(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("listar discrepancias: %w", err)
	}
	snapshot, err := uc.invRepo.SnapshotByCompanyDate(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("cargar inventario: %w", err)
	}

	plan := reconcile.PlanRebuild(records, snapshot)

	result := &dto.RebuildResultDTO{
		Success:     true,
		AppliedRows: len(plan.Updates),
		SkippedRows: plan.Skipped + len(plan.Missing),
	}
	for _, k := range plan.Missing {
		result.Warnings = append(result.Warnings, dto.WarningDTO{
			Code:    "MISSING_INVENTORY_ROW",
			Message: fmt.Sprintf("sin fila de inventario para producto %s lote %s", k.ProductNum, k.Lot),
		})
	}
	for _, c := range plan.Clamps {
		result.Warnings = append(result.Warnings, dto.WarningDTO{
			Code:    "STOCK_CLAMPED",
			Message: fmt.Sprintf("producto %s lote %s: stock fijado en cero", c.Key.ProductNum, c.Key.Lot),
		})
	}

	if len(plan.Updates) > 0 {
		txErr := uc.txRunner.Run(ctx, func(
			_ repository.SpecItemRepository,
			invRepo repository.InventoryRepository,
			_ repository.DiscrepancyRepository,
		) error {
			_, err := invRepo.BulkUpdate(ctx, plan.Updates)
			return err
		})
		if txErr != nil {
			uc.log.Error().Err(txErr).
				Str("company_id", companyID).
				Str("date", date.Format(dateLayout)).
				Msg("reconstrucción por discrepancias falló al persistir")
			return &dto.RebuildResultDTO{Success: false, Error: txErr.Error()}, nil
		}
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("date", date.Format(dateLayout)).
		Int("applied", result.AppliedRows).
		Int("skipped", result.SkippedRows).
		Msg("inventario reconstruido desde discrepancias")
	return result, nil
}
