package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

// CarryOverInventory copia el snapshot de inventario más reciente
// anterior a la fecha pedida hacia esa fecha, sin tocar las filas que ya
// existen con cantidades propias (inserción condicionada por clave
// natural). Si no hay snapshot previo la operación es un no-op.
func (uc *UseCase) CarryOverInventory(ctx context.Context, companyID string, date time.Time) (out *dto.CarryOverResultDTO, err error) {
	defer uc.observe("carry_over_inventory", time.Now(), &err)

	if err = uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	result := &dto.CarryOverResultDTO{
		CompanyID: companyID,
		Date:      date.Format(dateLayout),
	}

	prev, err := uc.invRepo.LatestDateBefore(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("buscar snapshot previo: %w", err)
	}
	if prev == nil {
		uc.log.Info().
			Str("company_id", companyID).
			Str("date", result.Date).
			Msg("sin snapshot previo que arrastrar")
		return result, nil
	}
	result.FromDate = prev.Format(dateLayout)

	err = uc.txRunner.Run(ctx, func(
		_ repository.SpecItemRepository,
		invRepo repository.InventoryRepository,
		_ repository.DiscrepancyRepository,
	) error {
		rows, err := invRepo.ListByCompanyDate(ctx, companyID, *prev)
		if err != nil {
			return fmt.Errorf("leer snapshot previo: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		carried := make([]*entity.InventoryRow, 0, len(rows))
		for _, r := range rows {
			carried = append(carried, &entity.InventoryRow{
				CompanyID:      r.CompanyID,
				Date:           date,
				ProductNum:     r.ProductNum,
				MedicationName: r.MedicationName,
				Expiry:         r.Expiry,
				Lot:            r.Lot,
				StockQuantity:  r.StockQuantity,
			})
		}

		created, err := invRepo.BulkInsertMissing(ctx, carried)
		if err != nil {
			return fmt.Errorf("arrastrar inventario: %w", err)
		}
		result.RowsCreated = created
		result.RowsSkipped = len(carried) - created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("date", result.Date).
		Str("from_date", result.FromDate).
		Int("created", result.RowsCreated).
		Int("skipped", result.RowsSkipped).
		Msg("inventario arrastrado")
	return result, nil
}
