package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/reconcile"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

// ApplyMatchedTransfer mueve las cantidades conciliadas de una fecha del
// inventario de la compañía de origen al de destino, todo o nada.
//
// Las partidas de ambas direcciones viven bajo la compañía de origen (la
// inspección del receptor se registra contra quien despachó). Si no hay
// cantidades conciliadas la operación termina sin abrir transacción.
// La operación no es idempotente: reaplicarla vuelve a mover lo mismo.
func (uc *UseCase) ApplyMatchedTransfer(ctx context.Context, sourceCompanyID, destCompanyID string, date time.Time) (out *dto.TransferResultDTO, err error) {
	defer uc.observe("apply_matched_transfer", time.Now(), &err)

	if sourceCompanyID == destCompanyID {
		return nil, fmt.Errorf("%w: origen y destino son la misma compañía", domain.ErrInvalidInput)
	}
	if err = uc.ensureCompany(ctx, sourceCompanyID); err != nil {
		return nil, err
	}
	if err = uc.ensureCompany(ctx, destCompanyID); err != nil {
		return nil, err
	}

	// Lecturas previas con los repos del pool; solo las mutaciones
	// necesitan la transacción.
	outgoing, err := uc.specRepo.ListByDate(ctx, sourceCompanyID, date, entity.DirectionOutgoing)
	if err != nil {
		return nil, fmt.Errorf("listar salidas: %w", err)
	}
	inspected, err := uc.specRepo.ListByDate(ctx, sourceCompanyID, date, entity.DirectionInspected)
	if err != nil {
		return nil, fmt.Errorf("listar inspecciones: %w", err)
	}

	result := &dto.TransferResultDTO{
		SourceCompanyID: sourceCompanyID,
		DestCompanyID:   destCompanyID,
		Date:            date.Format(dateLayout),
		MovedQty:        decimal.Zero,
	}

	matched := reconcile.MatchedQuantities(outgoing, inspected)
	if len(matched) == 0 {
		uc.log.Info().
			Str("source_company_id", sourceCompanyID).
			Str("dest_company_id", destCompanyID).
			Str("date", result.Date).
			Msg("traslado sin cantidades conciliadas")
		return result, nil
	}

	var plan *reconcile.TransferPlan
	err = uc.txRunner.Run(ctx, func(
		_ repository.SpecItemRepository,
		invRepo repository.InventoryRepository,
		_ repository.DiscrepancyRepository,
	) error {
		source, err := invRepo.SnapshotForUpdate(ctx, sourceCompanyID, date)
		if err != nil {
			return fmt.Errorf("bloquear inventario de origen: %w", err)
		}
		dest, err := invRepo.SnapshotForUpdate(ctx, destCompanyID, date)
		if err != nil {
			return fmt.Errorf("bloquear inventario de destino: %w", err)
		}

		plan = reconcile.PlanTransfer(matched, source, dest, destCompanyID, date, date)

		updates := append(plan.SourceUpdates, plan.DestUpdates...)
		if len(updates) > 0 {
			if _, err := invRepo.BulkUpdate(ctx, updates); err != nil {
				return fmt.Errorf("actualizar inventario: %w", err)
			}
		}
		if len(plan.DestInserts) > 0 {
			if _, err := invRepo.BulkInsert(ctx, plan.DestInserts); err != nil {
				return fmt.Errorf("crear filas de destino: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.MovedKeys = plan.Summary.MovedKeys
	result.MovedQty = plan.Summary.MovedQty
	result.SourceUpdated = plan.Summary.SourceUpdated
	result.DestUpdated = plan.Summary.DestUpdated
	result.DestCreated = plan.Summary.DestCreated
	result.Warnings = uc.transferWarnings(sourceCompanyID, plan)

	uc.log.Info().
		Str("source_company_id", sourceCompanyID).
		Str("dest_company_id", destCompanyID).
		Str("date", result.Date).
		Int("moved_keys", result.MovedKeys).
		Str("moved_qty", result.MovedQty.String()).
		Msg("traslado conciliado aplicado")
	return result, nil
}

// transferWarnings traduce faltantes y clamps del plan en avisos para la
// respuesta, dejando rastro en el log.
func (uc *UseCase) transferWarnings(sourceCompanyID string, plan *reconcile.TransferPlan) []dto.WarningDTO {
	warnings := make([]dto.WarningDTO, 0, len(plan.MissingSource)+len(plan.Clamps))
	for _, k := range plan.MissingSource {
		uc.log.Warn().
			Str("company_id", sourceCompanyID).
			Str("product_num", k.ProductNum).
			Str("lot_number", k.Lot).
			Msg("clave conciliada sin fila de inventario en origen")
		warnings = append(warnings, dto.WarningDTO{
			Code:    "MISSING_SOURCE_ROW",
			Message: fmt.Sprintf("sin fila de origen para producto %s lote %s", k.ProductNum, k.Lot),
		})
	}
	for _, c := range plan.Clamps {
		uc.log.Warn().
			Str("company_id", sourceCompanyID).
			Str("product_num", c.Key.ProductNum).
			Str("lot_number", c.Key.Lot).
			Str("before", c.Before.String()).
			Str("wanted", c.Wanted.String()).
			Msg("stock de origen fijado en cero")
		warnings = append(warnings, dto.WarningDTO{
			Code:    "STOCK_CLAMPED",
			Message: fmt.Sprintf("producto %s lote %s: stock %s insuficiente para mover %s", c.Key.ProductNum, c.Key.Lot, c.Before, c.Wanted),
		})
	}
	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
