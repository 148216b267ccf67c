// Package reconcile contiene los casos de uso de conciliación: reporte
// de discrepancias, traslado conciliado, reconstrucción legada, arrastre
// de inventario y la orquestación de inspección completa.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/reconcile"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase agrupa las operaciones de conciliación. Las lecturas previas a
// una transacción usan los repos atados al pool; las mutaciones pasan
// siempre por el TxRunner.
type UseCase struct {
	txRunner    TxRunner
	specRepo    repository.SpecItemRepository
	invRepo     repository.InventoryRepository
	discRepo    repository.DiscrepancyRepository
	companyRepo repository.CompanyRepository
	observer    Observer
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	specRepo repository.SpecItemRepository,
	invRepo repository.InventoryRepository,
	discRepo repository.DiscrepancyRepository,
	companyRepo repository.CompanyRepository,
	observer Observer,
	log zerolog.Logger,
) *UseCase {
	if observer == nil {
		observer = NopObserver{}
	}
	return &UseCase{
		txRunner:    txRunner,
		specRepo:    specRepo,
		invRepo:     invRepo,
		discRepo:    discRepo,
		companyRepo: companyRepo,
		observer:    observer,
		log:         log,
	}
}

// ComputeDiscrepancies recalcula el reporte de discrepancias de una
// compañía y fecha: borra los registros previos de esa fecha e inserta
// los nuevos en la misma transacción, de modo que el reporte persistido
// siempre refleja una corrida completa.
func (uc *UseCase) ComputeDiscrepancies(ctx context.Context, companyID string, date time.Time) (out *dto.DiscrepancyReportDTO, err error) {
	defer uc.observe("compute_discrepancies", time.Now(), &err)

	if err = uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	var rep *reconcile.Report
	err = uc.txRunner.Run(ctx, func(
		specRepo repository.SpecItemRepository,
		invRepo repository.InventoryRepository,
		discRepo repository.DiscrepancyRepository,
	) error {
		outgoing, err := specRepo.ListByDate(ctx, companyID, date, entity.DirectionOutgoing)
		if err != nil {
			return fmt.Errorf("listar salidas: %w", err)
		}
		inspected, err := specRepo.ListByDate(ctx, companyID, date, entity.DirectionInspected)
		if err != nil {
			return fmt.Errorf("listar inspecciones: %w", err)
		}

		rep = reconcile.Classify(companyID, date, outgoing, inspected)

		if _, err := discRepo.DeleteByDate(ctx, companyID, date); err != nil {
			return fmt.Errorf("borrar reporte previo: %w", err)
		}
		if len(rep.Records) > 0 {
			if _, err := discRepo.BulkInsert(ctx, rep.Records); err != nil {
				return fmt.Errorf("insertar discrepancias: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("date", date.Format(dateLayout)).
		Int("matched", rep.MatchedKeys).
		Int("mismatched", rep.MismatchedKeys).
		Msg("reporte de discrepancias recalculado")

	return reportToDTO(companyID, date, rep), nil
}

// ListDiscrepancies devuelve el reporte persistido de una fecha sin
// recalcular nada.
func (uc *UseCase) ListDiscrepancies(ctx context.Context, companyID string, date time.Time) ([]dto.DiscrepancyDTO, error) {
	if err := uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	records, err := uc.discRepo.ListByDate(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("listar discrepancias: %w", err)
	}
	out := make([]dto.DiscrepancyDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, discrepancyToDTO(rec))
	}
	return out, nil
}

func (uc *UseCase) ensureCompany(ctx context.Context, companyID string) error {
	if companyID == "" {
		return domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// observe registra duración y resultado de una operación; pensado para
// usarse con defer pasando time.Now() como inicio.
func (uc *UseCase) observe(name string, start time.Time, err *error) {
	uc.observer.ObserveOperation(name, time.Since(start), *err == nil)
}

func reportToDTO(companyID string, date time.Time, rep *reconcile.Report) *dto.DiscrepancyReportDTO {
	out := &dto.DiscrepancyReportDTO{
		CompanyID:      companyID,
		Date:           date.Format(dateLayout),
		OutgoingItems:  rep.OutgoingItems,
		InspectedItems: rep.InspectedItems,
		MatchedKeys:    rep.MatchedKeys,
		MismatchedKeys: rep.MismatchedKeys,
		ByReason:       rep.ByReason,
		Discrepancies:  make([]dto.DiscrepancyDTO, 0, len(rep.Records)),
	}
	for _, rec := range rep.Records {
		out.Discrepancies = append(out.Discrepancies, discrepancyToDTO(rec))
	}
	return out
}

func discrepancyToDTO(rec *entity.Discrepancy) dto.DiscrepancyDTO {
	expiry := ""
	if !rec.Expiry.IsZero() {
		expiry = rec.Expiry.Format(dateLayout)
	}
	return dto.DiscrepancyDTO{
		ProductNum:     rec.ProductNum,
		MedicationName: rec.MedicationName,
		ExpiryDate:     expiry,
		LotNumber:      rec.Lot,
		Reason:         rec.Reason,
		Quantity:       rec.Quantity,
	}
}
