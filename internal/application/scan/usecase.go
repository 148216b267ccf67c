// Package scan ingesta de lecturas EPC de los lectores RFID y registro
// de alias de lote.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/application/dto"
	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
	"github.com/tu-usuario/medtrack-api/internal/domain/rfid"
)

// UseCase ingesta de lotes de lecturas EPC. Cada lectura vale una unidad
// de la partida que describe su etiqueta.
type UseCase struct {
	specRepo    repository.SpecItemRepository
	hashRepo    repository.ManufacturingHashRepository
	companyRepo repository.CompanyRepository
	idem        IdempotencyStore
	cache       HashCache
	inspector   Inspector
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	specRepo repository.SpecItemRepository,
	hashRepo repository.ManufacturingHashRepository,
	companyRepo repository.CompanyRepository,
	idem IdempotencyStore,
	cache HashCache,
	inspector Inspector,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		specRepo:    specRepo,
		hashRepo:    hashRepo,
		companyRepo: companyRepo,
		idem:        idem,
		cache:       cache,
		inspector:   inspector,
		log:         log,
	}
}

// IngestScans procesa un lote de lecturas: deduplica por etiqueta y
// fecha, decodifica cada EPC, resuelve los alias de lote y acumula las
// cantidades en las partidas de la fecha.
//
// Las partidas de ambas direcciones se registran bajo la compañía que
// despachó: una ingesta INSPECTED con TargetCompanyID guarda contra esa
// compañía y dispara la conciliación completa del día.
func (uc *UseCase) IngestScans(ctx context.Context, in dto.BulkScanRequest, date time.Time) (*dto.BulkScanResultDTO, error) {
	if in.Direction != entity.DirectionOutgoing && in.Direction != entity.DirectionInspected {
		return nil, fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, in.Direction)
	}
	if len(in.EPCs) == 0 {
		return nil, fmt.Errorf("%w: lote de lecturas vacío", domain.ErrInvalidInput)
	}
	if err := uc.ensureCompany(ctx, in.CompanyID); err != nil {
		return nil, err
	}

	specCompanyID := in.CompanyID
	if in.Direction == entity.DirectionInspected && in.TargetCompanyID != "" && in.TargetCompanyID != in.CompanyID {
		if err := uc.ensureCompany(ctx, in.TargetCompanyID); err != nil {
			return nil, err
		}
		specCompanyID = in.TargetCompanyID
	}

	result := &dto.BulkScanResultDTO{}

	tags := make([]*rfid.Tag, 0, len(in.EPCs))
	for _, epc := range in.EPCs {
		fresh, err := uc.idem.MarkEPC(ctx, date, epc)
		if err != nil {
			return nil, fmt.Errorf("deduplicar etiqueta: %w", err)
		}
		if !fresh {
			result.Duplicates++
			continue
		}
		tag, err := rfid.ParseTag(epc)
		if err != nil {
			uc.log.Warn().Err(err).Str("epc", epc).Msg("etiqueta ilegible descartada")
			result.Unparseable++
			continue
		}
		tags = append(tags, tag)
	}
	result.Ingested = len(tags)
	if len(tags) == 0 {
		return result, nil
	}

	hashMap, err := uc.lotAliases(ctx)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	items := make([]*entity.SpecItem, 0, len(tags))
	for _, tag := range tags {
		lot, ok := hashMap[tag.HashedLot]
		if !ok {
			// Alias no registrado: la partida igual entra, sin lote.
			result.UnknownLots++
		}
		qty := one
		items = append(items, &entity.SpecItem{
			CompanyID:  specCompanyID,
			Date:       date,
			ProductNum: tag.ProductNum,
			Expiry:     tag.Expiry,
			Lot:        lot,
			Quantity:   &qty,
		})
	}

	created, updated, err := uc.specRepo.BulkUpsert(ctx, specCompanyID, date, in.Direction, items)
	if err != nil {
		return nil, fmt.Errorf("acumular partidas: %w", err)
	}
	result.Created = created
	result.Updated = updated

	uc.log.Info().
		Str("company_id", specCompanyID).
		Str("direction", in.Direction).
		Str("date", date.Format("2006-01-02")).
		Int("ingested", result.Ingested).
		Int("duplicates", result.Duplicates).
		Int("unparseable", result.Unparseable).
		Msg("lote de lecturas ingerido")

	if specCompanyID != in.CompanyID {
		inspection, err := uc.inspector.RunInspection(ctx, specCompanyID, in.CompanyID, date)
		if err != nil {
			return nil, fmt.Errorf("conciliación de inspección: %w", err)
		}
		result.Inspection = inspection
	}
	return result, nil
}

// RegisterLot emite (o devuelve, si ya existe) el alias de 9 caracteres
// de un número de lote e invalida la caché de alias.
func (uc *UseCase) RegisterLot(ctx context.Context, lotNumber string) (*dto.RegisterLotResponse, error) {
	if lotNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.hashRepo.GetByOriginal(ctx, lotNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.RegisterLotResponse{LotNumber: lotNumber, HashedCode: existing.HashedCode}, nil
	}

	taken, err := uc.hashRepo.AllHashedCodes(ctx)
	if err != nil {
		return nil, err
	}
	hashed, err := rfid.HashLot(lotNumber, taken)
	if err != nil {
		return nil, err
	}

	if err := uc.hashRepo.Create(ctx, &entity.ManufacturingHash{
		HashedCode:   hashed,
		OriginalCode: lotNumber,
		CreatedAt:    time.Now(),
	}); err != nil {
		return nil, err
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de alias")
	}

	uc.log.Info().Str("lot_number", lotNumber).Str("hashed_code", hashed).Msg("alias de lote registrado")
	return &dto.RegisterLotResponse{LotNumber: lotNumber, HashedCode: hashed}, nil
}

// lotAliases resuelve el mapa alias → lote, primero desde la caché y en
// un miss desde la base, repoblando la caché.
func (uc *UseCase) lotAliases(ctx context.Context) (map[string]string, error) {
	cached, err := uc.cache.GetHashMap(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché de alias no disponible; se consulta la base")
	} else if cached != nil {
		return cached, nil
	}

	fresh, err := uc.hashRepo.MapAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar alias de lote: %w", err)
	}
	if err := uc.cache.SetHashMap(ctx, fresh); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo poblar la caché de alias")
	}
	return fresh, nil
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
