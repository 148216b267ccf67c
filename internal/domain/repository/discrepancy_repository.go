package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// DiscrepancyRepository define el puerto de persistencia para los
// registros de discrepancia (DIP). La tabla es de solo inserción; un
// recálculo borra la fecha completa antes de volver a insertar.
type DiscrepancyRepository interface {
	BulkInsert(ctx context.Context, records []*entity.Discrepancy) (int, error)
	ListByDate(ctx context.Context, companyID string, date time.Time) ([]*entity.Discrepancy, error)
	DeleteByDate(ctx context.Context, companyID string, date time.Time) (int, error)
}
