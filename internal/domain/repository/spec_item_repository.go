package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// SpecItemRepository define el puerto de persistencia para las partidas
// de especificación (DIP). La dirección (OUTGOING/INSPECTED) se pasa
// como parámetro porque la tabla guarda ambas mezcladas.
type SpecItemRepository interface {
	ListByDate(ctx context.Context, companyID string, date time.Time, direction string) ([]*entity.SpecItem, error)

	// BulkUpsert inserta o acumula cantidades por clave de partida y
	// devuelve cuántas filas se crearon y cuántas se actualizaron.
	BulkUpsert(ctx context.Context, companyID string, date time.Time, direction string, items []*entity.SpecItem) (created, updated int, err error)
}
