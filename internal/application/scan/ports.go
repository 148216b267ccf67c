package scan

import (
	"context"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/application/dto"
)

// IdempotencyStore deduplica lecturas EPC entre lotes: MarkEPC devuelve
// true solo la primera vez que se ve una etiqueta en una fecha.
type IdempotencyStore interface {
	MarkEPC(ctx context.Context, date time.Time, epc string) (bool, error)
}

// HashCache cachea el mapa alias → lote original para no consultarlo en
// cada lote de lecturas. GetHashMap devuelve nil en un miss.
type HashCache interface {
	GetHashMap(ctx context.Context) (map[string]string, error)
	SetHashMap(ctx context.Context, m map[string]string) error
	Invalidate(ctx context.Context) error
}

// Inspector dispara la conciliación completa cuando una ingesta de
// inspección apunta a otra compañía.
type Inspector interface {
	RunInspection(ctx context.Context, sourceCompanyID, destCompanyID string, date time.Time) (*dto.InspectionResultDTO, error)
}
