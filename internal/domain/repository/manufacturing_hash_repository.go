package repository

import (
	"context"

	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// ManufacturingHashRepository define el puerto de persistencia para los
// alias de lote (DIP).
type ManufacturingHashRepository interface {
	// MapAll devuelve el mapa completo alias → lote original; es la
	// fuente que alimenta la caché de la ingesta de lecturas.
	MapAll(ctx context.Context) (map[string]string, error)

	// AllHashedCodes devuelve el conjunto completo de alias ya emitidos,
	// usado para evitar colisiones al registrar un lote nuevo.
	AllHashedCodes(ctx context.Context) (map[string]struct{}, error)

	GetByOriginal(ctx context.Context, originalCode string) (*entity.ManufacturingHash, error)
	Create(ctx context.Context, hash *entity.ManufacturingHash) error
}
