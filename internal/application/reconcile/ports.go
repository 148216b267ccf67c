package reconcile

import (
	"context"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la conciliación.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		specRepo repository.SpecItemRepository,
		invRepo repository.InventoryRepository,
		discRepo repository.DiscrepancyRepository,
	) error) error
}

// Observer recibe la duración y el resultado de cada operación de
// conciliación, para exponer métricas sin acoplar el caso de uso a un
// backend concreto.
type Observer interface {
	ObserveOperation(name string, d time.Duration, success bool)
}

// NopObserver descarta las observaciones; útil en tests y en despliegues
// sin métricas.
type NopObserver struct{}

func (NopObserver) ObserveOperation(string, time.Duration, bool) {}
