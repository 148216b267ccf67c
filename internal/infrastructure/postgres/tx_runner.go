package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/medtrack-api/internal/application/reconcile"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

// Asegura que TxRunner implementa reconcile.TxRunner.
var _ reconcile.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	specRepo repository.SpecItemRepository,
	invRepo repository.InventoryRepository,
	discRepo repository.DiscrepancyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	specRepo := NewSpecItemRepository(tx)
	invRepo := NewInventoryRepository(tx)
	discRepo := NewDiscrepancyRepository(tx)

	if err := fn(specRepo, invRepo, discRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
