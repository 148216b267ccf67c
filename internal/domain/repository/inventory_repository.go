package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para las filas de
// inventario por compañía y fecha (DIP).
type InventoryRepository interface {
	// SnapshotByCompanyDate carga el inventario de una fecha indexado por
	// clave de partida.
	SnapshotByCompanyDate(ctx context.Context, companyID string, date time.Time) (map[entity.ItemKey]*entity.InventoryRow, error)

	// SnapshotForUpdate igual que SnapshotByCompanyDate pero bloqueando
	// las filas (FOR UPDATE); solo tiene sentido dentro de una transacción.
	SnapshotForUpdate(ctx context.Context, companyID string, date time.Time) (map[entity.ItemKey]*entity.InventoryRow, error)

	ListByCompanyDate(ctx context.Context, companyID string, date time.Time) ([]*entity.InventoryRow, error)

	// LatestDateBefore devuelve la fecha de inventario más reciente
	// estrictamente anterior a before, o nil si no hay ninguna.
	LatestDateBefore(ctx context.Context, companyID string, before time.Time) (*time.Time, error)

	BulkUpdate(ctx context.Context, rows []*entity.InventoryRow) (int, error)
	BulkInsert(ctx context.Context, rows []*entity.InventoryRow) (int, error)

	// BulkInsertMissing inserta solo las filas cuya clave natural
	// (compañía, fecha, producto, vencimiento, lote) no existe todavía;
	// las existentes quedan intactas. Devuelve cuántas creó.
	BulkInsertMissing(ctx context.Context, rows []*entity.InventoryRow) (int, error)
}
