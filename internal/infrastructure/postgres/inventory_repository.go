package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventorySelect = `
	SELECT id, company_id, date, product_num, medication_name, expiry_date, lot_number, stock_quantity, updated_at
	FROM inventory_rows
	WHERE company_id = $1 AND date = $2`

// SnapshotByCompanyDate carga el inventario de una fecha indexado por clave.
func (r *InventoryRepo) SnapshotByCompanyDate(ctx context.Context, companyID string, date time.Time) (map[entity.ItemKey]*entity.InventoryRow, error) {
	return r.snapshot(ctx, companyID, date, inventorySelect)
}

// SnapshotForUpdate igual que SnapshotByCompanyDate pero con FOR UPDATE;
// solo tiene sentido dentro de una transacción.
func (r *InventoryRepo) SnapshotForUpdate(ctx context.Context, companyID string, date time.Time) (map[entity.ItemKey]*entity.InventoryRow, error) {
	return r.snapshot(ctx, companyID, date, inventorySelect+" FOR UPDATE")
}

func (r *InventoryRepo) snapshot(ctx context.Context, companyID string, date time.Time, query string) (map[entity.ItemKey]*entity.InventoryRow, error) {
	rows, err := r.listRows(ctx, companyID, date, query)
	if err != nil {
		return nil, err
	}
	snap := make(map[entity.ItemKey]*entity.InventoryRow, len(rows))
	for _, row := range rows {
		snap[row.Key()] = row
	}
	return snap, nil
}

// ListByCompanyDate lista el inventario de una fecha ordenado por clave.
func (r *InventoryRepo) ListByCompanyDate(ctx context.Context, companyID string, date time.Time) ([]*entity.InventoryRow, error) {
	return r.listRows(ctx, companyID, date, inventorySelect+" ORDER BY product_num, expiry_date, lot_number")
}

func (r *InventoryRepo) listRows(ctx context.Context, companyID string, date time.Time, query string) ([]*entity.InventoryRow, error) {
	rows, err := r.q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryRow
	for rows.Next() {
		var inv entity.InventoryRow
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.Date, &inv.ProductNum, &inv.MedicationName,
			&inv.Expiry, &inv.Lot, &inv.StockQuantity, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out = append(out, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return out, nil
}

// LatestDateBefore devuelve la fecha de inventario más reciente anterior
// a before, o nil si no existe ninguna.
func (r *InventoryRepo) LatestDateBefore(ctx context.Context, companyID string, before time.Time) (*time.Time, error) {
	query := `
		SELECT max(date) FROM inventory_rows
		WHERE company_id = $1 AND date < $2`
	var latest *time.Time
	if err := r.q.QueryRow(ctx, query, companyID, before).Scan(&latest); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest inventory date: %w", err)
	}
	return latest, nil
}

// BulkUpdate actualiza cantidad y fecha de filas existentes en un solo
// round-trip (pgx.Batch). Devuelve cuántas filas tocó realmente.
func (r *InventoryRepo) BulkUpdate(ctx context.Context, rows []*entity.InventoryRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	query := `
		UPDATE inventory_rows
		SET stock_quantity = $1, date = $2, updated_at = now()
		WHERE id = $3`

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query, row.StockQuantity, row.Date, row.ID)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	affected := 0
	for range rows {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("update inventory row: %w", err)
		}
		affected += int(tag.RowsAffected())
	}
	return affected, nil
}

// BulkInsert inserta filas nuevas asignando IDs.
func (r *InventoryRepo) BulkInsert(ctx context.Context, rows []*entity.InventoryRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO inventory_rows (id, company_id, date, product_num, medication_name, expiry_date, lot_number, stock_quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`

	batch := &pgx.Batch{}
	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		batch.Queue(query,
			row.ID, row.CompanyID, row.Date, row.ProductNum,
			row.MedicationName, row.Expiry, row.Lot, row.StockQuantity,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("insert inventory row: %w", err)
		}
	}
	return len(rows), nil
}

// BulkInsertMissing inserta solo las filas cuya clave natural no existe
// todavía (ON CONFLICT DO NOTHING); las existentes quedan intactas.
func (r *InventoryRepo) BulkInsertMissing(ctx context.Context, rows []*entity.InventoryRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO inventory_rows (id, company_id, date, product_num, medication_name, expiry_date, lot_number, stock_quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (company_id, date, product_num, expiry_date, lot_number) DO NOTHING`

	batch := &pgx.Batch{}
	for _, row := range rows {
		if row.ID == "" {
			row.ID = uuid.New().String()
		}
		batch.Queue(query,
			row.ID, row.CompanyID, row.Date, row.ProductNum,
			row.MedicationName, row.Expiry, row.Lot, row.StockQuantity,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	created := 0
	for range rows {
		tag, err := results.Exec()
		if err != nil {
			return created, fmt.Errorf("insert missing inventory row: %w", err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}
