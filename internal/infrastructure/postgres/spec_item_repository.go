package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

var _ repository.SpecItemRepository = (*SpecItemRepo)(nil)

// SpecItemRepo implementación de SpecItemRepository sobre PostgreSQL (usable con pool o tx).
// La tabla guarda ambas direcciones; la fecha de vencimiento ausente se
// representa con la fecha cero (0001-01-01) para que la clave natural
// siga siendo única.
type SpecItemRepo struct {
	q Querier
}

// NewSpecItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSpecItemRepository(q Querier) *SpecItemRepo {
	return &SpecItemRepo{q: q}
}

// ListByDate lista las partidas de una compañía, fecha y dirección.
func (r *SpecItemRepo) ListByDate(ctx context.Context, companyID string, date time.Time, direction string) ([]*entity.SpecItem, error) {
	query := `
		SELECT id, company_id, date, product_num, medication_name, expiry_date, lot_number, quantity, created_at
		FROM spec_items
		WHERE company_id = $1 AND date = $2 AND direction = $3
		ORDER BY product_num, expiry_date, lot_number`
	rows, err := r.q.Query(ctx, query, companyID, date, direction)
	if err != nil {
		return nil, fmt.Errorf("list spec items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SpecItem
	for rows.Next() {
		var it entity.SpecItem
		var qty decimal.NullDecimal
		if err := rows.Scan(
			&it.ID, &it.CompanyID, &it.Date, &it.ProductNum, &it.MedicationName,
			&it.Expiry, &it.Lot, &qty, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan spec item: %w", err)
		}
		if qty.Valid {
			it.Quantity = &qty.Decimal
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list spec items: %w", err)
	}
	return items, nil
}

// BulkUpsert inserta o acumula cantidades por clave natural en un solo
// round-trip (pgx.Batch). Devuelve creadas vs actualizadas usando el
// truco xmax = 0 (una fila recién insertada no tiene xmax).
func (r *SpecItemRepo) BulkUpsert(ctx context.Context, companyID string, date time.Time, direction string, items []*entity.SpecItem) (created, updated int, err error) {
	if len(items) == 0 {
		return 0, 0, nil
	}

	query := `
		INSERT INTO spec_items (id, company_id, date, direction, product_num, medication_name, expiry_date, lot_number, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (company_id, date, direction, product_num, expiry_date, lot_number)
		DO UPDATE SET
			quantity = COALESCE(spec_items.quantity, 0) + COALESCE(EXCLUDED.quantity, 0),
			medication_name = COALESCE(NULLIF(EXCLUDED.medication_name, ''), spec_items.medication_name)
		RETURNING (xmax = 0) AS inserted`

	batch := &pgx.Batch{}
	for _, it := range items {
		var qty decimal.NullDecimal
		if it.Quantity != nil {
			qty = decimal.NewNullDecimal(*it.Quantity)
		}
		batch.Queue(query,
			uuid.New().String(), companyID, date, direction,
			it.ProductNum, it.MedicationName, it.Expiry, it.Lot, qty,
		)
	}

	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		var inserted bool
		if err := results.QueryRow().Scan(&inserted); err != nil {
			return 0, 0, fmt.Errorf("upsert spec item: %w", err)
		}
		if inserted {
			created++
		} else {
			updated++
		}
	}
	return created, updated, nil
}
