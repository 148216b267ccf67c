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

var _ repository.DiscrepancyRepository = (*DiscrepancyRepo)(nil)

// DiscrepancyRepo implementación de DiscrepancyRepository sobre PostgreSQL (usable con pool o tx).
type DiscrepancyRepo struct {
	q Querier
}

// NewDiscrepancyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDiscrepancyRepository(q Querier) *DiscrepancyRepo {
	return &DiscrepancyRepo{q: q}
}

// BulkInsert inserta los registros de una corrida con COPY; asigna IDs
// a los registros que no traen.
func (r *DiscrepancyRepo) BulkInsert(ctx context.Context, records []*entity.Discrepancy) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	now := time.Now()
	src := make([][]any, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		src = append(src, []any{
			rec.ID, rec.CompanyID, rec.Date, rec.ProductNum, rec.MedicationName,
			rec.Expiry, rec.Lot, rec.Reason, rec.Quantity, rec.CreatedAt,
		})
	}

	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"discrepancies"},
		[]string{"id", "company_id", "date", "product_num", "medication_name", "expiry_date", "lot_number", "reason", "quantity", "created_at"},
		pgx.CopyFromRows(src),
	)
	if err != nil {
		return 0, fmt.Errorf("copy discrepancies: %w", err)
	}
	return int(n), nil
}

// ListByDate lista las discrepancias persistidas de una fecha.
func (r *DiscrepancyRepo) ListByDate(ctx context.Context, companyID string, date time.Time) ([]*entity.Discrepancy, error) {
	query := `
		SELECT id, company_id, date, product_num, medication_name, expiry_date, lot_number, reason, quantity, created_at
		FROM discrepancies
		WHERE company_id = $1 AND date = $2
		ORDER BY product_num, expiry_date, lot_number`
	rows, err := r.q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("list discrepancies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Discrepancy
	for rows.Next() {
		var d entity.Discrepancy
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.Date, &d.ProductNum, &d.MedicationName,
			&d.Expiry, &d.Lot, &d.Reason, &d.Quantity, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan discrepancy: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list discrepancies: %w", err)
	}
	return out, nil
}

// DeleteByDate borra el reporte de una fecha completa; se llama dentro
// de la misma transacción que inserta el nuevo.
func (r *DiscrepancyRepo) DeleteByDate(ctx context.Context, companyID string, date time.Time) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM discrepancies WHERE company_id = $1 AND date = $2`, companyID, date)
	if err != nil {
		return 0, fmt.Errorf("delete discrepancies: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
