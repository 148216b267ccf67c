package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/medtrack-api/internal/domain"
	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

var _ repository.ManufacturingHashRepository = (*ManufacturingHashRepo)(nil)

// ManufacturingHashRepo implementación de ManufacturingHashRepository sobre PostgreSQL.
type ManufacturingHashRepo struct {
	q Querier
}

// NewManufacturingHashRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturingHashRepository(q Querier) *ManufacturingHashRepo {
	return &ManufacturingHashRepo{q: q}
}

// MapAll devuelve el mapa completo alias → lote original.
func (r *ManufacturingHashRepo) MapAll(ctx context.Context) (map[string]string, error) {
	rows, err := r.q.Query(ctx, `SELECT hashed_code, original_code FROM manufacturing_hashes`)
	if err != nil {
		return nil, fmt.Errorf("map hashes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var hashed, original string
		if err := rows.Scan(&hashed, &original); err != nil {
			return nil, fmt.Errorf("scan hash: %w", err)
		}
		out[hashed] = original
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("map hashes: %w", err)
	}
	return out, nil
}

// AllHashedCodes devuelve el conjunto de alias ya emitidos.
func (r *ManufacturingHashRepo) AllHashedCodes(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.q.Query(ctx, `SELECT hashed_code FROM manufacturing_hashes`)
	if err != nil {
		return nil, fmt.Errorf("list hashed codes: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var hashed string
		if err := rows.Scan(&hashed); err != nil {
			return nil, fmt.Errorf("scan hashed code: %w", err)
		}
		out[hashed] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list hashed codes: %w", err)
	}
	return out, nil
}

// GetByOriginal busca el alias de un lote; nil si no existe.
func (r *ManufacturingHashRepo) GetByOriginal(ctx context.Context, originalCode string) (*entity.ManufacturingHash, error) {
	query := `
		SELECT hashed_code, original_code, created_at
		FROM manufacturing_hashes WHERE original_code = $1`
	var h entity.ManufacturingHash
	err := r.q.QueryRow(ctx, query, originalCode).Scan(&h.HashedCode, &h.OriginalCode, &h.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hash: %w", err)
	}
	return &h, nil
}

// Create persiste un alias nuevo; ErrDuplicate si el alias o el lote ya existen.
func (r *ManufacturingHashRepo) Create(ctx context.Context, hash *entity.ManufacturingHash) error {
	query := `
		INSERT INTO manufacturing_hashes (hashed_code, original_code, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(ctx, query, hash.HashedCode, hash.OriginalCode, hash.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert hash: %w", err)
	}
	return nil
}
