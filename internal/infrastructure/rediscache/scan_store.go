// Package rediscache adaptadores Redis para la ingesta de lecturas:
// deduplicación de etiquetas y caché del mapa de alias de lote.
package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/medtrack-api/internal/application/scan"
	"github.com/tu-usuario/medtrack-api/pkg/config"
)

const (
	hashMapKey = "medtrack:hash_map"
	hashMapTTL = 300 * time.Second

	epcKeyPrefix = "medtrack:epc"
	epcTTL       = 24 * time.Hour
)

var (
	_ scan.IdempotencyStore = (*ScanStore)(nil)
	_ scan.HashCache        = (*ScanStore)(nil)
)

// ScanStore implementa los puertos de deduplicación y caché sobre Redis.
type ScanStore struct {
	client *redis.Client
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewScanStore construye el adaptador sobre un cliente ya conectado.
func NewScanStore(client *redis.Client) *ScanStore {
	return &ScanStore{client: client}
}

// MarkEPC marca una etiqueta como vista en una fecha (SET NX con TTL de
// un día). Devuelve true solo la primera vez.
func (s *ScanStore) MarkEPC(ctx context.Context, date time.Time, epc string) (bool, error) {
	key := fmt.Sprintf("%s:%s:%s", epcKeyPrefix, date.Format("20060102"), epc)
	ok, err := s.client.SetNX(ctx, key, 1, epcTTL).Result()
	if err != nil {
		return false, fmt.Errorf("marcar epc: %w", err)
	}
	return ok, nil
}

// GetHashMap devuelve el mapa alias → lote cacheado, o nil en un miss.
func (s *ScanStore) GetHashMap(ctx context.Context) (map[string]string, error) {
	m, err := s.client.HGetAll(ctx, hashMapKey).Result()
	if err != nil {
		return nil, fmt.Errorf("leer caché de alias: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// SetHashMap reemplaza la caché completa con TTL corto; el mapa crece
// poco y releerlo cada cinco minutos es barato.
func (s *ScanStore) SetHashMap(ctx context.Context, m map[string]string) error {
	if len(m) == 0 {
		return nil
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, hashMapKey)
	flat := make([]any, 0, len(m)*2)
	for k, v := range m {
		flat = append(flat, k, v)
	}
	pipe.HSet(ctx, hashMapKey, flat...)
	pipe.Expire(ctx, hashMapKey, hashMapTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("poblar caché de alias: %w", err)
	}
	return nil
}

// Invalidate borra la caché; la próxima ingesta la repuebla desde la base.
func (s *ScanStore) Invalidate(ctx context.Context) error {
	if err := s.client.Del(ctx, hashMapKey).Err(); err != nil {
		return fmt.Errorf("invalidar caché de alias: %w", err)
	}
	return nil
}
