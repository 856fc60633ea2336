package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
)

// ======================================================
// SLOT CACHE (REDIS)
// ======================================================

// slotTTL limita o tempo de vida das enumerações cacheadas; a
// invalidação explícita em claim/release é o caminho principal.
const slotTTL = 10 * time.Minute

// SlotCache guarda enumerações de horários livres no Redis.
// Qualquer erro de cache é tratado como miss: o Redis fora do ar
// nunca derruba a consulta de disponibilidade.
type SlotCache struct {
	rdb *redis.Client
}

func NewSlotCache(addr, password string, db int) *SlotCache {
	return &SlotCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *SlotCache) GetSlots(ctx context.Context, key string) ([]domain.TimeSlot, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) SetSlots(ctx context.Context, key string, slots []domain.TimeSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, slotTTL)
}

func (c *SlotCache) InvalidateDay(ctx context.Context, staffID uint, day time.Time) {
	pattern := fmt.Sprintf("slots:%d:%s:*", staffID, day.Format("2006-01-02"))

	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}

// Ping valida a conexão na subida da aplicação.
func (c *SlotCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
