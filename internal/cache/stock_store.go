package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/andresuchdata/medicast/backend-go/internal/stock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	stockKeyPrefix   = keyNamespace + ":stock"
	stockOpTimeout   = 2 * time.Second
	defaultSessionID = "default"
)

// RedisStockStore shares stock draws between processes. The first SETNX wins;
// losers re-read the stored record. When Redis is unreachable the store keeps
// serving from an in-process cache so estimates never fail on stock lookups.
type RedisStockStore struct {
	client   *redis.Client
	session  string
	fallback *stock.MemoryCache
}

var _ stock.Cache = (*RedisStockStore)(nil)

func NewRedisStockStore(client *redis.Client, sessionID string) *RedisStockStore {
	if sessionID == "" {
		sessionID = defaultSessionID
	}
	return &RedisStockStore{
		client:   client,
		session:  sessionID,
		fallback: stock.NewMemoryCache(),
	}
}

func (s *RedisStockStore) prefix() string {
	return fmt.Sprintf("%s:%s:", stockKeyPrefix, s.session)
}

func (s *RedisStockStore) Session() string {
	return s.session
}

func (s *RedisStockStore) key(medicine string) string {
	return s.prefix() + medicine
}

func (s *RedisStockStore) Get(medicine string) (domain.StockRecord, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), stockOpTimeout)
	defer cancel()

	rec, ok, err := s.get(ctx, medicine)
	if err != nil {
		log.Warn().Err(err).Str("medicine", medicine).Msg("stock store read failed, using local cache")
		return s.fallback.Get(medicine)
	}
	if ok {
		return rec, true
	}

	// Draws made while Redis was down are written back instead of redrawn.
	local, found := s.fallback.Get(medicine)
	if !found {
		return domain.StockRecord{}, false
	}
	winner, err := s.putIfAbsent(ctx, medicine, local)
	if err != nil {
		log.Warn().Err(err).Str("medicine", medicine).Msg("stock store write-back failed, using local cache")
		return local, true
	}
	return winner, true
}

func (s *RedisStockStore) get(ctx context.Context, medicine string) (domain.StockRecord, bool, error) {
	payload, err := s.client.Get(ctx, s.key(medicine)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.StockRecord{}, false, nil
	}
	if err != nil {
		return domain.StockRecord{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rec domain.StockRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.StockRecord{}, false, fmt.Errorf("decode stock record: %w", err)
	}
	return rec, true, nil
}

func (s *RedisStockStore) PutIfAbsent(medicine string, record domain.StockRecord) domain.StockRecord {
	ctx, cancel := context.WithTimeout(context.Background(), stockOpTimeout)
	defer cancel()

	winner, err := s.putIfAbsent(ctx, medicine, record)
	if err != nil {
		log.Warn().Err(err).Str("medicine", medicine).Msg("stock store write failed, using local cache")
		return s.fallback.PutIfAbsent(medicine, record)
	}
	return winner
}

func (s *RedisStockStore) putIfAbsent(ctx context.Context, medicine string, record domain.StockRecord) (domain.StockRecord, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return domain.StockRecord{}, fmt.Errorf("encode stock record: %w", err)
	}

	set, err := s.client.SetNX(ctx, s.key(medicine), payload, 0).Result()
	if err != nil {
		return domain.StockRecord{}, fmt.Errorf("redis setnx failed: %w", err)
	}
	if set {
		return record, nil
	}

	winner, ok, err := s.get(ctx, medicine)
	if err != nil {
		return domain.StockRecord{}, err
	}
	if !ok {
		// cleared between SETNX and GET
		return record, nil
	}
	return winner, nil
}

func (s *RedisStockStore) Snapshot() map[string]domain.StockRecord {
	ctx, cancel := context.WithTimeout(context.Background(), stockOpTimeout)
	defer cancel()

	out := make(map[string]domain.StockRecord)
	prefix := s.prefix()
	err := scanKeys(ctx, s.client, prefix, func(keys []string) error {
		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("redis mget failed: %w", err)
		}
		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			var rec domain.StockRecord
			if err := json.Unmarshal([]byte(raw), &rec); err != nil {
				continue
			}
			out[keys[i][len(prefix):]] = rec
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("stock store snapshot failed, using local cache")
		return s.fallback.Snapshot()
	}
	return out
}

func (s *RedisStockStore) Clear() {
	s.fallback.Clear()

	ctx, cancel := context.WithTimeout(context.Background(), stockOpTimeout)
	defer cancel()
	if err := deleteKeysWithPrefix(ctx, s.client, s.prefix()); err != nil {
		log.Warn().Err(err).Str("session", s.session).Msg("stock store clear failed")
	}
}
