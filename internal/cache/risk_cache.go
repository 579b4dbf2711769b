package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/config"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const riskReportKeyPrefix = keyNamespace + ":risk:report"

// RiskKey identifies one cached risk report. Demand depends on the current
// month and stock on the session, so both are part of the key.
type RiskKey struct {
	SessionID   string
	HorizonDays int
	Month       domain.Month
	Medicines   []string
}

type RiskCache interface {
	GetReport(ctx context.Context, key RiskKey) (*domain.RiskReport, bool, error)
	SetReport(ctx context.Context, key RiskKey, report domain.RiskReport) error
	InvalidateAll(ctx context.Context) error
}

type redisRiskCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRiskCache struct{}

// NewRiskCache returns a Redis-backed cache, or a no-op cache when caching is
// disabled or client is nil.
func NewRiskCache(client *redis.Client, cfg config.CacheConfig) RiskCache {
	if !cfg.Enabled || client == nil {
		return &noopRiskCache{}
	}

	return &redisRiskCache{
		client: client,
		ttl:    ttlFromConfig(cfg),
	}
}

func NewNoopRiskCache() RiskCache {
	return &noopRiskCache{}
}

func (c *redisRiskCache) GetReport(ctx context.Context, key RiskKey) (*domain.RiskReport, bool, error) {
	payload, err := c.client.Get(ctx, buildRiskReportKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.RiskReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode risk report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisRiskCache) SetReport(ctx context.Context, key RiskKey, report domain.RiskReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode risk report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildRiskReportKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRiskCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, riskReportKeyPrefix)
}

func (n *noopRiskCache) GetReport(ctx context.Context, key RiskKey) (*domain.RiskReport, bool, error) {
	return nil, false, nil
}

func (n *noopRiskCache) SetReport(ctx context.Context, key RiskKey, report domain.RiskReport) error {
	return nil
}

func (n *noopRiskCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRiskReportKey(key RiskKey) string {
	return fmt.Sprintf("%s:%s", riskReportKeyPrefix, riskKeyHash(key))
}

func riskKeyHash(key RiskKey) string {
	parts := []string{
		"session=" + strings.TrimSpace(key.SessionID),
		fmt.Sprintf("horizon=%d", key.HorizonDays),
		fmt.Sprintf("month=%d", int(key.Month)),
	}

	// Medicine order does not change the (sorted) report
	if len(key.Medicines) > 0 {
		meds := append([]string(nil), key.Medicines...)
		sort.Strings(meds)
		parts = append(parts, "medicines="+strings.Join(meds, ","))
	}

	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
