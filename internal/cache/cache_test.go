package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/andresuchdata/medicast/backend-go/internal/config"
	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildRedisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	opts, err = buildRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@redis.local:6390/3"})
	require.NoError(t, err)
	assert.Equal(t, "redis.local:6390", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = buildRedisOptions(config.CacheConfig{RedisURL: "http://nope"})
	assert.Error(t, err)
}

func TestTTLFromConfig(t *testing.T) {
	assert.Equal(t, defaultCacheTTL, ttlFromConfig(config.CacheConfig{}))
	assert.Equal(t, 90*time.Second, ttlFromConfig(config.CacheConfig{RiskTTLSeconds: 90}))
}

func TestRiskKeyIgnoresMedicineOrder(t *testing.T) {
	a := RiskKey{SessionID: "s", HorizonDays: 30, Month: 0, Medicines: []string{"B", "A"}}
	b := RiskKey{SessionID: "s", HorizonDays: 30, Month: 0, Medicines: []string{"A", "B"}}
	assert.Equal(t, buildRiskReportKey(a), buildRiskReportKey(b))
	assert.Equal(t, []string{"B", "A"}, a.Medicines)

	other := b
	other.Month = 1
	assert.NotEqual(t, buildRiskReportKey(b), buildRiskReportKey(other))

	other = b
	other.HorizonDays = 14
	assert.NotEqual(t, buildRiskReportKey(b), buildRiskReportKey(other))

	assert.Contains(t, buildRiskReportKey(a), riskReportKeyPrefix+":")
}

func TestNoopRiskCache(t *testing.T) {
	c := NewRiskCache(nil, config.CacheConfig{Enabled: true})
	ctx := context.Background()

	require.NoError(t, c.SetReport(ctx, RiskKey{}, domain.RiskReport{HorizonDays: 30}))
	got, ok, err := c.GetReport(ctx, RiskKey{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateAll(ctx))
}

// unreachableClient points at a closed port so every command fails fast.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisStockStoreFallsBackWhenUnavailable(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	s := NewRedisStockStore(client, "")
	assert.Equal(t, "medicast:stock:default:Crocin", s.key("Crocin"))

	first := domain.StockRecord{Medicine: "Crocin", CurrentStock: 10}
	second := domain.StockRecord{Medicine: "Crocin", CurrentStock: 99}

	assert.Equal(t, first, s.PutIfAbsent("Crocin", first))
	assert.Equal(t, first, s.PutIfAbsent("Crocin", second))

	got, ok := s.Get("Crocin")
	require.True(t, ok)
	assert.Equal(t, 10, got.CurrentStock)
	assert.Len(t, s.Snapshot(), 1)

	s.Clear()
	_, ok = s.Get("Crocin")
	assert.False(t, ok)
}

// flakyRedis answers GET and SETNX from a map and can be switched off to
// simulate an outage. Commands never reach the network.
type flakyRedis struct {
	mu   sync.Mutex
	down bool
	data map[string]string
}

func (f *flakyRedis) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *flakyRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled")
	}
}

func (f *flakyRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *flakyRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.down {
			return errors.New("connection refused")
		}

		args := cmd.Args()
		key := fmt.Sprint(args[1])
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := f.data[key]
			if !ok {
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.BoolCmd:
			if _, ok := f.data[key]; ok {
				c.SetVal(false)
				return nil
			}
			switch v := args[2].(type) {
			case []byte:
				f.data[key] = string(v)
			default:
				f.data[key] = fmt.Sprint(v)
			}
			c.SetVal(true)
		default:
			return fmt.Errorf("unsupported command %s", cmd.Name())
		}
		return nil
	}
}

func newFlakyStore(t *testing.T) (*RedisStockStore, *flakyRedis) {
	t.Helper()
	fake := &flakyRedis{data: make(map[string]string)}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	client.AddHook(fake)
	t.Cleanup(func() { client.Close() })
	return NewRedisStockStore(client, "s1"), fake
}

func TestRedisStockStoreFirstWriteWins(t *testing.T) {
	s, fake := newFlakyStore(t)
	assert.Equal(t, "s1", s.Session())

	first := domain.StockRecord{Medicine: "Crocin", CurrentStock: 10}
	second := domain.StockRecord{Medicine: "Crocin", CurrentStock: 99}

	assert.Equal(t, first, s.PutIfAbsent("Crocin", first))
	assert.Equal(t, first, s.PutIfAbsent("Crocin", second))
	assert.Contains(t, fake.data, "medicast:stock:s1:Crocin")

	got, ok := s.Get("Crocin")
	require.True(t, ok)
	assert.Equal(t, 10, got.CurrentStock)
}

func TestRedisStockStoreWritesBackDrawsAfterOutage(t *testing.T) {
	s, fake := newFlakyStore(t)
	first := domain.StockRecord{Medicine: "Crocin", CurrentStock: 10}
	second := domain.StockRecord{Medicine: "Crocin", CurrentStock: 99}

	fake.setDown(true)
	assert.Equal(t, first, s.PutIfAbsent("Crocin", first))

	fake.setDown(false)
	got, ok := s.Get("Crocin")
	require.True(t, ok)
	assert.Equal(t, 10, got.CurrentStock)
	assert.Contains(t, fake.data, "medicast:stock:s1:Crocin")

	assert.Equal(t, first, s.PutIfAbsent("Crocin", second))
}
