package stock

import (
	"sync"

	"github.com/andresuchdata/medicast/backend-go/internal/domain"
	"github.com/google/uuid"
)

// Cache memoises stock draws for a session. PutIfAbsent must keep the first
// record stored for a medicine and return it to every later caller.
// Session names the set of draws; caches of derived data key on it.
type Cache interface {
	Get(medicine string) (domain.StockRecord, bool)
	PutIfAbsent(medicine string, record domain.StockRecord) domain.StockRecord
	Snapshot() map[string]domain.StockRecord
	Clear()
	Session() string
}

// MemoryCache is a mutex-guarded in-process Cache. Its draws die with the
// process, so every instance gets its own session.
type MemoryCache struct {
	mu      sync.RWMutex
	session string
	records map[string]domain.StockRecord
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		session: "local-" + uuid.NewString(),
		records: make(map[string]domain.StockRecord),
	}
}

func (c *MemoryCache) Session() string {
	return c.session
}

func (c *MemoryCache) Get(medicine string) (domain.StockRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[medicine]
	return rec, ok
}

func (c *MemoryCache) PutIfAbsent(medicine string, record domain.StockRecord) domain.StockRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.records[medicine]; ok {
		return existing
	}
	c.records[medicine] = record
	return record
}

func (c *MemoryCache) Snapshot() map[string]domain.StockRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]domain.StockRecord, len(c.records))
	for k, v := range c.records {
		out[k] = v
	}
	return out
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[string]domain.StockRecord)
}
