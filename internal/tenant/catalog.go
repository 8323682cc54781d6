package tenant

import (
	"sync"
)

// Catalog is the in-memory registry of tenant deployments. Reads vastly
// outnumber writes (writes happen only at startup), so a RWMutex suffices.
type Catalog struct {
	mu      sync.RWMutex
	tenants map[string]Config
}

// NewCatalog builds an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tenants: make(map[string]Config)}
}

// Register adds or replaces a tenant configuration. A zero pass threshold is
// normalized to the canonical default so a sparse config file cannot disable
// the quiz gate.
func (c *Catalog) Register(cfg Config) {
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = DefaultPassThreshold
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tenants[cfg.ID] = cfg
}

// Get returns the configuration for a tenant.
func (c *Catalog) Get(id string) (Config, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.tenants[id]
	return cfg, ok
}

// Exists reports whether a tenant deployment is registered.
func (c *Catalog) Exists(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// IDs lists registered tenant IDs; used by schema bootstrap and tests.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.tenants))
	for id := range c.tenants {
		ids = append(ids, id)
	}
	return ids
}
