package timetable

import "sync"

// configCache держит конфиги групп в памяти, чтобы не перечитывать JSON
// на каждую команду. Записи обновляются при каждом сохранении конфига.
type configCache struct {
	mu      sync.RWMutex
	configs map[string]GroupConfig
}

func newConfigCache() *configCache {
	return &configCache{configs: make(map[string]GroupConfig)}
}

func (c *configCache) get(group string) (GroupConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.configs[group]
	return cfg, ok
}

func (c *configCache) set(group string, cfg GroupConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configs[group] = cfg
}
