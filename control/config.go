// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Flat key/value configuration with snapshot reads and reload listeners.
// Keys are dotted paths as produced by Settings.Map.

package control

import "sync"

// ConfigStore is safe for concurrent use.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{config: make(map[string]any)}
}

func (cs *ConfigStore) Get(key string) (any, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	v, ok := cs.config[key]
	return v, ok
}

// String returns the value at key if it is a string.
func (cs *ConfigStore) String(key string) (string, bool) {
	v, _ := cs.Get(key)
	s, ok := v.(string)
	return s, ok
}

// GetSnapshot returns a copy of every key.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	snap := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		snap[k] = v
	}
	return snap
}

// SetConfig merges cfg into the store, then runs every listener in
// registration order on the calling goroutine. Listeners may read the store.
func (cs *ConfigStore) SetConfig(cfg map[string]any) {
	cs.mu.Lock()
	for k, v := range cfg {
		cs.config[k] = v
	}
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnReload registers fn to run after each SetConfig.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	cs.listeners = append(cs.listeners, fn)
	cs.mu.Unlock()
}
