package tokenizer

import (
	"fmt"
	"sort"
	"sync"

	"textprep/internal/domain"
	"textprep/internal/port"
)

// EngineConfig carries the engine-specific knobs. Engines ignore fields
// they do not use.
type EngineConfig struct {
	// ModelPath points at a model file for engines that need one (sentencepiece).
	ModelPath string
	// Mode selects the kagome segmentation mode: normal, search or extended.
	Mode      string
	Lowercase bool
}

type Factory func(cfg EngineConfig) (port.Engine, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an engine available by name. It panics on duplicates.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("tokenizer: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("tokenizer: Register called twice for " + name)
	}
	registry[name] = factory
}

func NewEngine(name string, cfg EngineConfig) (port.Engine, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", domain.ErrUnknownEngine, name, ListEngines())
	}
	return factory(cfg)
}

// ListEngines returns the registered engine names in sorted order.
func ListEngines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
