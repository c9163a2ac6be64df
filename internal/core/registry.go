package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownVariant is returned when a variant key is not registered.
var ErrUnknownVariant = errors.New("unknown variant")

var (
	registry   = make(map[string]VariantDefinition)
	registryMu sync.RWMutex
)

// Register adds a variant definition to the registry.
// Panics if a variant with the same key is already registered.
func Register(def VariantDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Info.Key == "" {
		panic("variant registered without a key")
	}
	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("variant already registered: %s", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a variant definition by key.
func Get(key string) (VariantDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// Lookup is Get with an error suitable for returning to callers.
func Lookup(key string) (VariantDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return VariantDefinition{}, fmt.Errorf("%w: %q", ErrUnknownVariant, key)
	}
	return def, nil
}

// All returns every registered variant sorted by key.
func All() []VariantDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]VariantDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})
	return result
}

// Keys returns the registered variant keys in sorted order.
func Keys() []string {
	defs := All()
	keys := make([]string, len(defs))
	for i, def := range defs {
		keys[i] = def.Info.Key
	}
	return keys
}

// VariantCount returns the number of registered variants.
func VariantCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered variants. Used by tests.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]VariantDefinition)
}
