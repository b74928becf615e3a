package utils

import (
	"errors"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrDuplicateKey is returned when a key is registered twice
var ErrDuplicateKey = errors.New("key already registered")

// Registry is a generic, thread-safe registry that remembers insertion order
type Registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items *orderedmap.OrderedMap[K, V]
}

// NewRegistry creates a new generic registry
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		items: orderedmap.New[K, V](),
	}
}

// Register adds an item to the registry. Existing keys are not replaced.
func (r *Registry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items.Get(key); exists {
		return ErrDuplicateKey
	}

	r.items.Set(key, value)
	return nil
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items.Get(key)
}

// Has checks if a key exists in the registry
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items.Get(key)
	return exists
}

// Keys returns all keys in insertion order
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, 0, r.items.Len())
	for pair := r.items.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Values returns all items in insertion order
func (r *Registry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make([]V, 0, r.items.Len())
	for pair := r.items.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}

// Clear removes all items from the registry
func (r *Registry[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = orderedmap.New[K, V]()
}

// Size returns the number of items in the registry
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items.Len()
}
