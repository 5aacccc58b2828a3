package core

import (
	"fmt"
	"sort"
	"sync"
)

// Template is one import format: what a paste must contain, which
// parameters it needs and how records become output rows.
type Template interface {
	// Info describes the template for shells and validation.
	Info() TemplateInfo

	// Parse validates and parses a data paste.
	Parse(text string, opts ParseOptions) (ParseResult, error)

	// ParseRows parses cells that are already split, such as an .xlsx sheet.
	ParseRows(rows [][]string) (ParseResult, error)

	// Generate validates parameters and builds the output table, header first.
	Generate(in GenerateInput) (Table, error)
}

var (
	registry   = make(map[string]Template)
	registryMu sync.RWMutex
)

// Register adds a template to the registry.
// Panics if a template with the same key is already registered.
func Register(t Template) {
	registryMu.Lock()
	defer registryMu.Unlock()

	key := t.Info().Key
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("template already registered: %s", key))
	}
	registry[key] = t
}

// Get returns a template by key.
// Returns false if not found.
func Get(key string) (Template, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[key]
	return t, ok
}

// Lookup is Get with an ErrUnknownTemplate error for missing keys.
func Lookup(key string) (Template, error) {
	t, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrUnknownTemplate)
	}
	return t, nil
}

// All returns all registered templates.
// Sorted by display order then by key for consistent ordering.
func All() []Template {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Template, 0, len(registry))
	for _, t := range registry {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Info(), result[j].Info()
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Key < b.Key
	})

	return result
}

// Keys returns the registered template keys in display order.
func Keys() []string {
	all := All()
	keys := make([]string, len(all))
	for i, t := range all {
		keys[i] = t.Info().Key
	}
	return keys
}

// Clear removes all registered templates.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Template)
}
