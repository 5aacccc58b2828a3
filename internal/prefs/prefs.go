// Package prefs stores per-client UI preferences. The theme is the only
// value the generator persists; everything else lives in memory.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is returned for clients without a stored preference.
const DefaultTheme = ThemeLight

// ErrInvalidTheme is returned for values other than light or dark.
var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidTheme)
	}
}

// Store reads and writes theme preferences by client id.
type Store interface {
	Theme(ctx context.Context, clientID string) (Theme, error)
	SetTheme(ctx context.Context, clientID string, theme Theme) error
}

// MemoryStore keeps preferences for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string]Theme)}
}

func (m *MemoryStore) Theme(_ context.Context, clientID string) (Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.themes[clientID]; ok {
		return t, nil
	}
	return DefaultTheme, nil
}

func (m *MemoryStore) SetTheme(_ context.Context, clientID string, theme Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[clientID] = theme
	return nil
}
