// Package theme tracks the light/dark preference and the decorative classes layered on it.
package theme

import (
	"fmt"
	"strings"
	"sync"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse accepts "light" or "dark", case-insensitively
func Parse(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store persists the single theme flag
type Store interface {
	// Load returns ok=false when nothing was saved
	Load() (t Theme, ok bool, err error)
	Save(t Theme) error
}

// Decorator adds optional presentation on top of the base theme
type Decorator interface {
	Classes(t Theme) []string
}

// DecoratorFunc adapts a function to Decorator
type DecoratorFunc func(Theme) []string

func (f DecoratorFunc) Classes(t Theme) []string { return f(t) }

// Glow enables the hover drop-shadow on cards
var Glow Decorator = DecoratorFunc(func(Theme) []string {
	return []string{"glow-effects"}
})

// SectionTitles enables the terminal typing animation on section headings
var SectionTitles Decorator = DecoratorFunc(func(Theme) []string {
	return []string{"terminal-typing-titles"}
})

// Manager holds the current theme for one client. Build one per client; there is no global.
type Manager struct {
	store      Store
	system     Theme
	decorators []Decorator

	mu      sync.Mutex
	current Theme
	saved   bool
}

// NewManager resolves the starting theme: the stored flag, else the system preference.
// A store error is returned alongside a usable manager.
func NewManager(store Store, system Theme, decorators ...Decorator) (*Manager, error) {
	if _, ok := Parse(string(system)); !ok {
		system = Dark
	}
	m := &Manager{
		store:      store,
		system:     system,
		decorators: decorators,
		current:    system,
	}
	if store == nil {
		return m, nil
	}

	t, ok, err := store.Load()
	if err != nil {
		return m, fmt.Errorf("failed to load theme: %w", err)
	}
	if ok {
		m.current = t
		m.saved = true
	}
	return m, nil
}

// Current returns the active theme
func (m *Manager) Current() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Explicit reports whether the theme came from the store rather than the system preference
func (m *Manager) Explicit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

// SystemChanged follows a system preference change unless the user chose explicitly
func (m *Manager) SystemChanged(t Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.system = t
	if !m.saved {
		m.current = t
	}
}

// Set switches and persists the theme
func (m *Manager) Set(t Theme) error {
	if _, ok := Parse(string(t)); !ok {
		return fmt.Errorf("unknown theme %q", t)
	}
	m.mu.Lock()
	m.current = t
	m.saved = true
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	if err := m.store.Save(t); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle flips between light and dark and persists the result
func (m *Manager) Toggle() (Theme, error) {
	next := m.Current().Opposite()
	return next, m.Set(next)
}

// Classes returns the root element classes: the theme itself plus decorator classes
func (m *Manager) Classes() []string {
	t := m.Current()
	classes := []string{string(t)}
	for _, d := range m.decorators {
		classes = append(classes, d.Classes(t)...)
	}
	return classes
}

// MemoryStore keeps the flag in process, used when nothing durable is available
type MemoryStore struct {
	mu    sync.Mutex
	theme Theme
}

func (s *MemoryStore) Load() (Theme, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, s.theme != "", nil
}

func (s *MemoryStore) Save(t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	return nil
}
