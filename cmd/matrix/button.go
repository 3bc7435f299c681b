package main

import "sync"

// button is a pulse target: the pulser adds and removes presentation classes on it
type button struct {
	label string

	mu      sync.Mutex
	classes map[string]bool
}

func newButton(label string) *button {
	return &button{label: label, classes: make(map[string]bool)}
}

func (b *button) AddClass(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.classes[name] = true
}

func (b *button) RemoveClass(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.classes, name)
}

func (b *button) has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.classes[name]
}
