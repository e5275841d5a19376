// Package backpack is the loot inventory: a small fixed-capacity bag of items
// with add, remove, list and find. Lookups are plain linear scans by name and
// nothing is measured.
package backpack

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the reference bag size.
const DefaultCapacity = 10

// MaxQuantity bounds the quantity accepted by the console.
const MaxQuantity = 9999

// ErrFull is returned when adding to a full backpack.
var ErrFull = errors.New("backpack is full")

// ErrNotFound is returned when no item has the requested name.
var ErrNotFound = errors.New("item not found")

// Item is one stack of loot.
type Item struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
}

// Backpack holds items in insertion order.
type Backpack struct {
	capacity int
	items    []Item
}

// New creates an empty backpack.
func New(capacity int) (*Backpack, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	return &Backpack{capacity: capacity, items: make([]Item, 0, capacity)}, nil
}

// Len returns the number of items.
func (b *Backpack) Len() int { return len(b.items) }

// Cap returns the capacity.
func (b *Backpack) Cap() int { return b.capacity }

// Add appends item, or returns ErrFull without changing the backpack.
func (b *Backpack) Add(item Item) error {
	if len(b.items) >= b.capacity {
		return fmt.Errorf("%w (%d items)", ErrFull, b.capacity)
	}
	b.items = append(b.items, item)
	return nil
}

// Remove deletes the first item named name, shifting later items left.
func (b *Backpack) Remove(name string) (Item, error) {
	for i, it := range b.items {
		if it.Name == name {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Find returns the first item named name and its position.
func (b *Backpack) Find(name string) (Item, int, error) {
	for i, it := range b.items {
		if it.Name == name {
			return it, i, nil
		}
	}
	return Item{}, -1, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// List returns a copy of the items in insertion order.
func (b *Backpack) List() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}
