package core

import (
	"fmt"
	"math"
	"sort"
)

// Store is the in-memory inventory keyed by item name.
//
// Every mutator validates before it touches the map, so a failed call leaves
// the store exactly as it was. Store is not safe for concurrent use; callers
// that share one across goroutines must serialize access.
type Store struct {
	items map[string]Item
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]Item)}
}

// Add inserts a new item, or merges into the existing item of the same name
// when confirm approves it. A merge adds quantity and replaces the price.
// A nil confirm declines every merge.
func (s *Store) Add(name string, quantity int, price float64, confirm MergeConfirmer) (Outcome, error) {
	if err := ValidateItem(name, quantity, price); err != nil {
		return OutcomeUnchanged, err
	}

	existing, ok := s.items[name]
	if !ok {
		item := Item{Name: name, Quantity: quantity, Price: price}
		if err := s.checkTotal(name, item); err != nil {
			return OutcomeUnchanged, err
		}
		s.items[name] = item
		return OutcomeAdded, nil
	}

	if confirm == nil || !confirm(existing) {
		return OutcomeUnchanged, nil
	}

	if quantity > math.MaxInt-existing.Quantity {
		return OutcomeUnchanged, fmt.Errorf("%w: merged quantity for %q is out of range", ErrValidation, name)
	}
	merged := Item{Name: name, Quantity: existing.Quantity + quantity, Price: price}
	if err := ValidateItem(merged.Name, merged.Quantity, merged.Price); err != nil {
		return OutcomeUnchanged, err
	}
	if err := s.checkTotal(name, merged); err != nil {
		return OutcomeUnchanged, err
	}
	s.items[name] = merged
	return OutcomeMerged, nil
}

// Update replaces quantity and price of oldName and, when newName differs,
// moves the record to the new key. Renaming onto a name held by another item
// fails with ErrConflict.
func (s *Store) Update(oldName, newName string, quantity int, price float64) error {
	if err := ValidateItem(newName, quantity, price); err != nil {
		return err
	}
	if _, ok := s.items[oldName]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, oldName)
	}

	if newName != oldName {
		if _, taken := s.items[newName]; taken {
			return fmt.Errorf("%w: cannot rename %q to %q", ErrConflict, oldName, newName)
		}
	}

	item := Item{Name: newName, Quantity: quantity, Price: price}
	if err := s.checkTotal(oldName, item); err != nil {
		return err
	}
	delete(s.items, oldName)
	s.items[newName] = item
	return nil
}

// Remove deletes name and reports whether it was present.
func (s *Store) Remove(name string) bool {
	if _, ok := s.items[name]; !ok {
		return false
	}
	delete(s.items, name)
	return true
}

// Get returns a copy of the named item.
func (s *Store) Get(name string) (Item, bool) {
	item, ok := s.items[name]
	return item, ok
}

// List returns a snapshot of all items ordered by name.
func (s *Store) List() []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.items = make(map[string]Item)
}

// Replace swaps the whole contents for items, keyed by name with the last
// record winning on duplicates. All records are validated first; if any is
// invalid the store is left untouched.
func (s *Store) Replace(items []Item) error {
	for i, item := range items {
		if err := ValidateItem(item.Name, item.Quantity, item.Price); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	next := make(map[string]Item, len(items))
	for _, item := range items {
		next[item.Name] = item
	}
	if math.IsInf(totalValue(next), 0) {
		return fmt.Errorf("%w: total inventory value is out of range", ErrValidation)
	}
	s.items = next
	return nil
}

// checkTotal rejects a write of item in place of the record at key when it
// would push the total inventory value out of float64 range.
func (s *Store) checkTotal(key string, item Item) error {
	total := item.LineValue()
	for name, it := range s.items {
		if name != key {
			total += it.LineValue()
		}
	}
	if math.IsInf(total, 0) {
		return fmt.Errorf("%w: total inventory value is out of range", ErrValidation)
	}
	return nil
}

func totalValue(items map[string]Item) float64 {
	var total float64
	for _, it := range items {
		total += it.LineValue()
	}
	return total
}
