// Package persistence saves the full item set to a target and reads it back.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"inventory-manager/internal/core"
)

var (
	// ErrWrite is returned when a snapshot could not be written.
	ErrWrite = errors.New("failed to write inventory")
	// ErrSnapshotNotFound is returned when a load target does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrFileNotFound is the file backend's form of ErrSnapshotNotFound.
	ErrFileNotFound = fmt.Errorf("%w: file does not exist", ErrSnapshotNotFound)
	// ErrDeserialization is returned when stored content is not a valid item set.
	ErrDeserialization = errors.New("failed to read inventory data")
)

// Backend stores whole snapshots of the inventory under a named target.
// Save replaces whatever the target held before.
type Backend interface {
	Save(ctx context.Context, target string, items []core.Item) error
	Load(ctx context.Context, target string) ([]core.Item, error)
}

// SnapshotLister is implemented by backends that can enumerate saved snapshots.
type SnapshotLister interface {
	ListSnapshots(ctx context.Context) ([]string, error)
}

// record is the on-disk shape of one item.
type record struct {
	Name     string  `json:"name" jsonschema:"minLength=1" jsonschema_description:"Unique, case-sensitive item name"`
	Quantity int     `json:"quantity" jsonschema:"minimum=0" jsonschema_description:"Units in stock"`
	Price    float64 `json:"price" jsonschema:"minimum=0" jsonschema_description:"Unit price"`
}

func toRecords(items []core.Item) []record {
	out := make([]record, len(items))
	for i, it := range items {
		out[i] = record{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}
	return out
}

// toItems checks every record against the item invariants.
func toItems(records []record) ([]core.Item, error) {
	out := make([]core.Item, 0, len(records))
	for i, r := range records {
		if err := core.ValidateItem(r.Name, r.Quantity, r.Price); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrDeserialization, i, err)
		}
		out = append(out, core.Item{Name: r.Name, Quantity: r.Quantity, Price: r.Price})
	}
	return out, nil
}
