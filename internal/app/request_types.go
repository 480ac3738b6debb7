package app

import "inventory-manager/internal/core"

// ListItemsRequest is the input for ListItems.
type ListItemsRequest struct {
	Search     string
	Sort       core.SortKey
	Descending bool
}

// AddItemRequest is the input for adding an item.
type AddItemRequest struct {
	Name     string
	Quantity int
	Price    float64
	// Confirm is asked before merging into an existing item of the same name.
	// Nil means never merge.
	Confirm core.MergeConfirmer
}

// UpdateItemRequest is the input for changing an item. NewName may equal
// OldName; an empty NewName keeps the old name.
type UpdateItemRequest struct {
	OldName  string
	NewName  string
	Quantity int
	Price    float64
}

// PatchItemRequest changes only the fields that are set; nil keeps the
// item's current value.
type PatchItemRequest struct {
	Name     string
	NewName  *string
	Quantity *int
	Price    *float64
}
