package app

import (
	"context"

	"inventory-manager/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI, TUI, Web) call.
// It decouples presentation from inventory logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ListItems returns the item table, optionally filtered by a case-insensitive
	// name search and sorted by the requested column.
	ListItems(ctx context.Context, req ListItemsRequest) (*ItemListResult, error)

	// GetItem returns a single item. Absent names wrap core.ErrNotFound.
	GetItem(ctx context.Context, name string) (*ItemResult, error)

	// AddItem adds a new item, or merges into an existing one when req.Confirm
	// approves it. A declined merge returns OutcomeUnchanged and no error.
	AddItem(ctx context.Context, req AddItemRequest) (*AddItemResult, error)

	// UpdateItem replaces an item's values, renaming it when NewName differs.
	// Renaming onto an existing item wraps core.ErrConflict.
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*ItemResult, error)

	// PatchItem is UpdateItem with unset fields taken from the current item,
	// read and written in one step.
	PatchItem(ctx context.Context, req PatchItemRequest) (*ItemResult, error)

	// RemoveItem deletes an item. Removing an absent name is not an error;
	// the result reports whether anything was removed.
	RemoveItem(ctx context.Context, name string) (*RemoveItemResult, error)

	// ValueReport returns every item with its line value and the grand total.
	ValueReport(ctx context.Context) (*ValueReportResult, error)

	// LowStockReport lists items whose quantity is below threshold.
	// A negative threshold selects the configured default.
	LowStockReport(ctx context.Context, threshold int) (*LowStockResult, error)

	// Save writes the whole inventory to target. An empty target falls back to
	// the current target and then to the configured data file.
	Save(ctx context.Context, target string) (*PersistResult, error)

	// Load replaces the whole inventory with the snapshot at target, using the
	// same fallback as Save. On failure the inventory is left untouched.
	Load(ctx context.Context, target string) (*PersistResult, error)

	// Status reports item count, total value, unsaved changes and the current target.
	Status(ctx context.Context) (*StatusResult, error)

	// InterpretCommand sends a free-text request to the command interpreter and
	// returns either a proposal or a clarification question. Returns
	// ai.ErrAgentUnavailable when no interpreter is configured.
	InterpretCommand(ctx context.Context, text string) (*AIResult, error)

	// ExecuteProposal runs an interpreted proposal. Write proposals must only be
	// executed after explicit user approval. An approved add merges into an
	// existing item.
	ExecuteProposal(ctx context.Context, proposal core.Proposal) (*ProposalResult, error)
}
