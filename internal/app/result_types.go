package app

import "inventory-manager/internal/core"

// ItemListResult is returned by ListItems.
type ItemListResult struct {
	Rows   []core.Row
	Total  float64
	Search string
}

// ItemResult is returned by GetItem and UpdateItem.
type ItemResult struct {
	Item core.Item
}

// AddItemResult is returned by AddItem.
type AddItemResult struct {
	Item    core.Item
	Outcome core.Outcome
}

// RemoveItemResult is returned by RemoveItem.
type RemoveItemResult struct {
	Name    string
	Removed bool
}

// ValueReportResult is returned by ValueReport.
type ValueReportResult struct {
	Rows       []core.Row
	GrandTotal float64
}

// LowStockResult is returned by LowStockReport.
type LowStockResult struct {
	Rows      []core.LowStockRow
	Threshold int
}

// PersistResult is returned by Save and Load.
type PersistResult struct {
	Target    string
	ItemCount int
}

// StatusResult is returned by Status.
type StatusResult struct {
	ItemCount     int
	TotalValue    float64
	Dirty         bool
	CurrentTarget string
	DefaultTarget string
	AgentEnabled  bool
}

// AIResult is returned by InterpretCommand.
type AIResult struct {
	Proposal             *core.Proposal
	ClarificationMessage string
	IsClarification      bool
}

// ProposalResult is returned by ExecuteProposal. Only the fields relevant to
// the proposal's action are set.
type ProposalResult struct {
	Action   core.ProposalAction
	Add      *AddItemResult
	Update   *ItemResult
	Remove   *RemoveItemResult
	Items    *ItemListResult
	Value    *ValueReportResult
	LowStock *LowStockResult
}
