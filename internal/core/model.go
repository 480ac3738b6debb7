package core

// ProposalAction is the kind of inventory operation a Proposal asks for.
type ProposalAction string

const (
	ActionAdd            ProposalAction = "add"
	ActionUpdate         ProposalAction = "update"
	ActionRemove         ProposalAction = "remove"
	ActionSearch         ProposalAction = "search"
	ActionValueReport    ProposalAction = "value_report"
	ActionLowStockReport ProposalAction = "low_stock_report"
	ActionClarify        ProposalAction = "clarify"
)

// Proposal is an inventory operation interpreted from free text. It is never
// executed without explicit user approval.
type Proposal struct {
	Action        ProposalAction `json:"action" jsonschema:"enum=add,enum=update,enum=remove,enum=search,enum=value_report,enum=low_stock_report,enum=clarify" jsonschema_description:"The inventory operation to perform. Use 'clarify' when the request is ambiguous."`
	Name          string         `json:"name" jsonschema_description:"Exact name of the item the operation targets. Empty for reports and search."`
	NewName       string         `json:"new_name" jsonschema_description:"For 'update' only: the item's new name, or the same name when it is not being renamed."`
	Quantity      int            `json:"quantity" jsonschema_description:"For 'add' the quantity to add; for 'update' the new total quantity. Never negative."`
	Price         float64        `json:"price" jsonschema_description:"Unit price for 'add' and 'update'. Never negative."`
	SearchTerm    string         `json:"search_term" jsonschema_description:"For 'search' only: text to look for in item names."`
	Threshold     int            `json:"threshold" jsonschema_description:"For 'low_stock_report' only: items with quantity below this are listed. Use 10 if unspecified."`
	Clarification string         `json:"clarification" jsonschema_description:"For 'clarify' only: the question to ask the user."`
	Confidence    float64        `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning     string         `json:"reasoning" jsonschema_description:"Short explanation of how the request was interpreted"`
}
