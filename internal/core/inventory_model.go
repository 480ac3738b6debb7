package core

// Item is one inventory line. Items are values: the store hands out copies,
// so a caller can never mutate a record behind the store's back.
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"` // unit price
}

// LineValue is quantity × unit price. It is derived on demand and never stored.
func (i Item) LineValue() float64 {
	return float64(i.Quantity) * i.Price
}

// Row is a display row produced by the projector.
type Row struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	LineValue float64 `json:"line_value"`
}

// LowStockRow is a row of the low-stock report.
type LowStockRow struct {
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	ReorderSuggested bool   `json:"reorder_suggested"`
}

// Projection is an ordered row set plus the sum of its line values.
type Projection struct {
	Rows  []Row   `json:"rows"`
	Total float64 `json:"total"`
}

// Outcome reports what Add did.
type Outcome int

const (
	// OutcomeAdded means a new item was created.
	OutcomeAdded Outcome = iota
	// OutcomeMerged means the quantity was added to an existing item and its price replaced.
	OutcomeMerged
	// OutcomeUnchanged means the name already existed and the merge was declined.
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeMerged:
		return "merged"
	case OutcomeUnchanged:
		return "unchanged"
	}
	return "unknown"
}

// MergeConfirmer is asked whether an add should merge into the existing item
// of the same name. It receives a copy of the existing item.
type MergeConfirmer func(existing Item) bool

// AlwaysMerge is a MergeConfirmer that accepts every merge.
func AlwaysMerge(Item) bool { return true }
