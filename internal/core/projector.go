package core

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultLowStockThreshold is used when the caller gives no usable threshold.
const DefaultLowStockThreshold = 10

// ItemLister is the read side of the store the projector works from.
type ItemLister interface {
	List() []Item
}

// SortKey selects the column SortRows orders by.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByQuantity SortKey = "quantity"
	SortByPrice    SortKey = "price"
	SortByValue    SortKey = "value"
)

// ParseSortKey maps user input to a SortKey. Unknown input yields false.
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return SortByName, true
	case "qty", "quantity":
		return SortByQuantity, true
	case "price":
		return SortByPrice, true
	case "value", "total":
		return SortByValue, true
	}
	return SortByName, false
}

// ProjectAll returns one row per item and the total value of all items.
func ProjectAll(src ItemLister) Projection {
	return project(src.List(), func(Item) bool { return true })
}

// ProjectFiltered keeps items whose name contains term, ignoring case.
// A blank term is the same as ProjectAll.
func ProjectFiltered(src ItemLister, term string) Projection {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return ProjectAll(src)
	}
	return project(src.List(), func(i Item) bool {
		return strings.Contains(strings.ToLower(i.Name), term)
	})
}

// ProjectLowStock lists every item whose quantity is below threshold.
func ProjectLowStock(src ItemLister, threshold int) []LowStockRow {
	rows := make([]LowStockRow, 0)
	for _, item := range src.List() {
		if item.Quantity < threshold {
			rows = append(rows, LowStockRow{
				Name:             item.Name,
				Quantity:         item.Quantity,
				ReorderSuggested: true,
			})
		}
	}
	return rows
}

// ProjectValueReport is the read-only report view; its Total is the grand total.
func ProjectValueReport(src ItemLister) Projection {
	return ProjectAll(src)
}

// ParseThreshold reads a low-stock threshold typed by a user. Blank input
// means the default. Non-numeric input also yields the default but reports
// false so the caller can warn.
func ParseThreshold(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLowStockThreshold, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLowStockThreshold, false
	}
	return n, true
}

// SortRows orders rows in place by key. Ties keep their relative order,
// except that equal keys fall back to name so output is deterministic.
func SortRows(rows []Row, key SortKey, descending bool) {
	less := func(a, b Row) bool {
		switch key {
		case SortByQuantity:
			if a.Quantity != b.Quantity {
				return a.Quantity < b.Quantity
			}
		case SortByPrice:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case SortByValue:
			if a.LineValue != b.LineValue {
				return a.LineValue < b.LineValue
			}
		}
		return a.Name < b.Name
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func project(items []Item, keep func(Item) bool) Projection {
	p := Projection{Rows: make([]Row, 0, len(items))}
	for _, item := range items {
		if !keep(item) {
			continue
		}
		value := item.LineValue()
		p.Rows = append(p.Rows, Row{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineValue: value,
		})
		p.Total += value
	}
	return p
}
