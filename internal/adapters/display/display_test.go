package display_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"inventory-manager/internal/adapters/display"
	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12.50", display.Money("$", 12.5))
	assert.Equal(t, "$0.00", display.Money("$", 0))
	assert.Equal(t, "€0.30", display.Money("€", 0.1+0.2))
	assert.Equal(t, "-$1.25", display.Money("$", -1.25))
	assert.Equal(t, "1234567.89", display.Money("", 1234567.891))
	assert.Equal(t, "overflow", display.Money("$", math.Inf(1)))
	assert.Equal(t, "overflow", display.Money("$", math.NaN()))
}

func TestItems(t *testing.T) {
	var buf bytes.Buffer
	p := display.New(&buf, "$")

	p.Items(&app.ItemListResult{
		Rows:  []core.Row{{Name: "Widget", Quantity: 5, Price: 2.5, LineValue: 12.5}},
		Total: 12.5,
	})

	out := buf.String()
	assert.Contains(t, out, "INVENTORY")
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "$2.50")
	assert.Contains(t, out, "$12.50")
	assert.Contains(t, out, "TOTAL")
}

func TestItems_EmptySearch(t *testing.T) {
	var buf bytes.Buffer
	display.New(&buf, "$").Items(&app.ItemListResult{Search: "zzz"})
	assert.Contains(t, buf.String(), "No items match.")
	assert.Contains(t, buf.String(), `search: "zzz"`)
}

func TestValueReport(t *testing.T) {
	var buf bytes.Buffer
	display.New(&buf, "$").ValueReport(&app.ValueReportResult{
		Rows:       []core.Row{{Name: "A", Quantity: 3, Price: 1, LineValue: 3}},
		GrandTotal: 3,
	})
	assert.Contains(t, buf.String(), "Grand Total Inventory Value: $3.00")
}

func TestLowStock(t *testing.T) {
	var buf bytes.Buffer
	display.New(&buf, "$").LowStock(&app.LowStockResult{
		Threshold: 10,
		Rows:      []core.LowStockRow{{Name: "A", Quantity: 5, ReorderSuggested: true}},
	})
	out := buf.String()
	assert.Contains(t, out, "quantity below 10")
	assert.Contains(t, out, "Yes")
	assert.Contains(t, out, "Total Low Stock Items: 1")
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	display.New(&buf, "$").Status(&app.StatusResult{ItemCount: 2, TotalValue: 4, Dirty: true, DefaultTarget: "inventory.inv"})
	out := buf.String()
	assert.Contains(t, out, "inventory.inv (default)")
	assert.Contains(t, out, "unsaved changes")
}

func TestAddOutcome(t *testing.T) {
	var buf bytes.Buffer
	p := display.New(&buf, "$")
	p.AddOutcome(&app.AddItemResult{Item: core.Item{Name: "Widget", Quantity: 8, Price: 3}, Outcome: core.OutcomeMerged})
	assert.Contains(t, buf.String(), "Updated Widget: qty now 8 @ $3.00.")
}
