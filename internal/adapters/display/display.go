// Package display renders inventory results as fixed-width text tables.
// It is shared by the REPL and the one-shot CLI.
package display

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
)

// AboutText is shown by the about command.
const AboutText = "Inventory Management System v1.0"

const nameWidth = 28

// Money formats an amount with two decimals and the currency symbol.
// Values outside float64 range render as "overflow".
func Money(symbol string, v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "overflow"
	}
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// Printer writes tables to Out.
type Printer struct {
	Out      io.Writer
	Currency string
}

func New(out io.Writer, currency string) *Printer {
	return &Printer{Out: out, Currency: currency}
}

// Money formats v with the printer's currency symbol.
func (p *Printer) Money(v float64) string {
	return Money(p.Currency, v)
}

func (p *Printer) rule(ch string, n int) {
	fmt.Fprintln(p.Out, strings.Repeat(ch, n))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Items prints the inventory table with its total.
func (p *Printer) Items(res *app.ItemListResult) {
	const width = 72
	fmt.Fprintln(p.Out)
	p.rule("=", width)
	title := "INVENTORY"
	if res.Search != "" {
		title = fmt.Sprintf("INVENTORY  (search: %q)", res.Search)
	}
	fmt.Fprintf(p.Out, "  %s\n", title)
	p.rule("=", width)
	if len(res.Rows) == 0 {
		if res.Search != "" {
			fmt.Fprintln(p.Out, "  No items match.")
		} else {
			fmt.Fprintln(p.Out, "  No items in inventory.")
		}
		p.rule("=", width)
		return
	}
	fmt.Fprintf(p.Out, "  %-*s %10s %13s %15s\n", nameWidth, "NAME", "QTY", "PRICE", "VALUE")
	p.rule("-", width)
	for _, r := range res.Rows {
		fmt.Fprintf(p.Out, "  %-*s %10d %13s %15s\n", nameWidth, clip(r.Name, nameWidth), r.Quantity, p.Money(r.Price), p.Money(r.LineValue))
	}
	p.rule("-", width)
	fmt.Fprintf(p.Out, "  %-*s %10s %13s %15s\n", nameWidth, fmt.Sprintf("%d item(s)", len(res.Rows)), "", "TOTAL", p.Money(res.Total))
	p.rule("=", width)
}

// Item prints a single item.
func (p *Printer) Item(it core.Item) {
	fmt.Fprintf(p.Out, "  Name:     %s\n", it.Name)
	fmt.Fprintf(p.Out, "  Quantity: %d\n", it.Quantity)
	fmt.Fprintf(p.Out, "  Price:    %s\n", p.Money(it.Price))
	fmt.Fprintf(p.Out, "  Value:    %s\n", p.Money(it.LineValue()))
}

// ValueReport prints every item's value and the grand total.
func (p *Printer) ValueReport(res *app.ValueReportResult) {
	const width = 72
	fmt.Fprintln(p.Out)
	p.rule("=", width)
	fmt.Fprintln(p.Out, "  INVENTORY VALUE REPORT")
	p.rule("=", width)
	if len(res.Rows) == 0 {
		fmt.Fprintln(p.Out, "  No items in inventory.")
	} else {
		fmt.Fprintf(p.Out, "  %-*s %10s %13s %15s\n", nameWidth, "NAME", "QTY", "PRICE", "TOTAL VALUE")
		p.rule("-", width)
		for _, r := range res.Rows {
			fmt.Fprintf(p.Out, "  %-*s %10d %13s %15s\n", nameWidth, clip(r.Name, nameWidth), r.Quantity, p.Money(r.Price), p.Money(r.LineValue))
		}
		p.rule("-", width)
	}
	fmt.Fprintf(p.Out, "  Grand Total Inventory Value: %s\n", p.Money(res.GrandTotal))
	p.rule("=", width)
}

// LowStock prints the low-stock report and its summary count.
func (p *Printer) LowStock(res *app.LowStockResult) {
	const width = 60
	fmt.Fprintln(p.Out)
	p.rule("=", width)
	fmt.Fprintf(p.Out, "  LOW STOCK REPORT (quantity below %d)\n", res.Threshold)
	p.rule("=", width)
	if len(res.Rows) == 0 {
		fmt.Fprintln(p.Out, "  No items are low on stock.")
	} else {
		fmt.Fprintf(p.Out, "  %-*s %10s  %s\n", nameWidth, "NAME", "QTY", "REORDER SUGGESTED")
		p.rule("-", width)
		for _, r := range res.Rows {
			reorder := "No"
			if r.ReorderSuggested {
				reorder = "Yes"
			}
			fmt.Fprintf(p.Out, "  %-*s %10d  %s\n", nameWidth, clip(r.Name, nameWidth), r.Quantity, reorder)
		}
		p.rule("-", width)
	}
	fmt.Fprintf(p.Out, "  Total Low Stock Items: %d\n", len(res.Rows))
	p.rule("=", width)
}

// Status prints the save state summary.
func (p *Printer) Status(res *app.StatusResult) {
	target := res.CurrentTarget
	if target == "" {
		target = res.DefaultTarget + " (default)"
	}
	saved := "all changes saved"
	if res.Dirty {
		saved = "unsaved changes"
	}
	fmt.Fprintf(p.Out, "  Items:       %d\n", res.ItemCount)
	fmt.Fprintf(p.Out, "  Total value: %s\n", p.Money(res.TotalValue))
	fmt.Fprintf(p.Out, "  Target:      %s\n", target)
	fmt.Fprintf(p.Out, "  State:       %s\n", saved)
}

// Proposal prints an interpreted command awaiting approval.
func (p *Printer) Proposal(pr *core.Proposal) {
	fmt.Fprintf(p.Out, "\nACTION:     %s\n", pr.Action)
	switch pr.Action {
	case core.ActionAdd:
		fmt.Fprintf(p.Out, "ITEM:       %s  qty +%d @ %s\n", pr.Name, pr.Quantity, p.Money(pr.Price))
	case core.ActionUpdate:
		name := pr.Name
		if pr.NewName != "" && pr.NewName != pr.Name {
			name = pr.Name + " -> " + pr.NewName
		}
		fmt.Fprintf(p.Out, "ITEM:       %s  qty %d @ %s\n", name, pr.Quantity, p.Money(pr.Price))
	case core.ActionRemove:
		fmt.Fprintf(p.Out, "ITEM:       %s\n", pr.Name)
	case core.ActionSearch:
		fmt.Fprintf(p.Out, "SEARCH:     %s\n", pr.SearchTerm)
	case core.ActionLowStockReport:
		fmt.Fprintf(p.Out, "THRESHOLD:  %d\n", pr.Threshold)
	}
	fmt.Fprintf(p.Out, "REASONING:  %s\n", pr.Reasoning)
	fmt.Fprintf(p.Out, "CONFIDENCE: %.2f\n", pr.Confidence)
}

// AddOutcome prints the result of an add.
func (p *Printer) AddOutcome(res *app.AddItemResult) {
	switch res.Outcome {
	case core.OutcomeAdded:
		fmt.Fprintf(p.Out, "Added %s (qty %d @ %s).\n", res.Item.Name, res.Item.Quantity, p.Money(res.Item.Price))
	case core.OutcomeMerged:
		fmt.Fprintf(p.Out, "Updated %s: qty now %d @ %s.\n", res.Item.Name, res.Item.Quantity, p.Money(res.Item.Price))
	default:
		fmt.Fprintf(p.Out, "%s left unchanged.\n", res.Item.Name)
	}
}
