package repl

import (
	"fmt"
	"io"
	"strings"

	"inventory-manager/internal/adapters/display"
	"inventory-manager/internal/app"
)

func printProposalResult(p *display.Printer, out io.Writer, res *app.ProposalResult) {
	switch {
	case res.Add != nil:
		p.AddOutcome(res.Add)
	case res.Update != nil:
		fmt.Fprintf(out, "Updated %s: qty %d @ %s.\n", res.Update.Item.Name, res.Update.Item.Quantity, p.Money(res.Update.Item.Price))
	case res.Remove != nil:
		fmt.Fprintf(out, "Deleted %s.\n", res.Remove.Name)
	case res.Items != nil:
		p.Items(res.Items)
	case res.Value != nil:
		p.ValueReport(res.Value)
	case res.LowStock != nil:
		p.LowStock(res.LowStock)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintln(out, "  COMMANDS")
	fmt.Fprintln(out, strings.Repeat("=", 70))
	rows := [][2]string{
		{"/list [term]", "Show the inventory, optionally filtered"},
		{"/search <term>", "Filter by name (empty term shows everything)"},
		{"/sort <col> [desc]", "Sort by name, qty, price or value"},
		{"/add", "Add an item with a guided form"},
		{"/add <name> <qty> <price>", "Add an item in one line"},
		{"/update <name>", "Edit an item (enter keeps current values)"},
		{"/delete <name>", "Delete an item after confirmation"},
		{"/show <name>", "Show one item"},
		{"/value", "Inventory value report"},
		{"/low [threshold]", "Items below threshold (default 10)"},
		{"/save [path]", "Save to path (.inv is added)"},
		{"/load [path]", "Load from path"},
		{"/status", "Item count, total and save state"},
		{"/about", "About this program"},
		{"/exit", "Quit (offers to save unsaved changes)"},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %-28s %s\n", r[0], r[1])
	}
	fmt.Fprintln(out, strings.Repeat("-", 70))
	fmt.Fprintln(out, "  Anything else is read as a request, e.g. \"add 12 hex bolts at 0.15\".")
	fmt.Fprintln(out, "  Changes are shown for approval before they run.")
	fmt.Fprintln(out, strings.Repeat("=", 70))
}
