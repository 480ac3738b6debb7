package repl

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
	"inventory-manager/internal/persistence"
)

type stubInterpreter struct {
	proposal *core.Proposal
}

func (s *stubInterpreter) InterpretCommand(context.Context, string, string) (*core.Proposal, error) {
	p := *s.proposal
	return &p, nil
}

func newTestService(t *testing.T, opts app.Options) (app.ApplicationService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stock.inv")
	opts.DataFile = path
	opts.NormalizeTarget = persistence.NormalizeTarget
	return app.NewAppService(core.NewStore(), persistence.NewFileBackend(), opts), path
}

func run(t *testing.T, svc app.ApplicationService, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(script, "\n") + "\n"))
	Run(context.Background(), svc, reader, &out, "$")
	return out.String()
}

func TestRun_AddListAndExit(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})

	out := run(t, svc,
		"/add Hex Bolt 5 2.50",
		"/list",
		"/exit",
		"n",
	)

	assert.Contains(t, out, "Added Hex Bolt (qty 5 @ $2.50).")
	assert.Contains(t, out, "$12.50")
	assert.Contains(t, out, "Save changes before exiting?")
	assert.Contains(t, out, "Goodbye!")
}

func TestRun_AddWizardMerge(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})

	run(t, svc,
		"/add Widget 5 2.50",
		"/add",
		"Widget",
		"3",
		"3.00",
		"y",
	)

	res, err := svc.GetItem(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, 8, res.Item.Quantity)
	assert.Equal(t, 3.0, res.Item.Price)
}

func TestRun_InvalidInputDoesNotMutate(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})

	out := run(t, svc, "/add Widget five 2.50", "/add Widget 5 -1")

	assert.Contains(t, out, "quantity must be a whole number")
	assert.Contains(t, out, "price cannot be negative")
	status, _ := svc.Status(context.Background())
	assert.Equal(t, 0, status.ItemCount)
}

func TestRun_UpdateWizardKeepsDefaults(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})

	run(t, svc,
		"/add Widget 5 2.50",
		"/update Widget",
		"",
		"9",
		"",
	)

	res, err := svc.GetItem(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, core.Item{Name: "Widget", Quantity: 9, Price: 2.5}, res.Item)
}

func TestRun_UpdateRenameConflict(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})

	out := run(t, svc,
		"/add Widget 5 2.50",
		"/add Sprocket 1 1",
		"/update Widget",
		"Sprocket",
		"",
		"",
	)

	assert.Contains(t, out, "already exists")
	_, err := svc.GetItem(context.Background(), "Widget")
	assert.NoError(t, err)
}

func TestRun_DeleteNeedsConfirmation(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})

	out := run(t, svc,
		"/add Widget 5 2.50",
		"/delete Widget",
		"n",
		"/delete Widget",
		"y",
		"/delete Widget",
	)

	assert.Contains(t, out, "Delete cancelled.")
	assert.Contains(t, out, "Deleted Widget.")
	assert.Contains(t, out, "item not found")
}

func TestRun_Reports(t *testing.T) {
	svc, _ := newTestService(t, app.Options{LowStockThreshold: 10})

	out := run(t, svc,
		"/add A 5 1",
		"/add B 15 2",
		"/value",
		"/low",
		"/low lots",
	)

	assert.Contains(t, out, "Grand Total Inventory Value: $35.00")
	assert.Contains(t, out, "Total Low Stock Items: 1")
	assert.Contains(t, out, `Invalid threshold "lots", using 10.`)
}

func TestRun_SaveAndLoad(t *testing.T) {
	svc, path := newTestService(t, app.Options{})

	out := run(t, svc,
		"/add Widget 5 2.50",
		"/save",
		"/add Gadget 1 1",
		"/load",
		"y",
		"/list",
	)

	assert.Contains(t, out, "Saved 1 item(s) to "+path)
	assert.Contains(t, out, "You have unsaved changes. Load anyway?")
	assert.Contains(t, out, "Loaded 1 item(s)")
	_, err := os.Stat(path)
	assert.NoError(t, err)

	_, err = svc.GetItem(context.Background(), "Gadget")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRun_ExitSaveOrCancel(t *testing.T) {
	svc, path := newTestService(t, app.Options{})

	out := run(t, svc,
		"/add Widget 5 2.50",
		"/exit",
		"cancel",
		"/status",
		"/exit",
		"y",
	)

	assert.Contains(t, out, "Exit cancelled.")
	assert.Contains(t, out, "unsaved changes")
	assert.Contains(t, out, "Saved 1 item(s) to "+path)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRun_NaturalLanguageWithoutAgent(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})
	out := run(t, svc, "add five widgets")
	assert.Contains(t, out, "need OPENAI_API_KEY")
}

func TestRun_NaturalLanguageApproval(t *testing.T) {
	stub := &stubInterpreter{proposal: &core.Proposal{Action: core.ActionAdd, Name: "Widget", Quantity: 5, Price: 2.5, Confidence: 0.9}}
	svc, _ := newTestService(t, app.Options{Agent: stub})

	out := run(t, svc,
		"add five widgets at 2.50",
		"n",
		"add five widgets at 2.50",
		"y",
	)

	assert.Contains(t, out, "Change cancelled.")
	assert.Contains(t, out, "Added Widget")
	status, _ := svc.Status(context.Background())
	assert.Equal(t, 1, status.ItemCount)
}

func TestRun_NaturalLanguageReadRunsDirectly(t *testing.T) {
	stub := &stubInterpreter{proposal: &core.Proposal{Action: core.ActionValueReport}}
	svc, _ := newTestService(t, app.Options{Agent: stub})

	out := run(t, svc, "what is everything worth?")

	assert.Contains(t, out, "INVENTORY VALUE REPORT")
	assert.NotContains(t, out, "Approve")
}

func TestRun_SortAndSearch(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})

	out := run(t, svc,
		"/add Alpha 1 1",
		"/add Beta 9 1",
		"/sort qty desc",
	)
	table := out[strings.Index(out, "INVENTORY"):]
	assert.Less(t, strings.Index(table, "Beta"), strings.Index(table, "Alpha"), "descending quantity puts Beta first")

	out = run(t, svc, "/search alp")
	assert.Contains(t, out, `search: "alp"`)
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "Beta")
}

func TestRun_HelpAndAbout(t *testing.T) {
	svc, _ := newTestService(t, app.Options{})
	out := run(t, svc, "/help", "/about", "/bogus")
	assert.Contains(t, out, "/low [threshold]")
	assert.Contains(t, out, "Inventory Management System v1.0")
	assert.Contains(t, out, "Unknown command: /bogus")
}
