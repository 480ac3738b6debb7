// Package tui is a full-screen table view of the inventory built on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inventory-manager/internal/adapters/display"
	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
)

type mode int

const (
	modeTable mode = iota
	modeSearch
	modeForm
	modeConfirm
	modeReport
)

// confirmation is a pending yes/no question. onCancel is only offered when set.
type confirmation struct {
	question string
	onYes    func(m *Model) tea.Cmd
	onNo     func(m *Model) tea.Cmd
	onCancel func(m *Model) tea.Cmd
}

// Model is the bubbletea model of the table view.
type Model struct {
	ctx      context.Context
	svc      app.ApplicationService
	currency string
	styles   Styles

	width  int
	height int
	mode   mode

	table   table.Model
	search  textinput.Model
	sortKey core.SortKey
	desc    bool
	total   float64
	count   int

	form      [3]textinput.Model
	formFocus int
	editing   string // name of the item being edited; empty when adding

	confirm *confirmation
	report  string

	message string
	isError bool
}

var formLabels = [3]string{"Name", "Quantity", "Price"}

// New returns a Model showing the current inventory.
func New(ctx context.Context, svc app.ApplicationService, currency string) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 30},
			{Title: "Qty", Width: 10},
			{Title: "Price", Width: 14},
			{Title: "Value", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	si := textinput.New()
	si.Placeholder = "Search by name..."
	si.CharLimit = 60
	si.Width = 40

	var form [3]textinput.Model
	for i := range form {
		form[i] = textinput.New()
		form[i].Prompt = ""
		form[i].CharLimit = 80
		form[i].Width = 30
	}

	m := Model{
		ctx:      ctx,
		svc:      svc,
		currency: currency,
		styles:   DefaultStyles(),
		table:    t,
		search:   si,
		sortKey:  core.SortByName,
		form:     form,
	}
	m.refresh()
	return m
}

// Run starts the full-screen program and blocks until it exits.
func Run(ctx context.Context, svc app.ApplicationService, currency string) error {
	_, err := tea.NewProgram(New(ctx, svc, currency), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		if h := msg.Height - 12; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeReport:
			m.mode = modeTable
			m.report = ""
			return m, nil
		}
		return m.updateTable(msg)
	}

	if m.mode == modeTable {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()

	case "esc":
		// Clearing the search resets the view.
		m.search.SetValue("")
		m.refresh()
		return m, nil

	case "1", "2", "3", "4":
		keys := map[string]core.SortKey{"1": core.SortByName, "2": core.SortByQuantity, "3": core.SortByPrice, "4": core.SortByValue}
		m.sortKey = keys[msg.String()]
		m.refresh()
		return m, nil

	case "r":
		m.desc = !m.desc
		m.refresh()
		return m, nil

	case "a":
		return m, m.openForm("", [3]string{})

	case "e", "enter":
		name := m.selectedName()
		if name == "" {
			return m, nil
		}
		res, err := m.svc.GetItem(m.ctx, name)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		it := res.Item
		return m, m.openForm(it.Name, [3]string{it.Name, strconv.Itoa(it.Quantity), strconv.FormatFloat(it.Price, 'f', -1, 64)})

	case "d", "delete":
		name := m.selectedName()
		if name == "" {
			return m, nil
		}
		m.ask(&confirmation{
			question: fmt.Sprintf("Delete %q?", name),
			onYes: func(m *Model) tea.Cmd {
				if _, err := m.svc.RemoveItem(m.ctx, name); err != nil {
					m.setError(err)
					return nil
				}
				m.setInfo("Deleted " + name + ".")
				return nil
			},
		})
		return m, nil

	case "v":
		res, err := m.svc.ValueReport(m.ctx)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		var sb strings.Builder
		display.New(&sb, m.currency).ValueReport(res)
		m.report = sb.String()
		m.mode = modeReport
		return m, nil

	case "l":
		res, err := m.svc.LowStockReport(m.ctx, -1)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		var sb strings.Builder
		display.New(&sb, m.currency).LowStock(res)
		m.report = sb.String()
		m.mode = modeReport
		return m, nil

	case "s":
		m.save()
		return m, nil

	case "q":
		status, err := m.svc.Status(m.ctx)
		if err != nil || !status.Dirty {
			return m, tea.Quit
		}
		m.ask(&confirmation{
			question: "Save changes before exiting?",
			onYes: func(m *Model) tea.Cmd {
				if !m.save() {
					return nil
				}
				return tea.Quit
			},
			onNo:     func(*Model) tea.Cmd { return tea.Quit },
			onCancel: func(*Model) tea.Cmd { return nil },
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeTable
		m.search.Blur()
		m.refresh()
		return m, nil
	case "esc":
		m.mode = modeTable
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filtering on each keystroke.
	m.refresh()
	return m, cmd
}

func (m *Model) openForm(editing string, values [3]string) tea.Cmd {
	m.mode = modeForm
	m.editing = editing
	m.formFocus = 0
	for i := range m.form {
		m.form[i].SetValue(values[i])
		m.form[i].CursorEnd()
		m.form[i].Blur()
	}
	return m.form[0].Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTable
		m.setInfo("Cancelled.")
		return m, nil
	case "tab", "down":
		return m, m.focusField((m.formFocus + 1) % len(m.form))
	case "shift+tab", "up":
		return m, m.focusField((m.formFocus + len(m.form) - 1) % len(m.form))
	case "enter":
		if m.formFocus < len(m.form)-1 {
			return m, m.focusField(m.formFocus + 1)
		}
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.form[m.formFocus].Blur()
	m.formFocus = i
	return m.form[i].Focus()
}

func (m *Model) submitForm() tea.Cmd {
	in, err := app.ParseItemInput(m.form[0].Value(), m.form[1].Value(), m.form[2].Value())
	if err != nil {
		// Stay in the form so the user can fix the value.
		m.setError(err)
		return nil
	}

	if m.editing != "" {
		res, err := m.svc.UpdateItem(m.ctx, app.UpdateItemRequest{OldName: m.editing, NewName: in.Name, Quantity: in.Quantity, Price: in.Price})
		if err != nil {
			m.setError(err)
			return nil
		}
		m.mode = modeTable
		m.refresh()
		m.setInfo(fmt.Sprintf("Updated %s.", res.Item.Name))
		return nil
	}

	m.mode = modeTable
	existing, err := m.svc.GetItem(m.ctx, in.Name)
	if err == nil {
		it := existing.Item
		m.ask(&confirmation{
			question: fmt.Sprintf("%q already exists (qty %d @ %s). Add %d and set price to %s?",
				it.Name, it.Quantity, display.Money(m.currency, it.Price), in.Quantity, display.Money(m.currency, in.Price)),
			onYes: func(m *Model) tea.Cmd {
				m.add(in, core.AlwaysMerge)
				return nil
			},
			onNo: func(m *Model) tea.Cmd {
				m.setInfo(it.Name + " left unchanged.")
				return nil
			},
		})
		return nil
	}
	m.add(in, nil)
	return nil
}

func (m *Model) add(in app.ItemInput, confirm core.MergeConfirmer) {
	res, err := m.svc.AddItem(m.ctx, app.AddItemRequest{Name: in.Name, Quantity: in.Quantity, Price: in.Price, Confirm: confirm})
	if err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	switch res.Outcome {
	case core.OutcomeMerged:
		m.setInfo(fmt.Sprintf("Updated %s: qty now %d.", res.Item.Name, res.Item.Quantity))
	case core.OutcomeAdded:
		m.setInfo("Added " + res.Item.Name + ".")
	default:
		m.setInfo(res.Item.Name + " left unchanged.")
	}
}

func (m *Model) ask(c *confirmation) {
	m.confirm = c
	m.mode = modeConfirm
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.confirm
	var next func(*Model) tea.Cmd
	switch strings.ToLower(msg.String()) {
	case "y":
		next = c.onYes
	case "n":
		next = c.onNo
		if next == nil {
			next = func(m *Model) tea.Cmd { m.setInfo("Cancelled."); return nil }
		}
	case "esc", "c":
		next = c.onCancel
		if next == nil {
			next = c.onNo
		}
		if next == nil {
			next = func(m *Model) tea.Cmd { m.setInfo("Cancelled."); return nil }
		}
	default:
		return m, nil
	}

	m.confirm = nil
	m.mode = modeTable
	cmd := next(&m)
	m.refresh()
	return m, cmd
}

// save writes to the current target and reports whether it succeeded.
func (m *Model) save() bool {
	res, err := m.svc.Save(m.ctx, "")
	if err != nil {
		m.setError(err)
		return false
	}
	m.setInfo(fmt.Sprintf("Saved %d item(s) to %s.", res.ItemCount, res.Target))
	return true
}

func (m *Model) selectedName() string {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

// refresh reloads the rows from the service with the current search and sort.
func (m *Model) refresh() {
	res, err := m.svc.ListItems(m.ctx, app.ListItemsRequest{Search: m.search.Value(), Sort: m.sortKey, Descending: m.desc})
	if err != nil {
		m.setError(err)
		return
	}
	rows := make([]table.Row, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, table.Row{
			r.Name,
			strconv.Itoa(r.Quantity),
			display.Money(m.currency, r.Price),
			display.Money(m.currency, r.LineValue),
		})
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
	m.total = res.Total
	m.count = len(res.Rows)
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

func (m *Model) setInfo(s string) {
	m.message = s
	m.isError = false
}
