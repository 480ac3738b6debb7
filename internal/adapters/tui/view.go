package tui

import (
	"fmt"
	"strings"

	"inventory-manager/internal/adapters/display"
	"inventory-manager/internal/core"
)

var sortLabels = map[core.SortKey]string{
	core.SortByName:     "name",
	core.SortByQuantity: "qty",
	core.SortByPrice:    "price",
	core.SortByValue:    "value",
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" " + display.AboutText + " "))
	sb.WriteString("\n\n")

	if m.mode == modeReport {
		sb.WriteString(m.report)
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("Press any key to return."))
		return sb.String()
	}

	searchStyle := m.styles.Input
	if m.mode == modeSearch {
		searchStyle = m.styles.Focused
	}
	sb.WriteString(searchStyle.Render(m.search.View()))
	dir := "asc"
	if m.desc {
		dir = "desc"
	}
	sb.WriteString("  ")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("sort: %s %s", sortLabels[m.sortKey], dir)))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Content.Render(m.table.View()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Total.Render(fmt.Sprintf("%d item(s)   Total: %s", m.count, display.Money(m.currency, m.total))))
	sb.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		sb.WriteString(m.renderForm())
	case modeConfirm:
		q := m.confirm.question + " (y/n)"
		if m.confirm.onCancel != nil {
			q = m.confirm.question + " (y/n/esc)"
		}
		sb.WriteString(m.styles.Prompt.Render(q))
		sb.WriteString("\n")
	}

	if m.message != "" {
		style := m.styles.Info
		if m.isError {
			style = m.styles.Error
		}
		sb.WriteString(style.Render(m.message))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Muted.Render("[/] search  [1-4] sort  [r] reverse  [a] add  [e] edit  [d] delete  [v] value  [l] low stock  [s] save  [q] quit"))
	return sb.String()
}

func (m Model) renderForm() string {
	var sb strings.Builder
	title := "Add item"
	if m.editing != "" {
		title = "Edit " + m.editing
	}
	sb.WriteString(m.styles.Total.Render(title))
	sb.WriteString("\n")
	for i, in := range m.form {
		style := m.styles.Input
		if i == m.formFocus {
			style = m.styles.Focused
		}
		sb.WriteString(fmt.Sprintf("%-9s", formLabels[i]))
		sb.WriteString(style.Render(in.View()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render("[tab] next field  [enter] save  [esc] cancel"))
	sb.WriteString("\n")
	return sb.String()
}
