package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"appdeck/internal/models"
	"appdeck/internal/ui"
)

// AppList is a scrollable list of discovered applications with an optional
// name filter. The cursor addresses the filtered view, not the full list.
type AppList struct {
	Apps    []models.AppRecord
	Cursor  int
	Width   int
	Height  int
	Focused bool
	Title   string

	filter  string
	visible []int // indexes into Apps matching the filter
}

// NewAppList creates a new app list
func NewAppList(apps []models.AppRecord) *AppList {
	l := &AppList{
		Apps:    apps,
		Width:   44,
		Height:  18,
		Focused: true,
		Title:   "Applications",
	}
	l.refilter()
	return l
}

// SetApps replaces the list contents, keeping the cursor in range.
func (l *AppList) SetApps(apps []models.AppRecord) {
	l.Apps = apps
	l.refilter()
}

// SetFilter applies a case-insensitive name filter.
func (l *AppList) SetFilter(filter string) {
	l.filter = filter
	l.refilter()
}

// Filter returns the active filter text.
func (l *AppList) Filter() string {
	return l.filter
}

func (l *AppList) refilter() {
	needle := strings.ToLower(strings.TrimSpace(l.filter))
	l.visible = l.visible[:0]
	for i, app := range l.Apps {
		if needle == "" || strings.Contains(strings.ToLower(app.Name), needle) {
			l.visible = append(l.visible, i)
		}
	}
	if l.Cursor >= len(l.visible) {
		l.Cursor = max(0, len(l.visible)-1)
	}
}

// Len returns the number of visible items.
func (l *AppList) Len() int {
	return len(l.visible)
}

// Current returns the app under the cursor.
func (l *AppList) Current() *models.AppRecord {
	if len(l.visible) == 0 || l.Cursor >= len(l.visible) {
		return nil
	}
	return &l.Apps[l.visible[l.Cursor]]
}

// MoveUp moves cursor up
func (l *AppList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *AppList) MoveDown() {
	if l.Cursor < len(l.visible)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *AppList) PageUp() {
	l.Cursor -= l.pageSize()
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *AppList) PageDown() {
	l.Cursor += l.pageSize()
	if l.Cursor >= len(l.visible) {
		l.Cursor = max(0, len(l.visible)-1)
	}
}

// GoToFirst moves cursor to the first item
func (l *AppList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *AppList) GoToLast() {
	if len(l.visible) > 0 {
		l.Cursor = len(l.visible) - 1
	}
}

func (l *AppList) pageSize() int {
	size := l.Height - 3
	if size < 1 {
		size = 10
	}
	return size
}

// View renders the app list
func (l *AppList) View() string {
	var b strings.Builder

	title := l.Title
	if l.filter != "" {
		title = fmt.Sprintf("%s (%d/%d)", l.Title, len(l.visible), len(l.Apps))
	} else if len(l.Apps) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(l.Apps))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, l.Width-2))))
	b.WriteString("\n")

	if len(l.visible) == 0 {
		b.WriteString(ui.ItemStyle.Render("No apps found"))
		return l.wrapInPanel(b.String())
	}

	visibleHeight := l.Height - 3
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.visible))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderItem(l.Apps[l.visible[i]], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if endIdx < len(l.visible) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	if len(l.visible) > visibleHeight {
		position := fmt.Sprintf(" %d/%d ", l.Cursor+1, len(l.visible))
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render(strings.Repeat(" ", max(0, (l.Width-len(position)-4)/2)) + position))
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single app line: name on the left, category badge
// on the right.
func (l *AppList) renderItem(app models.AppRecord, isCursor bool) string {
	badge := lipgloss.NewStyle().Foreground(ui.CategoryColor(app.Category)).Render(app.Category)

	name := app.Name
	maxNameLen := l.Width - len(app.Category) - 8
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	pad := l.Width - len(name) - len(app.Category) - 6
	if pad < 1 {
		pad = 1
	}
	line := name + strings.Repeat(" ", pad) + badge

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Render("> " + line)
	}
	return ui.ItemStyle.Render("  " + line)
}

func (l *AppList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Render(content)
}
