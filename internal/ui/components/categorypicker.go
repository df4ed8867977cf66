package components

import (
	"strings"

	"appdeck/internal/models"
	"appdeck/internal/ui"
)

// CategoryPicker is a small overlay listing the canonical category labels.
// Picking one saves an override for the app it was opened for.
type CategoryPicker struct {
	Labels  []string
	Cursor  int
	AppPath string // bundle the picked category applies to
	AppName string
	Width   int
	Visible bool
}

// NewCategoryPicker creates the picker over the canonical labels.
func NewCategoryPicker() *CategoryPicker {
	return &CategoryPicker{
		Labels: models.Categories(),
		Width:  30,
	}
}

// Show opens the picker for an app, with the cursor on its current category.
func (p *CategoryPicker) Show(app models.AppRecord) {
	p.AppPath = app.Path
	p.AppName = app.Name
	p.Cursor = 0
	for i, label := range p.Labels {
		if label == app.Category {
			p.Cursor = i
			break
		}
	}
	p.Visible = true
}

// Hide closes the picker.
func (p *CategoryPicker) Hide() {
	p.Visible = false
}

// MoveUp moves cursor up
func (p *CategoryPicker) MoveUp() {
	if p.Cursor > 0 {
		p.Cursor--
	}
}

// MoveDown moves cursor down
func (p *CategoryPicker) MoveDown() {
	if p.Cursor < len(p.Labels)-1 {
		p.Cursor++
	}
}

// Current returns the label under the cursor.
func (p *CategoryPicker) Current() string {
	if len(p.Labels) == 0 {
		return ""
	}
	return p.Labels[p.Cursor]
}

// View renders the picker panel.
func (p *CategoryPicker) View() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render("Category for " + p.AppName))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, p.Width-2))))
	b.WriteString("\n")

	for i, label := range p.Labels {
		if i == p.Cursor {
			b.WriteString(ui.SelectedItemStyle.Render("> " + label))
		} else {
			b.WriteString(ui.ItemStyle.Render("  " + label))
		}
		if i < len(p.Labels)-1 {
			b.WriteString("\n")
		}
	}

	return ui.ActivePanelStyle.Width(p.Width).Render(b.String())
}
