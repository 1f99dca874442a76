package components

import (
	"github.com/charmbracelet/lipgloss"

	"uxlab/internal/ui/theme"
)

var (
	checkedStyle   = lipgloss.NewStyle().Foreground(theme.Green).Bold(true)
	uncheckedStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
	focusStyle     = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(theme.Text)
)

// Checkbox is a single yes/no toggle. The parent routes space to Toggle
// and tells the box when it holds focus.
type Checkbox struct {
	label   string
	checked bool
	focused bool
}

func NewCheckbox(label string) Checkbox {
	return Checkbox{label: label}
}

func (c Checkbox) Checked() bool { return c.checked }

func (c *Checkbox) Toggle() { c.checked = !c.checked }

func (c *Checkbox) Reset() { c.checked = false }

func (c *Checkbox) SetFocused(focused bool) { c.focused = focused }

func (c Checkbox) View() string {
	box := "[ ]"
	style := uncheckedStyle
	if c.checked {
		box = "[x]"
		style = checkedStyle
	}
	if c.focused {
		style = focusStyle
	}
	return style.Render(box) + " " + labelStyle.Render(c.label)
}
