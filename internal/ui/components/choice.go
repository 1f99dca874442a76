package components

import (
	"strings"

	"uxlab/internal/ui/theme"
)

// Choice picks one option from a fixed list with left/right.
type Choice struct {
	label   string
	options []string
	index   int
	focused bool
}

func NewChoice(label string, options []string) Choice {
	return Choice{label: label, options: options}
}

func (c Choice) Selected() string {
	if len(c.options) == 0 {
		return ""
	}
	return c.options[c.index]
}

// Select moves the cursor to the named option if present.
func (c *Choice) Select(option string) {
	for i, candidate := range c.options {
		if candidate == option {
			c.index = i
			return
		}
	}
}

func (c *Choice) SetOptions(options []string) {
	c.options = options
	if c.index >= len(options) {
		c.index = 0
	}
}

func (c *Choice) Prev() {
	if c.index > 0 {
		c.index--
	}
}

func (c *Choice) Next() {
	if c.index < len(c.options)-1 {
		c.index++
	}
}

func (c *Choice) Reset() { c.index = 0 }

func (c *Choice) SetFocused(focused bool) { c.focused = focused }

func (c Choice) View() string {
	parts := make([]string, 0, len(c.options))
	for i, option := range c.options {
		marker := "○ "
		style := uncheckedStyle
		if i == c.index {
			marker = "● "
			style = checkedStyle
			if c.focused {
				style = focusStyle
			}
		}
		parts = append(parts, style.Render(marker+option))
	}
	label := labelStyle.Render(c.label)
	if c.focused {
		label = focusStyle.Render(c.label)
	}
	hint := ""
	if c.focused {
		hint = theme.Muted.Render("  ←/→")
	}
	return label + "  " + strings.Join(parts, "   ") + hint
}
