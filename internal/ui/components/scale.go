package components

import (
	"strconv"
	"strings"

	"uxlab/internal/ui/theme"
)

// Scale is a discrete rating picker, rendered as the run of numbers with
// the current pick highlighted.
type Scale struct {
	label   string
	min     int
	max     int
	value   int
	focused bool
}

func NewScale(label string, min, max int) Scale {
	return Scale{label: label, min: min, max: max, value: min}
}

func (s Scale) Value() int { return s.value }

func (s *Scale) Inc() {
	if s.value < s.max {
		s.value++
	}
}

func (s *Scale) Dec() {
	if s.value > s.min {
		s.value--
	}
}

func (s *Scale) Reset() { s.value = s.min }

func (s *Scale) SetFocused(focused bool) { s.focused = focused }

func (s Scale) View() string {
	parts := make([]string, 0, s.max-s.min+1)
	for n := s.min; n <= s.max; n++ {
		cell := " " + strconv.Itoa(n) + " "
		switch {
		case n == s.value && s.focused:
			parts = append(parts, focusStyle.Render("["+strconv.Itoa(n)+"]"))
		case n == s.value:
			parts = append(parts, checkedStyle.Render("["+strconv.Itoa(n)+"]"))
		default:
			parts = append(parts, uncheckedStyle.Render(cell))
		}
	}
	label := labelStyle.Render(s.label)
	if s.focused {
		label = focusStyle.Render(s.label)
	}
	hint := ""
	if s.focused {
		hint = theme.Muted.Render("  ←/→")
	}
	return label + "  " + strings.Join(parts, " ") + hint
}
