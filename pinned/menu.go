package pinned

import (
	"slices"

	"github.com/lixenwraith/spatial-shell/parameter"
)

// MainMenuTool is the reserved tool id of the slot at order 0
const MainMenuTool = "main-menu"

// SelectResult reports how SelectTool was satisfied
type SelectResult uint8

const (
	Created SelectResult = iota
	Reselected
	Refused
)

func (r SelectResult) String() string {
	switch r {
	case Created:
		return "created"
	case Reselected:
		return "reselected"
	case Refused:
		return "refused"
	default:
		return "unknown"
	}
}

// Button is one tool slot
type Button struct {
	Tool        string
	Icon        string
	Order       int
	Highlighted bool
	Active      bool
}

// Menu is the ordered, bounded set of tool slots around one hand
// The main-menu slot always sits at order 0 and is never active or removed
type Menu struct {
	buttons    []*Button
	maxButtons int
}

// NewMenu creates a menu holding only the main-menu slot
// maxButtons counts the main-menu slot and is floored to ActiveToolOrder+1
func NewMenu(maxButtons int) *Menu {
	maxButtons = max(maxButtons, parameter.MenuActiveToolOrder+1)
	m := &Menu{
		buttons:    make([]*Button, 0, maxButtons),
		maxButtons: maxButtons,
	}
	m.buttons = append(m.buttons, &Button{Tool: MainMenuTool, Order: parameter.MenuMainMenuOrder})
	return m
}

// Len returns the number of slots including the main menu
func (m *Menu) Len() int {
	return len(m.buttons)
}

// ToolCount returns the number of tool slots, excluding the main menu
func (m *Menu) ToolCount() int {
	return len(m.buttons) - 1
}

// MaxButtons returns the slot cap including the main menu
func (m *Menu) MaxButtons() int {
	return m.maxButtons
}

// Buttons returns the slots in order
func (m *Menu) Buttons() []*Button {
	return slices.Clone(m.buttons)
}

// Button returns the slot bound to tool
func (m *Menu) Button(tool string) (*Button, bool) {
	if i := m.indexOf(tool); i >= 0 {
		return m.buttons[i], true
	}
	return nil, false
}

// SelectTool makes tool the active tool
// An existing slot is reselected, a new tool takes the active-tool slot and pushes the rest outward,
// and a new tool is refused once the cap is reached
func (m *Menu) SelectTool(tool, icon string) (SelectResult, *Button) {
	if tool == MainMenuTool {
		return Refused, nil
	}

	if i := m.indexOf(tool); i >= 0 {
		b := m.buttons[i]
		m.activate(b)
		return Reselected, b
	}

	if len(m.buttons) >= m.maxButtons {
		return Refused, nil
	}

	b := &Button{Tool: tool, Icon: icon}
	m.buttons = slices.Insert(m.buttons, parameter.MenuActiveToolOrder, b)
	m.renumber()
	m.activate(b)
	return Created, b
}

// DeleteTool removes tool's slot and advances selection to the next remaining slot
func (m *Menu) DeleteTool(tool string) bool {
	i := m.indexOf(tool)
	if i <= parameter.MenuMainMenuOrder {
		return false
	}

	wasActive := m.buttons[i].Active
	m.buttons = slices.Delete(m.buttons, i, i+1)
	m.renumber()

	if wasActive && m.ToolCount() > 0 {
		next := i
		if next >= len(m.buttons) {
			next = parameter.MenuActiveToolOrder
		}
		m.activate(m.buttons[next])
	}
	return true
}

// CycleNext activates the tool after the active one, wrapping past the main menu
func (m *Menu) CycleNext() *Button {
	if m.ToolCount() == 0 {
		return nil
	}
	next := parameter.MenuActiveToolOrder
	if b := m.Active(); b != nil && b.Order+1 < len(m.buttons) {
		next = b.Order + 1
	}
	m.activate(m.buttons[next])
	return m.buttons[next]
}

// Active returns the active tool slot, nil when no tool is bound
func (m *Menu) Active() *Button {
	for _, b := range m.buttons {
		if b.Active {
			return b
		}
	}
	return nil
}

// Highlight highlights only the slot at order; an out of range order clears every highlight
func (m *Menu) Highlight(order int) {
	for _, b := range m.buttons {
		b.Highlighted = b.Order == order
	}
}

// ClearHighlight removes every highlight
func (m *Menu) ClearHighlight() {
	m.Highlight(-1)
}

// Highlighted returns the highlighted slot
func (m *Menu) Highlighted() *Button {
	for _, b := range m.buttons {
		if b.Highlighted {
			return b
		}
	}
	return nil
}

// ButtonForPosition returns the tool slot a looping scroll position falls into
func (m *Menu) ButtonForPosition(position float64) *Button {
	slot := SlotForPosition(m.ToolCount(), position)
	if slot <= parameter.MenuMainMenuOrder || slot >= len(m.buttons) {
		return nil
	}
	return m.buttons[slot]
}

func (m *Menu) activate(target *Button) {
	for _, b := range m.buttons {
		b.Active = b == target
	}
}

func (m *Menu) renumber() {
	for i, b := range m.buttons {
		b.Order = i
	}
}

func (m *Menu) indexOf(tool string) int {
	return slices.IndexFunc(m.buttons, func(b *Button) bool { return b.Tool == tool })
}
