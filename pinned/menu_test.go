package pinned

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spatial-shell/parameter"
)

func tools(m *Menu) []string {
	var out []string
	for _, b := range m.Buttons() {
		out = append(out, b.Tool)
	}
	return out
}

func TestNewMenu_MainMenuSlot(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)

	require.Equal(t, 1, m.Len())
	assert.Zero(t, m.ToolCount())
	assert.Equal(t, MainMenuTool, m.Buttons()[0].Tool)
	assert.Equal(t, parameter.MenuMainMenuOrder, m.Buttons()[0].Order)
	assert.Nil(t, m.Active())
	assert.Nil(t, m.CycleNext())
}

func TestSelectTool_CreatesAtActiveSlot(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)

	res, a := m.SelectTool("paint", "brush")
	require.Equal(t, Created, res)
	assert.Equal(t, "brush", a.Icon)

	res, b := m.SelectTool("select", "arrow")
	require.Equal(t, Created, res)

	assert.Equal(t, []string{MainMenuTool, "select", "paint"}, tools(m))
	assert.Equal(t, parameter.MenuActiveToolOrder, b.Order)
	assert.Equal(t, 2, a.Order)
	assert.True(t, b.Active)
	assert.False(t, a.Active)
	assert.Same(t, b, m.Active())
}

func TestSelectTool_Reselection(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	_, paint := m.SelectTool("paint", "")
	m.SelectTool("select", "")
	before := m.Len()

	res, b := m.SelectTool("paint", "other-icon")

	assert.Equal(t, Reselected, res)
	assert.Same(t, paint, b)
	assert.Equal(t, before, m.Len())
	assert.True(t, b.Active)
	assert.Same(t, paint, m.Active())
	assert.Empty(t, b.Icon, "reselection keeps the existing slot")
}

func TestSelectTool_SlotCap(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	for i := 1; i < parameter.MenuMaxButtonCount; i++ {
		res, _ := m.SelectTool(fmt.Sprintf("tool-%d", i), "")
		require.Equal(t, Created, res)
	}
	require.Equal(t, parameter.MenuMaxButtonCount, m.Len())
	active := m.Active()

	res, b := m.SelectTool("never-seen", "")

	assert.Equal(t, Refused, res)
	assert.Nil(t, b)
	assert.Equal(t, parameter.MenuMaxButtonCount, m.Len())
	assert.Same(t, active, m.Active(), "refusal leaves selection alone")

	res, _ = m.SelectTool("tool-3", "")
	assert.Equal(t, Reselected, res, "existing tools are still selectable at the cap")
}

func TestSelectTool_MainMenuRefused(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	res, _ := m.SelectTool(MainMenuTool, "")
	assert.Equal(t, Refused, res)
	assert.Equal(t, 1, m.Len())
}

func TestNewMenu_FloorsCap(t *testing.T) {
	m := NewMenu(0)
	assert.Equal(t, parameter.MenuActiveToolOrder+1, m.MaxButtons())
	res, _ := m.SelectTool("paint", "")
	assert.Equal(t, Created, res)
	res, _ = m.SelectTool("select", "")
	assert.Equal(t, Refused, res)
}

func TestDeleteTool_AdvancesSelection(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	m.SelectTool("a", "")
	m.SelectTool("b", "")
	m.SelectTool("c", "")
	require.Equal(t, []string{MainMenuTool, "c", "b", "a"}, tools(m))

	require.True(t, m.DeleteTool("c"))
	assert.Equal(t, "b", m.Active().Tool, "next slot takes over")
	assert.Equal(t, 1, m.Active().Order)

	m.SelectTool("a", "")
	require.True(t, m.DeleteTool("a"))
	assert.Equal(t, "b", m.Active().Tool, "deleting the last slot wraps to the first tool")

	require.True(t, m.DeleteTool("b"))
	assert.Nil(t, m.Active())
	assert.Equal(t, 1, m.Len())
}

func TestDeleteTool_InactiveKeepsSelection(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	m.SelectTool("a", "")
	m.SelectTool("b", "")

	require.True(t, m.DeleteTool("a"))
	assert.Equal(t, "b", m.Active().Tool)
}

func TestDeleteTool_Rejects(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	m.SelectTool("a", "")

	assert.False(t, m.DeleteTool(MainMenuTool))
	assert.False(t, m.DeleteTool("missing"))
	assert.Equal(t, 2, m.Len())
}

func TestCycleNext_WrapsPastMainMenu(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	m.SelectTool("a", "")
	m.SelectTool("b", "")
	m.SelectTool("c", "")

	var seen []string
	for range 4 {
		seen = append(seen, m.CycleNext().Tool)
	}
	assert.Equal(t, []string{"b", "a", "c", "b"}, seen)
}

func TestHighlight_Exclusive(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	m.SelectTool("a", "")
	m.SelectTool("b", "")

	m.Highlight(2)
	assert.Equal(t, "a", m.Highlighted().Tool)

	m.Highlight(1)
	assert.Equal(t, "b", m.Highlighted().Tool)
	count := 0
	for _, b := range m.Buttons() {
		if b.Highlighted {
			count++
		}
	}
	assert.Equal(t, 1, count)

	m.ClearHighlight()
	assert.Nil(t, m.Highlighted())
}

func TestButtonForPosition(t *testing.T) {
	m := NewMenu(parameter.MenuMaxButtonCount)
	for _, tool := range []string{"a", "b", "c", "d"} {
		m.SelectTool(tool, "")
	}

	tests := []struct {
		pos  float64
		want string
	}{
		{0, "d"},
		{0.24, "d"},
		{0.25, "c"},
		{0.6, "b"},
		{0.99, "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.ButtonForPosition(tt.pos).Tool, "position %v", tt.pos)
	}

	assert.Nil(t, NewMenu(parameter.MenuMaxButtonCount).ButtonForPosition(0.5))
}
