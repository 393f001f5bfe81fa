package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// binding lists the keys that trigger one action.
type binding[A comparable] struct {
	action A
	keys   []string
}

func keyTable[A comparable](bs []binding[A]) map[string]A {
	table := make(map[string]A)
	for _, b := range bs {
		for _, k := range b.keys {
			table[k] = b.action
		}
	}
	return table
}

// gameBindings maps key names to in-game actions. Space is the game's
// primary action (echo ping, gravity flip, fire). Digits pick a color.
var gameBindings = keyTable([]binding[core.Action]{
	{core.ActionUp, []string{"up", "w"}},
	{core.ActionDown, []string{"down", "s"}},
	{core.ActionLeft, []string{"left", "a"}},
	{core.ActionRight, []string{"right", "d"}},
	{core.ActionPrimary, []string{" "}},
	{core.ActionConfirm, []string{"enter"}},
	{core.ActionBack, []string{"b"}},
	{core.ActionPause, []string{"p", "esc"}},
	{core.ActionRestart, []string{"r"}},
	{core.ActionQuit, []string{"q", "ctrl+c"}},
	{core.ActionColor1, []string{"1"}},
	{core.ActionColor2, []string{"2"}},
	{core.ActionColor3, []string{"3"}},
	{core.ActionColor4, []string{"4"}},
})

// MenuAction is a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// Menus add vim keys on top of arrows and WASD.
var menuBindings = keyTable([]binding[MenuAction]{
	{MenuActionUp, []string{"up", "w", "k"}},
	{MenuActionDown, []string{"down", "s", "j"}},
	{MenuActionLeft, []string{"left", "a", "h"}},
	{MenuActionRight, []string{"right", "d", "l"}},
	{MenuActionSelect, []string{"enter", " "}},
	{MenuActionBack, []string{"b", "esc"}},
	{MenuActionQuit, []string{"q", "ctrl+c"}},
})

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the action bound to msg (ActionNone when unbound) and
// whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = gameBindings[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame sets the bound action on frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuBindings[msg.String()]
}
