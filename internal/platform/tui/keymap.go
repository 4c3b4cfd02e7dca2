package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/core-collapse/internal/core"
)

// KeyMapper translates Bubble Tea key messages to minigame actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapGameKey translates a key message to a minigame action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapGameKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionTap, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapGameKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
