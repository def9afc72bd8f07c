package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hailam/chess3d/internal/mana"
)

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionCancel
	ActionUndo
	ActionNewGame
	ActionToggleSound
	ActionHealingAura
	ActionInferno
	ActionStart
)

// Ability returns the ability an action arms, if any.
func (a Action) Ability() (mana.Ability, bool) {
	switch a {
	case ActionHealingAura:
		return mana.HealingAura, true
	case ActionInferno:
		return mana.Inferno, true
	}
	return 0, false
}

var keyBindings = map[ebiten.Key]Action{
	ebiten.KeyEscape:    ActionCancel,
	ebiten.KeyU:         ActionUndo,
	ebiten.KeyBackspace: ActionUndo,
	ebiten.KeyN:         ActionNewGame,
	ebiten.KeyM:         ActionToggleSound,
	ebiten.Key1:         ActionHealingAura,
	ebiten.Key2:         ActionInferno,
	ebiten.KeyEnter:     ActionStart,
}

// InputHandler snapshots mouse and keyboard state once per frame.
type InputHandler struct {
	mouseX, mouseY  int
	leftPressed     bool
	leftJustPressed bool
	keys            []ebiten.Key
	actions         []Action
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update updates the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	ih.keys = inpututil.AppendJustPressedKeys(ih.keys[:0])
	ih.actions = ih.actions[:0]
	for _, k := range ih.keys {
		if a, ok := keyBindings[k]; ok {
			ih.actions = append(ih.actions, a)
		}
	}
}

// MousePosition returns the cursor position in screen coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftPressed returns true if the left mouse button is held.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// InRect reports whether the cursor is inside the w×h rectangle at (x, y).
func (ih *InputHandler) InRect(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// Actions returns the bound actions whose keys went down this frame.
func (ih *InputHandler) Actions() []Action {
	return ih.actions
}
