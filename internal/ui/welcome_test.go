package ui

import "testing"

func TestWelcomeScreenGatesInput(t *testing.T) {
	started := 0
	ws := NewWelcomeScreen(1024, 680, "Ada", func() { started++ })
	if !ws.IsVisible() {
		t.Fatal("welcome screen should start visible")
	}
	btn := ws.startBtn

	// a click on the board area is swallowed
	board := &InputHandler{mouseX: 100, mouseY: 100, leftJustPressed: true}
	if !ws.Update(board) {
		t.Error("click outside the button was not consumed")
	}
	if !ws.IsVisible() || started != 0 {
		t.Fatalf("click outside the button dismissed the screen (started %d)", started)
	}

	hover := &InputHandler{mouseX: btn.X + 1, mouseY: btn.Y + 1}
	ws.Update(hover)
	if !ws.AnyButtonHovered() || !ws.IsVisible() {
		t.Error("hovering the button should highlight it without starting")
	}

	click := &InputHandler{mouseX: btn.X + btn.W/2, mouseY: btn.Y + btn.H/2, leftJustPressed: true}
	if !ws.Update(click) {
		t.Error("start click was not consumed")
	}
	if ws.IsVisible() || started != 1 {
		t.Fatalf("visible %v, started %d after clicking start", ws.IsVisible(), started)
	}

	// once dismissed, input flows through
	if ws.Update(board) {
		t.Error("dismissed screen still consumes input")
	}
	if ws.AnyButtonHovered() {
		t.Error("dismissed screen reports a hovered button")
	}
}

func TestWelcomeScreenEnterStarts(t *testing.T) {
	started := 0
	ws := NewWelcomeScreen(800, 600, "", func() { started++ })

	if !ws.Update(&InputHandler{actions: []Action{ActionUndo}}) || !ws.IsVisible() {
		t.Fatal("other keys should be swallowed while the screen is up")
	}
	ws.Update(&InputHandler{actions: []Action{ActionStart}})
	if ws.IsVisible() || started != 1 {
		t.Errorf("visible %v, started %d after Enter", ws.IsVisible(), started)
	}
}
