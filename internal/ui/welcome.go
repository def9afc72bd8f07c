package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/mana"
	"github.com/hailam/chess3d/internal/rules"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 440
	WelcomeHeight = 340
	WelcomePadX   = 32
	WelcomePadY   = 24
)

var (
	modalOverlay = color.RGBA{10, 12, 16, 170}
	modalBg      = color.RGBA{34, 36, 41, 245}
	modalBorder  = color.RGBA{70, 75, 82, 255}
)

// WelcomeScreen is the start overlay. While it is visible it consumes all
// input, so nothing reaches the board or the panel.
type WelcomeScreen struct {
	visible bool

	// Position (centered on screen)
	x, y          int
	width, height int

	username string
	startBtn *Button
}

// NewWelcomeScreen creates a visible start overlay for a width×height
// screen. onStart runs once when the player dismisses it.
func NewWelcomeScreen(width, height int, username string, onStart func()) *WelcomeScreen {
	ws := &WelcomeScreen{
		visible:  true,
		x:        (width - WelcomeWidth) / 2,
		y:        (height - WelcomeHeight) / 2,
		width:    width,
		height:   height,
		username: username,
	}

	btnW, btnH := 160, 44
	ws.startBtn = &Button{
		X: ws.x + (WelcomeWidth-btnW)/2, Y: ws.y + WelcomeHeight - WelcomePadY - btnH,
		W: btnW, H: btnH,
		Label: "Start Game",
	}
	ws.startBtn.OnClick = func() {
		ws.visible = false
		if onStart != nil {
			onStart()
		}
	}
	return ws
}

// IsVisible returns true if the screen is visible.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

// Update handles input for the welcome screen. It reports whether the input
// was consumed.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}

	mx, my := input.MousePosition()
	ws.startBtn.hovered = ws.startBtn.contains(mx, my)
	ws.startBtn.pressed = ws.startBtn.hovered && input.IsLeftPressed()

	for _, a := range input.Actions() {
		if a == ActionStart {
			ws.startBtn.OnClick()
			return true
		}
	}
	if ws.startBtn.hovered && input.IsLeftJustPressed() {
		ws.startBtn.OnClick()
	}
	return true
}

// AnyButtonHovered returns true if the start button is hovered.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	return ws.visible && ws.startBtn.hovered
}

// Draw renders the overlay. The white king sprite is the emblem once it has
// loaded.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image, sprites *SpriteManager) {
	if !ws.visible {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(ws.width), float32(ws.height), modalOverlay, false)
	vector.DrawFilledRect(screen, float32(ws.x), float32(ws.y), WelcomeWidth, WelcomeHeight, modalBg, false)
	vector.StrokeRect(screen, float32(ws.x), float32(ws.y), WelcomeWidth, WelcomeHeight, 2, modalBorder, false)

	cx := float64(ws.x + WelcomeWidth/2)
	king := board.NewPiece(board.King, board.White)
	if sprites != nil && sprites.GetPiece(king) != nil {
		sprites.DrawPiece(screen, king, cx, float64(ws.y+76), 56, 1)
	} else {
		ws.drawEmblem(screen, cx)
	}

	ws.drawCentered(screen, "CHESS3D", FaceBanner, float64(ws.y+84), textPrimary)

	greeting := "Welcome!"
	if ws.username != "" {
		greeting = fmt.Sprintf("Welcome, %s!", ws.username)
	}
	ws.drawCentered(screen, greeting, FaceBody, float64(ws.y+130), textSecondary)

	lines := []string{"Click a piece, then a square to move it."}
	for _, a := range mana.Abilities {
		lines = append(lines, abilityHint(a))
	}
	lines = append(lines, fmt.Sprintf("You start with %d mana. It does not regenerate.", mana.Max))

	y := float64(ws.y + 162)
	for _, l := range lines {
		drawText(screen, l, FaceBody, float64(ws.x+WelcomePadX), y, textSecondary)
		y += 22
	}

	ws.drawButton(screen)
}

func abilityHint(a mana.Ability) string {
	if a.Effect() == rules.Remove {
		return fmt.Sprintf("%s (%d): remove any piece but a king.", a.Name(), a.Cost())
	}
	return fmt.Sprintf("%s (%d): soothe one of your pieces.", a.Name(), a.Cost())
}

// drawEmblem draws a simple crown while the king sprite is still loading.
func (ws *WelcomeScreen) drawEmblem(screen *ebiten.Image, cx float64) {
	x := float32(cx)
	y := float32(ws.y + 28)
	vector.DrawFilledCircle(screen, x, y+8, 6, accentColor, false)
	vector.DrawFilledRect(screen, x-8, y+10, 16, 14, accentColor, false)
	vector.DrawFilledRect(screen, x-1, y-2, 3, 10, accentColor, false)
	vector.DrawFilledRect(screen, x-4, y+2, 9, 3, accentColor, false)
}

func (ws *WelcomeScreen) drawButton(screen *ebiten.Image) {
	btn := ws.startBtn
	bg := accentColor
	if btn.pressed {
		bg = accentPressed
	} else if btn.hovered {
		bg = accentHover
	}
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bg, false)

	face := Face(FaceBody)
	w, h := MeasureText(btn.Label, face)
	drawText(screen, btn.Label, FaceBody, float64(btn.X)+(float64(btn.W)-w)/2, float64(btn.Y)+(float64(btn.H)-h)/2, textPrimary)
	ws.drawCentered(screen, "or press Enter", FaceLabel, float64(btn.Y-20), textMuted)
}

func (ws *WelcomeScreen) drawCentered(screen *ebiten.Image, s string, role FaceRole, y float64, c color.Color) {
	w, _ := MeasureText(s, Face(role))
	drawText(screen, s, role, float64(ws.x)+(WelcomeWidth-w)/2, y, c)
}
