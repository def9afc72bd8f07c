package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/chess3d/internal/boardsync"
	"github.com/hailam/chess3d/internal/mana"
)

// Panel dimensions
const (
	PanelWidth     = 300
	PanelPadding   = 20
	SectionSpacing = 24
	ButtonHeight   = 40
	SectionLabelH  = 20
	ManaBarHeight  = 14
	StatusBarH     = 70
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}    // Dark background
	buttonBg        = color.RGBA{50, 54, 60, 255}    // Button background (darker)
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}    // Button hover (brighter)
	buttonPressedBg = color.RGBA{40, 44, 50, 255}    // Button pressed (darker)
	buttonBorder    = color.RGBA{70, 75, 82, 255}    // Subtle button border
	buttonActiveBg  = color.RGBA{160, 80, 30, 255}   // Armed ability
	accentColor     = color.RGBA{76, 175, 120, 255}  // Green accent
	accentHover     = color.RGBA{96, 195, 140, 255}  // Lighter green on hover
	accentPressed   = color.RGBA{56, 155, 100, 255}  // Darker green on press
	manaColor       = color.RGBA{70, 130, 230, 255}  // Mana gauge
	manaTrack       = color.RGBA{30, 34, 42, 255}    // Gauge background
	textPrimary     = color.RGBA{240, 240, 245, 255} // Primary text
	textSecondary   = color.RGBA{160, 165, 175, 255} // Secondary text
	textMuted       = color.RGBA{120, 125, 135, 255} // Muted text
	dividerColor    = color.RGBA{60, 65, 72, 255}    // Divider line
	moveRowAlt      = color.RGBA{44, 48, 54, 255}    // Alternating row
	statusGameOver  = color.RGBA{255, 200, 80, 255}  // Yellow for game over
	statusTargeting = color.RGBA{255, 150, 80, 255}  // Orange while aiming
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
	disabled   bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with controls, the mana gauge and move history.
type Panel struct {
	game   *Game
	x      int
	height int

	newGameBtn *Button
	undoBtn    *Button
	soundBtn   *Button
	abilityBtn map[mana.Ability]*Button
	manaY      int
	historyY   int

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates a panel occupying the right edge of a width×height screen.
func NewPanel(g *Game, width, height int) *Panel {
	p := &Panel{
		game:       g,
		x:          width - PanelWidth,
		height:     height,
		abilityBtn: make(map[mana.Ability]*Button),
	}
	p.createButtons()
	return p
}

// createButtons initializes all panel buttons.
func (p *Panel) createButtons() {
	contentX := p.x + PanelPadding
	contentW := PanelWidth - PanelPadding*2
	halfW := (contentW - 8) / 2

	y := PanelPadding + 8
	p.newGameBtn = &Button{
		X: contentX, Y: y, W: halfW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}
	p.undoBtn = &Button{
		X: contentX + halfW + 8, Y: y, W: halfW, H: ButtonHeight,
		Label:   "Undo",
		OnClick: p.game.UndoAction,
	}

	y += ButtonHeight + SectionSpacing
	p.manaY = y + SectionLabelH

	y = p.manaY + ManaBarHeight + SectionSpacing + SectionLabelH
	for _, a := range mana.Abilities {
		p.abilityBtn[a] = &Button{
			X: contentX, Y: y, W: contentW, H: ButtonHeight - 6,
			Label:   fmt.Sprintf("%s  (%d)", a.Name(), a.Cost()),
			OnClick: func() { p.game.ToggleAbility(a) },
		}
		y += ButtonHeight - 6 + 6
	}

	p.historyY = y + SectionSpacing - 6

	p.soundBtn = &Button{
		X: p.x + PanelWidth - PanelPadding - 90, Y: p.height - StatusBarH, W: 90, H: 22,
		OnClick: p.game.ToggleSoundAction,
	}
}

func (p *Panel) buttons() []*Button {
	bs := []*Button{p.newGameBtn, p.undoBtn, p.soundBtn}
	for _, a := range mana.Abilities {
		bs = append(bs, p.abilityBtn[a])
	}
	return bs
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	// Handle scroll wheel for move history
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 && input.InRect(p.x, p.historyY, PanelWidth, p.height-StatusBarH-p.historyY) {
		p.scrollY -= int(wheelY * 30) // 30px per scroll tick
		p.scrollY = max(0, min(p.scrollY, p.maxScrollY))
	}

	ctrl := p.game.Controller()
	armed, aiming := ctrl.ArmedAbility()
	for _, a := range mana.Abilities {
		p.abilityBtn[a].disabled = !ctrl.Mana().CanAfford(a.Cost()) && !(aiming && armed == a)
	}
	_, pending := ctrl.Pending()
	p.undoBtn.disabled = pending || len(p.game.History()) == 0

	for _, btn := range p.buttons() {
		btn.hovered = btn.contains(mx, my)
		btn.pressed = input.IsLeftPressed() && btn.hovered
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons() {
		if btn.hovered {
			// disabled ability buttons still fire so the shortfall is reported
			btn.OnClick()
			return true
		}
	}
	return mx >= p.x
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons() {
		if btn.hovered && !btn.disabled {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(p.x), 0, float32(PanelWidth), float32(p.height), panelBg, false)

	p.drawPrimaryButton(screen, p.newGameBtn)
	p.drawSecondaryButton(screen, p.undoBtn, false)

	p.drawManaBar(screen)

	p.drawSectionLabel(screen, "Abilities", p.x+PanelPadding, p.abilityBtn[mana.Abilities[0]].Y-SectionLabelH)
	armed, aiming := p.game.Controller().ArmedAbility()
	for _, a := range mana.Abilities {
		p.drawSecondaryButton(screen, p.abilityBtn[a], aiming && armed == a)
	}

	p.drawSectionLabel(screen, "Moves", p.x+PanelPadding, p.historyY)
	p.drawMoveHistory(screen, p.historyY+SectionLabelH+4)

	p.drawStatusBar(screen)
}

func (p *Panel) drawManaBar(screen *ebiten.Image) {
	pool := p.game.Controller().Mana()
	x := p.x + PanelPadding
	w := PanelWidth - PanelPadding*2

	p.drawSectionLabel(screen, "Mana", x, p.manaY-SectionLabelH)
	p.drawText(screen, fmt.Sprintf("%d / %d", pool.Value(), mana.Max), x+w-70, p.manaY-SectionLabelH, textSecondary)

	vector.DrawFilledRect(screen, float32(x), float32(p.manaY), float32(w), ManaBarHeight, manaTrack, false)
	vector.DrawFilledRect(screen, float32(x), float32(p.manaY), float32(float64(w)*pool.Fraction()), ManaBarHeight, manaColor, false)
	vector.StrokeRect(screen, float32(x), float32(p.manaY), float32(w), ManaBarHeight, 1, buttonBorder, false)
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := accentColor
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
	}

	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	// Draw border for depth
	borderC := color.RGBA{56, 155, 100, 255}
	if btn.hovered {
		borderC = color.RGBA{116, 215, 160, 255} // Lighter border on hover
	}
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, borderC, false)

	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button, active bool) {
	bgColor := buttonBg
	switch {
	case active:
		bgColor = buttonActiveBg
	case btn.disabled:
	case btn.pressed:
		bgColor = buttonPressedBg
	case btn.hovered:
		bgColor = buttonHoverBg
	}

	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	borderC := buttonBorder
	if btn.hovered && !btn.disabled {
		borderC = accentColor // Green border on hover
	}
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, borderC, false)

	textC := textSecondary
	if active {
		textC = textPrimary
	} else if btn.disabled {
		textC = textMuted
	}
	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textC)
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	drawText(screen, strings.ToUpper(label), FaceLabel, float64(x), float64(y), textMuted)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.History()
	x := p.x + PanelPadding
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", x, startY+5, textMuted)
		return
	}

	rowHeight := 22
	maxY := p.height - StatusBarH - 10 // Leave room for status bar
	visibleHeight := maxY - startY

	// Calculate total content height and max scroll
	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * rowHeight
	p.maxScrollY = max(0, contentHeight-visibleHeight)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	startRow := p.scrollY / rowHeight
	y := startY - (p.scrollY % rowHeight)

	for i := startRow * 2; i < len(moves); i += 2 {
		if y > maxY-rowHeight {
			break
		}
		if y >= startY {
			if (i/2)%2 == 1 {
				vector.DrawFilledRect(screen, float32(x-4), float32(y-2),
					float32(PanelWidth-PanelPadding*2+8), float32(rowHeight), moveRowAlt, false)
			}
			p.drawText(screen, fmt.Sprintf("%d.", i/2+1), x, y, textMuted)
			p.drawText(screen, moves[i].SAN, x+36, y, textPrimary)
			if i+1 < len(moves) {
				p.drawText(screen, moves[i+1].SAN, x+120, y, textPrimary)
			}
		}
		y += rowHeight
	}

	// Show scroll indicator if there's more content
	if p.maxScrollY > 0 {
		scrollPct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := max(float32(visibleHeight)*float32(visibleHeight)/float32(contentHeight), 20)
		indicatorY := float32(startY) + scrollPct*(float32(visibleHeight)-indicatorH)
		vector.DrawFilledRect(screen, float32(p.x+PanelWidth-8), indicatorY, 4, indicatorH, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := p.height - StatusBarH
	x := p.x + PanelPadding

	vector.DrawFilledRect(screen, float32(x), float32(statusY-10),
		float32(PanelWidth-PanelPadding*2), 1, dividerColor, false)

	username := p.game.Username()
	if len(username) > 12 {
		username = username[:12] + "..."
	}
	p.drawText(screen, username, x, statusY, textPrimary)

	p.soundBtn.Label = "Sound: off"
	if p.game.SoundEnabled() {
		p.soundBtn.Label = "Sound: on"
	}
	p.drawSecondaryButton(screen, p.soundBtn, false)

	statusText, statusColor := p.status()
	p.drawText(screen, statusText, x, statusY+24, statusColor)

	if stats := p.game.Stats(); stats != nil {
		line := fmt.Sprintf("Games %d  Mates %d  Draws %.0f%%  Casts %d",
			stats.GamesFinished, stats.Checkmates, stats.DrawRate(), stats.TotalAbilities())
		p.drawText(screen, line, x, statusY+44, textMuted)
	}
}

func (p *Panel) status() (string, color.RGBA) {
	ctrl := p.game.Controller()
	if over, ok := ctrl.Pending(); ok {
		return over.String(), statusGameOver
	}
	if ctrl.Mode() == boardsync.Targeting {
		a, _ := ctrl.ArmedAbility()
		return "Choose a target for " + a.Name(), statusTargeting
	}
	return fmt.Sprintf("%s to move", p.game.Turn()), textPrimary
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	drawText(screen, s, FaceBody, float64(x), float64(y), c)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := Face(FaceBody)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	drawText(screen, s, FaceBody, float64(centerX)-w/2, float64(centerY)-h/2, c)
}
