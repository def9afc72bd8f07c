package ui

import (
	"context"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/chess3d/internal/assets"
	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/boardsync"
	"github.com/hailam/chess3d/internal/config"
	"github.com/hailam/chess3d/internal/mana"
	"github.com/hailam/chess3d/internal/rules"
	"github.com/hailam/chess3d/internal/scene"
	"github.com/hailam/chess3d/internal/storage"
)

// Game implements ebiten.Game. It owns the rules adapter, the scene graph
// and the controller that keeps them in step.
type Game struct {
	boardsync.NopListener

	cfg           config.Config
	width, height int

	// Core game state
	rules *rules.Adapter
	graph *scene.Graph
	ctrl  *boardsync.Controller
	hover board.Square

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	welcome  *WelcomeScreen
	feedback *FeedbackManager
	loader   *assets.Loader
	cancel   context.CancelFunc
}

// NewGame creates the game from cfg. Storage problems are logged and the
// game runs with defaults.
func NewGame(cfg config.Config) *Game {
	g := &Game{
		cfg:      cfg,
		width:    cfg.WindowWidth,
		height:   cfg.WindowHeight,
		rules:    rules.New(),
		hover:    board.NoSquare,
		renderer: NewRenderer(),
		input:    NewInputHandler(),
	}

	// Initialize storage
	if !cfg.NoStorage {
		var err error
		g.storage, err = storage.Open(cfg.DataDir)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage: %v", err)
		}
	}
	g.loadPreferences()
	g.refreshStats()

	g.feedback = NewFeedbackManager(g.prefs.SoundEnabled && cfg.Sound)

	g.graph = scene.NewGraph(scene.DefaultCamera(float64(g.viewportWidth()), float64(g.height)))
	g.graph.AddTiles()

	listeners := boardsync.Listeners{g.feedback}
	if g.storage != nil {
		listeners = append(listeners, storage.NewRecorder(g.storage))
	}
	listeners = append(listeners, g)
	g.ctrl = boardsync.New(g.rules, g.graph,
		boardsync.WithListener(listeners),
		boardsync.WithGameOverDelay(cfg.GameOverDelay),
		boardsync.WithMana(mana.NewPool(cfg.StartingMana)),
	)

	g.panel = NewPanel(g, g.width, g.height)
	g.welcome = NewWelcomeScreen(g.width, g.height, g.prefs.Username, g.startAction)

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.loader = assets.NewLoader(spriteRenderSize)
	g.loader.Start(ctx)

	return g
}

func (g *Game) viewportWidth() int {
	return g.width - PanelWidth
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

func (g *Game) refreshStats() {
	if g.storage == nil {
		return
	}
	stats, err := g.storage.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
		return
	}
	g.stats = stats
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()
	g.drainAssets()

	g.ctrl.Tick(time.Now())

	if g.welcome.Update(g.input) {
		g.hover = board.NoSquare
		g.updateCursor()
		return nil
	}

	g.handleKeys()

	if g.panel.HandleInput(g.input) {
		g.hover = board.NoSquare
		g.updateCursor()
		return nil
	}

	g.handleBoardInput()
	g.updateCursor()
	return nil
}

// drainAssets moves finished sprites into the renderer without blocking.
func (g *Game) drainAssets() {
	for {
		select {
		case ev := <-g.loader.Events():
			if g.renderer.Sprites().Add(ev) {
				log.Printf("[ASSETS] %s ready", ev.Piece.Name())
			} else {
				g.feedback.OnAssetFailed(ev.Piece, ev.Err)
			}
		default:
			return
		}
	}
}

func (g *Game) handleKeys() {
	for _, act := range g.input.Actions() {
		if a, ok := act.Ability(); ok {
			g.ToggleAbility(a)
			continue
		}
		switch act {
		case ActionCancel:
			g.ctrl.CancelSelection()
		case ActionUndo:
			g.UndoAction()
		case ActionNewGame:
			g.NewGameAction()
		case ActionToggleSound:
			g.ToggleSoundAction()
		}
	}
}

// handleBoardInput picks the square under the cursor and forwards clicks.
func (g *Game) handleBoardInput() {
	if !g.input.InRect(0, 0, g.viewportWidth(), g.height) {
		g.hover = board.NoSquare
		return
	}
	mx, my := g.input.MousePosition()

	sq, ok := g.graph.Pick(float64(mx), float64(my))
	if !ok {
		sq = board.NoSquare
	}
	g.hover = sq

	if !g.input.IsLeftJustPressed() {
		return
	}
	if !ok {
		// clicking off the board drops the selection
		g.ctrl.CancelSelection()
		return
	}
	g.ctrl.Click(sq)
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	if g.welcome.AnyButtonHovered() || g.panel.AnyButtonHovered() || g.hover != board.NoSquare {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	viewport := screen.SubImage(image.Rect(0, 0, g.viewportWidth(), g.height)).(*ebiten.Image)
	g.renderer.Draw(viewport, g.graph, g.highlights(), g.feedback.Effects())

	g.drawLoading(viewport)
	g.drawGameOverBanner(viewport)
	g.feedback.Notices().Draw(viewport, float64(g.viewportWidth()))

	g.panel.Draw(screen)
	g.welcome.Draw(screen, g.renderer.Sprites())
}

func (g *Game) highlights() Highlights {
	hl := NoHighlights()
	hl.Hover = g.hover
	hl.Aiming = g.ctrl.Mode() == boardsync.Targeting

	if sel := g.ctrl.Selection(); sel != board.NoSquare {
		hl.Selected = sel
		hl.Targets = g.rules.LegalTargets(sel)
	}

	history := g.rules.History()
	if n := len(history); n > 0 {
		last := history[n-1]
		hl.LastFrom, hl.LastTo = last.From, last.To
		if last.Check {
			hl.Check = g.kingSquare(g.rules.Turn())
		}
	}
	return hl
}

func (g *Game) kingSquare(c board.Color) board.Square {
	snap := g.rules.Board()
	for _, ps := range snap.Pieces() {
		if ps.Piece == board.NewPiece(board.King, c) {
			return ps.Square
		}
	}
	return board.NoSquare
}

func (g *Game) drawLoading(dst *ebiten.Image) {
	sprites := g.renderer.Sprites()
	total := len(board.Kinds) * 2
	if done := sprites.Loaded() + sprites.Failed(); done < total {
		drawText(dst, "Loading pieces...", FaceBody, 16, float64(g.height-32), textSecondary)
	}
}

func (g *Game) drawGameOverBanner(dst *ebiten.Image) {
	over, ok := g.ctrl.Pending()
	face := Face(FaceBanner)
	if !ok || face == nil {
		return
	}
	msg := over.String()
	w, h := MeasureText(msg, face)
	cx, cy := float64(g.viewportWidth())/2, float64(g.height)/2
	vector.DrawFilledRect(dst, float32(cx-w/2-24), float32(cy-h/2-16), float32(w+48), float32(h+32), color.RGBA{0, 0, 0, 170}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-w/2, cy-h/2)
	op.ColorScale.ScaleWithColor(statusGameOver)
	text.Draw(dst, msg, face, op)
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// startAction dismisses the start screen and stamps the session.
func (g *Game) startAction() {
	log.Printf("[GAME] started by %s", g.prefs.Username)
	g.savePreferences()
}

// NewGameAction starts a new game.
func (g *Game) NewGameAction() {
	g.ctrl.NewGame()
}

// UndoAction takes back the last move.
func (g *Game) UndoAction() {
	if _, ok := g.ctrl.Undo(); !ok {
		g.feedback.Notices().Show("Nothing to undo", NoticeInfo, 1500*time.Millisecond)
	}
}

// ToggleAbility arms a, or disarms it if it is already armed.
func (g *Game) ToggleAbility(a mana.Ability) {
	if armed, ok := g.ctrl.ArmedAbility(); ok && armed == a {
		g.ctrl.CancelAbility()
		return
	}
	if err := g.ctrl.ArmAbility(a); err != nil {
		log.Printf("[ABILITY] arm %s: %v", a, err)
	}
}

// ToggleSoundAction flips the sound preference and saves it.
func (g *Game) ToggleSoundAction() {
	g.prefs.SoundEnabled = !g.prefs.SoundEnabled
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
	g.savePreferences()
}

// Controller returns the board controller.
func (g *Game) Controller() *boardsync.Controller {
	return g.ctrl
}

// History returns the moves of the current game.
func (g *Game) History() []rules.MoveRecord {
	return g.rules.History()
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color {
	return g.rules.Turn()
}

// Username returns the stored player name.
func (g *Game) Username() string {
	return g.prefs.Username
}

// SoundEnabled reports whether sound effects play.
func (g *Game) SoundEnabled() bool {
	return g.feedback.Audio().IsEnabled()
}

// Stats returns the lifetime statistics, or nil without storage.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// OnAbility refreshes the statistics shown in the panel.
func (g *Game) OnAbility(boardsync.AbilityOutcome) {
	g.refreshStats()
}

// OnGameOver refreshes the statistics shown in the panel.
func (g *Game) OnGameOver(boardsync.GameOver) {
	g.refreshStats()
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.cancel()
	g.savePreferences()
	if g.storage != nil {
		if err := g.storage.Close(); err != nil {
			log.Printf("Warning: Failed to close storage: %v", err)
		}
	}
}
