// Package boardsync keeps the scene in step with the rules engine and turns
// square clicks into moves and ability casts.
package boardsync

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/mana"
	"github.com/hailam/chess3d/internal/rules"
	"github.com/hailam/chess3d/internal/scene"
)

// DefaultGameOverDelay is how long a finished position stays on screen
// before the result is announced and the board resets.
const DefaultGameOverDelay = time.Second

var (
	// ErrInsufficientMana is returned when the pool cannot pay for an ability.
	ErrInsufficientMana = errors.New("insufficient mana")
	// ErrNoTarget is returned when an ability target is empty or immune.
	ErrNoTarget = errors.New("no valid target")
	// ErrBusy is returned while a game-over announcement is pending.
	ErrBusy = errors.New("game over pending")
)

// Rules is the rules engine surface the controller drives.
// *rules.Adapter satisfies it.
type Rules interface {
	Reset() board.Snapshot
	AttemptMove(from, to board.Square, promotion board.PieceKind) (rules.MoveRecord, error)
	Undo() (rules.MoveRecord, bool)
	Board() board.Snapshot
	PieceAt(sq board.Square) (board.PieceState, bool)
	Turn() board.Color
	Result() rules.Result
	Winner() board.Color
	ApplyAbility(effect rules.AbilityEffect, target board.Square) bool
}

// Scene is the piece layer of the scene graph. *scene.Graph satisfies it.
type Scene interface {
	RemovePieces()
	AddPiece(p board.Piece, sq board.Square) scene.ObjectID
}

// Mode is the input mode of the controller.
type Mode int

const (
	// Idle waits for a click on a piece of the side to move.
	Idle Mode = iota
	// Armed has a piece selected and treats the next click as its destination.
	Armed
	// Targeting treats the next click as the target of an armed ability.
	Targeting
)

func (m Mode) String() string {
	switch m {
	case Armed:
		return "armed"
	case Targeting:
		return "targeting"
	default:
		return "idle"
	}
}

// AbilityOutcome describes a paid ability cast. Applied is false when the
// target was empty or immune; the mana is spent either way.
type AbilityOutcome struct {
	Ability mana.Ability
	Target  board.Square
	Piece   board.Piece
	Cost    int
	Mana    int
	Applied bool
}

// GameOver describes a finished game.
type GameOver struct {
	Result rules.Result
	Winner board.Color
}

func (g GameOver) String() string {
	if g.Result == rules.Checkmate {
		return fmt.Sprintf("%s wins by checkmate", g.Winner)
	}
	return "Draw"
}

// Controller owns the selection state, the mana pool and the mapping from
// squares to piece objects. It is driven from a single goroutine.
type Controller struct {
	rules    Rules
	scene    Scene
	listener Listener
	pool     *mana.Pool

	mode     Mode
	selected board.Square
	ability  mana.Ability
	objects  map[board.Square]scene.ObjectID

	gameOverDelay time.Duration
	pending       *GameOver
	dueAt         time.Time
	now           func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithListener registers l for controller events.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithGameOverDelay sets the delay between a finished position and the
// reset. Negative values are treated as zero.
func WithGameOverDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d < 0 {
			d = 0
		}
		c.gameOverDelay = d
	}
}

// WithMana replaces the default full pool.
func WithMana(p *mana.Pool) Option {
	return func(c *Controller) {
		if p != nil {
			c.pool = p
		}
	}
}

// WithClock overrides the time source used to schedule the game-over reset.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a controller and builds the piece layer from the current
// position. A position that is already decided schedules the game-over
// reset straight away.
func New(r Rules, s Scene, opts ...Option) *Controller {
	c := &Controller{
		rules:         r,
		scene:         s,
		listener:      NopListener{},
		pool:          mana.NewPool(mana.Max),
		selected:      board.NoSquare,
		objects:       make(map[board.Square]scene.ObjectID),
		gameOverDelay: DefaultGameOverDelay,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Resync()
	c.checkGameOver()
	return c
}

// Click feeds a click on sq into the state machine.
func (c *Controller) Click(sq board.Square) {
	if c.pending != nil || !sq.IsValid() {
		return
	}

	switch c.mode {
	case Targeting:
		a := c.ability
		c.clearSelection()
		if _, err := c.Activate(a, sq); err != nil {
			log.Printf("[ABILITY] %s on %s: %v", a, sq, err)
		}

	case Armed:
		from := c.selected
		c.clearSelection()
		c.move(from, sq)

	default:
		ps, ok := c.rules.PieceAt(sq)
		if !ok || ps.Piece.Color != c.rules.Turn() {
			return
		}
		c.mode = Armed
		c.selected = sq
		c.listener.OnSelect(sq)
	}
}

func (c *Controller) move(from, to board.Square) {
	rec, err := c.rules.AttemptMove(from, to, board.NoKind)
	if err != nil {
		log.Printf("[MOVE] %v", err)
		c.listener.OnIllegalMove(from, to, err)
		return
	}
	log.Printf("[MOVE] %s %s", rec.Piece.Color, rec.SAN)

	c.Resync()
	c.listener.OnMove(rec)
	c.checkGameOver()
}

// Selection returns the armed square, or NoSquare.
func (c *Controller) Selection() board.Square {
	return c.selected
}

// Mode returns the current input mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// ArmedAbility returns the ability awaiting a target when in Targeting mode.
func (c *Controller) ArmedAbility() (mana.Ability, bool) {
	return c.ability, c.mode == Targeting
}

// Mana returns the pool.
func (c *Controller) Mana() *mana.Pool {
	return c.pool
}

// Pending returns the announced-but-not-yet-applied game over, if any.
func (c *Controller) Pending() (GameOver, bool) {
	if c.pending == nil {
		return GameOver{}, false
	}
	return *c.pending, true
}

// ObjectAt returns the scene object standing for the piece on sq.
func (c *Controller) ObjectAt(sq board.Square) (scene.ObjectID, bool) {
	id, ok := c.objects[sq]
	return id, ok
}

func (c *Controller) clearSelection() {
	c.mode = Idle
	c.selected = board.NoSquare
}

// CancelSelection drops any armed piece or ability.
func (c *Controller) CancelSelection() {
	c.clearSelection()
}

// ArmAbility makes the next click the target of a. The pool is checked
// here so the player hears about a shortfall before choosing a target.
func (c *Controller) ArmAbility(a mana.Ability) error {
	if c.pending != nil {
		return ErrBusy
	}
	if !a.Valid() {
		return fmt.Errorf("unknown ability %d", a)
	}
	if !c.pool.CanAfford(a.Cost()) {
		err := fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientMana, a, a.Cost(), c.pool.Value())
		c.listener.OnAbilityRejected(a, err)
		return err
	}
	c.mode = Targeting
	c.selected = board.NoSquare
	c.ability = a
	return nil
}

// CancelAbility leaves Targeting mode.
func (c *Controller) CancelAbility() {
	if c.mode == Targeting {
		c.clearSelection()
	}
}

// Activate casts a on target immediately. It does not consume a turn.
// The cost is debited before the effect is attempted; an effect that finds
// no valid target returns ErrNoTarget with the outcome and no refund.
func (c *Controller) Activate(a mana.Ability, target board.Square) (AbilityOutcome, error) {
	if c.pending != nil {
		return AbilityOutcome{}, ErrBusy
	}
	if !a.Valid() {
		return AbilityOutcome{}, fmt.Errorf("unknown ability %d", a)
	}

	cost := a.Cost()
	if err := c.pool.Spend(cost); err != nil {
		err = fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientMana, a, cost, c.pool.Value())
		c.listener.OnAbilityRejected(a, err)
		return AbilityOutcome{}, err
	}

	ps, _ := c.rules.PieceAt(target)
	out := AbilityOutcome{
		Ability: a,
		Target:  target,
		Piece:   ps.Piece,
		Cost:    cost,
		Mana:    c.pool.Value(),
		Applied: c.rules.ApplyAbility(a.Effect(), target),
	}
	if !out.Applied {
		log.Printf("[ABILITY] %s on %s fizzled, mana %d", a, target, out.Mana)
		c.listener.OnAbility(out)
		return out, fmt.Errorf("%w: %s on %s", ErrNoTarget, a, target)
	}
	log.Printf("[ABILITY] %s on %s (%s), mana %d", a, target, ps.Piece.Name(), out.Mana)

	if a.Effect() == rules.Remove {
		c.clearSelection()
		c.Resync()
	}
	c.listener.OnAbility(out)
	if a.Effect() == rules.Remove {
		c.checkGameOver()
	}
	return out, nil
}

// Undo takes back the last move.
func (c *Controller) Undo() (rules.MoveRecord, bool) {
	if c.pending != nil {
		return rules.MoveRecord{}, false
	}
	rec, ok := c.rules.Undo()
	if !ok {
		return rec, false
	}
	c.clearSelection()
	c.Resync()
	log.Printf("[MOVE] undo %s", rec.SAN)
	return rec, true
}

// NewGame starts over at the player's request: the position resets and
// the mana pool is refilled. A pending game over is discarded.
func (c *Controller) NewGame() {
	c.pool.Refill()
	c.reset()
	log.Printf("[GAME] new game")
}

// reset restores the start position and rebuilds the piece layer. The mana
// pool is left as it is.
func (c *Controller) reset() {
	c.pending = nil
	c.clearSelection()
	c.rules.Reset()
	c.Resync()
	c.listener.OnReset()
}

// Resync rebuilds every piece object from a fresh snapshot.
func (c *Controller) Resync() {
	c.scene.RemovePieces()
	clear(c.objects)
	snap := c.rules.Board()
	for _, ps := range snap.Pieces() {
		c.objects[ps.Square] = c.scene.AddPiece(ps.Piece, ps.Square)
	}
}

func (c *Controller) checkGameOver() {
	res := c.rules.Result()
	if res == rules.Ongoing {
		return
	}
	c.pending = &GameOver{Result: res, Winner: c.rules.Winner()}
	c.dueAt = c.now().Add(c.gameOverDelay)
	c.clearSelection()
	log.Printf("[GAME] %s, resetting in %v", c.pending, c.gameOverDelay)
}

// Tick fires the pending game-over announcement once its delay has passed,
// then resets the board. Mana carries over. It reports whether a reset
// happened.
func (c *Controller) Tick(now time.Time) bool {
	if c.pending == nil || now.Before(c.dueAt) {
		return false
	}
	over := *c.pending
	c.pending = nil
	c.listener.OnGameOver(over)
	c.reset()
	log.Printf("[GAME] board reset, mana %d", c.pool.Value())
	return true
}
