// Package console drives a game from a line-oriented text stream. It runs
// the same controller as the graphical front end, without a window.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/boardsync"
	"github.com/hailam/chess3d/internal/config"
	"github.com/hailam/chess3d/internal/mana"
	"github.com/hailam/chess3d/internal/rules"
	"github.com/hailam/chess3d/internal/scene"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

// Console is a text front end over a boardsync.Controller.
type Console struct {
	boardsync.NopListener

	out   io.Writer
	rules *rules.Adapter
	graph *scene.Graph
	ctrl  *boardsync.Controller
	opts  []boardsync.Option
	now   func() time.Time
}

// New creates a console at the starting position that writes to out.
// Extra listeners receive every controller event after the console.
func New(out io.Writer, cfg config.Config, extra ...boardsync.Listener) *Console {
	c := &Console{
		out:   out,
		rules: rules.New(),
		graph: scene.NewGraph(scene.DefaultCamera(float64(cfg.WindowWidth), float64(cfg.WindowHeight))),
		now:   time.Now,
	}
	c.graph.AddTiles()

	listeners := append(boardsync.Listeners{c}, extra...)
	c.opts = []boardsync.Option{
		boardsync.WithListener(listeners),
		boardsync.WithGameOverDelay(cfg.GameOverDelay),
		boardsync.WithClock(func() time.Time { return c.now() }),
	}
	c.ctrl = boardsync.New(c.rules, c.graph, append(c.opts, boardsync.WithMana(mana.NewPool(cfg.StartingMana)))...)
	return c
}

// Controller returns the underlying controller.
func (c *Console) Controller() *boardsync.Controller {
	return c.ctrl
}

// Run reads commands from in until EOF, quit or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err := c.Execute(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. A pending game over is settled
// before the command runs.
func (c *Console) Execute(line string) error {
	c.ctrl.Tick(c.now())

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "click":
		return c.handleClick(args)
	case "move":
		return c.handleMove(args)
	case "arm":
		return c.handleArm(args)
	case "ability", "cast":
		return c.handleAbility(args)
	case "cancel":
		c.ctrl.CancelSelection()
	case "undo":
		return c.handleUndo()
	case "board", "d":
		c.printBoard()
	case "reset", "new":
		c.ctrl.NewGame()
	case "fen":
		return c.handleFEN(args)
	case "mana":
		fmt.Fprintf(c.out, "mana %d/%d\n", c.ctrl.Mana().Value(), mana.Max)
	case "history":
		c.printHistory()
	case "status":
		c.printStatus()
	case "help":
		c.printHelp()
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func parseSquares(args []string, n int) ([]board.Square, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d square(s), got %d", n, len(args))
	}
	out := make([]board.Square, n)
	for i, a := range args {
		sq, err := board.ParseSquare(a)
		if err != nil {
			return nil, err
		}
		out[i] = sq
	}
	return out, nil
}

func (c *Console) busy() error {
	if over, ok := c.ctrl.Pending(); ok {
		return fmt.Errorf("%w: %s", boardsync.ErrBusy, over)
	}
	return nil
}

// handleClick feeds one square click, exactly as a pointer pick would.
func (c *Console) handleClick(args []string) error {
	sqs, err := parseSquares(args, 1)
	if err != nil {
		return err
	}
	if err := c.busy(); err != nil {
		return err
	}
	c.ctrl.Click(sqs[0])
	return nil
}

// handleMove clicks the origin then the destination.
func (c *Console) handleMove(args []string) error {
	sqs, err := parseSquares(args, 2)
	if err != nil {
		return err
	}
	if err := c.busy(); err != nil {
		return err
	}
	c.ctrl.CancelSelection()
	c.ctrl.Click(sqs[0])
	if c.ctrl.Selection() != sqs[0] {
		return fmt.Errorf("no piece of the side to move on %s", sqs[0])
	}
	c.ctrl.Click(sqs[1])
	return nil
}

func (c *Console) handleArm(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: arm <ability>")
	}
	a, err := mana.ParseAbility(args[0])
	if err != nil {
		return err
	}
	if err := c.ctrl.ArmAbility(a); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "armed %s, click a target\n", a)
	return nil
}

func (c *Console) handleAbility(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: ability <name> <square>")
	}
	a, err := mana.ParseAbility(args[0])
	if err != nil {
		return err
	}
	sqs, err := parseSquares(args[1:], 1)
	if err != nil {
		return err
	}
	_, err = c.ctrl.Activate(a, sqs[0])
	return err
}

func (c *Console) handleUndo() error {
	if err := c.busy(); err != nil {
		return err
	}
	rec, ok := c.ctrl.Undo()
	if !ok {
		return errors.New("nothing to undo")
	}
	fmt.Fprintf(c.out, "undo %s\n", rec.SAN)
	return nil
}

// handleFEN prints the current position, or loads one.
// Formats:
//   - fen
//   - fen <fen>
func (c *Console) handleFEN(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(c.out, c.rules.FEN())
		return nil
	}
	if err := c.busy(); err != nil {
		return err
	}
	a, err := rules.NewFromFEN(strings.Join(args, " "))
	if err != nil {
		return err
	}
	c.rules = a
	c.ctrl = boardsync.New(a, c.graph, append(c.opts, boardsync.WithMana(c.ctrl.Mana()))...)
	fmt.Fprintf(c.out, "position set, %s to move\n", a.Turn())
	return nil
}

func (c *Console) printBoard() {
	snap := c.rules.Board()
	fmt.Fprint(c.out, snap.String())
	fmt.Fprintf(c.out, "%s to move, mana %d, %d pieces on the scene\n",
		c.rules.Turn(), c.ctrl.Mana().Value(), len(c.graph.Pieces()))
}

func (c *Console) printHistory() {
	history := c.rules.History()
	if len(history) == 0 {
		fmt.Fprintln(c.out, "no moves")
		return
	}
	var sb strings.Builder
	for i, rec := range history {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. ", i/2+1)
		}
		sb.WriteString(rec.SAN)
		sb.WriteByte(' ')
	}
	fmt.Fprintln(c.out, strings.TrimSpace(sb.String()))
}

func (c *Console) printStatus() {
	if over, ok := c.ctrl.Pending(); ok {
		fmt.Fprintf(c.out, "game over: %s\n", over)
		return
	}
	switch c.ctrl.Mode() {
	case boardsync.Armed:
		fmt.Fprintf(c.out, "%s to move, %s selected\n", c.rules.Turn(), c.ctrl.Selection())
	case boardsync.Targeting:
		a, _ := c.ctrl.ArmedAbility()
		fmt.Fprintf(c.out, "%s to move, aiming %s\n", c.rules.Turn(), a)
	default:
		fmt.Fprintf(c.out, "%s to move\n", c.rules.Turn())
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `commands:
  click <sq>             select a piece, pick a destination or a target
  move <from> <to>       select and move in one step
  arm <ability>          aim an ability (heal, inferno)
  ability <ability> <sq> cast an ability at once
  cancel                 drop the selection
  undo                   take back the last move
  board | d              print the board
  reset | new            start a new game
  fen [<fen>]            print or set the position
  mana | history | status
  quit
`)
}

// OnSelect reports the armed square.
func (c *Console) OnSelect(sq board.Square) {
	fmt.Fprintf(c.out, "selected %s\n", sq)
}

// OnMove reports an applied move.
func (c *Console) OnMove(rec rules.MoveRecord) {
	fmt.Fprintf(c.out, "move %s\n", rec.SAN)
}

// OnIllegalMove reports a rejected move.
func (c *Console) OnIllegalMove(from, to board.Square, err error) {
	fmt.Fprintf(c.out, "illegal %s%s: %v\n", from, to, err)
}

// OnAbility reports a paid ability cast.
func (c *Console) OnAbility(out boardsync.AbilityOutcome) {
	if !out.Applied {
		fmt.Fprintf(c.out, "%s fizzled on %s, mana %d\n", out.Ability, out.Target, out.Mana)
		return
	}
	fmt.Fprintf(c.out, "%s on %s (%s), mana %d\n", out.Ability, out.Target, out.Piece.Name(), out.Mana)
}

// OnAbilityRejected reports a refused ability.
func (c *Console) OnAbilityRejected(a mana.Ability, err error) {
	fmt.Fprintf(c.out, "rejected %s: %v\n", a, err)
}

// OnGameOver reports the result.
func (c *Console) OnGameOver(over boardsync.GameOver) {
	fmt.Fprintf(c.out, "game over: %s\n", over)
}

// OnReset reports a new game.
func (c *Console) OnReset() {
	fmt.Fprintln(c.out, "new game")
}
