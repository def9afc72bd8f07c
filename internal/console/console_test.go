package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/chess3d/internal/boardsync"
	"github.com/hailam/chess3d/internal/config"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func newConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := New(&out, config.Default())
	return c, &out
}

func exec(t *testing.T, c *Console, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if err := c.Execute(l); err != nil {
			t.Fatalf("Execute(%q): %v", l, err)
		}
	}
}

func TestMoveUpdatesPosition(t *testing.T) {
	c, out := newConsole(t)
	exec(t, c, "move e2 e4")

	if !strings.Contains(out.String(), "move e4") {
		t.Errorf("output %q lacks the move", out.String())
	}
	out.Reset()
	exec(t, c, "fen")
	if got := out.String(); !strings.Contains(got, "4P3") || !strings.Contains(got, " b ") {
		t.Errorf("fen after e4 = %q", got)
	}
	if n := len(c.graph.Pieces()); n != 32 {
		t.Errorf("scene has %d pieces, want 32", n)
	}
}

func TestClickSequence(t *testing.T) {
	c, out := newConsole(t)
	exec(t, c, "click g1", "click f3")

	want := "selected g1\nmove Nf3\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestIllegalMoveReported(t *testing.T) {
	c, out := newConsole(t)
	exec(t, c, "move e2 e5")

	if !strings.Contains(out.String(), "illegal e2e5") {
		t.Errorf("output %q lacks the rejection", out.String())
	}
	if got := c.rules.FEN(); got != startFEN {
		t.Errorf("position changed after illegal move: %s", got)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"move e3 e4", "no piece of the side to move"},
		{"move e7 e5", "no piece of the side to move"},
		{"move e2", "want 2 square(s)"},
		{"click z9", ""},
		{"ability fireball e4", "unknown ability"},
		{"ability inferno e4", "no valid target"},
		{"undo", "nothing to undo"},
		{"fen not a fen", "parse fen"},
		{"fen 8/8/8/8/8/8/4P3/8 w - - 0 1", "exactly one king"},
		{"frobnicate", "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c, _ := newConsole(t)
			err := c.Execute(tt.line)
			if err == nil {
				t.Fatalf("Execute(%q) succeeded", tt.line)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestAbilityCommands(t *testing.T) {
	c, out := newConsole(t)
	exec(t, c, "ability inferno d7")

	if !strings.Contains(out.String(), "Inferno on d7 (Black Pawn), mana 70") {
		t.Errorf("output %q lacks the cast", out.String())
	}
	if got := c.ctrl.Mana().Value(); got != 70 {
		t.Errorf("mana = %d, want 70", got)
	}

	out.Reset()
	exec(t, c, "arm heal", "click e2")
	if got := c.ctrl.Mana().Value(); got != 50 {
		t.Errorf("mana after heal = %d, want 50", got)
	}
	if c.ctrl.Mode() != boardsync.Idle {
		t.Errorf("mode = %s, want idle", c.ctrl.Mode())
	}
}

func TestCheckmateResetsAfterDelay(t *testing.T) {
	c, out := newConsole(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	exec(t, c, "move f2 f3", "move e7 e5", "move g2 g4", "move d8 h4")
	if _, ok := c.ctrl.Pending(); !ok {
		t.Fatal("expected a pending game over after fool's mate")
	}

	err := c.Execute("move e2 e4")
	if !errors.Is(err, boardsync.ErrBusy) {
		t.Errorf("move while pending = %v, want ErrBusy", err)
	}

	now = now.Add(time.Second)
	out.Reset()
	exec(t, c, "status")
	want := "game over: Black wins by checkmate\nnew game\nWhite to move\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if got := c.rules.FEN(); got != startFEN {
		t.Errorf("fen after reset = %s", got)
	}
}

func TestFENLoadKeepsMana(t *testing.T) {
	c, out := newConsole(t)
	exec(t, c, "ability inferno a7", "fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1")

	if !strings.Contains(out.String(), "position set, White to move") {
		t.Errorf("output %q", out.String())
	}
	if n := len(c.graph.Pieces()); n != 3 {
		t.Errorf("scene has %d pieces, want 3", n)
	}
	if got := c.ctrl.Mana().Value(); got != 70 {
		t.Errorf("mana = %d, want 70", got)
	}
	exec(t, c, "move e1 g1")
	if got := c.rules.FEN(); !strings.HasPrefix(got, "4k3/8/8/8/8/8/8/5RK1 b") {
		t.Errorf("fen after castling = %s", got)
	}
}

func TestFENLoadsDecidedPosition(t *testing.T) {
	c, out := newConsole(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	exec(t, c, "fen rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if _, ok := c.ctrl.Pending(); !ok {
		t.Fatal("mated position loaded without a pending game over")
	}

	now = now.Add(time.Second)
	out.Reset()
	exec(t, c, "fen")
	want := "game over: Black wins by checkmate\nnew game\n" + startFEN + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFizzledCastCostsMana(t *testing.T) {
	c, out := newConsole(t)
	if err := c.Execute("ability inferno e4"); !errors.Is(err, boardsync.ErrNoTarget) {
		t.Fatalf("cast on empty square = %v, want ErrNoTarget", err)
	}
	if !strings.Contains(out.String(), "Inferno fizzled on e4, mana 70") {
		t.Errorf("output %q", out.String())
	}
	if got := c.ctrl.Mana().Value(); got != 70 {
		t.Errorf("mana = %d, want 70", got)
	}
}

func TestRunStopsAtQuit(t *testing.T) {
	c, out := newConsole(t)
	in := strings.NewReader("# opening\nmove e2 e4\n\nbogus\nquit\nmove e7 e5\n")
	if err := c.Run(context.Background(), in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "move e4") || !strings.Contains(got, `error: unknown command "bogus"`) {
		t.Errorf("output %q", got)
	}
	if strings.Contains(got, "move e5") {
		t.Error("commands after quit should not run")
	}
}

func TestRunHonoursContext(t *testing.T) {
	c, _ := newConsole(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx, strings.NewReader("board\n")); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}
