package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/chess3d/internal/board"
)

const startPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func sq(s string) board.Square {
	return board.MustParseSquare(s)
}

func mustFEN(t *testing.T, fen string) *Adapter {
	t.Helper()
	a, err := NewFromFEN(fen)
	if err != nil {
		t.Fatalf("NewFromFEN(%q) failed: %v", fen, err)
	}
	return a
}

func play(t *testing.T, a *Adapter, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if _, err := a.AttemptMove(sq(m[:2]), sq(m[2:4]), board.NoKind); err != nil {
			t.Fatalf("move %s failed: %v", m, err)
		}
	}
}

func TestSquareConversion(t *testing.T) {
	for _, s := range board.AllSquares() {
		if got := fromEngineSquare(toEngineSquare(s)); got != s {
			t.Errorf("conversion round trip %v -> %v", s, got)
		}
		if toEngineSquare(s).String() != s.String() {
			t.Errorf("engine square %v names %s, want %s", toEngineSquare(s), toEngineSquare(s).String(), s.String())
		}
	}
}

func TestResetRestoresStart(t *testing.T) {
	a := New()
	play(t, a, "e2e4", "e7e5", "g1f3")

	snap := a.Reset()
	if got := snap.Placement(); got != startPlacement {
		t.Errorf("Reset() placement = %s, want %s", got, startPlacement)
	}
	if got := a.Board(); got.Placement() != startPlacement {
		t.Errorf("Board() after reset = %s", got.Placement())
	}
	if a.Turn() != board.White {
		t.Errorf("Turn() after reset = %v, want White", a.Turn())
	}
	if len(a.History()) != 0 {
		t.Errorf("History() after reset has %d moves", len(a.History()))
	}
}

func TestAttemptMoveLegal(t *testing.T) {
	a := New()
	rec, err := a.AttemptMove(sq("e2"), sq("e4"), board.NoKind)
	if err != nil {
		t.Fatalf("e2e4 failed: %v", err)
	}

	want := MoveRecord{
		From:      sq("e2"),
		To:        sq("e4"),
		Piece:     board.NewPiece(board.Pawn, board.White),
		Captured:  board.NoPiece,
		Promotion: board.NoKind,
		SAN:       "e4",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("MoveRecord mismatch (-want +got):\n%s", diff)
	}

	ps, ok := a.PieceAt(sq("e4"))
	if !ok || ps.Piece != board.NewPiece(board.Pawn, board.White) {
		t.Errorf("PieceAt(e4) = %+v, %v; want white pawn", ps, ok)
	}
	if _, ok := a.PieceAt(sq("e2")); ok {
		t.Error("e2 should be empty after e2e4")
	}
	if a.Turn() != board.Black {
		t.Errorf("Turn() = %v, want Black", a.Turn())
	}
}

func TestAttemptMoveRejected(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		reason   error
	}{
		{"empty origin", "e4", "e5", ErrNoPiece},
		{"wrong turn", "e7", "e5", ErrWrongTurn},
		{"illegal pawn jump", "e2", "e5", ErrIllegalMove},
		{"same square", "e2", "e2", ErrIllegalMove},
		{"blocked by own piece", "a1", "a2", ErrIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New()
			before := a.FEN()

			_, err := a.AttemptMove(sq(tt.from), sq(tt.to), board.NoKind)
			if err == nil {
				t.Fatalf("%s%s should be rejected", tt.from, tt.to)
			}
			var moveErr *MoveError
			if !errors.As(err, &moveErr) {
				t.Fatalf("error %v is not a *MoveError", err)
			}
			if !errors.Is(err, tt.reason) {
				t.Errorf("error %v, want reason %v", err, tt.reason)
			}
			if a.FEN() != before {
				t.Errorf("position changed on failure: %s -> %s", before, a.FEN())
			}
		})
	}
}

func TestAttemptMoveLeavingKingInCheck(t *testing.T) {
	// The e2 bishop is pinned by the e8 rook.
	a := mustFEN(t, "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	before := a.FEN()
	if _, err := a.AttemptMove(sq("e2"), sq("d3"), board.NoKind); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("pinned bishop move error = %v, want ErrIllegalMove", err)
	}
	if a.FEN() != before {
		t.Error("position changed after rejected pinned move")
	}
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		promo board.PieceKind
		want  board.PieceKind
	}{
		{board.NoKind, board.Queen},
		{board.Queen, board.Queen},
		{board.Knight, board.Knight},
		{board.Rook, board.Rook},
	}
	for _, tt := range tests {
		a := mustFEN(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
		rec, err := a.AttemptMove(sq("a7"), sq("a8"), tt.promo)
		if err != nil {
			t.Fatalf("promotion to %v failed: %v", tt.promo, err)
		}
		if rec.Promotion != tt.want {
			t.Errorf("record promotion = %v, want %v", rec.Promotion, tt.want)
		}
		ps, _ := a.PieceAt(sq("a8"))
		if ps.Piece != board.NewPiece(tt.want, board.White) {
			t.Errorf("a8 holds %v, want white %v", ps.Piece.Name(), tt.want)
		}
	}
}

func TestCastlingAndEnPassantRecords(t *testing.T) {
	a := New()
	play(t, a, "e2e4", "a7a6", "e4e5", "d7d5")
	rec, err := a.AttemptMove(sq("e5"), sq("d6"), board.NoKind)
	if err != nil {
		t.Fatalf("en passant failed: %v", err)
	}
	if !rec.EnPassant || !rec.IsCapture() {
		t.Errorf("en passant record = %+v", rec)
	}
	if _, ok := a.PieceAt(sq("d5")); ok {
		t.Error("captured pawn on d5 should be gone")
	}

	b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	rec, err = b.AttemptMove(sq("e1"), sq("g1"), board.NoKind)
	if err != nil {
		t.Fatalf("castling failed: %v", err)
	}
	if !rec.Castle || rec.SAN != "O-O" {
		t.Errorf("castle record = %+v", rec)
	}
	if ps, ok := b.PieceAt(sq("f1")); !ok || ps.Piece.Kind != board.Rook {
		t.Error("rook should be on f1 after castling")
	}
}

func TestUndo(t *testing.T) {
	a := New()
	if _, ok := a.Undo(); ok {
		t.Fatal("Undo() on empty history should report false")
	}
	if got := a.Board(); got.Placement() != startPlacement {
		t.Fatal("Undo() on empty history changed the board")
	}

	play(t, a, "e2e4", "e7e5")
	rec, ok := a.Undo()
	if !ok {
		t.Fatal("Undo() should succeed after two moves")
	}
	if rec.From != sq("e7") || rec.To != sq("e5") {
		t.Errorf("undone move = %s%s, want e7e5", rec.From, rec.To)
	}
	if a.Turn() != board.Black {
		t.Errorf("Turn() after undo = %v, want Black", a.Turn())
	}
	if len(a.History()) != 1 || a.History()[0].SAN != "e4" {
		t.Errorf("History() after undo = %+v", a.History())
	}

	a.Undo()
	if got := a.Board(); got.Placement() != startPlacement || a.Turn() != board.White {
		t.Error("two undos should restore the starting position")
	}
}

func TestCheckmate(t *testing.T) {
	a := New()
	play(t, a, "f2f3", "e7e5", "g2g4")
	if a.IsGameOver() {
		t.Fatal("game should not be over before the mating move")
	}
	rec, err := a.AttemptMove(sq("d8"), sq("h4"), board.NoKind)
	if err != nil {
		t.Fatalf("Qh4 failed: %v", err)
	}
	t.Log("Mating move:", rec.SAN)

	if !rec.Check {
		t.Error("mating move should be tagged as check")
	}
	if !a.IsGameOver() {
		t.Error("IsGameOver() should be true after fool's mate")
	}
	if a.Result() != Checkmate {
		t.Errorf("Result() = %v, want checkmate", a.Result())
	}
	if a.Winner() != board.Black {
		t.Errorf("Winner() = %v, want Black", a.Winner())
	}

	a.Reset()
	if a.IsGameOver() || a.Result() != Ongoing {
		t.Error("reset game should be ongoing")
	}
	if got := a.Board(); got.Placement() != startPlacement {
		t.Error("reset should restore the starting position")
	}
}

func TestDraws(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"},
		{"insufficient material", "8/8/8/4k3/8/8/8/4K3 w - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustFEN(t, tt.fen)
			if a.Result() != Draw {
				t.Errorf("Result() = %v, want draw", a.Result())
			}
			if !a.IsGameOver() {
				t.Error("IsGameOver() should be true")
			}
			if a.Winner() != board.NoColor {
				t.Errorf("Winner() = %v, want NoColor", a.Winner())
			}
		})
	}

	t.Run("threefold repetition", func(t *testing.T) {
		a := New()
		play(t, a, "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8")
		if a.Result() != Draw {
			t.Errorf("Result() = %v, want draw", a.Result())
		}
	})
}

func TestApplyAbilityRemove(t *testing.T) {
	a := New()
	if !a.ApplyAbility(Remove, sq("e7")) {
		t.Fatal("removing e7 should succeed")
	}
	if _, ok := a.PieceAt(sq("e7")); ok {
		t.Error("e7 should be empty after removal")
	}
	if a.Turn() != board.White {
		t.Errorf("removal changed the side to move to %v", a.Turn())
	}
	if got := a.Board(); got.Count() != 31 {
		t.Errorf("piece count = %d, want 31", got.Count())
	}

	// Normal play continues from the edited position.
	play(t, a, "e2e4")
	if a.Turn() != board.Black {
		t.Error("turn should alternate normally after an ability")
	}
}

func TestApplyAbilityEmptyTarget(t *testing.T) {
	a := New()
	before := a.FEN()
	for _, effect := range []AbilityEffect{Heal, Remove} {
		if a.ApplyAbility(effect, sq("e4")) {
			t.Errorf("%v on empty e4 should return false", effect)
		}
	}
	if a.FEN() != before {
		t.Error("ability on empty square changed the position")
	}
}

func TestApplyAbilityHealIsNoOp(t *testing.T) {
	a := New()
	before := a.FEN()
	if !a.ApplyAbility(Heal, sq("d1")) {
		t.Error("heal on occupied square should succeed")
	}
	if a.FEN() != before {
		t.Error("heal changed the position")
	}
}

func TestApplyAbilityRefusals(t *testing.T) {
	a := New()
	if a.ApplyAbility(Remove, sq("e8")) {
		t.Error("kings cannot be removed")
	}

	// Removing the e7 pawn would let the e1 rook take the king.
	b := mustFEN(t, "4k3/4p3/8/8/8/8/8/4RK2 w - - 0 1")
	before := b.FEN()
	if b.ApplyAbility(Remove, sq("e7")) {
		t.Error("removal exposing the waiting king should be refused")
	}
	if b.FEN() != before {
		t.Error("refused removal changed the position")
	}
}

func TestApplyAbilityStripsCastling(t *testing.T) {
	a := New()
	a.ApplyAbility(Remove, sq("h1"))
	fields := strings.Fields(a.FEN())
	if fields[2] != "Qkq" {
		t.Errorf("castling rights = %s, want Qkq", fields[2])
	}

	if _, err := a.AttemptMove(sq("g1"), sq("f3"), board.NoKind); err != nil {
		t.Fatalf("g1f3 failed: %v", err)
	}
}

func TestStripHelpers(t *testing.T) {
	if got := stripCastling("KQkq", sq("a8")); got != "KQk" {
		t.Errorf("stripCastling(a8) = %s", got)
	}
	if got := stripCastling("K", sq("h1")); got != "-" {
		t.Errorf("stripCastling(h1) = %s", got)
	}
	if got := stripCastling("KQ", sq("d4")); got != "KQ" {
		t.Errorf("stripCastling(d4) = %s", got)
	}
	if got := clearEnPassant("e3", sq("e4")); got != "-" {
		t.Errorf("clearEnPassant(e3, e4) = %s", got)
	}
	if got := clearEnPassant("d6", sq("e5")); got != "d6" {
		t.Errorf("clearEnPassant(d6, e5) = %s", got)
	}
}

func TestLegalTargets(t *testing.T) {
	a := New()
	got := a.LegalTargets(sq("g1"))
	want := map[board.Square]bool{sq("f3"): true, sq("h3"): true}
	if len(got) != len(want) {
		t.Fatalf("LegalTargets(g1) = %v", got)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected target %v", s)
		}
	}
	if len(a.LegalTargets(sq("e7"))) != 0 {
		t.Error("black pieces have no targets on white's turn")
	}
}

func TestNewFromFENRequiresKings(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"no kings", "8/8/8/8/8/8/4P3/8 w - - 0 1"},
		{"no black king", "8/8/8/8/8/8/4P3/4K3 w - - 0 1"},
		{"two white kings", "4k3/8/8/8/8/8/8/K3K3 w - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFromFEN(tt.fen); !errors.Is(err, ErrKingCount) {
				t.Errorf("NewFromFEN(%q) = %v, want ErrKingCount", tt.fen, err)
			}
		})
	}

	if _, err := NewFromFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"); err != nil {
		t.Errorf("one king a side rejected: %v", err)
	}
}
