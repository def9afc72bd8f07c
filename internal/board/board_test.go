package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const startPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func TestSquareRoundTrip(t *testing.T) {
	for _, sq := range AllSquares() {
		name := sq.String()
		parsed, err := ParseSquare(name)
		if err != nil {
			t.Fatalf("ParseSquare(%q) failed: %v", name, err)
		}
		if parsed != sq {
			t.Errorf("round trip %v -> %q -> %v", sq, name, parsed)
		}
		if NewSquare(sq.File(), sq.Rank()) != sq {
			t.Errorf("NewSquare(%d, %d) != %v", sq.File(), sq.Rank(), sq)
		}
	}
}

func TestSquareNotation(t *testing.T) {
	tests := []struct {
		file, rank int
		want       string
	}{
		{0, 0, "a8"},
		{7, 0, "h8"},
		{0, 7, "a1"},
		{4, 6, "e2"},
		{4, 4, "e4"},
		{7, 7, "h1"},
	}
	for _, tt := range tests {
		if got := NewSquare(tt.file, tt.rank).String(); got != tt.want {
			t.Errorf("NewSquare(%d, %d) = %s, want %s", tt.file, tt.rank, got, tt.want)
		}
	}
	if E1.String() != "e1" || E8.String() != "e8" {
		t.Errorf("named constants: E1=%s E8=%s", E1, E8)
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "e9", "i1", "a0", "e44", "E2"} {
		if sq, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) = %v, expected error", s, sq)
		}
	}
	if NewSquare(8, 0) != NoSquare || NewSquare(0, -1) != NoSquare {
		t.Error("out-of-range coordinates should yield NoSquare")
	}
}

func TestSquareColor(t *testing.T) {
	if !MustParseSquare("h1").IsLight() {
		t.Error("h1 should be light")
	}
	if MustParseSquare("a1").IsLight() {
		t.Error("a1 should be dark")
	}
}

func TestPieceChars(t *testing.T) {
	for _, c := range []byte("PNBRQKpnbrqk") {
		p := PieceFromChar(c)
		if p.IsNone() {
			t.Fatalf("PieceFromChar(%c) returned NoPiece", c)
		}
		if p.String() != string(c) {
			t.Errorf("PieceFromChar(%c).String() = %s", c, p.String())
		}
	}
	if !PieceFromChar('x').IsNone() {
		t.Error("PieceFromChar('x') should be NoPiece")
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	snap, err := ParsePlacement(startPlacement)
	if err != nil {
		t.Fatalf("ParsePlacement failed: %v", err)
	}
	t.Log(snap.String())

	if got := snap.Placement(); got != startPlacement {
		t.Errorf("Placement() = %s, want %s", got, startPlacement)
	}
	if snap.Count() != 32 {
		t.Errorf("Count() = %d, want 32", snap.Count())
	}

	e2 := snap.At(MustParseSquare("e2"))
	want := &PieceState{Piece: NewPiece(Pawn, White), Square: MustParseSquare("e2")}
	if diff := cmp.Diff(want, e2); diff != "" {
		t.Errorf("At(e2) mismatch (-want +got):\n%s", diff)
	}
	if snap.At(MustParseSquare("e4")) != nil {
		t.Error("e4 should be empty")
	}

	pieces := snap.Pieces()
	if pieces[0].Square != A8 || pieces[0].Piece != NewPiece(Rook, Black) {
		t.Errorf("first piece = %+v, want black rook on a8", pieces[0])
	}
}

func TestSnapshotEqual(t *testing.T) {
	a, _ := ParsePlacement(startPlacement)
	b, _ := ParsePlacement(startPlacement)
	if !a.Equal(&b) {
		t.Error("identical placements should be equal")
	}
	b.Set(MustParseSquare("e2"), NoPiece)
	if a.Equal(&b) {
		t.Error("snapshots differing on e2 should not be equal")
	}
}

func TestParsePlacementErrors(t *testing.T) {
	for _, p := range []string{
		"8/8/8/8/8/8/8",
		"9/8/8/8/8/8/8/8",
		"rnbqkbnrr/8/8/8/8/8/8/8",
		"xnbqkbnr/8/8/8/8/8/8/8",
	} {
		if _, err := ParsePlacement(p); err == nil {
			t.Errorf("ParsePlacement(%q) expected error", p)
		}
	}
}
