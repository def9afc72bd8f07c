package assets

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hailam/chess3d/internal/board"
)

func collect(t *testing.T, l *Loader, n int) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(10 * time.Second)
	for len(out) < n {
		select {
		case ev := <-l.Events():
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("got %d of %d events before timeout", len(out), n)
		}
	}
	return out
}

func TestLoaderEmbedded(t *testing.T) {
	l := NewLoader(48)
	l.Start(context.Background())

	events := collect(t, l, 12)
	seen := make(map[board.Piece]bool)
	for _, ev := range events {
		if !ev.Ready() {
			t.Errorf("%s failed: %v", ev.Piece.Name(), ev.Err)
			continue
		}
		if b := ev.Image.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
			t.Errorf("%s: bounds %v", ev.Piece.Name(), b)
		}
		seen[ev.Piece] = true
	}
	if len(seen) != 12 {
		t.Errorf("distinct pieces = %d, want 12", len(seen))
	}
}

func TestLoaderSidesDiffer(t *testing.T) {
	l := NewLoader(32)
	l.Start(context.Background())

	images := make(map[board.Piece][]uint8)
	for _, ev := range collect(t, l, 12) {
		if ev.Ready() {
			images[ev.Piece] = ev.Image.Pix
		}
	}
	w := images[board.NewPiece(board.Queen, board.White)]
	b := images[board.NewPiece(board.Queen, board.Black)]
	if string(w) == string(b) {
		t.Error("white and black queens rendered identically")
	}
}

func TestLoaderReportsFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"p/pawn.svg": {Data: []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45"><circle cx="22" cy="22" r="10" fill="{{fill}}"/></svg>`)},
		"p/rook.svg": {Data: []byte(`not svg at all <<<`)},
	}
	l := NewLoaderFS(fsys, "p", 16)
	l.Start(context.Background())

	ready := 0
	for _, ev := range collect(t, l, 12) {
		if ev.Ready() {
			ready++
			if ev.Piece.Kind != board.Pawn {
				t.Errorf("%s loaded from an empty fs", ev.Piece.Name())
			}
		} else if ev.Err == nil {
			t.Errorf("%s: not ready but no error", ev.Piece.Name())
		}
	}
	if ready != 2 {
		t.Errorf("ready = %d, want the two pawns", ready)
	}
}

func TestRasterizeInvalidSize(t *testing.T) {
	if _, err := Rasterize([]byte(`<svg/>`), 0); err == nil {
		t.Error("Rasterize with size 0 should fail")
	}
}
