// Package assets rasterises the piece sprites in the background and
// reports each one as it becomes available.
package assets

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"image"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hailam/chess3d/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed pieces/*.svg
var pieceAssets embed.FS

// Side colours substituted into the SVG templates.
var palette = map[board.Color][2]string{
	board.White: {"#f4efe4", "#2b2b2b"},
	board.Black: {"#3a3a3a", "#0e0e0e"},
}

var kindFiles = map[board.PieceKind]string{
	board.Pawn:   "pawn.svg",
	board.Knight: "knight.svg",
	board.Bishop: "bishop.svg",
	board.Rook:   "rook.svg",
	board.Queen:  "queen.svg",
	board.King:   "king.svg",
}

// Event reports the outcome of loading one piece sprite.
type Event struct {
	Piece board.Piece
	Image *image.RGBA
	Err   error
}

// Ready reports whether the sprite loaded.
func (e Event) Ready() bool {
	return e.Err == nil && e.Image != nil
}

// Loader rasterises sprites on a background goroutine. Events are buffered
// for every piece so the loader never blocks on a slow reader.
type Loader struct {
	fsys   fs.FS
	dir    string
	size   int
	events chan Event
}

// NewLoader creates a loader for the embedded sprites rendered at size
// pixels square.
func NewLoader(size int) *Loader {
	return NewLoaderFS(pieceAssets, "pieces", size)
}

// NewLoaderFS creates a loader reading templates from dir in fsys.
func NewLoaderFS(fsys fs.FS, dir string, size int) *Loader {
	return &Loader{
		fsys:   fsys,
		dir:    dir,
		size:   size,
		events: make(chan Event, len(board.Kinds)*2),
	}
}

// Events returns the channel sprites are reported on. It is never closed.
func (l *Loader) Events() <-chan Event {
	return l.events
}

// Start begins loading. Cancelling ctx stops before the next piece.
func (l *Loader) Start(ctx context.Context) {
	go l.run(ctx)
}

func (l *Loader) run(ctx context.Context) {
	for _, c := range []board.Color{board.White, board.Black} {
		for _, k := range board.Kinds {
			if ctx.Err() != nil {
				return
			}
			p := board.NewPiece(k, c)
			img, err := l.load(p)
			if err != nil {
				log.Printf("[ASSETS] %s: %v", p.Name(), err)
			}
			l.events <- Event{Piece: p, Image: img, Err: err}
		}
	}
}

func (l *Loader) load(p board.Piece) (*image.RGBA, error) {
	name, ok := kindFiles[p.Kind]
	if !ok {
		return nil, fmt.Errorf("no sprite for %v", p.Kind)
	}
	file := path.Join(l.dir, name)
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	colors := palette[p.Color]
	svg := strings.NewReplacer("{{fill}}", colors[0], "{{stroke}}", colors[1]).Replace(string(data))

	img, err := Rasterize([]byte(svg), l.size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return img, nil
}

// Rasterize renders an SVG document into a size×size RGBA image.
func Rasterize(data []byte, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size %d", size)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}
