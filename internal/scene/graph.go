package scene

import (
	"sort"

	"github.com/hailam/chess3d/internal/board"
)

// ObjectID identifies an object in a Graph. Zero is never assigned.
type ObjectID uint32

// Kind distinguishes board tiles from piece models.
type Kind uint8

const (
	SquareTile Kind = iota
	PieceModel
)

func (k Kind) String() string {
	if k == SquareTile {
		return "tile"
	}
	return "piece"
}

// Object is a positioned scene node. Square is the board square the object
// belongs to; Piece is set for piece models only.
type Object struct {
	ID       ObjectID
	Kind     Kind
	Square   board.Square
	Piece    board.Piece
	Position Vec3
}

// Bounds returns the axis-aligned box used for picking. Tiles sit just
// below y=0; pieces stand on it.
func (o Object) Bounds() (lo, hi Vec3) {
	if o.Kind == SquareTile {
		h := SquareSize / 2
		return Vec3{o.Position.X - h, o.Position.Y - TileThickness, o.Position.Z - h},
			Vec3{o.Position.X + h, o.Position.Y, o.Position.Z + h}
	}
	w := PieceHalfWidth
	return Vec3{o.Position.X - w, o.Position.Y, o.Position.Z - w},
		Vec3{o.Position.X + w, o.Position.Y + PieceHeight(o.Piece.Kind), o.Position.Z + w}
}

// Graph is a flat scene graph. It is not safe for concurrent use; the
// game loop owns it.
type Graph struct {
	camera  Camera
	objects map[ObjectID]*Object
	nextID  ObjectID
}

// NewGraph creates an empty graph viewed through cam.
func NewGraph(cam Camera) *Graph {
	return &Graph{
		camera:  cam,
		objects: make(map[ObjectID]*Object),
	}
}

// Camera returns the current camera.
func (g *Graph) Camera() Camera {
	return g.camera
}

// SetCamera replaces the camera.
func (g *Graph) SetCamera(cam Camera) {
	g.camera = cam
}

// SetViewport resizes the camera's viewport.
func (g *Graph) SetViewport(width, height float64) {
	g.camera.Width = width
	g.camera.Height = height
}

// Add inserts o, assigning and returning a fresh ID.
func (g *Graph) Add(o Object) ObjectID {
	g.nextID++
	o.ID = g.nextID
	g.objects[o.ID] = &o
	return o.ID
}

// AddTiles inserts the 64 square tiles.
func (g *Graph) AddTiles() {
	for _, sq := range board.AllSquares() {
		g.Add(Object{Kind: SquareTile, Square: sq, Position: SquareCenter(sq)})
	}
}

// AddPiece inserts a piece model standing on sq.
func (g *Graph) AddPiece(p board.Piece, sq board.Square) ObjectID {
	return g.Add(Object{Kind: PieceModel, Square: sq, Piece: p, Position: SquareCenter(sq)})
}

// Remove deletes an object. It reports whether the object existed.
func (g *Graph) Remove(id ObjectID) bool {
	if _, ok := g.objects[id]; !ok {
		return false
	}
	delete(g.objects, id)
	return true
}

// RemovePieces deletes every piece model and keeps the tiles.
func (g *Graph) RemovePieces() {
	for id, o := range g.objects {
		if o.Kind == PieceModel {
			delete(g.objects, id)
		}
	}
}

// Move repositions an object onto sq.
func (g *Graph) Move(id ObjectID, sq board.Square) bool {
	o, ok := g.objects[id]
	if !ok {
		return false
	}
	o.Square = sq
	o.Position = SquareCenter(sq)
	return true
}

// Object returns a copy of the object with the given ID.
func (g *Graph) Object(id ObjectID) (Object, bool) {
	o, ok := g.objects[id]
	if !ok {
		return Object{}, false
	}
	return *o, true
}

// Objects returns copies of all objects ordered by ID.
func (g *Graph) Objects() []Object {
	out := make([]Object, 0, len(g.objects))
	for _, o := range g.objects {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Pieces returns the piece models ordered by ID.
func (g *Graph) Pieces() []Object {
	var out []Object
	for _, o := range g.Objects() {
		if o.Kind == PieceModel {
			out = append(out, o)
		}
	}
	return out
}

// PieceOn returns the piece model standing on sq, if any.
func (g *Graph) PieceOn(sq board.Square) (Object, bool) {
	for _, o := range g.objects {
		if o.Kind == PieceModel && o.Square == sq {
			return *o, true
		}
	}
	return Object{}, false
}

// Pick casts a ray through viewport pixel (x, y) and returns the square of
// the nearest object it hits. Pixels that hit nothing return false.
func (g *Graph) Pick(x, y float64) (board.Square, bool) {
	origin, dir := g.camera.Ray(x, y)
	best := -1.0
	var hit *Object
	for _, o := range g.objects {
		lo, hi := o.Bounds()
		t, ok := intersectBox(origin, dir, lo, hi)
		if !ok {
			continue
		}
		// ties go to pieces so a model resting on its tile wins
		if hit == nil || t < best || (t == best && o.Kind == PieceModel) {
			best, hit = t, o
		}
	}
	if hit == nil {
		return board.NoSquare, false
	}
	return hit.Square, true
}
