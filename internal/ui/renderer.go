package ui

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/scene"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	BoardEdge      color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	TargetColor    color.RGBA
	HoverColor     color.RGBA
	Background     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		BoardEdge:      color.RGBA{92, 60, 38, 255},
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		TargetColor:    color.RGBA{255, 120, 40, 150},  // Ability target
		HoverColor:     color.RGBA{255, 255, 255, 40},
		Background:     color.RGBA{40, 44, 52, 255}, // Dark gray
	}
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Highlights are the per-frame square overlays.
type Highlights struct {
	Selected board.Square
	Targets  []board.Square
	LastFrom board.Square
	LastTo   board.Square
	Check    board.Square
	Hover    board.Square
	Aiming   bool // an ability is armed; Hover is drawn as a target
}

// NoHighlights has every square unset.
func NoHighlights() Highlights {
	return Highlights{
		Selected: board.NoSquare,
		LastFrom: board.NoSquare,
		LastTo:   board.NoSquare,
		Check:    board.NoSquare,
		Hover:    board.NoSquare,
	}
}

// Renderer draws the scene graph through its camera.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		sprites: NewSpriteManager(),
		theme:   DefaultTheme(),
	}
}

// Draw renders tiles, highlights and pieces. The viewport's top-left is
// the origin of the camera's pixel space.
func (r *Renderer) Draw(viewport *ebiten.Image, g *scene.Graph, hl Highlights, effects *BoardEffects) {
	cam := g.Camera()
	r.drawBoardEdge(viewport, cam)

	objects := g.Objects()
	for _, o := range objects {
		if o.Kind != scene.SquareTile {
			continue
		}
		c := r.theme.LightSquare
		if !o.Square.IsLight() {
			c = r.theme.DarkSquare
		}
		r.fillSquare(viewport, cam, o.Square, 0.5, c)
	}

	r.drawHighlights(viewport, cam, hl)
	if effects != nil {
		effects.Draw(viewport, r, cam)
	}
	r.drawPieces(viewport, cam, objects, effects)
}

func (r *Renderer) drawHighlights(dst *ebiten.Image, cam scene.Camera, hl Highlights) {
	// Highlight last move
	r.fillSquare(dst, cam, hl.LastFrom, 0.5, r.theme.LastMoveColor)
	r.fillSquare(dst, cam, hl.LastTo, 0.5, r.theme.LastMoveColor)
	r.fillSquare(dst, cam, hl.Check, 0.5, r.theme.CheckColor)
	r.fillSquare(dst, cam, hl.Selected, 0.5, r.theme.SelectedSquare)

	// Legal move indicators
	for _, sq := range hl.Targets {
		r.fillSquare(dst, cam, sq, 0.15, r.theme.LegalMoveColor)
	}

	if hl.Aiming {
		r.fillSquare(dst, cam, hl.Hover, 0.5, r.theme.TargetColor)
	} else {
		r.fillSquare(dst, cam, hl.Hover, 0.5, r.theme.HoverColor)
	}
}

type pieceDraw struct {
	obj   scene.Object
	x, y  float64
	depth float64
}

// drawPieces draws billboard sprites far to near.
func (r *Renderer) drawPieces(dst *ebiten.Image, cam scene.Camera, objects []scene.Object, effects *BoardEffects) {
	var draws []pieceDraw
	for _, o := range objects {
		if o.Kind != scene.PieceModel {
			continue
		}
		pos := o.Position
		if effects != nil {
			pos = pos.Add(effects.Offset(o.Square))
		}
		x, y, depth, ok := cam.Project(pos)
		if !ok {
			continue
		}
		draws = append(draws, pieceDraw{obj: o, x: x, y: y, depth: depth})
	}
	sort.Slice(draws, func(i, j int) bool { return draws[i].depth > draws[j].depth })

	for _, d := range draws {
		s := cam.PixelScale(d.depth)
		x := d.x

		// contact shadow
		vector.DrawFilledCircle(dst, float32(x), float32(d.y), float32(s*scene.PieceHalfWidth), color.RGBA{0, 0, 0, 60}, true)

		h := scene.PieceHeight(d.obj.Piece.Kind) * 1.25 * s
		r.sprites.DrawPiece(dst, d.obj.Piece, x, d.y+0.12*s, h, 1)
	}
}

// drawBoardEdge draws the frame and the visible front face of the board.
func (r *Renderer) drawBoardEdge(dst *ebiten.Image, cam scene.Camera) {
	const m = 4.3
	frame := [4]scene.Vec3{{X: -m, Z: -m}, {X: m, Z: -m}, {X: m, Z: m}, {X: -m, Z: m}}
	r.fillQuad(dst, cam, frame, r.theme.BoardEdge)

	front := [4]scene.Vec3{{X: -m, Z: m}, {X: m, Z: m}, {X: m, Y: -0.35, Z: m}, {X: -m, Y: -0.35, Z: m}}
	darker := r.theme.BoardEdge
	darker.R, darker.G, darker.B = darker.R*3/4, darker.G*3/4, darker.B*3/4
	r.fillQuad(dst, cam, front, darker)
}

// fillSquare fills the central part of a square; half is the half-size of
// the filled area in world units (0.5 fills the whole square).
func (r *Renderer) fillSquare(dst *ebiten.Image, cam scene.Camera, sq board.Square, half float64, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	ctr := scene.SquareCenter(sq)
	quad := [4]scene.Vec3{
		{X: ctr.X - half, Z: ctr.Z - half},
		{X: ctr.X + half, Z: ctr.Z - half},
		{X: ctr.X + half, Z: ctr.Z + half},
		{X: ctr.X - half, Z: ctr.Z + half},
	}
	r.fillQuad(dst, cam, quad, c)
}

// fillQuad projects four world corners and fills the resulting polygon.
func (r *Renderer) fillQuad(dst *ebiten.Image, cam scene.Camera, corners [4]scene.Vec3, c color.RGBA) {
	var vs [4]ebiten.Vertex
	cr, cg, cb, ca := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i, p := range corners {
		x, y, _, ok := cam.Project(p)
		if !ok {
			return
		}
		vs[i] = ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs[:], indices, whiteSubImage, op)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
