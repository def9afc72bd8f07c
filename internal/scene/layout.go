package scene

import (
	"math"

	"github.com/hailam/chess3d/internal/board"
)

// Board geometry in world units. The board is centred on the origin with
// its top face at y=0.
const (
	SquareSize     = 1.0
	TileThickness  = 0.1
	PieceHalfWidth = 0.3
)

var pieceHeights = [6]float64{
	board.Pawn:   0.6,
	board.Knight: 0.75,
	board.Bishop: 0.8,
	board.Rook:   0.7,
	board.Queen:  0.95,
	board.King:   1.05,
}

// PieceHeight returns the height of the bounding box used for a piece kind.
func PieceHeight(k board.PieceKind) float64 {
	if k >= board.NoKind {
		return 0
	}
	return pieceHeights[k]
}

// SquareCenter returns the world position of the center of a square's top
// face. File runs along +X, rank index (8th rank first) along +Z.
func SquareCenter(sq board.Square) Vec3 {
	return Vec3{
		X: (float64(sq.File()) - 3.5) * SquareSize,
		Y: 0,
		Z: (float64(sq.Rank()) - 3.5) * SquareSize,
	}
}

// SquareAtWorld is the inverse of SquareCenter over the whole square area.
func SquareAtWorld(x, z float64) (board.Square, bool) {
	file := int(math.Floor(x/SquareSize + 4))
	rank := int(math.Floor(z/SquareSize + 4))
	sq := board.NewSquare(file, rank)
	return sq, sq.IsValid()
}
