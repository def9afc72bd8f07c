package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceKind represents the type of a chess piece.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoKind PieceKind = 6
)

// Kinds lists the six piece kinds in order.
var Kinds = [6]PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece kind (lowercase).
func (k PieceKind) Char() byte {
	if k >= NoKind {
		return ' '
	}
	return "pnbrqk"[k]
}

// Piece combines a kind and a color.
type Piece struct {
	Color Color
	Kind  PieceKind
}

// NoPiece is the empty-square value.
var NoPiece = Piece{Color: NoColor, Kind: NoKind}

// NewPiece creates a Piece from kind and color.
func NewPiece(k PieceKind, c Color) Piece {
	if k >= NoKind || c >= NoColor {
		return NoPiece
	}
	return Piece{Color: c, Kind: k}
}

// IsNone reports whether p is the empty-square value.
func (p Piece) IsNone() bool {
	return p.Kind >= NoKind || p.Color >= NoColor
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsNone() {
		return " "
	}
	c := p.Kind.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// Name returns a human-readable name such as "White Knight".
func (p Piece) Name() string {
	if p.IsNone() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
		c += 'a' - 'A'
	}
	for _, k := range Kinds {
		if k.Char() == c {
			return NewPiece(k, color)
		}
	}
	return NoPiece
}

// PieceState is a piece together with the square it stands on.
type PieceState struct {
	Piece  Piece
	Square Square
}
