// Package board holds the chess data model shared by the rules adapter,
// the scene layer and the front ends.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Row-major from the black side: A8=0, H8=7, A1=56, H1=63.
// File 0-7 is the a-h axis, rank 0-7 is the 8-1 axis.
type Square uint8

// Square constants for the squares the code and tests refer to by name.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	A1 Square = 56 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// NoSquare marks the absence of a square.
const NoSquare Square = 64

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank index of the square (0-7, where 0 is the 8th rank).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '8'-sq.Rank())
}

// NewSquare creates a square from file and rank index. Out-of-range
// coordinates yield NoSquare.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0]) - 'a'
	rank := '8' - int(s[1])

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(file, rank), nil
}

// MustParseSquare is ParseSquare for constant inputs; it panics on error.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// IsLight reports whether the square is a light square (h1 is light).
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 0
}

// AllSquares returns the 64 squares in index order.
func AllSquares() []Square {
	out := make([]Square, 0, 64)
	for sq := A8; sq < NoSquare; sq++ {
		out = append(out, sq)
	}
	return out
}
