package rules

import (
	"github.com/hailam/chess3d/internal/board"
	"github.com/notnil/chess"
)

// The engine indexes squares from a1 (0) to h8 (63); board.Square runs from
// a8 (0) to h1 (63).

func toEngineSquare(sq board.Square) chess.Square {
	return chess.Square((7-sq.Rank())*8 + sq.File())
}

func fromEngineSquare(sq chess.Square) board.Square {
	return board.NewSquare(int(sq)%8, 7-int(sq)/8)
}

func fromEngineColor(c chess.Color) board.Color {
	switch c {
	case chess.White:
		return board.White
	case chess.Black:
		return board.Black
	default:
		return board.NoColor
	}
}

var engineKinds = map[chess.PieceType]board.PieceKind{
	chess.Pawn:   board.Pawn,
	chess.Knight: board.Knight,
	chess.Bishop: board.Bishop,
	chess.Rook:   board.Rook,
	chess.Queen:  board.Queen,
	chess.King:   board.King,
}

func fromEngineKind(t chess.PieceType) board.PieceKind {
	if k, ok := engineKinds[t]; ok {
		return k
	}
	return board.NoKind
}

func toEngineKind(k board.PieceKind) chess.PieceType {
	for t, kind := range engineKinds {
		if kind == k {
			return t
		}
	}
	return chess.NoPieceType
}

func fromEnginePiece(p chess.Piece) board.Piece {
	if p == chess.NoPiece {
		return board.NoPiece
	}
	return board.NewPiece(fromEngineKind(p.Type()), fromEngineColor(p.Color()))
}
