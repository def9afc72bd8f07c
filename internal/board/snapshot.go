package board

import (
	"fmt"
	"strings"
)

// Snapshot is a full copy of board occupancy, indexed [rank][file] with
// rank 0 being the 8th rank. A nil entry is an empty square.
//
// Snapshots are produced fresh on every read and superseded, never patched.
type Snapshot [8][8]*PieceState

// At returns the piece state on sq, or nil if the square is empty.
func (s *Snapshot) At(sq Square) *PieceState {
	if !sq.IsValid() {
		return nil
	}
	return s[sq.Rank()][sq.File()]
}

// Set places p on sq. Setting NoPiece clears the square.
func (s *Snapshot) Set(sq Square, p Piece) {
	if !sq.IsValid() {
		return
	}
	if p.IsNone() {
		s[sq.Rank()][sq.File()] = nil
		return
	}
	s[sq.Rank()][sq.File()] = &PieceState{Piece: p, Square: sq}
}

// Pieces returns every occupied square in rank-major order (a8 first).
func (s *Snapshot) Pieces() []PieceState {
	var out []PieceState
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if ps := s[rank][file]; ps != nil {
				out = append(out, *ps)
			}
		}
	}
	return out
}

// Count returns the number of pieces on the board.
func (s *Snapshot) Count() int {
	n := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if s[rank][file] != nil {
				n++
			}
		}
	}
	return n
}

// Equal reports whether both snapshots hold the same pieces on the same squares.
func (s *Snapshot) Equal(o *Snapshot) bool {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			a, b := s[rank][file], o[rank][file]
			if (a == nil) != (b == nil) {
				return false
			}
			if a != nil && *a != *b {
				return false
			}
		}
	}
	return true
}

// Placement returns the FEN piece-placement field for the snapshot.
func (s *Snapshot) Placement() string {
	var sb strings.Builder
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			ps := s[rank][file]
			if ps == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(ps.Piece.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParsePlacement builds a snapshot from a FEN piece-placement field.
func ParsePlacement(placement string) (Snapshot, error) {
	var s Snapshot
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return s, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for rank, rankStr := range ranks {
		file := 0
		for i := 0; i < len(rankStr); i++ {
			c := rankStr[i]
			if file > 7 {
				return s, fmt.Errorf("too many squares in rank %d", 8-rank)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p := PieceFromChar(c)
			if p.IsNone() {
				return s, fmt.Errorf("invalid piece character: %c", c)
			}
			s.Set(NewSquare(file, rank), p)
			file++
		}
		if file != 8 {
			return s, fmt.Errorf("invalid number of squares in rank %d: got %d", 8-rank, file)
		}
	}
	return s, nil
}

// String returns a visual representation of the snapshot.
func (s *Snapshot) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&sb, "%d  ", 8-rank)
		for file := 0; file < 8; file++ {
			if ps := s[rank][file]; ps != nil {
				sb.WriteString(ps.Piece.String() + " ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
