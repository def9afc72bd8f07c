// Package rules adapts the notnil/chess rules engine to the board model.
//
// The adapter holds no game state of its own: everything is delegated to a
// single *chess.Game, which is swapped for a rebuilt one on undo and on
// ability effects that edit the position directly.
package rules

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hailam/chess3d/internal/board"
	"github.com/notnil/chess"
)

// Rejection reasons carried by MoveError.
var (
	ErrNoPiece     = errors.New("no piece on origin square")
	ErrWrongTurn   = errors.New("piece does not belong to the side to move")
	ErrIllegalMove = errors.New("illegal move")
)

// ErrKingCount is returned for positions without exactly one king a side.
var ErrKingCount = errors.New("each side needs exactly one king")

// MoveError reports a rejected move attempt. The position is unchanged.
type MoveError struct {
	From   board.Square
	To     board.Square
	Reason error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("invalid move %s%s: %v", e.From, e.To, e.Reason)
}

func (e *MoveError) Unwrap() error {
	return e.Reason
}

// Result is the state of the game derived from the current position.
type Result int

const (
	Ongoing Result = iota
	Checkmate
	Draw
)

func (r Result) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// AbilityEffect is a board edit applied outside normal move legality.
type AbilityEffect int

const (
	// Heal has no effect yet; it only succeeds on an occupied square.
	Heal AbilityEffect = iota
	// Remove deletes the target piece without consuming a turn.
	Remove
)

func (e AbilityEffect) String() string {
	switch e {
	case Heal:
		return "heal"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// MoveRecord describes an applied move.
type MoveRecord struct {
	From      board.Square
	To        board.Square
	Piece     board.Piece
	Captured  board.Piece
	Promotion board.PieceKind
	SAN       string
	Castle    bool
	EnPassant bool
	Check     bool
}

// IsCapture reports whether the move took a piece.
func (r MoveRecord) IsCapture() bool {
	return !r.Captured.IsNone()
}

// Adapter wraps a notnil/chess game.
type Adapter struct {
	game *chess.Game
}

// New creates an adapter at the standard starting position.
func New() *Adapter {
	return &Adapter{game: chess.NewGame()}
}

// NewFromFEN creates an adapter at the given position. Each side must
// have exactly one king.
func NewFromFEN(fen string) (*Adapter, error) {
	g, err := gameFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := checkKings(g); err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	return &Adapter{game: g}, nil
}

func checkKings(g *chess.Game) error {
	kings := make(map[chess.Color]int)
	for _, p := range g.Position().Board().SquareMap() {
		if p.Type() == chess.King {
			kings[p.Color()]++
		}
	}
	for _, c := range []chess.Color{chess.White, chess.Black} {
		if kings[c] != 1 {
			return fmt.Errorf("%w: %s has %d", ErrKingCount, fromEngineColor(c), kings[c])
		}
	}
	return nil
}

func gameFromFEN(fen string) (*chess.Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return chess.NewGame(opt), nil
}

// Reset restores the standard starting position and clears the history.
func (a *Adapter) Reset() board.Snapshot {
	a.game = chess.NewGame()
	return a.Board()
}

// AttemptMove plays from→to if it is legal in the current position.
// promotion is used when a pawn reaches the last rank; NoKind means Queen.
// A rejected move returns a *MoveError and leaves the position untouched.
func (a *Adapter) AttemptMove(from, to board.Square, promotion board.PieceKind) (MoveRecord, error) {
	if promotion == board.NoKind {
		promotion = board.Queen
	}
	if !from.IsValid() || !to.IsValid() {
		return MoveRecord{}, &MoveError{From: from, To: to, Reason: ErrIllegalMove}
	}

	ps, ok := a.PieceAt(from)
	if !ok {
		return MoveRecord{}, &MoveError{From: from, To: to, Reason: ErrNoPiece}
	}
	if ps.Piece.Color != a.Turn() {
		return MoveRecord{}, &MoveError{From: from, To: to, Reason: ErrWrongTurn}
	}

	m := a.findMove(from, to, promotion)
	if m == nil {
		return MoveRecord{}, &MoveError{From: from, To: to, Reason: ErrIllegalMove}
	}

	rec := newRecord(a.game.Position(), m)
	if err := a.game.Move(m); err != nil {
		return MoveRecord{}, &MoveError{From: from, To: to, Reason: fmt.Errorf("%w: %v", ErrIllegalMove, err)}
	}
	return rec, nil
}

// findMove returns the engine's legal move matching from, to and promotion.
func (a *Adapter) findMove(from, to board.Square, promotion board.PieceKind) *chess.Move {
	s1, s2 := toEngineSquare(from), toEngineSquare(to)
	promo := toEngineKind(promotion)
	for _, m := range a.game.ValidMoves() {
		if m.S1() != s1 || m.S2() != s2 {
			continue
		}
		if m.Promo() == chess.NoPieceType || m.Promo() == promo {
			return m
		}
	}
	return nil
}

// Undo reverts the last move. It reports false and changes nothing when
// there is no move to revert.
func (a *Adapter) Undo() (MoveRecord, bool) {
	moves := a.game.Moves()
	if len(moves) == 0 {
		return MoveRecord{}, false
	}
	positions := a.game.Positions()
	rec := newRecord(positions[len(moves)-1], moves[len(moves)-1])

	g, err := gameFromFEN(positions[0].String())
	if err != nil {
		log.Printf("Warning: undo failed to rebuild start position: %v", err)
		return MoveRecord{}, false
	}
	for _, m := range moves[:len(moves)-1] {
		if err := g.Move(m); err != nil {
			log.Printf("Warning: undo failed to replay %s: %v", m, err)
			return MoveRecord{}, false
		}
	}
	a.game = g
	return rec, true
}

// Board returns the current position as a full snapshot.
func (a *Adapter) Board() board.Snapshot {
	var snap board.Snapshot
	for sq, p := range a.game.Position().Board().SquareMap() {
		snap.Set(fromEngineSquare(sq), fromEnginePiece(p))
	}
	return snap
}

// PieceAt returns the piece on sq, if any.
func (a *Adapter) PieceAt(sq board.Square) (board.PieceState, bool) {
	if !sq.IsValid() {
		return board.PieceState{}, false
	}
	p := fromEnginePiece(a.game.Position().Board().Piece(toEngineSquare(sq)))
	if p.IsNone() {
		return board.PieceState{}, false
	}
	return board.PieceState{Piece: p, Square: sq}, true
}

// Turn returns the side to move.
func (a *Adapter) Turn() board.Color {
	return fromEngineColor(a.game.Position().Turn())
}

// IsGameOver reports whether the position is checkmate or a draw.
func (a *Adapter) IsGameOver() bool {
	return a.Result() != Ongoing
}

// Result classifies the current position. Claimable draws (threefold
// repetition, fifty-move rule) count as reached.
func (a *Adapter) Result() Result {
	switch a.game.Method() {
	case chess.Checkmate:
		return Checkmate
	case chess.Stalemate, chess.InsufficientMaterial, chess.ThreefoldRepetition,
		chess.FivefoldRepetition, chess.FiftyMoveRule, chess.SeventyFiveMoveRule, chess.DrawOffer:
		return Draw
	}

	switch a.game.Position().Status() {
	case chess.Checkmate:
		return Checkmate
	case chess.Stalemate:
		return Draw
	}

	if a.game.Outcome() == chess.Draw {
		return Draw
	}
	for _, m := range a.game.EligibleDraws() {
		if m == chess.ThreefoldRepetition || m == chess.FiftyMoveRule {
			return Draw
		}
	}
	return Ongoing
}

// Winner returns the checkmating side, or NoColor if there is none.
func (a *Adapter) Winner() board.Color {
	if a.Result() != Checkmate {
		return board.NoColor
	}
	return a.Turn().Other()
}

// FEN returns the current position in Forsyth-Edwards Notation.
func (a *Adapter) FEN() string {
	return a.game.FEN()
}

// History returns the moves played since the last reset, undo rebuild or
// ability effect.
func (a *Adapter) History() []MoveRecord {
	moves := a.game.Moves()
	positions := a.game.Positions()
	out := make([]MoveRecord, 0, len(moves))
	for i, m := range moves {
		out = append(out, newRecord(positions[i], m))
	}
	return out
}

// LegalTargets returns the destination squares of legal moves from sq.
func (a *Adapter) LegalTargets(from board.Square) []board.Square {
	if !from.IsValid() {
		return nil
	}
	s1 := toEngineSquare(from)
	seen := make(map[board.Square]bool)
	var out []board.Square
	for _, m := range a.game.ValidMoves() {
		if m.S1() != s1 {
			continue
		}
		to := fromEngineSquare(m.S2())
		if !seen[to] {
			seen[to] = true
			out = append(out, to)
		}
	}
	return out
}

// ApplyAbility applies effect to the piece on target, bypassing turn order
// and move legality. It returns false if target is empty.
//
// Remove does not advance the turn. Kings cannot be removed, and a removal
// that would leave the waiting king capturable is refused; both return false.
func (a *Adapter) ApplyAbility(effect AbilityEffect, target board.Square) bool {
	ps, ok := a.PieceAt(target)
	if !ok {
		return false
	}

	switch effect {
	case Heal:
		// Unimplemented: no healing mechanics exist yet.
		return true
	case Remove:
		if ps.Piece.Kind == board.King {
			return false
		}
		if err := a.removePiece(target); err != nil {
			log.Printf("[ABILITY] remove %s refused: %v", target, err)
			return false
		}
		return true
	default:
		return false
	}
}

// removePiece rebuilds the game from an edited FEN with target emptied.
func (a *Adapter) removePiece(target board.Square) error {
	fields := strings.Fields(a.game.FEN())
	if len(fields) < 4 {
		return fmt.Errorf("malformed fen %q", a.game.FEN())
	}

	snap := a.Board()
	snap.Set(target, board.NoPiece)
	fields[0] = snap.Placement()
	fields[2] = stripCastling(fields[2], target)
	fields[3] = clearEnPassant(fields[3], target)

	g, err := gameFromFEN(strings.Join(fields, " "))
	if err != nil {
		return err
	}
	if kingCapturable(g) {
		return errors.New("opponent king would be left in check")
	}
	a.game = g
	return nil
}

// kingCapturable reports whether the side to move can take the enemy king.
func kingCapturable(g *chess.Game) bool {
	pos := g.Position()
	them := pos.Turn().Other()
	for _, m := range g.ValidMoves() {
		p := pos.Board().Piece(m.S2())
		if p.Type() == chess.King && p.Color() == them {
			return true
		}
	}
	return false
}

// castlingHomes maps rook and king home squares to the rights they carry.
var castlingHomes = map[string]string{
	"h1": "K", "a1": "Q", "e1": "KQ",
	"h8": "k", "a8": "q", "e8": "kq",
}

func stripCastling(rights string, vacated board.Square) string {
	lost, ok := castlingHomes[vacated.String()]
	if !ok || rights == "-" {
		return rights
	}
	out := strings.Map(func(r rune) rune {
		if strings.ContainsRune(lost, r) {
			return -1
		}
		return r
	}, rights)
	if out == "" {
		return "-"
	}
	return out
}

// clearEnPassant drops the en passant target when the pawn that made it
// available is the one being removed.
func clearEnPassant(ep string, vacated board.Square) string {
	if ep == "-" || len(ep) != 2 {
		return ep
	}
	var pawnRank byte
	switch ep[1] {
	case '3':
		pawnRank = '4'
	case '6':
		pawnRank = '5'
	default:
		return ep
	}
	if vacated.String() == string([]byte{ep[0], pawnRank}) {
		return "-"
	}
	return ep
}

func newRecord(pos *chess.Position, m *chess.Move) MoveRecord {
	b := pos.Board()
	rec := MoveRecord{
		From:      fromEngineSquare(m.S1()),
		To:        fromEngineSquare(m.S2()),
		Piece:     fromEnginePiece(b.Piece(m.S1())),
		Captured:  fromEnginePiece(b.Piece(m.S2())),
		Promotion: board.NoKind,
		SAN:       chess.AlgebraicNotation{}.Encode(pos, m),
		Castle:    m.HasTag(chess.KingSideCastle) || m.HasTag(chess.QueenSideCastle),
		EnPassant: m.HasTag(chess.EnPassant),
		Check:     m.HasTag(chess.Check),
	}
	if m.Promo() != chess.NoPieceType {
		rec.Promotion = fromEngineKind(m.Promo())
	}
	if rec.EnPassant {
		rec.Captured = board.NewPiece(board.Pawn, rec.Piece.Color.Other())
	}
	return rec
}
