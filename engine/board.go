// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// board.go implements the position representation: Side, Board,
// construction from FEN, piece lookup, and move application.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard starting position. "startpos" is accepted
// as an alias for it.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Side is one color's half of a Board: per-figure occupancy plus
// castling/en-passant state.
type Side struct {
	Color  Color
	Pieces [FigureArraySize]BitBoard // indexed by Figure; NoFigure unused.

	// RooksUnmoved holds the corner squares (a1/h1/a8/h8, as relevant)
	// whose rook has not moved and has not been captured.
	RooksUnmoved BitBoard
	// KingHasMoved tracks whether this side's king has ever moved.
	KingHasMoved bool
	// EnPassantTarget is the square behind this side's last double-pushed
	// pawn; at most one bit, cleared after one half-move elapses for the
	// opponent.
	EnPassantTarget BitBoard

	// AllPieces is the union of Pieces[*]; refreshed on every exit path
	// of a mutation so it is never observed stale.
	AllPieces BitBoard
}

// refresh recomputes the derived AllPieces field. Every mutator of Side
// must call this before returning — the "scoped mutate and refresh"
// idiom from the design notes.
func (s *Side) refresh() {
	var all BitBoard
	for f := Pawn; f <= King; f++ {
		all |= s.Pieces[f]
	}
	s.AllPieces = all
}

func newSide(color Color) Side {
	s := Side{Color: color}
	s.refresh()
	return s
}

// FigureAt returns the figure this side has on sq, or NoFigure.
func (s *Side) FigureAt(sq Square) Figure {
	bb := sq.Bitboard()
	for f := Pawn; f <= King; f++ {
		if s.Pieces[f]&bb != 0 {
			return f
		}
	}
	return NoFigure
}

// Board is the pair of sides that make up a position.
type Board struct {
	Sides [ColorArraySize]Side
}

// Side returns a pointer to color's half of the board.
func (b *Board) Side(color Color) *Side { return &b.Sides[color] }

// Occupancy is the union of every occupied square on the board.
func (b *Board) Occupancy() BitBoard {
	return b.Sides[White].AllPieces | b.Sides[Black].AllPieces
}

// GetPiece reports the piece (if any) sitting on sq.
func (b *Board) GetPiece(sq Square) (Piece, bool) {
	for _, c := range [2]Color{White, Black} {
		if f := b.Sides[c].FigureAt(sq); f != NoFigure {
			return Piece{Figure: f, Color: c}, true
		}
	}
	return Piece{}, false
}

// NewBoard returns the default starting position.
func NewBoard() Board {
	b, _, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(fmt.Sprintf("engine: built-in start FEN failed to parse: %v", err))
	}
	return b
}

// ParseFEN parses Forsyth-Edwards Notation, with "startpos" accepted as
// an alias for the default starting position. Only piece placement,
// castling availability, and the en-passant target are consumed into the
// returned Board; the active color is returned separately (the search is
// told the engine's color out of band, per spec); half-move and
// full-move counters are validated then discarded.
func ParseFEN(fen string) (Board, Color, error) {
	if fen == "startpos" {
		fen = FENStartPos
	}

	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Board{}, White, fmt.Errorf("fen: expected at least 4 fields, got %d", len(fields))
	}

	var b Board
	b.Sides[White] = newSide(White)
	b.Sides[Black] = newSide(Black)

	if err := parsePiecePlacement(fields[0], &b); err != nil {
		return Board{}, White, err
	}
	activeColor, err := parseActiveColor(fields[1])
	if err != nil {
		return Board{}, White, err
	}
	if err := parseCastlingAbility(fields[2], &b); err != nil {
		return Board{}, White, err
	}
	if err := parseEnPassant(fields[3], &b, activeColor); err != nil {
		return Board{}, White, err
	}
	if len(fields) >= 6 {
		if _, err := strconv.Atoi(fields[4]); err != nil {
			return Board{}, White, fmt.Errorf("fen: bad half-move clock: %v", err)
		}
		if _, err := strconv.Atoi(fields[5]); err != nil {
			return Board{}, White, fmt.Errorf("fen: bad full-move number: %v", err)
		}
	}

	b.Sides[White].refresh()
	b.Sides[Black].refresh()
	return b, activeColor, nil
}

func parsePiecePlacement(field string, b *Board) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankField := range ranks {
		rank := 7 - i // FEN lists rank 8 first.
		file := 0
		for _, ch := range rankField {
			if file > 8 {
				return fmt.Errorf("fen: rank %d overflows", rank+1)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			fig, color, ok := pieceFromFENChar(byte(ch))
			if !ok {
				return fmt.Errorf("fen: invalid piece character %q", ch)
			}
			if file >= 8 {
				return fmt.Errorf("fen: rank %d overflows", rank+1)
			}
			sq := RankFile(rank, file)
			b.Sides[color].Pieces[fig] |= sq.Bitboard()
			file++
		}
		if file != 8 {
			return fmt.Errorf("fen: rank %d has %d squares, want 8", rank+1, file)
		}
	}
	return nil
}

func pieceFromFENChar(ch byte) (Figure, Color, bool) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else if ch >= 'A' && ch <= 'Z' {
		lower = ch - 'A' + 'a'
	} else {
		return NoFigure, White, false
	}
	switch lower {
	case 'p':
		return Pawn, color, true
	case 'n':
		return Knight, color, true
	case 'b':
		return Bishop, color, true
	case 'r':
		return Rook, color, true
	case 'q':
		return Queen, color, true
	case 'k':
		return King, color, true
	default:
		return NoFigure, White, false
	}
}

func parseActiveColor(field string) (Color, error) {
	switch field {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return White, fmt.Errorf("fen: invalid active color %q", field)
	}
}

func parseCastlingAbility(field string, b *Board) error {
	if field == "-" {
		b.Sides[White].KingHasMoved = true
		b.Sides[Black].KingHasMoved = true
		return nil
	}
	var whiteOO, whiteOOO, blackOO, blackOOO bool
	for _, ch := range field {
		switch ch {
		case 'K':
			b.Sides[White].RooksUnmoved |= SquareH1.Bitboard()
			whiteOO = true
		case 'Q':
			b.Sides[White].RooksUnmoved |= SquareA1.Bitboard()
			whiteOOO = true
		case 'k':
			b.Sides[Black].RooksUnmoved |= SquareH8.Bitboard()
			blackOO = true
		case 'q':
			b.Sides[Black].RooksUnmoved |= SquareA8.Bitboard()
			blackOOO = true
		default:
			return fmt.Errorf("fen: invalid castling character %q", ch)
		}
	}
	b.Sides[White].KingHasMoved = !whiteOO && !whiteOOO
	b.Sides[Black].KingHasMoved = !blackOO && !blackOOO
	return nil
}

func parseEnPassant(field string, b *Board, activeColor Color) error {
	if field == "-" {
		return nil
	}
	sq, err := SquareFromString(field)
	if err != nil {
		return fmt.Errorf("fen: invalid en-passant square %q", field)
	}
	// The target belongs to whichever side just double-pushed: the
	// opponent of the side now to move.
	owner := activeColor.Opposite()
	wantRank := 2 // rank index for a target behind a white double-push (rank 3, 0-based 2)
	if owner == Black {
		wantRank = 5 // rank 6, 0-based 5
	}
	if sq.Rank() != wantRank {
		return fmt.Errorf("fen: impossible en-passant rank for square %q", field)
	}
	b.Sides[owner].EnPassantTarget = sq.Bitboard()
	return nil
}

// Common named squares used by castling/en-passant logic.
const (
	SquareA1 = Square(0)
	SquareB1 = Square(1)
	SquareC1 = Square(2)
	SquareD1 = Square(3)
	SquareE1 = Square(4)
	SquareF1 = Square(5)
	SquareG1 = Square(6)
	SquareH1 = Square(7)
	SquareA8 = Square(56)
	SquareB8 = Square(57)
	SquareC8 = Square(58)
	SquareD8 = Square(59)
	SquareE8 = Square(60)
	SquareF8 = Square(61)
	SquareG8 = Square(62)
	SquareH8 = Square(63)
)

// ApplyMove mutates a copy of b by playing m for color and returns it.
// It never returns an error and performs no legality checking beyond the
// fail-fast invariants below; it is a programmer error to call it with a
// move whose origin is empty or that captures a friendly piece — both
// halt via panic, since the legal move generator must never produce
// either.
func ApplyMove(b Board, color Color, m Move) Board {
	opponent := color.Opposite()
	mover := b.Sides[color].FigureAt(m.From)
	if mover == NoFigure {
		panic(fmt.Sprintf("engine: ApplyMove: no piece on origin square %v", m.From))
	}

	isCastle := mover == King && abs(m.To.File()-m.From.File()) == 2
	isEnPassant := mover == Pawn && b.Sides[opponent].EnPassantTarget.Has(m.To)

	captureSquare := m.To
	if isEnPassant {
		captureSquare = m.To.Backwards(color, 1)
	}
	captured := b.Sides[opponent].FigureAt(captureSquare)

	if !isCastle {
		if friendly := b.Sides[color].FigureAt(m.To); friendly != NoFigure {
			panic(fmt.Sprintf("engine: ApplyMove: %v already occupied by a friendly piece", m.To))
		}
	}

	// Move the piece (promotion changes the figure that lands on m.To).
	b.Sides[color].Pieces[mover] &^= m.From.Bitboard()
	placed := mover
	if m.Promotion != NoFigure {
		placed = m.Promotion
	}
	b.Sides[color].Pieces[placed] |= m.To.Bitboard()

	if captured != NoFigure {
		b.Sides[opponent].Pieces[captured] &^= captureSquare.Bitboard()
	}

	if isCastle {
		_, rookFrom, rookTo := castlingRookSquares(m.To)
		b.Sides[color].Pieces[Rook] &^= rookFrom.Bitboard()
		b.Sides[color].Pieces[Rook] |= rookTo.Bitboard()
		b.Sides[color].RooksUnmoved &^= rookFrom.Bitboard()
		b.Sides[color].KingHasMoved = true
	}
	if mover == King {
		b.Sides[color].KingHasMoved = true
	}

	// Losing castling rights: touching a corner (moving from it, moving
	// to it, or having a rook captured on it) retires that corner.
	for _, corner := range [4]Square{SquareA1, SquareH1, SquareA8, SquareH8} {
		if m.From == corner || m.To == corner {
			b.Sides[White].RooksUnmoved &^= corner.Bitboard()
			b.Sides[Black].RooksUnmoved &^= corner.Bitboard()
		}
	}

	// En-passant bookkeeping: set for the mover iff this was a double
	// push, cleared unconditionally for the opponent.
	b.Sides[color].EnPassantTarget = 0
	if mover == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		b.Sides[color].EnPassantTarget = m.From.Forwards(color, 1).Bitboard()
	}
	b.Sides[opponent].EnPassantTarget = 0

	b.Sides[White].refresh()
	b.Sides[Black].refresh()
	return b
}

// castlingRookSquares returns the rook's figure-agnostic from/to squares
// for a king move landing on kingEnd (c1/g1/c8/g8).
func castlingRookSquares(kingEnd Square) (Color, Square, Square) {
	switch kingEnd {
	case SquareC1:
		return White, SquareA1, SquareD1
	case SquareG1:
		return White, SquareH1, SquareF1
	case SquareC8:
		return Black, SquareA8, SquareD8
	case SquareG8:
		return Black, SquareH8, SquareF8
	default:
		panic(fmt.Sprintf("engine: castlingRookSquares: %v is not a valid castling destination", kingEnd))
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
