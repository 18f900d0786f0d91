// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// movegen.go generates pseudo-legal moves: the subtract-a-rook trick for
// sliding pieces, table lookups for knight/king, shift-based pawn rules,
// and castling. Legality (self-check) filtering lives in legal.go.

package engine

// raySlide computes attacks along a single ray mask using the
// subtract-a-rook trick: walk the positive direction with the classic
// o^(o-2s) construction, then fold in the negative direction by running
// the same construction on the rotate-180 mirror of the board (rotating
// a ray reverses the order of its squares, so the "positive" formula
// applied there yields the negative-direction attacks once rotated back).
// This unifies the per-direction pre/post-transform table in the design
// doc into one symmetric, always-correct operation — see DESIGN.md.
func raySlide(occupancy, piece, mask BitBoard) BitBoard {
	o := occupancy & mask
	two := BitBoard(2)

	forward := o.WrappingSub(piece.WrappingMul(two))

	ro := o.Rotate180()
	rp := piece.Rotate180()
	reverse := ro.WrappingSub(rp.WrappingMul(two))

	return (forward ^ reverse.Rotate180()) & mask
}

// RookAttacks returns the squares a rook on sq attacks given occupancy,
// including the first blocker in each direction.
func RookAttacks(occupancy BitBoard, sq Square) BitBoard {
	piece := sq.Bitboard()
	return raySlide(occupancy, piece, RankThrough(sq)) | raySlide(occupancy, piece, FileThrough(sq))
}

// BishopAttacks returns the squares a bishop on sq attacks given occupancy.
func BishopAttacks(occupancy BitBoard, sq Square) BitBoard {
	piece := sq.Bitboard()
	return raySlide(occupancy, piece, DiagonalThrough(sq)) | raySlide(occupancy, piece, AntiDiagonalThrough(sq))
}

// QueenAttacks is the union of rook and bishop attacks from sq.
func QueenAttacks(occupancy BitBoard, sq Square) BitBoard {
	return RookAttacks(occupancy, sq) | BishopAttacks(occupancy, sq)
}

// slidingMoves expands one figure kind's attacks into (origin,
// destination) moves, iterating pieces one at a time — required for the
// subtract-a-rook trick, which is only correct for a single-bit slider.
func slidingMoves(moves []Move, attacks func(occ BitBoard, sq Square) BitBoard, occ BitBoard, own BitBoard, pieces BitBoard) []Move {
	for {
		sq, ok := pieces.Pop()
		if !ok {
			break
		}
		dests := attacks(occ, sq) &^ own
		for {
			to, ok := dests.Pop()
			if !ok {
				break
			}
			moves = append(moves, Move{From: sq, To: to})
		}
	}
	return moves
}

// PseudoLegalMoves returns every move obeying piece-movement rules for
// color, without filtering for self-check (see LegalMoves for that).
func PseudoLegalMoves(b *Board, color Color) []Move {
	s := &b.Sides[color]
	occ := b.Occupancy()
	own := s.AllPieces

	var moves []Move
	moves = slidingMoves(moves, RookAttacks, occ, own, s.Pieces[Rook])
	moves = slidingMoves(moves, BishopAttacks, occ, own, s.Pieces[Bishop])
	moves = slidingMoves(moves, QueenAttacks, occ, own, s.Pieces[Queen])

	knights := s.Pieces[Knight]
	for {
		sq, ok := knights.Pop()
		if !ok {
			break
		}
		dests := KnightSteps[sq] &^ own
		for {
			to, ok := dests.Pop()
			if !ok {
				break
			}
			moves = append(moves, Move{From: sq, To: to})
		}
	}

	if kingBB := s.Pieces[King]; kingBB != 0 {
		sq := kingBB.LeastSquare()
		dests := KingSteps[sq] &^ own
		for {
			to, ok := dests.Pop()
			if !ok {
				break
			}
			moves = append(moves, Move{From: sq, To: to})
		}
		moves = append(moves, castlingMoves(b, color)...)
	}

	moves = append(moves, pawnMoves(b, color)...)
	orderMoves(moves)
	return moves
}

// pawnPushes returns single- and double-push destination sets.
func pawnPushes(pawns, occupancy BitBoard, color Color) (single, double BitBoard) {
	if color == Black {
		fp := pawns.FlipVertical()
		fo := occupancy.FlipVertical()
		s, d := pawnPushes(fp, fo, White)
		return s.FlipVertical(), d.FlipVertical()
	}
	single = (pawns << 8) &^ occupancy
	onRank2 := pawns & Rank2
	step1 := (onRank2 << 8) &^ occupancy
	double = (step1 << 8) &^ occupancy
	return single, double
}

func lastRank(color Color) int {
	if color == White {
		return 7
	}
	return 0
}

func appendPawnMove(moves []Move, from, to Square, color Color) []Move {
	if to.Rank() == lastRank(color) {
		for _, fig := range [4]Figure{Queen, Rook, Bishop, Knight} {
			moves = append(moves, Move{From: from, To: to, Promotion: fig})
		}
		return moves
	}
	return append(moves, Move{From: from, To: to})
}

func pawnMoves(b *Board, color Color) []Move {
	s := &b.Sides[color]
	opp := &b.Sides[color.Opposite()]
	occ := b.Occupancy()
	pawns := s.Pieces[Pawn]

	var moves []Move

	single, double := pawnPushes(pawns, occ, color)
	for {
		to, ok := single.Pop()
		if !ok {
			break
		}
		moves = appendPawnMove(moves, to.Backwards(color, 1), to, color)
	}
	for {
		to, ok := double.Pop()
		if !ok {
			break
		}
		moves = appendPawnMove(moves, to.Backwards(color, 2), to, color)
	}

	capturable := opp.AllPieces | opp.EnPassantTarget

	if color == White {
		westCap := (pawns &^ FileA) << 7 & capturable
		eastCap := (pawns &^ FileH) << 9 & capturable
		for {
			to, ok := westCap.Pop()
			if !ok {
				break
			}
			moves = appendPawnMove(moves, to-7, to, color)
		}
		for {
			to, ok := eastCap.Pop()
			if !ok {
				break
			}
			moves = appendPawnMove(moves, to-9, to, color)
		}
	} else {
		towardA := (pawns &^ FileA) >> 9 & capturable
		towardH := (pawns &^ FileH) >> 7 & capturable
		for {
			to, ok := towardA.Pop()
			if !ok {
				break
			}
			moves = appendPawnMove(moves, to+9, to, color)
		}
		for {
			to, ok := towardH.Pop()
			if !ok {
				break
			}
			moves = appendPawnMove(moves, to+7, to, color)
		}
	}

	return moves
}

type castleSide struct {
	rookCorner         Square
	betweenRookAndKing BitBoard  // squares that must be empty
	kingPath           [3]Square // squares the king occupies/crosses, not-attacked required
	kingEnd            Square
}

var (
	whiteKingside  = castleSide{SquareH1, SquareF1.Bitboard() | SquareG1.Bitboard(), [3]Square{SquareE1, SquareF1, SquareG1}, SquareG1}
	whiteQueenside = castleSide{SquareA1, SquareB1.Bitboard() | SquareC1.Bitboard() | SquareD1.Bitboard(), [3]Square{SquareE1, SquareD1, SquareC1}, SquareC1}
	blackKingside  = castleSide{SquareH8, SquareF8.Bitboard() | SquareG8.Bitboard(), [3]Square{SquareE8, SquareF8, SquareG8}, SquareG8}
	blackQueenside = castleSide{SquareA8, SquareB8.Bitboard() | SquareC8.Bitboard() | SquareD8.Bitboard(), [3]Square{SquareE8, SquareD8, SquareC8}, SquareC8}
)

func castlingMoves(b *Board, color Color) []Move {
	s := &b.Sides[color]
	if s.KingHasMoved {
		return nil
	}
	kingHome := Square(SquareE1)
	sides := [2]castleSide{whiteKingside, whiteQueenside}
	if color == Black {
		kingHome = SquareE8
		sides = [2]castleSide{blackKingside, blackQueenside}
	}
	if s.Pieces[King]&kingHome.Bitboard() == 0 {
		return nil
	}

	occ := b.Occupancy()
	opponent := color.Opposite()
	var moves []Move
	for _, cs := range sides {
		if s.RooksUnmoved&cs.rookCorner.Bitboard() == 0 {
			continue
		}
		if occ&cs.betweenRookAndKing != 0 {
			continue
		}
		safe := true
		for _, sq := range cs.kingPath {
			if isAttacked(b, sq, opponent) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		moves = append(moves, Move{From: kingHome, To: cs.kingEnd})
	}
	return moves
}

// orderMoves applies a small, deterministic move-ordering bonus to
// promotion moves ahead of alpha-beta expansion, per spec: the heuristic itself is
// not mandated, only that ordering be reproducible. Pseudo-legal
// generation already walks pieces/squares in a fixed order, so a stable
// sort preserves determinism.
func orderMoves(moves []Move) {
	// Simple insertion sort: move lists are short (at most a few dozen
	// entries) and this keeps ordering stable without importing sort
	// for a one-bit key.
	score := func(m Move) int {
		if m.Promotion != NoFigure {
			return 2
		}
		return 0
	}
	for i := 1; i < len(moves); i++ {
		j := i
		for j > 0 && score(moves[j]) > score(moves[j-1]) {
			moves[j], moves[j-1] = moves[j-1], moves[j]
			j--
		}
	}
}
