// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// legal.go filters pseudo-legal moves down to legal ones by rejecting
// any move that leaves the mover's own king in check.

package engine

// pawnAttacks returns every square a pawn bitboard of color threatens,
// diagonal captures only — no forward pushes, and not masked by
// occupancy, since an empty diagonal square is still "attacked".
func pawnAttacks(pawns BitBoard, color Color) BitBoard {
	if color == White {
		return ((pawns &^ FileA) << 7) | ((pawns &^ FileH) << 9)
	}
	return ((pawns &^ FileA) >> 9) | ((pawns &^ FileH) >> 7)
}

// isAttacked reports whether sq is attacked by any piece of byColor.
func isAttacked(b *Board, sq Square, byColor Color) bool {
	s := &b.Sides[byColor]
	occ := b.Occupancy()

	if RookAttacks(occ, sq)&(s.Pieces[Rook]|s.Pieces[Queen]) != 0 {
		return true
	}
	if BishopAttacks(occ, sq)&(s.Pieces[Bishop]|s.Pieces[Queen]) != 0 {
		return true
	}
	if KnightSteps[sq]&s.Pieces[Knight] != 0 {
		return true
	}
	if KingSteps[sq]&s.Pieces[King] != 0 {
		return true
	}
	if pawnAttacks(s.Pieces[Pawn], byColor)&sq.Bitboard() != 0 {
		return true
	}
	return false
}

// IsInCheck reports whether color's king is currently attacked. A side
// with no king on the board (only possible in hand-built test
// positions) is never in check.
func IsInCheck(b *Board, color Color) bool {
	kingBB := b.Sides[color].Pieces[King]
	if kingBB.Empty() {
		return false
	}
	return isAttacked(b, kingBB.LeastSquare(), color.Opposite())
}

// LegalMoves returns every pseudo-legal move for color that does not
// leave color's own king in check afterwards.
func LegalMoves(b Board, color Color) []Move {
	pseudo := PseudoLegalMoves(&b, color)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		next := ApplyMove(b, color, m)
		if !IsInCheck(&next, color) {
			legal = append(legal, m)
		}
	}
	return legal
}
