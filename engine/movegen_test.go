// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "testing"

func hasMove(moves []Move, from, to Square) bool {
	for _, m := range moves {
		if m.From == from && m.To == to {
			return true
		}
	}
	return false
}

func countMoves(moves []Move, from, to Square) int {
	n := 0
	for _, m := range moves {
		if m.From == from && m.To == to {
			n++
		}
	}
	return n
}

func TestRookAttacksStopAtFirstBlocker(t *testing.T) {
	// Rook on a1, blockers on a4 (own side irrelevant here, only occupancy
	// matters to RookAttacks) and d1.
	occ := SquareA1.Bitboard() | RankFile(3, 0).Bitboard() | RankFile(0, 3).Bitboard()
	attacks := RookAttacks(occ, SquareA1)
	for _, want := range []Square{RankFile(1, 0), RankFile(2, 0), RankFile(3, 0), RankFile(0, 1), RankFile(0, 2), RankFile(0, 3)} {
		if !attacks.Has(want) {
			t.Errorf("expected a1 rook to attack %v", want)
		}
	}
	if attacks.Has(RankFile(4, 0)) {
		t.Errorf("rook attack should stop at the a4 blocker, not see past it")
	}
	if attacks.Has(RankFile(0, 4)) {
		t.Errorf("rook attack should stop at the d1 blocker, not see past it")
	}
}

func TestBishopAttacksBlockedOnMainDiagonal(t *testing.T) {
	// Bishop on a1 (diagonal a1-h8), blocker on e5.
	occ := SquareA1.Bitboard() | RankFile(4, 4).Bitboard()
	attacks := BishopAttacks(occ, SquareA1)
	for _, want := range []Square{RankFile(1, 1), RankFile(2, 2), RankFile(3, 3), RankFile(4, 4)} {
		if !attacks.Has(want) {
			t.Errorf("expected a1 bishop to attack %v", want)
		}
	}
	if attacks.Has(RankFile(5, 5)) {
		t.Errorf("bishop attack should stop at the e5 blocker")
	}
}

func TestSlidingBlockerExample(t *testing.T) {
	// Bishop parked on e3 with a friendly pawn on c1 and an enemy pawn on
	// g5: attacks should include the enemy-occupied square (a capture) but
	// stop immediately at the friendly-occupied square (no landing there).
	b, _, err := ParseFEN("k7/8/8/6p1/8/4B3/8/2P4K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := PseudoLegalMoves(&b, White)
	bishopSq, _ := SquareFromString("e3")
	g5, _ := SquareFromString("g5")
	if !hasMove(moves, bishopSq, g5) {
		t.Errorf("expected e3 bishop to be able to capture on g5")
	}
	if hasMove(moves, bishopSq, RankFile(5, 7)) {
		t.Errorf("bishop should not see past the g5 blocker")
	}
	c1, _ := SquareFromString("c1")
	if hasMove(moves, bishopSq, c1) {
		t.Errorf("bishop should not be able to land on its own pawn at c1")
	}
}

func TestKnightStepsNoFileWrap(t *testing.T) {
	sq, _ := SquareFromString("a1")
	if KnightSteps[sq].Has(RankFile(2, 7)) {
		t.Errorf("knight on a1 must not wrap around to the h-file")
	}
	want := []Square{RankFile(1, 2), RankFile(2, 1)}
	for _, w := range want {
		if !KnightSteps[sq].Has(w) {
			t.Errorf("expected a1 knight to reach %v", w)
		}
	}
}

func TestPawnPromotionGeneratesFourMoves(t *testing.T) {
	b, _, err := ParseFEN("8/P6k/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := PseudoLegalMoves(&b, White)
	from, _ := SquareFromString("a7")
	to, _ := SquareFromString("a8")
	if got := countMoves(moves, from, to); got != 4 {
		t.Errorf("expected 4 promotion moves a7-a8, got %d", got)
	}
}

func TestEnPassantMoveGenerated(t *testing.T) {
	b, _, err := ParseFEN("8/8/8/8/3pP3/8/8/k6K b - e3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := PseudoLegalMoves(&b, Black)
	from, _ := SquareFromString("d4")
	to, _ := SquareFromString("e3")
	if !hasMove(moves, from, to) {
		t.Errorf("expected the en-passant capture d4xe3 to be generated")
	}
}

func TestCastlingGeneratedWhenClear(t *testing.T) {
	b, _, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := PseudoLegalMoves(&b, White)
	e1, _ := SquareFromString("e1")
	g1, _ := SquareFromString("g1")
	c1, _ := SquareFromString("c1")
	if !hasMove(moves, e1, g1) {
		t.Errorf("expected kingside castling to be generated")
	}
	if !hasMove(moves, e1, c1) {
		t.Errorf("expected queenside castling to be generated")
	}
}

func TestCastlingBlockedThroughAttackedSquare(t *testing.T) {
	// Black rook on f8 rakes the f-file, covering f1: kingside castling
	// must be refused even though every square is empty.
	b, _, err := ParseFEN("5r1k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves := PseudoLegalMoves(&b, White)
	e1, _ := SquareFromString("e1")
	g1, _ := SquareFromString("g1")
	if hasMove(moves, e1, g1) {
		t.Errorf("castling through an attacked square must not be generated")
	}
}

func TestPinPreventsIllegalMove(t *testing.T) {
	// White king on e1, white rook on e2, black rook on e8 pins it along
	// the e-file: moving the rook off the file must be filtered out by
	// LegalMoves even though it is pseudo-legal.
	b, _, err := ParseFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	legal := LegalMoves(b, White)
	e2, _ := SquareFromString("e2")
	d2, _ := SquareFromString("d2")
	if hasMove(legal, e2, d2) {
		t.Errorf("pinned rook must not be able to step off the e-file")
	}
	e3, _ := SquareFromString("e3")
	if !hasMove(legal, e2, e3) {
		t.Errorf("pinned rook should still be able to slide along the pin file")
	}
}

func TestCheckmateHasNoLegalMoves(t *testing.T) {
	// Classic back-rank mate: black king boxed in by its own pawns, white
	// rook rakes the open back rank.
	b, _, err := ParseFEN("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !IsInCheck(&b, Black) {
		t.Fatalf("sanity: expected black to be in check")
	}
	if moves := LegalMoves(b, Black); len(moves) != 0 {
		t.Errorf("expected checkmate, got legal moves %v", moves)
	}
}
