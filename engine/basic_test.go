// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "testing"

func TestSquareFromString(t *testing.T) {
	data := []struct {
		sq  Square
		str string
	}{
		{RankFile(3, 5), "f4"},
		{RankFile(2, 0), "a3"},
		{SquareC1, "c1"},
		{SquareH8, "h8"},
	}

	for _, d := range data {
		if d.sq.String() != d.str {
			t.Errorf("expected %v, got %v", d.str, d.sq.String())
		}
		got, err := SquareFromString(d.str)
		if err != nil {
			t.Fatalf("SquareFromString(%q): %v", d.str, err)
		}
		if got != d.sq {
			t.Errorf("SquareFromString(%q): expected %v, got %v", d.str, d.sq, got)
		}
	}
}

func TestSquareFromStringRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "a", "z9", "a0", "i4", "e44"} {
		if _, err := SquareFromString(s); err == nil {
			t.Errorf("SquareFromString(%q): expected error, got nil", s)
		}
	}
}

func TestRankFile(t *testing.T) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := RankFile(r, f)
			if sq.Rank() != r || sq.File() != f {
				t.Errorf("expected (rank, file) (%d, %d), got (%d, %d)", r, f, sq.Rank(), sq.File())
			}
		}
	}
}

func TestColorOpposite(t *testing.T) {
	if White.Opposite() != Black {
		t.Errorf("expected Black, got %v", White.Opposite())
	}
	if Black.Opposite() != White {
		t.Errorf("expected White, got %v", Black.Opposite())
	}
}

func TestParseMoveRoundTrip(t *testing.T) {
	data := []string{"e2e4", "b7a8q", "g1f3", "e7e8r"}
	for _, s := range data {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if got := m.String(); got != s {
			t.Errorf("ParseMove(%q).String(): expected %q, got %q", s, s, got)
		}
	}
}

func TestParseMoveRejectsBadPromotion(t *testing.T) {
	if _, err := ParseMove("e7e8x"); err == nil {
		t.Errorf("expected error for invalid promotion letter")
	}
}

func TestSquareForwardsBackwards(t *testing.T) {
	sq, _ := SquareFromString("e2")
	if got := sq.Forwards(White, 2); got.String() != "e4" {
		t.Errorf("White e2 forwards 2: expected e4, got %v", got)
	}
	if got := sq.Backwards(Black, 2); got.String() != "e4" {
		t.Errorf("Black e2 backwards 2: expected e4, got %v", got)
	}
}
