// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// bitboard.go implements BitBoard: a 64-bit set of squares with total,
// wrapping operator semantics so the subtract-a-rook trick in movegen.go
// never traps on underflow.

package engine

import "math/bits"

// BitBoard is a set of squares, bit i set iff square i is a member.
type BitBoard uint64

// Union, Intersect, Xor and Complement are the set-algebra primitives.
func (b BitBoard) Union(o BitBoard) BitBoard      { return b | o }
func (b BitBoard) Intersect(o BitBoard) BitBoard  { return b & o }
func (b BitBoard) Xor(o BitBoard) BitBoard        { return b ^ o }
func (b BitBoard) Complement() BitBoard           { return ^b }
func (b BitBoard) ShiftLeft(n uint) BitBoard      { return b << n }
func (b BitBoard) ShiftRight(n uint) BitBoard     { return b >> n }
func (b BitBoard) Has(sq Square) bool             { return b&sq.Bitboard() != 0 }
func (b BitBoard) Empty() bool                    { return b == 0 }

// WrappingSub subtracts o from b modulo 2^64 (never panics/traps).
func (b BitBoard) WrappingSub(o BitBoard) BitBoard { return b - o }

// WrappingMul multiplies b by o modulo 2^64.
func (b BitBoard) WrappingMul(o BitBoard) BitBoard { return b * o }

// Popcount returns the number of set squares.
func (b BitBoard) Popcount() int { return bits.OnesCount64(uint64(b)) }

// LeastSquare returns the index of the lowest set bit.
// Result is undefined for an empty board.
func (b BitBoard) LeastSquare() Square { return Square(bits.TrailingZeros64(uint64(b))) }

// LSB returns the singleton bitboard of the lowest set bit, or 0 if empty.
func (b BitBoard) LSB() BitBoard { return b & (-b) }

// Pop extracts the lowest set square, clearing it from *b.
// Returns false if b was already empty.
func (b *BitBoard) Pop() (Square, bool) {
	if *b == 0 {
		return 0, false
	}
	sq := b.LeastSquare()
	*b &= *b - 1
	return sq, true
}

// Iter drains b (destructively) into a slice of squares in ascending
// index order.
func (b *BitBoard) Iter() []Square {
	var out []Square
	for {
		sq, ok := b.Pop()
		if !ok {
			break
		}
		out = append(out, sq)
	}
	return out
}

// FlipVertical swaps ranks 1<->8, 2<->7, ... (a byte-swap of the 8 rank bytes).
func (b BitBoard) FlipVertical() BitBoard {
	return BitBoard(bits.ReverseBytes64(uint64(b)))
}

// MirrorHorizontal exchanges files a<->h, b<->g, ... within every rank.
func (b BitBoard) MirrorHorizontal() BitBoard {
	const (
		k1 = BitBoard(0x5555555555555555)
		k2 = BitBoard(0x3333333333333333)
		k4 = BitBoard(0x0f0f0f0f0f0f0f0f)
	)
	b = ((b >> 1) & k1) | ((b & k1) << 1)
	b = ((b >> 2) & k2) | ((b & k2) << 2)
	b = ((b >> 4) & k4) | ((b & k4) << 4)
	return b
}

// Rotate180 is FlipVertical composed with MirrorHorizontal.
func (b BitBoard) Rotate180() BitBoard {
	return b.FlipVertical().MirrorHorizontal()
}

// FlipDiagonal mirrors across the a1-h8 diagonal.
func (b BitBoard) FlipDiagonal() BitBoard {
	const (
		k1 = BitBoard(0x5500550055005500)
		k2 = BitBoard(0x3333000033330000)
		k4 = BitBoard(0x0f0f0f0f00000000)
	)
	t := k4 & (b ^ (b << 28))
	b ^= t ^ (t >> 28)
	t = k2 & (b ^ (b << 14))
	b ^= t ^ (t >> 14)
	t = k1 & (b ^ (b << 7))
	b ^= t ^ (t >> 7)
	return b
}

// FlipAntiDiagonal mirrors across the a8-h1 diagonal.
func (b BitBoard) FlipAntiDiagonal() BitBoard {
	const (
		k1 = BitBoard(0xaa00aa00aa00aa00)
		k2 = BitBoard(0xcccc0000cccc0000)
		k4 = BitBoard(0xf0f0f0f00f0f0f0f)
	)
	t := b ^ (b << 36)
	b ^= k4 & (t ^ (b >> 36))
	t = k2 & (b ^ (b << 18))
	b ^= t ^ (t >> 18)
	t = k1 & (b ^ (b << 9))
	b ^= t ^ (t >> 9)
	return b
}
