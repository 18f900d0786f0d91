// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// eval.go defines Evaluation, a totally ordered score with two sentinel
// values (forced loss and forced win) bracketing every attainable
// material score, and the material-only position evaluator.

package engine

import "math"

// Evaluation scores a position from the mover's point of view: higher
// is better. Worst and Best bracket every Score value so alpha-beta
// pruning can always find a strictly worse/better bound to start from.
type Evaluation int32

const (
	Worst Evaluation = math.MinInt32
	Best  Evaluation = math.MaxInt32
)

// Score wraps a material-style point count as an Evaluation.
func Score(points int) Evaluation {
	return Evaluation(points)
}

// Draw is the evaluation of a drawn (stalemated) position.
func Draw() Evaluation {
	return Score(0)
}

// Negate flips an evaluation to the opponent's point of view: a forced
// win for the mover is a forced loss for the opponent and vice versa,
// and any other score simply changes sign.
func (e Evaluation) Negate() Evaluation {
	switch e {
	case Worst:
		return Best
	case Best:
		return Worst
	default:
		return -e
	}
}

// figureValue assigns material points per spec: pawns worth 1 through
// kings worth 100 (the king's weight exists only to keep the evaluator
// uniform over FigureArraySize; kings are never actually captured —
// see-checkmate/stalemate handling in search.go short-circuits before
// a king would ever be removed from a legal line).
var figureValue = [FigureArraySize]int{
	NoFigure: 0,
	Pawn:     1,
	Knight:   3,
	Bishop:   3,
	Rook:     5,
	Queen:    8,
	King:     100,
}

// Material scores b from color's point of view as the sum of color's
// piece values minus the opponent's.
func Material(b *Board, color Color) Evaluation {
	points := 0
	opponent := color.Opposite()
	for fig := Pawn; fig <= King; fig++ {
		points += figureValue[fig] * b.Sides[color].Pieces[fig].Popcount()
		points -= figureValue[fig] * b.Sides[opponent].Pieces[fig].Popcount()
	}
	return Score(points)
}
