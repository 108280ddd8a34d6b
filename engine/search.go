// search.go implements the depth-limited alpha-beta search with
// transposition table, killer and history move ordering, quiescence
// with delta pruning, and the endgame variant with check extensions.
//
// Scores are always from White's point of view; the maximizing flag
// says whether the node's side to move wants them high or low.

package engine

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fianchetto-engine/fianchetto/internal/logging"
)

var (
	log = logging.GetLog()
	out = message.NewPrinter(language.English)
)

// Stats collects counters for one root search.
type Stats struct {
	Nodes     uint64
	CacheHit  uint64
	CacheMiss uint64
}

// Move ordering state. Process-wide and persisted across searches, like
// the transposition table.
var (
	// killerMoves keeps two quiet cutoff moves per depth as compressed
	// 16-bit keys.
	killerMoves [MaxDepth][2]uint16
	// historyTable scores quiet moves by how often they improved the
	// search, indexed by the same 16-bit key.
	historyTable [maxHistoryKey]int32
)

func isKillerMove(from, to Square, piece PieceType, depth int) bool {
	if depth < 0 || depth >= MaxDepth {
		return false
	}
	key := moveKey(from, to, piece)
	return key == killerMoves[depth][0] || key == killerMoves[depth][1]
}

func historyScore(from, to Square, piece PieceType) int32 {
	return historyTable[moveKey(from, to, piece)]
}

// updateKillerMoves shifts the new killer into slot 0 without
// duplicating it.
func updateKillerMoves(m Move, depth int) {
	if depth < 0 || depth >= MaxDepth {
		return
	}
	key := m.Key()
	if key != killerMoves[depth][0] {
		killerMoves[depth][1] = killerMoves[depth][0]
		killerMoves[depth][0] = key
	}
}

// updateHistory weights deeper cutoffs quadratically.
func updateHistory(m Move, depth int) {
	historyTable[m.Key()] += int32(depth * depth)
}

// probeTT looks the position up and applies the stored bounds. done is
// true when the entry alone decides the node.
func probeTT(p *Position, depth int, alpha, beta *int32, stats *Stats) (hint Move, score int32, done bool) {
	hint = NullMove
	if GlobalHashTable == nil {
		return hint, 0, false
	}
	entry, ok := GlobalHashTable.probe(p.hash)
	if !ok {
		stats.CacheMiss++
		return hint, 0, false
	}
	stats.CacheHit++
	hint = entry.move

	if int(entry.depth) < depth {
		return hint, 0, false
	}
	stored := int32(entry.score)
	switch entry.flag {
	case flagExact:
		return hint, stored, true
	case flagLowerBound:
		if stored >= *beta {
			if hint != NullMove && !hint.IsCapture() {
				updateKillerMoves(hint, depth)
			}
			return hint, stored, true
		}
		if stored > *alpha {
			*alpha = stored
		}
	case flagUpperBound:
		if stored <= *alpha {
			if hint != NullMove && !hint.IsCapture() {
				updateKillerMoves(hint, depth)
			}
			return hint, stored, true
		}
		if stored < *beta {
			*beta = stored
		}
	}
	if *alpha >= *beta {
		return hint, *alpha, true
	}
	return hint, 0, false
}

func storeTT(p *Position, depth int, score int32, flag ttFlag, move Move) {
	if GlobalHashTable != nil {
		GlobalHashTable.store(p.hash, score, depth, flag, move)
	}
}

// minimax searches the midgame tree to depth.
func minimax(p *Position, depth int, alpha, beta int32, maximizing bool, stats *Stats) int32 {
	// Draw gates come before everything, the transposition table
	// included: path-dependent draws must not be masked by cached
	// scores.
	if p.halfMoves >= 50 {
		return 0
	}
	if p.IsDrawByRepetitionInPath() {
		return 0
	}
	stats.Nodes++

	ttHint, ttScore, done := probeTT(p, depth, &alpha, &beta, stats)
	if done {
		return ttScore
	}

	if p.state.IsGameOver() {
		return p.Evaluate(int32(depth))
	}
	if depth <= 0 {
		return quiescence(p, alpha, beta, maximizing, stats)
	}

	us := p.SideToMove
	var list MoveList
	p.GenerateMoves(&list, depth, us, ttHint)
	if list.Len() == 0 {
		return p.Evaluate(int32(depth))
	}

	bestMove := NullMove
	flag := flagUpperBound

	if maximizing {
		best := -Infinity
		for i := 0; i < list.Len(); i++ {
			m := list.At(i)
			p.ApplyMove(m, us)
			var eval int32
			if p.state.IsDraw() {
				eval = 0
			} else {
				eval = minimax(p, depth-1, alpha, beta, false, stats)
			}
			p.UndoMove(m, us)

			if eval > best {
				best, bestMove = eval, m
				if best > alpha {
					alpha = best
					flag = flagExact
					if !m.IsCapture() {
						updateHistory(m, depth)
					}
				}
			}
			if alpha >= beta {
				if !m.IsCapture() {
					updateKillerMoves(m, depth)
				}
				storeTT(p, depth, best, flagLowerBound, m)
				return best
			}
		}
		storeTT(p, depth, best, flag, bestMove)
		return best
	}

	flag = flagLowerBound
	best := Infinity
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		p.ApplyMove(m, us)
		var eval int32
		if p.state.IsDraw() {
			eval = 0
		} else {
			eval = minimax(p, depth-1, alpha, beta, true, stats)
		}
		p.UndoMove(m, us)

		if eval < best {
			best, bestMove = eval, m
			if best < beta {
				beta = best
				flag = flagExact
				if !m.IsCapture() {
					updateHistory(m, depth)
				}
			}
		}
		if alpha >= beta {
			if !m.IsCapture() {
				updateKillerMoves(m, depth)
			}
			storeTT(p, depth, best, flagUpperBound, m)
			return best
		}
	}
	storeTT(p, depth, best, flag, bestMove)
	return best
}

// quiescence resolves captures until the position goes quiet.
func quiescence(p *Position, alpha, beta int32, maximizing bool, stats *Stats) int32 {
	if p.halfMoves >= 50 {
		return 0
	}
	if p.IsDrawByRepetitionInPath() {
		return 0
	}
	stats.Nodes++

	standPat := p.evaluateForPhase(0)
	if maximizing {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		if standPat <= alpha {
			return alpha
		}
		if standPat < beta {
			beta = standPat
		}
	}

	us := p.SideToMove
	var list MoveList
	p.GenerateNoisyMoves(&list, us)

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)

		// Delta pruning: skip captures that cannot raise alpha even
		// with the margin. Promotions are exempt.
		if !m.IsPromotion() {
			value := estimateCaptureValue(m)
			if maximizing && standPat+value+deltaMarginMidgame <= alpha {
				continue
			}
			if !maximizing && standPat-value-deltaMarginMidgame >= beta {
				continue
			}
		}

		p.ApplyMove(m, us)
		score := quiescence(p, alpha, beta, !maximizing, stats)
		p.UndoMove(m, us)

		if maximizing {
			if score >= beta {
				return beta
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score <= alpha {
				return alpha
			}
			if score < beta {
				beta = score
			}
		}
	}

	if maximizing {
		return alpha
	}
	return beta
}

// endgameMinimax mirrors minimax with the endgame generators and
// evaluator, plus a one-ply check extension.
func endgameMinimax(p *Position, depth int, alpha, beta int32, maximizing bool, stats *Stats) int32 {
	if p.halfMoves >= 50 {
		return 0
	}
	if p.IsDrawByRepetitionInPath() {
		return 0
	}
	stats.Nodes++

	ttHint, ttScore, done := probeTT(p, depth, &alpha, &beta, stats)
	if done {
		return ttScore
	}

	if p.state.IsGameOver() {
		return p.EvaluateEndgame(int32(depth))
	}
	if depth <= 0 {
		return endgameQuiescence(p, alpha, beta, maximizing, stats)
	}

	// Search checks one ply deeper; the budget caps runaway extensions.
	if p.state.IsCheck(p.SideToMove) && depth < MaxDepth-1 {
		depth++
	}

	us := p.SideToMove
	var list MoveList
	p.GenerateEndgameMoves(&list, depth, us, ttHint)
	if list.Len() == 0 {
		return p.EvaluateEndgame(int32(depth))
	}

	bestMove := NullMove
	flag := flagUpperBound

	if maximizing {
		best := -Infinity
		for i := 0; i < list.Len(); i++ {
			m := list.At(i)
			p.ApplyMove(m, us)
			var eval int32
			if p.state.IsDraw() {
				eval = 0
			} else {
				eval = endgameMinimax(p, depth-1, alpha, beta, false, stats)
			}
			p.UndoMove(m, us)

			if eval > best {
				best, bestMove = eval, m
				if best > alpha {
					alpha = best
					flag = flagExact
					if !m.IsCapture() {
						updateHistory(m, depth)
					}
				}
			}
			if alpha >= beta {
				if !m.IsCapture() {
					updateKillerMoves(m, depth)
				}
				storeTT(p, depth, best, flagLowerBound, m)
				return best
			}
		}
		storeTT(p, depth, best, flag, bestMove)
		return best
	}

	flag = flagLowerBound
	best := Infinity
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		p.ApplyMove(m, us)
		var eval int32
		if p.state.IsDraw() {
			eval = 0
		} else {
			eval = endgameMinimax(p, depth-1, alpha, beta, true, stats)
		}
		p.UndoMove(m, us)

		if eval < best {
			best, bestMove = eval, m
			if best < beta {
				beta = best
				flag = flagExact
				if !m.IsCapture() {
					updateHistory(m, depth)
				}
			}
		}
		if alpha >= beta {
			if !m.IsCapture() {
				updateKillerMoves(m, depth)
			}
			storeTT(p, depth, best, flagUpperBound, m)
			return best
		}
	}
	storeTT(p, depth, best, flag, bestMove)
	return best
}

// endgameQuiescence resolves captures, promotions and checks. Checking
// moves are exempt from delta pruning alongside promotions.
func endgameQuiescence(p *Position, alpha, beta int32, maximizing bool, stats *Stats) int32 {
	if p.halfMoves >= 50 {
		return 0
	}
	if p.IsDrawByRepetitionInPath() {
		return 0
	}
	stats.Nodes++

	standPat := p.EvaluateEndgame(0)
	if maximizing {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	} else {
		if standPat <= alpha {
			return alpha
		}
		if standPat < beta {
			beta = standPat
		}
	}

	us := p.SideToMove
	var list MoveList
	p.GenerateEndgameNoisyMoves(&list, us)

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)

		if !m.IsPromotion() && !m.IsCheck() {
			value := p.estimateEndgameCaptureValue(m, us)
			if maximizing && standPat+value+deltaMarginEndgame <= alpha {
				continue
			}
			if !maximizing && standPat-value-deltaMarginEndgame >= beta {
				continue
			}
		}

		p.ApplyMove(m, us)
		score := endgameQuiescence(p, alpha, beta, !maximizing, stats)
		p.UndoMove(m, us)

		if maximizing {
			if score >= beta {
				return beta
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score <= alpha {
				return alpha
			}
			if score < beta {
				beta = score
			}
		}
	}

	if maximizing {
		return alpha
	}
	return beta
}

// bestMoveWith runs the root loop with the given recursive search.
func bestMoveWith(p *Position, depth int, maximizing bool,
	generate func(*MoveList, int, Color, Move),
	search func(*Position, int, int32, int32, bool, *Stats) int32) Move {

	if depth >= MaxDepth {
		depth = MaxDepth - 1
	}

	us := p.SideToMove
	var list MoveList
	generate(&list, 0, us, NullMove)
	if list.Len() == 0 {
		return NullMove
	}

	p.StartNewSearch()
	stats := &Stats{}

	best := NullMove
	bestScore := Infinity
	if maximizing {
		bestScore = -Infinity
	}

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		p.ApplyMove(m, us)
		score := search(p, depth-1, -Infinity, Infinity, !maximizing, stats)
		p.UndoMove(m, us)

		if maximizing && score > bestScore || !maximizing && score < bestScore {
			bestScore = score
			best = m
		}
	}

	log.Debugf("depth %d best %v score %d nodes %s tt %d/%d",
		depth, best, bestScore, out.Sprintf("%d", stats.Nodes),
		stats.CacheHit, stats.CacheHit+stats.CacheMiss)
	return best
}

// BestMove runs the midgame root search for the side to move and
// returns the chosen move, or NullMove when no legal move exists.
func BestMove(p *Position, depth int, maximizing bool) Move {
	return bestMoveWith(p, depth, maximizing, p.GenerateMoves, minimax)
}

// BestEndgameMove runs the endgame root search.
func BestEndgameMove(p *Position, depth int, maximizing bool) Move {
	return bestMoveWith(p, depth, maximizing, p.GenerateEndgameMoves, endgameMinimax)
}

// ClearSearchState resets the killer and history tables, e.g. between
// games.
func ClearSearchState() {
	killerMoves = [MaxDepth][2]uint16{}
	historyTable = [maxHistoryKey]int32{}
}
