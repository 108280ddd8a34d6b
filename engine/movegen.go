// movegen.go generates legal moves with inline ordering scores. All
// four generators walk the friendly pieces through Position.LegalMoves
// and push (move, score) pairs which are sorted descending before the
// search consumes them.

package engine

// MoveList collects scored moves into a fixed array to avoid
// allocations during search.
type MoveList struct {
	moves  [MaxMoves]Move
	scores [MaxMoves]int32
	count  int
}

// Len returns the number of generated moves.
func (l *MoveList) Len() int { return l.count }

// At returns the i-th move in sorted order.
func (l *MoveList) At(i int) Move { return l.moves[i] }

func (l *MoveList) clear() { l.count = 0 }

func (l *MoveList) push(m Move, score int32) {
	l.moves[l.count] = m
	l.scores[l.count] = score
	l.count++
}

// Gaps from Best Increments for the Average Case of Shellsort,
// Marcin Ciura.
var shellSortGaps = [...]int{132, 57, 23, 10, 4, 1}

// sort orders the list descending by score. Stability is not required.
func (l *MoveList) sort() {
	for _, gap := range shellSortGaps {
		for i := gap; i < l.count; i++ {
			s, m := l.scores[i], l.moves[i]
			j := i
			for ; j >= gap && l.scores[j-gap] < s; j -= gap {
				l.scores[j] = l.scores[j-gap]
				l.moves[j] = l.moves[j-gap]
			}
			l.scores[j], l.moves[j] = s, m
		}
	}
}

// capturedFor returns the encoded captured piece for a classified move.
func (p *Position) capturedFor(to Square, kind MoveKind) PieceType {
	if kind == Capture || kind == PromotionCapture {
		return p.mailbox[to]
	}
	return NoPiece
}

// victimFor maps a capturing move kind to the MVV/LVA victim.
func victimFor(captured PieceType, kind MoveKind) PieceType {
	if kind == EnPassant {
		return Pawn
	}
	return captured
}

// IsPassedPawn reports whether a col pawn on sq has no enemy pawn on
// its own or an adjacent file on any rank strictly ahead.
func (p *Position) IsPassedPawn(sq Square, col Color) bool {
	return passedPawnMask[col][sq]&p.pieces[col.Opposite()][Pawn] == 0
}

// relativeRank returns the rank seen from col's side, 0 at home.
func relativeRank(sq Square, col Color) int32 {
	if col == White {
		return int32(sq.Rank())
	}
	return int32(7 - sq.Rank())
}

// GenerateMoves fills list with every legal move for us, scored for the
// midgame search: the transposition hint first, captures by MVV/LVA,
// queen promotions, then killers and history movers. Promotions
// generate the queen only.
func (p *Position) GenerateMoves(list *MoveList, depth int, us Color, ttHint Move) {
	list.clear()

	for friendly := p.colorBB(us); friendly != 0; {
		from := friendly.Pop()
		piece := p.mailbox[from]

		for legal := p.LegalMoves(from, us); legal != 0; {
			to := legal.Pop()
			kind := p.MoveKindFor(from, to, us)
			captured := p.capturedFor(to, kind)

			promo := NoPiece
			if kind == Promotion || kind == PromotionCapture {
				promo = Queen
			}
			m := EncodeMove(from, to, piece, captured, kind, promo, false)

			var score int32
			switch {
			case ttHint != NullMove && m == ttHint:
				score = ttMoveScore
			case kind == Capture || kind == PromotionCapture || kind == EnPassant:
				score = mvvLva[victimFor(captured, kind)][piece]
			case depth > 0:
				if isKillerMove(from, to, piece, depth) {
					score = killerScore
				} else {
					score = historyScore(from, to, piece)
				}
			}
			if m != ttHint && (kind == Promotion || kind == PromotionCapture) {
				score += queenPromotion
			}

			list.push(m, score)
		}
	}

	list.sort()
}

// GenerateNoisyMoves fills list with captures, en passant and queen
// promotions for the quiescence search, scored by MVV/LVA.
func (p *Position) GenerateNoisyMoves(list *MoveList, us Color) {
	list.clear()

	enemy := p.colorBB(us.Opposite())
	for friendly := p.colorBB(us); friendly != 0; {
		from := friendly.Pop()
		piece := p.mailbox[from]
		legal := p.LegalMoves(from, us)

		for captures := legal & enemy; captures != 0; {
			to := captures.Pop()
			kind := p.MoveKindFor(from, to, us)
			captured := p.capturedFor(to, kind)

			score := mvvLva[captured][piece]
			promo := NoPiece
			if kind == PromotionCapture {
				promo = Queen
				score += queenPromotion
			}
			list.push(EncodeMove(from, to, piece, captured, kind, promo, false), score)
		}

		if piece != Pawn {
			continue
		}
		if p.epTarget != NoSquare && legal.Has(p.epTarget) {
			list.push(EncodeMove(from, p.epTarget, Pawn, NoPiece, EnPassant, NoPiece, false),
				mvvLva[Pawn][Pawn])
		}
		// Quiet promotions to a queen.
		promoRank := BbRank8
		if us == Black {
			promoRank = BbRank1
		}
		for quiet := legal & promoRank &^ enemy; quiet != 0; {
			to := quiet.Pop()
			list.push(EncodeMove(from, to, Pawn, NoPiece, Promotion, Queen, false), queenPromotion)
		}
	}

	list.sort()
}

// KingDanger holds, per piece kind, the squares from which a piece of
// us would give check to the enemy king.
type KingDanger struct {
	pawn       Bitboard
	knight     Bitboard
	diagonal   Bitboard
	orthogonal Bitboard
}

// computeKingDanger precomputes the enemy-king reachability sets used
// to flag checking moves during endgame generation.
func (p *Position) computeKingDanger(us Color) KingDanger {
	kingSq := p.pieces[us.Opposite()][King].LSB()
	occ := p.occupied()
	return KingDanger{
		pawn:       pawnCapture[us.Opposite()][kingSq],
		knight:     knightAttacks[kingSq],
		diagonal:   BishopAttacks(kingSq, occ),
		orthogonal: RookAttacks(kingSq, occ),
	}
}

// isCheckSquare reports whether a piece landing on to checks the enemy
// king. Kings cannot give check themselves; discovered checks are not
// tracked.
func (kd *KingDanger) isCheckSquare(to Square, piece PieceType) bool {
	switch piece {
	case Pawn:
		return kd.pawn.Has(to)
	case Knight:
		return kd.knight.Has(to)
	case Bishop:
		return kd.diagonal.Has(to)
	case Rook:
		return kd.orthogonal.Has(to)
	case Queen:
		return (kd.diagonal | kd.orthogonal).Has(to)
	}
	return false
}

// promotionBonus returns the ordering bonus for promoting to pt.
func promotionBonus(pt PieceType) int32 {
	switch pt {
	case Queen:
		return queenPromotion
	case Rook:
		return rookPromotion
	}
	return bnPromotion
}

// endgamePromotions is the generation order of underpromotions.
var endgamePromotions = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateEndgameMoves fills list with every legal move for us, scored
// for the endgame search: checking moves lead, captures use the scaled
// endgame MVV/LVA with a penalty for losing trades when ahead, passed
// pawn advances and king centralization are rewarded, and
// underpromotions are generated alongside the queen.
func (p *Position) GenerateEndgameMoves(list *MoveList, depth int, us Color, ttHint Move) {
	list.clear()

	winning := p.winningPosition(us)
	danger := p.computeKingDanger(us)

	for friendly := p.colorBB(us); friendly != 0; {
		from := friendly.Pop()
		piece := p.mailbox[from]

		for legal := p.LegalMoves(from, us); legal != 0; {
			to := legal.Pop()
			kind := p.MoveKindFor(from, to, us)
			captured := p.capturedFor(to, kind)
			isCheck := piece != King && danger.isCheckSquare(to, piece)

			var score int32
			if isCheck {
				score += checkMoveScore
			}

			if kind == Capture || kind == PromotionCapture || kind == EnPassant {
				victim := victimFor(captured, kind)
				score += mvvLvaEndgame[victim][piece]
				if winning && PieceValues[piece] > PieceValues[victim] {
					score -= losingTradePenalty
				}
			} else if depth > 0 {
				if isKillerMove(from, to, piece, depth) {
					score += killerScore
				}
				score += historyScore(from, to, piece) / historyScoreDivisor
			}

			if piece == Pawn && p.IsPassedPawn(to, us) {
				score += passedPawnScore + passedPawnRankMult*relativeRank(to, us)
			}
			if piece == King {
				score += 600 * (4 - centralityDistance[to])
			}

			if kind == Promotion || kind == PromotionCapture {
				for _, promo := range endgamePromotions {
					m := EncodeMove(from, to, piece, captured, kind, promo, isCheck)
					if ttHint != NullMove && m == ttHint {
						list.push(m, ttMoveScore)
					} else {
						list.push(m, score+promotionBonus(promo))
					}
				}
			} else {
				m := EncodeMove(from, to, piece, captured, kind, NoPiece, isCheck)
				if ttHint != NullMove && m == ttHint {
					list.push(m, ttMoveScore)
				} else {
					list.push(m, score)
				}
			}
		}
	}

	list.sort()
}

// GenerateEndgameNoisyMoves fills list with the endgame quiescence
// input: captures, promotions and every checking move. Quiet non-checks
// are skipped.
func (p *Position) GenerateEndgameNoisyMoves(list *MoveList, us Color) {
	list.clear()

	winning := p.winningPosition(us)
	danger := p.computeKingDanger(us)

	for friendly := p.colorBB(us); friendly != 0; {
		from := friendly.Pop()
		piece := p.mailbox[from]

		for legal := p.LegalMoves(from, us); legal != 0; {
			to := legal.Pop()
			kind := p.MoveKindFor(from, to, us)
			isCheck := piece != King && danger.isCheckSquare(to, piece)

			quiet := kind == Normal || kind == Castling || kind == PawnDoublePush
			if quiet && !isCheck {
				continue
			}

			captured := p.capturedFor(to, kind)
			var score int32
			if isCheck {
				score += checkMoveScore
			}

			if kind == Promotion || kind == PromotionCapture {
				if p.IsPassedPawn(from, us) {
					score += passedPawnScore + passedPawnRankMult*relativeRank(to, us)
				}
			}

			if kind == Capture || kind == PromotionCapture || kind == EnPassant {
				victim := victimFor(captured, kind)
				score += mvvLvaEndgame[victim][piece]
				if winning && PieceValues[piece] > PieceValues[victim] {
					score -= losingTradePenalty
				}
			}

			if piece == King {
				score += 200 * (4 - centralityDistance[to])
			}

			if kind == Promotion || kind == PromotionCapture {
				for _, promo := range endgamePromotions {
					list.push(EncodeMove(from, to, piece, captured, kind, promo, isCheck),
						score+promotionBonus(promo))
				}
			} else {
				list.push(EncodeMove(from, to, piece, captured, kind, NoPiece, isCheck), score)
			}
		}
	}

	list.sort()
}

// GeneratePerftMoves fills list with every legal move, expanding
// promotions to all four pieces and skipping the ordering scores. Used
// for move-path enumeration; the search generators restrict promotions.
func (p *Position) GeneratePerftMoves(list *MoveList, us Color) {
	list.clear()

	for friendly := p.colorBB(us); friendly != 0; {
		from := friendly.Pop()
		piece := p.mailbox[from]

		for legal := p.LegalMoves(from, us); legal != 0; {
			to := legal.Pop()
			kind := p.MoveKindFor(from, to, us)
			captured := p.capturedFor(to, kind)

			if kind == Promotion || kind == PromotionCapture {
				for _, promo := range endgamePromotions {
					list.push(EncodeMove(from, to, piece, captured, kind, promo, false), 0)
				}
			} else {
				list.push(EncodeMove(from, to, piece, captured, kind, NoPiece, false), 0)
			}
		}
	}
}

// winningPosition is the coarse material test used to discourage
// trades while ahead.
func (p *Position) winningPosition(us Color) bool {
	eval := p.material + p.positional
	if us == White {
		return eval >= 0
	}
	return eval < 0
}
