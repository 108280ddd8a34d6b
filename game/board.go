// Package game exposes the stateful chessboard consumed by front ends:
// user moves, engine replies, FEN snapshots and game-state reporting.
package game

import (
	"strings"

	"github.com/fianchetto-engine/fianchetto/engine"
)

// Board wraps a Position with turn tracking, the sticky endgame switch
// and the previous-move notation.
type Board struct {
	pos *engine.Position

	// Once the position thins into an endgame the engine keeps using
	// the endgame search even if material later looks midgame-ish.
	endgame  bool
	prevMove string
}

// NewBoard returns a board at the standard starting position. The
// engine's precomputed tables are package-level and ready by the time
// this returns.
func NewBoard() *Board {
	return &Board{pos: engine.NewPosition()}
}

// Position exposes the underlying position, e.g. for rendering.
func (b *Board) Position() *engine.Position { return b.pos }

// SideToMove returns the color to move next.
func (b *Board) SideToMove() engine.Color { return b.pos.SideToMove }

// LegalMoves returns the legal destination bitboard for the piece on
// square. Out-of-range squares, empty squares and opponent pieces all
// yield the empty bitboard.
func (b *Board) LegalMoves(square int) engine.Bitboard {
	if square < 0 || square > 63 {
		return 0
	}
	return b.pos.LegalMoves(engine.Square(square), b.pos.SideToMove)
}

func promotionPiece(ch byte) engine.PieceType {
	switch ch {
	case 'q':
		return engine.Queen
	case 'r':
		return engine.Rook
	case 'b':
		return engine.Bishop
	case 'n':
		return engine.Knight
	}
	return engine.NoPiece
}

// MovePiece applies a user move given source and target squares and a
// promotion character ('q', 'r', 'b', 'n' or '-'). The caller
// guarantees the move is legal, normally by consulting LegalMoves
// first. Out-of-range input is a no-op.
func (b *Board) MovePiece(source, target int, promotion byte) {
	if source < 0 || source > 63 || target < 0 || target > 63 {
		return
	}
	us := b.pos.SideToMove
	m := b.pos.EncodeUserMove(engine.Square(source), engine.Square(target), promotionPiece(promotion), us)
	if m == engine.NullMove {
		return
	}
	b.commit(m, us)
}

// MakeEngineMove searches to depth and applies the chosen move. The
// maximizing flag tells the search which direction of the score the
// engine side prefers (true when the engine plays White). With no legal
// move available the previous-move string is cleared and the position
// left untouched.
func (b *Board) MakeEngineMove(depth int, maximizing bool) {
	us := b.pos.SideToMove

	var best engine.Move
	if b.endgame {
		best = engine.BestEndgameMove(b.pos, depth, maximizing)
	} else {
		best = engine.BestMove(b.pos, depth, maximizing)
	}
	if best == engine.NullMove {
		b.prevMove = ""
		return
	}
	b.commit(best, us)
}

// commit applies the move at game level and refreshes the bookkeeping.
func (b *Board) commit(m engine.Move, us engine.Color) {
	b.pos.ApplyMove(m, us)
	b.pos.Commit(m)

	if us == engine.Black {
		b.pos.FullMoveNumber++
	}
	b.prevMove = b.moveNotation(m)

	if !b.endgame {
		b.endgame = b.pos.IsEndgame()
	}
}

// FEN returns the current position in Forsyth-Edwards Notation.
func (b *Board) FEN() string { return b.pos.String() }

// GameState reports the state after the most recent move: "ongoing",
// "check", "mate", "stalemate", "draw_repetition", "draw_50" or
// "draw_insufficient".
func (b *Board) GameState() string {
	s := b.pos.State()
	switch {
	case s&(engine.CheckmateWhite|engine.CheckmateBlack) != 0:
		return "mate"
	case s&(engine.CheckWhite|engine.CheckBlack) != 0:
		return "check"
	case s&engine.Stalemate != 0:
		return "stalemate"
	case s&engine.DrawRepetition != 0:
		return "draw_repetition"
	case s&engine.Draw50 != 0:
		return "draw_50"
	case s&engine.DrawInsufficient != 0:
		return "draw_insufficient"
	}
	return "ongoing"
}

// PrevMove returns the most recent applied move in algebraic notation,
// or the empty string before the first move.
func (b *Board) PrevMove() string { return b.prevMove }

var pieceLetters = map[engine.PieceType]string{
	engine.Knight: "N",
	engine.Bishop: "B",
	engine.Rook:   "R",
	engine.Queen:  "Q",
	engine.King:   "K",
}

// moveNotation renders the applied move in algebraic notation. Called
// after the move so the check and mate markers reflect the new state.
func (b *Board) moveNotation(m engine.Move) string {
	var sb strings.Builder
	kind := m.Kind()

	if kind == engine.Castling {
		if m.To() > m.From() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		piece := m.Piece()
		if piece != engine.Pawn {
			sb.WriteString(pieceLetters[piece])
		}
		if kind == engine.Capture || kind == engine.PromotionCapture || kind == engine.EnPassant {
			if piece == engine.Pawn {
				sb.WriteByte(byte('a' + m.From().File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.IsPromotion() {
			sb.WriteString(pieceLetters[m.PromotionPiece()])
		}
		if kind == engine.EnPassant {
			sb.WriteString(" e.p.")
		}
	}

	s := b.pos.State()
	if s&(engine.CheckmateWhite|engine.CheckmateBlack) != 0 {
		sb.WriteString("#")
	} else if s&(engine.CheckWhite|engine.CheckBlack) != 0 {
		sb.WriteString("+")
	}
	return sb.String()
}

// BoardFromFEN starts a board from an arbitrary position.
func BoardFromFEN(fen string) (*Board, error) {
	pos, err := engine.PositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{pos: pos, endgame: pos.IsEndgame()}, nil
}
