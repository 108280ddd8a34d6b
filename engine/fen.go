// fen.go converts positions to and from Forsyth-Edwards Notation.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceToSymbol = [ColorArraySize][PieceArraySize]byte{
	{'p', 'n', 'b', 'r', 'q', 'k'},
	{'P', 'N', 'B', 'R', 'Q', 'K'},
}

func symbolToPiece(ch byte) (Color, PieceType, bool) {
	col := Black
	if ch >= 'A' && ch <= 'Z' {
		col = White
		ch += 'a' - 'A'
	}
	switch ch {
	case 'p':
		return col, Pawn, true
	case 'n':
		return col, Knight, true
	case 'b':
		return col, Bishop, true
	case 'r':
		return col, Rook, true
	case 'q':
		return col, Queen, true
	case 'k':
		return col, King, true
	}
	return col, NoPiece, false
}

// PositionFromFEN parses fen and returns the position.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen has %d fields, want 6", len(fields))
	}

	p := &Position{
		epTarget:      NoSquare,
		positionHist:  make(map[uint64]int),
		undoStack:     make([]UndoInfo, 0, MaxSearchDepth),
		searchHistory: make([]uint64, 0, MaxSearchDepth),
	}

	// Piece placement, rank 8 first.
	rank, file := 7, 0
	for i := 0; i < len(fields[0]); i++ {
		ch := fields[0][i]
		switch {
		case ch == '/':
			if file != 8 {
				return nil, fmt.Errorf("fen rank %d has %d files", rank+1, file)
			}
			rank, file = rank-1, 0
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			col, pt, ok := symbolToPiece(ch)
			if !ok || rank < 0 || file > 7 {
				return nil, fmt.Errorf("invalid piece placement %q", fields[0])
			}
			p.pieces[col][pt] |= RankFile(rank, file).Bitboard()
			file++
		}
	}
	if rank != 0 || file != 8 {
		return nil, fmt.Errorf("invalid piece placement %q", fields[0])
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.castlingRights |= CastleWhiteKing
			case 'Q':
				p.castlingRights |= CastleWhiteQueen
			case 'k':
				p.castlingRights |= CastleBlackKing
			case 'q':
				p.castlingRights |= CastleBlackQueen
			default:
				return nil, fmt.Errorf("invalid castling rights %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, err
		}
		p.epTarget = sq
	}

	var err error
	if p.halfMoves, err = strconv.Atoi(fields[4]); err != nil {
		return nil, fmt.Errorf("invalid half-move clock %q", fields[4])
	}
	if p.FullMoveNumber, err = strconv.Atoi(fields[5]); err != nil {
		return nil, fmt.Errorf("invalid full-move number %q", fields[5])
	}

	p.syncDerivedState()
	if err := p.Verify(); err != nil {
		return nil, err
	}
	p.updateState(p.SideToMove.Opposite())
	p.positionHist[p.hash] = 1
	return p, nil
}

// String returns the position in FEN format.
func (p *Position) String() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := RankFile(rank, file)
			pt := p.mailbox[sq]
			if pt == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToSymbol[p.ColorAt(sq)][pt])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.SideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		for i, ch := range []byte{'K', 'Q', 'k', 'q'} {
			if p.castlingRights&(1<<uint(i)) != 0 {
				sb.WriteByte(ch)
			}
		}
	}

	sb.WriteByte(' ')
	if p.epTarget == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.epTarget.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))
	return sb.String()
}
