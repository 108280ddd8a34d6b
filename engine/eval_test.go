package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStartIsBalanced(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, int32(0), p.Evaluate(0))
	assert.Equal(t, int32(0), p.EvaluateEndgame(0))
}

func TestEvaluateMirroredPositionIsBalanced(t *testing.T) {
	p, err := PositionFromFEN("4k3/4p3/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, int32(0), p.Evaluate(0))
}

func TestPstMirroring(t *testing.T) {
	// A knight on f3 and a knight on f6 sit on mirrored squares and
	// must score the same for their own side.
	f3, err := SquareFromString("f3")
	require.NoError(t, err)
	f6, err := SquareFromString("f6")
	require.NoError(t, err)

	for _, phase := range []float32{0, 0.5, 1} {
		assert.Equal(t,
			pstValue(phase, Knight, White, f3),
			pstValue(phase, Knight, Black, f6))
	}
}

func TestMaterialAdvantageShowsInEvaluation(t *testing.T) {
	p, err := PositionFromFEN("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, p.Evaluate(0), int32(500), "a queen up should dominate")

	p, err = PositionFromFEN("q3k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Less(t, p.Evaluate(0), int32(-500))
}

func TestTerminalOverrides(t *testing.T) {
	// Fool's mate: White is mated.
	p := NewPosition()
	playMoves(t, p, "f2f3", "e7e5", "g2g4", "d8h4")

	require.NotZero(t, p.State()&CheckmateWhite)
	assert.Equal(t, -MateScore+2*mateDepthStep, p.Evaluate(2))
	assert.Equal(t, -MateScore+2*mateDepthStep, p.EvaluateEndgame(2))

	stale, err := PositionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	require.NotZero(t, stale.State()&Stalemate)
	assert.Equal(t, int32(0), stale.Evaluate(3))
}

func TestCheckNudges(t *testing.T) {
	// The rook on e8 checks the white king; equal material otherwise.
	p, err := PositionFromFEN("4r2k/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, p.State().IsCheck(White))

	base := p.material + p.positional -
		int32(float32(p.kingSafety(White)-p.kingSafety(Black))*kingSafetyWeight)
	assert.Equal(t, base-50, p.Evaluate(0))
}

func TestKingSafetyOpenFile(t *testing.T) {
	// Both kings castled short; White's g-file shield pawn is missing
	// and Black's shield is intact, so White carries a bigger penalty.
	open, err := PositionFromFEN("5rk1/5ppp/8/8/8/8/5P1P/5RK1 w - - 0 1")
	require.NoError(t, err)
	shielded, err := PositionFromFEN("5rk1/5ppp/8/8/8/8/5PPP/5RK1 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, open.kingSafety(White), shielded.kingSafety(White))
	assert.Equal(t, open.kingSafety(Black), shielded.kingSafety(Black))
}

func TestKingSafetyHeavyPieceOnOpenFile(t *testing.T) {
	// An enemy rook on an open file next to the king multiplies the penalty.
	quiet, err := PositionFromFEN("6k1/8/8/8/8/8/8/6K1 w - - 0 1")
	require.NoError(t, err)
	stormed, err := PositionFromFEN("5rk1/8/8/8/8/8/8/6K1 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, stormed.kingSafety(White), quiet.kingSafety(White))
}

func TestPassedPawnEvaluationGrowsWithRank(t *testing.T) {
	low, err := PositionFromFEN("4k3/8/8/8/8/P7/8/4K3 w - - 0 1")
	require.NoError(t, err)
	high, err := PositionFromFEN("4k3/8/P7/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, high.evaluatePassedPawns(White), low.evaluatePassedPawns(White))
	assert.Zero(t, low.evaluatePassedPawns(Black))
}

func TestEndgameKingActivity(t *testing.T) {
	central, err := PositionFromFEN("7k/8/8/4K3/8/8/P7/8 w - - 0 1")
	require.NoError(t, err)
	corner, err := PositionFromFEN("7k/8/8/8/8/8/P7/K7 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, central.EvaluateEndgame(0), corner.EvaluateEndgame(0),
		"the centralized king must evaluate better")
}

func TestEstimateCaptureValue(t *testing.T) {
	// Pawn takes queen: clean gain of the queen.
	m := EncodeMove(Square(0), Square(9), Pawn, Queen, Capture, NoPiece, false)
	assert.Equal(t, PieceValues[Queen], estimateCaptureValue(m))

	// Queen takes pawn: pessimistically assume the queen is lost.
	m = EncodeMove(Square(0), Square(9), Queen, Pawn, Capture, NoPiece, false)
	assert.Equal(t, PieceValues[Pawn]-PieceValues[Queen], estimateCaptureValue(m))

	// En passant counts the pawn even though the target square is empty.
	m = EncodeMove(Square(35), Square(44), Pawn, NoPiece, EnPassant, NoPiece, false)
	assert.Equal(t, PieceValues[Pawn], estimateCaptureValue(m))
}
