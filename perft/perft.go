// perft is a move generation driver: it counts the leaf nodes of the
// legal move tree to a given depth, the standard way to validate a
// move generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fianchetto-engine/fianchetto/engine"
)

var (
	fen   = flag.String("fen", engine.FENStartPos, "position to search")
	depth = flag.Int("depth", 5, "maximum depth to count to")
)

// perft counts the leaf nodes at exactly depth plies below pos.
func perft(pos *engine.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	us := pos.SideToMove
	var list engine.MoveList
	pos.GeneratePerftMoves(&list, us)

	if depth == 1 {
		return uint64(list.Len())
	}

	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		pos.ApplyMove(m, us)
		nodes += perft(pos, depth-1)
		pos.UndoMove(m, us)
	}
	return nodes
}

func main() {
	flag.Parse()

	pos, err := engine.PositionFromFEN(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid fen:", err)
		os.Exit(1)
	}

	fmt.Printf("position %s\n", pos)
	for d := 1; d <= *depth; d++ {
		start := time.Now()
		nodes := perft(pos, d)
		fmt.Printf("depth %2d nodes %12d time %v\n", d, nodes, time.Since(start))
	}
}
