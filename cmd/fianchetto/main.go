// fianchetto is a terminal front end for the engine: it renders the
// board, accepts coordinate moves and lets the engine answer.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/op/go-logging"
	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fianchetto-engine/fianchetto/engine"
	"github.com/fianchetto-engine/fianchetto/game"
	"github.com/fianchetto-engine/fianchetto/internal/config"
	mylogging "github.com/fianchetto-engine/fianchetto/internal/logging"
)

var (
	configPath  = flag.String("config", "fianchetto.toml", "path to the settings file")
	fen         = flag.String("fen", "", "start from this position instead of the standard setup")
	depth       = flag.Int("depth", 0, "override the configured search depth")
	engineSide  = flag.String("engine", "black", "side played by the engine: white or black")
	profileMode = flag.String("profile", "", "write a profile: cpu or mem")
)

var out = message.NewPrinter(language.English)

var logLevels = map[string]logging.Level{
	"debug":   logging.DEBUG,
	"info":    logging.INFO,
	"warning": logging.WARNING,
	"error":   logging.ERROR,
}

var pieceGlyphs = [engine.ColorArraySize][engine.PieceArraySize]string{
	{"p", "n", "b", "r", "q", "k"},
	{"P", "N", "B", "R", "Q", "K"},
}

func render(pos *engine.Position) {
	lightSq := color.New(color.BgWhite, color.FgBlack)
	darkSq := color.New(color.BgCyan, color.FgBlack)

	for rank := 7; rank >= 0; rank-- {
		fmt.Printf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := engine.RankFile(rank, file)
			cell := " . "
			if pt := pos.PieceAt(sq); pt != engine.NoPiece {
				cell = " " + pieceGlyphs[pos.ColorAt(sq)][pt] + " "
			}
			if (rank+file)%2 == 0 {
				darkSq.Print(cell)
			} else {
				lightSq.Print(cell)
			}
		}
		fmt.Println()
	}
	fmt.Println("   a  b  c  d  e  f  g  h")
}

// parseMove splits coordinate input like "e2e4" or "e7e8q".
func parseMove(input string) (from, to engine.Square, promotion byte, err error) {
	if len(input) != 4 && len(input) != 5 {
		return 0, 0, '-', fmt.Errorf("expected a move like e2e4 or e7e8q")
	}
	if from, err = engine.SquareFromString(input[:2]); err != nil {
		return 0, 0, '-', err
	}
	if to, err = engine.SquareFromString(input[2:4]); err != nil {
		return 0, 0, '-', err
	}
	promotion = '-'
	if len(input) == 5 {
		promotion = input[4]
		if !strings.ContainsRune("qrbn", rune(promotion)) {
			return 0, 0, '-', fmt.Errorf("promotion piece must be one of q, r, b, n")
		}
	}
	return from, to, promotion, nil
}

func main() {
	flag.Parse()
	log := mylogging.GetLog()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot read settings:", err)
		os.Exit(1)
	}
	if level, ok := logLevels[settings.LogLevel]; ok {
		mylogging.SetLevel(level)
	}
	if *depth > 0 {
		settings.SearchDepth = *depth
	}
	if settings.HashTableSizeMB != engine.DefaultHashTableSizeMB {
		engine.ResizeHashTable(settings.HashTableSizeMB)
	}

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	var board *game.Board
	if *fen != "" {
		if board, err = game.BoardFromFEN(*fen); err != nil {
			fmt.Fprintln(os.Stderr, "invalid fen:", err)
			os.Exit(1)
		}
	} else {
		board = game.NewBoard()
	}

	engineColor := engine.Black
	if *engineSide == "white" {
		engineColor = engine.White
	}
	log.Infof("engine plays %v at depth %d", engineColor, settings.SearchDepth)

	reader := bufio.NewScanner(os.Stdin)
	for {
		render(board.Position())
		state := board.GameState()
		if state != "ongoing" && state != "check" {
			fmt.Println("game over:", state)
			return
		}

		if board.SideToMove() == engineColor {
			board.MakeEngineMove(settings.SearchDepth, engineColor == engine.White)
			if board.PrevMove() == "" {
				fmt.Println("engine has no move")
				return
			}
			out.Printf("engine plays %s\n", board.PrevMove())
			continue
		}

		fmt.Print("> ")
		if !reader.Scan() {
			return
		}
		input := strings.TrimSpace(reader.Text())
		if input == "quit" || input == "exit" {
			return
		}
		if input == "fen" {
			fmt.Println(board.FEN())
			continue
		}

		from, to, promotion, err := parseMove(input)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if !board.LegalMoves(int(from)).Has(to) {
			fmt.Println("illegal move")
			continue
		}
		board.MovePiece(int(from), int(to), promotion)
		fmt.Println("played", board.PrevMove())
	}
}
