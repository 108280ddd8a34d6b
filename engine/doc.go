// Package engine implements the board, move generation and position
// searching.
//
// The position (basic.go, position.go) uses:
//
//   - Bitboards mirrored by a mailbox array for O(1) piece lookup
//   - Magic bitboards for sliding move generation - https://www.chessprogramming.org/Magic_Bitboards
//   - Zobrist hashing maintained incrementally - https://www.chessprogramming.org/Zobrist_Hashing
//
// Legality (Position.LegalMoves in position.go) is pseudo-legal generation filtered through
// precomputed pin rays and the check intercept mask, so no make/unmake
// probing is needed to reject illegal moves.
//
// Search (search.go) features implemented are:
//
//   - Alpha-beta pruning over a White-perspective minimax
//   - Transposition table with depth-preferred replacement
//   - Killer move heuristic - https://www.chessprogramming.org/Killer_Heuristic
//   - History heuristic - https://www.chessprogramming.org/History_Heuristic
//   - Quiescence search with delta pruning - https://www.chessprogramming.org/Delta_Pruning
//   - A distinct endgame search with check extensions and underpromotions
//
// Evaluation (eval.go) is material plus phase-interpolated piece-square
// tables, a king safety penalty, and in the endgame passed pawns and
// king activity.
package engine
