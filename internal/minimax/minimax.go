package minimax

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Terminal scores, from O's point of view. There is no depth weighting:
// a quick win and a slow win are worth the same.
const (
	LossScore = -1
	DrawScore = 0
	WinScore  = 1

	MaxEval = 1 << 30
	MinEval = -MaxEval
)

type Config struct {
	// NoPruning disables alpha-beta cutoffs. Results are identical, only slower.
	NoPruning bool
	// Parallel searches root candidates concurrently, each on its own board copy.
	Parallel bool
}

type Stats struct {
	Visited  uint64
	Terminal uint64
	Cutoffs  uint64
}

func (that *Stats) add(other Stats) {
	that.Visited += other.Visited
	that.Terminal += other.Terminal
	that.Cutoffs += other.Cutoffs
}

type Result struct {
	Move  entity.Move
	Score int
	Stats Stats
}

// Engine runs an exhaustive minimax search with alpha-beta pruning.
// It is stateless between calls and safe for concurrent use.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// BestMove - returns the optimal move for O.
func (that *Engine) BestMove(board *entity.Board) (entity.Move, error) {
	res, err := that.Analyze(board, entity.PlayerO)
	if err != nil {
		return entity.Move{}, err
	}
	return res.Move, nil
}

// Evaluate - returns the game-theoretic value of the position with toMove to play.
func (that *Engine) Evaluate(board *entity.Board, toMove entity.Player) (int, Stats, error) {
	s := &searcher{pruning: !that.cfg.NoPruning}

	value, err := s.minimax(board, toMove, MinEval, MaxEval)
	if err != nil {
		return 0, s.stats, fmt.Errorf("failed to evaluate %s: %w", board, err)
	}

	return value, s.stats, nil
}

// Analyze picks the best move for side. Every root candidate is searched
// with a fresh window, and candidates are compared strictly in row-major
// order, so the first move reaching the best value wins.
// O prefers the highest score and X the lowest.
func (that *Engine) Analyze(board *entity.Board, side entity.Player) (Result, error) {
	if board.Outcome().IsTerminal() {
		return Result{}, fmt.Errorf("%w: game is over (%s)", apperror.ErrPreconditionViolated, board.Outcome())
	}

	moves := board.LegalMoves()
	if len(moves) == 0 {
		return Result{}, fmt.Errorf("%w: no legal moves", apperror.ErrPreconditionViolated)
	}

	var (
		scores []int
		stats  Stats
		err    error
	)
	if that.cfg.Parallel {
		scores, stats, err = that.scoreParallel(*board, side, moves)
	} else {
		scores, stats, err = that.scoreSequential(board, side, moves)
	}
	if err != nil {
		return Result{}, err
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if better(side, scores[i], scores[best]) {
			best = i
		}
	}

	return Result{Move: moves[best], Score: scores[best], Stats: stats}, nil
}

func better(side entity.Player, candidate, current int) bool {
	if side == entity.PlayerO {
		return candidate > current
	}
	return candidate < current
}

func (that *Engine) scoreSequential(board *entity.Board, side entity.Player, moves []entity.Move) ([]int, Stats, error) {
	s := &searcher{pruning: !that.cfg.NoPruning}
	scores := make([]int, len(moves))

	for i, m := range moves {
		score, err := s.child(board, m, side, MinEval, MaxEval)
		if err != nil {
			return nil, s.stats, err
		}
		scores[i] = score
	}

	return scores, s.stats, nil
}

// scoreParallel takes the board by value: each goroutine searches its own copy.
func (that *Engine) scoreParallel(board entity.Board, side entity.Player, moves []entity.Move) ([]int, Stats, error) {
	scores := make([]int, len(moves))
	stats := make([]Stats, len(moves))

	var g errgroup.Group
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			local := board
			s := &searcher{pruning: !that.cfg.NoPruning}

			score, err := s.child(&local, m, side, MinEval, MaxEval)
			stats[i] = s.stats
			if err != nil {
				return err
			}
			scores[i] = score

			return nil
		})
	}

	err := g.Wait()

	var total Stats
	for _, st := range stats {
		total.add(st)
	}
	if err != nil {
		return nil, total, err
	}

	return scores, total, nil
}

type searcher struct {
	pruning bool
	stats   Stats
}

func terminalScore(outcome entity.Outcome) int {
	switch outcome {
	case entity.XWins:
		return LossScore
	case entity.OWins:
		return WinScore
	default:
		return DrawScore
	}
}

// child plays m for player on board, scores the resulting position with
// the opponent to move, and takes the mark back before returning.
func (that *searcher) child(board *entity.Board, m entity.Move, player entity.Player, alpha, beta int) (int, error) {
	var (
		value int
		err   error
	)

	if tryErr := board.Try(m, player, func() {
		value, err = that.minimax(board, player.Opponent(), alpha, beta)
	}); tryErr != nil {
		return 0, fmt.Errorf("failed to try %s for %s: %w", m, player, tryErr)
	}

	return value, err
}

func (that *searcher) minimax(board *entity.Board, toMove entity.Player, alpha, beta int) (int, error) {
	if outcome := board.Outcome(); outcome.IsTerminal() {
		that.stats.Terminal++
		return terminalScore(outcome), nil
	}

	that.stats.Visited++

	if toMove == entity.PlayerO {
		best := MinEval
		for _, m := range board.LegalMoves() {
			value, err := that.child(board, m, entity.PlayerO, alpha, beta)
			if err != nil {
				return 0, err
			}

			best = max(best, value)
			alpha = max(alpha, best)
			if that.pruning && beta <= alpha {
				that.stats.Cutoffs++
				break
			}
		}
		return best, nil
	}

	worst := MaxEval
	for _, m := range board.LegalMoves() {
		value, err := that.child(board, m, entity.PlayerX, alpha, beta)
		if err != nil {
			return 0, err
		}

		worst = min(worst, value)
		beta = min(beta, worst)
		if that.pruning && beta <= alpha {
			that.stats.Cutoffs++
			break
		}
	}
	return worst, nil
}
