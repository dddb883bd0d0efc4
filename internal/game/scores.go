package game

import (
	"context"
	"time"
)

// ScoreKeeper persists final scores. highscore.Store satisfies it.
type ScoreKeeper interface {
	Submit(ctx context.Context, score int) error
	Top(ctx context.Context, n int) ([]int, error)
}

const scoreTimeout = 5 * time.Second

type scoreResult struct {
	top []int
	err error
}

// submitScore hands the final score to the keeper on its own goroutine so a
// slow store never stalls a tick. The result is collected by a later Tick.
func (g *Game) submitScore(score int) {
	if g.scores == nil {
		return
	}
	keeper, n, results := g.scores, g.topN, g.results
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), scoreTimeout)
		defer cancel()

		var res scoreResult
		if err := keeper.Submit(ctx, score); err != nil {
			res.err = err
		} else {
			res.top, res.err = keeper.Top(ctx, n)
		}
		select {
		case results <- res:
		default:
		}
	}()
}

func (g *Game) collectScores() {
	select {
	case res := <-g.results:
		if res.err != nil {
			g.logger.Warn("high scores unavailable", "error", res.err)
			return
		}
		g.high = res.top
		g.logger.Debug("high scores", "top", res.top)
	default:
	}
}
