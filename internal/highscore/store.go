// Package highscore persists final scores and answers top-N queries.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/config"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown high-score backend")

// Store keeps final scores. Implementations are safe for concurrent use.
type Store interface {
	Submit(ctx context.Context, score int) error
	// Top returns at most n scores, best first.
	Top(ctx context.Context, n int) ([]int, error)
	Close() error
}

// Open builds the store selected by cfg.Backend and checks it is reachable.
func Open(ctx context.Context, cfg config.ScoreSettings, logger *log.Logger) (Store, error) {
	logger = logger.With("component", "highscore", "backend", cfg.Backend)

	var (
		store Store
		err   error
	)
	switch cfg.Backend {
	case "memory":
		store = NewMemoryStore(cfg.TopN)
	case "file":
		store = NewFileStore(cfg.FilePath, cfg.TopN)
	case "redis":
		store, err = OpenRedis(ctx, cfg.RedisURL, cfg.RedisKey, cfg.TopN)
	case "postgres":
		store, err = OpenPostgres(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("%q: %w", cfg.Backend, ErrUnknownBackend)
	}
	if err != nil {
		logger.Error("Failed to open high-score store", "error", err)
		return nil, err
	}
	logger.Debug("High-score store ready")
	return store, nil
}

// best sorts scores descending and keeps at most n of them.
func best(scores []int, n int) []int {
	slices.SortFunc(scores, func(a, b int) int { return b - a })
	if n >= 0 && len(scores) > n {
		scores = scores[:n]
	}
	return scores
}
