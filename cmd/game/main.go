// Command game plays asteroids in the local terminal, with sound.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-classic/internal/audio"
	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/highscore"
	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "asteroids: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal is the game screen, so logs go to a file or nowhere.
	logOut := io.Discard
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, settings.LogLevel, settings.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scores game.ScoreKeeper
	store, err := highscore.Open(ctx, settings.Scores, logger)
	if err != nil {
		logger.Warn("Playing without high scores", "error", err)
	} else {
		defer closeStore(store, logger)
		scores = store
	}

	sound := audio.NewManager(logger)
	if settings.AudioEnabled {
		// A failure leaves the manager silent; the game runs regardless.
		_ = sound.Init()
	}
	defer sound.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("Starting local game", "audio", !sound.Silent(), "scores", settings.Scores.Backend)
	return loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		Logger: logger,
		Sound:  sound,
		Scores: scores,
		TopN:   settings.Scores.TopN,
		Seed:   uint64(settings.Seed),
	})
}

func closeStore(store highscore.Store, logger *log.Logger) {
	if err := store.Close(); err != nil {
		logger.Warn("Closing high score store", "error", err)
	}
}
