// Command web serves the landing page and the public leaderboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/highscore"
	"github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/web"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "asteroids-web: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, settings.LogLevel, settings.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var board web.Leaderboard
	store, err := highscore.Open(ctx, settings.Scores, logger)
	if err != nil {
		logger.Warn("Serving without a leaderboard", "error", err)
	} else {
		defer store.Close()
		board = store
	}

	site := web.NewSite(web.Config{
		SSHHost: settings.SSH.DisplayHost,
		SSHPort: settings.SSH.Port,
		TopN:    settings.Scores.TopN,
	}, board, logger)
	limiter := web.NewRateLimiter(ctx, settings.Web.RateLimitRPS, settings.Web.RateBurst, settings.Web.TrustProxy, logger)

	srv := &http.Server{
		Addr:              net.JoinHostPort(settings.Web.Host, settings.Web.Port),
		Handler:           site.Handler(limiter),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Starting web server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
}
