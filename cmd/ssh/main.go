// Command ssh serves asteroids over SSH. Every session plays its own game;
// high scores are shared.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/asteroids-classic/internal/config"
	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/game"
	"github.com/tomz197/asteroids-classic/internal/highscore"
	applog "github.com/tomz197/asteroids-classic/internal/logging"
	"github.com/tomz197/asteroids-classic/internal/loop"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "asteroids-ssh: %v\n", err)
		os.Exit(1)
	}
	logger := applog.New(os.Stderr, settings.LogLevel, settings.LogFormat)
	if err := run(settings, logger); err != nil {
		logger.Fatal("Server failed", "error", err)
	}
}

func run(settings *config.Settings, logger *log.Logger) error {
	cfg := settings.SSH
	logger.Info("SSH config", "host", cfg.Host, "port", cfg.Port, "host_key", cfg.HostKeyPath)

	// Sessions watch this context so a shutdown ends every game cleanly.
	shutdown, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	var scores game.ScoreKeeper
	store, err := highscore.Open(shutdown, settings.Scores, logger)
	if err != nil {
		logger.Warn("Serving without high scores", "error", err)
	} else {
		defer store.Close()
		scores = store
	}

	h := &handler{
		shutdown: shutdown,
		scores:   scores,
		topN:     settings.Scores.TopN,
		logger:   logger.With("component", "ssh"),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Game input is latency sensitive.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcp, ok := conn.(*net.TCPConn); ok {
				_ = tcp.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-done:
	}

	logger.Info("Shutting down", "sessions", h.active())
	cancelSessions()
	h.wait(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

type handler struct {
	shutdown context.Context
	scores   game.ScoreKeeper
	topN     int
	logger   *log.Logger

	mu       sync.Mutex
	sessions int
	wg       sync.WaitGroup
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.track(1)
		defer h.track(-1)

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("Game session started", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

		size := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.shutdown, cancel)
		defer stop()

		err := loop.Run(ctx, sess, sess, loop.Options{
			Logger:   logger,
			Scores:   h.scores,
			TopN:     h.topN,
			TermSize: size.get,
		})
		if err != nil {
			logger.Error("Game session failed", "error", err)
		}
		logger.Info("Game session ended")
		next(sess)
	}
}

func (h *handler) track(delta int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions += delta
	if delta > 0 {
		h.wg.Add(delta)
	} else {
		h.wg.Done()
	}
}

func (h *handler) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

// wait blocks until every session has ended or the timeout passes.
func (h *handler) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		h.logger.Warn("Sessions still open after shutdown timeout", "sessions", h.active())
	}
}

// sizeTracker follows the session's window size.
type sizeTracker struct {
	mu   sync.RWMutex
	cols int
	rows int
}

func newSizeTracker(cols, rows int) *sizeTracker {
	return &sizeTracker{cols: cols, rows: rows}
}

func (s *sizeTracker) update(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cols, s.rows = cols, rows
}

func (s *sizeTracker) get() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cols, s.rows, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).get
