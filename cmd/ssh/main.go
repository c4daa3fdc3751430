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

	"github.com/tomz197/swoosh/internal/audio"
	"github.com/tomz197/swoosh/internal/config"
	"github.com/tomz197/swoosh/internal/draw"
	"github.com/tomz197/swoosh/internal/leaderboard"
	"github.com/tomz197/swoosh/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScoresPath  = "/app/data/scores.msgpack"
	defaultIdleTimeout = 5 * time.Minute

	drainTimeout = 15 * time.Second
)

// arcade holds what every SSH session shares.
type arcade struct {
	logger      *log.Logger
	board       *leaderboard.Board
	idleTimeout time.Duration

	shutdown chan struct{}
	sessions sync.WaitGroup
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "swoosh-ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scoresPath := config.GetEnv("SWOOSH_SCORES", defaultScoresPath)
	idle, err := config.GetEnvDuration("SWOOSH_IDLE_TIMEOUT", defaultIdleTimeout)
	if err != nil {
		logger.Fatal("bad configuration", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "scores", scoresPath)

	board, err := leaderboard.New(leaderboard.NewFileStore(scoresPath), 0)
	if err != nil {
		logger.Fatal("failed to load leaderboard", "err", err)
	}

	a := &arcade{
		logger:      logger,
		board:       board,
		idleTimeout: idle,
		shutdown:    make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Input latency matters more than packet count.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down, notifying connected players")
	a.drain(drainTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// drain shows every session the shutdown notice and waits for them to end.
func (a *arcade) drain(timeout time.Duration) {
	close(a.shutdown)

	finished := make(chan struct{})
	go func() {
		a.sessions.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		a.logger.Info("all sessions closed")
	case <-time.After(timeout):
		a.logger.Warn("sessions still open after timeout", "timeout", timeout)
	}
}

// middleware runs one independent game per SSH session.
func (a *arcade) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		a.sessions.Add(1)
		defer a.sessions.Done()

		logger := a.logger.With("user", sess.User())
		logger.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		size := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.update(win.Width, win.Height)
			}
		}()

		err := loop.Run(sess, sess, loop.Options{
			Player:       sess.User(),
			Leaderboard:  a.board,
			Notifier:     audio.Nop{},
			Logger:       logger,
			TermSizeFunc: size.getSize,
			IdleTimeout:  a.idleTimeout,
			Shutdown:     a.shutdown,
		})
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
